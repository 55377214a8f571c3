package primitives

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGuessResult_Errors(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"p ?q !r aa", "invalid input aa"},
		{"p ??q !r a", "invalid input ??q"},
		{"p ?q !?r a", "invalid input !?r"},
		{"p? ?q !r a", "invalid input p?"},
		{"p ?Q", "invalid input ?Q"},
		{"p ? a", "invalid input ?"},
		{"1", "invalid input 1"},
		{"", "invalid empty input"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseGuessResult(tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
			assert.True(t, errors.Is(err, ErrInvalidGuess))
		})
	}
}

func TestParseGuessResult(t *testing.T) {
	got, err := ParseGuessResult("p ?l !a t !e")
	require.NoError(t, err)

	want := []GuessOutcome{
		{Right, 'p'},
		{WrongPosition, 'l'},
		{Wrong, 'a'},
		{Right, 't'},
		{Wrong, 'e'},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseGuessResult mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "p ?l !a t !e", FormatGuessResult(got))
	assert.Equal(t, "plate", GuessWord(got))
}

func TestScore(t *testing.T) {
	tests := []struct {
		guess, target string
		want          string
	}{
		{"plate", "pilot", "p ?l !a ?t !e"},
		{"polit", "pilot", "p ?o l ?i t"},
		{"pilot", "pilot", "p i l o t"},
		// The only l of world is already Right, leaving none for the first l.
		{"hello", "world", "!h !e !l l ?o"},
		{"llama", "label", "l ?l ?a !m !a"},
		{"speed", "abide", "!s !p ?e !e ?d"},
	}

	for _, tt := range tests {
		t.Run(tt.guess+"/"+tt.target, func(t *testing.T) {
			got, err := Score(tt.guess, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, FormatGuessResult(got))
		})
	}

	_, err := Score("abc", "abcd")
	assert.Error(t, err)
	_, err = Score("ABC", "abc")
	assert.Error(t, err)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "right", Right.String())
	assert.Equal(t, "wrong-position", WrongPosition.String())
	assert.Equal(t, "wrong", Wrong.String())
	assert.Equal(t, "Outcome(7)", Outcome(7).String())
}
