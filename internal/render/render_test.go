package render

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crosswarped.com/wrd/internal/config"
	"crosswarped.com/wrd/pkg/primitives"
)

func identity(s string) string { return s }

func TestGrid(t *testing.T) {
	tests := []struct {
		words   []string
		columns int
		height  int
		repr    string
	}{
		{nil, 3, 0, ""},
		{[]string{"a", "b"}, 3, 1, "\ta\tb"},
		{[]string{"a", "b", "c"}, 3, 1, "\ta\tb\tc"},
		{[]string{"a", "b", "c", "d"}, 3, 2, "\ta\tb\tc\n\td"},
		{[]string{"a", "b", "c", "d"}, 1, 4, "\ta\n\tb\n\tc\n\td"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.words, ","), func(t *testing.T) {
			g := NewGrid(tt.words, tt.columns)
			assert.Equal(t, tt.height, g.Height())
			assert.Equal(t, tt.repr, g.Repr(identity))
		})
	}

	g := NewGrid([]string{"a", "b", "c", "d"}, 3)
	assert.Equal(t, [][]string{{"a", "b", "c"}, {"d"}}, g.Rows())

	assert.Panics(t, func() { NewGrid([]string{"a"}, 0) })
}

func TestPainter_Plain(t *testing.T) {
	outcomes, err := primitives.ParseGuessResult("p ?l !a t !e")
	require.NoError(t, err)

	p := NewPainter(false)
	assert.False(t, p.Enabled())
	assert.Equal(t, "p ?l !a t !e", p.Guess(outcomes))
	assert.Equal(t, "\tpilot\tplate", p.Grid([]string{"pilot", "plate"}, 14))
}

func TestPainter_Color(t *testing.T) {
	outcomes, err := primitives.ParseGuessResult("p ?l !a")
	require.NoError(t, err)

	p := NewPainter(true)
	got := p.Guess(outcomes)
	assert.Contains(t, got, "\x1b[")
	assert.NotEqual(t, "pla", got)
	for _, letter := range []string{"p", "l", "a"} {
		assert.Contains(t, got, letter)
	}
	assert.Contains(t, p.Word("pilot"), "pilot")
}

func TestColorEnabled(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.True(t, ColorEnabled(config.ColorAlways, f))
	assert.False(t, ColorEnabled(config.ColorNever, f))
	assert.False(t, ColorEnabled(config.ColorAuto, f))
}
