package dictionary

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"

	"cloud.google.com/go/bigquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/iterator"

	"crosswarped.com/wrd/pkg/primitives"
)

func TestBundledDictionaries(t *testing.T) {
	for _, name := range Names() {
		t.Run(string(name), func(t *testing.T) {
			words := Words(name)
			require.NotEmpty(t, words)
			assert.True(t, slices.IsSorted(words))
			for i, word := range words {
				require.NotEmpty(t, word)
				for _, r := range word {
					require.True(t, primitives.IsLetter(r), "%q", word)
				}
				if i > 0 {
					require.NotEqual(t, words[i-1], word)
				}
			}
			assert.Equal(t, len(words), Index(name).Len())
		})
	}

	assert.Contains(t, Default(), "pilot")
	assert.Contains(t, Default(), "yenta")
	assert.Equal(t, Words(DefaultName), Default())
}

func TestWords_ConcurrentFirstUse(t *testing.T) {
	var wg sync.WaitGroup
	results := make([][]string, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = Words(Gwicks)
		}()
	}
	wg.Wait()

	for _, words := range results[1:] {
		assert.Equal(t, len(results[0]), len(words))
		assert.Same(t, &results[0][0], &words[0])
	}
}

func TestParseName(t *testing.T) {
	name, err := ParseName(" Moby ")
	require.NoError(t, err)
	assert.Equal(t, Moby, name)

	name, err = ParseName("gwicks")
	require.NoError(t, err)
	assert.Equal(t, Gwicks, name)

	_, err = ParseName("webster")
	assert.True(t, errors.Is(err, ErrUnknownDictionary))
	assert.Contains(t, err.Error(), `"webster"`)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []string
	}{
		{"lines", "pilot\nplate\n\n  datum  \n", []string{"datum", "pilot", "plate"}},
		{"comments", "# header\npilot\n#plate\n", []string{"pilot"}},
		{"crlf", "pilot\r\nplate\r\n", []string{"pilot", "plate"}},
		{"json", `["plate", "pilot", " datum", ""]`, []string{"datum", "pilot", "plate"}},
		{"duplicates", "pilot\npilot\nplate", []string{"pilot", "plate"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("pilot\nPlate\n"))
	assert.EqualError(t, err, `word Plate contains non-lowercase letter 'P'`)

	_, err = Parse([]byte(`["pilot", 3]`))
	assert.Error(t, err)

	_, err = Parse([]byte("don't"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("# mine\nPilot\nplate\n\ndatum\n"), 0o600))

	words, err := LoadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"datum", "pilot", "plate"}, words)

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("pilot\nx-ray\n"), 0o600))
	_, err = LoadFile(context.Background(), bad)
	assert.ErrorContains(t, err, "x-ray")

	_, err = LoadFile(context.Background(), filepath.Join(dir, "missing.txt"))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = LoadFile(ctx, path)
	assert.True(t, errors.Is(err, context.Canceled))
}

type fakeRows struct {
	rows [][]bigquery.Value
	err  error
}

func (f *fakeRows) Next(dst any) error {
	if len(f.rows) == 0 {
		if f.err != nil {
			return f.err
		}
		return iterator.Done
	}
	*dst.(*[]bigquery.Value) = f.rows[0]
	f.rows = f.rows[1:]
	return nil
}

func TestReadWords(t *testing.T) {
	words, err := readWords(&fakeRows{rows: [][]bigquery.Value{{"Plate"}, {"pilot"}, {" "}, {"pilot"}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"pilot", "plate"}, words)

	_, err = readWords(&fakeRows{rows: [][]bigquery.Value{{int64(3)}}})
	assert.ErrorContains(t, err, "not a string")

	_, err = readWords(&fakeRows{rows: [][]bigquery.Value{{"o'clock"}}})
	assert.Error(t, err)

	broken := errors.New("broken")
	_, err = readWords(&fakeRows{err: broken})
	assert.True(t, errors.Is(err, broken))
}

func TestLoadBigQuery_RequiresScope(t *testing.T) {
	_, err := LoadBigQuery(context.Background(), BigQueryConfig{})
	assert.ErrorContains(t, err, "scope")
}
