package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crosswarped.com/wrd/internal/config"
)

const testWords = "datum\npilot\nplate\npolit\nspilt\n"

type result struct {
	stdout string
	stderr string
	err    error
}

func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	dir := t.TempDir()
	return runWithConfig(t, filepath.Join(dir, "config.yaml"), stdin, args...)
}

func runWithConfig(t *testing.T, configPath, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	args = append([]string{"--config", configPath, "--color", "never"}, args...)
	err := execute(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func wordsFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte(testWords), 0o644))
	return path
}

func TestMatch(t *testing.T) {
	words := wordsFile(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "flag",
			args: []string{"match", "-p", "p * * * t", "--words-file", words},
			want: "\tpilot\tpolit\n",
		},
		{
			name: "argument",
			args: []string{"match", "* * * * *", "-w", "pilot", "--words-file", words},
			want: "\tpilot\tpolit\n",
		},
		{
			name: "include and exclude",
			args: []string{"match", "**", "-i", "t", "-e", "o", "--words-file", words},
			want: "\tdatum\tplate\tspilt\n",
		},
		{
			name: "no matches",
			args: []string{"match", "z **", "--words-file", words},
			want: "",
		},
		{
			name: "bundled dictionary",
			args: []string{"match", "p i l o t"},
			want: "\tpilot\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(t, "", tt.args...)
			require.NoError(t, r.err)
			assert.Equal(t, tt.want, r.stdout)
		})
	}
}

func TestMatch_Errors(t *testing.T) {
	words := wordsFile(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no pattern", []string{"match"}, "a pattern is required"},
		{"two patterns", []string{"match", "-p", "**", "* *"}, "give the pattern either as an argument or with --pattern"},
		{"bad pattern", []string{"match", "p x!y", "--words-file", words}, "invalid input x!y"},
		{"bad letters", []string{"match", "**", "-i", "t1", "--words-file", words}, "include"},
		{"missing file", []string{"match", "**", "--words-file", filepath.Join(t.TempDir(), "none")}, "loading words"},
		{"two sources", []string{"match", "**", "--words-file", words, "--bigquery-scope", "all"}, "mutually exclusive"},
		{"bad color", []string{"match", "**", "--color", "purple"}, "color must be auto, always or never"},
		{"bad dictionary", []string{"match", "**", "--dict", "webster"}, "webster"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := run(t, "", tt.args...)
			require.Error(t, r.err)
			assert.Contains(t, r.err.Error(), tt.want)
		})
	}
}

func TestNotwordle_Batch(t *testing.T) {
	r := run(t, "", "notwordle", "p ?l !a ?t !e, p ?o l ?i t", "--words-file", wordsFile(t))
	require.NoError(t, r.err)
	assert.Equal(t,
		"2 remaining after p ?l !a ?t !e\n"+
			"1 remaining after p ?o l ?i t\n"+
			"\tpilot\n",
		r.stdout)
}

func TestNotwordle_BatchError(t *testing.T) {
	r := run(t, "", "notwordle", "p ?l !a ?t !e, p ?o", "--words-file", wordsFile(t))
	require.Error(t, r.err)
	assert.EqualError(t, r.err, "guess 2: previous had 5 items, got 2 items")
	assert.Equal(t, "2 remaining after p ?l !a ?t !e\n", r.stdout)
}

func TestNotwordle_Lines(t *testing.T) {
	stdin := strings.Join([]string{
		"p ?l !a ?t !e",
		"",
		"p ?o",
		"p ?o l ?i t",
		"reset",
		"!d !a !t !u !m",
	}, "\n")
	r := run(t, stdin, "notwordle", "--words-file", wordsFile(t))
	require.NoError(t, r.err)

	assert.Equal(t,
		"2 remaining after p ?l !a ?t !e\n"+
			"\tpilot\tpolit\n"+
			"1 remaining after p ?o l ?i t\n"+
			"\tpilot\n"+
			"starting over\n"+
			"0 remaining after !d !a !t !u !m\n",
		r.stdout)
	assert.Contains(t, r.stderr, "previous had 5 items, got 2 items")
}

func TestDicts(t *testing.T) {
	r := run(t, "", "dicts", "--dict", "gwicks")
	require.NoError(t, r.err)

	lines := strings.Split(strings.TrimRight(r.stdout, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "  moby"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "* gwicks"), lines[1])
	assert.Contains(t, lines[0], " words")
}

func TestConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wrd", "config.yaml")

	r := runWithConfig(t, path, "", "config")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "dictionary: moby")
	assert.NoFileExists(t, path)

	r = runWithConfig(t, path, "", "config", "--dict", "gwicks", "--write")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "dictionary: gwicks")
	assert.Contains(t, r.stderr, "wrote "+path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gwicks", cfg.Dictionary)

	// The saved dictionary is now the default.
	r = runWithConfig(t, path, "", "dicts")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "* gwicks")
}

func TestLogLevel(t *testing.T) {
	r := run(t, "", "match", "p i l o t", "--log-level", "debug")
	require.NoError(t, r.err)
	assert.Contains(t, r.stderr, "loaded config")
	assert.Contains(t, r.stderr, "matched")

	r = run(t, "", "match", "p i l o t")
	require.NoError(t, r.err)
	assert.Empty(t, r.stderr)
}

func TestTUI_NeedsTerminal(t *testing.T) {
	r := run(t, "", "tui")
	assert.EqualError(t, r.err, "tui needs a terminal")
}

func TestCPUProfile(t *testing.T) {
	tests := []struct {
		name string
		args []string
		fail bool
	}{
		{"success", []string{"match", "p i l o t"}, false},
		{"command error", []string{"match", "p x!y"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "cpu.pprof")
			r := run(t, "", append(tt.args, "--cpu-profile", path)...)
			if tt.fail {
				require.Error(t, r.err)
			} else {
				require.NoError(t, r.err)
			}

			// The profile is only written out once profiling stops.
			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}
