// Package dictionary provides the word lists searched when a caller supplies none.
//
// Two dictionaries are bundled into the binary and parsed on first use. Words can also be
// loaded from a file or from BigQuery by front ends that want their own list.
package dictionary

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"crosswarped.com/wrd/internal/index"
)

// Name identifies a bundled dictionary.
type Name string

const (
	// Moby is a general list of common English words.
	Moby Name = "moby"
	// Gwicks is a list of four to six letter words suited to guessing games.
	Gwicks Name = "gwicks"

	DefaultName = Moby
)

// ErrUnknownDictionary is returned by ParseName for names that are not bundled.
var ErrUnknownDictionary = errors.New("unknown dictionary")

var (
	//go:embed data/moby.txt
	mobyData []byte

	//go:embed data/gwicks.json
	gwicksData []byte
)

type bundle struct {
	data []byte

	once  sync.Once
	words []string
	index *index.Index
}

func (b *bundle) load(name Name) {
	b.once.Do(func() {
		words, err := Parse(b.data)
		if err != nil {
			panic(fmt.Sprintf("bundled dictionary %s: %v", name, err))
		}
		b.words = words
		b.index = index.New(words)
	})
}

var bundles = map[Name]*bundle{
	Moby:   {data: mobyData},
	Gwicks: {data: gwicksData},
}

// Names lists the bundled dictionaries, the default first.
func Names() []Name {
	return []Name{Moby, Gwicks}
}

// ParseName resolves a dictionary name as typed by a user.
func ParseName(s string) (Name, error) {
	name := Name(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := bundles[name]; !ok {
		return "", fmt.Errorf("%w %q, want one of %v", ErrUnknownDictionary, s, Names())
	}
	return name, nil
}

func lookup(name Name) *bundle {
	b, ok := bundles[name]
	if !ok {
		panic(fmt.Sprintf("unknown dictionary %q", name))
	}
	b.load(name)
	return b
}

// Words returns the sorted words of a bundled dictionary. The slice is shared and must not be
// modified. It panics if name is not bundled.
func Words(name Name) []string {
	return lookup(name).words
}

// Default returns the words of the default dictionary.
func Default() []string {
	return Words(DefaultName)
}

// Index returns the search index over Words(name), built once.
func Index(name Name) *index.Index {
	return lookup(name).index
}

// Parse reads a word list given either as a JSON array of strings or one word per line. Lines
// starting with # are comments. Words are trimmed, must be lowercase a-z, and come back sorted
// without duplicates.
func Parse(data []byte) ([]string, error) {
	trimmed := strings.TrimSpace(string(data))

	var raw []string
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
			return nil, fmt.Errorf("parse word list: %w", err)
		}
	} else {
		for line := range strings.Lines(trimmed) {
			if strings.HasPrefix(strings.TrimSpace(line), "#") {
				continue
			}
			raw = append(raw, line)
		}
	}

	words := make([]string, 0, len(raw))
	for _, word := range raw {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		if err := validate(word); err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	return sortWords(words), nil
}

func validate(word string) error {
	for _, r := range word {
		if r < 'a' || r > 'z' {
			return fmt.Errorf("word %s contains non-lowercase letter %q", word, r)
		}
	}
	return nil
}

func sortWords(words []string) []string {
	slices.Sort(words)
	return slices.Compact(words)
}
