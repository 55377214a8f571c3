package wrd

import (
	"fmt"
	"strings"

	"crosswarped.com/wrd/internal/index"
	"crosswarped.com/wrd/pkg/dictionary"
	"crosswarped.com/wrd/pkg/primitives"
)

// Options are the whole-word letter sets applied alongside a pattern. Every field is optional.
type Options struct {
	// Include letters must each occur somewhere in the word.
	Include string
	// Exclude letters must not occur anywhere in the word.
	Exclude string
	// Within, when not empty, is the only alphabet the word may use.
	Within string
}

// Constraints converts the options into letter sets. Whitespace is ignored.
func (o Options) Constraints() (primitives.Constraints, error) {
	var c primitives.Constraints
	var err error
	if c.Include, err = letters("include", o.Include); err != nil {
		return primitives.Constraints{}, err
	}
	if c.Exclude, err = letters("exclude", o.Exclude); err != nil {
		return primitives.Constraints{}, err
	}
	if c.Within, err = letters("within", o.Within); err != nil {
		return primitives.Constraints{}, err
	}
	return c, nil
}

func letters(field, s string) (primitives.LetterSet, error) {
	set, err := primitives.NewLetterSet(strings.Join(strings.Fields(s), ""))
	if err != nil {
		return primitives.LetterSet{}, fmt.Errorf("%s %q: %w", field, s, ErrInvalidLetters)
	}
	return set, nil
}

// Filter returns the words accepted by c for pattern p, in the order given.
func Filter(p primitives.Pattern, c primitives.Constraints, words []string) []string {
	result := make([]string, 0)
	for _, word := range words {
		if c.Accepts(p, word) {
			result = append(result, word)
		}
	}
	return result
}

// MatchWords compiles pattern and returns the words matching it and opts. When words is nil
// the default dictionary is searched.
func MatchWords(pattern string, opts Options, words []string) ([]string, error) {
	p, c, err := compile(pattern, opts)
	if err != nil {
		return nil, err
	}
	if words == nil {
		return dictionary.Index(dictionary.DefaultName).Filter(p, c), nil
	}
	return Filter(p, c, words), nil
}

func compile(pattern string, opts Options) (primitives.Pattern, primitives.Constraints, error) {
	p, err := primitives.ParsePattern(pattern)
	if err != nil {
		return nil, primitives.Constraints{}, err
	}
	c, err := opts.Constraints()
	if err != nil {
		return nil, primitives.Constraints{}, err
	}
	return p, c, nil
}

// Matcher matches patterns against one word source. It is safe for concurrent use.
type Matcher struct {
	index *index.Index
}

// NewMatcher returns a matcher over words. The slice must not be modified afterwards.
func NewMatcher(words []string) *Matcher {
	return &Matcher{index: index.New(words)}
}

// NewDictionaryMatcher returns a matcher over a bundled dictionary.
func NewDictionaryMatcher(name dictionary.Name) *Matcher {
	return &Matcher{index: dictionary.Index(name)}
}

// Match is MatchWords over the matcher's words.
func (m *Matcher) Match(pattern string, opts Options) ([]string, error) {
	p, c, err := compile(pattern, opts)
	if err != nil {
		return nil, err
	}
	return m.index.Filter(p, c), nil
}

// Words returns the matcher's word source.
func (m *Matcher) Words() []string {
	return m.index.Words()
}
