package primitives

import (
	"strings"
)

// MatchToken is a constraint on a single position of a word, or, for MatchAnyLength, on a run of
// positions.
type MatchToken interface {
	// Matches reports whether the character at the token's position satisfies it.
	Matches(b byte) bool

	String() string

	matchToken() // MatchToken is only implemented by the types below.
}

// MatchAny is satisfied by any single character.
type MatchAny struct{}

// MatchAnyIn is satisfied by a character in Letters.
type MatchAnyIn struct {
	Letters LetterSet
}

// ExcludeAllIn is satisfied by a character not in Letters.
type ExcludeAllIn struct {
	Letters LetterSet
}

// MatchAnyLength is satisfied by zero or more characters of any kind.
type MatchAnyLength struct{}

func (MatchAny) Matches(byte) bool       { return true }
func (MatchAnyLength) Matches(byte) bool { return true }

func (t MatchAnyIn) Matches(b byte) bool {
	return t.Letters.ContainsByte(b)
}

func (t ExcludeAllIn) Matches(b byte) bool {
	return !t.Letters.ContainsByte(b)
}

func (MatchAny) String() string       { return "*" }
func (MatchAnyLength) String() string { return "**" }
func (t MatchAnyIn) String() string   { return t.Letters.String() }
func (t ExcludeAllIn) String() string { return "!" + t.Letters.String() }

func (MatchAny) matchToken()       {}
func (MatchAnyIn) matchToken()     {}
func (ExcludeAllIn) matchToken()   {}
func (MatchAnyLength) matchToken() {}

// TokensEqual reports whether two tokens are the same constraint. Letter sets compare by
// membership.
func TokensEqual(a, b MatchToken) bool {
	switch a := a.(type) {
	case MatchAny:
		_, ok := b.(MatchAny)
		return ok
	case MatchAnyLength:
		_, ok := b.(MatchAnyLength)
		return ok
	case MatchAnyIn:
		b, ok := b.(MatchAnyIn)
		return ok && a.Letters.Equal(b.Letters)
	case ExcludeAllIn:
		b, ok := b.(ExcludeAllIn)
		return ok && a.Letters.Equal(b.Letters)
	}
	return false
}

// Pattern is an ordered sequence of match tokens, one per word position, where MatchAnyLength
// stands for any number of positions.
type Pattern []MatchToken

// FixedLen returns the number of single-position tokens in the pattern.
func (p Pattern) FixedLen() int {
	n := 0
	for _, t := range p {
		if _, ok := t.(MatchAnyLength); !ok {
			n++
		}
	}
	return n
}

// HasAnyLength reports whether the pattern contains a MatchAnyLength token.
func (p Pattern) HasAnyLength() bool {
	return p.FixedLen() != len(p)
}

// AcceptsLength reports whether a word of length n can possibly match the pattern.
func (p Pattern) AcceptsLength(n int) bool {
	if p.HasAnyLength() {
		return n >= p.FixedLen()
	}
	return n == len(p)
}

// Match reports whether word satisfies every token of the pattern positionally.
func (p Pattern) Match(word string) bool {
	if !p.HasAnyLength() {
		if len(word) != len(p) {
			return false
		}
		for i, t := range p {
			if !t.Matches(word[i]) {
				return false
			}
		}
		return true
	}

	// Wildcard matching, backtracking to the most recent MatchAnyLength on failure.
	ti, wi := 0, 0
	star, mark := -1, 0
	for wi < len(word) {
		if ti < len(p) {
			if _, ok := p[ti].(MatchAnyLength); ok {
				star, mark = ti, wi
				ti++
				continue
			}
			if p[ti].Matches(word[wi]) {
				ti++
				wi++
				continue
			}
		}
		if star < 0 {
			return false
		}
		ti = star + 1
		mark++
		wi = mark
	}
	for ; ti < len(p); ti++ {
		if _, ok := p[ti].(MatchAnyLength); !ok {
			return false
		}
	}
	return true
}

// Equal reports whether both patterns hold the same constraints in the same positions.
func (p Pattern) Equal(other Pattern) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if !TokensEqual(p[i], other[i]) {
			return false
		}
	}
	return true
}

// String renders the pattern in the same grammar ParsePattern reads.
func (p Pattern) String() string {
	parts := make([]string, len(p))
	for i, t := range p {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}
