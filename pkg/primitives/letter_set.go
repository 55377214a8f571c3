package primitives

import (
	"fmt"
	"iter"
	"math/bits"
	"strings"
)

const (
	minLetter = 'a'
	maxLetter = 'z'

	numLetters = maxLetter - minLetter + 1
)

// LetterSet efficiently represents a set of lowercase ASCII letters.
//
// Besides membership it remembers the order letters were first added in, so a set built from
// "tol" prints back as "tol" rather than "lot". Equality is by membership only.
type LetterSet struct {
	mask  uint32
	order string
}

// NewLetterSet builds a set from the letters of s. Repeated letters are kept once.
func NewLetterSet(s string) (LetterSet, error) {
	var set LetterSet
	for _, r := range s {
		if err := set.Add(r); err != nil {
			return LetterSet{}, err
		}
	}
	return set, nil
}

// MustLetterSet is like NewLetterSet but panics on letters outside a-z.
func MustLetterSet(s string) LetterSet {
	set, err := NewLetterSet(s)
	if err != nil {
		panic(err)
	}
	return set
}

// IsLetter reports whether r is a lowercase ASCII letter.
func IsLetter(r rune) bool {
	return r >= minLetter && r <= maxLetter
}

func bit(r rune) uint32 {
	return 1 << (r - minLetter)
}

// Add adds a letter to the set.
func (s *LetterSet) Add(r rune) error {
	if !IsLetter(r) {
		return fmt.Errorf("character %q is out of range", r)
	}

	if s.mask&bit(r) != 0 {
		return nil
	}

	s.mask |= bit(r)
	s.order += string(r)
	return nil
}

// AddAll adds all letters from another set to this set, in the other set's order.
func (s *LetterSet) AddAll(other LetterSet) {
	if s.mask|other.mask == s.mask {
		return
	}
	for _, r := range other.order {
		if s.mask&bit(r) == 0 {
			s.mask |= bit(r)
			s.order += string(r)
		}
	}
}

// RemoveAll removes every letter of other from the set, keeping the order of what remains.
func (s *LetterSet) RemoveAll(other LetterSet) {
	if s.mask&other.mask == 0 {
		return
	}
	s.mask &^= other.mask
	s.order = strings.Map(func(r rune) rune {
		if other.mask&bit(r) != 0 {
			return -1
		}
		return r
	}, s.order)
}

// Contains checks if a character is in the set. Characters outside a-z are never members.
func (s LetterSet) Contains(r rune) bool {
	return IsLetter(r) && s.mask&bit(r) != 0
}

// ContainsByte is Contains for a single byte of an ASCII word.
func (s LetterSet) ContainsByte(b byte) bool {
	return s.Contains(rune(b))
}

// IsEmpty checks if the set has no letters.
func (s LetterSet) IsEmpty() bool {
	return s.mask == 0
}

// Count returns the number of letters in the set.
func (s LetterSet) Count() int {
	return bits.OnesCount32(s.mask)
}

// Mask returns the set as a bitmask, bit 0 being 'a'.
func (s LetterSet) Mask() uint32 {
	return s.mask
}

// Equal reports whether both sets hold the same letters, regardless of order.
func (s LetterSet) Equal(other LetterSet) bool {
	return s.mask == other.mask
}

// All iterates over the letters in insertion order.
func (s LetterSet) All() iter.Seq[rune] {
	return func(yield func(rune) bool) {
		for _, r := range s.order {
			if !yield(r) {
				return
			}
		}
	}
}

// String returns the letters in insertion order.
func (s LetterSet) String() string {
	return s.order
}
