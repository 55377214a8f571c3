// Package index speeds up filtering a fixed word list by keeping, per word length, bitsets of
// the words holding each letter at each position.
package index

import (
	"slices"
	"sync"

	"github.com/bits-and-blooms/bitset"

	"crosswarped.com/wrd/pkg/primitives"
)

const numLetters = 26

// Index is an immutable, concurrency-safe index over a word list. Filter results keep the
// order of the list the index was built from.
type Index struct {
	words    []string
	byLength map[int]*group
	lengths  []int
}

// group holds the words of one length.
type group struct {
	length int
	ids    []int // indexes into Index.words, ascending

	masksOnce sync.Once
	// at[pos*numLetters+letter] = words with letter at pos. nil means no such word.
	at []*bitset.BitSet
	// has[letter] = words holding letter anywhere.
	has [numLetters]*bitset.BitSet
	// irregular = words holding a character outside a-z.
	irregular *bitset.BitSet
}

// New indexes words. The slice is retained and must not be modified afterwards.
func New(words []string) *Index {
	x := &Index{
		words:    words,
		byLength: make(map[int]*group),
	}
	for id, word := range words {
		g, ok := x.byLength[len(word)]
		if !ok {
			g = &group{length: len(word)}
			x.byLength[len(word)] = g
			x.lengths = append(x.lengths, len(word))
		}
		g.ids = append(g.ids, id)
	}
	slices.Sort(x.lengths)
	return x
}

// Words returns the indexed words in their original order.
func (x *Index) Words() []string {
	return x.words
}

// Len returns the number of indexed words.
func (x *Index) Len() int {
	return len(x.words)
}

// Filter returns the indexed words accepted by c for pattern p, in original order. The result
// is always the same as running c.Accepts over every word.
func (x *Index) Filter(p primitives.Pattern, c primitives.Constraints) []string {
	var ids []int
	if p.HasAnyLength() {
		for _, length := range x.lengths {
			if length < p.FixedLen() {
				continue
			}
			g := x.byLength[length]
			g.ensureMasks(x.words)
			ids = g.collect(ids, x.words, p, c, g.candidates(nil, c))
		}
		// Groups are visited by length, so ids from different groups interleave.
		slices.Sort(ids)
	} else if g, ok := x.byLength[len(p)]; ok {
		g.ensureMasks(x.words)
		ids = g.collect(ids, x.words, p, c, g.candidates(p, c))
	}

	result := make([]string, len(ids))
	for i, id := range ids {
		result[i] = x.words[id]
	}
	return result
}

func (g *group) size() uint {
	return uint(len(g.ids))
}

func (g *group) ensureMasks(words []string) {
	g.masksOnce.Do(func() {
		g.at = make([]*bitset.BitSet, g.length*numLetters)
		for i, id := range g.ids {
			word := words[id]
			for pos := 0; pos < len(word); pos++ {
				r := rune(word[pos])
				if !primitives.IsLetter(r) {
					g.irregular = g.set(g.irregular, i)
					continue
				}
				l := int(r - 'a')
				g.at[pos*numLetters+l] = g.set(g.at[pos*numLetters+l], i)
				g.has[l] = g.set(g.has[l], i)
			}
		}
	})
}

func (g *group) set(b *bitset.BitSet, i int) *bitset.BitSet {
	if b == nil {
		b = bitset.New(g.size())
	}
	return b.Set(uint(i))
}

// candidates narrows the group to the words that can pass the positional tokens of p (when p is
// not nil) and the letter sets of c. Bounds and MatchAnyLength are left to the final check.
// The masks must already be built.
func (g *group) candidates(p primitives.Pattern, c primitives.Constraints) *bitset.BitSet {
	set := bitset.New(g.size())
	set.FlipRange(0, g.size())

	for pos, token := range p {
		switch token := token.(type) {
		case primitives.MatchAnyIn:
			union := bitset.New(g.size())
			for r := range token.Letters.All() {
				if b := g.at[pos*numLetters+int(r-'a')]; b != nil {
					union.InPlaceUnion(b)
				}
			}
			set.InPlaceIntersection(union)
		case primitives.ExcludeAllIn:
			for r := range token.Letters.All() {
				if b := g.at[pos*numLetters+int(r-'a')]; b != nil {
					set.InPlaceDifference(b)
				}
			}
		}
	}

	for r := range c.Include.All() {
		b := g.has[r-'a']
		if b == nil {
			set.ClearAll()
			return set
		}
		set.InPlaceIntersection(b)
	}
	for r := range c.Exclude.All() {
		if b := g.has[r-'a']; b != nil {
			set.InPlaceDifference(b)
		}
	}
	if !c.Within.IsEmpty() {
		for l := range numLetters {
			if b := g.has[l]; b != nil && !c.Within.Contains(rune('a'+l)) {
				set.InPlaceDifference(b)
			}
		}
		if g.irregular != nil {
			set.InPlaceDifference(g.irregular)
		}
	}
	return set
}

// collect appends the ids of candidate words that pass the full check.
func (g *group) collect(ids []int, words []string, p primitives.Pattern, c primitives.Constraints, set *bitset.BitSet) []int {
	for i, ok := set.NextSet(0); ok; i, ok = set.NextSet(i + 1) {
		id := g.ids[i]
		if c.Accepts(p, words[id]) {
			ids = append(ids, id)
		}
	}
	return ids
}
