package primitives

// Bound limits how many times a letter may occur in a word. A negative Max means no upper limit.
type Bound struct {
	Min int
	Max int
}

// Unbounded returns a bound with only a lower limit.
func Unbounded(n int) Bound {
	return Bound{Min: n, Max: -1}
}

func (b Bound) allows(n int) bool {
	return n >= b.Min && (b.Max < 0 || n <= b.Max)
}

// Constraints are the whole-word conditions a word must meet alongside a pattern.
type Constraints struct {
	// Include letters must each occur somewhere in the word.
	Include LetterSet
	// Exclude letters must not occur anywhere in the word.
	Exclude LetterSet
	// Within, when not empty, is the only alphabet the word may be written in.
	Within LetterSet
	// Bounds limit the number of occurrences of individual letters.
	Bounds map[rune]Bound
}

// Accepts reports whether word meets the constraints and matches p.
//
// Checks run cheapest first: length, within, include, exclude, bounds, then the pattern.
func (c Constraints) Accepts(p Pattern, word string) bool {
	if !p.AcceptsLength(len(word)) {
		return false
	}

	if !c.Within.IsEmpty() {
		for i := 0; i < len(word); i++ {
			if !c.Within.ContainsByte(word[i]) {
				return false
			}
		}
	}

	if !c.Include.IsEmpty() || !c.Exclude.IsEmpty() {
		mask := LetterMask(word)
		if mask&c.Include.mask != c.Include.mask {
			return false
		}
		if mask&c.Exclude.mask != 0 {
			return false
		}
	}

	if len(c.Bounds) > 0 {
		counts := letterCounts(word)
		for r, b := range c.Bounds {
			if !IsLetter(r) {
				continue
			}
			if !b.allows(counts[r-minLetter]) {
				return false
			}
		}
	}

	return p.Match(word)
}

// LetterMask returns the set of a-z letters occurring in word as a bitmask, bit 0 being 'a'.
func LetterMask(word string) uint32 {
	var mask uint32
	for i := 0; i < len(word); i++ {
		if r := rune(word[i]); IsLetter(r) {
			mask |= bit(r)
		}
	}
	return mask
}

func letterCounts(word string) [numLetters]int {
	var counts [numLetters]int
	for i := 0; i < len(word); i++ {
		if r := rune(word[i]); IsLetter(r) {
			counts[r-minLetter]++
		}
	}
	return counts
}
