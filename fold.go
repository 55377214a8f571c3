package wrd

import (
	"maps"

	"crosswarped.com/wrd/pkg/primitives"
)

// ConstraintState is everything known about the hidden word after a sequence of guesses.
type ConstraintState struct {
	// Pattern has one token per position. It is empty before the first guess.
	Pattern primitives.Pattern
	// Include letters are known to be in the word.
	Include primitives.LetterSet
	// Exclude letters are known not to be in the word. It never shares a letter with Include.
	Exclude primitives.LetterSet
	// Bounds record letter counts known beyond Include and Exclude, such as a letter occurring
	// exactly once or at least twice.
	Bounds map[rune]primitives.Bound
}

// Constraints returns the whole-word part of the state as filter constraints.
func (s ConstraintState) Constraints() primitives.Constraints {
	return primitives.Constraints{
		Include: s.Include,
		Exclude: s.Exclude,
		Bounds:  s.Bounds,
	}
}

func (s ConstraintState) clone() ConstraintState {
	s.Pattern = append(primitives.Pattern(nil), s.Pattern...)
	s.Bounds = maps.Clone(s.Bounds)
	return s
}

// Fold computes the constraint state for a guess history from scratch.
//
// At each position a Right letter becomes the position's token. Wrong and WrongPosition letters
// are excluded from their position instead, unless the position has a Right letter. Right and
// WrongPosition letters are included. Wrong letters are excluded unless some guess includes
// them.
//
// Letter counts follow the game: if a guess marks a letter Right or WrongPosition n times, the
// word holds at least n of it, and if the same guess also marks it Wrong, exactly n. When the
// history contradicts itself the lower limit wins.
//
// Every guess is expected to have the length of the first. Positions past it are ignored.
func Fold(history [][]primitives.GuessOutcome) ConstraintState {
	if len(history) == 0 {
		return ConstraintState{}
	}

	length := len(history[0])
	right := make([]primitives.LetterSet, length)
	excluded := make([]primitives.LetterSet, length)
	var include, wrong primitives.LetterSet
	var mins, maxs [26]int
	for i := range maxs {
		maxs[i] = -1
	}

	for _, guess := range history {
		var marked [26]int
		var capped primitives.LetterSet
		for i, o := range guess {
			if i >= length || !primitives.IsLetter(o.Letter) {
				continue
			}
			// IsLetter guarantees Add succeeds.
			switch o.Outcome {
			case primitives.Right:
				_ = right[i].Add(o.Letter)
				_ = include.Add(o.Letter)
				marked[o.Letter-'a']++
			case primitives.WrongPosition:
				_ = excluded[i].Add(o.Letter)
				_ = include.Add(o.Letter)
				marked[o.Letter-'a']++
			case primitives.Wrong:
				_ = excluded[i].Add(o.Letter)
				_ = wrong.Add(o.Letter)
				_ = capped.Add(o.Letter)
			}
		}

		for l, n := range marked {
			mins[l] = max(mins[l], n)
		}
		for r := range capped.All() {
			l := r - 'a'
			if maxs[l] < 0 || marked[l] < maxs[l] {
				maxs[l] = marked[l]
			}
		}
	}

	state := ConstraintState{
		Pattern: make(primitives.Pattern, length),
		Include: include,
	}
	for i := range length {
		switch {
		case !right[i].IsEmpty():
			state.Pattern[i] = primitives.MatchAnyIn{Letters: right[i]}
		case !excluded[i].IsEmpty():
			state.Pattern[i] = primitives.ExcludeAllIn{Letters: excluded[i]}
		default:
			state.Pattern[i] = primitives.MatchAny{}
		}
	}

	state.Exclude = wrong
	state.Exclude.RemoveAll(include)

	for l := range 26 {
		b := primitives.Bound{Min: mins[l], Max: maxs[l]}
		if b.Max < b.Min {
			b.Max = -1
		}
		// Include and Exclude already cover "at least one" and "none".
		if b.Max == 0 || (b.Max < 0 && b.Min <= 1) {
			continue
		}
		if state.Bounds == nil {
			state.Bounds = make(map[rune]primitives.Bound)
		}
		state.Bounds[rune('a'+l)] = b
	}
	return state
}
