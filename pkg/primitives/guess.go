package primitives

import (
	"fmt"
	"strings"
)

// Outcome is the result for one letter of a guess compared against the hidden word.
type Outcome int

const (
	// Right means the letter is in the word at this position.
	Right Outcome = iota
	// WrongPosition means the letter is in the word, but elsewhere.
	WrongPosition
	// Wrong means the word holds no more of this letter than the guess marked Right or
	// WrongPosition.
	Wrong
)

func (o Outcome) String() string {
	switch o {
	case Right:
		return "right"
	case WrongPosition:
		return "wrong-position"
	case Wrong:
		return "wrong"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// prefix is the marker written before the letter in a guess-result string.
func (o Outcome) prefix() string {
	switch o {
	case WrongPosition:
		return "?"
	case Wrong:
		return "!"
	}
	return ""
}

// GuessOutcome is the outcome of a single letter of a guess.
type GuessOutcome struct {
	Outcome Outcome
	Letter  rune
}

func (g GuessOutcome) String() string {
	return g.Outcome.prefix() + string(g.Letter)
}

// ParseGuessResult reads a space separated guess result, one entry per letter:
//
//	p    p is at this position
//	?p   p is in the word at another position
//	!p   p is not in the word (beyond the other marks for p)
//
// Any other entry fails the whole result with a *SyntaxError naming it.
func ParseGuessResult(input string) ([]GuessOutcome, error) {
	entries := splitParts(input)
	if len(entries) == 0 {
		return nil, &SyntaxError{grammar: ErrInvalidGuess}
	}

	result := make([]GuessOutcome, 0, len(entries))
	for _, entry := range entries {
		outcome, err := parseGuessOutcome(entry)
		if err != nil {
			return nil, err
		}
		result = append(result, outcome)
	}
	return result, nil
}

func parseGuessOutcome(entry string) (GuessOutcome, error) {
	outcome := Right
	letter := entry
	switch {
	case strings.HasPrefix(entry, "?"):
		outcome, letter = WrongPosition, entry[1:]
	case strings.HasPrefix(entry, "!"):
		outcome, letter = Wrong, entry[1:]
	}

	if len(letter) != 1 || !IsLetter(rune(letter[0])) {
		return GuessOutcome{}, &SyntaxError{Token: entry, grammar: ErrInvalidGuess}
	}
	return GuessOutcome{Outcome: outcome, Letter: rune(letter[0])}, nil
}

// FormatGuessResult renders outcomes in the grammar ParseGuessResult reads.
func FormatGuessResult(outcomes []GuessOutcome) string {
	parts := make([]string, len(outcomes))
	for i, o := range outcomes {
		parts[i] = o.String()
	}
	return strings.Join(parts, separator)
}

// GuessWord returns the letters of the guess the outcomes describe.
func GuessWord(outcomes []GuessOutcome) string {
	var b strings.Builder
	for _, o := range outcomes {
		b.WriteRune(o.Letter)
	}
	return b.String()
}

// Score compares guess against target the way the game does: exact positions first, then each
// remaining target letter can mark one other occurrence as WrongPosition.
func Score(guess, target string) ([]GuessOutcome, error) {
	if len(guess) != len(target) {
		return nil, fmt.Errorf("guess %q and target %q differ in length", guess, target)
	}
	if !isLetters(guess) || !isLetters(target) {
		return nil, fmt.Errorf("guess %q and target %q must be lowercase letters", guess, target)
	}

	var remaining [numLetters]int
	outcomes := make([]GuessOutcome, len(guess))
	for i := range guess {
		if guess[i] == target[i] {
			outcomes[i] = GuessOutcome{Outcome: Right, Letter: rune(guess[i])}
			continue
		}
		remaining[target[i]-minLetter]++
	}
	for i := range guess {
		if guess[i] == target[i] {
			continue
		}
		c := guess[i] - minLetter
		if remaining[c] > 0 {
			remaining[c]--
			outcomes[i] = GuessOutcome{Outcome: WrongPosition, Letter: rune(guess[i])}
		} else {
			outcomes[i] = GuessOutcome{Outcome: Wrong, Letter: rune(guess[i])}
		}
	}
	return outcomes, nil
}
