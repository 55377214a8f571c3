package primitives

import "strings"

const separator = " "

// ParsePattern compiles a space separated pattern into one token per part:
//
//	*      any single character
//	**     any number of characters, including none
//	abc    one of a, b or c
//	!abc   anything but a, b or c
//
// Consecutive ** collapse into one. Any other part fails the whole pattern with a *SyntaxError
// naming it.
func ParsePattern(input string) (Pattern, error) {
	parts := splitParts(input)
	if len(parts) == 0 {
		return nil, &SyntaxError{grammar: ErrInvalidPattern}
	}

	pattern := make(Pattern, 0, len(parts))
	for _, part := range parts {
		token, err := parseMatchToken(part)
		if err != nil {
			return nil, err
		}
		if _, ok := token.(MatchAnyLength); ok && len(pattern) > 0 {
			if _, prev := pattern[len(pattern)-1].(MatchAnyLength); prev {
				continue
			}
		}
		pattern = append(pattern, token)
	}
	return pattern, nil
}

// MustParsePattern is like ParsePattern but panics on error.
func MustParsePattern(input string) Pattern {
	p, err := ParsePattern(input)
	if err != nil {
		panic(err)
	}
	return p
}

// AnyWord returns the pattern matching every word regardless of length.
func AnyWord() Pattern {
	return Pattern{MatchAnyLength{}}
}

// AnyOfLength returns n MatchAny tokens.
func AnyOfLength(n int) Pattern {
	p := make(Pattern, n)
	for i := range p {
		p[i] = MatchAny{}
	}
	return p
}

func parseMatchToken(part string) (MatchToken, error) {
	switch part {
	case "*":
		return MatchAny{}, nil
	case "**":
		return MatchAnyLength{}, nil
	}

	letters, exclude := strings.CutPrefix(part, "!")
	if !isLetters(letters) {
		return nil, &SyntaxError{Token: part, grammar: ErrInvalidPattern}
	}

	// isLetters guarantees every rune is in range.
	set := MustLetterSet(letters)
	if exclude {
		return ExcludeAllIn{Letters: set}, nil
	}
	return MatchAnyIn{Letters: set}, nil
}

// isLetters reports whether s is one or more lowercase ASCII letters.
func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !IsLetter(r) {
			return false
		}
	}
	return true
}

func splitParts(input string) []string {
	var parts []string
	for _, part := range strings.Split(input, separator) {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
