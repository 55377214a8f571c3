package primitives

import "errors"

var (
	// ErrInvalidPattern is matched by every error ParsePattern returns.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrInvalidGuess is matched by every error ParseGuessResult returns.
	ErrInvalidGuess = errors.New("invalid guess result")
)

// SyntaxError reports input that does not follow the pattern or guess-result grammar.
type SyntaxError struct {
	// Token is the exact offending token. It is empty when the whole input was empty.
	Token string

	grammar error
}

func (e *SyntaxError) Error() string {
	if e.Token == "" {
		return "invalid empty input"
	}
	return "invalid input " + e.Token
}

func (e *SyntaxError) Unwrap() error {
	return e.grammar
}
