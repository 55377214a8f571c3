package wrd

import (
	"errors"
	"fmt"
)

// ErrInvalidLetters is returned when an include, exclude or within set holds anything but a-z.
var ErrInvalidLetters = errors.New("letters must be lowercase a-z")

// LengthMismatchError is returned when a guess result does not have as many entries as the
// guesses registered before it.
type LengthMismatchError struct {
	Previous int
	Got      int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("previous had %d items, got %d items", e.Previous, e.Got)
}
