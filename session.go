package wrd

import (
	"fmt"
	"log/slog"
	"strings"

	"crosswarped.com/wrd/internal/index"
	"crosswarped.com/wrd/pkg/dictionary"
	"crosswarped.com/wrd/pkg/primitives"
)

// Session narrows a word list down as guess results come in. A session belongs to one solver
// and is not safe for concurrent use.
type Session struct {
	words  *index.Index
	logger *slog.Logger

	history [][]primitives.GuessOutcome
	state   ConstraintState
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithWords makes the session search words instead of the default dictionary. The slice must
// not be modified afterwards.
func WithWords(words []string) SessionOption {
	return func(s *Session) {
		s.words = index.New(words)
	}
}

// WithDictionary makes the session search a bundled dictionary.
func WithDictionary(name dictionary.Name) SessionOption {
	return func(s *Session) {
		s.words = dictionary.Index(name)
	}
}

func WithLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

func NewSession(opts ...SessionOption) *Session {
	s := &Session{}
	for _, opt := range opts {
		opt(s)
	}
	if s.words == nil {
		s.words = dictionary.Index(dictionary.DefaultName)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// RegisterGuessResult adds one guess result (see primitives.ParseGuessResult) to the session
// and returns the words still possible along with the parsed result.
//
// A result that does not parse, or whose length differs from the previous one, is rejected and
// leaves the session unchanged.
func (s *Session) RegisterGuessResult(raw string) ([]string, []primitives.GuessOutcome, error) {
	outcomes, err := primitives.ParseGuessResult(raw)
	if err != nil {
		return nil, nil, err
	}

	if n := len(s.history); n > 0 {
		if previous := len(s.history[n-1]); previous != len(outcomes) {
			return nil, nil, &LengthMismatchError{Previous: previous, Got: len(outcomes)}
		}
	}

	s.history = append(s.history, outcomes)
	s.state = Fold(s.history)

	matches := s.Matches()
	s.logger.Debug("registered guess",
		"guess", primitives.FormatGuessResult(outcomes),
		"guesses", len(s.history),
		"pattern", s.state.Pattern.String(),
		"include", s.state.Include.String(),
		"exclude", s.state.Exclude.String(),
		"remaining", len(matches),
	)
	return matches, outcomes, nil
}

// GuessReport is the outcome of registering one guess of a batch.
type GuessReport struct {
	Outcomes []primitives.GuessOutcome
	Matches  []string
}

// RegisterGuessResults registers the comma separated guess results of batch in order. Blank
// segments are skipped. It stops at the first error, returning the reports of the guesses
// registered before it; those stay registered.
func (s *Session) RegisterGuessResults(batch string) ([]GuessReport, error) {
	var reports []GuessReport
	for i, segment := range strings.Split(batch, ",") {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		matches, outcomes, err := s.RegisterGuessResult(segment)
		if err != nil {
			return reports, fmt.Errorf("guess %d: %w", i+1, err)
		}
		reports = append(reports, GuessReport{Outcomes: outcomes, Matches: matches})
	}
	return reports, nil
}

// Matches returns the words possible under the current state. Before any guess that is every
// word.
func (s *Session) Matches() []string {
	if len(s.history) == 0 {
		return s.words.Filter(primitives.AnyWord(), primitives.Constraints{})
	}
	return s.words.Filter(s.state.Pattern, s.state.Constraints())
}

// State returns a copy of the current constraint state.
func (s *Session) State() ConstraintState {
	return s.state.clone()
}

// History returns a copy of the registered guess results, oldest first.
func (s *Session) History() [][]primitives.GuessOutcome {
	history := make([][]primitives.GuessOutcome, len(s.history))
	for i, guess := range s.history {
		history[i] = append([]primitives.GuessOutcome(nil), guess...)
	}
	return history
}

// Len returns the number of registered guesses.
func (s *Session) Len() int {
	return len(s.history)
}

// WordLength returns the length every further guess must have, or 0 before the first guess.
func (s *Session) WordLength() int {
	if len(s.history) == 0 {
		return 0
	}
	return len(s.history[0])
}

// Reset forgets every guess. The word source is kept.
func (s *Session) Reset() {
	s.history = nil
	s.state = ConstraintState{}
}
