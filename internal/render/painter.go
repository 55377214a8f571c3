// Package render formats matches and guess results for terminals.
package render

import (
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"crosswarped.com/wrd/internal/config"
	"crosswarped.com/wrd/pkg/primitives"
)

// ColorEnabled decides whether output to f is colored under mode. In auto mode that is when f
// is a terminal and NO_COLOR is unset.
func ColorEnabled(mode config.ColorMode, f *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Painter colors guess results and word lists. Without color it falls back to the plain
// guess-result grammar, so its output can be pasted back in.
type Painter struct {
	enabled bool

	right         *color.Color
	wrongPosition *color.Color
	wrong         *color.Color
	word          *color.Color
}

func NewPainter(enabled bool) *Painter {
	p := &Painter{
		enabled:       enabled,
		right:         color.New(color.FgHiYellow, color.Underline),
		wrongPosition: color.New(color.FgBlue),
		wrong:         color.New(color.Faint),
		word:          color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.right, p.wrongPosition, p.wrong, p.word} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *Painter) Enabled() bool {
	return p.enabled
}

// Guess renders a guess result. Colored, the letters are run together as the guessed word.
func (p *Painter) Guess(outcomes []primitives.GuessOutcome) string {
	if !p.enabled {
		return primitives.FormatGuessResult(outcomes)
	}
	var b strings.Builder
	for _, o := range outcomes {
		b.WriteString(p.Outcome(o))
	}
	return b.String()
}

func (p *Painter) Outcome(o primitives.GuessOutcome) string {
	letter := string(o.Letter)
	switch o.Outcome {
	case primitives.Right:
		return p.right.Sprint(letter)
	case primitives.WrongPosition:
		return p.wrongPosition.Sprint(letter)
	default:
		return p.wrong.Sprint(letter)
	}
}

// Word renders one word of a match list.
func (p *Painter) Word(word string) string {
	return p.word.Sprint(word)
}

// Grid renders words in rows of columns.
func (p *Painter) Grid(words []string, columns int) string {
	return NewGrid(words, columns).Repr(p.Word)
}
