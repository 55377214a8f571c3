package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"crosswarped.com/wrd"
)

// notwordleView narrows the word source down one guess result at a time.
type notwordleView struct {
	shared  *shared
	input   textinput.Model
	session *wrd.Session

	matches []string
	err     error
}

func newNotwordleView(s *shared) *notwordleView {
	in := textinput.New()
	in.Prompt = "guess "
	in.Placeholder = "p ?l !a t !e"
	in.CharLimit = 256

	v := &notwordleView{shared: s, input: in}
	v.reset()
	return v
}

func (v *notwordleView) label() string { return "Notwordle" }

func (v *notwordleView) focus() tea.Cmd {
	return v.input.Focus()
}

func (v *notwordleView) blur() {
	v.input.Blur()
}

func (v *notwordleView) reset() {
	v.session = v.shared.newSession()
	v.matches = nil
	v.err = nil
	v.input.Reset()
}

func (v *notwordleView) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dictionaryChangedMsg:
		v.reset()
		return nil
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			v.submit()
			return nil
		case "ctrl+r":
			v.reset()
			return nil
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return cmd
	}
	return nil
}

// submit registers the typed guess results. The ones before a bad one stay registered and are
// cleared from the input; the bad one and everything after it stay for correcting.
func (v *notwordleView) submit() {
	value := v.input.Value()
	if strings.TrimSpace(value) == "" {
		return
	}
	reports, err := v.session.RegisterGuessResults(value)
	if len(reports) > 0 {
		v.matches = reports[len(reports)-1].Matches
	}
	v.err = err
	switch {
	case err == nil:
		v.input.Reset()
	case len(reports) > 0:
		v.input.SetValue(unregistered(value, len(reports)))
	}
}

// unregistered returns what is left of batch after its first n non-blank guesses.
func unregistered(batch string, n int) string {
	segments := strings.Split(batch, ",")
	for i, segment := range segments {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		if n == 0 {
			return strings.TrimSpace(strings.Join(segments[i:], ","))
		}
		n--
	}
	return ""
}

func (v *notwordleView) render(int) string {
	var b strings.Builder
	b.WriteString(v.input.View())
	b.WriteString("\n\n")

	for _, guess := range v.session.History() {
		b.WriteString("  ")
		b.WriteString(renderGuess(guess))
		b.WriteByte('\n')
	}
	if v.err != nil {
		b.WriteString(errorStyle.Render(v.err.Error()))
		b.WriteByte('\n')
	}

	if v.session.Len() == 0 {
		b.WriteString(helpStyle.Render("enter a guess result: p right, ?p elsewhere, !p absent • ctrl+r starts over"))
		return b.String()
	}
	b.WriteByte('\n')
	b.WriteString(renderCount(len(v.matches)))
	b.WriteByte('\n')
	b.WriteString(renderWords(v.matches))
	return b.String()
}
