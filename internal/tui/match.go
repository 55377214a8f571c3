package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"crosswarped.com/wrd"
)

const (
	fieldPattern = iota
	fieldInclude
	fieldExclude
	fieldWithin
	numFields
)

// matchView searches the word source as the pattern is typed.
type matchView struct {
	shared  *shared
	inputs  [numFields]textinput.Model
	focused int

	matches []string
	err     error
}

func newMatchView(s *shared) *matchView {
	v := &matchView{shared: s}
	placeholders := [numFields]string{"* b !ar !r *", "letters in the word", "letters not in the word", "only these letters"}
	prompts := [numFields]string{"pattern ", "include ", "exclude ", "within  "}
	for i := range v.inputs {
		in := textinput.New()
		in.Prompt = prompts[i]
		in.Placeholder = placeholders[i]
		in.CharLimit = 128
		v.inputs[i] = in
	}
	return v
}

func (v *matchView) label() string { return "Match" }

func (v *matchView) focus() tea.Cmd {
	return v.inputs[v.focused].Focus()
}

func (v *matchView) blur() {
	v.inputs[v.focused].Blur()
}

func (v *matchView) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case dictionaryChangedMsg:
		v.refresh()
		return nil
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return v.move(1)
		case "shift+tab", "up":
			return v.move(numFields - 1)
		}
		var cmd tea.Cmd
		v.inputs[v.focused], cmd = v.inputs[v.focused].Update(msg)
		v.refresh()
		return cmd
	}
	return nil
}

func (v *matchView) move(by int) tea.Cmd {
	v.inputs[v.focused].Blur()
	v.focused = (v.focused + by) % numFields
	return v.inputs[v.focused].Focus()
}

func (v *matchView) refresh() {
	pattern := v.inputs[fieldPattern].Value()
	if strings.TrimSpace(pattern) == "" {
		v.matches, v.err = nil, nil
		return
	}
	v.matches, v.err = v.shared.matcher.Match(pattern, wrd.Options{
		Include: v.inputs[fieldInclude].Value(),
		Exclude: v.inputs[fieldExclude].Value(),
		Within:  v.inputs[fieldWithin].Value(),
	})
}

func (v *matchView) render(int) string {
	var b strings.Builder
	for _, in := range v.inputs {
		b.WriteString(in.View())
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	switch {
	case v.err != nil:
		b.WriteString(errorStyle.Render(v.err.Error()))
	case v.matches == nil:
		b.WriteString(helpStyle.Render("type a pattern: * any letter, ** any run, abc one of, !abc none of"))
	default:
		b.WriteString(renderCount(len(v.matches)))
		b.WriteString("\n")
		b.WriteString(renderWords(v.matches))
	}
	return b.String()
}
