package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"crosswarped.com/wrd/pkg/dictionary"
)

// settingsView picks the dictionary the other tabs search.
type settingsView struct {
	shared  *shared
	names   []dictionary.Name
	cursor  int
	focused bool
}

func newSettingsView(s *shared) *settingsView {
	v := &settingsView{shared: s, names: dictionary.Names()}
	for i, name := range v.names {
		if name == s.dictionary {
			v.cursor = i
		}
	}
	return v
}

func (v *settingsView) label() string { return "Settings" }

func (v *settingsView) focus() tea.Cmd {
	v.focused = true
	return nil
}

func (v *settingsView) blur() {
	v.focused = false
}

func (v *settingsView) update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "up", "k", "shift+tab":
		v.cursor = (v.cursor + len(v.names) - 1) % len(v.names)
	case "down", "j", "tab":
		v.cursor = (v.cursor + 1) % len(v.names)
	case "enter", " ":
		name := v.names[v.cursor]
		if name == v.shared.dictionary && v.shared.words == nil {
			return nil
		}
		v.shared.use(name)
		return func() tea.Msg { return dictionaryChangedMsg{name: name} }
	}
	return nil
}

func (v *settingsView) render(int) string {
	var b strings.Builder
	b.WriteString("dictionary\n\n")
	for i, name := range v.names {
		cursor := "  "
		if i == v.cursor && v.focused {
			cursor = "> "
		}
		mark := "( )"
		if name == v.shared.dictionary && v.shared.words == nil {
			mark = "(•)"
		}
		line := fmt.Sprintf("%s%s %-8s %d words", cursor, mark, name, len(dictionary.Words(name)))
		if i == v.cursor {
			line = countStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ choose • enter use"))
	return b.String()
}
