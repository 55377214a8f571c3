// Package tui is the interactive terminal front end: a pattern search tab, a guess solver tab
// and a settings tab.
package tui

import (
	"context"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"crosswarped.com/wrd"
	"crosswarped.com/wrd/pkg/dictionary"
)

const gridColumns = 10

// view is one tab. Every message reaches every view so that inactive tabs can follow shared
// changes; key messages only reach the active one.
type view interface {
	label() string
	update(msg tea.Msg) tea.Cmd
	render(width int) string
	focus() tea.Cmd
	blur()
}

// Options configure the program.
type Options struct {
	Dictionary dictionary.Name
	// Words, when set, replaces the dictionary until another one is picked in settings.
	Words  []string
	Logger *slog.Logger
}

// shared is the state all tabs read.
type shared struct {
	dictionary dictionary.Name
	words      []string
	matcher    *wrd.Matcher
	logger     *slog.Logger
}

func (s *shared) use(name dictionary.Name) {
	s.dictionary = name
	s.words = nil
	s.matcher = wrd.NewDictionaryMatcher(name)
}

func (s *shared) source() string {
	if s.words != nil {
		return "custom list"
	}
	return string(s.dictionary)
}

func (s *shared) newSession() *wrd.Session {
	opts := []wrd.SessionOption{wrd.WithLogger(s.logger)}
	if s.words != nil {
		opts = append(opts, wrd.WithWords(s.words))
	} else {
		opts = append(opts, wrd.WithDictionary(s.dictionary))
	}
	return wrd.NewSession(opts...)
}

// dictionaryChangedMsg is sent once the settings tab has switched dictionaries.
type dictionaryChangedMsg struct {
	name dictionary.Name
}

// Model is the bubbletea model of the program.
type Model struct {
	shared *shared
	views  []view
	active int
	width  int
}

func New(opts Options) Model {
	s := &shared{logger: opts.Logger}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	name := opts.Dictionary
	if name == "" {
		name = dictionary.DefaultName
	}
	s.use(name)
	if opts.Words != nil {
		s.words = opts.Words
		s.matcher = wrd.NewMatcher(opts.Words)
	}

	m := Model{
		shared: s,
		views: []view{
			newMatchView(s),
			newNotwordleView(s),
			newSettingsView(s),
		},
		width: 80,
	}
	m.views[0].focus()
	return m
}

// Run starts the program on the terminal and blocks until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	_, err := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.views[m.active].focus()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "ctrl+right":
			return m.switchTo((m.active + 1) % len(m.views))
		case "ctrl+left":
			return m.switchTo((m.active + len(m.views) - 1) % len(m.views))
		case "f1":
			return m.switchTo(0)
		case "f2":
			return m.switchTo(1)
		case "f3":
			return m.switchTo(2)
		}
		return m, m.views[m.active].update(msg)

	case dictionaryChangedMsg:
		m.shared.logger.Debug("dictionary changed", "dictionary", msg.name)
	}

	var cmds []tea.Cmd
	for _, v := range m.views {
		cmds = append(cmds, v.update(msg))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) switchTo(i int) (tea.Model, tea.Cmd) {
	if i == m.active {
		return m, nil
	}
	m.views[m.active].blur()
	m.active = i
	return m, m.views[i].focus()
}

func (m Model) View() string {
	tabs := make([]string, len(m.views))
	for i, v := range m.views {
		style := inactiveTabStyle
		if i == m.active {
			style = activeTabStyle
		}
		tabs[i] = style.Render(v.label())
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString(sourceStyle.Render("  " + m.shared.source()))
	b.WriteString("\n\n")
	b.WriteString(m.views[m.active].render(m.width))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("f1-f3 or ctrl+←/→ switch tabs • tab next field • esc quit"))
	return b.String()
}
