package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"crosswarped.com/wrd/internal/render"
	"crosswarped.com/wrd/pkg/primitives"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Border(lipgloss.HiddenBorder(), false, false, true, false).
				Padding(0, 1)

	sourceStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	countStyle  = lipgloss.NewStyle().Bold(true)
	wordStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))

	rightStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Underline(true)
	wrongPositionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	wrongStyle         = lipgloss.NewStyle().Faint(true)
)

const maxGridRows = 20

func renderGuess(outcomes []primitives.GuessOutcome) string {
	var b strings.Builder
	for _, o := range outcomes {
		letter := string(o.Letter)
		switch o.Outcome {
		case primitives.Right:
			b.WriteString(rightStyle.Render(letter))
		case primitives.WrongPosition:
			b.WriteString(wrongPositionStyle.Render(letter))
		default:
			b.WriteString(wrongStyle.Render(letter))
		}
	}
	return b.String()
}

// renderWords lays words out in gridColumns aligned columns, cut off after maxGridRows rows.
func renderWords(words []string) string {
	if len(words) == 0 {
		return helpStyle.Render("no matches")
	}

	width := 0
	for _, w := range words {
		width = max(width, len(w))
	}
	cell := wordStyle.Width(width + 2)

	g := render.NewGrid(words, gridColumns)
	rows := g.Rows()
	more := 0
	if len(rows) > maxGridRows {
		for _, row := range rows[maxGridRows:] {
			more += len(row)
		}
		rows = rows[:maxGridRows]
	}

	lines := make([]string, 0, len(rows)+1)
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, w := range row {
			cells[i] = cell.Render(w)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	if more > 0 {
		lines = append(lines, helpStyle.Render(fmt.Sprintf("… and %d more", more)))
	}
	return strings.Join(lines, "\n")
}

func renderCount(n int) string {
	if n == 1 {
		return countStyle.Render("1 match")
	}
	return countStyle.Render(fmt.Sprintf("%d matches", n))
}
