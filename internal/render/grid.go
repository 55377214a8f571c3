package render

import (
	"fmt"
	"strings"
)

// Grid lays a word list out in rows of a fixed number of columns, left to right then top to
// bottom. The last row may be short.
type Grid struct {
	cells [][]string
}

// NewGrid panics if columns is not positive.
func NewGrid(words []string, columns int) Grid {
	if columns <= 0 {
		panic(fmt.Sprintf("grid needs at least one column, got %d", columns))
	}
	var g Grid
	for start := 0; start < len(words); start += columns {
		end := min(start+columns, len(words))
		g.cells = append(g.cells, words[start:end])
	}
	return g
}

func (g Grid) Height() int {
	return len(g.cells)
}

// Rows returns the words of each row.
func (g Grid) Rows() [][]string {
	return g.cells
}

// Repr renders one line per row with every word preceded by a tab, each word passed through
// style first.
func (g Grid) Repr(style func(string) string) string {
	lines := make([]string, g.Height())
	for y, row := range g.cells {
		var b strings.Builder
		for _, word := range row {
			b.WriteByte('\t')
			b.WriteString(style(word))
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}
