package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/particlelife/internal/matrix"
)

var (
	attractStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	repelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
	neutralStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
)

// MatrixView renders the interaction matrix with a type-colored header row
// and column. Rows are the acting type, columns the type acted on.
func MatrixView(m *matrix.Matrix, th Theme, compact bool) string {
	n := m.Size()
	var b strings.Builder

	cell := func(v float64) string {
		var s string
		if compact {
			s = shade(v)
		} else {
			s = fmt.Sprintf("%+.2f ", v)
		}
		switch {
		case v > 0.05:
			return attractStyle.Render(s)
		case v < -0.05:
			return repelStyle.Render(s)
		}
		return neutralStyle.Render(s)
	}

	pad := "      "
	if compact {
		pad = "  "
	}
	b.WriteString(pad)
	for j := 0; j < n; j++ {
		label := "●"
		if !compact {
			label = fmt.Sprintf(" %2d   ", j)
		}
		b.WriteString(lipgloss.NewStyle().Foreground(th.TypeColor(j)).Render(label))
	}
	b.WriteByte('\n')

	for i := 0; i < n; i++ {
		label := "● "
		if !compact {
			label = fmt.Sprintf("%2d ●  ", i)
		}
		b.WriteString(lipgloss.NewStyle().Foreground(th.TypeColor(i)).Render(label))
		for j := 0; j < n; j++ {
			b.WriteString(cell(m.Strength(i, j)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// shade maps a strength to a block glyph by magnitude.
func shade(v float64) string {
	blocks := []string{"·", "░", "▒", "▓", "█"}
	idx := int(math.Round(math.Abs(v) * float64(len(blocks)-1)))
	return blocks[min(idx, len(blocks)-1)]
}
