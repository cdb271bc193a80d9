package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// rowPaint lays one background color under every segment of a row. Each
// styled segment ends in an ANSI reset, so plain spaces between segments
// would show the terminal background through the row.
// See: https://github.com/charmbracelet/lipgloss/discussions/78
type rowPaint struct {
	base lipgloss.Style
	gap  string
}

func newRowPaint(color string) rowPaint {
	base := lipgloss.NewStyle().Background(lipgloss.Color(color))
	return rowPaint{base: base, gap: base.Render(" ")}
}

// text renders s in style over the row color. Spaces inside s are painted
// separately because lipgloss leaves them unstyled.
func (p rowPaint) text(s string, style lipgloss.Style) string {
	if s == "" {
		return ""
	}
	styled := style.Background(p.base.GetBackground())
	var b strings.Builder
	for i, word := range strings.Split(s, " ") {
		if i > 0 {
			b.WriteString(p.gap)
		}
		if word != "" {
			b.WriteString(styled.Render(word))
		}
	}
	return b.String()
}

// pad returns n painted spaces.
func (p rowPaint) pad(n int) string {
	if n == 1 {
		return p.gap
	}
	return p.base.Render(strings.Repeat(" ", max(n, 0)))
}

func (p rowPaint) join(parts []string, sep string) string {
	return strings.Join(parts, p.base.Render(sep))
}

// fill widens a rendered row to width with the row color.
func (p rowPaint) fill(row string, width int) string {
	return p.base.Width(width).Render(row)
}
