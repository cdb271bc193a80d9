package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderTable draws every row in one table: favorite, plant, section.
// The header and rule occupy the first two lines.
func (m Model) renderTable(width int) (string, int) {
	styles := m.theme.Styles()
	plantWidth := max(width-2-LayoutTableSectionWidth-1, 1)

	lines := []string{
		styles.MutedText.Render(glyphFavorite + " " + fitCell("Plant", plantWidth) + " " + fitCell("Section", LayoutTableSectionWidth)),
		styles.FaintText.Render(strings.Repeat("─", max(width, 1))),
	}

	cursorLine := -1
	for i, ref := range m.board.order {
		content, ok := m.board.rows[ref]
		if !ok {
			continue
		}
		selected := i == m.board.cursor
		if selected {
			cursorLine = len(lines)
		}

		bg := newRowPaint(m.rowBackground(ref.Section, selected))
		textStyle := styles.Text
		if selected {
			textStyle = styles.Selected
		}

		line := bg.text(content.Glyph, styles.Star(content)) + bg.pad(1) +
			bg.text(fitCell(content.Text, plantWidth), textStyle) + bg.pad(1)
		if m.board.swipeOpenOn(ref) {
			actions := m.renderActions(bg)
			gap := width - lipgloss.Width(line) - lipgloss.Width(actions)
			line += bg.pad(max(gap, 0)) + actions
		} else {
			line = bg.fill(line+bg.text(content.Style.Title, styles.MutedText), width)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n"), cursorLine
}
