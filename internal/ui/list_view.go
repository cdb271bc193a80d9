package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/greenhouse/internal/state"
)

// renderList draws each section under its header. Inset sections are boxed.
func (m Model) renderList(width int) (string, int) {
	styles := m.theme.Styles()
	selected, hasSelection := m.board.selected()

	var lines []string
	cursorLine := -1
	for i, section := range m.board.snap.Sections() {
		if i > 0 {
			lines = append(lines, "")
		}
		layout := styleFor(section)
		items := m.board.snap.Items(section)

		lines = append(lines,
			styles.SectionTitle.Render(strings.ToUpper(layout.Title))+" "+
				styles.FaintText.Render(fmt.Sprintf("(%d)", len(items))))

		if len(items) == 0 {
			lines = append(lines, styles.FaintText.Render("  empty"))
			continue
		}

		rowWidth := width
		if layout.Inset {
			rowWidth = max(width-4, 1) // border + padding
		}

		// Rows in an inset box start one line below the top border.
		first := len(lines)
		if layout.Inset {
			first++
		}

		rows := make([]string, 0, len(items))
		for j, ref := range items {
			isSelected := hasSelection && ref == selected
			if isSelected {
				cursorLine = first + j
			}
			rows = append(rows, m.renderRow(ref, rowWidth, isSelected))
		}

		if layout.Inset {
			box := styles.InsetBox.Width(max(width-2, 1)).Render(strings.Join(rows, "\n"))
			lines = append(lines, strings.Split(box, "\n")...)
			continue
		}
		lines = append(lines, rows...)
	}

	return strings.Join(lines, "\n"), cursorLine
}

// renderRow draws one cached row. The swipe bar, when open on this row, is
// right-aligned over the row's trailing space.
func (m Model) renderRow(ref state.ItemRef, width int, selected bool) string {
	content, ok := m.board.rows[ref]
	if !ok {
		return ""
	}
	styles := m.theme.Styles()
	bg := newRowPaint(m.rowBackground(ref.Section, selected))

	textStyle := styles.Text
	if selected {
		textStyle = styles.Selected
	}
	left := bg.text(content.Glyph, styles.Star(content)) + bg.pad(1) + bg.text(content.Text, textStyle)

	if !m.board.swipeOpenOn(ref) {
		return bg.fill(left, width)
	}

	actions := m.renderActions(bg)
	gap := width - lipgloss.Width(left) - lipgloss.Width(actions)
	return left + bg.pad(max(gap, 1)) + actions
}
