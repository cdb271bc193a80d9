package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/greenhouse/internal/config"
	"github.com/five82/greenhouse/internal/state"
)

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the header drops the
	// view and theme names.
	LayoutCompactWidth = 70

	// LayoutTableSectionWidth is the width of the table's section column.
	LayoutTableSectionWidth = 10
)

// renderMain renders the full UI: header, scrolling body, footer.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderBody renders the rows for the active view and reports the line the
// cursor row sits on, or -1 when nothing is selected.
func (m Model) renderBody(width int) (string, int) {
	if len(m.board.order) == 0 {
		styles := m.theme.Styles()
		empty := styles.MutedText.Render("No plants. Press a to add one.")
		return lipgloss.Place(width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, empty), -1
	}
	if m.view == config.ViewTable {
		return m.renderTable(width)
	}
	return m.renderList(width)
}

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := newRowPaint(m.theme.Surface)

	favorites := 0
	for _, ref := range m.board.order {
		if m.board.rows[ref].Favorite {
			favorites++
		}
	}

	parts := []string{
		bg.text("greenhouse", styles.AccentText.Bold(true)),
	}
	for _, section := range m.board.snap.Sections() {
		parts = append(parts,
			bg.text(styleFor(section).Title+":", styles.MutedText)+bg.pad(1)+
				bg.text(fmt.Sprintf("%d", len(m.board.snap.Items(section))), styles.Text))
	}
	parts = append(parts, bg.text(fmt.Sprintf("%s %d", glyphFavorite, favorites), styles.StarOn))

	if m.width >= LayoutCompactWidth {
		parts = append(parts,
			bg.text("View:", styles.FaintText)+bg.pad(1)+bg.text(string(m.view), styles.MutedText),
			bg.text("Theme:", styles.FaintText)+bg.pad(1)+bg.text(m.theme.Name, styles.MutedText),
		)
	}

	return styles.Header.Width(m.width).Render(bg.join(parts, "  "))
}

// renderFooter shows the last surface status and the key hints for the
// current mode.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	hints := m.help.View(m.keys)
	if m.board.swipe != nil {
		hints = m.help.View(swipeHelp{keys: m.keys})
	}

	status := styles.FaintText.Render(m.board.status)
	gap := m.width - lipgloss.Width(status) - lipgloss.Width(hints)
	if gap < 1 {
		return hints
	}
	return status + strings.Repeat(" ", gap) + hints
}

// renderActions draws the open swipe bar.
func (m Model) renderActions(bg rowPaint) string {
	styles := m.theme.Styles()
	return styles.FavoriteAction.Render(glyphFavorite+" Favorite") + bg.pad(1) +
		styles.DeleteAction.Render("Delete")
}

// rowBackground is the fill for a row in the given section.
func (m Model) rowBackground(section state.Section, selected bool) string {
	switch {
	case selected:
		return m.theme.SelectionBg
	case styleFor(section).Inset:
		return m.theme.SurfaceAlt
	default:
		return m.theme.Background
	}
}
