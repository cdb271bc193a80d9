package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/greenhouse/internal/dispatch"
	"github.com/five82/greenhouse/internal/state"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// confirmModal answers a delete prompt. Closing it always resolves the
// prompt one way or the other.
type confirmModal struct {
	prompt *dispatch.Prompt
	name   string
	focus  int // 0 = Delete, 1 = Cancel
}

func newConfirmModal(p *dispatch.Prompt, name string) *confirmModal {
	return &confirmModal{prompt: p, name: name}
}

func (c *confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case keyMsg.String() == "y":
		c.prompt.Confirm()
		return c, nil, true
	case keyMsg.String() == "n", key.Matches(keyMsg, keys.Cancel):
		c.prompt.Cancel()
		return c, nil, true
	case key.Matches(keyMsg, keys.Confirm):
		if c.focus == 0 {
			c.prompt.Confirm()
		} else {
			c.prompt.Cancel()
		}
		return c, nil, true
	case key.Matches(keyMsg, keys.Switch):
		c.focus = 1 - c.focus
	}
	return c, nil, false
}

func (c *confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Delete Item?"))
	b.WriteString("\n\n")
	if c.name != "" {
		b.WriteString(styles.MutedText.Render(c.name + " will be removed."))
	} else {
		b.WriteString(styles.MutedText.Render("This row will be removed."))
	}
	b.WriteString("\n\n")

	deleteBtn := styles.FaintText.Padding(0, 1).Render("Delete")
	cancelBtn := styles.FaintText.Padding(0, 1).Render("Cancel")
	if c.focus == 0 {
		deleteBtn = styles.DeleteAction.Render("Delete")
	} else {
		cancelBtn = styles.Selected.Padding(0, 1).Render("Cancel")
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, deleteBtn, "  ", cancelBtn))

	return placeModal(theme, width, height, theme.Danger, b.String())
}

// addModal collects a name for a new plant in one section.
type addModal struct {
	section state.Section
	input   textinput.Model
	submit  func(string) error
	err     string
}

func newAddModal(section state.Section, submit func(string) error) (*addModal, tea.Cmd) {
	input := textinput.New()
	input.Placeholder = "Plant name"
	input.CharLimit = 64
	input.Width = 30
	cmd := input.Focus()
	return &addModal{section: section, input: input, submit: submit}, cmd
}

func (a *addModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.Cancel):
			return a, nil, true
		case key.Matches(keyMsg, keys.Confirm):
			if err := a.submit(a.input.Value()); err != nil {
				a.err = err.Error()
				return a, nil, false
			}
			return a, nil, true
		}
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd, false
}

func (a *addModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Add Plant"))
	b.WriteString(styles.MutedText.Render(" to " + styleFor(a.section).Title))
	b.WriteString("\n\n")
	b.WriteString(a.input.View())
	b.WriteString("\n\n")
	if a.err != "" {
		b.WriteString(styles.DangerText.Render(a.err))
		b.WriteString("\n")
	}
	b.WriteString(styles.FaintText.Render("enter add · esc cancel"))

	return placeModal(theme, width, height, theme.Accent, b.String())
}

// placeModal centers content in a bordered box over the screen.
func placeModal(theme Theme, width, height int, border, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(1, 2).
		Render(content)

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

// renderModal draws the active modal.
func (m Model) renderModal() string {
	return m.modal.View(m.theme, m.width, m.height)
}
