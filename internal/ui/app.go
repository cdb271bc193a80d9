package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/five82/greenhouse/internal/config"
	"github.com/five82/greenhouse/internal/dispatch"
	"github.com/five82/greenhouse/internal/prefs"
	"github.com/five82/greenhouse/internal/state"
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Logger    *zap.Logger
	ThemeName string
	View      config.View
	PrefsPath string
}

// Model is the root application state for Bubble Tea. The board and the
// dispatcher are shared pointers, so copies of the model see the same rows.
type Model struct {
	// Configuration
	ctx       context.Context
	log       *zap.Logger
	prefsPath string

	// Row state
	board      *board
	dispatcher *dispatch.Dispatcher

	// UI state
	keys     keyMap
	help     help.Model
	viewport viewport.Model
	theme    Theme
	view     config.View
	width    int
	height   int
	ready    bool
	showHelp bool
	modal    Modal
}

// New creates a new Bubble Tea model and renders the store's initial
// snapshot onto the board.
func New(opts Options) (Model, error) {
	if opts.Store == nil {
		return Model{}, errors.New("ui requires a store")
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("ui")

	view := opts.View
	if view == "" {
		view = config.ViewList
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	b := newBoard(opts.Store, logger)
	d, err := dispatch.New(opts.Store, b, b, dispatch.Options{
		Logger: logger,
		OnTransition: func(t dispatch.Transition) {
			logger.Debug("gesture transition",
				zap.Stringer("item", t.Item),
				zap.Stringer("from", t.From),
				zap.Stringer("to", t.To))
		},
	})
	if err != nil {
		return Model{}, fmt.Errorf("start dispatcher: %w", err)
	}

	return Model{
		ctx:        ctx,
		log:        logger,
		prefsPath:  prefsPath,
		board:      b,
		dispatcher: d,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		theme:      GetTheme(opts.ThemeName),
		view:       view,
	}, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(m.width, m.bodyHeight())
		}
		m.viewport.Width = m.width
		m.viewport.Height = m.bodyHeight()
		m.help.Width = m.width
		m.ready = true

	case tea.KeyMsg:
		var model tea.Model
		model, cmd = m.handleKey(msg)
		m = model.(Model)

	default:
		if m.modal != nil {
			var closed bool
			m.modal, cmd, closed = m.modal.Update(msg, m.keys)
			if closed {
				m.modal = nil
			}
		}
	}

	if m.ready {
		m.syncViewport()
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	if m.modal != nil {
		return m.renderModal()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.abandonGestures()
		return m, tea.Quit
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		var (
			cmd    tea.Cmd
			closed bool
		)
		m.modal, cmd, closed = m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		}
		return m, cmd
	}

	if m.board.swipe != nil {
		if handled, cmd := m.handleSwipeKey(msg); handled {
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.abandonGestures()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()

	case key.Matches(msg, m.keys.ToggleView):
		if m.view == config.ViewTable {
			m.view = config.ViewList
		} else {
			m.view = config.ViewTable
		}
		m.savePrefs()

	case key.Matches(msg, m.keys.Add):
		section := m.board.cursorSection()
		add, cmd := newAddModal(section, m.insert(section))
		m.modal = add
		return m, cmd

	case key.Matches(msg, m.keys.OpenActions):
		m.openSwipe()

	default:
		m.navigate(msg)
	}

	return m, nil
}

// handleSwipeKey routes keys while a row's action bar is open. Navigation
// closes the bar before moving.
func (m *Model) handleSwipeKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	g := m.board.swipe
	switch {
	case key.Matches(msg, m.keys.Favorite):
		if err := g.Favorite(); err != nil {
			m.log.Debug("favorite ignored", zap.Error(err))
		}
		return true, nil

	case key.Matches(msg, m.keys.Delete):
		if err := g.Delete(); err != nil {
			m.log.Debug("delete ignored", zap.Error(err))
		}
		m.openPrompt()
		return true, nil

	case key.Matches(msg, m.keys.CloseActions):
		g.Dismiss()
		return true, nil

	case key.Matches(msg, m.keys.OpenActions):
		return true, nil

	case key.Matches(msg, m.keys.Up, m.keys.Down, m.keys.Top, m.keys.Bottom):
		g.Dismiss()
		m.navigate(msg)
		return true, nil
	}
	return false, nil
}

func (m *Model) navigate(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.board.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.board.move(1)
	case key.Matches(msg, m.keys.Top):
		m.board.moveTo(0)
	case key.Matches(msg, m.keys.Bottom):
		m.board.moveTo(len(m.board.order) - 1)
	}
}

func (m *Model) openSwipe() {
	pos, ok := m.board.cursorPosition()
	if !ok {
		return
	}
	ref, _ := m.board.selected()
	rec, _ := m.board.store.Lookup(ref)
	m.board.swipe = m.dispatcher.BeginAt(pos, m.board.completion(rec.Name))
}

// openPrompt shows the confirm modal if the dispatcher asked for one.
func (m *Model) openPrompt() {
	p := m.board.takePrompt()
	if p == nil {
		return
	}
	name := ""
	if rec, ok := m.board.store.Lookup(p.Item()); ok {
		name = rec.Name
	}
	m.modal = newConfirmModal(p, name)
}

// insert returns the add modal's submit hook for section.
func (m Model) insert(section state.Section) func(string) error {
	d, b := m.dispatcher, m.board
	return func(name string) error {
		rec, err := d.Insert(section, name)
		if err != nil {
			return err
		}
		b.selectRef(rec.Ref(section))
		return nil
	}
}

// abandonGestures finishes whatever is open before the program exits: an
// unanswered delete prompt is cancelled and an open swipe is dismissed.
func (m *Model) abandonGestures() {
	if c, ok := m.modal.(*confirmModal); ok {
		c.prompt.Cancel()
	}
	m.modal = nil
	if m.board.swipe != nil {
		m.board.swipe.Dismiss()
	}
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, View: string(m.view)})
	if err != nil {
		m.log.Warn("save prefs failed", zap.Error(err))
	}
}

// bodyHeight is the space left for rows after the header and footer.
func (m Model) bodyHeight() int {
	return max(m.height-2, 1)
}

// syncViewport re-renders the body and scrolls so the cursor row stays
// visible.
func (m *Model) syncViewport() {
	body, line := m.renderBody(m.width)
	m.viewport.SetContent(body)
	if line < 0 {
		return
	}
	switch {
	case line < m.viewport.YOffset:
		m.viewport.SetYOffset(line)
	case line >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(line - m.viewport.Height + 1)
	}
}

// Run starts the Bubble Tea program and blocks until it exits. Context
// cancellation is a normal shutdown.
func Run(ctx context.Context, opts Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Context = ctx
	m, err := New(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
