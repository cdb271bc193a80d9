package ui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/greenhouse/internal/config"
	"github.com/five82/greenhouse/internal/dispatch"
	"github.com/five82/greenhouse/internal/prefs"
	"github.com/five82/greenhouse/internal/state"
)

func plants() []state.Record {
	return []state.Record{
		state.NewRecord("Asparagus Fern", false),
		state.NewRecord("False Shamrock Plant", false),
		state.NewRecord("English Ivy", false),
	}
}

func newTestModel(t *testing.T) (Model, *state.Store, string) {
	t.Helper()
	store, err := state.NewStore(plants(), plants())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	prefsPath := filepath.Join(t.TempDir(), "prefs.toml")
	m, err := New(Options{Store: store, PrefsPath: prefsPath})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return next.(Model), store, prefsPath
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func names(s *state.Store, section state.Section) []string {
	var out []string
	for _, rec := range s.Records(section) {
		out = append(out, rec.Name)
	}
	return out
}

func TestNew_RequiresStore(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatal("New without a store returned nil error")
	}
}

func TestNew_DrawsEveryRowOnce(t *testing.T) {
	m, _, _ := newTestModel(t)
	if m.board.draws != 6 {
		t.Fatalf("draws = %d, want 6", m.board.draws)
	}
	if len(m.board.order) != 6 {
		t.Fatalf("order has %d rows, want 6", len(m.board.order))
	}
	view := m.View()
	for _, want := range []string{"SIDEBAR", "GROUPED", "Asparagus Fern", "English Ivy"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}

func TestFavorite_RedrawsOnlyThatRow(t *testing.T) {
	m, store, _ := newTestModel(t)

	m = press(m, runes("s"))
	if m.board.swipe == nil {
		t.Fatal("swipe not open after s")
	}
	m = press(m, runes("f"))

	rec := store.Records(state.Sidebar)[0]
	if !rec.Favorite {
		t.Fatal("first sidebar record not favorited")
	}
	if m.board.swipe != nil {
		t.Fatal("swipe still open after favorite completed")
	}
	if m.board.draws != 7 {
		t.Fatalf("draws = %d, want 7", m.board.draws)
	}
	if got := m.board.rows[rec.Ref(state.Sidebar)].Glyph; got != glyphFavorite {
		t.Fatalf("glyph = %q, want %q", got, glyphFavorite)
	}
	if store.Records(state.Grouped)[0].Favorite {
		t.Fatal("grouped record changed by sidebar favorite")
	}
}

func TestFavorite_GroupedSectionIsIndependent(t *testing.T) {
	m, store, _ := newTestModel(t)

	m = press(m, runes("G"), runes("s"), runes("f"))

	if !store.Records(state.Grouped)[2].Favorite {
		t.Fatal("last grouped record not favorited")
	}
	if store.Records(state.Sidebar)[2].Favorite {
		t.Fatal("sidebar record with the same name was favorited")
	}
}

func TestDelete_ConfirmRemovesRow(t *testing.T) {
	m, store, _ := newTestModel(t)

	m = press(m, runes("j"), runes("s"), runes("d"))
	if _, ok := m.modal.(*confirmModal); !ok {
		t.Fatalf("modal = %T, want *confirmModal", m.modal)
	}
	if !strings.Contains(m.View(), "Delete Item?") {
		t.Fatal("confirm modal not rendered")
	}
	if store.Len(state.Sidebar) != 3 {
		t.Fatal("row removed before confirmation")
	}
	if m.board.swipe == nil {
		t.Fatal("swipe closed before the prompt resolved")
	}

	m = press(m, runes("y"))

	got := names(store, state.Sidebar)
	want := []string{"Asparagus Fern", "English Ivy"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("sidebar = %v, want %v", got, want)
	}
	if m.modal != nil || m.board.swipe != nil {
		t.Fatal("modal or swipe left open after confirm")
	}
	if len(m.board.order) != 5 {
		t.Fatalf("order has %d rows, want 5", len(m.board.order))
	}
	if m.board.draws != 6 {
		t.Fatalf("draws = %d, want 6 (apply draws only inserted rows)", m.board.draws)
	}
	if m.board.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.board.cursor)
	}
}

func TestDelete_CancelKeepsRow(t *testing.T) {
	m, store, _ := newTestModel(t)

	m = press(m, runes("s"), runes("d"), tea.KeyMsg{Type: tea.KeyEsc})

	if store.Len(state.Sidebar) != 3 {
		t.Fatalf("sidebar has %d rows, want 3", store.Len(state.Sidebar))
	}
	if m.modal != nil || m.board.swipe != nil {
		t.Fatal("modal or swipe left open after cancel")
	}
}

func TestDelete_EnterFollowsFocusedButton(t *testing.T) {
	m, store, _ := newTestModel(t)

	m = press(m, runes("s"), runes("d"), tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyEnter})
	if store.Len(state.Sidebar) != 3 {
		t.Fatal("enter on Cancel removed the row")
	}

	m = press(m, runes("s"), runes("d"), tea.KeyMsg{Type: tea.KeyEnter})
	if store.Len(state.Sidebar) != 2 {
		t.Fatal("enter on Delete kept the row")
	}
}

func TestQuit_CancelsPendingPrompt(t *testing.T) {
	m, store, _ := newTestModel(t)

	m = press(m, runes("s"), runes("d"))
	modal := m.modal.(*confirmModal)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("ctrl+c returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c did not quit")
	}
	if !modal.prompt.Resolved() {
		t.Fatal("prompt left unresolved on quit")
	}
	if store.Len(state.Sidebar) != 3 {
		t.Fatal("quit removed the row")
	}
	if m.board.swipe != nil {
		t.Fatal("swipe left open on quit")
	}
}

func TestQuit_DismissesOpenSwipe(t *testing.T) {
	m, store, _ := newTestModel(t)

	m = press(m, runes("s"))
	g := m.board.swipe
	if g == nil {
		t.Fatal("swipe not open after s")
	}

	next, cmd := m.Update(runes("q"))
	m = next.(Model)
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q did not quit")
	}
	if m.board.swipe != nil {
		t.Fatal("swipe completion not signalled on quit")
	}
	if g.State() != dispatch.Idle {
		t.Fatalf("gesture state = %s, want idle", g.State())
	}
	if store.Records(state.Sidebar)[0].Favorite || store.Len(state.Sidebar) != 3 {
		t.Fatal("quit mutated the store")
	}
}

func TestNavigation_DismissesOpenSwipe(t *testing.T) {
	m, store, _ := newTestModel(t)

	m = press(m, runes("s"), runes("j"))
	if m.board.swipe != nil {
		t.Fatal("swipe still open after moving")
	}
	if m.board.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.board.cursor)
	}

	m = press(m, runes("f"))
	if store.Records(state.Sidebar)[1].Favorite {
		t.Fatal("f acted without an open swipe")
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyRight})
	if m.board.swipe != nil {
		t.Fatal("right did not close the swipe")
	}
}

func TestAdd_InsertsIntoCursorSection(t *testing.T) {
	m, store, _ := newTestModel(t)

	m = press(m, runes("G"), runes("a"))
	if _, ok := m.modal.(*addModal); !ok {
		t.Fatalf("modal = %T, want *addModal", m.modal)
	}
	m = press(m, runes("Monstera"), tea.KeyMsg{Type: tea.KeyEnter})

	if m.modal != nil {
		t.Fatal("add modal still open")
	}
	grouped := names(store, state.Grouped)
	if len(grouped) != 4 || grouped[3] != "Monstera" {
		t.Fatalf("grouped = %v, want Monstera appended", grouped)
	}
	if store.Len(state.Sidebar) != 3 {
		t.Fatal("sidebar changed by grouped insert")
	}
	ref, _ := m.board.selected()
	if rec, _ := store.Lookup(ref); rec.Name != "Monstera" {
		t.Fatalf("cursor on %q, want Monstera", rec.Name)
	}
}

func TestAdd_EmptyNameKeepsModalOpen(t *testing.T) {
	m, store, _ := newTestModel(t)

	m = press(m, runes("a"), tea.KeyMsg{Type: tea.KeyEnter})

	add, ok := m.modal.(*addModal)
	if !ok {
		t.Fatalf("modal = %T, want *addModal", m.modal)
	}
	if add.err == "" {
		t.Fatal("empty name reported no error")
	}
	if store.Len(state.Sidebar) != 3 {
		t.Fatal("empty name inserted a row")
	}
}

func TestToggleView_PersistsPrefs(t *testing.T) {
	m, _, prefsPath := newTestModel(t)

	m = press(m, runes("v"))
	if m.view != config.ViewTable {
		t.Fatalf("view = %q, want table", m.view)
	}
	view := m.View()
	for _, want := range []string{glyphFavorite + " Plant", "Section"} {
		if !strings.Contains(view, want) {
			t.Fatalf("table header missing %q", want)
		}
	}
	if got := prefs.Load(prefsPath).View; got != "table" {
		t.Fatalf("saved view = %q, want table", got)
	}

	m = press(m, runes("T"))
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	if got := prefs.Load(prefsPath).Theme; got != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", got)
	}
}

func TestHelp_AnyKeyCloses(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(m, runes("?"))
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatal("help overlay not rendered")
	}
	m = press(m, runes("j"))
	if m.showHelp {
		t.Fatal("help still open")
	}
	if m.board.cursor != 0 {
		t.Fatal("key that closed help also moved the cursor")
	}
}

func TestRenderList_CursorLineInsideInsetBox(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(m, runes("G"))

	body, line := m.renderList(80)
	lines := strings.Split(body, "\n")
	if line < 0 || line >= len(lines) {
		t.Fatalf("cursor line %d out of range (%d lines)", line, len(lines))
	}
	if !strings.Contains(lines[line], "English Ivy") {
		t.Fatalf("cursor line %q does not hold the selected row", lines[line])
	}
}
