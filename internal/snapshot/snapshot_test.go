package snapshot

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/five82/greenhouse/internal/state"
)

func seedStore(t *testing.T, sidebar, grouped []string) *state.Store {
	t.Helper()
	mk := func(names []string) []state.Record {
		var out []state.Record
		for _, n := range names {
			out = append(out, state.NewRecord(n, false))
		}
		return out
	}
	s, err := state.NewStore(mk(sidebar), mk(grouped))
	require.NoError(t, err)
	return s
}

func refsOf(s *state.Store, section state.Section) []state.ItemRef {
	var out []state.ItemRef
	for _, rec := range s.Records(section) {
		out = append(out, rec.Ref(section))
	}
	return out
}

func TestProject_SectionsInDeclaredOrderItemsInStoreOrder(t *testing.T) {
	s := seedStore(t, []string{"A", "B", "C"}, []string{"D", "E"})

	snap := Project(s)

	require.Equal(t, []state.Section{state.Sidebar, state.Grouped}, snap.Sections())
	require.Equal(t, refsOf(s, state.Sidebar), snap.Items(state.Sidebar))
	require.Equal(t, refsOf(s, state.Grouped), snap.Items(state.Grouped))
	require.Equal(t, 5, snap.Len())
	require.NoError(t, Validate(snap, s))

	pos, ok := snap.PositionOf(refsOf(s, state.Grouped)[1])
	require.True(t, ok)
	require.Equal(t, Position{Section: state.Grouped, Index: 1}, pos)
}

func TestProject_EmptySectionsStillPresent(t *testing.T) {
	s := seedStore(t, nil, nil)

	snap := Project(s)

	require.Equal(t, []state.Section{state.Sidebar, state.Grouped}, snap.Sections())
	require.Zero(t, snap.Len())
}

func TestProject_SurvivorsAfterRandomMutations(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		s := seedStore(t, []string{"A", "B", "C", "D", "E"}, []string{"F", "G", "H", "I"})
		var want = map[state.Section][]state.ItemRef{
			state.Sidebar: refsOf(s, state.Sidebar),
			state.Grouped: refsOf(s, state.Grouped),
		}

		for step := 0; step < 8; step++ {
			section := state.Sections()[rng.Intn(2)]
			n := s.Len(section)
			if n == 0 {
				continue
			}
			idx := rng.Intn(n)
			if rng.Intn(2) == 0 {
				_, err := s.ToggleFavorite(section, idx)
				require.NoError(t, err)
				continue
			}
			_, err := s.RemoveRecord(section, idx)
			require.NoError(t, err)
			want[section] = append(want[section][:idx:idx], want[section][idx+1:]...)
		}

		snap := Project(s)
		seen := make(map[state.ItemRef]bool)
		for _, ref := range snap.Flatten() {
			require.False(t, seen[ref], "duplicate %s", ref)
			seen[ref] = true
		}
		for _, section := range state.Sections() {
			if len(want[section]) == 0 {
				require.Empty(t, snap.Items(section), "round %d section %s", round, section)
				continue
			}
			require.Equal(t, want[section], snap.Items(section), "round %d section %s", round, section)
		}
		require.NoError(t, Validate(snap, s))
	}
}

func TestProject_AfterRemoveOmitsRemovedAndKeepsOrder(t *testing.T) {
	s := seedStore(t, []string{"A", "B", "C", "D"}, nil)
	before := Project(s)
	removed := before.Items(state.Sidebar)[1]

	_, err := s.RemoveRecord(state.Sidebar, 1)
	require.NoError(t, err)
	after := Project(s)

	require.False(t, after.Contains(removed))
	var kept []state.ItemRef
	for _, ref := range before.Items(state.Sidebar) {
		if ref != removed {
			kept = append(kept, ref)
		}
	}
	require.Equal(t, kept, after.Items(state.Sidebar))
}

func TestBuilder_RejectsDuplicatesAndUnknownSections(t *testing.T) {
	ref := state.NewRecord("A", false).Ref(state.Sidebar)

	b := NewBuilder()
	require.NoError(t, b.AppendSections(state.Sidebar))
	require.ErrorIs(t, b.AppendSections(state.Sidebar), ErrDuplicateSection)
	require.ErrorIs(t, b.AppendItems(state.Grouped, ref), ErrUnknownSection)
	require.NoError(t, b.AppendItems(state.Sidebar, ref))
	require.ErrorIs(t, b.AppendItems(state.Sidebar, ref), ErrDuplicateItem)

	snap := b.Build()
	got, ok := snap.ItemAt(Position{Section: state.Sidebar, Index: 0})
	require.True(t, ok)
	require.Equal(t, ref, got)
	_, ok = snap.ItemAt(Position{Section: state.Sidebar, Index: 1})
	require.False(t, ok)
}

func TestValidate_ReportsStaleReferences(t *testing.T) {
	s := seedStore(t, []string{"A", "B"}, nil)
	snap := Project(s)

	_, err := s.RemoveRecord(state.Sidebar, 0)
	require.NoError(t, err)

	err = Validate(snap, s)
	require.ErrorIs(t, err, ErrStaleReference)
	require.Contains(t, err.Error(), snap.Items(state.Sidebar)[0].String())
}

func TestSnapshot_ZeroValueIsEmpty(t *testing.T) {
	var snap Snapshot
	require.Zero(t, snap.Len())
	require.Empty(t, snap.Sections())
	require.False(t, snap.HasSection(state.Sidebar))
	require.Empty(t, snap.Flatten())
}
