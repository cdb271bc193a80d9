package snapshot

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/five82/greenhouse/internal/state"
)

func TestReconfigure_FiltersVanishedAndDuplicateItems(t *testing.T) {
	s := seedStore(t, []string{"A", "B", "C"}, nil)
	prev := Project(s)
	refs := prev.Items(state.Sidebar)
	ghost := state.NewRecord("ghost", false).Ref(state.Sidebar)

	u := Reconfigure(prev, []state.ItemRef{refs[1], ghost, refs[1]})

	require.Equal(t, PathReconfigure, u.Path)
	require.Equal(t, []state.ItemRef{refs[1]}, u.Reconfigure)
	require.Equal(t, prev.Flatten(), u.Next.Flatten())
	require.False(t, u.Changes.Structural())
}

func TestReconfigure_DeletedItemIsNoOp(t *testing.T) {
	s := seedStore(t, []string{"A", "B", "C"}, nil)
	x := Project(s).Items(state.Sidebar)[2]

	_, err := s.RemoveRecord(state.Sidebar, 2)
	require.NoError(t, err)
	current := Project(s)

	u := Reconfigure(current, []state.ItemRef{x})
	require.Empty(t, u.Reconfigure)
	require.NotNil(t, u.Reconfigure)
}

func TestApply_CarriesNextSnapshotAndChanges(t *testing.T) {
	s := seedStore(t, []string{"A", "B", "C"}, nil)
	prev := Project(s)
	a := prev.Items(state.Sidebar)[0]

	_, err := s.RemoveRecord(state.Sidebar, 0)
	require.NoError(t, err)
	u := Apply(prev, s)

	require.Equal(t, PathApply, u.Path)
	require.Equal(t, []state.ItemRef{a}, u.Changes.Removed)
	require.Equal(t, prev.Items(state.Sidebar)[1:], u.Next.Items(state.Sidebar))
	require.NoError(t, Validate(u.Next, s))
}

func TestPlan_ChoosesCheapestPath(t *testing.T) {
	s := seedStore(t, []string{"A", "B", "C"}, nil)
	prev := Project(s)
	refs := prev.Items(state.Sidebar)

	_, err := s.ToggleFavorite(state.Sidebar, 1)
	require.NoError(t, err)
	u := Plan(prev, s, []state.ItemRef{refs[1]})
	require.Equal(t, PathReconfigure, u.Path)
	require.Equal(t, []state.ItemRef{refs[1]}, u.Reconfigure)

	_, err = s.RemoveRecord(state.Sidebar, 0)
	require.NoError(t, err)
	u = Plan(prev, s, []state.ItemRef{refs[0], refs[1]})
	require.Equal(t, PathApply, u.Path)
	require.Equal(t, []state.ItemRef{refs[1]}, u.Reconfigure)
	require.Equal(t, []state.ItemRef{refs[0]}, u.Changes.Removed)
}

func TestPath_String(t *testing.T) {
	require.Equal(t, "reconfigure", PathReconfigure.String())
	require.Equal(t, "apply", PathApply.String())
}
