package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menucraft/backend/internal/types"
)

func TestAddAndSnapshotOrder(t *testing.T) {
	s := NewSession()
	s.AddSection("Appetizers")
	s.AddSpacer()
	s.AddSection("Mains")

	snap := s.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, types.ElementTypeSection, snap[0].Type)
	assert.Equal(t, types.ElementTypeSpacer, snap[1].Type)
	assert.Equal(t, types.ElementTypeSection, snap[2].Type)
	for i, el := range snap {
		assert.Equal(t, i, el.Position)
	}
}

func TestSessionIDsAreMonotonicPerKind(t *testing.T) {
	s := NewSession()
	a := s.AddSection("A")
	sp := s.AddSpacer()
	b := s.AddSection("B")

	assert.Equal(t, 1, a.N)
	assert.Equal(t, 2, b.N)
	// Spacers count on their own counter, so the first spacer is also 1.
	assert.Equal(t, 1, sp.N)
	assert.NotEqual(t, a, sp)
}

func TestMoveElementSwapsNeighbors(t *testing.T) {
	s := NewSession()
	a := s.AddSection("A")
	s.AddSection("B")

	require.NoError(t, s.MoveElement(a, Down))
	snap := s.Snapshot()
	assert.Equal(t, "B", snap[0].Name)
	assert.Equal(t, "A", snap[1].Name)
}

func TestMoveElementBoundaryIsNoop(t *testing.T) {
	s := NewSession()
	a := s.AddSection("A")
	b := s.AddSection("B")

	require.NoError(t, s.MoveElement(a, Up))
	require.NoError(t, s.MoveElement(b, Down))

	snap := s.Snapshot()
	assert.Equal(t, "A", snap[0].Name)
	assert.Equal(t, "B", snap[1].Name)
}

func TestMoveUnknownElement(t *testing.T) {
	s := NewSession()
	err := s.MoveElement(ElementID{Kind: types.ElementTypeSection, N: 99}, Down)
	assert.ErrorIs(t, err, ErrNoSuchElement)
}

func TestMoveItemWithinSection(t *testing.T) {
	s := NewSession()
	sec := s.AddSection("Mains")
	first, err := s.AddItem(sec, "Soup", "", "8")
	require.NoError(t, err)
	_, err = s.AddItem(sec, "Steak", "", "28")
	require.NoError(t, err)

	require.NoError(t, s.MoveItem(first, Down))
	snap := s.Snapshot()
	assert.Equal(t, "Steak", snap[0].Items[0].Name)
	assert.Equal(t, "Soup", snap[0].Items[1].Name)

	// Boundary no-op.
	require.NoError(t, s.MoveItem(first, Down))
	assert.Equal(t, "Soup", s.Snapshot()[0].Items[1].Name)
}

func TestAddItemToSpacerFails(t *testing.T) {
	s := NewSession()
	sp := s.AddSpacer()
	_, err := s.AddItem(sp, "Soup", "", "8")
	assert.ErrorIs(t, err, ErrNoSuchElement)
}

func TestDeleteElementAndItem(t *testing.T) {
	s := NewSession()
	sec := s.AddSection("A")
	itemID, err := s.AddItem(sec, "Soup", "", "8")
	require.NoError(t, err)
	sp := s.AddSpacer()

	require.NoError(t, s.DeleteItem(itemID))
	assert.Len(t, s.Snapshot()[0].Items, 0)

	require.NoError(t, s.DeleteElement(sp))
	require.NoError(t, s.DeleteElement(sec))
	assert.Len(t, s.Snapshot(), 0)

	assert.ErrorIs(t, s.DeleteElement(sec), ErrNoSuchElement)
	assert.ErrorIs(t, s.DeleteItem(itemID), ErrNoSuchItem)
}

func TestToggleHidesWithoutDeleting(t *testing.T) {
	s := NewSession()
	sec := s.AddSection("Specials")
	itemID, err := s.AddItem(sec, "Soup", "", "8")
	require.NoError(t, err)

	require.NoError(t, s.ToggleElement(sec))
	require.NoError(t, s.ToggleItem(itemID))

	snap := s.Snapshot()
	require.Len(t, snap, 1)
	assert.False(t, snap[0].IsActive())
	require.Len(t, snap[0].Items, 1)
	assert.False(t, snap[0].Items[0].IsActive())
}

func TestDirtyTracking(t *testing.T) {
	s := NewSession()
	assert.False(t, s.Dirty())

	sec := s.AddSection("A")
	assert.True(t, s.Dirty())

	s.MarkSaved()
	assert.False(t, s.Dirty())

	// A field edit counts as a structural change for dirty purposes.
	require.NoError(t, s.RenameSection(sec, "B"))
	assert.True(t, s.Dirty())

	// Reverting the edit makes the snapshot deep-equal again.
	require.NoError(t, s.RenameSection(sec, "A"))
	assert.False(t, s.Dirty())
}

func TestLoadRoundTripAndBaseline(t *testing.T) {
	active, inactive := true, false
	doc := types.NormalizeElements([]types.Element{
		{Name: "Appetizers", Active: &active, Items: []types.Item{
			{Name: "Soup", Description: "daily", Price: "8", Active: &active},
			{Name: "Bread", Price: "4", Active: &inactive},
		}},
		{Type: types.ElementTypeSpacer, Size: "20", Unit: "px"},
		{Name: "Hidden", Active: &inactive},
	})

	s := Load(doc)
	assert.False(t, s.Dirty(), "a freshly loaded session is clean")
	assert.Equal(t, doc, s.Snapshot())

	// IDs are regenerated per load, starting from 1 again.
	s2 := Load(doc)
	assert.Equal(t, doc, s2.Snapshot())
}
