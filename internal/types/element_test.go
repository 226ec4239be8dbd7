package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeElementsNil(t *testing.T) {
	out := NormalizeElements(nil)
	assert.NotNil(t, out)
	assert.Len(t, out, 0)
}

func TestNormalizeElementsMissingTypeIsSection(t *testing.T) {
	// Documents written before the type tag existed carry no tag at all.
	var el Element
	assert.NoError(t, json.Unmarshal([]byte(`{"name":"Starters"}`), &el))

	out := NormalizeElements([]Element{el})
	assert.Len(t, out, 1)
	assert.Equal(t, ElementTypeSection, out[0].Type)
	assert.Equal(t, "Starters", out[0].Name)
}

func TestNormalizeElementsSpacerDefaults(t *testing.T) {
	out := NormalizeElements([]Element{{Type: ElementTypeSpacer}})
	assert.Len(t, out, 1)
	assert.Equal(t, DefaultSpacerSize, out[0].Size)
	assert.Equal(t, DefaultSpacerUnit, out[0].Unit)
}

func TestNormalizeElementsSpacerUnknownUnit(t *testing.T) {
	out := NormalizeElements([]Element{{Type: ElementTypeSpacer, Size: "12", Unit: "furlong"}})
	assert.Equal(t, "12", out[0].Size)
	assert.Equal(t, DefaultSpacerUnit, out[0].Unit)
}

func TestNormalizeElementsDropsNamelessItems(t *testing.T) {
	out := NormalizeElements([]Element{{
		Name: "Mains",
		Items: []Item{
			{Name: "Steak", Price: "28"},
			{Name: "", Price: "10"},
			{Name: "Pasta", Price: "17"},
		},
	}})
	assert.Len(t, out, 1)
	assert.Len(t, out[0].Items, 2)
	assert.Equal(t, "Steak", out[0].Items[0].Name)
	assert.Equal(t, "Pasta", out[0].Items[1].Name)
	// Item positions are the post-drop indexes.
	assert.Equal(t, 0, out[0].Items[0].Position)
	assert.Equal(t, 1, out[0].Items[1].Position)
}

func TestNormalizeElementsKeepsEmptySection(t *testing.T) {
	// A section whose items were all invalid persists with zero items.
	out := NormalizeElements([]Element{{
		Name:  "Desserts",
		Items: []Item{{Name: ""}},
	}})
	assert.Len(t, out, 1)
	assert.Equal(t, ElementTypeSection, out[0].Type)
	assert.NotNil(t, out[0].Items)
	assert.Len(t, out[0].Items, 0)
}

func TestNormalizeElementsRewritesPositions(t *testing.T) {
	out := NormalizeElements([]Element{
		{Name: "A", Position: 40},
		{Type: ElementTypeSpacer, Position: 7},
		{Name: "B", Position: 0},
	})
	for i, el := range out {
		assert.Equal(t, i, el.Position)
	}
}

func TestNormalizeElementsClearsCrossVariantFields(t *testing.T) {
	active := true
	out := NormalizeElements([]Element{
		{Type: ElementTypeSpacer, Name: "leak", Active: &active, Items: []Item{{Name: "x"}}},
		{Name: "Sides", Size: "10", Unit: "px"},
	})
	assert.Empty(t, out[0].Name)
	assert.Nil(t, out[0].Active)
	assert.Nil(t, out[0].Items)
	assert.Empty(t, out[1].Size)
	assert.Empty(t, out[1].Unit)
}

func TestElementListToleratesNonArray(t *testing.T) {
	var list ElementList
	assert.NoError(t, json.Unmarshal([]byte(`"bogus"`), &list))
	assert.NotNil(t, list)
	assert.Len(t, list, 0)

	assert.NoError(t, json.Unmarshal([]byte(`42`), &list))
	assert.Len(t, list, 0)
}

func TestElementListDropsMalformedEntries(t *testing.T) {
	var list ElementList
	assert.NoError(t, json.Unmarshal([]byte(`[{"type":"spacer"},"junk",{"name":"Mains"},17]`), &list))
	assert.Len(t, list, 2)
	assert.Equal(t, ElementTypeSpacer, list[0].Type)
	assert.Equal(t, "Mains", list[1].Name)
}

func TestItemListDropsMalformedItems(t *testing.T) {
	var el Element
	assert.NoError(t, json.Unmarshal([]byte(`{"name":"Mains","items":[{"name":123},{"name":"Good"}]}`), &el))
	assert.Len(t, el.Items, 1)
	assert.Equal(t, "Good", el.Items[0].Name)

	// Items that is not an array collapses to none rather than failing the
	// section.
	assert.NoError(t, json.Unmarshal([]byte(`{"name":"Mains","items":"junk"}`), &el))
	assert.Len(t, el.Items, 0)
}

func TestElementIsActiveDefaultsTrue(t *testing.T) {
	assert.True(t, Element{}.IsActive())
	f := false
	assert.False(t, Element{Active: &f}.IsActive())
	assert.True(t, Item{}.IsActive())
	assert.False(t, Item{Active: &f}.IsActive())
}
