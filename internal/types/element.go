package types

import "encoding/json"

// Element type tags on the wire.
const (
	ElementTypeSection = "section"
	ElementTypeSpacer  = "spacer"
)

// Spacer defaults applied when the client omits them.
const (
	DefaultSpacerSize = "30"
	DefaultSpacerUnit = "px"
)

var validSpacerUnits = map[string]bool{"px": true, "pt": true, "in": true}

// Element is the wire shape of one top-level menu entry: either a section
// with items or a spacer. The union is discriminated by Type; a missing tag
// means "section", a shim kept for documents written before the tag existed.
type Element struct {
	Type     string `json:"type"`
	Position int    `json:"position"`

	// Section fields.
	Name   string   `json:"name,omitempty"`
	Active *bool    `json:"active,omitempty"`
	Items  ItemList `json:"items,omitempty"`

	// Spacer fields.
	Size string `json:"size,omitempty"`
	Unit string `json:"unit,omitempty"`
}

// Item is the wire shape of a dish within a section.
type Item struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Active      *bool  `json:"active,omitempty"`
	Position    int    `json:"position"`
}

// ElementList is the element array of a save payload. Decoding follows the
// same tolerance as normalization: a value that is not an array becomes an
// empty list, and an entry that does not decode as an element is dropped
// rather than failing the whole save.
type ElementList []Element

func (l *ElementList) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		*l = ElementList{}
		return nil
	}
	out := make(ElementList, 0, len(raws))
	for _, raw := range raws {
		var el Element
		if err := json.Unmarshal(raw, &el); err != nil {
			continue
		}
		out = append(out, el)
	}
	*l = out
	return nil
}

// ItemList applies the same tolerance to the items inside a section: one
// malformed item never takes the section down with it.
type ItemList []Item

func (l *ItemList) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		*l = ItemList{}
		return nil
	}
	out := make(ItemList, 0, len(raws))
	for _, raw := range raws {
		var it Item
		if err := json.Unmarshal(raw, &it); err != nil {
			continue
		}
		out = append(out, it)
	}
	*l = out
	return nil
}

// IsSpacer reports whether the element is a spacer. Anything else, including
// an absent tag, is treated as a section.
func (e Element) IsSpacer() bool {
	return e.Type == ElementTypeSpacer
}

// IsActive resolves the optional active flag; elements default to visible.
func (e Element) IsActive() bool {
	return e.Active == nil || *e.Active
}

// IsActive resolves the optional active flag; items default to visible.
func (i Item) IsActive() bool {
	return i.Active == nil || *i.Active
}

// NormalizeElements rewrites a client payload into canonical form. The policy
// is tolerant: a malformed or partial element never aborts the save.
//
//   - a nil slice becomes an empty one
//   - a missing type tag becomes "section"
//   - spacers get default size/unit, and an unknown unit falls back to px
//   - items without a non-empty name are dropped silently
//   - absent active flags are resolved to their default (visible)
//   - positions are rewritten to the array index, both for elements and for
//     the items inside each section
func NormalizeElements(elements []Element) []Element {
	out := make([]Element, 0, len(elements))
	for _, el := range elements {
		if el.Type != ElementTypeSpacer {
			el.Type = ElementTypeSection
		}
		el.Position = len(out)

		if el.Type == ElementTypeSpacer {
			if el.Size == "" {
				el.Size = DefaultSpacerSize
			}
			if !validSpacerUnits[el.Unit] {
				el.Unit = DefaultSpacerUnit
			}
			el.Name = ""
			el.Active = nil
			el.Items = nil
			out = append(out, el)
			continue
		}

		el.Size = ""
		el.Unit = ""
		active := el.IsActive()
		el.Active = &active
		items := make([]Item, 0, len(el.Items))
		for _, it := range el.Items {
			if it.Name == "" {
				continue
			}
			itActive := it.IsActive()
			it.Active = &itActive
			it.Position = len(items)
			items = append(items, it)
		}
		el.Items = items
		out = append(out, el)
	}
	return out
}
