// Package builder holds the in-memory state of a menu open in the editor.
// It is the source of truth for the live preview and for the save payload;
// nothing here touches storage.
package builder

import (
	"errors"
	"reflect"

	"github.com/menucraft/backend/internal/types"
)

var (
	ErrNoSuchElement = errors.New("no such element in session")
	ErrNoSuchItem    = errors.New("no such item in session")
)

// Direction selects a swap-with-neighbor move. There is no arbitrary
// drag-to-index; moves at the boundary are no-ops.
type Direction int

const (
	Up Direction = iota
	Down
)

// ElementID addresses a top-level node within one editing session. The
// numeric part comes from a per-kind counter, so it is only unique together
// with the kind. IDs are never persisted; they are regenerated on every load.
type ElementID struct {
	Kind string
	N    int
}

type element struct {
	id     ElementID
	name   string
	active bool
	items  []*item
	size   string
	unit   string
}

type item struct {
	id          int
	name        string
	description string
	price       string
	active      bool
}

// Session is one user's open menu document. It is not safe for concurrent
// use; the editor drives it from a single goroutine.
type Session struct {
	elements []*element

	nextSection int
	nextSpacer  int
	nextItem    int

	saved []types.Element
}

// NewSession starts an empty editing session with an empty saved baseline.
func NewSession() *Session {
	return &Session{saved: []types.Element{}}
}

// Load replaces the session contents with a stored document and resets the
// dirty baseline to it. All session IDs are discarded and regenerated.
func Load(elements []types.Element) *Session {
	s := NewSession()
	for _, el := range elements {
		if el.IsSpacer() {
			id := s.AddSpacer()
			s.SetSpacer(id, el.Size, el.Unit)
			continue
		}
		id := s.AddSection(el.Name)
		if !el.IsActive() {
			s.ToggleElement(id)
		}
		for _, it := range el.Items {
			itemID, _ := s.AddItem(id, it.Name, it.Description, it.Price)
			if !it.IsActive() {
				s.ToggleItem(itemID)
			}
		}
	}
	s.MarkSaved()
	return s
}

// AddSection appends a new section and returns its session ID.
func (s *Session) AddSection(name string) ElementID {
	s.nextSection++
	el := &element{
		id:     ElementID{Kind: types.ElementTypeSection, N: s.nextSection},
		name:   name,
		active: true,
		items:  []*item{},
	}
	s.elements = append(s.elements, el)
	return el.id
}

// AddSpacer appends a new spacer with default size and unit.
func (s *Session) AddSpacer() ElementID {
	s.nextSpacer++
	el := &element{
		id:   ElementID{Kind: types.ElementTypeSpacer, N: s.nextSpacer},
		size: types.DefaultSpacerSize,
		unit: types.DefaultSpacerUnit,
	}
	s.elements = append(s.elements, el)
	return el.id
}

// AddItem appends a new item to the given section.
func (s *Session) AddItem(section ElementID, name, description, price string) (int, error) {
	el := s.find(section)
	if el == nil || el.id.Kind != types.ElementTypeSection {
		return 0, ErrNoSuchElement
	}
	s.nextItem++
	el.items = append(el.items, &item{
		id:          s.nextItem,
		name:        name,
		description: description,
		price:       price,
		active:      true,
	})
	return s.nextItem, nil
}

// RenameSection sets a section's display name.
func (s *Session) RenameSection(id ElementID, name string) error {
	el := s.find(id)
	if el == nil || el.id.Kind != types.ElementTypeSection {
		return ErrNoSuchElement
	}
	el.name = name
	return nil
}

// SetSpacer sets a spacer's size and unit.
func (s *Session) SetSpacer(id ElementID, size, unit string) error {
	el := s.find(id)
	if el == nil || el.id.Kind != types.ElementTypeSpacer {
		return ErrNoSuchElement
	}
	el.size = size
	el.unit = unit
	return nil
}

// UpdateItem rewrites an item's editable fields.
func (s *Session) UpdateItem(itemID int, name, description, price string) error {
	it := s.findItem(itemID)
	if it == nil {
		return ErrNoSuchItem
	}
	it.name = name
	it.description = description
	it.price = price
	return nil
}

// MoveElement swaps an element with its neighbor. Moving the first element
// up or the last one down does nothing.
func (s *Session) MoveElement(id ElementID, dir Direction) error {
	idx := s.index(id)
	if idx < 0 {
		return ErrNoSuchElement
	}
	swap := idx - 1
	if dir == Down {
		swap = idx + 1
	}
	if swap < 0 || swap >= len(s.elements) {
		return nil
	}
	s.elements[idx], s.elements[swap] = s.elements[swap], s.elements[idx]
	return nil
}

// MoveItem swaps an item with its neighbor within its section.
func (s *Session) MoveItem(itemID int, dir Direction) error {
	for _, el := range s.elements {
		for i, it := range el.items {
			if it.id != itemID {
				continue
			}
			swap := i - 1
			if dir == Down {
				swap = i + 1
			}
			if swap < 0 || swap >= len(el.items) {
				return nil
			}
			el.items[i], el.items[swap] = el.items[swap], el.items[i]
			return nil
		}
	}
	return ErrNoSuchItem
}

// DeleteElement removes a section (with its items) or a spacer. The removal
// is irreversible within the session; confirmation is the caller's problem.
func (s *Session) DeleteElement(id ElementID) error {
	idx := s.index(id)
	if idx < 0 {
		return ErrNoSuchElement
	}
	s.elements = append(s.elements[:idx], s.elements[idx+1:]...)
	return nil
}

// DeleteItem removes an item from its section.
func (s *Session) DeleteItem(itemID int) error {
	for _, el := range s.elements {
		for i, it := range el.items {
			if it.id == itemID {
				el.items = append(el.items[:i], el.items[i+1:]...)
				return nil
			}
		}
	}
	return ErrNoSuchItem
}

// ToggleElement flips a section's visibility. A hidden section is excluded
// from the rendered preview but still part of the saved document.
func (s *Session) ToggleElement(id ElementID) error {
	el := s.find(id)
	if el == nil || el.id.Kind != types.ElementTypeSection {
		return ErrNoSuchElement
	}
	el.active = !el.active
	return nil
}

// ToggleItem flips an item's visibility.
func (s *Session) ToggleItem(itemID int) error {
	it := s.findItem(itemID)
	if it == nil {
		return ErrNoSuchItem
	}
	it.active = !it.active
	return nil
}

// Snapshot walks the session in current order and produces the plain-data
// document used both as the save payload and as the dirty-check baseline.
// Positions are the array indexes.
func (s *Session) Snapshot() []types.Element {
	out := make([]types.Element, 0, len(s.elements))
	for i, el := range s.elements {
		if el.id.Kind == types.ElementTypeSpacer {
			out = append(out, types.Element{
				Type:     types.ElementTypeSpacer,
				Position: i,
				Size:     el.size,
				Unit:     el.unit,
			})
			continue
		}
		active := el.active
		items := make([]types.Item, len(el.items))
		for j, it := range el.items {
			itActive := it.active
			items[j] = types.Item{
				Name:        it.name,
				Description: it.description,
				Price:       it.price,
				Active:      &itActive,
				Position:    j,
			}
		}
		out = append(out, types.Element{
			Type:     types.ElementTypeSection,
			Position: i,
			Name:     el.name,
			Active:   &active,
			Items:    items,
		})
	}
	return out
}

// Dirty reports whether the current snapshot differs from the last-saved one
// by deep value comparison.
func (s *Session) Dirty() bool {
	return !reflect.DeepEqual(s.Snapshot(), s.saved)
}

// MarkSaved records the current snapshot as the saved baseline.
func (s *Session) MarkSaved() {
	s.saved = s.Snapshot()
}

func (s *Session) find(id ElementID) *element {
	if idx := s.index(id); idx >= 0 {
		return s.elements[idx]
	}
	return nil
}

func (s *Session) index(id ElementID) int {
	for i, el := range s.elements {
		if el.id == id {
			return i
		}
	}
	return -1
}

func (s *Session) findItem(itemID int) *item {
	for _, el := range s.elements {
		for _, it := range el.items {
			if it.id == itemID {
				return it
			}
		}
	}
	return nil
}
