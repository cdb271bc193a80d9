package state

import (
	"fmt"

	"github.com/google/uuid"
)

// Section identifies one of the two plant collections.
type Section int

const (
	Sidebar Section = iota
	Grouped
)

var sectionOrder = []Section{Sidebar, Grouped}

// Sections returns every section in display order.
func Sections() []Section {
	return append([]Section(nil), sectionOrder...)
}

// Valid reports whether s is a declared section.
func (s Section) Valid() bool {
	return s == Sidebar || s == Grouped
}

func (s Section) String() string {
	switch s {
	case Sidebar:
		return "sidebar"
	case Grouped:
		return "grouped"
	default:
		return fmt.Sprintf("section(%d)", int(s))
	}
}

// Record is a single plant. Two records are equal only when every field
// matches, so a favorite flip reads as a content change.
type Record struct {
	ID       uuid.UUID
	Name     string
	Favorite bool
}

// NewRecord creates a record with a fresh identifier.
func NewRecord(name string, favorite bool) Record {
	return Record{ID: uuid.New(), Name: name, Favorite: favorite}
}

// ItemRef identifies a displayable row independent of its position.
type ItemRef struct {
	Section Section
	ID      uuid.UUID
}

// Ref returns the item reference for rec inside section.
func (rec Record) Ref(section Section) ItemRef {
	return ItemRef{Section: section, ID: rec.ID}
}

func (r ItemRef) String() string {
	return r.Section.String() + "/" + r.ID.String()
}
