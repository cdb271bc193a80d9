package state

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrUnknownSection  = errors.New("unknown section")
	ErrEmptyName       = errors.New("record name is empty")
	ErrDuplicateID     = errors.New("duplicate record id")
)

// Store owns the plant records for both sections.
//
// Store performs no locking. All reads and mutations must happen on one
// serial context; in the TUI that is the Bubble Tea update loop.
type Store struct {
	records  map[Section][]Record
	position map[ItemRef]int
}

// NewStore builds a store seeded with the given collections. Records are
// copied; nil IDs are replaced with fresh ones.
func NewStore(sidebar, grouped []Record) (*Store, error) {
	s := &Store{records: make(map[Section][]Record, len(sectionOrder))}
	for _, seed := range []struct {
		section Section
		records []Record
	}{{Sidebar, sidebar}, {Grouped, grouped}} {
		list := make([]Record, 0, len(seed.records))
		seen := make(map[uuid.UUID]struct{}, len(seed.records))
		for _, rec := range seed.records {
			if rec.ID == uuid.Nil {
				rec.ID = uuid.New()
			}
			if _, dup := seen[rec.ID]; dup {
				return nil, fmt.Errorf("seed %s: %w: %s", seed.section, ErrDuplicateID, rec.ID)
			}
			seen[rec.ID] = struct{}{}
			list = append(list, rec)
		}
		s.records[seed.section] = list
	}
	s.reindex()
	return s, nil
}

// Sections returns the sections held by the store in display order.
func (s *Store) Sections() []Section {
	return Sections()
}

// Records returns a copy of the records in section, in insertion order.
func (s *Store) Records(section Section) []Record {
	return cloneRecords(s.records[section])
}

// Len returns the number of records in section.
func (s *Store) Len(section Section) int {
	return len(s.records[section])
}

// Resolve maps an item reference to its current index.
func (s *Store) Resolve(ref ItemRef) (int, bool) {
	idx, ok := s.position[ref]
	return idx, ok
}

// Lookup returns the current record for ref.
func (s *Store) Lookup(ref ItemRef) (Record, bool) {
	idx, ok := s.position[ref]
	if !ok {
		return Record{}, false
	}
	return s.records[ref.Section][idx], true
}

// ToggleFavorite flips the favorite flag of the record at index and returns
// the updated record.
func (s *Store) ToggleFavorite(section Section, index int) (Record, error) {
	if err := s.checkIndex(section, index); err != nil {
		return Record{}, fmt.Errorf("toggle favorite: %w", err)
	}
	rec := &s.records[section][index]
	rec.Favorite = !rec.Favorite
	return *rec, nil
}

// RemoveRecord deletes the record at index. Later records in the section
// shift down by one, so indices captured before the call are stale.
func (s *Store) RemoveRecord(section Section, index int) (Record, error) {
	if err := s.checkIndex(section, index); err != nil {
		return Record{}, fmt.Errorf("remove record: %w", err)
	}
	list := s.records[section]
	removed := list[index]
	s.records[section] = append(list[:index:index], list[index+1:]...)
	s.reindex()
	return removed, nil
}

// InsertRecord appends a new, non-favorite record to section.
func (s *Store) InsertRecord(section Section, name string) (Record, error) {
	if !section.Valid() {
		return Record{}, fmt.Errorf("insert record: %w: %s", ErrUnknownSection, section)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Record{}, fmt.Errorf("insert record: %w", ErrEmptyName)
	}
	if s.records == nil {
		s.records = make(map[Section][]Record, len(sectionOrder))
		s.reindex()
	}
	rec := NewRecord(name, false)
	s.records[section] = append(s.records[section], rec)
	s.position[rec.Ref(section)] = len(s.records[section]) - 1
	return rec, nil
}

func (s *Store) checkIndex(section Section, index int) error {
	if !section.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownSection, section)
	}
	if index < 0 || index >= len(s.records[section]) {
		return fmt.Errorf("%w: %s[%d] (len %d)", ErrIndexOutOfRange, section, index, len(s.records[section]))
	}
	return nil
}

func (s *Store) reindex() {
	s.position = make(map[ItemRef]int)
	for section, list := range s.records {
		for i, rec := range list {
			s.position[rec.Ref(section)] = i
		}
	}
}

func cloneRecords(records []Record) []Record {
	if len(records) == 0 {
		return nil
	}
	dup := make([]Record, len(records))
	copy(dup, records)
	return dup
}
