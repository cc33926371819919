package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrSelectionFull = errors.New("plasmid already holds the maximum number of parts")
	ErrDuplicatePart = errors.New("part already on plasmid")
	ErrNoSuchSlot    = errors.New("no part at that position")
)

// Selection is the ordered list of parts placed on the plasmid. Insertion
// order is significant: the first part tints the protein stages.
type Selection struct {
	parts []Part
}

// Add appends p unless the plasmid is full or already carries p.ID.
func (s *Selection) Add(p Part) error {
	if len(s.parts) >= MaxSelected {
		return ErrSelectionFull
	}
	if s.Contains(p.ID) {
		return fmt.Errorf("%s: %w", p.ID, ErrDuplicatePart)
	}
	s.parts = append(s.parts, p)
	return nil
}

// RemoveAt drops the part at index i and returns it.
func (s *Selection) RemoveAt(i int) (Part, error) {
	if i < 0 || i >= len(s.parts) {
		return Part{}, fmt.Errorf("slot %d: %w", i, ErrNoSuchSlot)
	}
	removed := s.parts[i]
	s.parts = append(s.parts[:i:i], s.parts[i+1:]...)
	return removed, nil
}

func (s *Selection) Clear() { s.parts = nil }

func (s *Selection) Len() int { return len(s.parts) }

func (s *Selection) Full() bool { return len(s.parts) >= MaxSelected }

func (s *Selection) Contains(id string) bool {
	for _, p := range s.parts {
		if p.ID == id {
			return true
		}
	}
	return false
}

// Parts returns a snapshot; callers may keep it across later edits.
func (s *Selection) Parts() []Part {
	if len(s.parts) == 0 {
		return nil
	}
	out := make([]Part, len(s.parts))
	copy(out, s.parts)
	return out
}
