package annotation

import (
	"iter"

	"github.com/philipparndt/golabel/pkg/geometry"
)

// ID identifies a box in a Store. An ID stays valid until its box is
// removed or the store is replaced; afterwards every lookup misses instead
// of resolving to another box. The zero ID never resolves.
type ID struct {
	slot int
	gen  uint64
}

// IsZero reports whether id is the zero ID
func (id ID) IsZero() bool { return id.gen == 0 }

// Hit pairs a box with the part of it under the pointer
type Hit struct {
	ID   ID
	Part Part
}

type slot struct {
	box  Box
	gen  uint64
	live bool
}

// Store holds boxes in creation order. Removed slots are left empty rather
// than compacted, so the order of the remaining boxes and their IDs never
// shift.
type Store struct {
	slots   []slot
	nextGen uint64
	count   int
}

// NewStore creates a store holding the given boxes in order
func NewStore(boxes ...Box) *Store {
	s := &Store{}
	for _, b := range boxes {
		s.Add(b)
	}
	return s
}

// Add appends a box and returns its ID
func (s *Store) Add(b Box) ID {
	s.nextGen++
	s.slots = append(s.slots, slot{box: b, gen: s.nextGen, live: true})
	s.count++
	return ID{slot: len(s.slots) - 1, gen: s.nextGen}
}

// Get returns a pointer to the box for id, or false when id is stale
func (s *Store) Get(id ID) (*Box, bool) {
	if !s.Valid(id) {
		return nil, false
	}
	return &s.slots[id.slot].box, true
}

// Valid reports whether id still refers to a live box
func (s *Store) Valid(id ID) bool {
	if id.IsZero() || id.slot < 0 || id.slot >= len(s.slots) {
		return false
	}
	sl := s.slots[id.slot]
	return sl.live && sl.gen == id.gen
}

// Remove deletes the box for id. It reports false when id is stale.
func (s *Store) Remove(id ID) bool {
	if !s.Valid(id) {
		return false
	}
	s.slots[id.slot] = slot{}
	s.count--
	return true
}

// Replace drops every box and stores the given ones. All previously issued
// IDs become invalid.
func (s *Store) Replace(boxes []Box) {
	s.slots = s.slots[:0]
	s.count = 0
	for _, b := range boxes {
		s.Add(b)
	}
}

// Len returns the number of live boxes
func (s *Store) Len() int { return s.count }

// All iterates over live boxes in creation order
func (s *Store) All() iter.Seq2[ID, Box] {
	return func(yield func(ID, Box) bool) {
		for i, sl := range s.slots {
			if !sl.live {
				continue
			}
			if !yield(ID{slot: i, gen: sl.gen}, sl.box) {
				return
			}
		}
	}
}

// Boxes returns a copy of the live boxes in creation order
func (s *Store) Boxes() []Box {
	out := make([]Box, 0, s.count)
	for _, b := range s.All() {
		out = append(out, b)
	}
	return out
}

// FindHit returns the earliest box that has a part under p
func (s *Store) FindHit(p geometry.Vector2, catchRadius float64) (Hit, bool) {
	for id, b := range s.All() {
		if part := Classify(b, p, catchRadius); part != PartNone {
			return Hit{ID: id, Part: part}, true
		}
	}
	return Hit{}, false
}
