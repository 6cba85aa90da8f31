package annotation

import (
	"fmt"

	"github.com/philipparndt/golabel/pkg/geometry"
)

// Mode is the current interaction of a Session. It is one of Idle,
// Creating, ResizingCorner, ResizingEdge or Moving.
type Mode interface {
	fmt.Stringer
	mode()
}

// Idle means no interaction is in progress
type Idle struct{}

// Creating drags out a new box from Anchor
type Creating struct {
	Target    ID
	Anchor    geometry.Vector2
	HasAnchor bool
}

// ResizingCorner drags one corner while the diagonally opposite one stays at Fixed
type ResizingCorner struct {
	Target ID
	Part   Part
	Fixed  geometry.Vector2
}

// ResizingEdge drags one edge. Fixed is the coordinate of the opposite edge
// when the drag started.
type ResizingEdge struct {
	Target ID
	Part   Part
	Fixed  float64
}

// Moving translates the whole box, keeping GrabOffset between the pointer
// and the box center.
type Moving struct {
	Target     ID
	GrabOffset geometry.Vector2
}

func (Idle) mode()           {}
func (Creating) mode()       {}
func (ResizingCorner) mode() {}
func (ResizingEdge) mode()   {}
func (Moving) mode()         {}

func (Idle) String() string             { return "idle" }
func (Creating) String() string         { return "creating" }
func (m ResizingCorner) String() string { return "resizing " + m.Part.String() }
func (m ResizingEdge) String() string   { return "resizing " + m.Part.String() }
func (Moving) String() string           { return "moving" }

// target returns the box a mode operates on
func target(m Mode) (ID, bool) {
	switch m := m.(type) {
	case Creating:
		return m.Target, true
	case ResizingCorner:
		return m.Target, true
	case ResizingEdge:
		return m.Target, true
	case Moving:
		return m.Target, true
	default:
		return ID{}, false
	}
}
