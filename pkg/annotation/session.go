package annotation

import (
	"log/slog"

	"github.com/philipparndt/golabel/pkg/geometry"
)

// EventKind is the kind of a pointer event
type EventKind int

const (
	EventDown EventKind = iota
	EventMove
	EventUp
)

func (k EventKind) String() string {
	switch k {
	case EventDown:
		return "down"
	case EventMove:
		return "move"
	case EventUp:
		return "up"
	default:
		return "unknown"
	}
}

// PointerEvent is a primary-button pointer event in image pixel space
type PointerEvent struct {
	Kind EventKind
	Pos  geometry.Vector2
}

// Session owns the edit mode and selection for one box collection and
// applies pointer events to it. A Session is not safe for concurrent use;
// it belongs to the goroutine that receives input.
type Session struct {
	boxes       *Store
	mode        Mode
	selected    ID
	hovered     Hit
	classID     int
	catchRadius float64
	dirty       bool
	dirtyBefore bool // dirty flag when the current box creation began
	readOnly    bool
	logger      *slog.Logger
}

// NewSession creates an idle session editing boxes
func NewSession(boxes *Store, logger *slog.Logger) *Session {
	if boxes == nil {
		boxes = NewStore()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		boxes:       boxes,
		mode:        Idle{},
		catchRadius: DefaultCatchRadius,
		logger:      logger,
	}
}

// Store returns the box collection edited by the session
func (s *Session) Store() *Store { return s.boxes }

// Boxes returns a snapshot of the boxes in order
func (s *Session) Boxes() []Box { return s.boxes.Boxes() }

// Mode returns the current interaction mode
func (s *Session) Mode() Mode { return s.mode }

// Class returns the class assigned to newly created boxes
func (s *Session) Class() int { return s.classID }

// SetClass sets the class assigned to newly created boxes. Negative values
// are ignored.
func (s *Session) SetClass(classID int) {
	if classID < 0 {
		return
	}
	s.classID = classID
}

// CatchRadius returns the grab distance used for hit testing
func (s *Session) CatchRadius() float64 { return s.catchRadius }

// SetCatchRadius changes the grab distance. Non-positive values restore the default.
func (s *Session) SetCatchRadius(r float64) {
	if r <= 0 {
		r = DefaultCatchRadius
	}
	s.catchRadius = r
}

// Selected returns the selected box, if it still exists
func (s *Session) Selected() (ID, bool) {
	if !s.boxes.Valid(s.selected) {
		return ID{}, false
	}
	return s.selected, true
}

// Hovered returns the box part under the pointer as of the last move,
// independent of any active drag
func (s *Session) Hovered() (Hit, bool) {
	if s.hovered.Part == PartNone || !s.boxes.Valid(s.hovered.ID) {
		return Hit{}, false
	}
	return s.hovered, true
}

// Dirty reports whether the boxes changed since the last MarkSaved or Reset
func (s *Session) Dirty() bool { return s.dirty }

// MarkSaved clears the dirty flag
func (s *Session) MarkSaved() { s.dirty = false }

// ReadOnly reports whether edits are refused
func (s *Session) ReadOnly() bool { return s.readOnly }

// SetReadOnly refuses or allows edits. Pointer-downs, deletes and relabels
// are ignored while read-only; an edit already in progress is aborted, and
// its box is discarded when it was being created.
func (s *Session) SetReadOnly(readOnly bool) {
	s.readOnly = readOnly
	if !readOnly {
		return
	}
	if m, ok := s.mode.(Creating); ok {
		s.boxes.Remove(m.Target)
		s.dirty = s.dirtyBefore
	}
	if _, active := target(s.mode); active {
		s.abort()
	}
}

// Reset replaces the collection, for example after loading another image.
// Any active edit, the selection and the hover state are dropped.
func (s *Session) Reset(boxes []Box) {
	s.boxes.Replace(boxes)
	s.selected = ID{}
	s.hovered = Hit{}
	s.dirty = false
	s.transition(Idle{})
}

// Apply handles a batch of events in order
func (s *Session) Apply(events ...PointerEvent) {
	for _, ev := range events {
		s.Handle(ev)
	}
}

// Handle dispatches a single pointer event
func (s *Session) Handle(ev PointerEvent) {
	switch ev.Kind {
	case EventDown:
		s.PointerDown(ev.Pos)
	case EventMove:
		s.PointerMove(ev.Pos)
	case EventUp:
		s.PointerUp(ev.Pos)
	}
}

// PointerDown starts an interaction. When idle, the part under p decides
// what happens: the interior starts a move and selects the box, a corner or
// an edge starts a resize, and empty space starts a new box.
func (s *Session) PointerDown(p geometry.Vector2) {
	if s.readOnly {
		return
	}
	s.selected = ID{}

	switch m := s.mode.(type) {
	case Idle:
		s.begin(p)
	case Creating:
		b, ok := s.boxes.Get(m.Target)
		if !ok {
			s.abort()
			return
		}
		if !m.HasAnchor {
			m.Anchor, m.HasAnchor = p, true
			s.mode = m
			return
		}
		b.SetFromCorners(m.Anchor, p)
		s.dirty = true
	case ResizingCorner, ResizingEdge, Moving:
		// these are only entered from Idle
	}
}

func (s *Session) begin(p geometry.Vector2) {
	hit, ok := s.boxes.FindHit(p, s.catchRadius)
	if !ok {
		s.dirtyBefore = s.dirty
		id := s.boxes.Add(NewPendingBox(s.classID))
		s.transition(Creating{Target: id, Anchor: p, HasAnchor: true})
		return
	}

	b, _ := s.boxes.Get(hit.ID)
	switch {
	case hit.Part == PartCentralArea:
		s.transition(Moving{Target: hit.ID, GrabOffset: p.Sub(b.Center)})
		s.selected = hit.ID
	case hit.Part.IsCorner():
		s.transition(ResizingCorner{Target: hit.ID, Part: hit.Part, Fixed: b.Corner(hit.Part.Opposite())})
	case hit.Part.IsEdge():
		s.transition(ResizingEdge{Target: hit.ID, Part: hit.Part, Fixed: b.edgeCoordinate(hit.Part.Opposite())})
	}
}

// PointerMove updates the geometry of the box under edit. It never changes
// the mode, except to abort an edit whose box no longer exists.
func (s *Session) PointerMove(p geometry.Vector2) {
	defer s.Hover(p)

	id, active := target(s.mode)
	if !active {
		return
	}
	b, ok := s.boxes.Get(id)
	if !ok {
		s.abort()
		return
	}

	switch m := s.mode.(type) {
	case Creating:
		if !m.HasAnchor {
			return
		}
		b.SetFromCorners(m.Anchor, p)
	case ResizingCorner:
		b.SetFromCorners(m.Fixed, p)
	case ResizingEdge:
		v := p.Y
		if m.Part == PartEdgeLeft || m.Part == PartEdgeRight {
			v = p.X
		}
		b.setSpan(m.Part, m.Fixed, v)
	case Moving:
		b.SetCenter(p.Sub(m.GrabOffset))
	}
	s.dirty = true
}

// PointerUp ends the current interaction. A new box without extent, such
// as one from a click without drag, is discarded.
func (s *Session) PointerUp(p geometry.Vector2) {
	switch m := s.mode.(type) {
	case Idle:
		return
	case Creating:
		if b, ok := s.boxes.Get(m.Target); ok {
			if m.HasAnchor {
				b.SetFromCorners(m.Anchor, p)
			}
			if b.IsDegenerate() {
				s.boxes.Remove(m.Target)
				s.dirty = s.dirtyBefore
				s.logger.Debug("discarded empty box")
			} else {
				s.dirty = true
				s.logger.Debug("created box", "class", b.ClassID, "center", b.Center, "size", b.Size)
			}
		}
	case ResizingCorner, ResizingEdge, Moving:
	}
	s.transition(Idle{})
}

// Delete removes a box. An edit in progress on that box is aborted.
func (s *Session) Delete(id ID) bool {
	if s.readOnly || !s.boxes.Remove(id) {
		return false
	}
	s.dirty = true
	if s.selected == id {
		s.selected = ID{}
	}
	if t, ok := target(s.mode); ok && t == id {
		s.abort()
	}
	return true
}

// DeleteSelected removes the selected box and reports whether one was removed
func (s *Session) DeleteSelected() bool {
	id, ok := s.Selected()
	if !ok {
		return false
	}
	return s.Delete(id)
}

// RelabelSelected assigns a class to the selected box
func (s *Session) RelabelSelected(classID int) bool {
	id, ok := s.Selected()
	if !ok || classID < 0 || s.readOnly {
		return false
	}
	b, _ := s.boxes.Get(id)
	if b.ClassID != classID {
		b.ClassID = classID
		s.dirty = true
	}
	return true
}

// Hover records the box part under p without changing the mode
func (s *Session) Hover(p geometry.Vector2) {
	s.hovered, _ = s.boxes.FindHit(p, s.catchRadius)
}

// abort drops an edit whose target box has gone away
func (s *Session) abort() {
	s.logger.Debug("edit aborted, box no longer exists", "mode", s.mode.String())
	s.transition(Idle{})
}

func (s *Session) transition(next Mode) {
	prev := s.mode
	s.mode = next
	if prev != nil && prev.String() == next.String() {
		return
	}
	s.logger.Debug("edit mode transition", "from", modeName(prev), "to", next.String())
}

func modeName(m Mode) string {
	if m == nil {
		return "none"
	}
	return m.String()
}
