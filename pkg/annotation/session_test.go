package annotation

import (
	"log/slog"
	"math"
	"testing"

	"github.com/philipparndt/golabel/pkg/geometry"
)

var discardLogger = slog.New(slog.DiscardHandler)

func pt(x, y float64) geometry.Vector2 { return geometry.NewVector2(x, y) }

// newTestSession returns a session editing the 40..60 square
func newTestSession() (*Session, ID) {
	store := NewStore()
	id := store.Add(testBox())
	return NewSession(store, discardLogger), id
}

func mustBox(t *testing.T, s *Session, id ID) Box {
	t.Helper()
	b, ok := s.Store().Get(id)
	if !ok {
		t.Fatalf("box %v no longer exists", id)
	}
	return *b
}

func assertIdle(t *testing.T, s *Session) {
	t.Helper()
	if _, ok := s.Mode().(Idle); !ok {
		t.Fatalf("expected idle mode, got %v", s.Mode())
	}
}

func TestSessionCornerDragKeepsOppositeCorner(t *testing.T) {
	s, id := newTestSession()

	s.PointerDown(pt(38, 38))
	m, ok := s.Mode().(ResizingCorner)
	if !ok {
		t.Fatalf("expected corner resize, got %v", s.Mode())
	}
	if m.Part != PartCornerTopLeft || m.Fixed != pt(60, 60) {
		t.Errorf("unexpected mode payload: %+v", m)
	}

	s.PointerMove(pt(0, 0))
	b := mustBox(t, s, id)
	if b.Center != pt(30, 30) || b.Size != pt(60, 60) {
		t.Errorf("expected center (30,30) size (60,60), got %v %v", b.Center, b.Size)
	}

	// dragging past the fixed corner flips the box without negative size
	s.PointerMove(pt(80, 70))
	b = mustBox(t, s, id)
	if b.Min() != pt(60, 60) || b.Max() != pt(80, 70) {
		t.Errorf("expected span (60,60)-(80,70), got %v-%v", b.Min(), b.Max())
	}

	s.PointerUp(pt(80, 70))
	assertIdle(t, s)
	if !s.Dirty() {
		t.Error("resize should mark the session dirty")
	}
}

func TestSessionEdgeDragIsIndependent(t *testing.T) {
	s, id := newTestSession()

	s.PointerDown(pt(35, 50))
	if _, ok := s.Mode().(ResizingEdge); !ok {
		t.Fatalf("expected edge resize, got %v", s.Mode())
	}

	s.PointerMove(pt(10, 77))
	b := mustBox(t, s, id)
	if b.Width() != 50 || b.Center.X != 35 || b.Max().X != 60 {
		t.Errorf("expected width 50 center.x 35 xmax 60, got %v %v %v", b.Width(), b.Center.X, b.Max().X)
	}
	if b.Center.Y != 50 || b.Height() != 20 {
		t.Errorf("y extent changed: %v %v", b.Center.Y, b.Height())
	}

	// crossing the fixed edge and coming back keeps the right edge at 60
	s.PointerMove(pt(90, 50))
	s.PointerMove(pt(20, 50))
	b = mustBox(t, s, id)
	if b.Min().X != 20 || b.Max().X != 60 {
		t.Errorf("expected x span [20, 60], got [%v, %v]", b.Min().X, b.Max().X)
	}

	s.PointerUp(pt(20, 50))
	assertIdle(t, s)
}

func TestSessionEdgeDragKeepsEdgeFromDragStart(t *testing.T) {
	s, id := newTestSession()

	s.PointerDown(pt(35, 50))
	s.PointerMove(pt(90, 50))
	b := mustBox(t, s, id)
	if b.Min().X != 60 || b.Max().X != 90 {
		t.Fatalf("expected flipped span [60, 90], got [%v, %v]", b.Min().X, b.Max().X)
	}

	// Box.SetEdge on the flipped box would re-read its current right edge (90)
	reread := b
	reread.SetEdge(PartEdgeLeft, 20)
	if reread.Max().X != 90 {
		t.Fatalf("SetEdge should keep the current right edge, got %v", reread.Max().X)
	}

	// the drag instead keeps the right edge the box had when it started
	s.PointerMove(pt(20, 50))
	b = mustBox(t, s, id)
	if b.Min().X != 20 || b.Max().X != 60 {
		t.Errorf("expected x span [20, 60], got [%v, %v]", b.Min().X, b.Max().X)
	}
}

func TestSessionClickWithoutDragDiscardsBox(t *testing.T) {
	s := NewSession(NewStore(), discardLogger)

	s.PointerDown(pt(100, 100))
	if _, ok := s.Mode().(Creating); !ok {
		t.Fatalf("expected creating mode, got %v", s.Mode())
	}
	if s.Store().Len() != 1 {
		t.Fatalf("expected a pending box, got %d boxes", s.Store().Len())
	}

	s.PointerUp(pt(100, 100))
	assertIdle(t, s)
	if s.Store().Len() != 0 {
		t.Errorf("expected no boxes, got %d", s.Store().Len())
	}
	if s.Dirty() {
		t.Error("discarded box should not mark the session dirty")
	}
}

func TestSessionFlatDragDiscardsBox(t *testing.T) {
	s := NewSession(NewStore(), discardLogger)
	s.Apply(
		PointerEvent{Kind: EventDown, Pos: pt(10, 10)},
		PointerEvent{Kind: EventMove, Pos: pt(10, 50)},
		PointerEvent{Kind: EventUp, Pos: pt(10, 50)},
	)
	if s.Store().Len() != 0 {
		t.Errorf("zero-width box should be discarded, got %d boxes", s.Store().Len())
	}
	if s.Dirty() {
		t.Error("discarded box should not mark the session dirty")
	}
}

func TestSessionDiscardKeepsEarlierEdits(t *testing.T) {
	s, _ := newTestSession()

	// move the existing box, then draw a flat box that gets discarded
	s.Apply(
		PointerEvent{Kind: EventDown, Pos: pt(50, 50)},
		PointerEvent{Kind: EventMove, Pos: pt(55, 50)},
		PointerEvent{Kind: EventUp, Pos: pt(55, 50)},
		PointerEvent{Kind: EventDown, Pos: pt(200, 200)},
		PointerEvent{Kind: EventMove, Pos: pt(200, 240)},
		PointerEvent{Kind: EventUp, Pos: pt(200, 240)},
	)
	if s.Store().Len() != 1 {
		t.Errorf("expected 1 box, got %d", s.Store().Len())
	}
	if !s.Dirty() {
		t.Error("earlier move should keep the session dirty")
	}
}

func TestSessionCreateByDrag(t *testing.T) {
	s := NewSession(NewStore(), discardLogger)
	s.SetClass(4)

	s.Apply(
		PointerEvent{Kind: EventDown, Pos: pt(30, 40)},
		PointerEvent{Kind: EventMove, Pos: pt(20, 25)},
		PointerEvent{Kind: EventMove, Pos: pt(10, 10)},
		PointerEvent{Kind: EventUp, Pos: pt(10, 10)},
	)
	assertIdle(t, s)

	boxes := s.Boxes()
	if len(boxes) != 1 {
		t.Fatalf("expected 1 box, got %d", len(boxes))
	}
	b := boxes[0]
	if b.Center != pt(20, 25) || b.Size != pt(20, 30) || b.ClassID != 4 {
		t.Errorf("unexpected box: %+v", b)
	}
	if !s.Dirty() {
		t.Error("new box should mark the session dirty")
	}
}

func TestSessionSecondDownWhileCreatingSetsCorner(t *testing.T) {
	s := NewSession(NewStore(), discardLogger)

	s.PointerDown(pt(10, 10))
	s.PointerDown(pt(50, 40))
	if _, ok := s.Mode().(Creating); !ok {
		t.Fatalf("second down should keep creating, got %v", s.Mode())
	}
	s.PointerUp(pt(50, 40))

	boxes := s.Boxes()
	if len(boxes) != 1 {
		t.Fatalf("expected 1 box, got %d", len(boxes))
	}
	if boxes[0].Center != pt(30, 25) || boxes[0].Size != pt(40, 30) {
		t.Errorf("unexpected box: %+v", boxes[0])
	}
}

func TestSessionMoveKeepsGrabOffset(t *testing.T) {
	s, id := newTestSession()

	s.PointerDown(pt(45, 52))
	m, ok := s.Mode().(Moving)
	if !ok {
		t.Fatalf("expected moving, got %v", s.Mode())
	}
	if m.GrabOffset != pt(-5, 2) {
		t.Errorf("expected center-based grab offset (-5,2), got %v", m.GrabOffset)
	}
	if sel, ok := s.Selected(); !ok || sel != id {
		t.Errorf("central hit should select the box")
	}

	s.PointerMove(pt(145, 2))
	b := mustBox(t, s, id)
	if b.Center != pt(150, 0) || b.Size != pt(20, 20) {
		t.Errorf("unexpected box after move: %+v", b)
	}

	s.PointerUp(pt(145, 2))
	assertIdle(t, s)
	if _, ok := s.Selected(); !ok {
		t.Error("selection should survive pointer up")
	}
}

func TestSessionDownClearsSelection(t *testing.T) {
	s, _ := newTestSession()
	s.PointerDown(pt(50, 50))
	s.PointerUp(pt(50, 50))
	if _, ok := s.Selected(); !ok {
		t.Fatal("expected a selection")
	}

	s.PointerDown(pt(35, 50)) // edge grab
	if _, ok := s.Selected(); ok {
		t.Error("edge grab should clear the selection")
	}
}

func TestSessionDownIgnoredWhileDragging(t *testing.T) {
	s, id := newTestSession()
	s.PointerDown(pt(35, 50))
	before := s.Mode()

	s.PointerDown(pt(200, 200))
	if s.Mode() != before {
		t.Errorf("mode changed from %v to %v", before, s.Mode())
	}
	if s.Store().Len() != 1 {
		t.Errorf("no box should be created while dragging")
	}
	_ = mustBox(t, s, id)
}

func TestSessionDeleteDuringDragAborts(t *testing.T) {
	s, id := newTestSession()
	s.PointerDown(pt(50, 50))

	if !s.DeleteSelected() {
		t.Fatal("DeleteSelected failed")
	}
	assertIdle(t, s)
	if s.Store().Valid(id) {
		t.Error("box still present")
	}

	// further events must not touch anything
	s.PointerMove(pt(70, 70))
	s.PointerUp(pt(70, 70))
	if s.Store().Len() != 0 {
		t.Errorf("expected empty store, got %d", s.Store().Len())
	}
	if s.DeleteSelected() {
		t.Error("nothing left to delete")
	}
}

func TestSessionStaleTargetAbortsOnMove(t *testing.T) {
	s, id := newTestSession()
	s.PointerDown(pt(38, 38))
	s.Store().Remove(id)

	s.PointerMove(pt(0, 0))
	assertIdle(t, s)
}

func TestSessionDeleteOtherBoxKeepsDrag(t *testing.T) {
	store := NewStore()
	first := store.Add(NewBox(pt(20, 20), pt(10, 10), 0))
	second := store.Add(NewBox(pt(80, 80), pt(10, 10), 1))
	s := NewSession(store, discardLogger)

	s.PointerDown(pt(80, 80))
	if !s.Delete(first) {
		t.Fatal("Delete failed")
	}
	// the drag on the second box keeps going
	s.PointerMove(pt(90, 80))
	b := mustBox(t, s, second)
	if b.Center != pt(90, 80) {
		t.Errorf("expected second box moved to (90,80), got %v", b.Center)
	}
}

func TestSessionRelabelSelected(t *testing.T) {
	s, id := newTestSession()
	if s.RelabelSelected(3) {
		t.Error("relabel without selection should fail")
	}
	s.PointerDown(pt(50, 50))
	s.PointerUp(pt(50, 50))
	s.MarkSaved()

	if !s.RelabelSelected(3) {
		t.Fatal("RelabelSelected failed")
	}
	if mustBox(t, s, id).ClassID != 3 {
		t.Error("class not updated")
	}
	if !s.Dirty() {
		t.Error("relabel should mark the session dirty")
	}
}

func TestSessionResetDropsState(t *testing.T) {
	s, id := newTestSession()
	s.PointerDown(pt(50, 50))

	s.Reset([]Box{NewBox(pt(1, 1), pt(2, 2), 0)})
	assertIdle(t, s)
	if _, ok := s.Selected(); ok {
		t.Error("selection should be cleared")
	}
	if s.Store().Valid(id) {
		t.Error("old ID should be invalid after reset")
	}
	if s.Dirty() {
		t.Error("reset should clear the dirty flag")
	}
}

func TestSessionHoverAndCursor(t *testing.T) {
	s, _ := newTestSession()

	s.PointerMove(pt(65, 50))
	hit, ok := s.Hovered()
	if !ok || hit.Part != PartEdgeRight {
		t.Fatalf("expected right edge hover, got %v %v", hit, ok)
	}
	if s.Cursor() != CursorResizeEW {
		t.Errorf("expected resize-ew cursor, got %v", s.Cursor())
	}

	s.PointerMove(pt(62, 62))
	if s.Cursor() != CursorResizeNWSE {
		t.Errorf("expected resize-nwse cursor, got %v", s.Cursor())
	}

	s.PointerMove(pt(50, 50))
	s.PointerDown(pt(50, 50))
	if s.Cursor() != CursorMove {
		t.Errorf("expected move cursor while moving, got %v", s.Cursor())
	}

	s.PointerUp(pt(50, 50))
	s.PointerMove(pt(500, 500))
	if _, ok := s.Hovered(); ok {
		t.Error("expected no hover")
	}
	if s.Cursor() != CursorDefault {
		t.Errorf("expected default cursor, got %v", s.Cursor())
	}
}

func TestSessionCatchRadius(t *testing.T) {
	s, _ := newTestSession()
	s.SetCatchRadius(4)
	s.PointerDown(pt(35, 50))
	if _, ok := s.Mode().(Creating); !ok {
		t.Errorf("small radius should miss the edge, got %v", s.Mode())
	}

	s.SetCatchRadius(-1)
	if math.Abs(s.CatchRadius()-DefaultCatchRadius) > 1e-12 {
		t.Errorf("expected default radius, got %v", s.CatchRadius())
	}
}

func TestSessionReadOnlyRefusesEdits(t *testing.T) {
	s, id := newTestSession()

	// select the box before locking
	s.PointerDown(pt(50, 50))
	s.PointerUp(pt(50, 50))
	s.SetReadOnly(true)
	if !s.ReadOnly() {
		t.Fatal("expected read-only session")
	}

	s.Apply(
		PointerEvent{Kind: EventDown, Pos: pt(100, 100)},
		PointerEvent{Kind: EventMove, Pos: pt(150, 150)},
		PointerEvent{Kind: EventUp, Pos: pt(150, 150)},
	)
	assertIdle(t, s)
	if s.Store().Len() != 1 {
		t.Errorf("no box should be created, got %d boxes", s.Store().Len())
	}
	if s.RelabelSelected(3) {
		t.Error("relabel should be refused")
	}
	if s.Delete(id) || s.DeleteSelected() {
		t.Error("delete should be refused")
	}
	if s.Dirty() {
		t.Error("read-only session should stay clean")
	}

	// hover feedback still works
	s.PointerMove(pt(50, 50))
	if hit, ok := s.Hovered(); !ok || hit.ID != id {
		t.Errorf("expected hover on the box, got %v %v", hit, ok)
	}

	s.SetReadOnly(false)
	if !s.Delete(id) {
		t.Error("delete should work again after unlocking")
	}
}

func TestSessionReadOnlyAbortsCreation(t *testing.T) {
	s := NewSession(NewStore(), discardLogger)
	s.PointerDown(pt(10, 10))
	s.PointerMove(pt(40, 40))

	s.SetReadOnly(true)
	assertIdle(t, s)
	if s.Store().Len() != 0 {
		t.Errorf("box under creation should be dropped, got %d boxes", s.Store().Len())
	}
	if s.Dirty() {
		t.Error("dropped creation should not mark the session dirty")
	}
}

func TestSessionHoverWithoutMove(t *testing.T) {
	s, id := newTestSession()

	s.Hover(pt(62, 50))
	hit, ok := s.Hovered()
	if !ok || hit.ID != id || hit.Part != PartEdgeRight {
		t.Errorf("expected right edge hover, got %v %v", hit, ok)
	}
	assertIdle(t, s)

	s.Hover(pt(500, 500))
	if _, ok := s.Hovered(); ok {
		t.Error("expected no hover away from boxes")
	}
}
