package annotation

// Cursor is the pointer shape a frontend should show
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorPointer
	CursorMove
	CursorResizeNS
	CursorResizeEW
	CursorResizeNWSE
	CursorResizeNESW
)

func (c Cursor) String() string {
	switch c {
	case CursorPointer:
		return "pointer"
	case CursorMove:
		return "move"
	case CursorResizeNS:
		return "resize-ns"
	case CursorResizeEW:
		return "resize-ew"
	case CursorResizeNWSE:
		return "resize-nwse"
	case CursorResizeNESW:
		return "resize-nesw"
	default:
		return "default"
	}
}

// CursorForPart returns the resize cursor matching a part. The interior
// maps to a pointing hand.
func CursorForPart(p Part) Cursor {
	switch p {
	case PartCornerTopLeft, PartCornerBottomRight:
		return CursorResizeNWSE
	case PartCornerTopRight, PartCornerBottomLeft:
		return CursorResizeNESW
	case PartEdgeLeft, PartEdgeRight:
		return CursorResizeEW
	case PartEdgeTop, PartEdgeBottom:
		return CursorResizeNS
	case PartCentralArea:
		return CursorPointer
	default:
		return CursorDefault
	}
}

// Cursor returns the cursor for the current state: an active drag decides,
// otherwise the hovered part does.
func (s *Session) Cursor() Cursor {
	switch m := s.mode.(type) {
	case ResizingCorner:
		return CursorForPart(m.Part)
	case ResizingEdge:
		return CursorForPart(m.Part)
	case Moving:
		return CursorMove
	case Creating:
		return CursorDefault
	}
	if hit, ok := s.Hovered(); ok {
		return CursorForPart(hit.Part)
	}
	return CursorDefault
}
