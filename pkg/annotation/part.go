package annotation

// Part classifies a point relative to one box
type Part int

const (
	PartNone Part = iota
	PartCentralArea
	PartCornerTopLeft
	PartCornerTopRight
	PartCornerBottomLeft
	PartCornerBottomRight
	PartEdgeLeft
	PartEdgeRight
	PartEdgeTop
	PartEdgeBottom
)

// Corners in evaluation order for hit testing
var cornerParts = [4]Part{PartCornerTopLeft, PartCornerTopRight, PartCornerBottomLeft, PartCornerBottomRight}

// Edges in evaluation order for hit testing
var edgeParts = [4]Part{PartEdgeLeft, PartEdgeRight, PartEdgeTop, PartEdgeBottom}

func (p Part) String() string {
	switch p {
	case PartNone:
		return "none"
	case PartCentralArea:
		return "central"
	case PartCornerTopLeft:
		return "corner-top-left"
	case PartCornerTopRight:
		return "corner-top-right"
	case PartCornerBottomLeft:
		return "corner-bottom-left"
	case PartCornerBottomRight:
		return "corner-bottom-right"
	case PartEdgeLeft:
		return "edge-left"
	case PartEdgeRight:
		return "edge-right"
	case PartEdgeTop:
		return "edge-top"
	case PartEdgeBottom:
		return "edge-bottom"
	default:
		return "unknown"
	}
}

// IsCorner reports whether p is one of the four corners
func (p Part) IsCorner() bool {
	return p >= PartCornerTopLeft && p <= PartCornerBottomRight
}

// IsEdge reports whether p is one of the four edges
func (p Part) IsEdge() bool {
	return p >= PartEdgeLeft && p <= PartEdgeBottom
}

// Opposite returns the diagonally opposite corner, or the facing edge.
// Other parts are returned unchanged.
func (p Part) Opposite() Part {
	switch p {
	case PartCornerTopLeft:
		return PartCornerBottomRight
	case PartCornerTopRight:
		return PartCornerBottomLeft
	case PartCornerBottomLeft:
		return PartCornerTopRight
	case PartCornerBottomRight:
		return PartCornerTopLeft
	case PartEdgeLeft:
		return PartEdgeRight
	case PartEdgeRight:
		return PartEdgeLeft
	case PartEdgeTop:
		return PartEdgeBottom
	case PartEdgeBottom:
		return PartEdgeTop
	default:
		return p
	}
}
