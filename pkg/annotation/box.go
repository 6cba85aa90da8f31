// Package annotation implements the bounding-box editing engine: box
// geometry, hit testing against pointer positions and the edit session
// state machine that turns pointer events into box edits.
package annotation

import (
	"math"

	"github.com/philipparndt/golabel/pkg/geometry"
	"github.com/philipparndt/golabel/pkg/yolo"
)

// Box is one annotated rectangle in image pixel space, stored as center and
// size so width and height stay non-negative whichever way it is dragged.
type Box struct {
	Center  geometry.Vector2
	Size    geometry.Vector2
	ClassID int
}

// NewBox creates a box from its center and size
func NewBox(center, size geometry.Vector2, classID int) Box {
	return Box{Center: center, Size: size.Abs(), ClassID: classID}
}

// NewPendingBox creates a box whose geometry is not known yet. Its
// coordinates are NaN until the first extent is set.
func NewPendingBox(classID int) Box {
	return Box{Center: geometry.NaN(), Size: geometry.NaN(), ClassID: classID}
}

// BoxFromCorners creates a box spanning two arbitrary corner points
func BoxFromCorners(p1, p2 geometry.Vector2, classID int) Box {
	b := Box{ClassID: classID}
	b.SetFromCorners(p1, p2)
	return b
}

func (b Box) Width() float64  { return b.Size.X }
func (b Box) Height() float64 { return b.Size.Y }

// Min returns the top-left extent (smallest x and y)
func (b Box) Min() geometry.Vector2 {
	return b.Center.Sub(b.Size.Mul(0.5))
}

// Max returns the bottom-right extent (largest x and y)
func (b Box) Max() geometry.Vector2 {
	return b.Center.Add(b.Size.Mul(0.5))
}

// Corner returns the position of the given corner part
func (b Box) Corner(p Part) geometry.Vector2 {
	lo, hi := b.Min(), b.Max()
	switch p {
	case PartCornerTopLeft:
		return lo
	case PartCornerTopRight:
		return geometry.NewVector2(hi.X, lo.Y)
	case PartCornerBottomLeft:
		return geometry.NewVector2(lo.X, hi.Y)
	case PartCornerBottomRight:
		return hi
	default:
		return b.Center
	}
}

// Corners returns top-left, top-right, bottom-left and bottom-right
func (b Box) Corners() [4]geometry.Vector2 {
	var out [4]geometry.Vector2
	for i, p := range cornerParts {
		out[i] = b.Corner(p)
	}
	return out
}

// EdgeMidpoint returns the midpoint of the given edge part
func (b Box) EdgeMidpoint(p Part) geometry.Vector2 {
	lo, hi := b.Min(), b.Max()
	switch p {
	case PartEdgeLeft:
		return geometry.NewVector2(lo.X, b.Center.Y)
	case PartEdgeRight:
		return geometry.NewVector2(hi.X, b.Center.Y)
	case PartEdgeTop:
		return geometry.NewVector2(b.Center.X, lo.Y)
	case PartEdgeBottom:
		return geometry.NewVector2(b.Center.X, hi.Y)
	default:
		return b.Center
	}
}

// Contains reports whether p lies inside the box, borders included
func (b Box) Contains(p geometry.Vector2) bool {
	lo, hi := b.Min(), b.Max()
	return p.X >= lo.X && p.X <= hi.X && p.Y >= lo.Y && p.Y <= hi.Y
}

// IsDegenerate reports whether the box has no usable extent: a zero or
// non-finite width or height, or a non-finite center.
func (b Box) IsDegenerate() bool {
	if !b.Center.IsFinite() || !b.Size.IsFinite() {
		return true
	}
	return b.Size.X == 0 || b.Size.Y == 0
}

// SetFromCorners makes the box span exactly p1 and p2, in either order
func (b *Box) SetFromCorners(p1, p2 geometry.Vector2) {
	b.Center = p1.Midpoint(p2)
	b.Size = p1.Sub(p2).Abs()
}

// SetEdge moves one edge to v while the opposite edge stays where it is.
// Parts other than edges are ignored.
func (b *Box) SetEdge(edge Part, v float64) {
	b.setSpan(edge, b.edgeCoordinate(edge.Opposite()), v)
}

// edgeCoordinate returns the x (left/right) or y (top/bottom) of an edge
func (b Box) edgeCoordinate(edge Part) float64 {
	switch edge {
	case PartEdgeLeft:
		return b.Min().X
	case PartEdgeRight:
		return b.Max().X
	case PartEdgeTop:
		return b.Min().Y
	case PartEdgeBottom:
		return b.Max().Y
	default:
		return math.NaN()
	}
}

// setSpan sets the extent along the axis of edge to lie between fixed and v
func (b *Box) setSpan(edge Part, fixed, v float64) {
	switch edge {
	case PartEdgeLeft, PartEdgeRight:
		b.Center.X, b.Size.X = (fixed+v)/2, math.Abs(v-fixed)
	case PartEdgeTop, PartEdgeBottom:
		b.Center.Y, b.Size.Y = (fixed+v)/2, math.Abs(v-fixed)
	}
}

// SetCenter translates the box without changing its size
func (b *Box) SetCenter(p geometry.Vector2) {
	b.Center = p
}

// ToNormalizedLabel expresses the box as fractions of the image size
func (b Box) ToNormalizedLabel(imageWidth, imageHeight int) (yolo.Label, error) {
	return yolo.Label{
		ClassID: b.ClassID,
		XCenter: b.Center.X,
		YCenter: b.Center.Y,
		Width:   b.Size.X,
		Height:  b.Size.Y,
	}.Normalize(imageWidth, imageHeight)
}
