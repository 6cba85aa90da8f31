package annotation

import (
	"math"

	"github.com/philipparndt/golabel/pkg/geometry"
)

// DefaultCatchRadius is the distance in image pixels within which the
// pointer grabs a corner. Edges use half of it.
const DefaultCatchRadius = 20.0

// Classify returns the part of b under p, or PartNone.
//
// Corner and edge catch zones overlap near the corners, so candidates are
// ranked by distance: the interior counts as distance 0, a corner by the
// distance to the corner point and an edge by the distance to its midpoint.
// A later candidate only wins when it is strictly closer.
func Classify(b Box, p geometry.Vector2, catchRadius float64) Part {
	best := PartNone
	bestDist := math.Inf(1)

	if b.Contains(p) {
		best, bestDist = PartCentralArea, 0
	}

	for _, corner := range cornerParts {
		d := p.Distance(b.Corner(corner))
		if d < catchRadius && d < bestDist {
			best, bestDist = corner, d
		}
	}

	lo, hi := b.Min(), b.Max()
	for _, edge := range edgeParts {
		if !nearEdge(edge, p, lo, hi, catchRadius/2) {
			continue
		}
		d := p.Distance(b.EdgeMidpoint(edge))
		if d < bestDist {
			best, bestDist = edge, d
		}
	}

	return best
}

// nearEdge reports whether p is within tolerance of the edge line and
// inside the edge's perpendicular span
func nearEdge(edge Part, p, lo, hi geometry.Vector2, tolerance float64) bool {
	switch edge {
	case PartEdgeLeft:
		return math.Abs(p.X-lo.X) < tolerance && p.Y >= lo.Y && p.Y <= hi.Y
	case PartEdgeRight:
		return math.Abs(p.X-hi.X) < tolerance && p.Y >= lo.Y && p.Y <= hi.Y
	case PartEdgeTop:
		return math.Abs(p.Y-lo.Y) < tolerance && p.X >= lo.X && p.X <= hi.X
	case PartEdgeBottom:
		return math.Abs(p.Y-hi.Y) < tolerance && p.X >= lo.X && p.X <= hi.X
	default:
		return false
	}
}

// FindHit returns the first box, by index, that has a part under p
func FindHit(boxes []Box, p geometry.Vector2, catchRadius float64) (int, Part, bool) {
	for i, b := range boxes {
		if part := Classify(b, p, catchRadius); part != PartNone {
			return i, part, true
		}
	}
	return -1, PartNone, false
}
