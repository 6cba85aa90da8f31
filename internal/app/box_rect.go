package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/golabel/pkg/annotation"
	"github.com/philipparndt/golabel/pkg/viewer"
)

// BoxRect is a box projected to screen space
type BoxRect struct {
	rl.Rectangle
	Corners [4]rl.Vector2 // in the order of the annotation corner parts
}

// NewBoxRect projects b through the view
func NewBoxRect(b annotation.Box, view *viewer.View) BoxRect {
	lo := view.ImageToScreen(b.Min())
	hi := view.ImageToScreen(b.Max())

	r := BoxRect{Rectangle: rl.Rectangle{
		X:      float32(lo.X),
		Y:      float32(lo.Y),
		Width:  float32(hi.X - lo.X),
		Height: float32(hi.Y - lo.Y),
	}}
	for i, c := range b.Corners() {
		r.Corners[i] = toRaylib(view.ImageToScreen(c))
	}
	return r
}

// Draw renders the box outline with an optional translucent fill
func (r BoxRect) Draw(color rl.Color, thickness float32, filled bool) {
	if filled {
		rl.DrawRectangleRec(r.Rectangle, rl.Fade(color, 0.2))
	}
	rl.DrawRectangleLinesEx(r.Rectangle, thickness, color)
}

// DrawHandles marks the four corners
func (r BoxRect) DrawHandles(color rl.Color, radius float32) {
	for _, c := range r.Corners {
		rl.DrawCircleV(c, radius, color)
	}
}

// Edge returns the end points of an edge part
func (r BoxRect) Edge(p annotation.Part) (rl.Vector2, rl.Vector2) {
	tl := rl.Vector2{X: r.X, Y: r.Y}
	tr := rl.Vector2{X: r.X + r.Width, Y: r.Y}
	bl := rl.Vector2{X: r.X, Y: r.Y + r.Height}
	br := rl.Vector2{X: r.X + r.Width, Y: r.Y + r.Height}
	switch p {
	case annotation.PartEdgeLeft:
		return tl, bl
	case annotation.PartEdgeRight:
		return tr, br
	case annotation.PartEdgeTop:
		return tl, tr
	default:
		return bl, br
	}
}
