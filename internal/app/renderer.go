package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/golabel/pkg/annotation"
)

const handleRadius = 4

// drawImage draws the current texture where the view places the image
func (app *App) drawImage() {
	tex := app.Images.texture
	if tex.ID == 0 {
		return
	}
	origin, size := app.View.view.ImageRect()
	src := rl.Rectangle{Width: float32(tex.Width), Height: float32(tex.Height)}
	dst := rl.Rectangle{X: float32(origin.X), Y: float32(origin.Y), Width: float32(size.X), Height: float32(size.Y)}
	rl.DrawTexturePro(tex, src, dst, rl.Vector2{}, 0, rl.White)
}

// drawBoxes draws every box in collection order, highlighting the
// selection and the part under the pointer
func (app *App) drawBoxes() {
	if app.Images.texture.ID == 0 {
		return
	}
	s := app.Labels.session
	view := app.View.view
	selected, hasSelection := s.Selected()
	hovered, hasHover := s.Hovered()

	for id, b := range s.Store().All() {
		if b.IsDegenerate() {
			continue
		}
		color := classColor(b.ClassID)
		r := NewBoxRect(b, view)

		isSelected := hasSelection && id == selected
		thickness := float32(2)
		if isSelected {
			thickness = 3
		}
		r.Draw(color, thickness, isSelected)
		r.DrawHandles(color, handleRadius)

		if hasHover && hovered.ID == id {
			app.drawHoveredPart(b, r, hovered.Part)
		}
		app.drawClassLabel(r, b.ClassID, color)
	}
}

func (app *App) drawHoveredPart(b annotation.Box, r BoxRect, part annotation.Part) {
	accent := app.accentColor()
	switch {
	case part.IsCorner():
		rl.DrawCircleV(toRaylib(app.View.view.ImageToScreen(b.Corner(part))), handleRadius*2, accent)
	case part.IsEdge():
		a, c := r.Edge(part)
		rl.DrawLineEx(a, c, 4, accent)
	case part == annotation.PartCentralArea:
		rl.DrawRectangleRec(r.Rectangle, rl.Fade(accent, 0.1))
	}
}

func (app *App) drawClassLabel(r BoxRect, classID int, color rl.Color) {
	text := app.cfg.ClassName(classID)
	fontSize := float32(14)
	size := rl.MeasureTextEx(app.UI.font, text, fontSize, 1)
	pos := rl.Vector2{X: r.X, Y: r.Y - size.Y - 4}
	if pos.Y < 0 {
		pos.Y = r.Y + 2
	}
	rl.DrawRectangleRec(rl.Rectangle{X: pos.X, Y: pos.Y, Width: size.X + 6, Height: size.Y + 2}, rl.Fade(rl.Black, 0.6))
	rl.DrawTextEx(app.UI.font, text, rl.Vector2{X: pos.X + 3, Y: pos.Y + 1}, fontSize, 1, color)
}

// drawCrosshair draws full-window guide lines through the pointer
func (app *App) drawCrosshair() {
	if !app.View.showCrosshair || !app.Interaction.mouseInImage {
		return
	}
	m := rl.GetMousePosition()
	w, h := float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight())
	color := rl.Fade(app.accentColor(), 0.6)
	rl.DrawLineV(rl.Vector2{X: 0, Y: m.Y}, rl.Vector2{X: w, Y: m.Y}, color)
	rl.DrawLineV(rl.Vector2{X: m.X, Y: 0}, rl.Vector2{X: m.X, Y: h}, color)
}

func (app *App) accentColor() rl.Color {
	c := app.cfg.AccentColor
	return rl.NewColor(c[0], c[1], c[2], 255)
}

// classColor returns a stable color for a class
func classColor(classID int) rl.Color {
	colors := []rl.Color{
		rl.Red,
		rl.Green,
		rl.SkyBlue,
		rl.Yellow,
		rl.Magenta,
		rl.Orange,
		rl.Purple,
		rl.Pink,
		rl.Lime,
		rl.Gold,
	}
	return colors[classID%len(colors)]
}
