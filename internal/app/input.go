package app

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/golabel/pkg/annotation"
	"github.com/philipparndt/golabel/pkg/geometry"
	"github.com/philipparndt/golabel/pkg/imagelist"
)

const zoomStep = 1.1

var classKeys = [...]int32{
	rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive,
	rl.KeySix, rl.KeySeven, rl.KeyEight, rl.KeyNine,
}

// handleInput processes user input and reports whether the app should quit
func (app *App) handleInput() bool {
	if rl.IsWindowResized() {
		app.View.view.SetScreenSize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
	}

	if rl.IsFileDropped() {
		files := rl.LoadDroppedFiles()
		if len(files) > 0 {
			app.openPath(files[0])
		}
		rl.UnloadDroppedFiles()
	}

	if app.handleKeys() {
		return true
	}
	app.handleViewInput()
	app.handlePointer()
	return false
}

func (app *App) handleKeys() bool {
	ctrlPressed := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)
	s := app.Labels.session

	if rl.IsKeyPressed(rl.KeyQ) || (ctrlPressed && rl.IsKeyPressed(rl.KeyC)) {
		return true
	}
	if ctrlPressed && rl.IsKeyPressed(rl.KeyS) {
		app.save(true)
		return false
	}

	// Navigation
	switch {
	case rl.IsKeyPressed(rl.KeyRight):
		app.navigate((*imagelist.List).Next)
	case rl.IsKeyPressed(rl.KeyLeft):
		app.navigate((*imagelist.List).Prev)
	case rl.IsKeyPressed(rl.KeyHome):
		app.navigate((*imagelist.List).First)
	case rl.IsKeyPressed(rl.KeyEnd):
		app.navigate((*imagelist.List).Last)
	}

	// View
	if rl.IsKeyPressed(rl.KeyV) {
		app.View.view.Fit()
	}
	if rl.IsKeyPressed(rl.KeyX) {
		app.View.showCrosshair = !app.View.showCrosshair
	}
	if rl.IsKeyPressed(rl.KeyI) || rl.IsKeyPressed(rl.KeyH) {
		app.View.showHelp = !app.View.showHelp
	}
	if rl.IsKeyPressed(rl.KeyF) {
		rl.ToggleFullscreen()
	}
	screenCenter := geometry.NewVector2(float64(rl.GetScreenWidth())/2, float64(rl.GetScreenHeight())/2)
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		app.View.view.ZoomAt(screenCenter, zoomStep*zoomStep)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		app.View.view.ZoomAt(screenCenter, 1/(zoomStep*zoomStep))
	}

	// Labels
	for i, key := range classKeys {
		if rl.IsKeyPressed(key) {
			s.SetClass(i)
			if s.RelabelSelected(i) {
				app.UI.toast.Info("Class changed to " + app.cfg.ClassName(i))
			}
		}
	}
	if rl.IsKeyPressed(rl.KeyDelete) || rl.IsKeyPressed(rl.KeyBackspace) {
		if s.DeleteSelected() {
			app.UI.toast.Info("Deleted annotation")
		}
	}
	return false
}

// handleViewInput zooms with the wheel and pans with the right or middle button
func (app *App) handleViewInput() {
	mouse := rl.GetMousePosition()
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		app.View.view.ZoomAt(toVector(mouse), math.Pow(zoomStep, float64(wheel)))
	}
	if rl.IsMouseButtonDown(rl.MouseRightButton) || rl.IsMouseButtonDown(rl.MouseMiddleButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			app.View.view.Pan(toVector(delta))
		}
	}
}

// handlePointer turns this frame's primary-button activity into session
// events. A press only starts an interaction when it lands on the image;
// moves and the release are clamped to the image.
func (app *App) handlePointer() {
	mouse := rl.GetMousePosition()
	pos, within := app.View.view.ScreenToImage(toVector(mouse))
	clamped := app.View.view.Clamp(pos)
	app.Interaction.mouseInImage = within

	if app.Images.width == 0 || app.Load.isLoading {
		app.Interaction.lastMousePos = mouse
		return
	}

	var events []annotation.PointerEvent
	if mouse != app.Interaction.lastMousePos {
		events = append(events, annotation.PointerEvent{Kind: annotation.EventMove, Pos: clamped})
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && within && !app.Labels.session.ReadOnly() {
		events = append(events, annotation.PointerEvent{Kind: annotation.EventDown, Pos: pos})
		app.Interaction.pointerActive = true
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) && app.Interaction.pointerActive {
		events = append(events, annotation.PointerEvent{Kind: annotation.EventUp, Pos: clamped})
		app.Interaction.pointerActive = false
	}
	app.Interaction.lastMousePos = mouse

	if len(events) > 0 {
		app.Labels.session.Apply(events...)
	}
	app.updateCursor()
}

func (app *App) updateCursor() {
	s := app.Labels.session
	if !app.Interaction.mouseInImage && s.Mode() == (annotation.Idle{}) {
		rl.SetMouseCursor(rl.MouseCursorDefault)
		return
	}
	rl.SetMouseCursor(mouseCursor(s.Cursor()))
}

// mouseCursor maps a session cursor to a raylib cursor
func mouseCursor(c annotation.Cursor) int32 {
	switch c {
	case annotation.CursorPointer:
		return rl.MouseCursorPointingHand
	case annotation.CursorMove:
		return rl.MouseCursorResizeAll
	case annotation.CursorResizeNS:
		return rl.MouseCursorResizeNS
	case annotation.CursorResizeEW:
		return rl.MouseCursorResizeEW
	case annotation.CursorResizeNWSE:
		return rl.MouseCursorResizeNWSE
	case annotation.CursorResizeNESW:
		return rl.MouseCursorResizeNESW
	default:
		return rl.MouseCursorCrosshair
	}
}

func toVector(v rl.Vector2) geometry.Vector2 {
	return geometry.NewVector2(float64(v.X), float64(v.Y))
}

func toRaylib(v geometry.Vector2) rl.Vector2 {
	return rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
}
