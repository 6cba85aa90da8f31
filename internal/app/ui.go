package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/golabel/version"
)

const (
	statusBarHeight = float32(26)
	fontSize12      = float32(12)
	fontSize14      = float32(14)
	fontSize16      = float32(16)
)

// drawUI draws the status bar, messages and the help panel
func (app *App) drawUI() {
	screenWidth := float32(rl.GetScreenWidth())
	screenHeight := float32(rl.GetScreenHeight())

	if app.View.showHelp {
		app.drawHelp()
	}

	// Loading indicator
	if app.Load.isLoading {
		elapsed := time.Since(app.Load.startTime).Seconds()
		spinnerChars := []string{"|", "/", "-", "\\"}
		spinnerIdx := int(elapsed*10) % len(spinnerChars)
		loadingText := fmt.Sprintf("%s Loading... (%.1fs)", spinnerChars[spinnerIdx], elapsed)

		boxWidth := float32(220)
		boxHeight := float32(36)
		boxX := screenWidth - boxWidth - 20
		boxY := float32(20)
		rl.DrawRectangle(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.NewColor(0, 0, 0, 180))
		rl.DrawRectangleLines(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), app.accentColor())

		textSize := rl.MeasureTextEx(app.UI.font, loadingText, fontSize16, 1)
		textX := boxX + (boxWidth-textSize.X)/2
		textY := boxY + (boxHeight-textSize.Y)/2
		rl.DrawTextEx(app.UI.font, loadingText, rl.Vector2{X: textX, Y: textY}, fontSize16, 1, rl.RayWhite)
	}

	// Toast above the status bar
	if text, alpha, ok := app.UI.toast.current(); ok {
		size := rl.MeasureTextEx(app.UI.font, text, fontSize16, 1)
		x := (screenWidth - size.X) / 2
		y := screenHeight - statusBarHeight - size.Y - 20
		rl.DrawRectangleRec(rl.Rectangle{X: x - 10, Y: y - 6, Width: size.X + 20, Height: size.Y + 12}, rl.Fade(rl.Black, 0.7*alpha))
		rl.DrawTextEx(app.UI.font, text, rl.Vector2{X: x, Y: y}, fontSize16, 1, rl.Fade(app.UI.toast.color(), alpha))
	}

	// Status bar
	barY := screenHeight - statusBarHeight
	rl.DrawRectangleRec(rl.Rectangle{Y: barY, Width: screenWidth, Height: statusBarHeight}, rl.NewColor(20, 20, 20, 230))

	s := app.Labels.session
	dirty := ""
	if s.Dirty() {
		dirty = " *"
	}
	status := fmt.Sprintf("%s%s  [%d/%d]  %dx%d  class: %s  boxes: %d  %s  %.0f%%",
		app.currentName(), dirty,
		app.Images.list.Index()+1, app.Images.list.Len(),
		app.Images.width, app.Images.height,
		app.cfg.ClassName(s.Class()),
		s.Store().Len(),
		s.Mode(),
		app.View.view.Zoom*100)
	if app.Labels.session.ReadOnly() {
		status += "  (labels read-only)"
	}
	rl.DrawTextEx(app.UI.font, status, rl.Vector2{X: 10, Y: barY + 6}, fontSize14, 1, rl.LightGray)

	versionText := fmt.Sprintf("v%s  H: help", version.GetVersion())
	versionWidth := rl.MeasureTextEx(app.UI.font, versionText, fontSize12, 1).X
	rl.DrawTextEx(app.UI.font, versionText, rl.Vector2{X: screenWidth - versionWidth - 10, Y: barY + 7}, fontSize12, 1, rl.Gray)
}

// drawHelp lists the shortcuts in the top-left corner
func (app *App) drawHelp() {
	sections := []struct {
		title string
		lines []string
	}{
		{"Annotate:", []string{
			"  Left Drag: Create / move / resize box",
			"  1-9: Set class (relabels selection)",
			"  Delete: Remove selected box",
			"  Ctrl+S: Save labels",
		}},
		{"Navigate:", []string{
			"  Left / Right: Previous / next image",
			"  Home / End: First / last image",
			"  Drop file: Open its folder",
		}},
		{"View:", []string{
			"  Mouse Wheel / + -: Zoom",
			"  Right or Middle Drag: Pan",
			"  V: Fit | F: Fullscreen | X: Crosshair",
			"  Q: Quit",
		}},
	}

	lineHeight := float32(20)
	y := float32(10)
	rl.DrawRectangleRec(rl.Rectangle{X: 4, Y: 4, Width: 340, Height: 300}, rl.Fade(rl.Black, 0.6))
	for _, section := range sections {
		rl.DrawTextEx(app.UI.font, section.title, rl.Vector2{X: 10, Y: y}, fontSize16, 1, app.accentColor())
		y += lineHeight
		for _, line := range section.lines {
			rl.DrawTextEx(app.UI.font, line, rl.Vector2{X: 10, Y: y}, fontSize14, 1, rl.LightGray)
			y += lineHeight
		}
		y += lineHeight / 2
	}
}
