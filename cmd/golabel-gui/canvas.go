package main

import (
	"image"
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/golabel/pkg/annotation"
	"github.com/philipparndt/golabel/pkg/geometry"
	"github.com/philipparndt/golabel/pkg/viewer"
)

var (
	boxColor      = color.NRGBA{R: 255, G: 0, B: 75, A: 255}
	selectedFill  = color.NRGBA{R: 255, G: 0, B: 75, A: 50}
	hoverColor    = color.NRGBA{R: 255, G: 215, B: 0, A: 255}
	labelTextFill = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// AnnotationCanvas shows an image with its boxes and forwards primary
// button activity to an annotation session
type AnnotationCanvas struct {
	widget.BaseWidget
	session  *annotation.Session
	view     *viewer.View
	image    *canvas.Image
	hasImage bool
	pressed  bool
	onChange func()
}

// NewAnnotationCanvas creates an empty canvas editing session
func NewAnnotationCanvas(session *annotation.Session) *AnnotationCanvas {
	c := &AnnotationCanvas{
		session: session,
		view:    viewer.NewView(0, 0, 800, 600),
	}
	c.ExtendBaseWidget(c)
	return c
}

// SetOnChange sets the callback invoked after the boxes may have changed
func (c *AnnotationCanvas) SetOnChange(callback func()) {
	c.onChange = callback
}

// SetImage replaces the displayed image
func (c *AnnotationCanvas) SetImage(img image.Image) {
	c.image = canvas.NewImageFromImage(img)
	c.image.FillMode = canvas.ImageFillStretch
	c.hasImage = true
	b := img.Bounds()
	c.view.SetImageSize(b.Dx(), b.Dy())
	c.Refresh()
}

// CreateRenderer creates the renderer for the widget
func (c *AnnotationCanvas) CreateRenderer() fyne.WidgetRenderer {
	return &annotationRenderer{canvas: c}
}

func (c *AnnotationCanvas) toImage(pos fyne.Position) (geometry.Vector2, bool) {
	return c.view.ScreenToImage(geometry.NewVector2(float64(pos.X), float64(pos.Y)))
}

func (c *AnnotationCanvas) apply(ev annotation.PointerEvent) {
	c.session.Handle(ev)
	c.Refresh()
	if c.onChange != nil && ev.Kind != annotation.EventMove {
		c.onChange()
	}
}

// MouseDown starts an interaction when the primary button goes down on the image
func (c *AnnotationCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary || !c.hasImage || c.session.ReadOnly() {
		return
	}
	p, within := c.toImage(ev.Position)
	if !within {
		return
	}
	c.pressed = true
	c.apply(annotation.PointerEvent{Kind: annotation.EventDown, Pos: p})
}

// MouseUp ends the interaction
func (c *AnnotationCanvas) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary || !c.pressed {
		return
	}
	c.pressed = false
	p, _ := c.toImage(ev.Position)
	c.apply(annotation.PointerEvent{Kind: annotation.EventUp, Pos: c.view.Clamp(p)})
}

// MouseIn is required by desktop.Hoverable
func (c *AnnotationCanvas) MouseIn(ev *desktop.MouseEvent) { c.MouseMoved(ev) }

// MouseMoved updates hover feedback
func (c *AnnotationCanvas) MouseMoved(ev *desktop.MouseEvent) {
	p, _ := c.toImage(ev.Position)
	c.apply(annotation.PointerEvent{Kind: annotation.EventMove, Pos: c.view.Clamp(p)})
}

// MouseOut is required by desktop.Hoverable
func (c *AnnotationCanvas) MouseOut() {}

// Dragged forwards pointer motion while the button is held
func (c *AnnotationCanvas) Dragged(ev *fyne.DragEvent) {
	if !c.pressed {
		return
	}
	p, _ := c.toImage(ev.Position)
	c.apply(annotation.PointerEvent{Kind: annotation.EventMove, Pos: c.view.Clamp(p)})
}

// DragEnd is required by fyne.Draggable; MouseUp finishes the edit
func (c *AnnotationCanvas) DragEnd() {}

// Scrolled zooms toward the pointer
func (c *AnnotationCanvas) Scrolled(ev *fyne.ScrollEvent) {
	factor := 1.1
	if ev.Scrolled.DY < 0 {
		factor = 1 / factor
	}
	c.view.ZoomAt(geometry.NewVector2(float64(ev.Position.X), float64(ev.Position.Y)), factor)
	c.Refresh()
}

// Cursor implements desktop.Cursorable
func (c *AnnotationCanvas) Cursor() desktop.Cursor {
	switch c.session.Cursor() {
	case annotation.CursorPointer:
		return desktop.PointerCursor
	case annotation.CursorMove, annotation.CursorResizeNWSE, annotation.CursorResizeNESW:
		return desktop.CrosshairCursor
	case annotation.CursorResizeNS:
		return desktop.VResizeCursor
	case annotation.CursorResizeEW:
		return desktop.HResizeCursor
	default:
		return desktop.DefaultCursor
	}
}

// annotationRenderer implements fyne.WidgetRenderer
type annotationRenderer struct {
	canvas  *AnnotationCanvas
	objects []fyne.CanvasObject
	size    fyne.Size
}

func (r *annotationRenderer) Layout(size fyne.Size) {
	if size == r.size {
		return
	}
	first := r.size.Width == 0 && r.size.Height == 0
	r.size = size
	r.canvas.view.SetScreenSize(float64(size.Width), float64(size.Height))
	if first {
		r.canvas.view.Fit()
	}
	r.Refresh()
}

func (r *annotationRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *annotationRenderer) Refresh() {
	c := r.canvas
	r.objects = r.objects[:0]

	if c.hasImage {
		origin, size := c.view.ImageRect()
		c.image.Move(fyne.NewPos(float32(origin.X), float32(origin.Y)))
		c.image.Resize(fyne.NewSize(float32(size.X), float32(size.Y)))
		r.objects = append(r.objects, c.image)
	}

	selected, hasSelection := c.session.Selected()
	hovered, hasHover := c.session.Hovered()
	for id, b := range c.session.Store().All() {
		if b.IsDegenerate() {
			continue
		}
		lo := c.view.ImageToScreen(b.Min())
		hi := c.view.ImageToScreen(b.Max())

		rect := canvas.NewRectangle(color.Transparent)
		rect.StrokeColor = boxColor
		rect.StrokeWidth = 2
		if hasSelection && id == selected {
			rect.FillColor = selectedFill
			rect.StrokeWidth = 3
		}
		if hasHover && id == hovered.ID {
			rect.StrokeColor = hoverColor
		}
		rect.Move(fyne.NewPos(float32(lo.X), float32(lo.Y)))
		rect.Resize(fyne.NewSize(float32(hi.X-lo.X), float32(hi.Y-lo.Y)))

		text := canvas.NewText(strconv.Itoa(b.ClassID), labelTextFill)
		text.TextSize = 12
		text.Move(fyne.NewPos(float32(lo.X)+2, float32(lo.Y)+1))

		r.objects = append(r.objects, rect, text)
	}
	canvas.Refresh(c)
}

func (r *annotationRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *annotationRenderer) Destroy() {}
