package viewer

import (
	"math"

	"github.com/philipparndt/golabel/pkg/geometry"
)

const (
	MinZoom = 0.02
	MaxZoom = 64.0

	// fitMargin leaves a small border around a fitted image
	fitMargin = 0.95
)

// View maps between window (screen) pixels and image pixels for an image
// that is scaled by Zoom and drawn with its origin at Offset
type View struct {
	Offset geometry.Vector2 // screen position of the image's top-left corner
	Zoom   float64          // screen pixels per image pixel

	ImageSize  geometry.Vector2
	ScreenSize geometry.Vector2
}

// NewView creates a view that shows the whole image centered in the screen
func NewView(imageWidth, imageHeight int, screenWidth, screenHeight float64) *View {
	v := &View{
		Zoom:       1,
		ImageSize:  geometry.NewVector2(float64(imageWidth), float64(imageHeight)),
		ScreenSize: geometry.NewVector2(screenWidth, screenHeight),
	}
	v.Fit()
	return v
}

// SetImageSize switches to a new image and fits it
func (v *View) SetImageSize(width, height int) {
	v.ImageSize = geometry.NewVector2(float64(width), float64(height))
	v.Fit()
}

// SetScreenSize updates the window size, keeping the image point at the
// screen center where it is
func (v *View) SetScreenSize(width, height float64) {
	size := geometry.NewVector2(width, height)
	if size == v.ScreenSize {
		return
	}
	v.Offset = v.Offset.Add(size.Sub(v.ScreenSize).Mul(0.5))
	v.ScreenSize = size
}

// Fit scales the image to fit the screen and centers it
func (v *View) Fit() {
	if v.ImageSize.X <= 0 || v.ImageSize.Y <= 0 || v.ScreenSize.X <= 0 || v.ScreenSize.Y <= 0 {
		v.Zoom = 1
		v.Offset = geometry.Vector2{}
		return
	}
	zoom := math.Min(v.ScreenSize.X/v.ImageSize.X, v.ScreenSize.Y/v.ImageSize.Y) * fitMargin
	v.Zoom = clampZoom(zoom)
	v.Offset = v.ScreenSize.Sub(v.ImageSize.Mul(v.Zoom)).Mul(0.5)
}

// ScreenToImage converts a screen position to image pixels. The flag
// reports whether the position lies on the image.
func (v *View) ScreenToImage(p geometry.Vector2) (geometry.Vector2, bool) {
	img := p.Sub(v.Offset).Mul(1 / v.Zoom)
	return img, v.Within(img)
}

// ImageToScreen converts image pixels to a screen position
func (v *View) ImageToScreen(p geometry.Vector2) geometry.Vector2 {
	return p.Mul(v.Zoom).Add(v.Offset)
}

// Within reports whether an image-space point lies on the image
func (v *View) Within(p geometry.Vector2) bool {
	return p.X >= 0 && p.Y >= 0 && p.X <= v.ImageSize.X && p.Y <= v.ImageSize.Y
}

// Clamp limits an image-space point to the image bounds
func (v *View) Clamp(p geometry.Vector2) geometry.Vector2 {
	return p.Max(geometry.Vector2{}).Min(v.ImageSize)
}

// ZoomAt multiplies the zoom by factor while the image point under the
// screen position anchor stays in place
func (v *View) ZoomAt(anchor geometry.Vector2, factor float64) {
	if factor <= 0 || math.IsNaN(factor) {
		return
	}
	img, _ := v.ScreenToImage(anchor)
	v.Zoom = clampZoom(v.Zoom * factor)
	v.Offset = anchor.Sub(img.Mul(v.Zoom))
}

// Pan moves the image by a screen-space delta
func (v *View) Pan(delta geometry.Vector2) {
	v.Offset = v.Offset.Add(delta)
}

// ImageRect returns the screen position and size of the drawn image
func (v *View) ImageRect() (origin, size geometry.Vector2) {
	return v.Offset, v.ImageSize.Mul(v.Zoom)
}

func clampZoom(z float64) float64 {
	return math.Max(MinZoom, math.Min(MaxZoom, z))
}
