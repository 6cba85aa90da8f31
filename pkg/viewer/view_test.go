package viewer

import (
	"math"
	"testing"

	"github.com/philipparndt/golabel/pkg/geometry"
)

const tolerance = 1e-9

func near(a, b geometry.Vector2) bool {
	return math.Abs(a.X-b.X) < tolerance && math.Abs(a.Y-b.Y) < tolerance
}

func TestFitCentersImage(t *testing.T) {
	v := NewView(200, 100, 1000, 1000)

	if math.Abs(v.Zoom-5*fitMargin) > tolerance {
		t.Errorf("expected zoom %v, got %v", 5*fitMargin, v.Zoom)
	}
	origin, size := v.ImageRect()
	center := origin.Add(size.Mul(0.5))
	if !near(center, geometry.NewVector2(500, 500)) {
		t.Errorf("expected image centered at (500,500), got %v", center)
	}
}

func TestMappingRoundTrip(t *testing.T) {
	v := NewView(640, 480, 1280, 720)
	v.ZoomAt(geometry.NewVector2(300, 200), 1.7)
	v.Pan(geometry.NewVector2(-35, 12))

	for _, p := range []geometry.Vector2{
		geometry.NewVector2(0, 0),
		geometry.NewVector2(320, 240),
		geometry.NewVector2(639.5, 1),
	} {
		back, within := v.ScreenToImage(v.ImageToScreen(p))
		if !near(back, p) {
			t.Errorf("round trip of %v gave %v", p, back)
		}
		if !within {
			t.Errorf("%v should be within the image", p)
		}
	}
}

func TestScreenToImageWithin(t *testing.T) {
	v := &View{Zoom: 2, Offset: geometry.NewVector2(10, 10), ImageSize: geometry.NewVector2(50, 50)}

	p, within := v.ScreenToImage(geometry.NewVector2(30, 50))
	if !within || !near(p, geometry.NewVector2(10, 20)) {
		t.Errorf("expected (10,20) within, got %v %v", p, within)
	}

	if _, within := v.ScreenToImage(geometry.NewVector2(5, 50)); within {
		t.Error("point left of the image should not be within")
	}
	if _, within := v.ScreenToImage(geometry.NewVector2(50, 111)); within {
		t.Error("point below the image should not be within")
	}
}

func TestZoomAtKeepsAnchor(t *testing.T) {
	v := NewView(400, 300, 800, 600)
	anchor := geometry.NewVector2(123, 456)
	before, _ := v.ScreenToImage(anchor)

	v.ZoomAt(anchor, 3)
	after, _ := v.ScreenToImage(anchor)
	if !near(before, after) {
		t.Errorf("anchor moved from %v to %v", before, after)
	}
}

func TestZoomIsClamped(t *testing.T) {
	v := NewView(100, 100, 100, 100)
	v.ZoomAt(geometry.Vector2{}, 1e9)
	if v.Zoom != MaxZoom {
		t.Errorf("expected max zoom, got %v", v.Zoom)
	}
	v.ZoomAt(geometry.Vector2{}, 1e-12)
	if v.Zoom != MinZoom {
		t.Errorf("expected min zoom, got %v", v.Zoom)
	}
	v.ZoomAt(geometry.Vector2{}, -2)
	if v.Zoom != MinZoom {
		t.Errorf("negative factor should be ignored, got %v", v.Zoom)
	}
}

func TestFitWithoutImage(t *testing.T) {
	v := NewView(0, 0, 800, 600)
	if v.Zoom != 1 {
		t.Errorf("expected zoom 1 without an image, got %v", v.Zoom)
	}
}

func TestClamp(t *testing.T) {
	v := &View{Zoom: 1, ImageSize: geometry.NewVector2(100, 50)}
	got := v.Clamp(geometry.NewVector2(-5, 70))
	if got != geometry.NewVector2(0, 50) {
		t.Errorf("expected (0,50), got %v", got)
	}
}

func TestSetScreenSizeKeepsCenter(t *testing.T) {
	v := NewView(100, 100, 400, 400)
	before, _ := v.ScreenToImage(geometry.NewVector2(200, 200))

	v.SetScreenSize(600, 300)
	after, _ := v.ScreenToImage(geometry.NewVector2(300, 150))
	if !near(before, after) {
		t.Errorf("center moved from %v to %v", before, after)
	}
}
