package transform

import (
	"math"
	"testing"
)

func TestToImageToScreenRoundTrip(t *testing.T) {
	v := Viewport{Scale: 2.5, OffsetX: -37.5, OffsetY: 12.25}
	ix, iy := ToImage(140, -80, v)
	sx, sy := ToScreen(ix, iy, v)
	if math.Abs(sx-140) > 1e-9 || math.Abs(sy-(-80)) > 1e-9 {
		t.Fatalf("round trip drifted: got (%v, %v)", sx, sy)
	}
}

func TestZoomAtExample(t *testing.T) {
	v := Viewport{Scale: 1, OffsetX: 0, OffsetY: 0}
	out := ZoomAt(100, 100, 2, v)
	if out.Scale != 2 {
		t.Fatalf("scale = %v, want 2", out.Scale)
	}
	if out.OffsetX != -100 || out.OffsetY != -100 {
		t.Fatalf("offset = (%v, %v), want (-100, -100)", out.OffsetX, out.OffsetY)
	}
	// image point (100,100) must still map to screen (100,100)
	sx, sy := ToScreen(100, 100, out)
	if sx != 100 || sy != 100 {
		t.Fatalf("pivot moved to (%v, %v)", sx, sy)
	}
}

func TestZoomAtPivotInvariance(t *testing.T) {
	viewports := []Viewport{
		{Scale: 1, OffsetX: 0, OffsetY: 0},
		{Scale: 0.4, OffsetX: 33, OffsetY: -120},
		{Scale: 3.7, OffsetX: -999.5, OffsetY: 42.42},
	}
	pivots := [][2]float64{{0, 0}, {100, 100}, {-55.5, 321}, {640, 480}}
	factors := []float64{0.5, 0.9, 1.1, 2, 5}
	for _, v := range viewports {
		for _, p := range pivots {
			for _, f := range factors {
				out := ZoomAt(p[0], p[1], f, v)
				ox, oy := ToImage(p[0], p[1], v)
				nx, ny := ToImage(p[0], p[1], out)
				if math.Abs(ox-nx) > 1e-6 || math.Abs(oy-ny) > 1e-6 {
					t.Fatalf("pivot %v factor %v from %+v: image point (%v,%v) != (%v,%v)",
						p, f, v, ox, oy, nx, ny)
				}
			}
		}
	}
}

func TestZoomAtClampsScale(t *testing.T) {
	v := Viewport{Scale: 1}
	for i := 0; i < 20; i++ {
		v = ZoomAt(10, 10, 3, v)
	}
	if v.Scale != MaxScale {
		t.Fatalf("scale = %v, want %v", v.Scale, MaxScale)
	}
	for i := 0; i < 40; i++ {
		v = ZoomAt(10, 10, 0.25, v)
	}
	if v.Scale != MinScale {
		t.Fatalf("scale = %v, want %v", v.Scale, MinScale)
	}
}

func TestClampScale(t *testing.T) {
	if got := ClampScale(0.01); got != MinScale {
		t.Fatalf("ClampScale(0.01) = %v", got)
	}
	if got := ClampScale(100); got != MaxScale {
		t.Fatalf("ClampScale(100) = %v", got)
	}
	if got := ClampScale(1.5); got != 1.5 {
		t.Fatalf("ClampScale(1.5) = %v", got)
	}
}

func TestFitToContentCentersFrame(t *testing.T) {
	v := FitToContent(2000, 1000, 800, 600)
	if v.Scale < FitMinScale || v.Scale > FitMaxScale {
		t.Fatalf("scale %v outside fit band", v.Scale)
	}
	// center of the framed sub-region must land on the container center
	cx := 2000*FrameLeft + 2000*FrameWidth/2
	cy := 1000*FrameTop + 1000*FrameHeight/2
	sx, sy := ToScreen(cx, cy, v)
	if math.Abs(sx-400) > 1e-9 || math.Abs(sy-300) > 1e-9 {
		t.Fatalf("frame center at (%v, %v), want (400, 300)", sx, sy)
	}
}

func TestFitToContentClampsTinyAndHugeImages(t *testing.T) {
	// huge image forces the scale below the fit floor
	v := FitToContent(1e6, 1e6, 800, 600)
	if v.Scale != FitMinScale {
		t.Fatalf("scale = %v, want %v", v.Scale, FitMinScale)
	}
	// tiny image forces it above the ceiling
	v = FitToContent(10, 10, 800, 600)
	if v.Scale != FitMaxScale {
		t.Fatalf("scale = %v, want %v", v.Scale, FitMaxScale)
	}
}

func TestModeString(t *testing.T) {
	if ModeDraw.String() != "draw" || ModePan.String() != "pan" {
		t.Fatalf("mode strings wrong: %q %q", ModeDraw, ModePan)
	}
}
