// Package transform holds the pure viewport math: the affine map between
// image-space and screen-space, zoom-toward-a-pivot, and fit-to-content
// framing. No state, no side effects.
package transform

// Zoom limits for user-driven zooming; FitToContent uses a narrower band.
const (
	MinScale = 0.1
	MaxScale = 6.0

	FitMinScale = 0.3
	FitMaxScale = 4.0
	FitMargin   = 0.92

	// Fraction of the source image that holds the meaningful floor plan.
	// FitToContent frames this sub-region rather than the whole bitmap.
	FrameLeft   = 0.15
	FrameTop    = 0.28
	FrameWidth  = 0.72
	FrameHeight = 0.48
)

// Mode is the active pointer interaction mode.
type Mode int

const (
	ModeDraw Mode = iota
	ModePan
)

func (m Mode) String() string {
	if m == ModePan {
		return "pan"
	}
	return "draw"
}

// Viewport is the affine transform from image-space to screen-space:
// screen = image*Scale + Offset, uniform in both axes.
type Viewport struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
	Mode    Mode
}

// ClampScale bounds s to the user zoom range.
func ClampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}

// ToImage converts a screen coordinate to image-space (inverse affine map).
func ToImage(screenX, screenY float64, v Viewport) (float64, float64) {
	return (screenX - v.OffsetX) / v.Scale, (screenY - v.OffsetY) / v.Scale
}

// ToScreen converts an image coordinate to screen-space (forward affine map).
func ToScreen(imageX, imageY float64, v Viewport) (float64, float64) {
	return imageX*v.Scale + v.OffsetX, imageY*v.Scale + v.OffsetY
}

// ZoomAt rescales by factor while keeping the image point under the pivot
// fixed on screen. The pivot is the pointer position for wheel zoom and the
// canvas center for keyboard zoom.
func ZoomAt(pivotX, pivotY, factor float64, v Viewport) Viewport {
	newScale := ClampScale(v.Scale * factor)
	imgX := (pivotX - v.OffsetX) / v.Scale
	imgY := (pivotY - v.OffsetY) / v.Scale
	out := v
	out.Scale = newScale
	out.OffsetX = pivotX - imgX*newScale
	out.OffsetY = pivotY - imgY*newScale
	return out
}

// FitToContent frames the plan sub-region of an imageW x imageH bitmap inside
// a containerW x containerH surface, centered, with a safety margin. The
// resulting scale is clamped to the fit band, which is narrower than the
// user zoom range.
func FitToContent(imageW, imageH, containerW, containerH float64) Viewport {
	subX := imageW * FrameLeft
	subY := imageH * FrameTop
	subW := imageW * FrameWidth
	subH := imageH * FrameHeight

	scale := 1.0
	if subW > 0 && subH > 0 {
		sx := containerW / subW
		sy := containerH / subH
		scale = sx
		if sy < sx {
			scale = sy
		}
		scale *= FitMargin
	}
	if scale < FitMinScale {
		scale = FitMinScale
	}
	if scale > FitMaxScale {
		scale = FitMaxScale
	}

	// center the framed sub-region in the container
	cx := subX + subW/2
	cy := subY + subH/2
	return Viewport{
		Scale:   scale,
		OffsetX: containerW/2 - cx*scale,
		OffsetY: containerH/2 - cy*scale,
	}
}
