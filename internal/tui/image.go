package tui

import (
	"bytes"
	"fmt"
	"image"

	_ "image/jpeg"
	_ "image/png"
)

// planImage is the decoded floor plan, reduced to a luminance grid for
// braille rendering. The source blob is kept for persistence.
type planImage struct {
	w, h int
	lum  []uint8
	blob []byte
}

// inkThreshold: plans are dark lines on light paper; anything darker than
// this is drawn.
const inkThreshold = 140

func decodePlanImage(blob []byte) (*planImage, error) {
	img, _, err := image.Decode(bytes.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("decode image: empty bounds")
	}
	pi := &planImage{w: w, h: h, lum: make([]uint8, w*h), blob: blob}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			// Rec. 601 luma, 16-bit channels down to 8
			pi.lum[y*w+x] = uint8((299*r + 587*g + 114*bl) / 1000 >> 8)
		}
	}
	return pi, nil
}

// inkAt reports whether the image pixel at (x, y) should be drawn.
func (p *planImage) inkAt(x, y int) bool {
	if x < 0 || y < 0 || x >= p.w || y >= p.h {
		return false
	}
	return p.lum[y*p.w+x] < inkThreshold
}
