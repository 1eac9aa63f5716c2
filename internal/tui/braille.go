package tui

// brailleBuf rasterizes into a 2x4 microgrid per terminal cell, composited
// to braille runes.
type brailleBuf struct {
	w, h int       // in cells
	m    [][]uint8 // per-cell 8-bit mask
}

func newBrailleBuf(w, h int) *brailleBuf {
	m := make([][]uint8, h)
	for i := range m {
		m[i] = make([]uint8, w)
	}
	return &brailleBuf{w: w, h: h, m: m}
}

// setPixel sets a micro-pixel at micro coords (2x4 per cell)
func (b *brailleBuf) setPixel(mx, my int) {
	if mx < 0 || my < 0 {
		return
	}
	cx, rx := mx/2, mx%2
	cy, ry := my/4, my%4
	if cy < 0 || cy >= b.h || cx < 0 || cx >= b.w {
		return
	}
	var bit uint8
	if rx == 0 {
		switch ry {
		case 0:
			bit = 0x01
		case 1:
			bit = 0x02
		case 2:
			bit = 0x04
		case 3:
			bit = 0x40
		}
	} else {
		switch ry {
		case 0:
			bit = 0x08
		case 1:
			bit = 0x10
		case 2:
			bit = 0x20
		case 3:
			bit = 0x80
		}
	}
	b.m[cy][cx] |= bit
}

// drawCircleMicro draws a circle outline on the microgrid (midpoint
// algorithm). Used for marker rings.
func (b *brailleBuf) drawCircleMicro(cx, cy, r int) {
	if r <= 0 {
		b.setPixel(cx, cy)
		return
	}
	x, y := r, 0
	err := 1 - r
	for x >= y {
		b.setPixel(cx+x, cy+y)
		b.setPixel(cx+y, cy+x)
		b.setPixel(cx-y, cy+x)
		b.setPixel(cx-x, cy+y)
		b.setPixel(cx-x, cy-y)
		b.setPixel(cx-y, cy-x)
		b.setPixel(cx+y, cy-x)
		b.setPixel(cx+x, cy-y)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2 * (y - x + 1)
		}
	}
}

func (b *brailleBuf) toLines() []string {
	out := make([]string, b.h)
	for y := 0; y < b.h; y++ {
		row := make([]rune, b.w)
		for x := 0; x < b.w; x++ {
			mask := b.m[y][x]
			if mask == 0 {
				row[x] = ' '
			} else {
				row[x] = rune(0x2800 + int(mask))
			}
		}
		out[y] = string(row)
	}
	return out
}
