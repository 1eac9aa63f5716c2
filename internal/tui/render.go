package tui

import (
	"fmt"
	"strings"

	"planmark/internal/plan"
	"planmark/internal/transform"
)

// Screen-space for the canvas is the braille microgrid: 2 micro-pixels per
// cell horizontally, 4 vertically. The viewport offset is in micro-pixels.

// cellToImage converts a canvas cell (its center) to image-space.
func (m Model) cellToImage(cx, cy int) (float64, float64) {
	mx := float64(cx*2 + 1)
	my := float64(cy*4 + 2)
	return transform.ToImage(mx, my, m.viewport())
}

// renderCanvas paints the floor plan and all markers for a w x h cell area.
func (m Model) renderCanvas(w, h int) string {
	v := m.viewport()
	br := newBrailleBuf(w, h)

	if m.img != nil {
		wMic, hMic := w*2, h*4
		for my := 0; my < hMic; my++ {
			for mx := 0; mx < wMic; mx++ {
				ix, iy := transform.ToImage(float64(mx), float64(my), v)
				if m.img.inkAt(int(ix), int(iy)) {
					br.setPixel(mx, my)
				}
			}
		}
	}

	// marker rings: the style radius is in image-layer units, so the
	// viewport scale cancels back to a constant apparent size
	for _, mk := range m.markers.ordered() {
		sx, sy := transform.ToScreen(mk.point.X, mk.point.Y, v)
		r := int(mk.style.Radius * v.Scale)
		br.drawCircleMicro(int(sx), int(sy), r)
	}

	lines := br.toLines()

	// overlay row-number labels on top of the braille canvas
	type label struct {
		x, y     int
		text     string
		selected bool
	}
	var labels []label
	for _, mk := range m.markers.ordered() {
		sx, sy := transform.ToScreen(mk.point.X, mk.point.Y, v)
		text := fmt.Sprintf("%d", mk.point.RowNum)
		cx := int(sx)/2 - len(text)/2
		cy := int(sy) / 4
		labels = append(labels, label{x: cx, y: cy, text: text, selected: mk.style.Selected})
	}
	// hover cursor in draw mode
	if m.hovering && m.viewport().Mode == transform.ModeDraw {
		labels = append(labels, label{x: m.hoverCellX, y: m.hoverCellY, text: "+"})
	}

	// apply right-to-left per line so earlier splices keep their indices
	perLine := make(map[int][]label)
	for _, lb := range labels {
		if lb.y < 0 || lb.y >= len(lines) {
			continue
		}
		perLine[lb.y] = append(perLine[lb.y], lb)
	}
	for y, lbs := range perLine {
		for i := 0; i < len(lbs); i++ {
			for j := i + 1; j < len(lbs); j++ {
				if lbs[j].x > lbs[i].x {
					lbs[i], lbs[j] = lbs[j], lbs[i]
				}
			}
		}
		row := []rune(lines[y])
		var out strings.Builder
		end := len(row)
		var tail []string
		for _, lb := range lbs {
			x0 := lb.x
			x1 := lb.x + len(lb.text)
			if x0 < 0 || x1 > len(row) || x1 > end {
				continue
			}
			st := markerStyle
			if lb.selected {
				st = selStyle
			}
			if lb.text == "+" {
				st = dimStyle
			}
			tail = append(tail, st.Render(lb.text)+string(row[x1:end]))
			end = x0
		}
		out.WriteString(string(row[:end]))
		for i := len(tail) - 1; i >= 0; i-- {
			out.WriteString(tail[i])
		}
		lines[y] = out.String()
	}
	return strings.Join(lines, "\n")
}

// hitMarker finds the topmost marker under a canvas cell, for click
// selection. The hit radius is the marker's apparent screen radius, with a
// small floor so tiny markers stay clickable.
func (m Model) hitMarker(cx, cy int) (plan.Point, bool) {
	v := m.viewport()
	hx := cx*2 + 1
	hy := cy*4 + 2
	best := -1
	var hit plan.Point
	for _, mk := range m.markers.ordered() {
		sx, sy := transform.ToScreen(mk.point.X, mk.point.Y, v)
		r := maxi(int(mk.style.Radius*v.Scale), 2)
		dx := int(sx) - hx
		dy := int(sy) - hy
		d := dx*dx + dy*dy
		if d <= r*r && (best == -1 || d < best) {
			best = d
			hit = mk.point
		}
	}
	return hit, best >= 0
}
