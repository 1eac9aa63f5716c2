package tui

import (
	"sort"

	"planmark/internal/plan"
	"planmark/internal/scene"
)

// markerLayer is the terminal implementation of scene.Renderer. Marker
// visuals are plain data here; painting happens in render.go each frame.
// Handles are opaque ints owned by this layer, never by the model.
type markerLayer struct {
	seq     int
	markers map[int]*termMarker
}

type termMarker struct {
	point plan.Point
	style scene.MarkerStyle
}

func newMarkerLayer() *markerLayer {
	return &markerLayer{markers: make(map[int]*termMarker)}
}

func (l *markerLayer) CreateMarker(p plan.Point, style scene.MarkerStyle) scene.Handle {
	l.seq++
	l.markers[l.seq] = &termMarker{point: p, style: style}
	return l.seq
}

func (l *markerLayer) DestroyMarker(h scene.Handle) {
	delete(l.markers, h.(int))
}

func (l *markerLayer) UpdateMarker(h scene.Handle, p plan.Point, style scene.MarkerStyle) {
	if mk, ok := l.markers[h.(int)]; ok {
		mk.point = p
		mk.style = style
	}
}

// ordered returns markers sorted by row for deterministic painting.
func (l *markerLayer) ordered() []*termMarker {
	out := make([]*termMarker, 0, len(l.markers))
	for _, mk := range l.markers {
		out = append(out, mk)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].point.RowNum < out[j].point.RowNum })
	return out
}
