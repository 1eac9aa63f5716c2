// Package scene keeps rendered markers in lockstep with the point model and
// the viewport. The display layer owns the marker visuals behind an opaque
// Handle; the synchronizer only creates, destroys, and updates handles.
package scene

import (
	"fmt"

	"github.com/google/uuid"

	"planmark/internal/plan"
	"planmark/internal/transform"
)

// Handle identifies one rendered marker inside the display layer.
type Handle any

// MarkerStyle is the visual treatment of one marker. Geometry lives in the
// image-space layer, which the viewport scales; dividing the nominal size
// by the scale is what keeps markers a constant apparent size on screen.
type MarkerStyle struct {
	Radius      float64
	StrokeWidth float64
	FontSize    float64
	Selected    bool
}

// Renderer is implemented by the display layer.
type Renderer interface {
	CreateMarker(p plan.Point, style MarkerStyle) Handle
	DestroyMarker(h Handle)
	UpdateMarker(h Handle, p plan.Point, style MarkerStyle)
}

// Synchronizer reconciles store state against rendered markers.
type Synchronizer struct {
	renderer Renderer
	handles  map[string]Handle // point id -> handle
}

// New builds a synchronizer over the given renderer.
func New(r Renderer) *Synchronizer {
	return &Synchronizer{renderer: r, handles: make(map[string]Handle)}
}

// StyleFor derives the marker treatment for a point under a viewport scale.
func StyleFor(p plan.Point, scale float64, selected bool) MarkerStyle {
	return MarkerStyle{
		Radius:      p.Size / 2 / scale,
		StrokeWidth: 2 / scale,
		FontSize:    p.Size * 0.5 / scale,
		Selected:    selected,
	}
}

// Sync makes rendered markers exactly match the given state: destroys
// orphans, creates missing markers, and refreshes every style so size and
// highlight track the viewport and the selection. Idempotent; a full-list
// import degenerates to clear-then-recreate because every id changes.
func (s *Synchronizer) Sync(points []plan.Point, v transform.Viewport, selectedID string) {
	live := make(map[string]bool, len(points))
	for _, p := range points {
		live[p.ID] = true
	}
	for id, h := range s.handles {
		if !live[id] {
			s.renderer.DestroyMarker(h)
			delete(s.handles, id)
		}
	}
	for _, p := range points {
		style := StyleFor(p, v.Scale, p.ID == selectedID)
		if h, ok := s.handles[p.ID]; ok {
			s.renderer.UpdateMarker(h, p, style)
		} else {
			s.handles[p.ID] = s.renderer.CreateMarker(p, style)
		}
	}
}

// Attach subscribes the synchronizer to a store so every mutation
// re-reconciles the scene.
func (s *Synchronizer) Attach(store *plan.Store) {
	store.Subscribe(func(plan.Event) {
		s.Sync(store.Points(), store.Viewport(), store.Selected())
	})
}

// MarkerCount reports how many markers are currently rendered.
func (s *Synchronizer) MarkerCount() int { return len(s.handles) }

// Handle returns the rendered handle for a point id.
func (s *Synchronizer) Handle(id string) (Handle, bool) {
	h, ok := s.handles[id]
	return h, ok
}

// PlacePoint applies the placement policy: only in draw mode and only when
// the suggested row is actually free. The returned error message is shown
// to the user verbatim; the store is untouched on rejection.
func PlacePoint(store *plan.Store, imageX, imageY float64) (plan.Point, error) {
	if store.Viewport().Mode != transform.ModeDraw {
		return plan.Point{}, fmt.Errorf("switch to draw mode to place points")
	}
	row := store.NextAvailableRow()
	p := plan.Point{
		ID:     uuid.NewString(),
		RowNum: row,
		X:      imageX,
		Y:      imageY,
		Size:   store.DefaultSize(),
	}
	if err := store.AddPoint(p); err != nil {
		return plan.Point{}, fmt.Errorf("row %d unavailable: %w", row, err)
	}
	return p, nil
}
