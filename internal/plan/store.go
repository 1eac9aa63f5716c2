package plan

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"planmark/internal/transform"
)

// EventKind says which slice of store state a notification covers.
type EventKind int

const (
	EventPoints EventKind = iota
	EventViewport
	EventSelection
)

// Event is delivered synchronously to subscribers after a mutation has fully
// applied (including persistence). Observers never see transient state.
type Event struct {
	Kind EventKind
}

// Persister stores the point list durably. Implementations live outside this
// package; a nil Persister disables persistence (useful in tests).
type Persister interface {
	SavePoints(points []Point) error
	LoadPoints() ([]Point, error)
}

// Store is the authoritative owner of points, viewport, and selection.
// Single-threaded by design: the TUI event loop is the only caller.
type Store struct {
	maxRow      int
	defaultSize float64 // nominal marker size for points placed without one
	points      []Point // always sorted ascending by RowNum
	viewport    transform.Viewport
	selected    string // point id, or ""

	persister Persister
	observers []func(Event)
	log       *zap.Logger
}

// NewStore creates an empty store with the given row ceiling. persister and
// log may be nil.
func NewStore(maxRow int, persister Persister, log *zap.Logger) *Store {
	if maxRow <= 0 {
		maxRow = DefaultMaxRow
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		maxRow:      maxRow,
		defaultSize: DefaultPointSize,
		viewport:    transform.Viewport{Scale: 1},
		persister:   persister,
		log:         log,
	}
}

// SetDefaultSize overrides the nominal size given to points placed without
// an explicit one. Non-positive values are ignored.
func (s *Store) SetDefaultSize(size float64) {
	if size > 0 {
		s.defaultSize = size
	}
}

// DefaultSize is the nominal marker size for new points.
func (s *Store) DefaultSize() float64 { return s.defaultSize }

// Load pulls the persisted point list into the store. Called once at
// startup; a load failure leaves the store empty and is returned for the
// caller to report.
func (s *Store) Load() error {
	if s.persister == nil {
		return nil
	}
	pts, err := s.persister.LoadPoints()
	if err != nil {
		return fmt.Errorf("load points: %w", err)
	}
	s.points = pts
	s.sortPoints()
	s.notify(Event{Kind: EventPoints})
	return nil
}

// Subscribe registers fn to be called synchronously after every mutation.
func (s *Store) Subscribe(fn func(Event)) {
	s.observers = append(s.observers, fn)
}

// MaxRow is the configured row ceiling.
func (s *Store) MaxRow() int { return s.maxRow }

// Points returns a copy of the list; callers never hold internal slices.
func (s *Store) Points() []Point {
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}

// PointByID looks a point up by id.
func (s *Store) PointByID(id string) (Point, bool) {
	for _, p := range s.points {
		if p.ID == id {
			return p, true
		}
	}
	return Point{}, false
}

// Viewport returns the current viewport state.
func (s *Store) Viewport() transform.Viewport { return s.viewport }

// Selected returns the selected point id, or "".
func (s *Store) Selected() string { return s.selected }

// AddPoint inserts a point, assigning a fresh id when the caller supplies
// none. Rejects out-of-range and duplicate rows without changing state.
func (s *Store) AddPoint(p Point) error {
	if p.RowNum < 1 || p.RowNum > s.maxRow {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, p.RowNum)
	}
	for _, q := range s.points {
		if q.RowNum == p.RowNum {
			return fmt.Errorf("%w: %d", ErrDuplicateRow, p.RowNum)
		}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Size <= 0 {
		p.Size = s.defaultSize
	}
	s.points = append(s.points, p)
	s.sortPoints()
	s.persist()
	s.notify(Event{Kind: EventPoints})
	return nil
}

// RemovePoint deletes by id and clears the selection if it referenced the
// removed point.
func (s *Store) RemovePoint(id string) error {
	idx := -1
	for i, p := range s.points {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNotFound
	}
	s.points = append(s.points[:idx], s.points[idx+1:]...)
	if s.selected == id {
		s.selected = ""
	}
	s.persist()
	s.notify(Event{Kind: EventPoints})
	return nil
}

// ClearAll empties the point list and the selection.
func (s *Store) ClearAll() {
	s.points = nil
	s.selected = ""
	s.persist()
	s.notify(Event{Kind: EventPoints})
}

// ImportPoints replaces the whole list. Every kept item gets a freshly
// generated id so imports can never collide with prior ids; items outside
// [1, maxRow] are dropped silently. Returns the number of points kept.
func (s *Store) ImportPoints(list []Point) int {
	var kept []Point
	seen := make(map[int]bool)
	for _, p := range list {
		if p.RowNum < 1 || p.RowNum > s.maxRow || seen[p.RowNum] {
			continue
		}
		seen[p.RowNum] = true
		p.ID = uuid.NewString()
		if p.Size <= 0 {
			p.Size = s.defaultSize
		}
		kept = append(kept, p)
	}
	s.points = kept
	s.selected = ""
	s.sortPoints()
	s.persist()
	s.notify(Event{Kind: EventPoints})
	return len(kept)
}

// NextAvailableRow returns the smallest unused row in [1, maxRow],
// saturating at maxRow when every row is taken. Placement always gets a
// suggestion, even at capacity.
func (s *Store) NextAvailableRow() int {
	used := make(map[int]bool, len(s.points))
	for _, p := range s.points {
		used[p.RowNum] = true
	}
	for r := 1; r <= s.maxRow; r++ {
		if !used[r] {
			return r
		}
	}
	return s.maxRow
}

// SelectPoint marks the point with the given id as selected. Selection is
// exclusive; selecting a missing id is a rejection.
func (s *Store) SelectPoint(id string) error {
	if _, ok := s.PointByID(id); !ok {
		return ErrNotFound
	}
	s.selected = id
	s.notify(Event{Kind: EventSelection})
	return nil
}

// ClearSelection drops any current selection.
func (s *Store) ClearSelection() {
	if s.selected == "" {
		return
	}
	s.selected = ""
	s.notify(Event{Kind: EventSelection})
}

// SetScale clamps and applies a new zoom scale.
func (s *Store) SetScale(scale float64) {
	s.viewport.Scale = transform.ClampScale(scale)
	s.notify(Event{Kind: EventViewport})
}

// SetOffset applies a new pan offset. Offsets are unclamped.
func (s *Store) SetOffset(x, y float64) {
	s.viewport.OffsetX = x
	s.viewport.OffsetY = y
	s.notify(Event{Kind: EventViewport})
}

// SetViewport replaces scale and offset at once (zoom-at-pivot, fit) so
// subscribers see a single consistent change.
func (s *Store) SetViewport(v transform.Viewport) {
	v.Scale = transform.ClampScale(v.Scale)
	v.Mode = s.viewport.Mode
	s.viewport = v
	s.notify(Event{Kind: EventViewport})
}

// SetMode switches between draw and pan interaction.
func (s *Store) SetMode(mode transform.Mode) {
	s.viewport.Mode = mode
	s.notify(Event{Kind: EventViewport})
}

func (s *Store) sortPoints() {
	sort.SliceStable(s.points, func(i, j int) bool { return s.points[i].RowNum < s.points[j].RowNum })
}

// persist writes through to durable storage. Failures are logged, not
// fatal: the in-memory document stays usable for the rest of the session.
func (s *Store) persist() {
	if s.persister == nil {
		return
	}
	if err := s.persister.SavePoints(s.Points()); err != nil {
		s.log.Warn("persist points failed", zap.Error(err))
	}
}

func (s *Store) notify(ev Event) {
	for _, fn := range s.observers {
		fn(ev)
	}
}
