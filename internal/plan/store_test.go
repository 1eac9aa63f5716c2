package plan

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPersister struct {
	saved   [][]Point
	initial []Point
	fail    error
}

func (m *memPersister) SavePoints(points []Point) error {
	if m.fail != nil {
		return m.fail
	}
	m.saved = append(m.saved, points)
	return nil
}

func (m *memPersister) LoadPoints() ([]Point, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	return m.initial, nil
}

func TestAddPointUniqueness(t *testing.T) {
	s := NewStore(215, nil, nil)
	require.NoError(t, s.AddPoint(Point{RowNum: 3, X: 10, Y: 20}))
	err := s.AddPoint(Point{RowNum: 3, X: 99, Y: 99})
	require.ErrorIs(t, err, ErrDuplicateRow)
	require.Len(t, s.Points(), 1)
	assert.Equal(t, 10.0, s.Points()[0].X, "rejected add must not change state")
}

func TestAddPointRowRange(t *testing.T) {
	s := NewStore(215, nil, nil)
	require.ErrorIs(t, s.AddPoint(Point{RowNum: 0}), ErrRowOutOfRange)
	require.ErrorIs(t, s.AddPoint(Point{RowNum: 216}), ErrRowOutOfRange)
	require.Empty(t, s.Points())
}

func TestAddPointAssignsIDAndDefaultSize(t *testing.T) {
	s := NewStore(215, nil, nil)
	require.NoError(t, s.AddPoint(Point{RowNum: 1, X: 1, Y: 2}))
	p := s.Points()[0]
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, DefaultPointSize, p.Size)
}

func TestConfiguredDefaultSize(t *testing.T) {
	s := NewStore(215, nil, nil)
	s.SetDefaultSize(48)
	assert.Equal(t, 48.0, s.DefaultSize())

	require.NoError(t, s.AddPoint(Point{RowNum: 1, X: 1, Y: 2}))
	assert.Equal(t, 48.0, s.Points()[0].Size)

	// explicit sizes win; imported sizeless points pick up the override too
	require.NoError(t, s.AddPoint(Point{RowNum: 2, X: 1, Y: 2, Size: 12}))
	assert.Equal(t, 12.0, s.Points()[1].Size)
	s.ImportPoints([]Point{{RowNum: 5, X: 3, Y: 4}})
	assert.Equal(t, 48.0, s.Points()[0].Size)

	s.SetDefaultSize(0) // ignored
	assert.Equal(t, 48.0, s.DefaultSize())
}

func TestPointsSortedByRow(t *testing.T) {
	s := NewStore(215, nil, nil)
	for _, r := range []int{9, 2, 5, 1} {
		require.NoError(t, s.AddPoint(Point{RowNum: r, X: 1, Y: 1}))
	}
	rows := []int{}
	for _, p := range s.Points() {
		rows = append(rows, p.RowNum)
	}
	assert.Equal(t, []int{1, 2, 5, 9}, rows)
}

func TestNextAvailableRowScenario(t *testing.T) {
	s := NewStore(215, nil, nil)
	require.NoError(t, s.AddPoint(Point{RowNum: 1, X: 100, Y: 50, Size: 24}))
	assert.Equal(t, 2, s.NextAvailableRow())
	require.NoError(t, s.AddPoint(Point{RowNum: 5, X: 1, Y: 1}))
	assert.Equal(t, 2, s.NextAvailableRow())
	id := s.Points()[0].ID
	require.NoError(t, s.RemovePoint(id))
	assert.Equal(t, 1, s.NextAvailableRow())
}

func TestNextAvailableRowSaturates(t *testing.T) {
	s := NewStore(4, nil, nil)
	for r := 1; r <= 4; r++ {
		require.NoError(t, s.AddPoint(Point{RowNum: r, X: 1, Y: 1}))
	}
	assert.Equal(t, 4, s.NextAvailableRow(), "full store still suggests the ceiling")
}

func TestRemovePointClearsSelection(t *testing.T) {
	s := NewStore(215, nil, nil)
	require.NoError(t, s.AddPoint(Point{RowNum: 1, X: 1, Y: 1}))
	id := s.Points()[0].ID
	require.NoError(t, s.SelectPoint(id))
	require.Equal(t, id, s.Selected())
	require.NoError(t, s.RemovePoint(id))
	assert.Empty(t, s.Selected())
}

func TestRemoveMissingPoint(t *testing.T) {
	s := NewStore(215, nil, nil)
	require.ErrorIs(t, s.RemovePoint("nope"), ErrNotFound)
}

func TestSelectionExclusive(t *testing.T) {
	s := NewStore(215, nil, nil)
	require.NoError(t, s.AddPoint(Point{RowNum: 1, X: 1, Y: 1}))
	require.NoError(t, s.AddPoint(Point{RowNum: 2, X: 2, Y: 2}))
	a, b := s.Points()[0].ID, s.Points()[1].ID
	require.NoError(t, s.SelectPoint(a))
	require.NoError(t, s.SelectPoint(b))
	assert.Equal(t, b, s.Selected())
	require.ErrorIs(t, s.SelectPoint("missing"), ErrNotFound)
	assert.Equal(t, b, s.Selected(), "failed select must not change selection")
}

func TestImportReplacesAtomically(t *testing.T) {
	s := NewStore(215, nil, nil)
	require.NoError(t, s.AddPoint(Point{RowNum: 100, X: 1, Y: 1}))
	oldID := s.Points()[0].ID

	kept := s.ImportPoints([]Point{
		{RowNum: 5, X: 1, Y: 2, ID: "caller-supplied"},
		{RowNum: 3, X: 3, Y: 4},
		{RowNum: 999, X: 0, Y: 0}, // dropped: out of range
		{RowNum: 0, X: 0, Y: 0},   // dropped: out of range
	})
	assert.Equal(t, 2, kept)
	pts := s.Points()
	require.Len(t, pts, 2)
	assert.Equal(t, 3, pts[0].RowNum)
	assert.Equal(t, 5, pts[1].RowNum)
	for _, p := range pts {
		assert.NotEmpty(t, p.ID)
		assert.NotEqual(t, "caller-supplied", p.ID, "imports never keep caller ids")
		assert.NotEqual(t, oldID, p.ID)
	}
}

func TestClearAll(t *testing.T) {
	s := NewStore(215, nil, nil)
	require.NoError(t, s.AddPoint(Point{RowNum: 1, X: 1, Y: 1}))
	require.NoError(t, s.SelectPoint(s.Points()[0].ID))
	s.ClearAll()
	assert.Empty(t, s.Points())
	assert.Empty(t, s.Selected())
}

func TestScaleClamped(t *testing.T) {
	s := NewStore(215, nil, nil)
	s.SetScale(100)
	assert.Equal(t, 6.0, s.Viewport().Scale)
	s.SetScale(0.0001)
	assert.Equal(t, 0.1, s.Viewport().Scale)
}

func TestNotifyOncePerMutation(t *testing.T) {
	s := NewStore(215, nil, nil)
	var events []Event
	s.Subscribe(func(ev Event) { events = append(events, ev) })

	require.NoError(t, s.AddPoint(Point{RowNum: 1, X: 1, Y: 1}))
	require.Len(t, events, 1)
	assert.Equal(t, EventPoints, events[0].Kind)

	s.SetOffset(5, 5)
	require.Len(t, events, 2)
	assert.Equal(t, EventViewport, events[1].Kind)

	// removal that also clears selection is still one notification
	require.NoError(t, s.SelectPoint(s.Points()[0].ID))
	require.Len(t, events, 3)
	require.NoError(t, s.RemovePoint(s.Points()[0].ID))
	require.Len(t, events, 4)
}

func TestObserverSeesConsistentState(t *testing.T) {
	s := NewStore(215, nil, nil)
	var sawRows []int
	s.Subscribe(func(ev Event) {
		if ev.Kind != EventPoints {
			return
		}
		sawRows = nil
		for _, p := range s.Points() {
			sawRows = append(sawRows, p.RowNum)
		}
	})
	require.NoError(t, s.AddPoint(Point{RowNum: 7, X: 1, Y: 1}))
	require.NoError(t, s.AddPoint(Point{RowNum: 2, X: 1, Y: 1}))
	assert.Equal(t, []int{2, 7}, sawRows, "observer must see sorted post-mutation state")
}

func TestPersistOnMutation(t *testing.T) {
	mp := &memPersister{}
	s := NewStore(215, mp, nil)
	require.NoError(t, s.AddPoint(Point{RowNum: 1, X: 1, Y: 1}))
	require.NoError(t, s.AddPoint(Point{RowNum: 2, X: 2, Y: 2}))
	s.ClearAll()
	require.Len(t, mp.saved, 3)
	assert.Len(t, mp.saved[1], 2)
	assert.Empty(t, mp.saved[2])
}

func TestPersistFailureDoesNotAbortMutation(t *testing.T) {
	mp := &memPersister{fail: errors.New("disk gone")}
	s := NewStore(215, mp, nil)
	require.NoError(t, s.AddPoint(Point{RowNum: 1, X: 1, Y: 1}))
	assert.Len(t, s.Points(), 1, "in-memory document survives a persist failure")
}

func TestLoad(t *testing.T) {
	mp := &memPersister{initial: []Point{
		{ID: "b", RowNum: 9, X: 1, Y: 1, Size: 24},
		{ID: "a", RowNum: 2, X: 2, Y: 2, Size: 24},
	}}
	s := NewStore(215, mp, nil)
	require.NoError(t, s.Load())
	pts := s.Points()
	require.Len(t, pts, 2)
	assert.Equal(t, 2, pts[0].RowNum, "loaded points are re-sorted")
}

func TestPointsReturnsCopy(t *testing.T) {
	s := NewStore(215, nil, nil)
	require.NoError(t, s.AddPoint(Point{RowNum: 1, X: 1, Y: 1}))
	pts := s.Points()
	pts[0].X = 999
	assert.Equal(t, 1.0, s.Points()[0].X)
}
