package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planmark/internal/plan"
)

func openTestStore(t *testing.T) *DocStore {
	t.Helper()
	d, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestLoadPointsEmptyDocument(t *testing.T) {
	d := openTestStore(t)
	pts, err := d.LoadPoints()
	require.NoError(t, err)
	assert.Nil(t, pts)
}

func TestSaveLoadPointsRoundTrip(t *testing.T) {
	d := openTestStore(t)
	in := []plan.Point{
		{ID: "a", RowNum: 1, X: 100, Y: 50, Size: 24},
		{ID: "b", RowNum: 7, X: -3.5, Y: 0.25, Size: 18},
	}
	require.NoError(t, d.SavePoints(in))
	out, err := d.LoadPoints()
	require.NoError(t, err)
	assert.Equal(t, in, out)

	// saving again overwrites, not appends
	require.NoError(t, d.SavePoints(in[:1]))
	out, err = d.LoadPoints()
	require.NoError(t, err)
	require.Len(t, out, 1)
}

func TestSavePointsNilBecomesEmptyArray(t *testing.T) {
	d := openTestStore(t)
	require.NoError(t, d.SavePoints(nil))
	out, err := d.LoadPoints()
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestImageRoundTrip(t *testing.T) {
	d := openTestStore(t)

	_, ok, err := d.LoadImage()
	require.NoError(t, err)
	assert.False(t, ok, "fresh store has no image")

	blob := []byte{0x89, 'P', 'N', 'G', 0x00, 0xFF, 0x7F}
	require.NoError(t, d.SaveImage(blob))
	out, ok, err := d.LoadImage()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, blob, out)
}

func TestCorruptPointsSurfacesError(t *testing.T) {
	d := openTestStore(t)
	require.NoError(t, d.set(keyPoints, "{not json"))
	_, err := d.LoadPoints()
	require.Error(t, err)
}

func TestClear(t *testing.T) {
	d := openTestStore(t)
	require.NoError(t, d.SavePoints([]plan.Point{{ID: "a", RowNum: 1}}))
	require.NoError(t, d.SaveImage([]byte{1}))
	require.NoError(t, d.Clear())
	pts, err := d.LoadPoints()
	require.NoError(t, err)
	assert.Nil(t, pts)
	_, ok, err := d.LoadImage()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "doc.db")
	d, err := Open(path)
	require.NoError(t, err)
	defer d.Close()
	require.NoError(t, d.SavePoints([]plan.Point{{ID: "a", RowNum: 1}}))
	assert.Equal(t, path, d.Path())
}

func TestStoreIntegrationWithPlan(t *testing.T) {
	d := openTestStore(t)
	s := plan.NewStore(215, d, nil)
	require.NoError(t, s.AddPoint(plan.Point{RowNum: 4, X: 1, Y: 2}))
	require.NoError(t, s.AddPoint(plan.Point{RowNum: 2, X: 3, Y: 4}))

	// a second store over the same document sees the same points
	s2 := plan.NewStore(215, d, nil)
	require.NoError(t, s2.Load())
	pts := s2.Points()
	require.Len(t, pts, 2)
	assert.Equal(t, 2, pts[0].RowNum)
	assert.Equal(t, 4, pts[1].RowNum)
}
