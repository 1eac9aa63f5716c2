// Package plan owns the annotation document: the point list, the viewport,
// and the selection. All mutation goes through Store, which persists and
// notifies subscribers after every change.
package plan

import "errors"

// DefaultPointSize is the nominal marker diameter in pixels at scale 1.
const DefaultPointSize = 24.0

// DefaultMaxRow is the row ceiling used when no configuration overrides it.
const DefaultMaxRow = 215

// Point is one placed marker, stored in image-space pixel coordinates so it
// survives any pan/zoom. RowNum binds it to a row of the external dataset.
type Point struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Size   float64 `json:"size"`
	RowNum int     `json:"rowNum"`
}

// Model-rejection errors. State is untouched when these are returned.
var (
	ErrDuplicateRow  = errors.New("row already has a point")
	ErrRowOutOfRange = errors.New("row out of range")
	ErrNotFound      = errors.New("point not found")
)
