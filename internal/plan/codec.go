package plan

import (
	"encoding/json"
	"errors"
	"fmt"

	"planmark/internal/dataset"
)

// importRecord accepts both the current field name and the legacy "row"
// alias found in older export files.
type importRecord struct {
	RowNum *int     `json:"rowNum"`
	Row    *int     `json:"row"`
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
	Size   float64  `json:"size"`
}

// DecodeImport parses a user-supplied import payload into points without
// ids (Store.ImportPoints assigns fresh ones). A payload that is not a JSON
// array is rejected before any mutation can happen; items missing required
// fields are skipped.
func DecodeImport(data []byte) ([]Point, error) {
	var recs []importRecord
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("import: expected a JSON array of points: %w", err)
	}
	var out []Point
	for _, r := range recs {
		row := 0
		switch {
		case r.RowNum != nil:
			row = *r.RowNum
		case r.Row != nil:
			row = *r.Row
		default:
			continue
		}
		if r.X == nil || r.Y == nil {
			continue
		}
		// missing sizes stay zero; the store fills its configured default
		out = append(out, Point{RowNum: row, X: *r.X, Y: *r.Y, Size: r.Size})
	}
	return out, nil
}

// exportRecord is one point merged with its external dataset record. Plate
// and signals are omitted when the dataset has no row for the point.
type exportRecord struct {
	Row     int             `json:"row"`
	X       float64         `json:"x"`
	Y       float64         `json:"y"`
	Size    float64         `json:"size"`
	Plate   string          `json:"plate,omitempty"`
	Signals dataset.Signals `json:"signals,omitempty"`
}

// EncodeExport serializes points for download, merging in each point's
// dataset record by row. table may be nil.
func EncodeExport(points []Point, table *dataset.Table) ([]byte, error) {
	if points == nil {
		return nil, errors.New("export: no points")
	}
	recs := make([]exportRecord, 0, len(points))
	for _, p := range points {
		rec := exportRecord{Row: p.RowNum, X: p.X, Y: p.Y, Size: p.Size}
		if table != nil {
			if d, ok := table.ForRow(p.RowNum); ok {
				rec.Plate = d.Plate
				rec.Signals = d.Signals
			}
		}
		recs = append(recs, rec)
	}
	return json.MarshalIndent(recs, "", "  ")
}
