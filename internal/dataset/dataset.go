// Package dataset holds the read-only reference data points bind to: one
// record per row, supplied by the hosting deployment as a JSON array. When
// the file is absent the table is seeded with placeholder records so the
// application stays usable.
package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// DefaultSignalValue seeds every placeholder record's single channel.
const DefaultSignalValue = 1.0

// Signal is one named channel reading.
type Signal struct {
	Channel string
	Value   float64
}

// Signals is an ordered channel->value mapping. Order follows the source
// JSON object, which is how channels are presented to the user. No schema
// is assumed beyond "some channels exist".
type Signals []Signal

// MarshalJSON renders the signals as a JSON object in insertion order.
func (s Signals) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sig := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(sig.Channel)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		val, err := json.Marshal(sig.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object token-by-token so the channel order
// of the source file is preserved.
func (s *Signals) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("signals: expected object, got %v", tok)
	}
	var out Signals
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("signals: non-string key %v", keyTok)
		}
		valTok, err := dec.Token()
		if err != nil {
			return err
		}
		num, ok := valTok.(json.Number)
		if !ok {
			// non-numeric channels are skipped, not fatal
			continue
		}
		v, err := num.Float64()
		if err != nil {
			return err
		}
		out = append(out, Signal{Channel: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

// Get returns the reading for a channel.
func (s Signals) Get(channel string) (float64, bool) {
	for _, sig := range s {
		if sig.Channel == channel {
			return sig.Value, true
		}
	}
	return 0, false
}

// Record is one row of the external dataset.
type Record struct {
	Plate   string  `json:"plate"`
	Signals Signals `json:"signals"`
}

// Table indexes records by 1-based row number.
type Table struct {
	records []Record
	maxRow  int
}

// Placeholder builds a table covering rows 1..maxRow with a uniform default
// record, used when no dataset file is supplied.
func Placeholder(maxRow int) *Table {
	recs := make([]Record, maxRow)
	for i := range recs {
		recs[i] = Record{
			Plate:   "unassigned",
			Signals: Signals{{Channel: "signal", Value: DefaultSignalValue}},
		}
	}
	return &Table{records: recs, maxRow: maxRow}
}

// Load reads a dataset JSON array from path. The array is indexed by
// rowNum-1; rows past maxRow are kept but not addressable through ForRow.
func Load(path string, maxRow int) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, maxRow)
}

// Parse decodes a dataset JSON array.
func Parse(data []byte, maxRow int) (*Table, error) {
	var recs []Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	return &Table{records: recs, maxRow: maxRow}, nil
}

// MaxRow is the row ceiling this table was built for.
func (t *Table) MaxRow() int { return t.maxRow }

// Len is the number of records actually present.
func (t *Table) Len() int { return len(t.records) }

// ForRow returns the record bound to a 1-based row number. Rows past the
// ceiling are unaddressable even when the dataset file is longer.
func (t *Table) ForRow(rowNum int) (Record, bool) {
	limit := len(t.records)
	if t.maxRow < limit {
		limit = t.maxRow
	}
	if rowNum < 1 || rowNum > limit {
		return Record{}, false
	}
	return t.records[rowNum-1], true
}
