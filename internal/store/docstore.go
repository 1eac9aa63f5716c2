// Package store persists the annotation document in SQLite: the point list
// as one JSON array and the background image as a separate base64 entry,
// both in a small key-value table.
package store

import (
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"planmark/internal/plan"
)

const (
	keyPoints = "points"
	keyImage  = "image"
)

const schema = `
CREATE TABLE IF NOT EXISTS document (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// DocStore is the SQLite-backed document store. It satisfies plan.Persister.
type DocStore struct {
	db     *sql.DB
	dbPath string
}

// Open initializes the database at path, creating parent directories as
// needed. Use ":memory:" for tests.
func Open(path string) (*DocStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &DocStore{db: db, dbPath: path}, nil
}

// Close releases the database handle.
func (d *DocStore) Close() error { return d.db.Close() }

// Path is the database file location.
func (d *DocStore) Path() string { return d.dbPath }

func (d *DocStore) set(key, value string) error {
	_, err := d.db.Exec(
		`INSERT INTO document(key, value) VALUES(?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func (d *DocStore) get(key string) (string, bool, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM document WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// SavePoints writes the whole point list as one JSON array.
func (d *DocStore) SavePoints(points []plan.Point) error {
	if points == nil {
		points = []plan.Point{}
	}
	data, err := json.Marshal(points)
	if err != nil {
		return fmt.Errorf("encode points: %w", err)
	}
	if err := d.set(keyPoints, string(data)); err != nil {
		return fmt.Errorf("save points: %w", err)
	}
	return nil
}

// LoadPoints reads the point list; a missing entry is an empty document,
// not an error.
func (d *DocStore) LoadPoints() ([]plan.Point, error) {
	raw, ok, err := d.get(keyPoints)
	if err != nil {
		return nil, fmt.Errorf("load points: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var points []plan.Point
	if err := json.Unmarshal([]byte(raw), &points); err != nil {
		return nil, fmt.Errorf("decode points: %w", err)
	}
	return points, nil
}

// SaveImage stores the encoded background image bytes.
func (d *DocStore) SaveImage(blob []byte) error {
	if err := d.set(keyImage, base64.StdEncoding.EncodeToString(blob)); err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	return nil
}

// LoadImage returns the stored image bytes, or ok=false when none is set.
func (d *DocStore) LoadImage() ([]byte, bool, error) {
	raw, ok, err := d.get(keyImage)
	if err != nil {
		return nil, false, fmt.Errorf("load image: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	blob, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, false, fmt.Errorf("decode image: %w", err)
	}
	return blob, true, nil
}

// Clear drops the whole document.
func (d *DocStore) Clear() error {
	_, err := d.db.Exec(`DELETE FROM document`)
	return err
}
