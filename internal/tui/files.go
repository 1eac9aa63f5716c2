package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	"go.uber.org/zap"

	"planmark/internal/plan"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext == ".json" || ext == ".png" || ext == ".jpg" || ext == ".jpeg" {
			items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no importable files in current directory"
	}
}

// loadPath opens either a point import (.json) or a floor-plan image.
// Failures leave the current document untouched.
func (m *Model) loadPath(p string) {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".json":
		data, err := os.ReadFile(p)
		if err != nil {
			m.status = "load error: " + err.Error()
			return
		}
		pts, err := plan.DecodeImport(data)
		if err != nil {
			m.status = "import rejected: " + err.Error()
			return
		}
		kept := m.store.ImportPoints(pts)
		m.refreshPoints()
		m.status = fmt.Sprintf("imported %d of %d points from %s", kept, len(pts), filepath.Base(p))
		m.log.Info("import", zap.String("path", p), zap.Int("kept", kept), zap.Int("offered", len(pts)))
	case ".png", ".jpg", ".jpeg":
		blob, err := os.ReadFile(p)
		if err != nil {
			m.status = "load error: " + err.Error()
			return
		}
		img, err := decodePlanImage(blob)
		if err != nil {
			m.status = "image error: " + err.Error()
			return
		}
		m.img = img
		if m.docs != nil {
			if err := m.docs.SaveImage(blob); err != nil {
				m.log.Warn("persist image failed", zap.Error(err))
			}
		}
		m.fitToContent()
		m.status = fmt.Sprintf("loaded %s (%dx%d)", filepath.Base(p), img.w, img.h)
	default:
		m.status = "unsupported file: " + filepath.Ext(p)
	}
}

// exportPoints writes the merged export next to the working directory.
func (m *Model) exportPoints() {
	pts := m.store.Points()
	if len(pts) == 0 {
		m.status = "nothing to export"
		return
	}
	data, err := plan.EncodeExport(pts, m.table)
	if err != nil {
		m.status = "export error: " + err.Error()
		return
	}
	name := "planmark-export-" + time.Now().Format("20060102-150405") + ".json"
	path := filepath.Join(m.cwd, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		m.status = "export error: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("exported %d points to %s", len(pts), name)
	m.log.Info("export", zap.String("path", path), zap.Int("points", len(pts)))
}
