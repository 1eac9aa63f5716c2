package tui

import (
	"fmt"
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"planmark/internal/config"
	"planmark/internal/dataset"
	"planmark/internal/plan"
	"planmark/internal/scene"
	"planmark/internal/store"
	"planmark/internal/transform"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string

	// document
	store   *plan.Store
	markers *markerLayer
	sync    *scene.Synchronizer
	docs    *store.DocStore
	table   *dataset.Table
	img     *planImage
	log     *zap.Logger

	// pan drag (pan mode only, pointer-down to pointer-up)
	dragging    bool
	dragAnchorX int // micro coords at press
	dragAnchorY int
	dragOffX    float64 // viewport offset at press
	dragOffY    float64

	// file picker
	cwd      string
	pickerOn bool
	l        list.Model

	// point sidebar
	pl list.Model

	// dataset record popup for the selected point
	showRecord bool
	tbl        table.Model

	// last rendered canvas size and origin (cells)
	mapW    int
	mapH    int
	mapOrgX int
	mapOrgY int

	// hover state
	hovering   bool
	hoverCellX int
	hoverCellY int
	hoverImgX  float64
	hoverImgY  float64
}

// New wires the full application model. docs and tbl may be nil (no
// persistence, placeholder dataset).
func New(cfg config.Config, docs *store.DocStore, tbl *dataset.Table, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	if tbl == nil {
		tbl = dataset.Placeholder(cfg.MaxRow)
	}
	m := Model{
		helpVisible: true,
		status:      "planmark ready",
		docs:        docs,
		table:       tbl,
		log:         log,
	}
	m.cwd, _ = os.Getwd()

	var persister plan.Persister
	if docs != nil {
		persister = docs
	}
	m.store = plan.NewStore(cfg.MaxRow, persister, log)
	m.store.SetDefaultSize(cfg.MarkerSize)
	m.markers = newMarkerLayer()
	m.sync = scene.New(m.markers)
	m.sync.Attach(m.store)

	if err := m.store.Load(); err != nil {
		log.Warn("document load failed", zap.Error(err))
		m.status = "load error: starting with an empty plan"
	} else if n := len(m.store.Points()); n > 0 {
		m.status = fmt.Sprintf("restored %d points", n)
	}
	if docs != nil {
		if blob, ok, err := docs.LoadImage(); err != nil {
			log.Warn("image load failed", zap.Error(err))
		} else if ok {
			if img, err := decodePlanImage(blob); err != nil {
				log.Warn("image decode failed", zap.Error(err))
			} else {
				m.img = img
			}
		}
	}

	// file picker list
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Open file"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)

	// point sidebar list
	pd := list.NewDefaultDelegate()
	m.pl = list.New(nil, pd, 0, 0)
	m.pl.Title = "Points"
	m.pl.SetShowHelp(false)
	m.pl.SetShowStatusBar(false)
	m.pl.SetFilteringEnabled(false)

	// record table (columns fixed per record shape)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)

	m.refreshPoints()
	return m
}

// NewWithImage preloads a floor-plan image at launch.
func NewWithImage(cfg config.Config, docs *store.DocStore, tbl *dataset.Table, log *zap.Logger, imagePath string) Model {
	m := New(cfg, docs, tbl, log)
	m.loadPath(imagePath)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// viewport is shorthand for the store-owned viewport state.
func (m Model) viewport() transform.Viewport { return m.store.Viewport() }

type pointItem struct {
	p     plan.Point
	plate string
}

func (it pointItem) Title() string {
	return fmt.Sprintf("%3d  (%.0f, %.0f)", it.p.RowNum, it.p.X, it.p.Y)
}
func (it pointItem) Description() string { return it.plate }
func (it pointItem) FilterValue() string { return it.Title() }

// refreshPoints rebuilds the sidebar from store state.
func (m *Model) refreshPoints() {
	pts := m.store.Points()
	items := make([]list.Item, 0, len(pts))
	sel := -1
	for i, p := range pts {
		plate := ""
		if rec, ok := m.table.ForRow(p.RowNum); ok {
			plate = rec.Plate
		}
		items = append(items, pointItem{p: p, plate: plate})
		if p.ID == m.store.Selected() {
			sel = i
		}
	}
	m.pl.SetItems(items)
	if sel >= 0 {
		m.pl.Select(sel)
	}
}
