package tui

import (
	"fmt"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"planmark/internal/scene"
	"planmark/internal/transform"
)

// layout is the shared geometry between Update and View so mouse hit
// testing always matches what was drawn.
type layout struct {
	sidebarW int
	headerH  int
	footerH  int
	contentW int
	contentH int
	mapW     int
	mapH     int
	mapOrgX  int
	mapOrgY  int
}

func (m Model) layout() layout {
	lo := layout{headerH: 1, footerH: 2}
	if m.showSidebar {
		lo.sidebarW = 30
	}
	lo.contentH = m.height - lo.headerH - lo.footerH
	if lo.contentH < 4 {
		lo.contentH = 4
	}
	lo.contentW = maxi(10, m.width)
	lo.mapW = lo.contentW - lo.sidebarW - 1
	if lo.mapW < 10 {
		lo.mapW = 10
	}
	lo.mapH = lo.contentH
	lo.mapOrgX = lo.sidebarW
	if m.showSidebar {
		lo.mapOrgX++
	}
	lo.mapOrgY = lo.headerH
	return lo
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		lo := m.layout()
		if m.showSidebar {
			m.pl.SetSize(lo.sidebarW-2, lo.contentH-2)
		}
		if m.pickerOn {
			m.l.SetSize(maxi(30, lo.contentW/3), lo.contentH-2)
		}

	case tea.KeyMsg:
		if m.pickerOn {
			return m.updatePicker(msg)
		}
		if m.showSidebar && m.pl.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.pl, cmd = m.pl.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.showRecord {
				m.showRecord = false
				return m, nil
			}
			m.store.ClearSelection()
			m.refreshPoints()
			m.status = "selection cleared"
		case "h":
			m.helpVisible = !m.helpVisible
		case "tab":
			m.showSidebar = !m.showSidebar
			if m.showSidebar {
				lo := m.layout()
				m.pl.SetSize(lo.sidebarW-2, lo.contentH-2)
			}
		case "m":
			v := m.viewport()
			if v.Mode == transform.ModeDraw {
				m.store.SetMode(transform.ModePan)
			} else {
				m.store.SetMode(transform.ModeDraw)
			}
			m.status = "mode: " + m.viewport().Mode.String()
		case "+", "=":
			m.zoomAtCenter(1.2)
		case "-", "_":
			m.zoomAtCenter(1 / 1.2)
		case "f":
			m.fitToContent()
		case "up":
			m.panBy(0, 4)
		case "down":
			m.panBy(0, -4)
		case "left":
			m.panBy(4, 0)
		case "right":
			m.panBy(-4, 0)
		case "o":
			m.pickerOn = true
			m.refreshDir()
			lo := m.layout()
			m.l.SetSize(maxi(30, lo.contentW/3), lo.contentH-2)
		case "e":
			m.exportPoints()
		case "a":
			m.toggleRecord()
		case "x", "delete", "backspace":
			m.removeSelected()
		case "c":
			n := len(m.store.Points())
			m.store.ClearAll()
			m.refreshPoints()
			m.status = fmt.Sprintf("cleared %d points", n)
		case "enter":
			if m.showSidebar {
				if it, ok := m.pl.SelectedItem().(pointItem); ok {
					if err := m.store.SelectPoint(it.p.ID); err != nil {
						m.status = "select: " + err.Error()
					} else {
						m.refreshPoints()
						m.status = fmt.Sprintf("selected %d", it.p.RowNum)
					}
				}
			}
		default:
			// only unhandled keys reach the sidebar list
			if m.showSidebar {
				var cmd tea.Cmd
				m.pl, cmd = m.pl.Update(msg)
				return m, cmd
			}
		}
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}

	if m.showSidebar {
		var cmd tea.Cmd
		m.pl, cmd = m.pl.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	switch msg.String() {
	case "esc", "o":
		m.pickerOn = false
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		if it, ok := m.l.SelectedItem().(fileItem); ok {
			m.loadPath(it.path)
			m.pickerOn = false
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.l, cmd = m.l.Update(msg)
	return m, cmd
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	lo := m.layout()
	m.mapW, m.mapH = lo.mapW, lo.mapH
	m.mapOrgX, m.mapOrgY = lo.mapOrgX, lo.mapOrgY

	cx := msg.X - lo.mapOrgX
	cy := msg.Y - lo.mapOrgY
	inCanvas := cx >= 0 && cx < lo.mapW && cy >= 0 && cy < lo.mapH

	if inCanvas {
		m.hovering = true
		m.hoverCellX = cx
		m.hoverCellY = cy
		m.hoverImgX, m.hoverImgY = m.cellToImage(cx, cy)
	} else {
		m.hovering = false
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if inCanvas {
			m.zoomAtCell(cx, cy, 1.2)
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if inCanvas {
			m.zoomAtCell(cx, cy, 1/1.2)
		}
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inCanvas {
			break
		}
		v := m.viewport()
		if v.Mode == transform.ModePan {
			m.dragging = true
			m.dragAnchorX = cx*2 + 1
			m.dragAnchorY = cy*4 + 2
			m.dragOffX = v.OffsetX
			m.dragOffY = v.OffsetY
			break
		}
		// draw mode: marker click selects, background click places
		if p, ok := m.hitMarker(cx, cy); ok {
			if err := m.store.SelectPoint(p.ID); err == nil {
				m.refreshPoints()
				m.status = fmt.Sprintf("selected %d", p.RowNum)
			}
			break
		}
		ix, iy := m.cellToImage(cx, cy)
		p, err := scene.PlacePoint(m.store, ix, iy)
		if err != nil {
			m.status = err.Error()
			break
		}
		m.refreshPoints()
		m.status = fmt.Sprintf("placed %d at (%.0f, %.0f)", p.RowNum, p.X, p.Y)

	case tea.MouseActionMotion:
		if m.dragging {
			mx := cx*2 + 1
			my := cy*4 + 2
			m.store.SetOffset(
				m.dragOffX+float64(mx-m.dragAnchorX),
				m.dragOffY+float64(my-m.dragAnchorY),
			)
		}

	case tea.MouseActionRelease:
		m.dragging = false
	}
	return m, nil
}

// zoomAtCell zooms keeping the image point under a canvas cell fixed.
func (m *Model) zoomAtCell(cx, cy int, factor float64) {
	px := float64(cx*2 + 1)
	py := float64(cy*4 + 2)
	m.store.SetViewport(transform.ZoomAt(px, py, factor, m.viewport()))
	m.status = fmt.Sprintf("zoom: %.2fx", m.viewport().Scale)
}

func (m *Model) zoomAtCenter(factor float64) {
	lo := m.layout()
	m.zoomAtCell(lo.mapW/2, lo.mapH/2, factor)
}

func (m *Model) panBy(dx, dy float64) {
	v := m.viewport()
	m.store.SetOffset(v.OffsetX+dx, v.OffsetY+dy)
}

// fitToContent frames the plan sub-region in the canvas microgrid.
func (m *Model) fitToContent() {
	if m.img == nil {
		m.status = "no image loaded"
		return
	}
	lo := m.layout()
	v := transform.FitToContent(
		float64(m.img.w), float64(m.img.h),
		float64(lo.mapW*2), float64(lo.mapH*4),
	)
	m.store.SetViewport(v)
	m.status = fmt.Sprintf("fit: %.2fx", m.viewport().Scale)
}

func (m *Model) removeSelected() {
	id := m.store.Selected()
	if id == "" {
		m.status = "nothing selected"
		return
	}
	p, _ := m.store.PointByID(id)
	if err := m.store.RemovePoint(id); err != nil {
		m.status = "remove: " + err.Error()
		return
	}
	m.showRecord = false
	m.refreshPoints()
	m.status = fmt.Sprintf("removed %d", p.RowNum)
}
