package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	lo := m.layout()

	// Header
	header := titleStyle.Render(" planmark ─ floor-plan point annotator ")
	mode := dimStyle.Render(fmt.Sprintf(" [%s] ", m.viewport().Mode))
	header = lipgloss.NewStyle().Width(lo.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, header, mode))

	// Sidebar
	var sidebar string
	if m.showSidebar {
		m.pl.SetSize(lo.sidebarW-2, lo.contentH-2)
		sidebar = lipgloss.NewStyle().Width(lo.sidebarW).Render(m.pl.View())
	}

	// Canvas column
	m.mapW = maxi(8, lo.mapW)
	m.mapH = maxi(4, lo.mapH)
	var mapView string
	switch {
	case m.pickerOn:
		m.l.SetSize(maxi(30, lo.contentW/3), lo.contentH-2)
		box := boxStyle.Render(m.l.View())
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, box)
	case m.showRecord:
		m.tbl.SetHeight(mini(lo.mapH-2, 16))
		box := boxStyle.Render(m.tbl.View())
		mapView = lipgloss.Place(lo.mapW, lo.mapH, lipgloss.Center, lipgloss.Center, box)
	default:
		canvas := m.renderCanvas(m.mapW, m.mapH)
		mapView = lipgloss.NewStyle().Width(lo.mapW).Height(lo.mapH).Render(canvas)
	}

	var body string
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	} else {
		body = mapView
	}

	// Footer: status + help left, hover coords right
	help := m.renderHelp()
	status := dimStyle.Render(" " + m.status + " ")
	coords := ""
	if m.hovering {
		coords = dimStyle.Render(fmt.Sprintf("  x=%.0f y=%.0f  z=%.2f  ", m.hoverImgX, m.hoverImgY, m.viewport().Scale))
	}
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, help)
	spacerW := maxi(0, lo.contentW-lipgloss.Width(left)-lipgloss.Width(coords))
	right := lipgloss.Place(spacerW+lipgloss.Width(coords), 1, lipgloss.Right, lipgloss.Center, coords)
	footer := lipgloss.NewStyle().Width(lo.contentW).Render(lipgloss.JoinHorizontal(lipgloss.Bottom, left, right))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lo.contentW).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"click place/select",
		"m draw/pan",
		"wheel zoom",
		"f fit",
		"↑↓←→ pan",
		"Tab points",
		"o open",
		"e export",
		"a record",
		"x delete",
		"c clear",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
