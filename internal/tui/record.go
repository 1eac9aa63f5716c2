package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"
)

// toggleRecord shows the external dataset record bound to the selected
// point, channels in the order the dataset file declared them.
func (m *Model) toggleRecord() {
	if m.showRecord {
		m.showRecord = false
		return
	}
	id := m.store.Selected()
	if id == "" {
		m.status = "select a point to view its record"
		return
	}
	p, ok := m.store.PointByID(id)
	if !ok {
		return
	}
	rec, ok := m.table.ForRow(p.RowNum)
	if !ok {
		m.status = fmt.Sprintf("no dataset record for row %d", p.RowNum)
		return
	}

	cols := []table.Column{
		{Title: "field", Width: 16},
		{Title: "value", Width: 20},
	}
	rows := []table.Row{
		{"row", fmt.Sprintf("%d", p.RowNum)},
		{"plate", rec.Plate},
	}
	for _, sig := range rec.Signals {
		rows = append(rows, table.Row{sig.Channel, fmt.Sprintf("%g", sig.Value)})
	}
	// clear rows first so columns and rows never disagree mid-update
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
	m.showRecord = true
	m.status = fmt.Sprintf("record for %d", p.RowNum)
}
