package testutil

import (
	"github.com/sigmaport/prodmon-ui/internal/domain/model"
)

// ReleaseRowsBuilder provides a fluent interface for building a module's
// yearly release rows.
type ReleaseRowsBuilder struct {
	loaded bool
	rows   []model.ReleaseRow
}

// NewReleaseRows starts rows for a production module, which reports
// total_produksi_ton.
func NewReleaseRows() *ReleaseRowsBuilder {
	return &ReleaseRowsBuilder{}
}

// Loaded switches to total_muat_ton, as loading modules report it.
func (b *ReleaseRowsBuilder) Loaded() *ReleaseRowsBuilder {
	b.loaded = true
	return b
}

// Add appends one unit-month.
func (b *ReleaseRowsBuilder) Add(unit string, month int, ton, target float64) *ReleaseRowsBuilder {
	row := model.ReleaseRow{Month: month, UnitName: unit, Target: model.Tonnage(target)}
	if b.loaded {
		row.LoadedTon = model.Tonnage(ton)
	} else {
		row.ProductionTon = model.Tonnage(ton)
	}
	b.rows = append(b.rows, row)
	return b
}

// Build returns the rows.
func (b *ReleaseRowsBuilder) Build() []model.ReleaseRow {
	out := make([]model.ReleaseRow, len(b.rows))
	copy(out, b.rows)
	return out
}

// DefaultUnits returns one factory unit and one port unit in different groups.
func DefaultUnits() []model.Unit {
	return []model.Unit{
		{ID: 1, Name: "Pabrik 1", Group: "Pabrik"},
		{ID: 2, Name: "BKS Ciwandan", Group: "BKS"},
	}
}
