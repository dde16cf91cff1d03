package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Module identifies one of the operational units whose reports the backend tracks.
type Module string

const (
	// ModuleProduksi covers factory and port (BKS) production.
	ModuleProduksi     Module = "produksi"
	ModulePenjumboan   Module = "penjumboan"
	ModulePemuatan     Module = "pemuatan"
	ModulePackingPlant Module = "packing-plant"
)

//nolint:gochecknoglobals // static read-only list of modules
var allModules = []Module{ModuleProduksi, ModulePenjumboan, ModulePemuatan, ModulePackingPlant}

// AllModules returns every known module in display order.
func AllModules() []Module {
	out := make([]Module, len(allModules))
	copy(out, allModules)
	return out
}

// ParseModule validates a module slug taken from a URL or flag.
func ParseModule(s string) (Module, error) {
	m := Module(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range allModules {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown module %q", s)
}

// Label returns the human readable module name.
func (m Module) Label() string {
	switch m {
	case ModuleProduksi:
		return "Produksi"
	case ModulePenjumboan:
		return "Penjumboan"
	case ModulePemuatan:
		return "Pemuatan"
	case ModulePackingPlant:
		return "Packing Plant"
	default:
		return string(m)
	}
}

// Tonnage is a weight in metric tons. The backend serializes decimals either as
// JSON numbers or as numeric strings; null and "" decode to zero.
type Tonnage float64

// UnmarshalJSON implements json.Unmarshaler.
func (t *Tonnage) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*t = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("tonnage %q: %w", s, err)
		}
		*t = Tonnage(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("tonnage: %w", err)
	}
	*t = Tonnage(f)
	return nil
}

// Unit is an operational unit as listed by the backend.
type Unit struct {
	ID    int    `json:"id_unit"`
	Name  string `json:"nama_unit"`
	Group string `json:"group_name"`
}

// DailyReport is one day of output for a unit. Production modules fill
// ProductionTon, loading modules fill LoadedTon.
type DailyReport struct {
	Date          string  `json:"tanggal"`
	UnitName      string  `json:"nama_unit"`
	ProductionTon Tonnage `json:"total_produksi_ton"`
	LoadedTon     Tonnage `json:"total_muat_ton"`
}

// Tonnage returns whichever output figure the module reports.
func (d DailyReport) Tonnage() float64 {
	if d.ProductionTon != 0 {
		return float64(d.ProductionTon)
	}
	return float64(d.LoadedTon)
}

// MonthlyReport aggregates a month of output for a unit.
type MonthlyReport struct {
	Month         int     `json:"bulan"`
	UnitName      string  `json:"nama_unit"`
	ProductionTon Tonnage `json:"total_produksi_ton"`
	LoadedTon     Tonnage `json:"total_muat_ton"`
	Target        Tonnage `json:"target"`
}

// Tonnage returns whichever output figure the module reports.
func (m MonthlyReport) Tonnage() float64 {
	if m.ProductionTon != 0 {
		return float64(m.ProductionTon)
	}
	return float64(m.LoadedTon)
}

// DashboardSummary is the backend's per-unit month dashboard payload.
type DashboardSummary struct {
	DailyReport        []DailyReport   `json:"dailyReport"`
	MonthlyReport      []MonthlyReport `json:"monthlyReport"`
	TotalProductionMTD Tonnage         `json:"totalProductionMTD"`
	HambatanSummary    json.RawMessage `json:"hambatanSummary,omitempty"`
}

// ReleaseRow is one unit-month entry of a module's yearly release (rilis).
type ReleaseRow struct {
	Month         int     `json:"month"`
	UnitName      string  `json:"nama_unit"`
	ProductionTon Tonnage `json:"total_produksi_ton"`
	LoadedTon     Tonnage `json:"total_muat_ton"`
	Target        Tonnage `json:"target"`
}

// Tonnage returns whichever output figure the module reports.
func (r ReleaseRow) Tonnage() float64 {
	if r.ProductionTon != 0 {
		return float64(r.ProductionTon)
	}
	return float64(r.LoadedTon)
}

// Target is a monthly RKAP (annual work plan) target for a unit.
type Target struct {
	ID        int     `json:"id,omitempty"`
	UnitID    int     `json:"id_unit"`
	Module    Module  `json:"module,omitempty"`
	Year      int     `json:"tahun"`
	Month     int     `json:"bulan"`
	TargetTon Tonnage `json:"target_ton"`
}

// Validate checks the fields the backend requires for a target.
func (t Target) Validate() error {
	if t.UnitID <= 0 {
		return errors.New("id_unit is required")
	}
	if t.Year < 2000 || t.Year > 2100 {
		return fmt.Errorf("tahun %d out of range", t.Year)
	}
	if t.Month < 1 || t.Month > 12 {
		return fmt.Errorf("bulan %d out of range", t.Month)
	}
	if t.TargetTon < 0 {
		return errors.New("target_ton must not be negative")
	}
	return nil
}

// Report is a daily report row. Its columns differ per module, so it is kept
// as a loose map and passed through to the backend unchanged.
type Report map[string]any

// UnitID returns the id_unit column.
func (r Report) UnitID() (int, bool) {
	return intField(r, "id_unit")
}

// ID returns the row id column.
func (r Report) ID() (int, bool) {
	return intField(r, "id")
}

func intField(r Report, key string) (int, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	case int:
		return n, true
	case json.Number:
		i, err := strconv.Atoi(n.String())
		return i, err == nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		return i, err == nil
	default:
		return 0, false
	}
}
