package service

import (
	"math"
	"sort"
	"time"

	"github.com/sigmaport/prodmon-ui/internal/domain/model"
)

//nolint:gochecknoglobals // static month labels
var monthLabels = [12]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}

// ChartSeries is one line or bar group of a chart.
type ChartSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// DailyChart pivots a month of daily reports into units by dates.
type DailyChart struct {
	Labels     []string      `json:"labels"`
	Series     []ChartSeries `json:"series"`
	Totals     []float64     `json:"totals"`
	Cumulative []float64     `json:"cumulative"`
	MonthTotal float64       `json:"month_total"`
}

// BuildDailyChart sorts rows by date and fills missing unit-days with zero.
// Timestamped dates are bucketed by their calendar day in loc.
func BuildDailyChart(rows []model.DailyReport, loc *time.Location) DailyChart {
	if loc == nil {
		loc = time.UTC
	}
	dateIdx := make(map[string]int)
	var dates []string
	unitSet := make(map[string]struct{})
	for _, r := range rows {
		d := dayKey(r.Date, loc)
		if _, ok := dateIdx[d]; !ok {
			dateIdx[d] = 0
			dates = append(dates, d)
		}
		unitSet[r.UnitName] = struct{}{}
	}
	sort.Strings(dates)
	for i, d := range dates {
		dateIdx[d] = i
	}
	units := sortedKeys(unitSet)

	chart := DailyChart{
		Labels:     dates,
		Series:     make([]ChartSeries, len(units)),
		Totals:     make([]float64, len(dates)),
		Cumulative: make([]float64, len(dates)),
	}
	if chart.Labels == nil {
		chart.Labels = []string{}
	}
	unitIdx := make(map[string]int, len(units))
	for i, u := range units {
		unitIdx[u] = i
		chart.Series[i] = ChartSeries{Name: u, Values: make([]float64, len(dates))}
	}

	for _, r := range rows {
		di := dateIdx[dayKey(r.Date, loc)]
		v := r.Tonnage()
		chart.Series[unitIdx[r.UnitName]].Values[di] += v
		chart.Totals[di] += v
	}

	var running float64
	for i, t := range chart.Totals {
		running += t
		chart.Cumulative[i] = round2(running)
		chart.Totals[i] = round2(t)
	}
	for _, s := range chart.Series {
		for i := range s.Values {
			s.Values[i] = round2(s.Values[i])
		}
	}
	chart.MonthTotal = round2(running)
	return chart
}

// ReleaseChart is a module's year at a glance: output and target per month.
type ReleaseChart struct {
	Module      model.Module  `json:"module"`
	ModuleLabel string        `json:"module_label"`
	Year        int           `json:"year"`
	Labels      []string      `json:"labels"`
	Series      []ChartSeries `json:"series"`
	Totals      []float64     `json:"totals"`
	Targets     []float64     `json:"targets"`
	// Achievement is Totals/Targets in percent, 0 where the target is 0.
	Achievement     []float64 `json:"achievement"`
	YearTotal       float64   `json:"year_total"`
	YearTarget      float64   `json:"year_target"`
	YearAchievement float64   `json:"year_achievement"`
}

// BuildReleaseChart spreads release rows across months 1..12. Rows with an
// out-of-range month are ignored.
func BuildReleaseChart(module model.Module, year int, rows []model.ReleaseRow) ReleaseChart {
	unitSet := make(map[string]struct{})
	for _, r := range rows {
		if validMonth(r.Month) {
			unitSet[r.UnitName] = struct{}{}
		}
	}
	units := sortedKeys(unitSet)

	chart := ReleaseChart{
		Module:      module,
		ModuleLabel: module.Label(),
		Year:        year,
		Labels:      append([]string(nil), monthLabels[:]...),
		Series:      make([]ChartSeries, len(units)),
		Totals:      make([]float64, 12),
		Targets:     make([]float64, 12),
		Achievement: make([]float64, 12),
	}
	unitIdx := make(map[string]int, len(units))
	for i, u := range units {
		unitIdx[u] = i
		chart.Series[i] = ChartSeries{Name: u, Values: make([]float64, 12)}
	}

	for _, r := range rows {
		if !validMonth(r.Month) {
			continue
		}
		m := r.Month - 1
		v := r.Tonnage()
		chart.Series[unitIdx[r.UnitName]].Values[m] += v
		chart.Totals[m] += v
		chart.Targets[m] += float64(r.Target)
	}

	for m := 0; m < 12; m++ {
		chart.YearTotal += chart.Totals[m]
		chart.YearTarget += chart.Targets[m]
		chart.Achievement[m] = percent(chart.Totals[m], chart.Targets[m])
		chart.Totals[m] = round2(chart.Totals[m])
		chart.Targets[m] = round2(chart.Targets[m])
	}
	for _, s := range chart.Series {
		for i := range s.Values {
			s.Values[i] = round2(s.Values[i])
		}
	}
	chart.YearAchievement = percent(chart.YearTotal, chart.YearTarget)
	chart.YearTotal = round2(chart.YearTotal)
	chart.YearTarget = round2(chart.YearTarget)
	return chart
}

func validMonth(m int) bool { return m >= 1 && m <= 12 }

// dayKey reduces a backend date to YYYY-MM-DD. The backend serialises
// local midnight as UTC, so 2025-05-31T17:00:00.000Z is 1 June in WIB.
func dayKey(s string, loc *time.Location) string {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.In(loc).Format(time.DateOnly)
	}
	if len(s) >= len(time.DateOnly) {
		if _, err := time.Parse(time.DateOnly, s[:len(time.DateOnly)]); err == nil {
			return s[:len(time.DateOnly)]
		}
	}
	return s
}

func percent(v, target float64) float64 {
	if target == 0 {
		return 0
	}
	return round2(v / target * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
