package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigmaport/prodmon-ui/internal/domain/model"
)

func TestBuildDailyChart(t *testing.T) {
	rows := []model.DailyReport{
		{Date: "2025-06-03T00:00:00.000Z", UnitName: "Pabrik 2", ProductionTon: 120.5},
		{Date: "2025-06-01", UnitName: "Pabrik 1", ProductionTon: 100},
		{Date: "2025-06-01", UnitName: "Pabrik 2", ProductionTon: 80.25},
		{Date: "2025-06-03", UnitName: "Pabrik 1", ProductionTon: 90},
	}

	chart := BuildDailyChart(rows, time.UTC)

	assert.Equal(t, []string{"2025-06-01", "2025-06-03"}, chart.Labels)
	require.Len(t, chart.Series, 2)
	assert.Equal(t, ChartSeries{Name: "Pabrik 1", Values: []float64{100, 90}}, chart.Series[0])
	assert.Equal(t, ChartSeries{Name: "Pabrik 2", Values: []float64{80.25, 120.5}}, chart.Series[1])
	assert.Equal(t, []float64{180.25, 210.5}, chart.Totals)
	assert.Equal(t, []float64{180.25, 390.75}, chart.Cumulative)
	assert.Equal(t, 390.75, chart.MonthTotal)
}

func TestBuildDailyChart_ZeroFillAndLoadedTon(t *testing.T) {
	rows := []model.DailyReport{
		{Date: "2025-06-02", UnitName: "Dermaga A", LoadedTon: 500},
		{Date: "2025-06-01", UnitName: "Dermaga B", LoadedTon: 250},
	}

	chart := BuildDailyChart(rows, time.UTC)

	require.Len(t, chart.Series, 2)
	assert.Equal(t, []float64{0, 500}, chart.Series[0].Values)
	assert.Equal(t, []float64{250, 0}, chart.Series[1].Values)
	assert.Equal(t, []float64{250, 750}, chart.Cumulative)
}

func TestBuildDailyChart_Empty(t *testing.T) {
	chart := BuildDailyChart(nil, nil)
	assert.Empty(t, chart.Labels)
	assert.NotNil(t, chart.Labels)
	assert.Empty(t, chart.Series)
	assert.Zero(t, chart.MonthTotal)
}

func TestBuildDailyChart_BucketsByLocalDay(t *testing.T) {
	wib := time.FixedZone("WIB", 7*60*60)
	rows := []model.DailyReport{
		{Date: "2025-05-31T17:00:00.000Z", UnitName: "Pabrik 1", ProductionTon: 10},
		{Date: "2025-06-01T16:59:59Z", UnitName: "Pabrik 1", ProductionTon: 5},
		{Date: "2025-06-01T17:00:00Z", UnitName: "Pabrik 1", ProductionTon: 7},
		{Date: "2025-06-03 08:00:00", UnitName: "Pabrik 1", ProductionTon: 1},
	}

	chart := BuildDailyChart(rows, wib)
	assert.Equal(t, []string{"2025-06-01", "2025-06-02", "2025-06-03"}, chart.Labels)
	assert.Equal(t, []float64{15, 7, 1}, chart.Totals)

	utc := BuildDailyChart(rows, time.UTC)
	assert.Equal(t, []string{"2025-05-31", "2025-06-01", "2025-06-03"}, utc.Labels)
}

func TestDayKey(t *testing.T) {
	wib := time.FixedZone("WIB", 7*60*60)
	tests := []struct {
		in   string
		want string
	}{
		{"2025-05-31T17:00:00Z", "2025-06-01"},
		{"2025-05-31T16:59:59.999Z", "2025-05-31"},
		{"2025-06-01T00:00:00+07:00", "2025-06-01"},
		{"2025-06-01", "2025-06-01"},
		{"2025-06-01 10:00", "2025-06-01"},
		{"kemarin", "kemarin"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, dayKey(tt.in, wib))
		})
	}
}

func TestBuildReleaseChart(t *testing.T) {
	rows := []model.ReleaseRow{
		{Month: 1, UnitName: "Pabrik 2", ProductionTon: 300, Target: 400},
		{Month: 1, UnitName: "Pabrik 1", ProductionTon: 500, Target: 400},
		{Month: 2, UnitName: "Pabrik 1", ProductionTon: 450, Target: 0},
		{Month: 13, UnitName: "Pabrik 3", ProductionTon: 999, Target: 1},
	}

	chart := BuildReleaseChart(model.ModuleProduksi, 2025, rows)

	assert.Equal(t, model.ModuleProduksi, chart.Module)
	assert.Equal(t, "Produksi", chart.ModuleLabel)
	assert.Len(t, chart.Labels, 12)
	assert.Equal(t, "Jan", chart.Labels[0])
	assert.Equal(t, "Des", chart.Labels[11])

	require.Len(t, chart.Series, 2, "out-of-range months are ignored")
	assert.Equal(t, "Pabrik 1", chart.Series[0].Name)
	assert.Equal(t, 500.0, chart.Series[0].Values[0])
	assert.Equal(t, 450.0, chart.Series[0].Values[1])

	assert.Equal(t, 800.0, chart.Totals[0])
	assert.Equal(t, 800.0, chart.Targets[0])
	assert.Equal(t, 100.0, chart.Achievement[0])
	assert.Equal(t, 0.0, chart.Achievement[1], "zero target yields zero achievement")

	assert.Equal(t, 1250.0, chart.YearTotal)
	assert.Equal(t, 800.0, chart.YearTarget)
	assert.Equal(t, 156.25, chart.YearAchievement)
}

func TestBuildReleaseChart_LabelsNotShared(t *testing.T) {
	a := BuildReleaseChart(model.ModulePemuatan, 2025, nil)
	a.Labels[0] = "changed"
	b := BuildReleaseChart(model.ModulePemuatan, 2025, nil)
	assert.Equal(t, "Jan", b.Labels[0])
}
