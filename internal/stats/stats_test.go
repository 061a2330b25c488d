package stats

import (
	"testing"
	"time"

	"github.com/iliyamo/health-tracker/internal/model"
)

func i64(v int64) *int64     { return &v }
func f64(v float64) *float64 { return &v }

func logOn(date string, steps *int64, sleep *float64, cal *int64) model.HealthLog {
	return model.HealthLog{Date: date, Steps: steps, SleepHours: sleep, CaloriesConsumed: cal}
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil, time.Now())
	if s.TotalLogs != 0 || s.Last7Days != 0 {
		t.Fatalf("counts = %+v, want zeros", s)
	}
	if s.AvgSteps != 0 || s.AvgSleep != 0 || s.AvgCalories != 0 {
		t.Fatalf("averages = %+v, want zeros", s)
	}
}

// Averages divide by the total log count, so entries without a metric drag
// the average down instead of being skipped.
func TestComputeAveragesCountUnloggedAsZero(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	logs := []model.HealthLog{
		logOn("2026-08-28", i64(10000), f64(8), i64(2000)),
		logOn("2026-08-29", nil, nil, nil),
	}
	s := Compute(logs, now)
	if s.AvgSteps != 5000 {
		t.Fatalf("avgSteps = %v, want 5000", s.AvgSteps)
	}
	if s.AvgSleep != 4 {
		t.Fatalf("avgSleep = %v, want 4", s.AvgSleep)
	}
	if s.AvgCalories != 1000 {
		t.Fatalf("avgCalories = %v, want 1000", s.AvgCalories)
	}
}

func TestComputeWindowBoundary(t *testing.T) {
	now := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	logs := []model.HealthLog{
		logOn("2026-08-23", nil, nil, nil), // exactly 7*24h before now: inside
		logOn("2026-08-22", nil, nil, nil), // outside
		logOn("2026-08-30", nil, nil, nil), // today: inside
		logOn("not-a-date", nil, nil, nil), // unparseable: outside
	}
	s := Compute(logs, now)
	if s.TotalLogs != 4 {
		t.Fatalf("totalLogs = %d, want 4", s.TotalLogs)
	}
	if s.Last7Days != 2 {
		t.Fatalf("last7Days = %d, want 2", s.Last7Days)
	}
}

func TestWeeklySeriesZeroFilledAndSummed(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) // a Sunday
	logs := []model.HealthLog{
		logOn("2026-08-30", i64(4000), nil, nil),
		logOn("2026-08-30", i64(2500), f64(7), nil), // same day, summed
		logOn("2026-08-24", nil, nil, i64(1800)),
		logOn("2026-08-01", i64(99999), nil, nil), // outside the window, ignored
	}
	series := WeeklySeries(logs, now)
	if len(series) != 7 {
		t.Fatalf("series length = %d, want 7", len(series))
	}
	if series[0].Date != "2026-08-24" || series[6].Date != "2026-08-30" {
		t.Fatalf("window = %s..%s", series[0].Date, series[6].Date)
	}
	if series[6].Day != "Sun" {
		t.Fatalf("day label = %q, want Sun", series[6].Day)
	}
	if series[6].Steps != 6500 || series[6].SleepHours != 7 {
		t.Fatalf("today = %+v, want summed metrics", series[6])
	}
	if series[0].Calories != 1800 {
		t.Fatalf("first day calories = %d, want 1800", series[0].Calories)
	}
	// empty middle days stay zero
	if series[3].Steps != 0 || series[3].Calories != 0 || series[3].SleepHours != 0 {
		t.Fatalf("empty day not zero: %+v", series[3])
	}
}

func TestCategoryDistributionFixedOrder(t *testing.T) {
	logs := []model.HealthLog{
		{Category: model.CategorySleep},
		{Category: model.CategoryFitness},
		{Category: model.CategorySleep},
	}
	dist := CategoryDistribution(logs)
	want := []struct {
		cat   model.Category
		count int
	}{
		{model.CategoryFitness, 1},
		{model.CategoryNutrition, 0},
		{model.CategoryHydration, 0},
		{model.CategorySleep, 2},
		{model.CategoryHealth, 0},
	}
	if len(dist) != len(want) {
		t.Fatalf("length = %d, want %d", len(dist), len(want))
	}
	for i, w := range want {
		if dist[i].Category != w.cat || dist[i].Count != w.count {
			t.Fatalf("slot %d = %+v, want %v %d", i, dist[i], w.cat, w.count)
		}
	}
}
