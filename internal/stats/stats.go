// Package stats computes dashboard aggregates from a user's full log
// history. All functions are pure: the repository fetches the rows and the
// caller passes the reference time, which keeps every calculation
// deterministic under test.
package stats

import (
	"time"

	"github.com/iliyamo/health-tracker/internal/model"
)

const dateLayout = "2006-01-02"

// Summary is the stat-card payload for the dashboard.
//
// The averages divide by the total number of logs, counting an unlogged
// metric as zero. A user who logs steps in only half their entries
// therefore sees a lower average than the mean of the logged values. That
// is the long-standing behavior of this product and dashboards elsewhere
// compare against it, so it is kept as-is rather than averaging over only
// the rows where the metric is present.
type Summary struct {
	TotalLogs   int     `json:"totalLogs"`
	Last7Days   int     `json:"last7Days"`
	AvgSteps    float64 `json:"avgSteps"`
	AvgSleep    float64 `json:"avgSleep"`
	AvgCalories float64 `json:"avgCalories"`
}

// Compute aggregates the full log list into a Summary. The last7Days
// window is [now - 7*24h, now]: a log dated exactly seven days ago still
// counts. Dates that fail to parse are simply outside the window.
func Compute(logs []model.HealthLog, now time.Time) Summary {
	var s Summary
	s.TotalLogs = len(logs)

	cutoff := now.Add(-7 * 24 * time.Hour)
	var steps, sleep, calories float64
	for _, l := range logs {
		if d, err := time.Parse(dateLayout, l.Date); err == nil && !d.Before(cutoff) {
			s.Last7Days++
		}
		if l.Steps != nil {
			steps += float64(*l.Steps)
		}
		if l.SleepHours != nil {
			sleep += *l.SleepHours
		}
		if l.CaloriesConsumed != nil {
			calories += float64(*l.CaloriesConsumed)
		}
	}

	denom := float64(len(logs))
	if denom == 0 {
		denom = 1
	}
	s.AvgSteps = steps / denom
	s.AvgSleep = sleep / denom
	s.AvgCalories = calories / denom
	return s
}

// DayPoint is one day of the weekly chart series.
type DayPoint struct {
	Date       string  `json:"date"`
	Day        string  `json:"day"` // short weekday label, e.g. "Mon"
	Steps      int64   `json:"steps"`
	Calories   int64   `json:"calories"`
	SleepHours float64 `json:"sleep"`
}

// WeeklySeries builds a chart-ready series for the seven calendar days
// ending today. Days without logs appear as zero points so the chart axis
// is always complete; several logs on one day are summed.
func WeeklySeries(logs []model.HealthLog, now time.Time) []DayPoint {
	byDate := make(map[string]*DayPoint, 7)
	series := make([]DayPoint, 7)
	for i := 0; i < 7; i++ {
		d := now.AddDate(0, 0, i-6)
		series[i] = DayPoint{Date: d.Format(dateLayout), Day: d.Format("Mon")}
		byDate[series[i].Date] = &series[i]
	}
	for _, l := range logs {
		p, ok := byDate[l.Date]
		if !ok {
			continue
		}
		if l.Steps != nil {
			p.Steps += *l.Steps
		}
		if l.CaloriesConsumed != nil {
			p.Calories += *l.CaloriesConsumed
		}
		if l.SleepHours != nil {
			p.SleepHours += *l.SleepHours
		}
	}
	return series
}

// CategoryCount is one slice of the category distribution chart.
type CategoryCount struct {
	Category model.Category `json:"category"`
	Count    int            `json:"count"`
}

// CategoryDistribution counts logs per category in a fixed display order.
func CategoryDistribution(logs []model.HealthLog) []CategoryCount {
	order := []model.Category{
		model.CategoryFitness,
		model.CategoryNutrition,
		model.CategoryHydration,
		model.CategorySleep,
		model.CategoryHealth,
	}
	counts := make(map[model.Category]int, len(order))
	for _, l := range logs {
		counts[l.Category]++
	}
	out := make([]CategoryCount, 0, len(order))
	for _, c := range order {
		out = append(out, CategoryCount{Category: c, Count: counts[c]})
	}
	return out
}
