package stats

import "github.com/wilw-arch/WeeklyPlanWeb/pkg/week"

// HabitStats is derived from a habit row and is never stored.
type HabitStats struct {
	Item      week.HabitItem
	Completed int // checked days, may exceed the target
	// Rate is Completed/Target in percent and may exceed 100.
	Rate float64
	// DisplayRate is Rate capped at 100.
	DisplayRate float64
}

// MetricStats is derived from a metric row and is never stored.
type MetricStats struct {
	Item  week.MetricItem
	Total float64
	Diff  float64 // Total - Target
}

type CategoryStats struct {
	Name      string
	Habits    []HabitStats
	Completed int
	Target    int
}

type WeekSummary struct {
	WeekId     string
	Title      string
	StartDate  string
	EndDate    string
	WeekNumber week.WeekNumber
	Days       []week.Day
	Categories []CategoryStats
	Metrics    []MetricStats
	// TotalCompleted and TotalTarget sum all habit rows.
	TotalCompleted int
	TotalTarget    int
	CompletionRate float64
}
