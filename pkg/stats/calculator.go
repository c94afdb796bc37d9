package stats

import (
	"fmt"
	"math"
	"strconv"

	"github.com/wilw-arch/WeeklyPlanWeb/pkg/week"
)

const maxDisplayRate = 100.0

func CalculateHabitStats(item week.HabitItem) HabitStats {
	completed := 0
	for _, done := range item.Days {
		if done {
			completed++
		}
	}
	rate := completionRate(completed, item.Target)
	return HabitStats{
		Item:        item,
		Completed:   completed,
		Rate:        rate,
		DisplayRate: math.Min(rate, maxDisplayRate),
	}
}

func CalculateMetricStats(item week.MetricItem) MetricStats {
	total := 0.0
	for _, cell := range item.Days {
		total += cell.OrZero()
	}
	return MetricStats{
		Item:  item,
		Total: total,
		Diff:  total - item.Target,
	}
}

// Summarize computes all statistics of a week. The day range comes from the id, which
// always holds the week's Monday, so a damaged StartDate cannot break it.
func Summarize(record week.Record) (WeekSummary, error) {
	idDate, err := week.ParseISO(record.Id)
	if err != nil {
		return WeekSummary{}, fmt.Errorf("failed to summarize week %s: %w", record.Id, err)
	}
	monday := week.MondayOf(idDate)

	summary := WeekSummary{
		WeekId:     record.Id,
		Title:      record.Title,
		StartDate:  record.StartDate,
		EndDate:    record.EndDate,
		WeekNumber: week.WeekNumberFromDate(monday),
		Days:       week.WeekRange(monday),
		Categories: make([]CategoryStats, 0, len(record.HabitCategories)),
		Metrics:    make([]MetricStats, 0, len(record.Metrics)),
	}

	for _, category := range record.HabitCategories {
		categoryStats := CategoryStats{Name: category.Name, Habits: make([]HabitStats, 0, len(category.Items))}
		for _, item := range category.Items {
			habitStats := CalculateHabitStats(item)
			categoryStats.Habits = append(categoryStats.Habits, habitStats)
			categoryStats.Completed += habitStats.Completed
			categoryStats.Target += max(item.Target, 0)
		}
		summary.Categories = append(summary.Categories, categoryStats)
		summary.TotalCompleted += categoryStats.Completed
		summary.TotalTarget += categoryStats.Target
	}
	summary.CompletionRate = completionRate(summary.TotalCompleted, summary.TotalTarget)

	for _, item := range record.Metrics {
		summary.Metrics = append(summary.Metrics, CalculateMetricStats(item))
	}
	return summary, nil
}

func completionRate(completed int, target int) float64 {
	if target <= 0 {
		return 0
	}
	return float64(completed) / float64(target) * 100
}

// FormatRate renders a percentage with two decimals, e.g. "66.67".
func FormatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 2, 64)
}

// FormatNumber renders whole numbers without decimals and anything else with two.
func FormatNumber(v float64) string {
	if v == 0 {
		// avoid "-0"
		return "0"
	}
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatDiff is FormatNumber with an explicit "+" for positive values.
func FormatDiff(diff float64) string {
	if diff > 0 {
		return "+" + FormatNumber(diff)
	}
	return FormatNumber(diff)
}
