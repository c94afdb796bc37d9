package stats

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wilw-arch/WeeklyPlanWeb/pkg/week"
)

func habit(target int, checked ...int) week.HabitItem {
	item := week.HabitItem{Id: "h", Name: "habit", Target: target}
	for _, day := range checked {
		item.Days[day] = true
	}
	return item
}

func TestCalculateHabitStats(t *testing.T) {
	tests := []struct {
		name            string
		item            week.HabitItem
		wantCompleted   int
		wantRate        float64
		wantDisplayRate string
	}{
		{"nothing done", habit(7), 0, 0, "0.00"},
		{"partially done", habit(3, 0, 2), 2, 200.0 / 3, "66.67"},
		{"exactly on target", habit(7, 0, 1, 2, 3, 4, 5, 6), 7, 100, "100.00"},
		{"over target is capped for display only", habit(3, 0, 1, 2, 3, 4), 5, 500.0 / 3, "100.00"},
		{"zero target", habit(0, 1), 1, 0, "0.00"},
		{"negative target", habit(-2, 1), 1, 0, "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateHabitStats(tt.item)

			assert.Equal(t, tt.wantCompleted, got.Completed)
			assert.InDelta(t, tt.wantRate, got.Rate, 1e-9)
			assert.GreaterOrEqual(t, got.DisplayRate, 0.0)
			assert.LessOrEqual(t, got.DisplayRate, 100.0)
			assert.Equal(t, tt.wantDisplayRate, FormatRate(got.DisplayRate))
		})
	}
}

func TestCalculateMetricStats(t *testing.T) {
	var item week.MetricItem
	require.NoError(t, json.Unmarshal([]byte(`{"id":"m","name":"spend","target":20,"days":["10","","abc",5,"3.5","",""]}`), &item))

	got := CalculateMetricStats(item)

	assert.Equal(t, 18.5, got.Total)
	assert.Equal(t, -1.5, got.Diff)
	assert.Equal(t, "18.50", FormatNumber(got.Total))
	assert.Equal(t, "-1.50", FormatDiff(got.Diff))
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{20, "20"},
		{-5, "-5"},
		{1000, "1000"},
		{3.14159, "3.14"},
		{-0.5, "-0.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in))
	}
}

func TestFormatDiff(t *testing.T) {
	assert.Equal(t, "+5", FormatDiff(5))
	assert.Equal(t, "+0.25", FormatDiff(0.25))
	assert.Equal(t, "0", FormatDiff(0))
	assert.Equal(t, "-20", FormatDiff(-20))
}

func TestSummarize(t *testing.T) {
	record := week.NewDefault(time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC), week.DefaultTemplate())
	record.HabitCategories[0].Items[0].Days = [week.DaysPerWeek]bool{true, true, true, true, true, true, true}
	record.HabitCategories[0].Items[3].Days = [week.DaysPerWeek]bool{true, true, true, true, true}
	record.Metrics[2].Days[0] = week.Number(1200)

	summary, err := Summarize(record)

	require.NoError(t, err)
	assert.Equal(t, "2024-06-03", summary.WeekId)
	assert.Equal(t, "2024-W23", summary.WeekNumber.String())
	require.Len(t, summary.Days, week.DaysPerWeek)
	assert.Equal(t, "6.3", summary.Days[0].Display)

	require.Len(t, summary.Categories, 3)
	daily := summary.Categories[0]
	assert.Equal(t, 12, daily.Completed, "completions above target are not capped")
	assert.Equal(t, 7+7+7+3, daily.Target)
	assert.Equal(t, 12, summary.TotalCompleted)
	assert.Equal(t, 24+(6+7+3)+(7+3), summary.TotalTarget)

	require.Len(t, summary.Metrics, 3)
	assert.Equal(t, 1200.0, summary.Metrics[2].Total)
	assert.Equal(t, "+200", FormatDiff(summary.Metrics[2].Diff))
}

func TestSummarize_InvalidId(t *testing.T) {
	_, err := Summarize(week.Record{Id: "broken", StartDate: "2024-06-03"})
	assert.Error(t, err)
}

func TestSummarize_RangeFollowsIdWhenDatesAreMissing(t *testing.T) {
	summary, err := Summarize(week.Record{Id: "2024-06-03", Title: "t"})

	require.NoError(t, err)
	require.Len(t, summary.Days, week.DaysPerWeek)
	assert.Equal(t, "2024-06-03", summary.Days[0].Date)
	assert.Equal(t, "2024-06-09", summary.Days[6].Date)
	assert.Equal(t, "2024-W23", summary.WeekNumber.String())
}
