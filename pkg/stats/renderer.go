package stats

import "strconv"

type StatsRenderer interface {
	RenderStats(summary WeekSummary) ([]byte, error)
	ContentType() string
	FileExtension() string
}

const checkMark = "✓"

// summaryTable lays a summary out as rows of string, int and float64 cells.
// Renderers decide how each cell type is written.
func summaryTable(summary WeekSummary) [][]any {
	dayColumns := len(summary.Days)
	rows := make([][]any, 0, 8+len(summary.Categories)*4+len(summary.Metrics))

	rows = append(rows, []any{summary.Title, summary.StartDate + " - " + summary.EndDate, summary.WeekNumber.String()})

	habitHeader := make([]any, 0, dayColumns+5)
	habitHeader = append(habitHeader, "Habit")
	for _, day := range summary.Days {
		habitHeader = append(habitHeader, day.Display)
	}
	habitHeader = append(habitHeader, "Target", "Completed", "Rate", "Remarks")
	rows = append(rows, habitHeader)

	for _, category := range summary.Categories {
		rows = append(rows, []any{category.Name})
		for _, habit := range category.Habits {
			row := make([]any, 0, dayColumns+5)
			row = append(row, habit.Item.Name)
			for _, done := range habit.Item.Days {
				if done {
					row = append(row, checkMark)
				} else {
					row = append(row, "")
				}
			}
			row = append(row, habit.Item.Target, habit.Completed, FormatRate(habit.DisplayRate)+"%", habit.Item.Remarks)
			rows = append(rows, row)
		}
	}

	totalRow := make([]any, 0, dayColumns+5)
	totalRow = append(totalRow, "Total")
	for range summary.Days {
		totalRow = append(totalRow, "")
	}
	totalRow = append(totalRow, summary.TotalTarget, summary.TotalCompleted, FormatRate(min(summary.CompletionRate, maxDisplayRate))+"%", "")
	rows = append(rows, totalRow, []any{})

	metricHeader := make([]any, 0, dayColumns+5)
	metricHeader = append(metricHeader, "Metric")
	for _, day := range summary.Days {
		metricHeader = append(metricHeader, day.Display)
	}
	metricHeader = append(metricHeader, "Target", "Total", "Diff", "Remarks")
	rows = append(rows, metricHeader)

	for _, metric := range summary.Metrics {
		row := make([]any, 0, dayColumns+5)
		row = append(row, metric.Item.Name)
		for _, cell := range metric.Item.Days {
			if v, ok := cell.Float(); ok {
				row = append(row, v)
			} else {
				row = append(row, "")
			}
		}
		row = append(row, metric.Item.Target, metric.Total, FormatDiff(metric.Diff), metric.Item.Remarks)
		rows = append(rows, row)
	}
	return rows
}

func cellToString(cell any) string {
	switch v := cell.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return FormatNumber(v)
	default:
		return ""
	}
}
