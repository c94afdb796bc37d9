package stats

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/wilw-arch/WeeklyPlanWeb/internal/rest"
	"github.com/wilw-arch/WeeklyPlanWeb/pkg/collection"
	"github.com/wilw-arch/WeeklyPlanWeb/pkg/week"
)

type DayDTO struct {
	Date     string `json:"date"`
	Display  string `json:"display"`
	DayIndex int    `json:"dayIndex"`
}

type HabitStatsDTO struct {
	Id          string  `json:"id"`
	Name        string  `json:"name"`
	Target      int     `json:"target"`
	Completed   int     `json:"completed"`
	Rate        float64 `json:"rate"`
	DisplayRate string  `json:"displayRate"`
}

type CategoryStatsDTO struct {
	Name      string          `json:"name"`
	Habits    []HabitStatsDTO `json:"habits"`
	Completed int             `json:"completed"`
	Target    int             `json:"target"`
}

type MetricStatsDTO struct {
	Id           string  `json:"id"`
	Name         string  `json:"name"`
	Target       float64 `json:"target"`
	Total        float64 `json:"total"`
	Diff         float64 `json:"diff"`
	DisplayTotal string  `json:"displayTotal"`
	DisplayDiff  string  `json:"displayDiff"`
}

type WeekSummaryDTO struct {
	WeekId         string             `json:"weekId"`
	Title          string             `json:"title"`
	StartDate      string             `json:"startDate"`
	EndDate        string             `json:"endDate"`
	WeekNumber     string             `json:"weekNumber"`
	Days           []DayDTO           `json:"days"`
	Categories     []CategoryStatsDTO `json:"categories"`
	Metrics        []MetricStatsDTO   `json:"metrics"`
	TotalCompleted int                `json:"totalCompleted"`
	TotalTarget    int                `json:"totalTarget"`
	CompletionRate string             `json:"completionRate"`
}

type WeekReader interface {
	Get(id string) (week.Record, error)
}

type StatsHandler struct {
	weeks     WeekReader
	renderers []StatsRenderer
}

func NewStatsHandler(weeks WeekReader, renderers ...StatsRenderer) *StatsHandler {
	return &StatsHandler{weeks, renderers}
}

// GetWeekStats godoc
// @Summary Get statistics of a week
// @Description Habit completion and metric totals. Accept text/csv or the xlsx media type for a download.
// @Tags Stats
// @Produce json,text/csv
// @Param weekId path string true "Week id (ISO date of its Monday)"
// @Success 200 {object} WeekSummaryDTO
// @Failure 404 {object} rest.ErrorResponse "Week not found"
// @Router /api/weeks/{weekId}/stats [get]
func (handler *StatsHandler) GetWeekStats(w http.ResponseWriter, r *http.Request) {
	weekId := mux.Vars(r)["weekId"]
	record, err := handler.weeks.Get(weekId)
	if err != nil {
		if errors.Is(err, collection.ErrWeekNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Week not found", weekId)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	summary, err := Summarize(record)
	if err != nil {
		log.Error(err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if renderer := handler.rendererFor(r.Header.Get("Accept")); renderer != nil {
		content, err := renderer.RenderStats(summary)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", renderer.ContentType())
		w.Header().Set("Content-Disposition", `attachment; filename="weekly_stats_`+summary.WeekId+renderer.FileExtension()+`"`)
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(content); err != nil {
			log.Errorf("failed to write stats: %v", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(convertToJsonResponse(summary)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (handler *StatsHandler) rendererFor(accept string) StatsRenderer {
	if accept == "" {
		return nil
	}
	for _, renderer := range handler.renderers {
		mediaType, _, _ := strings.Cut(renderer.ContentType(), ";")
		if strings.Contains(accept, mediaType) {
			return renderer
		}
	}
	return nil
}

func convertToJsonResponse(summary WeekSummary) WeekSummaryDTO {
	days := make([]DayDTO, 0, len(summary.Days))
	for _, day := range summary.Days {
		days = append(days, DayDTO{Date: day.Date, Display: day.Display, DayIndex: day.DayIndex})
	}

	categories := make([]CategoryStatsDTO, 0, len(summary.Categories))
	for _, category := range summary.Categories {
		habits := make([]HabitStatsDTO, 0, len(category.Habits))
		for _, habit := range category.Habits {
			habits = append(habits, HabitStatsDTO{
				Id:          habit.Item.Id,
				Name:        habit.Item.Name,
				Target:      habit.Item.Target,
				Completed:   habit.Completed,
				Rate:        habit.Rate,
				DisplayRate: FormatRate(habit.DisplayRate),
			})
		}
		categories = append(categories, CategoryStatsDTO{
			Name:      category.Name,
			Habits:    habits,
			Completed: category.Completed,
			Target:    category.Target,
		})
	}

	metrics := make([]MetricStatsDTO, 0, len(summary.Metrics))
	for _, metric := range summary.Metrics {
		metrics = append(metrics, MetricStatsDTO{
			Id:           metric.Item.Id,
			Name:         metric.Item.Name,
			Target:       metric.Item.Target,
			Total:        metric.Total,
			Diff:         metric.Diff,
			DisplayTotal: FormatNumber(metric.Total),
			DisplayDiff:  FormatDiff(metric.Diff),
		})
	}

	return WeekSummaryDTO{
		WeekId:         summary.WeekId,
		Title:          summary.Title,
		StartDate:      summary.StartDate,
		EndDate:        summary.EndDate,
		WeekNumber:     summary.WeekNumber.String(),
		Days:           days,
		Categories:     categories,
		Metrics:        metrics,
		TotalCompleted: summary.TotalCompleted,
		TotalTarget:    summary.TotalTarget,
		CompletionRate: FormatRate(min(summary.CompletionRate, maxDisplayRate)),
	}
}
