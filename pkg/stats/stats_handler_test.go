package stats

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wilw-arch/WeeklyPlanWeb/pkg/week"
)

func statsRecord() week.Record {
	return week.Record{
		Id:        "2024-06-03",
		Title:     "6月-周计划复盘 (6.3-6.9)",
		StartDate: "2024-06-03",
		EndDate:   "2024-06-09",
		HabitCategories: []week.HabitCategory{
			{
				Name: "Health",
				Items: []week.HabitItem{
					{Id: "h1", Name: "Run", Target: 3, Days: [week.DaysPerWeek]bool{true, true, true, true, true}},
				},
			},
		},
		Metrics: []week.MetricItem{
			{Id: "m1", Name: "Calls", Target: 20, Days: [week.DaysPerWeek]week.MetricValue{
				week.ParseMetricValue("10"), week.Empty(), week.ParseMetricValue("abc"), week.Number(5), week.ParseMetricValue("3.5"),
			}},
		},
	}
}

func setupStatsRouter(records ...week.Record) *mux.Router {
	handler := NewStatsHandler(newWeekReaderStub(records...), NewCsvStatsRenderer(), NewXlsxStatsRenderer())
	router := mux.NewRouter()
	router.HandleFunc("/api/weeks/{weekId}/stats", handler.GetWeekStats).Methods("GET")
	return router
}

func TestStatsHandler_GetWeekStats_Json(t *testing.T) {
	router := setupStatsRouter(statsRecord())
	req := httptest.NewRequest("GET", "/api/weeks/2024-06-03/stats", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var body WeekSummaryDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))

	assert.Equal(t, "2024-W23", body.WeekNumber)
	require.Len(t, body.Days, 7)
	assert.Equal(t, "6.9", body.Days[6].Display)

	require.Len(t, body.Categories, 1)
	habit := body.Categories[0].Habits[0]
	assert.Equal(t, 5, habit.Completed)
	assert.InDelta(t, 166.67, habit.Rate, 0.01)
	assert.Equal(t, "100.00", habit.DisplayRate)
	assert.Equal(t, "100.00", body.CompletionRate)

	require.Len(t, body.Metrics, 1)
	assert.InDelta(t, 18.5, body.Metrics[0].Total, 1e-9)
	assert.Equal(t, "18.50", body.Metrics[0].DisplayTotal)
	assert.Equal(t, "-1.50", body.Metrics[0].DisplayDiff)
}

func TestStatsHandler_GetWeekStats_Csv(t *testing.T) {
	router := setupStatsRouter(statsRecord())
	req := httptest.NewRequest("GET", "/api/weeks/2024-06-03/stats", nil)
	req.Header.Set("Accept", "text/csv")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="weekly_stats_2024-06-03.csv"`, rr.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rr.Body.String(), "6月-周计划复盘 (6.3-6.9)"))
}

func TestStatsHandler_GetWeekStats_Xlsx(t *testing.T) {
	router := setupStatsRouter(statsRecord())
	req := httptest.NewRequest("GET", "/api/weeks/2024-06-03/stats", nil)
	req.Header.Set("Accept", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `attachment; filename="weekly_stats_2024-06-03.xlsx"`, rr.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rr.Body.String(), "PK"), "xlsx files are zip archives")
}

func TestStatsHandler_GetWeekStats_NotFound(t *testing.T) {
	router := setupStatsRouter()
	req := httptest.NewRequest("GET", "/api/weeks/2024-06-03/stats", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Week not found","details":"2024-06-03"}`, rr.Body.String())
}

func TestStatsHandler_GetWeekStats_WeekWithoutDates(t *testing.T) {
	router := setupStatsRouter(week.Record{Id: "2024-06-03", Title: "t"})
	req := httptest.NewRequest("GET", "/api/weeks/2024-06-03/stats", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body WeekSummaryDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	require.Len(t, body.Days, 7)
	assert.Equal(t, "2024-06-03", body.Days[0].Date)
}

func TestStatsHandler_GetWeekStats_LogsSummaryErrorOnce(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()
	router := setupStatsRouter(week.Record{Id: "broken"})
	req := httptest.NewRequest("GET", "/api/weeks/broken/stats", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, 1, strings.Count(hook.LastEntry().Message, "failed to summarize week broken"))
}
