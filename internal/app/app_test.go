package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wilw-arch/WeeklyPlanWeb/internal/config"
	"github.com/wilw-arch/WeeklyPlanWeb/pkg/collection"
)

func testConfig(t *testing.T) config.Application {
	t.Helper()
	cfg := config.Defaults()
	cfg.Storage.Engine = "file"
	cfg.Storage.Path = filepath.Join(t.TempDir(), "weekly_planner_data.json")
	cfg.Backup.Dir = filepath.Join(t.TempDir(), "backups")
	cfg.Week.Timezone = "UTC"
	return cfg
}

func TestApplication_Health(t *testing.T) {
	application, err := NewApplicationWithConfig(context.Background(), testConfig(t))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	application.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestApplication_CreatedWeekSurvivesRestart(t *testing.T) {
	cfg := testConfig(t)
	first, err := NewApplicationWithConfig(context.Background(), cfg)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	first.Handler().ServeHTTP(rr, httptest.NewRequest("POST", "/api/weeks?date=2024-06-05", nil))
	require.Equal(t, http.StatusCreated, rr.Code)

	second, err := NewApplicationWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	rr = httptest.NewRecorder()
	second.Handler().ServeHTTP(rr, httptest.NewRequest("GET", "/api/weeks", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var body collection.WeekListDTO
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	var found bool
	for _, w := range body.Weeks {
		if w.Id == "2024-06-03" {
			found = true
		}
	}
	assert.True(t, found, "created week must be read back from storage")
}

func TestApplication_UnknownEngine(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Engine = "tape"

	_, err := NewApplicationWithConfig(context.Background(), cfg)

	assert.EqualError(t, err, "unsupported storage engine: tape")
}

func TestApplication_RunStopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.Addr = "127.0.0.1:0"
	application, err := NewApplicationWithConfig(context.Background(), cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, application.Run(ctx))
}
