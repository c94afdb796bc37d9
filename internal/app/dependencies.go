package app

import (
	"fmt"

	"github.com/wilw-arch/WeeklyPlanWeb/internal/config"
	"github.com/wilw-arch/WeeklyPlanWeb/internal/event_bus"
	"github.com/wilw-arch/WeeklyPlanWeb/internal/utils"
	"github.com/wilw-arch/WeeklyPlanWeb/pkg/backup"
	"github.com/wilw-arch/WeeklyPlanWeb/pkg/collection"
	"github.com/wilw-arch/WeeklyPlanWeb/pkg/slot"
	"github.com/wilw-arch/WeeklyPlanWeb/pkg/stats"
	"github.com/wilw-arch/WeeklyPlanWeb/pkg/week"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	WeekManager *collection.Manager
	WeekHandler *collection.Handler

	BackupService *backup.Service

	CsvStatsRenderer  *stats.CsvStatsRendererImpl
	XlsxStatsRenderer *stats.XlsxStatsRendererImpl
	StatsHandler      *stats.StatsHandler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(storage slot.Slot, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	clock, err := utils.NewSystemClock(cfg.Week.Timezone)
	if err != nil {
		return nil, err
	}
	deps.Clock = clock

	template, err := week.LoadTemplate(cfg.Week.Template)
	if err != nil {
		return nil, fmt.Errorf("failed to load week template: %w", err)
	}

	deps.EventBus = event_bus.NewEventBus()

	deps.BackupService = backup.NewService(cfg.Backup, deps.Clock, deps.EventBus)

	deps.WeekManager = collection.NewManager(storage, deps.Clock, template, deps.EventBus)
	deps.WeekHandler = collection.NewHandler(deps.WeekManager)

	deps.CsvStatsRenderer = stats.NewCsvStatsRenderer()
	deps.XlsxStatsRenderer = stats.NewXlsxStatsRenderer()
	deps.StatsHandler = stats.NewStatsHandler(deps.WeekManager, deps.CsvStatsRenderer, deps.XlsxStatsRenderer)

	return deps, nil
}
