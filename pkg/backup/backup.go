// Package backup saves the current collection to a file before an import replaces it.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/wilw-arch/WeeklyPlanWeb/internal/config"
	"github.com/wilw-arch/WeeklyPlanWeb/internal/event_bus"
	"github.com/wilw-arch/WeeklyPlanWeb/internal/utils"
	"github.com/wilw-arch/WeeklyPlanWeb/pkg/week"
)

const filePrefix = "weekly_planner_backup_"

type Service struct {
	dir   string
	clock utils.Clock
}

// NewService subscribes to collection imports when backups are enabled. It returns nil
// when they are not.
func NewService(cfg config.Backup, clock utils.Clock, eventBus *event_bus.EventBus) *Service {
	if !cfg.Enabled {
		log.Info("backup before import is disabled")
		return nil
	}
	service := &Service{dir: cfg.Dir, clock: clock}
	event_bus.SubscribeTyped(
		eventBus,
		event_bus.CollectionImportingEvent,
		func(e event_bus.EventT[event_bus.CollectionImporting]) error {
			if len(e.Data.Previous) == 0 {
				log.Debug("collection is empty, nothing to back up")
				return nil
			}
			path, err := service.Save(e.Data.Previous)
			if err != nil {
				log.Errorf("failed to back up collection: %v", err)
				return err
			}
			log.Infof("backed up %d weeks to %s before import", len(e.Data.Previous), path)
			return nil
		},
	)
	return service
}

// Save writes weeks to a new file in the backup directory and returns its path.
// Existing backups are never overwritten, a numeric suffix is added instead.
func (s *Service) Save(weeks []week.Record) (string, error) {
	if weeks == nil {
		weeks = []week.Record{}
	}
	data, err := json.MarshalIndent(weeks, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode backup: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	base := filePrefix + week.FormatISO(s.clock.Now())
	for i := 0; ; i++ {
		name := base + ".json"
		if i > 0 {
			name = base + "_" + strconv.Itoa(i) + ".json"
		}
		path := filepath.Join(s.dir, name)

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create backup file: %w", err)
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			return "", fmt.Errorf("failed to write backup file: %w", err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("failed to close backup file: %w", err)
		}
		return path, nil
	}
}
