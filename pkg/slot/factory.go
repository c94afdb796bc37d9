package slot

import (
	"context"
	"fmt"
	"strings"

	"github.com/wilw-arch/WeeklyPlanWeb/internal/config"
	"github.com/wilw-arch/WeeklyPlanWeb/internal/database"
)

const (
	EngineFile     = "file"
	EngineSQLite   = "sqlite"
	EnginePostgres = "postgres"
	EngineRedis    = "redis"
	EngineMemory   = "memory"
)

// ResolveEngine normalises a configured engine name. An empty name selects EngineFile.
func ResolveEngine(engine string) string {
	engine = strings.ToLower(strings.TrimSpace(engine))
	if engine == "" {
		return EngineFile
	}
	return engine
}

// NewByEngine opens the slot backend selected by cfg.Storage.Engine.
func NewByEngine(ctx context.Context, cfg config.Application) (Slot, error) {
	key := cfg.Storage.Key
	if key == "" {
		key = DefaultKey
	}

	switch ResolveEngine(cfg.Storage.Engine) {
	case EngineFile:
		return NewFileSlot(cfg.Storage.Path), nil
	case EngineSQLite:
		db, err := database.OpenSQLite(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		return NewSQLiteSlot(db, key), nil
	case EnginePostgres:
		dbUrl := database.PostgresURL(cfg.Database)
		if err := database.MigratePostgres(dbUrl); err != nil {
			return nil, err
		}
		pool, err := database.OpenPostgres(ctx, dbUrl)
		if err != nil {
			return nil, err
		}
		return NewPostgresSlot(pool, key), nil
	case EngineRedis:
		client, err := NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return NewRedisSlot(client, key), nil
	case EngineMemory:
		return NewMemorySlot(), nil
	default:
		return nil, fmt.Errorf("unsupported storage engine: %s", cfg.Storage.Engine)
	}
}
