package slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSlot stores the document in the storage_slot table of a Postgres database.
type PostgresSlot struct {
	pool *pgxpool.Pool
	key  string
}

func NewPostgresSlot(pool *pgxpool.Pool, key string) *PostgresSlot {
	return &PostgresSlot{pool: pool, key: key}
}

func (s *PostgresSlot) Read(ctx context.Context) ([]byte, error) {
	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM storage_slot WHERE key = $1`, s.key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("failed to read slot %s: %w", s.key, err)
	}
	return []byte(value), nil
}

func (s *PostgresSlot) Write(ctx context.Context, data []byte) error {
	query := `INSERT INTO storage_slot (key, value, updated_at) VALUES ($1, $2, now())
			  ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	if _, err := s.pool.Exec(ctx, query, s.key, string(data)); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", s.key, err)
	}
	return nil
}

func (s *PostgresSlot) Close() error {
	s.pool.Close()
	return nil
}
