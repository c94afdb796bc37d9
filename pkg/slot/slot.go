// Package slot persists the whole week collection as one opaque document under one key.
package slot

import (
	"context"
	"errors"
)

// DefaultKey is the key the collection document is stored under.
const DefaultKey = "weekly_planner_data"

// ErrEmpty is returned by Read when nothing has been written yet.
var ErrEmpty = errors.New("storage slot is empty")

// Slot is a single key-value cell. Write replaces the whole document.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Close() error
}
