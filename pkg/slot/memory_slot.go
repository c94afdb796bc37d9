package slot

import (
	"context"
	"sync"
)

// MemorySlot keeps the document in memory. WriteErr makes every following Write fail,
// which tests use to simulate a broken storage.
type MemorySlot struct {
	mu       sync.RWMutex
	data     []byte
	present  bool
	writes   int
	WriteErr error
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// NewMemorySlotWith returns a slot that already holds data.
func NewMemorySlotWith(data string) *MemorySlot {
	return &MemorySlot{data: []byte(data), present: true}
}

func (s *MemorySlot) Read(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.present {
		return nil, ErrEmpty
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemorySlot) Write(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.data = append([]byte(nil), data...)
	s.present = true
	s.writes++
	return nil
}

// Writes counts successful writes.
func (s *MemorySlot) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

func (s *MemorySlot) Close() error {
	return nil
}
