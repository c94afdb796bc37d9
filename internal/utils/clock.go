package utils

import (
	"fmt"
	"time"
)

type Clock interface {
	Now() time.Time
}

// SystemClock reports the wall clock in Location, which decides what "today" means
// when a new week is generated.
type SystemClock struct {
	Location *time.Location
}

// NewSystemClock resolves timezone ("Local" or an IANA name) into a SystemClock.
func NewSystemClock(timezone string) (SystemClock, error) {
	if timezone == "" || timezone == "Local" {
		return SystemClock{Location: time.Local}, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return SystemClock{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return SystemClock{Location: loc}, nil
}

func (s SystemClock) Now() time.Time {
	if s.Location == nil {
		return time.Now()
	}
	return time.Now().In(s.Location)
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}
