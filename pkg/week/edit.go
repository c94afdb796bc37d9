package week

import (
	"errors"
	"fmt"
)

var ErrItemNotFound = errors.New("week item not found")
var ErrDayOutOfRange = errors.New("day index out of range")

// ToggleHabitDay flips the check mark of habit itemId on day (0 = Monday).
// The receiver is left untouched.
func (r Record) ToggleHabitDay(itemId string, day int) (Record, error) {
	if day < 0 || day >= DaysPerWeek {
		return Record{}, fmt.Errorf("%w: %d", ErrDayOutOfRange, day)
	}
	updated := r.Clone()
	for c := range updated.HabitCategories {
		items := updated.HabitCategories[c].Items
		for i := range items {
			if items[i].Id == itemId {
				items[i].Days[day] = !items[i].Days[day]
				return updated, nil
			}
		}
	}
	return Record{}, fmt.Errorf("%w: habit %s", ErrItemNotFound, itemId)
}

// WithMetricDay sets the cell of metric itemId on day (0 = Monday).
func (r Record) WithMetricDay(itemId string, day int, value MetricValue) (Record, error) {
	if day < 0 || day >= DaysPerWeek {
		return Record{}, fmt.Errorf("%w: %d", ErrDayOutOfRange, day)
	}
	updated := r.Clone()
	for i := range updated.Metrics {
		if updated.Metrics[i].Id == itemId {
			updated.Metrics[i].Days[day] = value
			return updated, nil
		}
	}
	return Record{}, fmt.Errorf("%w: metric %s", ErrItemNotFound, itemId)
}
