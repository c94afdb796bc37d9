package week

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
	"time"
)

// ISODate is the layout of week ids and start/end dates.
const ISODate = "2006-01-02"

// Day is one entry of a week range.
type Day struct {
	Date     string // ISO date
	Display  string // "M.D" without leading zeros
	DayIndex int    // 1 = Monday .. 7 = Sunday
}

// CivilDate drops the clock part of t, keeping the calendar day t has in its own location.
// The result is midnight UTC so that day arithmetic is never affected by DST.
func CivilDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// MondayOf returns the Monday of the week containing date. Sunday closes its week,
// so it maps to the Monday six days earlier.
func MondayOf(date time.Time) time.Time {
	d := CivilDate(date)
	weekday := int(d.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return d.AddDate(0, 0, -(weekday - 1))
}

func FormatISO(date time.Time) string {
	return date.Format(ISODate)
}

func ParseISO(s string) (time.Time, error) {
	d, err := time.Parse(ISODate, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ISO date %q: %w", s, err)
	}
	return d, nil
}

// FormatShort renders a date as "M.D", e.g. "6.3".
func FormatShort(date time.Time) string {
	return strconv.Itoa(int(date.Month())) + "." + strconv.Itoa(date.Day())
}

// Days lazily yields the seven days starting at monday.
func Days(monday time.Time) iter.Seq[Day] {
	start := CivilDate(monday)
	return func(yield func(Day) bool) {
		for i := 0; i < DaysPerWeek; i++ {
			d := start.AddDate(0, 0, i)
			if !yield(Day{Date: FormatISO(d), Display: FormatShort(d), DayIndex: i + 1}) {
				return
			}
		}
	}
}

// WeekRange collects Days into a slice.
func WeekRange(monday time.Time) []Day {
	days := make([]Day, 0, DaysPerWeek)
	for d := range Days(monday) {
		days = append(days, d)
	}
	return days
}

// WeekNumber is the ISO 8601 week a record falls into.
type WeekNumber struct {
	Week int
	Year int
}

// WeekNumberFromDate returns the ISO week containing date.
func WeekNumberFromDate(date time.Time) WeekNumber {
	year, week := MondayOf(date).ISOWeek()
	return WeekNumber{Year: year, Week: week}
}

// String returns the ISO week format ISO 8601 e.g. "2025-W03"
func (w WeekNumber) String() string {
	return fmt.Sprintf("%04d-W%02d", w.Year, w.Week)
}
