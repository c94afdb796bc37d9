package stats

import (
	"fmt"

	"github.com/wilw-arch/WeeklyPlanWeb/pkg/collection"
	"github.com/wilw-arch/WeeklyPlanWeb/pkg/week"
)

type weekReaderStub struct {
	weeks map[string]week.Record
}

func newWeekReaderStub(records ...week.Record) *weekReaderStub {
	weeks := make(map[string]week.Record, len(records))
	for _, record := range records {
		weeks[record.Id] = record
	}
	return &weekReaderStub{weeks: weeks}
}

func (s *weekReaderStub) Get(id string) (week.Record, error) {
	record, ok := s.weeks[id]
	if !ok {
		return week.Record{}, fmt.Errorf("%w: %s", collection.ErrWeekNotFound, id)
	}
	return record, nil
}
