package collection

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/wilw-arch/WeeklyPlanWeb/pkg/week"
)

var ErrWeekNotFound = errors.New("week not found")
var ErrInvalidDocument = errors.New("invalid collection document")
var ErrNoSelection = errors.New("no week selected")

// Document is an exported collection ready to be saved as a file.
type Document struct {
	Filename string
	Data     []byte
}

func exportFilename(date string) string {
	return "weekly_planner_backup_" + date + ".json"
}

// decodeDocument parses an imported collection document. The top-level value has to be
// an array whose entries are week objects with a unique ISO date id.
func decodeDocument(data []byte) ([]week.Record, error) {
	raw, err := splitDocument(data)
	if err != nil {
		return nil, err
	}

	weeks := make([]week.Record, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, entry := range raw {
		record, err := decodeEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidDocument, i, err)
		}
		if _, ok := seen[record.Id]; ok {
			return nil, fmt.Errorf("%w: duplicate week %s", ErrInvalidDocument, record.Id)
		}
		seen[record.Id] = struct{}{}
		weeks = append(weeks, record)
	}
	return weeks, nil
}

// decodeStored parses the stored collection. Entries that cannot be read are skipped and
// reported, the rest of the collection is kept. Only a document that is not an array fails.
func decodeStored(data []byte) ([]week.Record, []error, error) {
	raw, err := splitDocument(data)
	if err != nil {
		return nil, nil, err
	}

	var skipped []error
	weeks := make([]week.Record, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, entry := range raw {
		record, err := decodeEntry(entry)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		if _, ok := seen[record.Id]; ok {
			skipped = append(skipped, fmt.Errorf("entry %d: duplicate week %s", i, record.Id))
			continue
		}
		seen[record.Id] = struct{}{}
		weeks = append(weeks, record)
	}
	return weeks, skipped, nil
}

func splitDocument(data []byte) ([]json.RawMessage, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: top-level value must be an array: %v", ErrInvalidDocument, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: top-level value must be an array", ErrInvalidDocument)
	}
	return raw, nil
}

// decodeEntry reads one week. Missing or malformed start and end dates are rebuilt from
// the id, which is the ISO date of the week's Monday.
func decodeEntry(entry json.RawMessage) (week.Record, error) {
	if !bytes.HasPrefix(bytes.TrimSpace(entry), []byte("{")) {
		return week.Record{}, errors.New("not an object")
	}
	var record week.Record
	if err := json.Unmarshal(entry, &record); err != nil {
		return week.Record{}, err
	}
	start, err := week.ParseISO(record.Id)
	if err != nil {
		return week.Record{}, fmt.Errorf("invalid id %q", record.Id)
	}
	if _, err := week.ParseISO(record.StartDate); err != nil {
		record.StartDate = week.FormatISO(start)
	}
	if _, err := week.ParseISO(record.EndDate); err != nil {
		record.EndDate = week.FormatISO(start.AddDate(0, 0, week.DaysPerWeek-1))
	}
	return record, nil
}

func encodeDocument(weeks []week.Record) ([]byte, error) {
	if weeks == nil {
		weeks = []week.Record{}
	}
	return json.Marshal(weeks)
}

// sortDescending orders weeks newest first. Ids are ISO dates, so string order is date order.
func sortDescending(weeks []week.Record) {
	slices.SortStableFunc(weeks, func(a, b week.Record) int {
		return strings.Compare(b.Id, a.Id)
	})
}

func indexOf(weeks []week.Record, id string) int {
	return slices.IndexFunc(weeks, func(r week.Record) bool { return r.Id == id })
}

func cloneAll(weeks []week.Record) []week.Record {
	cloned := make([]week.Record, len(weeks))
	for i, r := range weeks {
		cloned[i] = r.Clone()
	}
	return cloned
}
