package collection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/wilw-arch/WeeklyPlanWeb/internal/event_bus"
	"github.com/wilw-arch/WeeklyPlanWeb/internal/utils"
	"github.com/wilw-arch/WeeklyPlanWeb/pkg/slot"
	"github.com/wilw-arch/WeeklyPlanWeb/pkg/week"
)

type Service interface {
	Load(ctx context.Context) error
	Weeks() []week.Record
	Get(id string) (week.Record, error)
	Selected() (week.Record, bool)
	Select(id string) error
	Create(ctx context.Context, referenceDate time.Time) (week.Record, bool, error)
	CreateNext(ctx context.Context) (week.Record, bool, error)
	Update(ctx context.Context, record week.Record) (week.Record, error)
	// Edit applies change to the stored week id and persists the result.
	Edit(ctx context.Context, id string, change func(week.Record) (week.Record, error)) (week.Record, error)
	Delete(ctx context.Context, id string) error
	DeleteSelected(ctx context.Context) error
	Export() (Document, error)
	Import(ctx context.Context, data []byte) (int, error)
}

// Manager owns the in-memory week collection and mirrors every change into a slot.
// The in-memory state is replaced only after the slot accepted the new document.
type Manager struct {
	mu         sync.Mutex
	slot       slot.Slot
	clock      utils.Clock
	template   week.Template
	eventBus   *event_bus.EventBus
	weeks      []week.Record
	selectedId string
}

func NewManager(s slot.Slot, clock utils.Clock, tmpl week.Template, eventBus *event_bus.EventBus) *Manager {
	return &Manager{
		slot:     s,
		clock:    clock,
		template: tmpl,
		eventBus: eventBus,
		weeks:    []week.Record{},
	}
}

// Load restores the collection from the slot. A missing document, or one that is not an
// array, starts a fresh collection with the current week, which is not written until the
// first change. Single unreadable entries are skipped with a warning.
func (m *Manager) Load(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := m.slot.Read(ctx)
	if err != nil && !errors.Is(err, slot.ErrEmpty) {
		return fmt.Errorf("failed to load weeks: %w", err)
	}

	if err == nil {
		weeks, skipped, decodeErr := decodeStored(data)
		if decodeErr == nil && len(weeks) == 0 && len(skipped) > 0 {
			decodeErr = fmt.Errorf("none of the %d stored weeks is readable: %w", len(skipped), errors.Join(skipped...))
		}
		if decodeErr == nil {
			for _, skipErr := range skipped {
				log.Warnf("skipping unreadable stored week: %v", skipErr)
			}
			sortDescending(weeks)
			m.weeks = weeks
			m.selectedId = ""
			if len(weeks) > 0 {
				m.selectedId = weeks[0].Id
			}
			log.Infof("loaded %d weeks", len(weeks))
			return nil
		}
		log.Warnf("stored weeks are unreadable, starting with a new week: %v", decodeErr)
	}

	current := week.NewDefault(m.clock.Now(), m.template)
	m.weeks = []week.Record{current}
	m.selectedId = current.Id
	return nil
}

func (m *Manager) Weeks() []week.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneAll(m.weeks)
}

func (m *Manager) Get(id string) (week.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.weeks, id)
	if i < 0 {
		return week.Record{}, fmt.Errorf("%w: %s", ErrWeekNotFound, id)
	}
	return m.weeks[i].Clone(), nil
}

func (m *Manager) Selected() (week.Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := indexOf(m.weeks, m.selectedId)
	if i < 0 {
		return week.Record{}, false
	}
	return m.weeks[i].Clone(), true
}

func (m *Manager) Select(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if indexOf(m.weeks, id) < 0 {
		return fmt.Errorf("%w: %s", ErrWeekNotFound, id)
	}
	m.selectedId = id
	return nil
}

// Create adds the default week containing referenceDate. When that week already exists
// it is selected and returned with created set to false.
func (m *Manager) Create(ctx context.Context, referenceDate time.Time) (week.Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.create(ctx, referenceDate)
}

// CreateNext adds the week following the latest one, or the current week when the
// collection is empty.
func (m *Manager) CreateNext(ctx context.Context) (week.Record, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.weeks) == 0 {
		return m.create(ctx, m.clock.Now())
	}

	latestId := m.weeks[0].Id
	for _, r := range m.weeks[1:] {
		if r.Id > latestId {
			latestId = r.Id
		}
	}
	latest, err := week.ParseISO(latestId)
	if err != nil {
		return week.Record{}, false, fmt.Errorf("latest week has invalid id %q: %w", latestId, err)
	}
	return m.create(ctx, latest.AddDate(0, 0, 7))
}

func (m *Manager) create(ctx context.Context, referenceDate time.Time) (week.Record, bool, error) {
	record := week.NewDefault(referenceDate, m.template)

	if i := indexOf(m.weeks, record.Id); i >= 0 {
		log.Debugf("week %s already exists, selecting it", record.Id)
		m.selectedId = record.Id
		return m.weeks[i].Clone(), false, nil
	}

	weeks := append(cloneAll(m.weeks), record)
	sortDescending(weeks)
	if err := m.persist(ctx, weeks); err != nil {
		return week.Record{}, false, err
	}
	m.weeks = weeks
	m.selectedId = record.Id
	return record.Clone(), true, nil
}

// Update replaces the stored week with the same id. The id and the date range of the
// stored week are kept.
func (m *Manager) Update(ctx context.Context, record week.Record) (week.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.replace(ctx, record.Id, func(week.Record) (week.Record, error) {
		return record.Clone(), nil
	})
}

func (m *Manager) Edit(ctx context.Context, id string, change func(week.Record) (week.Record, error)) (week.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.replace(ctx, id, change)
}

func (m *Manager) replace(ctx context.Context, id string, change func(week.Record) (week.Record, error)) (week.Record, error) {
	i := indexOf(m.weeks, id)
	if i < 0 {
		return week.Record{}, fmt.Errorf("%w: %s", ErrWeekNotFound, id)
	}
	stored := m.weeks[i]

	updated, err := change(stored.Clone())
	if err != nil {
		return week.Record{}, err
	}
	updated.Id = stored.Id
	updated.StartDate = stored.StartDate
	updated.EndDate = stored.EndDate

	weeks := cloneAll(m.weeks)
	weeks[i] = updated
	if err := m.persist(ctx, weeks); err != nil {
		return week.Record{}, err
	}
	m.weeks = weeks
	return updated.Clone(), nil
}

// Delete removes week id and selects the first remaining week.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.delete(ctx, id)
}

func (m *Manager) DeleteSelected(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selectedId == "" {
		return ErrNoSelection
	}
	return m.delete(ctx, m.selectedId)
}

func (m *Manager) delete(ctx context.Context, id string) error {
	i := indexOf(m.weeks, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrWeekNotFound, id)
	}

	weeks := cloneAll(m.weeks)
	weeks = append(weeks[:i], weeks[i+1:]...)
	if err := m.persist(ctx, weeks); err != nil {
		return err
	}
	m.weeks = weeks
	m.selectedId = ""
	if len(weeks) > 0 {
		m.selectedId = weeks[0].Id
	}
	return nil
}

// Export serialises the collection in its current order with two-space indentation.
func (m *Manager) Export() (Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	weeks := m.weeks
	if weeks == nil {
		weeks = []week.Record{}
	}
	data, err := json.MarshalIndent(weeks, "", "  ")
	if err != nil {
		return Document{}, fmt.Errorf("failed to export weeks: %w", err)
	}
	return Document{
		Filename: exportFilename(week.FormatISO(m.clock.Now())),
		Data:     data,
	}, nil
}

// Import replaces the whole collection with the weeks in data, selects the first one and
// returns how many weeks were imported.
// Subscribers of CollectionImportingEvent see the previous collection first and can
// abort the import by returning an error.
func (m *Manager) Import(ctx context.Context, data []byte) (int, error) {
	weeks, err := decodeDocument(data)
	if err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.eventBus != nil {
		importing := event_bus.NewEvent(ctx, event_bus.CollectionImportingEvent, event_bus.CollectionImporting{
			Previous: cloneAll(m.weeks),
			Incoming: len(weeks),
		})
		if err := m.eventBus.Publish(importing); err != nil {
			return 0, fmt.Errorf("import aborted: %w", err)
		}
	}

	if err := m.persist(ctx, weeks); err != nil {
		return 0, err
	}
	m.weeks = weeks
	m.selectedId = ""
	if len(weeks) > 0 {
		m.selectedId = weeks[0].Id
	}
	log.Infof("imported %d weeks", len(weeks))
	return len(weeks), nil
}

func (m *Manager) persist(ctx context.Context, weeks []week.Record) error {
	data, err := encodeDocument(weeks)
	if err != nil {
		return fmt.Errorf("failed to encode weeks: %w", err)
	}
	if err := m.slot.Write(ctx, data); err != nil {
		log.Errorf("failed to persist weeks: %v", err)
		return fmt.Errorf("failed to persist weeks: %w", err)
	}
	return nil
}
