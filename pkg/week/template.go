package week

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	log "github.com/sirupsen/logrus"
)

//go:embed template.toml
var defaultTemplate []byte

var ErrInvalidTemplate = errors.New("invalid week template")

// Template holds the default content of a freshly created week.
type Template struct {
	BigEvents       []string           `toml:"big_events"`
	HabitCategories []CategoryTemplate `toml:"habit_categories"`
	Metrics         []MetricTemplate   `toml:"metrics"`
}

type CategoryTemplate struct {
	Name  string          `toml:"name"`
	Items []HabitTemplate `toml:"items"`
}

type HabitTemplate struct {
	Name   string `toml:"name"`
	Target int    `toml:"target"`
}

type MetricTemplate struct {
	Name   string  `toml:"name"`
	Target float64 `toml:"target"`
}

// DefaultTemplate returns the built-in template.
func DefaultTemplate() Template {
	tmpl, err := parseTemplate(defaultTemplate)
	if err != nil {
		// the embedded file is part of the binary
		panic(err)
	}
	return tmpl
}

// LoadTemplate reads a TOML template from path. An empty path selects the built-in one.
func LoadTemplate(path string) (Template, error) {
	if path == "" {
		return DefaultTemplate(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Template{}, fmt.Errorf("failed to read week template: %w", err)
	}
	tmpl, err := parseTemplate(data)
	if err != nil {
		return Template{}, err
	}
	log.Infof("Loaded week template from file: %s", path)
	return tmpl, nil
}

func parseTemplate(data []byte) (Template, error) {
	var tmpl Template
	if err := toml.Unmarshal(data, &tmpl); err != nil {
		return Template{}, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	for _, category := range tmpl.HabitCategories {
		for _, item := range category.Items {
			if item.Target < 0 {
				return Template{}, fmt.Errorf("%w: habit %q has a negative target", ErrInvalidTemplate, item.Name)
			}
		}
	}
	return tmpl, nil
}

// NewDefault builds the week containing referenceDate from the template.
// Any date of the same week yields the same Id, StartDate and EndDate.
func NewDefault(referenceDate time.Time, tmpl Template) Record {
	monday := MondayOf(referenceDate)
	sunday := monday.AddDate(0, 0, DaysPerWeek-1)

	record := Record{
		Id:        FormatISO(monday),
		Title:     strconv.Itoa(int(monday.Month())) + "月-周计划复盘 (" + FormatShort(monday) + "-" + FormatShort(sunday) + ")",
		StartDate: FormatISO(monday),
		EndDate:   FormatISO(sunday),
	}

	record.BigEvents = make([]BigEvent, 0, len(tmpl.BigEvents))
	for _, eventType := range tmpl.BigEvents {
		record.BigEvents = append(record.BigEvents, BigEvent{Id: newItemId(), Type: eventType})
	}

	record.HabitCategories = make([]HabitCategory, 0, len(tmpl.HabitCategories))
	for _, category := range tmpl.HabitCategories {
		items := make([]HabitItem, 0, len(category.Items))
		for _, habit := range category.Items {
			items = append(items, HabitItem{Id: newItemId(), Name: habit.Name, Target: habit.Target})
		}
		record.HabitCategories = append(record.HabitCategories, HabitCategory{Name: category.Name, Items: items})
	}

	record.Metrics = make([]MetricItem, 0, len(tmpl.Metrics))
	for _, metric := range tmpl.Metrics {
		// the zero MetricValue is Empty, so Days needs no initialisation
		record.Metrics = append(record.Metrics, MetricItem{Id: newItemId(), Name: metric.Name, Target: metric.Target})
	}

	return record
}

func newItemId() string {
	return uuid.NewString()
}
