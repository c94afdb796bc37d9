package week

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefault(t *testing.T) {
	record := NewDefault(time.Date(2024, 6, 5, 10, 0, 0, 0, time.UTC), DefaultTemplate())

	assert.Equal(t, "2024-06-03", record.Id)
	assert.Equal(t, "2024-06-03", record.StartDate)
	assert.Equal(t, "2024-06-09", record.EndDate)
	assert.Equal(t, "6月-周计划复盘 (6.3-6.9)", record.Title)

	require.Len(t, record.BigEvents, 3)
	assert.Equal(t, "一件必须要做的事情", record.BigEvents[0].Type)
	assert.Equal(t, "一件尝试要做的事情", record.BigEvents[1].Type)
	assert.Equal(t, "一件坚持要做的事情", record.BigEvents[2].Type)
	for _, event := range record.BigEvents {
		assert.Empty(t, event.Content)
		assert.Empty(t, event.Status)
	}

	require.Len(t, record.HabitCategories, 3)
	assert.Equal(t, "日常生活", record.HabitCategories[0].Name)
	assert.Len(t, record.HabitCategories[0].Items, 4)
	assert.Equal(t, "工作学习", record.HabitCategories[1].Name)
	assert.Len(t, record.HabitCategories[1].Items, 3)
	assert.Equal(t, "健康运动", record.HabitCategories[2].Name)
	assert.Len(t, record.HabitCategories[2].Items, 2)
	water := record.HabitCategories[0].Items[3]
	assert.Equal(t, "喝水", water.Name)
	assert.Equal(t, 3, water.Target)
	assert.Equal(t, [DaysPerWeek]bool{}, water.Days)

	require.Len(t, record.Metrics, 3)
	assert.Equal(t, "见客户", record.Metrics[0].Name)
	assert.Equal(t, 20.0, record.Metrics[0].Target)
	assert.Equal(t, 200.0, record.Metrics[1].Target)
	assert.Equal(t, "支出", record.Metrics[2].Name)
	assert.Equal(t, 1000.0, record.Metrics[2].Target)
	for _, day := range record.Metrics[2].Days {
		assert.True(t, day.IsEmpty())
	}

	assert.Equal(t, Review{}, record.Review)
}

func TestNewDefault_SameWeekSameIdentity(t *testing.T) {
	tmpl := DefaultTemplate()
	reference := NewDefault(time.Date(2024, 12, 30, 0, 0, 0, 0, time.UTC), tmpl)

	for i := 1; i < DaysPerWeek; i++ {
		record := NewDefault(time.Date(2024, 12, 30+i, 18, 30, 0, 0, time.UTC), tmpl)
		assert.Equal(t, reference.Id, record.Id)
		assert.Equal(t, reference.StartDate, record.StartDate)
		assert.Equal(t, reference.EndDate, record.EndDate)
	}
	assert.Equal(t, "12月-周计划复盘 (12.30-1.5)", reference.Title)
}

func TestNewDefault_ItemIdsAreUnique(t *testing.T) {
	record := NewDefault(time.Now(), DefaultTemplate())

	seen := map[string]bool{}
	check := func(id string) {
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	for _, event := range record.BigEvents {
		check(event.Id)
	}
	for _, category := range record.HabitCategories {
		for _, item := range category.Items {
			check(item.Id)
		}
	}
	for _, metric := range record.Metrics {
		check(metric.Id)
	}
	assert.Len(t, seen, 3+9+3)
}

func TestLoadTemplate(t *testing.T) {
	t.Run("empty path selects the built-in template", func(t *testing.T) {
		tmpl, err := LoadTemplate("")
		require.NoError(t, err)
		assert.Equal(t, DefaultTemplate(), tmpl)
	})

	t.Run("reads a custom template", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "template.toml")
		content := `big_events = ["must"]

[[habit_categories]]
name = "Health"

  [[habit_categories.items]]
  name = "Run"
  target = 2

[[metrics]]
name = "Pages read"
target = 150.5
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		tmpl, err := LoadTemplate(path)

		require.NoError(t, err)
		record := NewDefault(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), tmpl)
		require.Len(t, record.BigEvents, 1)
		assert.Equal(t, "must", record.BigEvents[0].Type)
		require.Len(t, record.HabitCategories, 1)
		assert.Equal(t, "Run", record.HabitCategories[0].Items[0].Name)
		assert.Equal(t, 2, record.HabitCategories[0].Items[0].Target)
		assert.Equal(t, 150.5, record.Metrics[0].Target)
	})

	t.Run("rejects malformed toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "template.toml")
		require.NoError(t, os.WriteFile(path, []byte("big_events = ["), 0o644))

		_, err := LoadTemplate(path)

		assert.ErrorIs(t, err, ErrInvalidTemplate)
	})

	t.Run("rejects negative targets", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "template.toml")
		content := "[[habit_categories]]\nname = \"x\"\n[[habit_categories.items]]\nname = \"y\"\ntarget = -1\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		_, err := LoadTemplate(path)

		assert.ErrorIs(t, err, ErrInvalidTemplate)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTemplate(filepath.Join(t.TempDir(), "missing.toml"))
		assert.Error(t, err)
	})
}
