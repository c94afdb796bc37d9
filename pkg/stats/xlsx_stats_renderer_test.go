package stats

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXlsxStatsRendererImpl_RenderStats(t *testing.T) {
	renderer := NewXlsxStatsRenderer()

	content, err := renderer.RenderStats(testSummary(t))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"2024-06-03"}, f.GetSheetList())

	header, err := f.GetCellValue("2024-06-03", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Habit", header)

	habitName, err := f.GetCellValue("2024-06-03", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Run", habitName)

	completed, err := f.GetCellValue("2024-06-03", "J4")
	require.NoError(t, err)
	assert.Equal(t, "2", completed)

	diff, err := f.GetCellValue("2024-06-03", "K8")
	require.NoError(t, err)
	assert.Equal(t, "+2.50", diff)
}
