package week

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetricValue(t *testing.T) {
	tests := []struct {
		input     string
		wantEmpty bool
		want      float64
	}{
		{"", true, 0},
		{"   ", true, 0},
		{"abc", true, 0},
		{"NaN", true, 0},
		{"10", false, 10},
		{" 3.5 ", false, 3.5},
		{"-2", false, -2},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v := ParseMetricValue(tt.input)
			assert.Equal(t, tt.wantEmpty, v.IsEmpty())
			assert.Equal(t, tt.want, v.OrZero())
		})
	}
}

func TestMetricValue_DecodesLooseCells(t *testing.T) {
	var days [DaysPerWeek]MetricValue

	err := json.Unmarshal([]byte(`["10", "", "abc", 5, "3.5", null]`), &days)

	require.NoError(t, err)
	assert.Equal(t, Number(10), days[0])
	assert.True(t, days[1].IsEmpty())
	assert.True(t, days[2].IsEmpty())
	assert.Equal(t, Number(5), days[3])
	assert.Equal(t, Number(3.5), days[4])
	assert.True(t, days[5].IsEmpty())
	assert.True(t, days[6].IsEmpty(), "missing cells are padded with Empty")
}

func TestMetricValue_Encoding(t *testing.T) {
	data, err := json.Marshal([]MetricValue{Empty(), Number(12), Number(0.25)})

	require.NoError(t, err)
	assert.JSONEq(t, `["", 12, 0.25]`, string(data))
}

func TestMetricValue_RejectsStructuredCells(t *testing.T) {
	var v MetricValue
	assert.Error(t, json.Unmarshal([]byte(`{"value": 1}`), &v))
	assert.Error(t, json.Unmarshal([]byte(`[1]`), &v))
}

func TestHabitDays_AreAlwaysSeven(t *testing.T) {
	var item HabitItem

	err := json.Unmarshal([]byte(`{"id":"h1","days":[true,false,true,true,true,true,true,true,true]}`), &item)

	require.NoError(t, err)
	assert.Equal(t, [DaysPerWeek]bool{true, false, true, true, true, true, true}, item.Days)
}
