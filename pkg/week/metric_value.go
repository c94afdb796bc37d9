package week

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MetricValue is a single metric cell: either Empty or a Number.
// On the wire Empty is "" and a Number is a JSON number.
type MetricValue struct {
	value float64
	set   bool
}

// Empty returns a cell without an entry.
func Empty() MetricValue {
	return MetricValue{}
}

// Number returns a cell holding v. NaN and infinities are not representable and yield Empty.
func Number(v float64) MetricValue {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Empty()
	}
	return MetricValue{value: v, set: true}
}

// ParseMetricValue reads user input. Blank or non-numeric text is Empty.
func ParseMetricValue(s string) MetricValue {
	s = strings.TrimSpace(s)
	if s == "" {
		return Empty()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Empty()
	}
	return Number(v)
}

func (v MetricValue) IsEmpty() bool {
	return !v.set
}

// Float returns the number and whether the cell holds one.
func (v MetricValue) Float() (float64, bool) {
	return v.value, v.set
}

// OrZero is the cell's contribution to a total.
func (v MetricValue) OrZero() float64 {
	if !v.set {
		return 0
	}
	return v.value
}

func (v MetricValue) String() string {
	if !v.set {
		return ""
	}
	return strconv.FormatFloat(v.value, 'f', -1, 64)
}

func (v MetricValue) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte(`""`), nil
	}
	return []byte(strconv.FormatFloat(v.value, 'f', -1, 64)), nil
}

func (v *MetricValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Empty()
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid metric value %s: %w", data, err)
		}
		*v = ParseMetricValue(s)
		return nil
	case '[', '{', 't', 'f':
		return fmt.Errorf("invalid metric value %s", data)
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("invalid metric value %s: %w", data, err)
	}
	*v = Number(f)
	return nil
}
