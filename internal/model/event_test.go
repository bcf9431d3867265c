package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestFormatDateRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end *time.Time
		want       string
	}{
		{name: "no start", want: "Date TBD"},
		{name: "single day", start: date(2025, 4, 11), want: "Apr 11, 2025"},
		{name: "same day", start: date(2025, 4, 11), end: date(2025, 4, 11), want: "Apr 11, 2025"},
		{name: "same month", start: date(2025, 4, 11), end: date(2025, 4, 13), want: "Apr 11 - 13, 2025"},
		{name: "same year", start: date(2025, 4, 28), end: date(2025, 5, 2), want: "Apr 28 - May 2, 2025"},
		{name: "across years", start: date(2025, 12, 30), end: date(2026, 1, 2), want: "Dec 30, 2025 - Jan 2, 2026"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatDateRange(tt.start, tt.end))
		})
	}
}

func TestEventJSON(t *testing.T) {
	e := EventInfo{Name: "EDC", Date: "May", Location: "Las Vegas", StartTime: "19:00", StartDate: date(2025, 5, 16)}
	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"startTime":"19:00"`)
	assert.Contains(t, string(data), `"startDate":"2025-05-16T00:00:00Z"`)
	assert.NotContains(t, string(data), "endDate")

	var back EventInfo
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, e.Equal(back))

	var bad EventInfo
	assert.Error(t, json.Unmarshal([]byte(`{"startDate":"soon"}`), &bad))
}

func TestEventCloneAndEqual(t *testing.T) {
	e := EventInfo{Name: "A", StartDate: date(2025, 1, 1)}
	c := e.Clone()
	require.True(t, e.Equal(c))

	*c.StartDate = c.StartDate.AddDate(0, 0, 1)
	assert.False(t, e.Equal(c))
	assert.False(t, e.Equal(EventInfo{Name: "A"}))
	assert.True(t, DefaultEvent().Equal(DefaultEvent()))
}
