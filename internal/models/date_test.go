package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-15", d.String())

	d, err = ParseDate("2025-01-15T23:30:00+09:00")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-15", d.String())

	for _, bad := range []string{"", "15/01/2025", "2025-13-01", "tomorrow"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestDate_Compare(t *testing.T) {
	a := NewDate(2025, 1, 31)
	b := a.AddDays(1)

	assert.Equal(t, "2025-02-01", b.String())
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Before(a))
	assert.True(t, a.Equal(DateOf(time.Date(2025, 1, 31, 18, 0, 0, 0, time.Local))))
}

func TestDate_JSON(t *testing.T) {
	type wrapper struct {
		Due Date `json:"due"`
	}

	raw, err := json.Marshal(wrapper{Due: NewDate(2024, 12, 20)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"due":"2024-12-20"}`, string(raw))

	var w wrapper
	require.NoError(t, json.Unmarshal([]byte(`{"due":"2025-02-01"}`), &w))
	assert.True(t, w.Due.Equal(NewDate(2025, 2, 1)))

	assert.Error(t, json.Unmarshal([]byte(`{"due":"soon"}`), &w))
	assert.Error(t, json.Unmarshal([]byte(`{"due":20250201}`), &w))
}

func TestDate_Scan(t *testing.T) {
	var d Date

	require.NoError(t, d.Scan(time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-03-04", d.String())

	require.NoError(t, d.Scan("2025-03-05"))
	assert.Equal(t, "2025-03-05", d.String())

	require.NoError(t, d.Scan([]byte("2025-03-06 00:00:00+00:00")))
	assert.Equal(t, "2025-03-06", d.String())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
	assert.Error(t, d.Scan("not a date"))

	v, err := NewDate(2025, 3, 7).Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-03-07", v)
}

func TestTaskEnums(t *testing.T) {
	for _, s := range TaskStatuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, TaskStatus("done").Valid())

	assert.True(t, TaskPriorityHigh.Valid())
	assert.False(t, TaskPriority("urgent").Valid())

	assert.Less(t, TaskPriorityHigh.Rank(), TaskPriorityMedium.Rank())
	assert.Less(t, TaskPriorityMedium.Rank(), TaskPriorityLow.Rank())
	assert.Less(t, TaskPriorityLow.Rank(), TaskPriority("urgent").Rank())
}
