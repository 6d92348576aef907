package task

import (
	"strings"
	"testing"
	"time"

	"github.com/kutbudev/yaru/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTitle(t *testing.T) {
	valid := []string{
		"a",
		"Write report",
		"  padded title  ",
		strings.Repeat("x", 100),
		strings.Repeat("あ", 100),
		"   " + strings.Repeat("y", 100) + "\t",
	}
	for _, v := range valid {
		t.Run("accepts "+shortName(v), func(t *testing.T) {
			title, err := NewTitle(v)
			require.NoError(t, err)
			assert.Equal(t, v, title.Value())
		})
	}

	invalid := []struct {
		name  string
		value string
		msg   string
	}{
		{"empty", "", "cannot be empty"},
		{"whitespace only", " \t\n ", "cannot be empty"},
		{"101 characters", strings.Repeat("x", 101), "cannot exceed 100 characters"},
		{"101 multibyte characters", strings.Repeat("あ", 101), "cannot exceed 100 characters"},
	}
	for _, tt := range invalid {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := NewTitle(tt.value)
			require.Error(t, err)
			assert.ErrorIs(t, err, shared.ErrValidation)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func shortName(s string) string {
	if len([]rune(s)) > 12 {
		return string([]rune(s)[:12]) + "..."
	}
	return s
}

func TestDescription(t *testing.T) {
	assert.True(t, NewDescription("").IsEmpty())
	assert.False(t, NewDescription("notes").IsEmpty())
	assert.Equal(t, "notes", NewDescription("notes").Value())
}

func TestParseStatus(t *testing.T) {
	t.Run("canonical spelling", func(t *testing.T) {
		tests := map[string]Status{
			"Pending":    StatusPending,
			"InProgress": StatusInProgress,
			"Completed":  StatusCompleted,
		}
		for in, want := range tests {
			got, err := ParseStatus(in)
			require.NoError(t, err, in)
			assert.Equal(t, want, got)
			assert.Equal(t, in, got.String())
		}
		_, err := ParseStatus("in_progress")
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("filter spelling", func(t *testing.T) {
		tests := map[string]Status{
			"pending":     StatusPending,
			"todo":        StatusPending,
			"in_progress": StatusInProgress,
			"progress":    StatusInProgress,
			"completed":   StatusCompleted,
			"done":        StatusCompleted,
		}
		for in, want := range tests {
			got, err := ParseStatusFilter(in)
			require.NoError(t, err, in)
			assert.Equal(t, want, got)
		}
		_, err := ParseStatusFilter("InProgress")
		assert.Error(t, err)
		_, err = ParseStatusFilter("invalid")
		assert.Error(t, err)
	})

	t.Run("any spelling resolves to the same variant", func(t *testing.T) {
		a, err := ParseStatusAny("InProgress")
		require.NoError(t, err)
		b, err := ParseStatusAny("in_progress")
		require.NoError(t, err)
		assert.Equal(t, a, b)
		assert.Equal(t, "in_progress", a.FilterString())
	})
}

func TestParsePriority(t *testing.T) {
	for _, p := range Priorities {
		got, err := ParsePriority(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)

		got, err = ParsePriorityFilter(p.FilterString())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := ParsePriority("urgent")
	assert.ErrorIs(t, err, shared.ErrValidation)

	t.Run("ordering", func(t *testing.T) {
		assert.Less(t, PriorityLow, PriorityMedium)
		assert.Less(t, PriorityMedium, PriorityHigh)
		assert.Less(t, PriorityHigh, PriorityCritical)
	})
}

func TestDueDate(t *testing.T) {
	t.Run("parses YYYY-MM-DD", func(t *testing.T) {
		d, err := ParseDueDate("2026-03-15")
		require.NoError(t, err)
		assert.Equal(t, "2026-03-15", d.String())
	})

	t.Run("rejects malformed and impossible dates", func(t *testing.T) {
		for _, s := range []string{"2026/03/15", "15-03-2026", "2026-02-30", ""} {
			_, err := ParseDueDate(s)
			assert.ErrorIs(t, err, shared.ErrValidation, s)
		}
		_, err := NewDueDate(2026, time.February, 30)
		assert.Error(t, err)
	})

	t.Run("past dates are valid", func(t *testing.T) {
		_, err := NewDueDate(1999, time.January, 1)
		assert.NoError(t, err)
	})

	t.Run("drops the time of day", func(t *testing.T) {
		a := DueDateFromTime(time.Date(2026, 5, 1, 23, 59, 0, 0, time.UTC))
		b := DueDateFromTime(time.Date(2026, 5, 1, 0, 1, 0, 0, time.UTC))
		assert.True(t, a.Equal(b))
	})

	t.Run("orders by day", func(t *testing.T) {
		d, _ := NewDueDate(2026, 5, 1)
		assert.True(t, d.Before(d.AddDays(1)))
		assert.True(t, d.AddDays(1).After(d))
		assert.False(t, d.Before(d))
	})
}

func TestClassifyDueDate(t *testing.T) {
	today, _ := NewDueDate(2026, time.June, 10)
	date := func(offset int) *DueDate {
		d := today.AddDays(offset)
		return &d
	}

	tests := []struct {
		name   string
		due    *DueDate
		want   DueDateStatus
		inWeek bool
	}{
		{"yesterday", date(-1), DueOverdue, true},
		{"today", date(0), DueToday, true},
		{"tomorrow", date(1), DueThisWeek, true},
		{"seven days out", date(7), DueThisWeek, true},
		{"eight days out", date(8), 0, false},
		{"no date", nil, NoDueDate, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ClassifyDueDate(tt.due, today)
			assert.Equal(t, tt.inWeek, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
