package task

import (
	"time"

	"github.com/kutbudev/yaru/internal/domain/shared"
)

// DateLayout is the textual form of a due date.
const DateLayout = "2006-01-02"

// DueDate is a calendar date without a time component.
type DueDate struct {
	t time.Time
}

// NewDueDate builds a due date. Out-of-range days are rejected rather than normalized.
func NewDueDate(year int, month time.Month, day int) (DueDate, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return DueDate{}, shared.NewValidationError("invalid date: %04d-%02d-%02d", year, int(month), day)
	}
	return DueDate{t: t}, nil
}

// ParseDueDate parses a YYYY-MM-DD date.
func ParseDueDate(s string) (DueDate, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return DueDate{}, shared.NewValidationError("invalid date %q: expected YYYY-MM-DD", s)
	}
	return DueDate{t: t}, nil
}

// DueDateFromTime takes the calendar date of t in its own location.
func DueDateFromTime(t time.Time) DueDate {
	y, m, d := t.Date()
	return DueDate{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Time returns midnight UTC of the date.
func (d DueDate) Time() time.Time {
	return d.t
}

// Before reports whether d is strictly earlier than other.
func (d DueDate) Before(other DueDate) bool {
	return d.t.Before(other.t)
}

// After reports whether d is strictly later than other.
func (d DueDate) After(other DueDate) bool {
	return d.t.After(other.t)
}

// Equal reports whether both dates are the same day.
func (d DueDate) Equal(other DueDate) bool {
	return d.t.Equal(other.t)
}

// AddDays returns the date n days later.
func (d DueDate) AddDays(n int) DueDate {
	return DueDate{t: d.t.AddDate(0, 0, n)}
}

func (d DueDate) String() string {
	return d.t.Format(DateLayout)
}

// DueDateStatus classifies a due date relative to a reference day. It is
// always derived and never stored.
type DueDateStatus int

const (
	DueOverdue DueDateStatus = iota
	DueToday
	DueThisWeek
	NoDueDate
)

// DueDateStatuses lists every bucket in display order.
var DueDateStatuses = []DueDateStatus{DueOverdue, DueToday, DueThisWeek, NoDueDate}

// DueWindowDays is the span of the "this week" bucket.
const DueWindowDays = 7

// ClassifyDueDate returns the bucket for due relative to today. The second
// result is false for dates beyond the weekly window, which belong to no bucket.
func ClassifyDueDate(due *DueDate, today DueDate) (DueDateStatus, bool) {
	switch {
	case due == nil:
		return NoDueDate, true
	case due.Before(today):
		return DueOverdue, true
	case due.Equal(today):
		return DueToday, true
	case !due.After(today.AddDays(DueWindowDays)):
		return DueThisWeek, true
	}
	return 0, false
}

func (s DueDateStatus) String() string {
	switch s {
	case DueOverdue:
		return "Overdue"
	case DueToday:
		return "DueToday"
	case DueThisWeek:
		return "DueThisWeek"
	case NoDueDate:
		return "NoDueDate"
	}
	return "Unknown"
}

// FilterString returns the snake_case spelling.
func (s DueDateStatus) FilterString() string {
	switch s {
	case DueOverdue:
		return "overdue"
	case DueToday:
		return "due_today"
	case DueThisWeek:
		return "due_this_week"
	case NoDueDate:
		return "no_due_date"
	}
	return "unknown"
}
