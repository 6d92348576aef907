package task

import "github.com/kutbudev/yaru/internal/domain/shared"

// Status is the lifecycle state of a task.
type Status int

const (
	StatusPending Status = iota
	StatusInProgress
	StatusCompleted
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

// ParseStatus accepts the canonical spelling: Pending, InProgress, Completed.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "Pending":
		return StatusPending, nil
	case "InProgress":
		return StatusInProgress, nil
	case "Completed":
		return StatusCompleted, nil
	}
	return 0, shared.NewValidationError("invalid status: %q", s)
}

// ParseStatusFilter accepts the lowercase filter spelling used on the command line.
func ParseStatusFilter(s string) (Status, error) {
	switch s {
	case "pending", "todo":
		return StatusPending, nil
	case "in_progress", "progress":
		return StatusInProgress, nil
	case "completed", "done":
		return StatusCompleted, nil
	}
	return 0, shared.NewValidationError("invalid status filter: %q", s)
}

// ParseStatusAny tries the canonical spelling first and then the filter one.
func ParseStatusAny(s string) (Status, error) {
	if status, err := ParseStatus(s); err == nil {
		return status, nil
	}
	return ParseStatusFilter(s)
}

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "InProgress"
	case StatusCompleted:
		return "Completed"
	}
	return "Unknown"
}

// FilterString returns the lowercase snake_case spelling.
func (s Status) FilterString() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	}
	return "unknown"
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	return s >= StatusPending && s <= StatusCompleted
}
