package task

import "github.com/kutbudev/yaru/internal/domain/shared"

// Priority is ordered Low < Medium < High < Critical.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

// Priorities lists every priority from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// ParsePriority accepts the canonical spelling: Low, Medium, High, Critical.
func ParsePriority(s string) (Priority, error) {
	switch s {
	case "Low":
		return PriorityLow, nil
	case "Medium":
		return PriorityMedium, nil
	case "High":
		return PriorityHigh, nil
	case "Critical":
		return PriorityCritical, nil
	}
	return 0, shared.NewValidationError("invalid priority: %q", s)
}

// ParsePriorityFilter accepts the lowercase spelling.
func ParsePriorityFilter(s string) (Priority, error) {
	switch s {
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	case "critical":
		return PriorityCritical, nil
	}
	return 0, shared.NewValidationError("invalid priority filter: %q", s)
}

// ParsePriorityAny tries the canonical spelling first and then the lowercase one.
func ParsePriorityAny(s string) (Priority, error) {
	if p, err := ParsePriority(s); err == nil {
		return p, nil
	}
	return ParsePriorityFilter(s)
}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityCritical:
		return "Critical"
	}
	return "Unknown"
}

// FilterString returns the lowercase spelling.
func (p Priority) FilterString() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	}
	return "unknown"
}

// IsValid reports whether p is one of the known priorities.
func (p Priority) IsValid() bool {
	return p >= PriorityLow && p <= PriorityCritical
}
