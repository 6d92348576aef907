package task

import (
	"strings"
	"unicode/utf8"

	"github.com/kutbudev/yaru/internal/domain/shared"
)

// MaxTitleLength is the maximum title length in characters.
const MaxTitleLength = 100

// Title is a validated task title. The original string is kept as given.
type Title struct {
	value string
}

// NewTitle validates a task title.
func NewTitle(value string) (Title, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Title{}, shared.NewValidationError("title cannot be empty")
	}
	if utf8.RuneCountInString(trimmed) > MaxTitleLength {
		return Title{}, shared.NewValidationError("title cannot exceed %d characters", MaxTitleLength)
	}
	return Title{value: value}, nil
}

// Value returns the title exactly as it was given.
func (t Title) Value() string {
	return t.value
}

func (t Title) String() string {
	return t.value
}
