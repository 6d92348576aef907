package tag

import (
	"strings"
	"unicode/utf8"

	"github.com/kutbudev/yaru/internal/domain/shared"
)

// MaxNameLength is the maximum tag name length in characters.
const MaxNameLength = 50

// Name is a validated tag name.
type Name struct {
	value string
}

// NewName validates a tag name. Surrounding whitespace is dropped so that
// lookups by name match what was typed.
func NewName(value string) (Name, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return Name{}, shared.NewValidationError("tag name cannot be empty")
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLength {
		return Name{}, shared.NewValidationError("tag name cannot exceed %d characters", MaxNameLength)
	}
	return Name{value: trimmed}, nil
}

func (n Name) Value() string  { return n.value }
func (n Name) String() string { return n.value }

// Description is optional free text about a tag.
type Description struct {
	value string
}

// NewDescription wraps a tag description. Any string is accepted.
func NewDescription(value string) Description {
	return Description{value: value}
}

func (d Description) Value() string  { return d.value }
func (d Description) IsEmpty() bool  { return d.value == "" }
func (d Description) String() string { return d.value }
