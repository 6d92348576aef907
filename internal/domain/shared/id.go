package shared

import (
	"fmt"
	"strconv"
)

// ID is an aggregate identifier that is either unassigned or carries a
// persistence-assigned value. The zero value is unassigned.
type ID struct {
	value    int64
	assigned bool
}

// Unassigned returns the identifier of an aggregate that was never persisted.
func Unassigned() ID {
	return ID{}
}

// NewID creates an assigned identifier.
func NewID(value int64) (ID, error) {
	if value < 0 {
		return ID{}, NewDomainError(CodeInvalidIdentifier, fmt.Sprintf("identifier must be non-negative, got %d", value))
	}
	return ID{value: value, assigned: true}, nil
}

// MustID is NewID for values already known to be valid, such as database keys.
func MustID(value int64) ID {
	id, err := NewID(value)
	if err != nil {
		panic(err)
	}
	return id
}

// ParseID parses a decimal identifier.
func ParseID(s string) (ID, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return ID{}, NewDomainError(CodeInvalidIdentifier, fmt.Sprintf("invalid identifier %q", s))
	}
	return NewID(n)
}

// Value returns the wrapped value. It is 0 for an unassigned identifier.
func (id ID) Value() int64 {
	return id.value
}

// IsAssigned reports whether a real identifier is present.
func (id ID) IsAssigned() bool {
	return id.assigned
}

// Equals compares identifiers by state and value.
func (id ID) Equals(other ID) bool {
	return id == other
}

func (id ID) String() string {
	if !id.assigned {
		return "unassigned"
	}
	return strconv.FormatInt(id.value, 10)
}
