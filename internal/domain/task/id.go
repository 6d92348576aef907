package task

import "github.com/kutbudev/yaru/internal/domain/shared"

// ID identifies a task.
type ID struct {
	shared.ID
}

// NewID creates an assigned task identifier.
func NewID(value int64) (ID, error) {
	id, err := shared.NewID(value)
	if err != nil {
		return ID{}, err
	}
	return ID{id}, nil
}

// MustID panics on negative values. Intended for keys read back from storage.
func MustID(value int64) ID {
	return ID{shared.MustID(value)}
}

// ParseID parses a decimal task identifier.
func ParseID(s string) (ID, error) {
	id, err := shared.ParseID(s)
	if err != nil {
		return ID{}, err
	}
	return ID{id}, nil
}

// Equals compares two task identifiers.
func (id ID) Equals(other ID) bool {
	return id.ID.Equals(other.ID)
}
