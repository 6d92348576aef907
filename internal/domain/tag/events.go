package tag

import (
	"time"

	"github.com/kutbudev/yaru/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeTag = "Tag"

// Event type constants
const (
	EventTypeTagCreated = "TagCreated"
	EventTypeTagRenamed = "TagRenamed"
)

// CreatedEvent is recorded when a tag is created
type CreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// RenamedEvent is recorded when a tag name changes
type RenamedEvent struct {
	shared.BaseDomainEvent
	OldName string `json:"old_name"`
	NewName string `json:"new_name"`
}

func newCreatedEvent(t *Tag, at time.Time) *CreatedEvent {
	return &CreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTagCreated, AggregateTypeTag, t.id.ID, at),
		Name:            t.name.Value(),
	}
}

func newRenamedEvent(t *Tag, oldName Name, at time.Time) *RenamedEvent {
	return &RenamedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTagRenamed, AggregateTypeTag, t.id.ID, at),
		OldName:         oldName.Value(),
		NewName:         t.name.Value(),
	}
}
