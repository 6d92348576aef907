package task

import (
	"time"

	"github.com/kutbudev/yaru/internal/domain/shared"
	"github.com/kutbudev/yaru/internal/domain/tag"
)

// Aggregate type constant
const AggregateTypeTask = "Task"

// Event type constants
const (
	EventTypeTaskCreated      = "TaskCreated"
	EventTypeTaskCompleted    = "TaskCompleted"
	EventTypeTaskTitleChanged = "TaskTitleChanged"
	EventTypeTagAdded         = "TagAddedToTask"
	EventTypeTagRemoved       = "TagRemovedFromTask"
)

// CreatedEvent is recorded when a task is created
type CreatedEvent struct {
	shared.BaseDomainEvent
	Title string `json:"title"`
}

// CompletedEvent is recorded when a task transitions to Completed
type CompletedEvent struct {
	shared.BaseDomainEvent
	CompletedAt time.Time `json:"completed_at"`
}

// TitleChangedEvent is recorded when a task title changes
type TitleChangedEvent struct {
	shared.BaseDomainEvent
	OldTitle string `json:"old_title"`
	NewTitle string `json:"new_title"`
}

// TagAddedEvent is recorded when a tag is attached to a task
type TagAddedEvent struct {
	shared.BaseDomainEvent
	TagID tag.ID `json:"-"`
}

// TagRemovedEvent is recorded when a tag is detached from a task
type TagRemovedEvent struct {
	shared.BaseDomainEvent
	TagID tag.ID `json:"-"`
}

func (t *Task) base(eventType string, at time.Time) shared.BaseDomainEvent {
	return shared.NewBaseDomainEvent(eventType, AggregateTypeTask, t.id.ID, at)
}
