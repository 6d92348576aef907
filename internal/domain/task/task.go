package task

import (
	"slices"
	"time"

	"github.com/kutbudev/yaru/internal/domain/shared"
	"github.com/kutbudev/yaru/internal/domain/tag"
)

// Task is the aggregate root for a task.
//
// completedAt is set if and only if the status is Completed, updatedAt never
// moves backwards, and the tag list holds no duplicates. Fields change only
// through methods; a method either applies fully or leaves the task untouched.
type Task struct {
	shared.BaseAggregateRoot

	id          ID
	title       Title
	description Description
	status      Status
	priority    Priority
	tags        []tag.ID
	createdAt   time.Time
	updatedAt   time.Time
	dueDate     *DueDate
	completedAt *time.Time

	clock shared.Clock
}

// Option customizes a new task.
type Option func(*Task)

// WithClock overrides the clock used for timestamps.
func WithClock(clock shared.Clock) Option {
	return func(t *Task) {
		t.clock = clock
	}
}

// New creates a task that has not been persisted yet. Duplicate tag
// identifiers are dropped.
func New(title Title, description Description, status Status, priority Priority, tags []tag.ID, dueDate *DueDate, opts ...Option) *Task {
	t := &Task{
		title:       title,
		description: description,
		status:      status,
		priority:    priority,
		tags:        dedupeTags(tags),
		dueDate:     copyDate(dueDate),
		clock:       shared.SystemClock,
	}
	for _, opt := range opts {
		opt(t)
	}
	now := t.clock()
	t.createdAt = now
	t.updatedAt = now
	if status == StatusCompleted {
		t.completedAt = &now
	}
	t.AddDomainEvent(&CreatedEvent{BaseDomainEvent: t.base(EventTypeTaskCreated, now), Title: title.Value()})
	return t
}

// Reconstruct rebuilds a task from stored fields. Values are trusted as-is and
// no events are recorded.
func Reconstruct(
	id ID,
	title Title,
	description Description,
	status Status,
	priority Priority,
	tags []tag.ID,
	createdAt, updatedAt time.Time,
	dueDate *DueDate,
	completedAt *time.Time,
) *Task {
	return &Task{
		id:          id,
		title:       title,
		description: description,
		status:      status,
		priority:    priority,
		tags:        slices.Clone(tags),
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		dueDate:     copyDate(dueDate),
		completedAt: copyTime(completedAt),
		clock:       shared.SystemClock,
	}
}

// WithID returns a copy carrying id. Pending events are not copied.
func (t *Task) WithID(id ID) *Task {
	return &Task{
		id:          id,
		title:       t.title,
		description: t.description,
		status:      t.status,
		priority:    t.priority,
		tags:        slices.Clone(t.tags),
		createdAt:   t.createdAt,
		updatedAt:   t.updatedAt,
		dueDate:     copyDate(t.dueDate),
		completedAt: copyTime(t.completedAt),
		clock:       t.clock,
	}
}

// Complete marks the task completed. Completing a completed task is a no-op.
func (t *Task) Complete() {
	if t.status == StatusCompleted {
		return
	}
	t.ChangeStatus(StatusCompleted)
}

// ChangeStatus sets the status. Entering Completed stamps completedAt;
// any other status clears it.
func (t *Task) ChangeStatus(status Status) {
	wasCompleted := t.status == StatusCompleted
	t.status = status
	t.touch()
	if status != StatusCompleted {
		t.completedAt = nil
		return
	}
	if !wasCompleted {
		at := t.updatedAt
		t.completedAt = &at
		t.AddDomainEvent(&CompletedEvent{BaseDomainEvent: t.base(EventTypeTaskCompleted, at), CompletedAt: at})
	}
}

// ChangeTitle replaces the title
func (t *Task) ChangeTitle(title Title) {
	old := t.title
	t.title = title
	t.touch()
	if old.Value() != title.Value() {
		t.AddDomainEvent(&TitleChangedEvent{
			BaseDomainEvent: t.base(EventTypeTaskTitleChanged, t.updatedAt),
			OldTitle:        old.Value(),
			NewTitle:        title.Value(),
		})
	}
}

// ChangeDescription replaces the description
func (t *Task) ChangeDescription(description Description) {
	t.description = description
	t.touch()
}

// ChangePriority replaces the priority
func (t *Task) ChangePriority(priority Priority) {
	t.priority = priority
	t.touch()
}

// ChangeDueDate sets the due date, or clears it when dueDate is nil.
func (t *Task) ChangeDueDate(dueDate *DueDate) {
	t.dueDate = copyDate(dueDate)
	t.touch()
}

// ReplaceTags replaces the whole tag list. Duplicate identifiers are dropped.
func (t *Task) ReplaceTags(tags []tag.ID) {
	t.tags = dedupeTags(tags)
	t.touch()
}

// AddTag attaches a tag. It fails with ErrDuplicateTag if already attached.
func (t *Task) AddTag(id tag.ID) error {
	if t.HasTag(id) {
		return shared.NewDomainError(shared.CodeDuplicateTag, "tag "+id.String()+" is already attached to the task")
	}
	t.tags = append(t.tags, id)
	t.touch()
	t.AddDomainEvent(&TagAddedEvent{BaseDomainEvent: t.base(EventTypeTagAdded, t.updatedAt), TagID: id})
	return nil
}

// RemoveTag detaches a tag. It fails with ErrTagNotFound if not attached.
func (t *Task) RemoveTag(id tag.ID) error {
	idx := slices.IndexFunc(t.tags, id.Equals)
	if idx < 0 {
		return shared.NewDomainError(shared.CodeTagNotFound, "tag "+id.String()+" is not attached to the task")
	}
	t.tags = slices.Delete(slices.Clone(t.tags), idx, idx+1)
	t.touch()
	t.AddDomainEvent(&TagRemovedEvent{BaseDomainEvent: t.base(EventTypeTagRemoved, t.updatedAt), TagID: id})
	return nil
}

// HasTag reports whether the tag is attached.
func (t *Task) HasTag(id tag.ID) bool {
	return slices.ContainsFunc(t.tags, id.Equals)
}

// IsOverdue reports whether the task is open and its due date is before today.
func (t *Task) IsOverdue(today DueDate) bool {
	return t.status != StatusCompleted && t.dueDate != nil && t.dueDate.Before(today)
}

// DueDateStatus classifies the due date relative to today. The second result
// is false for dates beyond the weekly window.
func (t *Task) DueDateStatus(today DueDate) (DueDateStatus, bool) {
	return ClassifyDueDate(t.dueDate, today)
}

// UseClock replaces the clock used for later mutations.
func (t *Task) UseClock(clock shared.Clock) {
	t.clock = clock
}

func (t *Task) touch() {
	now := t.clock()
	if now.After(t.updatedAt) {
		t.updatedAt = now
	}
}

func (t *Task) ID() ID                   { return t.id }
func (t *Task) Title() Title             { return t.title }
func (t *Task) Description() Description { return t.description }
func (t *Task) Status() Status           { return t.status }
func (t *Task) Priority() Priority       { return t.priority }
func (t *Task) Tags() []tag.ID           { return slices.Clone(t.tags) }
func (t *Task) CreatedAt() time.Time     { return t.createdAt }
func (t *Task) UpdatedAt() time.Time     { return t.updatedAt }
func (t *Task) DueDate() *DueDate        { return copyDate(t.dueDate) }
func (t *Task) CompletedAt() *time.Time  { return copyTime(t.completedAt) }

func dedupeTags(tags []tag.ID) []tag.ID {
	out := make([]tag.ID, 0, len(tags))
	for _, id := range tags {
		if !slices.ContainsFunc(out, id.Equals) {
			out = append(out, id)
		}
	}
	return out
}

func copyDate(d *DueDate) *DueDate {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
