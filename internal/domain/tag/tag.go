package tag

import (
	"time"

	"github.com/kutbudev/yaru/internal/domain/shared"
)

// Tag is the aggregate root for a tag
type Tag struct {
	shared.BaseAggregateRoot

	id          ID
	name        Name
	description Description
	createdAt   time.Time
	updatedAt   time.Time

	clock shared.Clock
}

// Option customizes a new tag.
type Option func(*Tag)

// WithClock overrides the clock used for timestamps.
func WithClock(clock shared.Clock) Option {
	return func(t *Tag) {
		t.clock = clock
	}
}

// New creates a tag that has not been persisted yet.
func New(name Name, description Description, opts ...Option) *Tag {
	t := &Tag{
		name:        name,
		description: description,
		clock:       shared.SystemClock,
	}
	for _, opt := range opts {
		opt(t)
	}
	now := t.clock()
	t.createdAt = now
	t.updatedAt = now
	t.AddDomainEvent(newCreatedEvent(t, now))
	return t
}

// Reconstruct rebuilds a tag from stored fields without validation or events.
func Reconstruct(id ID, name Name, description Description, createdAt, updatedAt time.Time) *Tag {
	return &Tag{
		id:          id,
		name:        name,
		description: description,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		clock:       shared.SystemClock,
	}
}

// WithID returns a copy carrying id. Pending events are not copied.
func (t *Tag) WithID(id ID) *Tag {
	return &Tag{
		id:          id,
		name:        t.name,
		description: t.description,
		createdAt:   t.createdAt,
		updatedAt:   t.updatedAt,
		clock:       t.clock,
	}
}

// ChangeName renames the tag
func (t *Tag) ChangeName(name Name) {
	old := t.name
	t.name = name
	t.touch()
	if old != name {
		t.AddDomainEvent(newRenamedEvent(t, old, t.updatedAt))
	}
}

// ChangeDescription replaces the description
func (t *Tag) ChangeDescription(description Description) {
	t.description = description
	t.touch()
}

// UseClock replaces the clock used for later mutations.
func (t *Tag) UseClock(clock shared.Clock) {
	t.clock = clock
}

func (t *Tag) touch() {
	now := t.clock()
	if now.After(t.updatedAt) {
		t.updatedAt = now
	}
}

func (t *Tag) ID() ID                   { return t.id }
func (t *Tag) Name() Name               { return t.name }
func (t *Tag) Description() Description { return t.description }
func (t *Tag) CreatedAt() time.Time     { return t.createdAt }
func (t *Tag) UpdatedAt() time.Time     { return t.updatedAt }
