package shared

import "time"

// Clock returns the current time.
type Clock func() time.Time

// SystemClock is the wall clock in UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}

// BaseAggregateRoot holds the pending domain events of an aggregate.
// Events are appended by aggregate methods and drained by the caller once
// the aggregate has been persisted.
type BaseAggregateRoot struct {
	domainEvents []DomainEvent
}

// AddDomainEvent appends an event to the pending list
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.domainEvents = append(a.domainEvents, event)
}

// DomainEvents returns a copy of the pending events
func (a *BaseAggregateRoot) DomainEvents() []DomainEvent {
	out := make([]DomainEvent, len(a.domainEvents))
	copy(out, a.domainEvents)
	return out
}

// ClearDomainEvents clears the pending domain events
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.domainEvents = nil
}

// PullDomainEvents returns the pending events and clears the list
func (a *BaseAggregateRoot) PullDomainEvents() []DomainEvent {
	events := a.domainEvents
	a.domainEvents = nil
	return events
}
