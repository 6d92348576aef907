package task

import "context"

// Repository defines the persistence contract for tasks. Implementations
// serialize writers per identifier.
type Repository interface {
	// FindByID returns nil without error when the task does not exist.
	FindByID(ctx context.Context, id ID) (*Task, error)
	FindAll(ctx context.Context) ([]*Task, error)
	FindBySpecification(ctx context.Context, spec Specification) ([]*Task, error)
	// Save assigns an identifier when the task has none and returns the
	// stored copy. A task with an identifier is inserted or replaced.
	Save(ctx context.Context, t *Task) (*Task, error)
	// Update fails with shared.ErrNotFound when no record has the task's id.
	Update(ctx context.Context, t *Task) (*Task, error)
	// Delete reports whether a record was removed.
	Delete(ctx context.Context, id ID) (bool, error)
}

// Filter returns the tasks satisfying spec. Adapters without a query
// translation use it to evaluate a specification in memory.
func Filter(tasks []*Task, spec Specification) []*Task {
	out := make([]*Task, 0, len(tasks))
	for _, t := range tasks {
		if spec.IsSatisfiedBy(t) {
			out = append(out, t)
		}
	}
	return out
}
