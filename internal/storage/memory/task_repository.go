// Package memory provides map-backed repositories guarded by a mutex.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/kutbudev/yaru/internal/domain/shared"
	"github.com/kutbudev/yaru/internal/domain/task"
)

// TaskRepository keeps tasks in process memory.
type TaskRepository struct {
	mu     sync.RWMutex
	tasks  map[int64]*task.Task
	nextID int64
}

// NewTaskRepository creates an empty repository. Identifiers start at 1.
func NewTaskRepository() *TaskRepository {
	return &TaskRepository{
		tasks:  make(map[int64]*task.Task),
		nextID: 1,
	}
}

func (r *TaskRepository) FindByID(ctx context.Context, id task.ID) (*task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id.Value()]
	if !ok || !id.IsAssigned() {
		return nil, nil
	}
	return t.WithID(t.ID()), nil
}

func (r *TaskRepository) FindAll(ctx context.Context) ([]*task.Task, error) {
	return r.FindBySpecification(ctx, task.All())
}

func (r *TaskRepository) FindBySpecification(ctx context.Context, spec task.Specification) ([]*task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*task.Task, 0, len(r.tasks))
	for _, id := range r.sortedIDs() {
		t := r.tasks[id]
		if spec.IsSatisfiedBy(t) {
			out = append(out, t.WithID(t.ID()))
		}
	}
	return out, nil
}

func (r *TaskRepository) Save(ctx context.Context, t *task.Task) (*task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := t
	if !t.ID().IsAssigned() {
		stored = t.WithID(task.MustID(r.nextID))
		r.nextID++
	} else {
		stored = t.WithID(t.ID())
		if t.ID().Value() >= r.nextID {
			r.nextID = t.ID().Value() + 1
		}
	}
	r.tasks[stored.ID().Value()] = stored
	return stored.WithID(stored.ID()), nil
}

func (r *TaskRepository) Update(ctx context.Context, t *task.Task) (*task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[t.ID().Value()]; !ok || !t.ID().IsAssigned() {
		return nil, shared.ErrNotFound
	}
	stored := t.WithID(t.ID())
	r.tasks[stored.ID().Value()] = stored
	return stored.WithID(stored.ID()), nil
}

func (r *TaskRepository) Delete(ctx context.Context, id task.ID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id.Value()]; !ok || !id.IsAssigned() {
		return false, nil
	}
	delete(r.tasks, id.Value())
	return true, nil
}

func (r *TaskRepository) sortedIDs() []int64 {
	ids := make([]int64, 0, len(r.tasks))
	for id := range r.tasks {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
