package jsonfile

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/kutbudev/yaru/internal/domain/shared"
	"github.com/kutbudev/yaru/internal/domain/tag"
	"github.com/kutbudev/yaru/internal/domain/task"
)

// TaskRepository implements task.Repository over a Store.
type TaskRepository struct {
	store *Store
}

var _ task.Repository = (*TaskRepository)(nil)

func (r *TaskRepository) FindByID(ctx context.Context, id task.ID) (*task.Task, error) {
	if !id.IsAssigned() {
		return nil, nil
	}
	var (
		rec taskRecord
		ok  bool
	)
	r.store.read(func() { rec, ok = r.store.tasks[id.Value()] })
	if !ok {
		return nil, nil
	}
	return rec.toDomain()
}

func (r *TaskRepository) FindAll(ctx context.Context) ([]*task.Task, error) {
	return r.FindBySpecification(ctx, task.All())
}

func (r *TaskRepository) FindBySpecification(ctx context.Context, spec task.Specification) ([]*task.Task, error) {
	var recs []taskRecord
	r.store.read(func() {
		for _, id := range slices.Sorted(maps.Keys(r.store.tasks)) {
			recs = append(recs, r.store.tasks[id])
		}
	})
	out := make([]*task.Task, 0, len(recs))
	for _, rec := range recs {
		t, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		if spec.IsSatisfiedBy(t) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *TaskRepository) Save(ctx context.Context, t *task.Task) (*task.Task, error) {
	rec := newTaskRecord(t)
	err := r.store.mutate(func() error {
		if err := r.checkTags(rec.Tags); err != nil {
			return err
		}
		if !t.ID().IsAssigned() {
			rec.ID = r.store.nextTaskID
			r.store.nextTaskID++
		} else if rec.ID >= r.store.nextTaskID {
			r.store.nextTaskID = rec.ID + 1
		}
		r.store.tasks[rec.ID] = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec.toDomain()
}

func (r *TaskRepository) Update(ctx context.Context, t *task.Task) (*task.Task, error) {
	rec := newTaskRecord(t)
	err := r.store.mutate(func() error {
		if _, ok := r.store.tasks[rec.ID]; !ok || !t.ID().IsAssigned() {
			return shared.ErrNotFound
		}
		if err := r.checkTags(rec.Tags); err != nil {
			return err
		}
		r.store.tasks[rec.ID] = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec.toDomain()
}

func (r *TaskRepository) Delete(ctx context.Context, id task.ID) (bool, error) {
	removed := false
	err := r.store.mutate(func() error {
		if _, ok := r.store.tasks[id.Value()]; ok && id.IsAssigned() {
			delete(r.store.tasks, id.Value())
			removed = true
		}
		return nil
	})
	return removed, err
}

// checkTags rejects links to tags the store does not hold.
func (r *TaskRepository) checkTags(ids []int64) error {
	for _, id := range ids {
		if _, ok := r.store.tags[id]; !ok {
			return shared.NewValidationError("tag %d does not exist", id)
		}
	}
	return nil
}

func newTaskRecord(t *task.Task) taskRecord {
	rec := taskRecord{
		ID:          t.ID().Value(),
		Title:       t.Title().Value(),
		Description: t.Description().Value(),
		Status:      t.Status().FilterString(),
		Priority:    t.Priority().FilterString(),
		Tags:        make([]int64, 0, len(t.Tags())),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
		CompletedAt: t.CompletedAt(),
	}
	for _, id := range t.Tags() {
		rec.Tags = append(rec.Tags, id.Value())
	}
	if due := t.DueDate(); due != nil {
		rec.DueDate = due.String()
	}
	return rec
}

func (rec taskRecord) toDomain() (*task.Task, error) {
	id, err := task.NewID(rec.ID)
	if err != nil {
		return nil, err
	}
	title, err := task.NewTitle(rec.Title)
	if err != nil {
		return nil, fmt.Errorf("task %d: %w", rec.ID, err)
	}
	status, err := task.ParseStatusAny(rec.Status)
	if err != nil {
		return nil, fmt.Errorf("task %d: %w", rec.ID, err)
	}
	priority, err := task.ParsePriorityAny(rec.Priority)
	if err != nil {
		return nil, fmt.Errorf("task %d: %w", rec.ID, err)
	}
	tags := make([]tag.ID, 0, len(rec.Tags))
	for _, v := range rec.Tags {
		tid, err := tag.NewID(v)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tid)
	}
	var due *task.DueDate
	if rec.DueDate != "" {
		d, err := task.ParseDueDate(rec.DueDate)
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", rec.ID, err)
		}
		due = &d
	}
	return task.Reconstruct(id, title, task.NewDescription(rec.Description), status, priority, tags,
		rec.CreatedAt, rec.UpdatedAt, due, rec.CompletedAt), nil
}
