package app

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/kutbudev/yaru/internal/domain/shared"
	"github.com/kutbudev/yaru/internal/domain/tag"
	"github.com/kutbudev/yaru/internal/domain/task"
	"github.com/kutbudev/yaru/internal/models"
	"go.uber.org/zap"
)

// TaskService implements the task use cases.
type TaskService struct {
	tasks task.Repository
	tags  tag.Repository
	log   *zap.Logger
	clock shared.Clock
}

// Add creates a task. Status defaults to pending and priority to medium.
func (s *TaskService) Add(ctx context.Context, in models.CreateTaskInput) (*models.Task, error) {
	title, err := task.NewTitle(in.Title)
	if err != nil {
		return nil, err
	}
	status := task.StatusPending
	if in.Status != "" {
		if status, err = task.ParseStatusAny(in.Status); err != nil {
			return nil, err
		}
	}
	priority := task.PriorityMedium
	if in.Priority != "" {
		if priority, err = task.ParsePriorityAny(in.Priority); err != nil {
			return nil, err
		}
	}
	var due *task.DueDate
	if in.DueDate != "" {
		d, err := task.ParseDueDate(in.DueDate)
		if err != nil {
			return nil, err
		}
		due = &d
	}
	tagIDs, err := s.verifyTags(ctx, in.TagIDs)
	if err != nil {
		return nil, err
	}

	t := task.New(title, task.NewDescription(in.Description), status, priority, tagIDs, due, task.WithClock(s.clock))
	saved, err := s.tasks.Save(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}
	logEvents(s.log, t.PullDomainEvents())
	s.log.Info("task created", zap.Int64("id", saved.ID().Value()))
	return s.toDTO(ctx, saved)
}

// Get returns a single task.
func (s *TaskService) Get(ctx context.Context, id int64) (*models.Task, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDTO(ctx, t)
}

// Edit applies the provided fields. Omitted fields are left unchanged.
func (s *TaskService) Edit(ctx context.Context, id int64, in models.UpdateTaskInput) (*models.Task, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title, err := task.NewTitle(*in.Title)
		if err != nil {
			return nil, err
		}
		t.ChangeTitle(title)
	}
	if in.Description != nil {
		t.ChangeDescription(task.NewDescription(*in.Description))
	}
	if in.Status != nil {
		status, err := task.ParseStatusAny(*in.Status)
		if err != nil {
			return nil, err
		}
		t.ChangeStatus(status)
	}
	if in.Priority != nil {
		priority, err := task.ParsePriorityAny(*in.Priority)
		if err != nil {
			return nil, err
		}
		t.ChangePriority(priority)
	}
	if in.TagIDs != nil {
		tagIDs, err := s.verifyTags(ctx, *in.TagIDs)
		if err != nil {
			return nil, err
		}
		t.ReplaceTags(tagIDs)
	}
	if in.ClearDueDate {
		t.ChangeDueDate(nil)
	} else if in.DueDate != nil {
		d, err := task.ParseDueDate(*in.DueDate)
		if err != nil {
			return nil, err
		}
		t.ChangeDueDate(&d)
	}

	return s.update(ctx, t)
}

// Complete marks a task completed. Completing twice is not an error.
func (s *TaskService) Complete(ctx context.Context, id int64) (*models.Task, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Complete()
	return s.update(ctx, t)
}

// AddTag attaches one tag to a task.
func (s *TaskService) AddTag(ctx context.Context, id, tagID int64) (*models.Task, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	ids, err := s.verifyTags(ctx, []int64{tagID})
	if err != nil {
		return nil, err
	}
	if err := t.AddTag(ids[0]); err != nil {
		return nil, err
	}
	return s.update(ctx, t)
}

// RemoveTag detaches one tag from a task.
func (s *TaskService) RemoveTag(ctx context.Context, id, tagID int64) (*models.Task, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	tid, err := tag.NewID(tagID)
	if err != nil {
		return nil, err
	}
	if err := t.RemoveTag(tid); err != nil {
		return nil, err
	}
	return s.update(ctx, t)
}

// Delete removes a task. Deleting an unknown task is an error.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	tid, err := task.NewID(id)
	if err != nil {
		return err
	}
	removed, err := s.tasks.Delete(ctx, tid)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if !removed {
		return notFound("task", id)
	}
	s.log.Info("task deleted", zap.Int64("id", id))
	return nil
}

// List returns the tasks matching opts.Filters in the requested order.
func (s *TaskService) List(ctx context.Context, opts ListOptions) ([]models.Task, error) {
	spec, err := BuildSpecification(opts.Filters)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, spec, opts.SortBy, opts.Order)
}

// Search returns tasks containing every whitespace-separated keyword of
// query in the selected field, further narrowed by filters.
func (s *TaskService) Search(ctx context.Context, query string, field task.SearchField, filters []string) ([]models.Task, error) {
	keywords := strings.Fields(query)
	if len(keywords) == 0 {
		return nil, shared.NewValidationError("search query cannot be empty")
	}
	spec, err := BuildSpecification(filters)
	if err != nil {
		return nil, err
	}
	return s.find(ctx, task.Of(task.ByKeyword(keywords, field)).And(spec), SortByCreatedAt, OrderAsc)
}

// Overdue returns open tasks whose due date has passed, oldest first.
func (s *TaskService) Overdue(ctx context.Context) ([]models.Task, error) {
	return s.find(ctx, task.Overdue(s.clock), SortByDueDate, OrderAsc)
}

// Board groups every task by status, highest priority first.
func (s *TaskService) Board(ctx context.Context) (*models.Board, error) {
	all, err := s.find(ctx, task.All(), SortByPriority, OrderDesc)
	if err != nil {
		return nil, err
	}
	board := &models.Board{
		Pending:    []models.Task{},
		InProgress: []models.Task{},
		Completed:  []models.Task{},
	}
	for _, t := range all {
		switch t.Status {
		case task.StatusInProgress.FilterString():
			board.InProgress = append(board.InProgress, t)
		case task.StatusCompleted.FilterString():
			board.Completed = append(board.Completed, t)
		default:
			board.Pending = append(board.Pending, t)
		}
	}
	return board, nil
}

func (s *TaskService) find(ctx context.Context, spec task.Specification, key SortKey, order Order) ([]models.Task, error) {
	found, err := s.tasks.FindBySpecification(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	SortTasks(found, key, order)

	names, err := tagNames(ctx, s.tags, collectTagIDs(found))
	if err != nil {
		return nil, err
	}
	out := make([]models.Task, 0, len(found))
	for _, t := range found {
		out = append(out, models.NewTask(t, names))
	}
	return out, nil
}

func (s *TaskService) load(ctx context.Context, id int64) (*task.Task, error) {
	tid, err := task.NewID(id)
	if err != nil {
		return nil, err
	}
	t, err := s.tasks.FindByID(ctx, tid)
	if err != nil {
		return nil, fmt.Errorf("failed to load task: %w", err)
	}
	if t == nil {
		return nil, notFound("task", id)
	}
	t.UseClock(s.clock)
	return t, nil
}

func (s *TaskService) update(ctx context.Context, t *task.Task) (*models.Task, error) {
	updated, err := s.tasks.Update(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	logEvents(s.log, t.PullDomainEvents())
	return s.toDTO(ctx, updated)
}

func (s *TaskService) toDTO(ctx context.Context, t *task.Task) (*models.Task, error) {
	names, err := tagNames(ctx, s.tags, t.Tags())
	if err != nil {
		return nil, err
	}
	dto := models.NewTask(t, names)
	return &dto, nil
}

// verifyTags checks that every requested tag exists and returns the
// identifiers in request order with repeats dropped. FindByIDs omits missing
// identifiers, so absence shows up as a shorter result.
func (s *TaskService) verifyTags(ctx context.Context, raw []int64) ([]tag.ID, error) {
	parsed, err := parseTagIDs(raw)
	if err != nil {
		return nil, err
	}
	ids := make([]tag.ID, 0, len(parsed))
	for _, id := range parsed {
		if !slices.ContainsFunc(ids, id.Equals) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return ids, nil
	}
	found, err := s.tags.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	if len(found) == len(ids) {
		return ids, nil
	}
	sorted := slices.Clone(ids)
	slices.SortFunc(sorted, func(a, b tag.ID) int { return cmp.Compare(a.Value(), b.Value()) })
	var missing []tag.ID
	for _, id := range sorted {
		if !slices.ContainsFunc(found, func(t *tag.Tag) bool { return t.ID().Equals(id) }) {
			missing = append(missing, id)
		}
	}
	return nil, shared.NewValidationError("tag(s) not found: %s", formatIDs(missing))
}
