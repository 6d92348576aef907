package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/kutbudev/yaru/internal/domain/shared"
	"github.com/kutbudev/yaru/internal/domain/task"
	"github.com/kutbudev/yaru/pkg/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TaskRepository implements task.Repository with GORM
type TaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

var _ task.Repository = (*TaskRepository)(nil)

func (r *TaskRepository) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("TaskTags", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

// FindByID returns nil when the task does not exist
func (r *TaskRepository) FindByID(ctx context.Context, id task.ID) (*task.Task, error) {
	if !id.IsAssigned() {
		return nil, nil
	}
	var rec models.Task
	if err := r.query(ctx).First(&rec, "id = ?", id.Value()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return rec.ToDomain()
}

// FindAll returns every task ordered by identifier
func (r *TaskRepository) FindAll(ctx context.Context) ([]*task.Task, error) {
	var recs []models.Task
	if err := r.query(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	out := make([]*task.Task, 0, len(recs))
	for i := range recs {
		t, err := recs[i].ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// FindBySpecification evaluates spec over every stored task.
func (r *TaskRepository) FindBySpecification(ctx context.Context, spec task.Specification) ([]*task.Task, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return task.Filter(all, spec), nil
}

// Save inserts a new task or replaces an existing one
func (r *TaskRepository) Save(ctx context.Context, t *task.Task) (*task.Task, error) {
	rec := models.TaskFromDomain(t)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists := false
		if t.ID().IsAssigned() {
			var err error
			if exists, err = taskExists(tx, rec.ID); err != nil {
				return err
			}
		}
		return writeTask(tx, rec, exists)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save task: %w", taskConflict(err))
	}
	return rec.ToDomain()
}

// Update replaces an existing task
func (r *TaskRepository) Update(ctx context.Context, t *task.Task) (*task.Task, error) {
	if !t.ID().IsAssigned() {
		return nil, shared.ErrNotFound
	}
	rec := models.TaskFromDomain(t)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := taskExists(tx, rec.ID)
		if err != nil {
			return err
		}
		if !exists {
			return shared.ErrNotFound
		}
		return writeTask(tx, rec, true)
	})
	if errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", taskConflict(err))
	}
	return rec.ToDomain()
}

// Delete removes a task and its tag links
func (r *TaskRepository) Delete(ctx context.Context, id task.ID) (bool, error) {
	if !id.IsAssigned() {
		return false, nil
	}
	var removed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id.Value()).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Task{}, "id = ?", id.Value())
		removed = res.RowsAffected > 0
		return res.Error
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	return removed, nil
}

func taskExists(tx *gorm.DB, id int64) (bool, error) {
	var count int64
	if err := tx.Model(&models.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// writeTask stores rec and rewrites its tag links.
func writeTask(tx *gorm.DB, rec *models.Task, exists bool) error {
	links := rec.TaskTags
	if exists {
		if err := tx.Omit(clause.Associations).Save(rec).Error; err != nil {
			return err
		}
	} else if err := tx.Omit(clause.Associations).Create(rec).Error; err != nil {
		return err
	}

	if err := tx.Where("task_id = ?", rec.ID).Delete(&models.TaskTag{}).Error; err != nil {
		return err
	}
	for i := range links {
		links[i].TaskID = rec.ID
	}
	if len(links) > 0 {
		if err := tx.Omit(clause.Associations).Create(&links).Error; err != nil {
			return err
		}
	}
	rec.TaskTags = links
	return nil
}
