package models

import (
	"fmt"
	"time"

	"github.com/kutbudev/yaru/internal/domain/tag"
	"github.com/kutbudev/yaru/internal/domain/task"
	"gorm.io/datatypes"
)

// Task is the persistence record of a task
type Task struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	Title       string          `gorm:"type:text;not null"`
	Description string          `gorm:"type:text;not null;default:''"`
	Status      string          `gorm:"type:varchar(20);not null;index:idx_tasks_status"`
	Priority    string          `gorm:"type:varchar(20);not null;index:idx_tasks_priority"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime:false"`
	DueDate     *datatypes.Date `gorm:"type:date"`
	CompletedAt *time.Time

	// Tags in attachment order
	TaskTags []TaskTag `gorm:"foreignKey:TaskID"`
}

// TableName specifies the table name for GORM
func (Task) TableName() string {
	return "tasks"
}

// TaskTag links a task to a tag. Deleting a task removes its links; a tag
// that is still linked cannot be deleted.
type TaskTag struct {
	TaskID   int64 `gorm:"primaryKey;autoIncrement:false"`
	TagID    int64 `gorm:"primaryKey;autoIncrement:false;index:idx_task_tags_tag"`
	Position int   `gorm:"not null;default:0"`

	Task *Task `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Tag  *Tag  `gorm:"foreignKey:TagID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for GORM
func (TaskTag) TableName() string {
	return "task_tags"
}

// TaskFromDomain converts a task aggregate into a record. An unassigned
// identifier becomes zero so the database assigns one.
func TaskFromDomain(t *task.Task) *Task {
	rec := &Task{
		Title:       t.Title().Value(),
		Description: t.Description().Value(),
		Status:      t.Status().FilterString(),
		Priority:    t.Priority().FilterString(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
		CompletedAt: t.CompletedAt(),
	}
	if t.ID().IsAssigned() {
		rec.ID = t.ID().Value()
	}
	if due := t.DueDate(); due != nil {
		d := datatypes.Date(due.Time())
		rec.DueDate = &d
	}
	rec.TaskTags = make([]TaskTag, 0, len(t.Tags()))
	for i, id := range t.Tags() {
		rec.TaskTags = append(rec.TaskTags, TaskTag{TaskID: rec.ID, TagID: id.Value(), Position: i})
	}
	return rec
}

// ToDomain rebuilds the aggregate. TaskTags must be loaded in position order.
func (m *Task) ToDomain() (*task.Task, error) {
	id, err := task.NewID(m.ID)
	if err != nil {
		return nil, err
	}
	title, err := task.NewTitle(m.Title)
	if err != nil {
		return nil, fmt.Errorf("task %d: %w", m.ID, err)
	}
	status, err := task.ParseStatusAny(m.Status)
	if err != nil {
		return nil, fmt.Errorf("task %d: %w", m.ID, err)
	}
	priority, err := task.ParsePriorityAny(m.Priority)
	if err != nil {
		return nil, fmt.Errorf("task %d: %w", m.ID, err)
	}
	tags := make([]tag.ID, 0, len(m.TaskTags))
	for _, tt := range m.TaskTags {
		tid, err := tag.NewID(tt.TagID)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tid)
	}
	var due *task.DueDate
	if m.DueDate != nil {
		d := task.DueDateFromTime(time.Time(*m.DueDate))
		due = &d
	}
	return task.Reconstruct(id, title, task.NewDescription(m.Description), status, priority, tags,
		m.CreatedAt, m.UpdatedAt, due, m.CompletedAt), nil
}
