package models

import (
	"time"
)

// TagInfo is the minimal tag reference shown alongside a task
type TagInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Task represents a task in the system
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status"`   // pending, in_progress, completed
	Priority    string     `json:"priority"` // low, medium, high, critical
	Tags        []TagInfo  `json:"tags"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DueDate     *string    `json:"due_date,omitempty"` // YYYY-MM-DD
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Tag represents a tag in the system
type Tag struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateTaskInput carries the fields for a new task. Empty strings fall back
// to defaults.
type CreateTaskInput struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	TagIDs      []int64 `json:"tags"`
	DueDate     string  `json:"due_date"`
}

// UpdateTaskInput carries a partial update. Nil fields are left unchanged.
type UpdateTaskInput struct {
	Title        *string  `json:"title,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Status       *string  `json:"status,omitempty"`
	Priority     *string  `json:"priority,omitempty"`
	TagIDs       *[]int64 `json:"tags,omitempty"`
	DueDate      *string  `json:"due_date,omitempty"`
	ClearDueDate bool     `json:"clear_due_date,omitempty"`
}

// IsEmpty reports whether the update changes nothing.
func (in UpdateTaskInput) IsEmpty() bool {
	return in.Title == nil && in.Description == nil && in.Status == nil &&
		in.Priority == nil && in.TagIDs == nil && in.DueDate == nil && !in.ClearDueDate
}

// CreateTagInput carries the fields for a new tag
type CreateTagInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateTagInput carries a partial tag update
type UpdateTagInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Stats is the presentation form of the task statistics. Zero counts are
// omitted from the maps.
type Stats struct {
	StatusStats          map[string]int `json:"status_stats"`
	PriorityStats        map[string]int `json:"priority_stats"`
	DueDateStats         map[string]int `json:"due_date_stats"`
	TagStats             map[string]int `json:"tag_stats"`
	PriorityStatusMatrix map[string]int `json:"priority_status_matrix"` // "priority:status"
	TotalCount           int            `json:"total_count"`
}

// Board groups tasks by status for the kanban views
type Board struct {
	Pending    []Task `json:"pending"`
	InProgress []Task `json:"in_progress"`
	Completed  []Task `json:"completed"`
}
