package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kutbudev/yaru/internal/app"
	"github.com/kutbudev/yaru/internal/domain/task"
	"github.com/kutbudev/yaru/internal/models"
)

// ListTasks retrieves tasks. Query: filter (repeatable), sort, order.
func (h *Handler) ListTasks(c *gin.Context) {
	sortBy, err := app.ParseSortKey(c.Query("sort"))
	if err != nil {
		respondError(c, err)
		return
	}
	order, err := app.ParseOrder(c.Query("order"))
	if err != nil {
		respondError(c, err)
		return
	}
	tasks, err := h.services.Tasks.List(c.Request.Context(), app.ListOptions{
		Filters: c.QueryArray("filter"),
		SortBy:  sortBy,
		Order:   order,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// SearchTasks runs a keyword search. Query: q, field, filter (repeatable).
func (h *Handler) SearchTasks(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}
	field, err := task.ParseSearchField(c.Query("field"))
	if err != nil {
		respondError(c, err)
		return
	}
	tasks, err := h.services.Tasks.Search(c.Request.Context(), query, field, c.QueryArray("filter"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// OverdueTasks lists overdue tasks.
func (h *Handler) OverdueTasks(c *gin.Context) {
	tasks, err := h.services.Tasks.Overdue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// CreateTask creates a new task.
func (h *Handler) CreateTask(c *gin.Context) {
	var input models.CreateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.services.Tasks.Add(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetTask retrieves a single task by its ID.
func (h *Handler) GetTask(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	t, err := h.services.Tasks.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// UpdateTask applies a partial update.
func (h *Handler) UpdateTask(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input models.UpdateTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no update fields provided"})
		return
	}

	updated, err := h.services.Tasks.Edit(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// SetTaskStatusInput DTO for updating a task's status
type SetTaskStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// SetTaskStatus updates the status of a task. Completing goes through the
// completion path so completed_at is stamped.
func (h *Handler) SetTaskStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input SetTaskStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, err := task.ParseStatusAny(input.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	var updated *models.Task
	if status == task.StatusCompleted {
		updated, err = h.services.Tasks.Complete(c.Request.Context(), id)
	} else {
		s := status.FilterString()
		updated, err = h.services.Tasks.Edit(c.Request.Context(), id, models.UpdateTaskInput{Status: &s})
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// AddTaskTag attaches a tag to a task.
func (h *Handler) AddTaskTag(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	tagID, ok := paramID(c, "tagId")
	if !ok {
		return
	}
	updated, err := h.services.Tasks.AddTag(c.Request.Context(), id, tagID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// RemoveTaskTag detaches a tag from a task.
func (h *Handler) RemoveTaskTag(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	tagID, ok := paramID(c, "tagId")
	if !ok {
		return
	}
	updated, err := h.services.Tasks.RemoveTag(c.Request.Context(), id, tagID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteTask deletes a task.
func (h *Handler) DeleteTask(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Tasks.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// Board groups tasks by status.
func (h *Handler) Board(c *gin.Context) {
	board, err := h.services.Tasks.Board(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// Stats returns the task statistics.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.services.Stats.Show(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
