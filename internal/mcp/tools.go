package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/kutbudev/yaru/internal/app"
	"github.com/kutbudev/yaru/internal/domain/task"
	"github.com/kutbudev/yaru/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// The SDK infers each InputSchema from the handler's input struct type.
func (s *Server) registerTools() {
	// Tasks
	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        "list_tasks",
		Description: "List tasks. Optional filters (status:, priority:, tag:) are combined with AND; sort by priority, due_date or created_at.",
	}, s.handleListTasks)
	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        "get_task",
		Description: "Get a single task by ID.",
	}, s.handleGetTask)
	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        "create_task",
		Description: "Create a task. Only title is required; status defaults to pending and priority to medium.",
	}, s.handleCreateTask)
	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        "update_task",
		Description: "Update a task. Only the given fields change; tags replaces the whole tag list.",
	}, s.handleUpdateTask)
	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        "complete_task",
		Description: "Mark a task as completed.",
	}, s.handleCompleteTask)
	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        "delete_task",
		Description: "Delete a task permanently.",
	}, s.handleDeleteTask)
	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        "tag_task",
		Description: "Attach an existing tag to a task.",
	}, s.handleTagTask)
	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        "untag_task",
		Description: "Detach a tag from a task.",
	}, s.handleUntagTask)
	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        "search_tasks",
		Description: "Search tasks by keywords. Every keyword must occur (case-insensitive) in the selected field: title, description or all.",
	}, s.handleSearchTasks)
	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        "overdue_tasks",
		Description: "List tasks whose due date has passed and that are not completed.",
	}, s.handleOverdueTasks)
	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        "task_board",
		Description: "Tasks grouped by status (pending, in_progress, completed), each column sorted by priority.",
	}, s.handleTaskBoard)
	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        "task_stats",
		Description: "Counts by status, priority, due date bucket, tag and priority x status.",
	}, s.handleTaskStats)

	// Tags
	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        "list_tags",
		Description: "List all tags.",
	}, s.handleListTags)
	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        "create_tag",
		Description: "Create a tag. Names are unique.",
	}, s.handleCreateTag)
	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        "update_tag",
		Description: "Rename a tag or change its description.",
	}, s.handleUpdateTag)
	mcp.AddTool(s.srv, &mcp.Tool{
		Name:        "delete_tag",
		Description: "Delete a tag. Fails while any task still uses it.",
	}, s.handleDeleteTag)
}

type EmptyInput struct{}

type ListTasksInput struct {
	Filters []string `json:"filters,omitempty" jsonschema:"filters such as status:pending, priority:high or tag:3"`
	SortBy  string   `json:"sort_by,omitempty" jsonschema:"priority, due_date or created_at"`
	Order   string   `json:"order,omitempty" jsonschema:"asc or desc"`
	Limit   int      `json:"limit,omitempty" jsonschema:"maximum number of tasks to return"`
}

type TaskIDInput struct {
	ID int64 `json:"id" jsonschema:"task ID"`
}

type CreateTaskInput struct {
	Title       string  `json:"title" jsonschema:"task title, at most 100 characters"`
	Description string  `json:"description,omitempty" jsonschema:"markdown description"`
	Status      string  `json:"status,omitempty" jsonschema:"pending, in_progress or completed"`
	Priority    string  `json:"priority,omitempty" jsonschema:"low, medium, high or critical"`
	Tags        []int64 `json:"tags,omitempty" jsonschema:"tag IDs"`
	DueDate     string  `json:"due_date,omitempty" jsonschema:"YYYY-MM-DD"`
}

type UpdateTaskInput struct {
	ID           int64    `json:"id" jsonschema:"task ID"`
	Title        *string  `json:"title,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Status       *string  `json:"status,omitempty" jsonschema:"pending, in_progress or completed"`
	Priority     *string  `json:"priority,omitempty" jsonschema:"low, medium, high or critical"`
	Tags         *[]int64 `json:"tags,omitempty" jsonschema:"replacement list of tag IDs"`
	DueDate      *string  `json:"due_date,omitempty" jsonschema:"YYYY-MM-DD"`
	ClearDueDate bool     `json:"clear_due_date,omitempty" jsonschema:"remove the due date"`
}

type TaskTagInput struct {
	ID    int64 `json:"id" jsonschema:"task ID"`
	TagID int64 `json:"tag_id" jsonschema:"tag ID"`
}

type SearchTasksInput struct {
	Query   string   `json:"query" jsonschema:"space separated keywords"`
	Field   string   `json:"field,omitempty" jsonschema:"title, description or all"`
	Filters []string `json:"filters,omitempty" jsonschema:"additional status:, priority: or tag: filters"`
}

type TagIDInput struct {
	ID int64 `json:"id" jsonschema:"tag ID"`
}

type CreateTagInput struct {
	Name        string `json:"name" jsonschema:"unique tag name"`
	Description string `json:"description,omitempty"`
}

type UpdateTagInput struct {
	ID          int64   `json:"id" jsonschema:"tag ID"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (s *Server) handleListTasks(ctx context.Context, req *mcp.CallToolRequest, input ListTasksInput) (*mcp.CallToolResult, any, error) {
	sortBy, err := app.ParseSortKey(input.SortBy)
	if err != nil {
		return nil, nil, err
	}
	order, err := app.ParseOrder(input.Order)
	if err != nil {
		return nil, nil, err
	}
	tasks, err := s.services.Tasks.List(ctx, app.ListOptions{Filters: input.Filters, SortBy: sortBy, Order: order})
	if err != nil {
		return nil, nil, err
	}
	if input.Limit > 0 && input.Limit < len(tasks) {
		tasks = tasks[:input.Limit]
	}
	res, err := textResult(listResult(tasks))
	return res, nil, err
}

func (s *Server) handleGetTask(ctx context.Context, req *mcp.CallToolRequest, input TaskIDInput) (*mcp.CallToolResult, any, error) {
	t, err := s.services.Tasks.Get(ctx, input.ID)
	if err != nil {
		return nil, nil, err
	}
	res, err := textResult(t)
	return res, nil, err
}

func (s *Server) handleCreateTask(ctx context.Context, req *mcp.CallToolRequest, input CreateTaskInput) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, nil, errors.New("title is required")
	}
	t, err := s.services.Tasks.Add(ctx, models.CreateTaskInput{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		TagIDs:      input.Tags,
		DueDate:     input.DueDate,
	})
	if err != nil {
		return nil, nil, err
	}
	res, err := textResult(map[string]any{"task": t, "_message": "✅ Task created"})
	return res, nil, err
}

func (s *Server) handleUpdateTask(ctx context.Context, req *mcp.CallToolRequest, input UpdateTaskInput) (*mcp.CallToolResult, any, error) {
	update := models.UpdateTaskInput{
		Title:        input.Title,
		Description:  input.Description,
		Status:       input.Status,
		Priority:     input.Priority,
		TagIDs:       input.Tags,
		DueDate:      input.DueDate,
		ClearDueDate: input.ClearDueDate,
	}
	if update.IsEmpty() {
		return nil, nil, errors.New("no update fields provided")
	}
	t, err := s.services.Tasks.Edit(ctx, input.ID, update)
	if err != nil {
		return nil, nil, err
	}
	res, err := textResult(map[string]any{"task": t, "_message": "✅ Task updated"})
	return res, nil, err
}

func (s *Server) handleCompleteTask(ctx context.Context, req *mcp.CallToolRequest, input TaskIDInput) (*mcp.CallToolResult, any, error) {
	t, err := s.services.Tasks.Complete(ctx, input.ID)
	if err != nil {
		return nil, nil, err
	}
	res, err := textResult(map[string]any{"task": t, "_message": "✅ Task completed"})
	return res, nil, err
}

func (s *Server) handleDeleteTask(ctx context.Context, req *mcp.CallToolRequest, input TaskIDInput) (*mcp.CallToolResult, any, error) {
	if err := s.services.Tasks.Delete(ctx, input.ID); err != nil {
		return nil, nil, err
	}
	res, err := textResult(map[string]any{"id": input.ID, "deleted": true})
	return res, nil, err
}

func (s *Server) handleTagTask(ctx context.Context, req *mcp.CallToolRequest, input TaskTagInput) (*mcp.CallToolResult, any, error) {
	t, err := s.services.Tasks.AddTag(ctx, input.ID, input.TagID)
	if err != nil {
		return nil, nil, err
	}
	res, err := textResult(t)
	return res, nil, err
}

func (s *Server) handleUntagTask(ctx context.Context, req *mcp.CallToolRequest, input TaskTagInput) (*mcp.CallToolResult, any, error) {
	t, err := s.services.Tasks.RemoveTag(ctx, input.ID, input.TagID)
	if err != nil {
		return nil, nil, err
	}
	res, err := textResult(t)
	return res, nil, err
}

func (s *Server) handleSearchTasks(ctx context.Context, req *mcp.CallToolRequest, input SearchTasksInput) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, nil, errors.New("query is required")
	}
	field, err := task.ParseSearchField(input.Field)
	if err != nil {
		return nil, nil, err
	}
	tasks, err := s.services.Tasks.Search(ctx, input.Query, field, input.Filters)
	if err != nil {
		return nil, nil, err
	}
	res, err := textResult(listResult(tasks))
	return res, nil, err
}

func (s *Server) handleOverdueTasks(ctx context.Context, req *mcp.CallToolRequest, input EmptyInput) (*mcp.CallToolResult, any, error) {
	tasks, err := s.services.Tasks.Overdue(ctx)
	if err != nil {
		return nil, nil, err
	}
	res, err := textResult(listResult(tasks))
	return res, nil, err
}

func (s *Server) handleTaskBoard(ctx context.Context, req *mcp.CallToolRequest, input EmptyInput) (*mcp.CallToolResult, any, error) {
	board, err := s.services.Tasks.Board(ctx)
	if err != nil {
		return nil, nil, err
	}
	res, err := textResult(board)
	return res, nil, err
}

func (s *Server) handleTaskStats(ctx context.Context, req *mcp.CallToolRequest, input EmptyInput) (*mcp.CallToolResult, any, error) {
	stats, err := s.services.Stats.Show(ctx)
	if err != nil {
		return nil, nil, err
	}
	res, err := textResult(stats)
	return res, nil, err
}

func (s *Server) handleListTags(ctx context.Context, req *mcp.CallToolRequest, input EmptyInput) (*mcp.CallToolResult, any, error) {
	tags, err := s.services.Tags.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	res, err := textResult(listResult(tags))
	return res, nil, err
}

func (s *Server) handleCreateTag(ctx context.Context, req *mcp.CallToolRequest, input CreateTagInput) (*mcp.CallToolResult, any, error) {
	t, err := s.services.Tags.Add(ctx, models.CreateTagInput{Name: input.Name, Description: input.Description})
	if err != nil {
		return nil, nil, err
	}
	res, err := textResult(map[string]any{"tag": t, "_message": "✅ Tag created"})
	return res, nil, err
}

func (s *Server) handleUpdateTag(ctx context.Context, req *mcp.CallToolRequest, input UpdateTagInput) (*mcp.CallToolResult, any, error) {
	if input.Name == nil && input.Description == nil {
		return nil, nil, errors.New("no update fields provided")
	}
	t, err := s.services.Tags.Edit(ctx, input.ID, models.UpdateTagInput{Name: input.Name, Description: input.Description})
	if err != nil {
		return nil, nil, err
	}
	res, err := textResult(t)
	return res, nil, err
}

func (s *Server) handleDeleteTag(ctx context.Context, req *mcp.CallToolRequest, input TagIDInput) (*mcp.CallToolResult, any, error) {
	if err := s.services.Tags.Delete(ctx, input.ID); err != nil {
		return nil, nil, err
	}
	res, err := textResult(map[string]any{"id": input.ID, "deleted": true})
	return res, nil, err
}
