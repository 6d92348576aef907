package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	s.srv.AddPrompt(&mcp.Prompt{
		Name:        "daily_review",
		Title:       "Daily Review",
		Description: "Review overdue work and pick what to do today",
	}, s.handleDailyReviewPrompt)

	s.srv.AddPrompt(&mcp.Prompt{
		Name:        "triage",
		Title:       "Triage",
		Description: "Assign priorities, tags and due dates to pending tasks",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "tag",
				Description: "Only triage tasks carrying this tag name",
				Required:    false,
			},
		},
	}, s.handleTriagePrompt)
}

func (s *Server) handleDailyReviewPrompt(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	promptText := `Run a daily review of my tasks.

## Step 1: What is overdue?
- Call overdue_tasks and list each task with its due date and priority

## Step 2: What is in progress?
- Call list_tasks with filters ["status:in_progress"] and sort_by "priority", order "desc"

## Step 3: What should be next?
- Call list_tasks with filters ["status:pending"], sort_by "due_date"
- Suggest at most three tasks for today, preferring overdue and critical work

## Output Format
- **Overdue**: bullet list
- **In Progress**: bullet list
- **Today**: numbered list of up to three tasks with a one-line reason each`

	return &mcp.GetPromptResult{
		Description: "Daily task review",
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: promptText}},
		},
	}, nil
}

func (s *Server) handleTriagePrompt(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	scope := "all pending tasks"
	filters := `["status:pending"]`
	if tagName := req.Params.Arguments["tag"]; tagName != "" {
		scope = fmt.Sprintf("pending tasks tagged %q", tagName)
		filters = fmt.Sprintf(`["status:pending", "tag:<ID of %s from list_tags>"]`, tagName)
	}

	promptText := fmt.Sprintf(`Triage %s.

1. Call list_tags to see the available tags.
2. Call list_tasks with filters %s.
3. For each task without a due date or still at medium priority, propose a priority, tags and a due date.
4. After I confirm, apply the changes with update_task. Do not create new tags without asking.`, scope, filters)

	return &mcp.GetPromptResult{
		Description: "Triage " + scope,
		Messages: []*mcp.PromptMessage{
			{Role: "user", Content: &mcp.TextContent{Text: promptText}},
		},
	}, nil
}
