package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kutbudev/yaru/internal/app"
	"github.com/kutbudev/yaru/internal/domain/shared"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const uriScheme = "yaru://"

func (s *Server) registerResources() {
	s.srv.AddResource(&mcp.Resource{
		URI:         uriScheme + "tasks",
		Name:        "tasks",
		Description: "All tasks ordered by creation time",
		MIMEType:    "application/json",
	}, s.handleTasksResource)

	s.srv.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "tasks/{id}",
		Name:        "task",
		Description: "A single task",
		MIMEType:    "application/json",
	}, s.handleTaskResource)

	s.srv.AddResource(&mcp.Resource{
		URI:         uriScheme + "tags",
		Name:        "tags",
		Description: "All tags",
		MIMEType:    "application/json",
	}, s.handleTagsResource)

	s.srv.AddResource(&mcp.Resource{
		URI:         uriScheme + "stats",
		Name:        "stats",
		Description: "Task statistics",
		MIMEType:    "application/json",
	}, s.handleStatsResource)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleTasksResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	tasks, err := s.services.Tasks.List(ctx, app.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return jsonResource(req.Params.URI, listResult(tasks))
}

func (s *Server) handleTaskResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	raw := strings.TrimPrefix(req.Params.URI, uriScheme+"tasks/")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	t, err := s.services.Tasks.Get(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, err
	}
	return jsonResource(req.Params.URI, t)
}

func (s *Server) handleTagsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	tags, err := s.services.Tags.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return jsonResource(req.Params.URI, listResult(tags))
}

func (s *Server) handleStatsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	stats, err := s.services.Stats.Show(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate stats: %w", err)
	}
	return jsonResource(req.Params.URI, stats)
}
