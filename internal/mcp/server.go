package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kutbudev/yaru/internal/app"
	"github.com/kutbudev/yaru/internal/config"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

const defaultInstructions = `You are connected to yaru, a local task manager.

- Call list_tasks or search_tasks before creating a task to avoid duplicates.
- Filters use key:value with key status, priority or tag (for example "status:pending", "tag:2").
- Tags are referenced by numeric ID. Call list_tags to find them and create_tag to add one.
- Due dates are YYYY-MM-DD. Tasks due in the past are overdue unless completed.
- task_stats summarises the whole list by status, priority, due date and tag.`

// Server exposes the task services as MCP tools, resources and prompts.
type Server struct {
	services *app.Services
	log      *zap.Logger
	srv      *mcp.Server
}

// NewServer registers every tool, resource and prompt.
func NewServer(services *app.Services, cfg config.MCPConfig, version string, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	name := cfg.Name
	if name == "" {
		name = "yaru"
	}
	instructions := cfg.Instructions
	if instructions == "" {
		instructions = defaultInstructions
	}

	s := &Server{services: services, log: log.Named("mcp")}
	s.srv = mcp.NewServer(
		&mcp.Implementation{Name: name, Version: version},
		&mcp.ServerOptions{
			CompletionHandler: s.complete,
			Instructions:      instructions,
		},
	)
	s.registerTools()
	s.registerResources()
	s.registerPrompts()
	return s
}

// ServeStdio runs the server over stdin/stdout until ctx is done or the
// client disconnects.
func (s *Server) ServeStdio(ctx context.Context) error {
	if s.services == nil {
		return errors.New("task services are required")
	}
	s.log.Info("serving MCP over stdio")
	return s.srv.Run(ctx, &mcp.StdioTransport{})
}

// Connect attaches the server to an arbitrary transport.
func (s *Server) Connect(ctx context.Context, t mcp.Transport) (*mcp.ServerSession, error) {
	return s.srv.Connect(ctx, t, nil)
}

// ToolDefinitions lists the registered tools with their inferred input
// schemas by querying a server over an in-memory transport.
func ToolDefinitions(ctx context.Context) ([]*mcp.Tool, error) {
	s := NewServer(nil, config.MCPConfig{}, "", nil)
	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	ss, err := s.Connect(ctx, serverTransport)
	if err != nil {
		return nil, err
	}
	defer ss.Close()

	client := mcp.NewClient(&mcp.Implementation{Name: "yaru-tools"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		return nil, err
	}
	defer cs.Close()

	res, err := cs.ListTools(ctx, nil)
	if err != nil {
		return nil, err
	}
	return res.Tools, nil
}

// textResult converts any data to a CallToolResult with JSON TextContent.
func textResult(data any) (*mcp.CallToolResult, error) {
	if data == nil {
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: "{}"}},
		}, nil
	}
	jsonBytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
	}, nil
}

// listResult wraps a slice so results are always objects.
func listResult[T any](items []T) map[string]any {
	if items == nil {
		items = []T{}
	}
	return map[string]any{"items": items, "count": len(items)}
}
