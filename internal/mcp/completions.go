package mcp

import (
	"context"
	"strings"

	"github.com/kutbudev/yaru/internal/domain/task"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// complete provides autocomplete suggestions for prompt and resource arguments
func (s *Server) complete(ctx context.Context, req *mcp.CompleteRequest) (*mcp.CompleteResult, error) {
	argValue := strings.ToLower(req.Params.Argument.Value)

	var values []string
	switch req.Params.Argument.Name {
	case "tag":
		values = s.completeTagNames(ctx, argValue)
	case "status":
		options := make([]string, len(task.Statuses))
		for i, st := range task.Statuses {
			options[i] = st.FilterString()
		}
		values = completeStaticValues(argValue, options)
	case "priority":
		options := make([]string, len(task.Priorities))
		for i, p := range task.Priorities {
			options[i] = p.FilterString()
		}
		values = completeStaticValues(argValue, options)
	case "field":
		values = completeStaticValues(argValue, []string{"all", "title", "description"})
	default:
		values = []string{}
	}

	return &mcp.CompleteResult{
		Completion: mcp.CompletionResultDetails{
			Values:  values,
			Total:   len(values),
			HasMore: false,
		},
	}, nil
}

func (s *Server) completeTagNames(ctx context.Context, prefix string) []string {
	if s.services == nil {
		return []string{}
	}
	tags, err := s.services.Tags.List(ctx)
	if err != nil {
		return []string{}
	}

	matches := []string{}
	for _, t := range tags {
		if prefix == "" || strings.HasPrefix(strings.ToLower(t.Name), prefix) {
			matches = append(matches, t.Name)
		}
		if len(matches) >= 20 {
			break
		}
	}
	return matches
}

// completeStaticValues filters a static list of values by prefix
func completeStaticValues(prefix string, options []string) []string {
	if prefix == "" {
		return options
	}

	matches := []string{}
	for _, opt := range options {
		if strings.HasPrefix(strings.ToLower(opt), prefix) {
			matches = append(matches, opt)
		}
	}
	return matches
}
