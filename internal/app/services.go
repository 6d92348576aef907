// Package app holds the use cases behind the CLI, the HTTP API and the MCP
// server. Services translate DTOs to aggregates, call repositories, and drain
// pending domain events once a write has succeeded.
package app

import (
	"context"
	"fmt"

	"github.com/kutbudev/yaru/internal/domain/shared"
	"github.com/kutbudev/yaru/internal/domain/tag"
	"github.com/kutbudev/yaru/internal/domain/task"
	"go.uber.org/zap"
)

// Services bundles the use cases over one pair of repositories.
type Services struct {
	Tasks *TaskService
	Tags  *TagService
	Stats *StatsService
}

// New wires the services. A nil logger disables logging and a nil clock uses
// the system clock.
func New(tasks task.Repository, tags tag.Repository, log *zap.Logger, clock shared.Clock) *Services {
	if log == nil {
		log = zap.NewNop()
	}
	if clock == nil {
		clock = shared.SystemClock
	}
	return &Services{
		Tasks: &TaskService{tasks: tasks, tags: tags, log: log.Named("tasks"), clock: clock},
		Tags:  &TagService{tasks: tasks, tags: tags, log: log.Named("tags"), clock: clock},
		Stats: &StatsService{tasks: tasks, tags: tags, clock: clock},
	}
}

func logEvents(log *zap.Logger, events []shared.DomainEvent) {
	for _, e := range events {
		log.Debug("domain event",
			zap.String("type", e.EventType()),
			zap.String("aggregate", e.AggregateType()),
			zap.Stringer("aggregate_id", e.AggregateID()),
			zap.Stringer("event_id", e.EventID()),
			zap.Time("occurred_at", e.OccurredAt()),
		)
	}
}

func notFound(kind string, id int64) error {
	return shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("%s %d not found", kind, id))
}

// tagNames resolves the names of the given tags. Unknown identifiers are
// left out of the map.
func tagNames(ctx context.Context, repo tag.Repository, ids []tag.ID) (map[tag.ID]string, error) {
	names := make(map[tag.ID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	found, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load tags: %w", err)
	}
	for _, t := range found {
		names[t.ID()] = t.Name().Value()
	}
	return names, nil
}

func collectTagIDs(tasks []*task.Task) []tag.ID {
	seen := make(map[tag.ID]bool)
	var ids []tag.ID
	for _, t := range tasks {
		for _, id := range t.Tags() {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}
