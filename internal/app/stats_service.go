package app

import (
	"context"
	"fmt"

	"github.com/kutbudev/yaru/internal/domain/shared"
	"github.com/kutbudev/yaru/internal/domain/stats"
	"github.com/kutbudev/yaru/internal/domain/tag"
	"github.com/kutbudev/yaru/internal/domain/task"
	"github.com/kutbudev/yaru/internal/models"
)

// StatsService reports statistics over every stored task.
type StatsService struct {
	tasks task.Repository
	tags  tag.Repository
	clock shared.Clock
}

// Snapshot computes raw counts relative to today.
func (s *StatsService) Snapshot(ctx context.Context) (stats.Snapshot, error) {
	all, err := s.tasks.FindAll(ctx)
	if err != nil {
		return stats.Snapshot{}, fmt.Errorf("failed to load tasks: %w", err)
	}
	return stats.Service{}.Calculate(all, task.DueDateFromTime(s.clock())), nil
}

// Show computes the statistics and resolves tag names for display.
func (s *StatsService) Show(ctx context.Context) (*models.Stats, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	names, err := tagNames(ctx, s.tags, snap.TagIDs())
	if err != nil {
		return nil, err
	}
	out := models.NewStats(snap, names)
	return &out, nil
}
