package app

import (
	"context"
	"fmt"

	"github.com/kutbudev/yaru/internal/domain/shared"
	"github.com/kutbudev/yaru/internal/domain/tag"
	"github.com/kutbudev/yaru/internal/domain/task"
	"github.com/kutbudev/yaru/internal/models"
	"go.uber.org/zap"
)

// TagService implements the tag use cases.
type TagService struct {
	tasks task.Repository
	tags  tag.Repository
	log   *zap.Logger
	clock shared.Clock
}

// Add creates a tag. Names are unique.
func (s *TagService) Add(ctx context.Context, in models.CreateTagInput) (*models.Tag, error) {
	name, err := tag.NewName(in.Name)
	if err != nil {
		return nil, err
	}
	existing, err := s.tags.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up tag: %w", err)
	}
	if existing != nil {
		return nil, shared.NewDomainError(shared.CodeAlreadyExists, fmt.Sprintf("tag %q already exists", name.Value()))
	}

	t := tag.New(name, tag.NewDescription(in.Description), tag.WithClock(s.clock))
	saved, err := s.tags.Save(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to save tag: %w", err)
	}
	logEvents(s.log, t.PullDomainEvents())
	s.log.Info("tag created", zap.Int64("id", saved.ID().Value()))
	dto := models.NewTag(saved)
	return &dto, nil
}

// Get returns a single tag.
func (s *TagService) Get(ctx context.Context, id int64) (*models.Tag, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := models.NewTag(t)
	return &dto, nil
}

// List returns every tag ordered by identifier.
func (s *TagService) List(ctx context.Context) ([]models.Tag, error) {
	all, err := s.tags.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	out := make([]models.Tag, 0, len(all))
	for _, t := range all {
		out = append(out, models.NewTag(t))
	}
	return out, nil
}

// Edit renames a tag or replaces its description.
func (s *TagService) Edit(ctx context.Context, id int64, in models.UpdateTagInput) (*models.Tag, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name, err := tag.NewName(*in.Name)
		if err != nil {
			return nil, err
		}
		if name.Value() != t.Name().Value() {
			existing, err := s.tags.FindByName(ctx, name)
			if err != nil {
				return nil, fmt.Errorf("failed to look up tag: %w", err)
			}
			if existing != nil {
				return nil, shared.NewDomainError(shared.CodeAlreadyExists, fmt.Sprintf("tag %q already exists", name.Value()))
			}
		}
		t.ChangeName(name)
	}
	if in.Description != nil {
		t.ChangeDescription(tag.NewDescription(*in.Description))
	}

	updated, err := s.tags.Update(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", err)
	}
	logEvents(s.log, t.PullDomainEvents())
	dto := models.NewTag(updated)
	return &dto, nil
}

// Delete removes a tag that no task references.
func (s *TagService) Delete(ctx context.Context, id int64) error {
	tid, err := tag.NewID(id)
	if err != nil {
		return err
	}
	inUse, err := s.tasks.FindBySpecification(ctx, task.ByTag(tid))
	if err != nil {
		return fmt.Errorf("failed to check tag usage: %w", err)
	}
	if len(inUse) > 0 {
		return shared.NewDomainError(shared.CodeTagInUse, fmt.Sprintf("tag %d is used by %d task(s)", id, len(inUse)))
	}
	removed, err := s.tags.Delete(ctx, tid)
	if err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	if !removed {
		return notFound("tag", id)
	}
	s.log.Info("tag deleted", zap.Int64("id", id))
	return nil
}

func (s *TagService) load(ctx context.Context, id int64) (*tag.Tag, error) {
	tid, err := tag.NewID(id)
	if err != nil {
		return nil, err
	}
	t, err := s.tags.FindByID(ctx, tid)
	if err != nil {
		return nil, fmt.Errorf("failed to load tag: %w", err)
	}
	if t == nil {
		return nil, notFound("tag", id)
	}
	t.UseClock(s.clock)
	return t, nil
}
