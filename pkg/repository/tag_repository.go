package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/kutbudev/yaru/internal/domain/shared"
	"github.com/kutbudev/yaru/internal/domain/tag"
	"github.com/kutbudev/yaru/pkg/models"
	"gorm.io/gorm"
)

// TagRepository implements tag.Repository with GORM
type TagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new TagRepository
func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

var _ tag.Repository = (*TagRepository)(nil)

func (r *TagRepository) FindByID(ctx context.Context, id tag.ID) (*tag.Tag, error) {
	if !id.IsAssigned() {
		return nil, nil
	}
	return r.first(ctx, "id = ?", id.Value())
}

func (r *TagRepository) FindByName(ctx context.Context, name tag.Name) (*tag.Tag, error) {
	return r.first(ctx, "name = ?", name.Value())
}

func (r *TagRepository) first(ctx context.Context, query string, args ...any) (*tag.Tag, error) {
	var rec models.Tag
	if err := r.db.WithContext(ctx).Where(query, args...).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find tag: %w", err)
	}
	return rec.ToDomain()
}

// FindByIDs returns the existing tags among ids, ordered by identifier
func (r *TagRepository) FindByIDs(ctx context.Context, ids []tag.ID) ([]*tag.Tag, error) {
	values := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id.IsAssigned() {
			values = append(values, id.Value())
		}
	}
	if len(values) == 0 {
		return []*tag.Tag{}, nil
	}
	return r.find(ctx, r.db.WithContext(ctx).Where("id IN ?", values))
}

func (r *TagRepository) FindAll(ctx context.Context) ([]*tag.Tag, error) {
	return r.find(ctx, r.db.WithContext(ctx))
}

func (r *TagRepository) find(ctx context.Context, q *gorm.DB) ([]*tag.Tag, error) {
	var recs []models.Tag
	if err := q.Order("id").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	out := make([]*tag.Tag, 0, len(recs))
	for i := range recs {
		t, err := recs[i].ToDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Save inserts a new tag or replaces an existing one. A duplicate name fails
// with shared.ErrAlreadyExists.
func (r *TagRepository) Save(ctx context.Context, t *tag.Tag) (*tag.Tag, error) {
	rec := models.TagFromDomain(t)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if t.ID().IsAssigned() {
			exists, err := tagExists(tx, rec.ID)
			if err != nil {
				return err
			}
			if exists {
				return tx.Save(rec).Error
			}
		}
		return tx.Create(rec).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save tag: %w", tagConflict(err))
	}
	return rec.ToDomain()
}

func (r *TagRepository) Update(ctx context.Context, t *tag.Tag) (*tag.Tag, error) {
	if !t.ID().IsAssigned() {
		return nil, shared.ErrNotFound
	}
	rec := models.TagFromDomain(t)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := tagExists(tx, rec.ID)
		if err != nil {
			return err
		}
		if !exists {
			return shared.ErrNotFound
		}
		return tx.Save(rec).Error
	})
	if errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update tag: %w", tagConflict(err))
	}
	return rec.ToDomain()
}

// Delete removes a tag. A tag still linked to a task fails with
// shared.ErrTagInUse.
func (r *TagRepository) Delete(ctx context.Context, id tag.ID) (bool, error) {
	if !id.IsAssigned() {
		return false, nil
	}
	res := r.db.WithContext(ctx).Delete(&models.Tag{}, "id = ?", id.Value())
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete tag: %w", tagConflict(res.Error))
	}
	return res.RowsAffected > 0, nil
}

func tagExists(tx *gorm.DB, id int64) (bool, error) {
	var count int64
	if err := tx.Model(&models.Tag{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
