package models

import (
	"fmt"
	"time"

	"github.com/kutbudev/yaru/internal/domain/tag"
)

// Tag is the persistence record of a tag
type Tag struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"type:varchar(200);not null;uniqueIndex:idx_tags_name"`
	Description string    `gorm:"type:text;not null;default:''"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime:false"`
}

// TableName specifies the table name for GORM
func (Tag) TableName() string {
	return "tags"
}

// TagFromDomain converts a tag aggregate into a record
func TagFromDomain(t *tag.Tag) *Tag {
	rec := &Tag{
		Name:        t.Name().Value(),
		Description: t.Description().Value(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
	if t.ID().IsAssigned() {
		rec.ID = t.ID().Value()
	}
	return rec
}

// ToDomain rebuilds the aggregate
func (m *Tag) ToDomain() (*tag.Tag, error) {
	id, err := tag.NewID(m.ID)
	if err != nil {
		return nil, err
	}
	name, err := tag.NewName(m.Name)
	if err != nil {
		return nil, fmt.Errorf("tag %d: %w", m.ID, err)
	}
	return tag.Reconstruct(id, name, tag.NewDescription(m.Description), m.CreatedAt, m.UpdatedAt), nil
}
