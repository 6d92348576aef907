package tag

import "context"

// Repository defines the persistence contract for tags.
// FindByID and FindByName return nil without error when nothing matches.
type Repository interface {
	FindByID(ctx context.Context, id ID) (*Tag, error)
	FindByName(ctx context.Context, name Name) (*Tag, error)
	// FindByIDs returns the tags that exist; missing identifiers are omitted.
	// Callers detect absence by comparing lengths.
	FindByIDs(ctx context.Context, ids []ID) ([]*Tag, error)
	FindAll(ctx context.Context) ([]*Tag, error)
	// Save assigns an identifier when the tag has none, otherwise it
	// inserts or replaces.
	Save(ctx context.Context, t *Tag) (*Tag, error)
	// Update fails with shared.ErrNotFound when no record has the tag's id.
	Update(ctx context.Context, t *Tag) (*Tag, error)
	Delete(ctx context.Context, id ID) (bool, error)
}
