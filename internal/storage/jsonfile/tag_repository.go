package jsonfile

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/kutbudev/yaru/internal/domain/shared"
	"github.com/kutbudev/yaru/internal/domain/tag"
)

// TagRepository implements tag.Repository over a Store.
type TagRepository struct {
	store *Store
}

var _ tag.Repository = (*TagRepository)(nil)

func (r *TagRepository) FindByID(ctx context.Context, id tag.ID) (*tag.Tag, error) {
	if !id.IsAssigned() {
		return nil, nil
	}
	var (
		rec tagRecord
		ok  bool
	)
	r.store.read(func() { rec, ok = r.store.tags[id.Value()] })
	if !ok {
		return nil, nil
	}
	return rec.toDomain()
}

func (r *TagRepository) FindByName(ctx context.Context, name tag.Name) (*tag.Tag, error) {
	var found *tagRecord
	r.store.read(func() {
		for _, rec := range r.store.tags {
			if rec.Name == name.Value() {
				found = &rec
				return
			}
		}
	})
	if found == nil {
		return nil, nil
	}
	return found.toDomain()
}

func (r *TagRepository) FindByIDs(ctx context.Context, ids []tag.ID) ([]*tag.Tag, error) {
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if id.IsAssigned() {
			want[id.Value()] = true
		}
	}
	return r.collect(func(rec tagRecord) bool { return want[rec.ID] })
}

func (r *TagRepository) FindAll(ctx context.Context) ([]*tag.Tag, error) {
	return r.collect(func(tagRecord) bool { return true })
}

func (r *TagRepository) collect(keep func(tagRecord) bool) ([]*tag.Tag, error) {
	var recs []tagRecord
	r.store.read(func() {
		for _, id := range slices.Sorted(maps.Keys(r.store.tags)) {
			if rec := r.store.tags[id]; keep(rec) {
				recs = append(recs, rec)
			}
		}
	})
	out := make([]*tag.Tag, 0, len(recs))
	for _, rec := range recs {
		t, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *TagRepository) Save(ctx context.Context, t *tag.Tag) (*tag.Tag, error) {
	rec := newTagRecord(t)
	err := r.store.mutate(func() error {
		if !t.ID().IsAssigned() {
			rec.ID = r.store.nextTagID
		}
		if err := r.checkName(rec); err != nil {
			return err
		}
		if !t.ID().IsAssigned() {
			r.store.nextTagID++
		} else if rec.ID >= r.store.nextTagID {
			r.store.nextTagID = rec.ID + 1
		}
		r.store.tags[rec.ID] = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec.toDomain()
}

func (r *TagRepository) Update(ctx context.Context, t *tag.Tag) (*tag.Tag, error) {
	rec := newTagRecord(t)
	err := r.store.mutate(func() error {
		if _, ok := r.store.tags[rec.ID]; !ok || !t.ID().IsAssigned() {
			return shared.ErrNotFound
		}
		if err := r.checkName(rec); err != nil {
			return err
		}
		r.store.tags[rec.ID] = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec.toDomain()
}

// Delete refuses to remove a tag that a task still references.
func (r *TagRepository) Delete(ctx context.Context, id tag.ID) (bool, error) {
	removed := false
	err := r.store.mutate(func() error {
		if _, ok := r.store.tags[id.Value()]; !ok || !id.IsAssigned() {
			return nil
		}
		for _, t := range r.store.tasks {
			if slices.Contains(t.Tags, id.Value()) {
				return shared.NewDomainError(shared.CodeTagInUse, fmt.Sprintf("tag %d is used by task %d", id.Value(), t.ID))
			}
		}
		delete(r.store.tags, id.Value())
		removed = true
		return nil
	})
	return removed, err
}

func (r *TagRepository) checkName(rec tagRecord) error {
	for _, other := range r.store.tags {
		if other.ID != rec.ID && other.Name == rec.Name {
			return shared.NewDomainError(shared.CodeAlreadyExists, fmt.Sprintf("tag %q already exists", rec.Name))
		}
	}
	return nil
}

func newTagRecord(t *tag.Tag) tagRecord {
	return tagRecord{
		ID:          t.ID().Value(),
		Name:        t.Name().Value(),
		Description: t.Description().Value(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

func (rec tagRecord) toDomain() (*tag.Tag, error) {
	id, err := tag.NewID(rec.ID)
	if err != nil {
		return nil, err
	}
	name, err := tag.NewName(rec.Name)
	if err != nil {
		return nil, fmt.Errorf("tag %d: %w", rec.ID, err)
	}
	return tag.Reconstruct(id, name, tag.NewDescription(rec.Description), rec.CreatedAt, rec.UpdatedAt), nil
}
