package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/kutbudev/yaru/internal/domain/shared"
	"github.com/kutbudev/yaru/internal/domain/tag"
)

// TagRepository keeps tags in process memory. Names are unique.
type TagRepository struct {
	mu     sync.RWMutex
	tags   map[int64]*tag.Tag
	nextID int64
}

// NewTagRepository creates an empty repository. Identifiers start at 1.
func NewTagRepository() *TagRepository {
	return &TagRepository{
		tags:   make(map[int64]*tag.Tag),
		nextID: 1,
	}
}

func (r *TagRepository) FindByID(ctx context.Context, id tag.ID) (*tag.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tags[id.Value()]
	if !ok || !id.IsAssigned() {
		return nil, nil
	}
	return t.WithID(t.ID()), nil
}

func (r *TagRepository) FindByName(ctx context.Context, name tag.Name) (*tag.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.tags {
		if t.Name().Value() == name.Value() {
			return t.WithID(t.ID()), nil
		}
	}
	return nil, nil
}

func (r *TagRepository) FindByIDs(ctx context.Context, ids []tag.ID) ([]*tag.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*tag.Tag, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id.Value()] || !id.IsAssigned() {
			continue
		}
		seen[id.Value()] = true
		if t, ok := r.tags[id.Value()]; ok {
			out = append(out, t.WithID(t.ID()))
		}
	}
	return out, nil
}

func (r *TagRepository) FindAll(ctx context.Context) ([]*tag.Tag, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.tags))
	for id := range r.tags {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*tag.Tag, 0, len(ids))
	for _, id := range ids {
		t := r.tags[id]
		out = append(out, t.WithID(t.ID()))
	}
	return out, nil
}

func (r *TagRepository) Save(ctx context.Context, t *tag.Tag) (*tag.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkUniqueName(t); err != nil {
		return nil, err
	}
	var stored *tag.Tag
	if !t.ID().IsAssigned() {
		stored = t.WithID(tag.MustID(r.nextID))
		r.nextID++
	} else {
		stored = t.WithID(t.ID())
		if t.ID().Value() >= r.nextID {
			r.nextID = t.ID().Value() + 1
		}
	}
	r.tags[stored.ID().Value()] = stored
	return stored.WithID(stored.ID()), nil
}

func (r *TagRepository) Update(ctx context.Context, t *tag.Tag) (*tag.Tag, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tags[t.ID().Value()]; !ok || !t.ID().IsAssigned() {
		return nil, shared.ErrNotFound
	}
	if err := r.checkUniqueName(t); err != nil {
		return nil, err
	}
	stored := t.WithID(t.ID())
	r.tags[stored.ID().Value()] = stored
	return stored.WithID(stored.ID()), nil
}

func (r *TagRepository) Delete(ctx context.Context, id tag.ID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tags[id.Value()]; !ok || !id.IsAssigned() {
		return false, nil
	}
	delete(r.tags, id.Value())
	return true, nil
}

func (r *TagRepository) checkUniqueName(t *tag.Tag) error {
	for _, existing := range r.tags {
		if existing.ID().Equals(t.ID()) {
			continue
		}
		if existing.Name().Value() == t.Name().Value() {
			return shared.NewDomainError(shared.CodeAlreadyExists, fmt.Sprintf("tag %q already exists", t.Name().Value()))
		}
	}
	return nil
}
