package app

import (
	"sort"
	"strings"

	"github.com/kutbudev/yaru/internal/domain/shared"
	"github.com/kutbudev/yaru/internal/domain/tag"
	"github.com/kutbudev/yaru/internal/domain/task"
)

// SortKey orders task listings.
type SortKey string

const (
	SortByCreatedAt SortKey = "created_at"
	SortByPriority  SortKey = "priority"
	SortByDueDate   SortKey = "due_date"
)

// Order is the sort direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ListOptions controls task listings. Filters have the form key:value with
// key one of status, priority or tag; they are combined with AND.
type ListOptions struct {
	Filters []string
	SortBy  SortKey
	Order   Order
}

// ParseSortKey accepts priority, due_date or created_at. Empty means created_at.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(strings.ToLower(s)) {
	case "", SortByCreatedAt:
		return SortByCreatedAt, nil
	case SortByPriority:
		return SortByPriority, nil
	case SortByDueDate:
		return SortByDueDate, nil
	}
	return "", shared.NewValidationError("invalid sort key %q (expected priority, due_date or created_at)", s)
}

// ParseOrder accepts asc or desc. Empty means asc.
func ParseOrder(s string) (Order, error) {
	switch Order(strings.ToLower(s)) {
	case "", OrderAsc:
		return OrderAsc, nil
	case OrderDesc:
		return OrderDesc, nil
	}
	return "", shared.NewValidationError("invalid order %q (expected asc or desc)", s)
}

// ParseFilter turns a key:value filter into a specification.
func ParseFilter(filter string) (task.Specification, error) {
	key, value, ok := strings.Cut(filter, ":")
	if !ok || value == "" {
		return nil, shared.NewValidationError("invalid filter %q (expected key:value)", filter)
	}
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "status":
		s, err := task.ParseStatusAny(value)
		if err != nil {
			return nil, err
		}
		return task.ByStatus(s), nil
	case "priority":
		p, err := task.ParsePriorityAny(value)
		if err != nil {
			return nil, err
		}
		return task.ByPriority(p), nil
	case "tag":
		id, err := tag.ParseID(value)
		if err != nil {
			return nil, err
		}
		return task.ByTag(id), nil
	}
	return nil, shared.NewValidationError("unknown filter key %q (expected status, priority or tag)", key)
}

// BuildSpecification ANDs the parsed filters together.
func BuildSpecification(filters []string) (task.Specification, error) {
	specs := make([]task.Specification, 0, len(filters))
	for _, f := range filters {
		spec, err := ParseFilter(f)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return task.AllOf(specs...), nil
}

// SortTasks sorts in place. Tasks without a due date come after dated ones
// in ascending order. Ties keep their storage order.
func SortTasks(tasks []*task.Task, key SortKey, order Order) {
	compare := func(a, b *task.Task) int {
		switch key {
		case SortByPriority:
			return int(a.Priority()) - int(b.Priority())
		case SortByDueDate:
			da, db := a.DueDate(), b.DueDate()
			switch {
			case da == nil && db == nil:
				return 0
			case da == nil:
				return 1
			case db == nil:
				return -1
			}
			return da.Time().Compare(db.Time())
		}
		return a.CreatedAt().Compare(b.CreatedAt())
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		c := compare(tasks[i], tasks[j])
		if order == OrderDesc {
			return c > 0
		}
		return c < 0
	})
}

func parseTagIDs(raw []int64) ([]tag.ID, error) {
	ids := make([]tag.ID, 0, len(raw))
	for _, v := range raw {
		id, err := tag.NewID(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func formatIDs(ids []tag.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}
