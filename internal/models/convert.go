package models

import (
	"fmt"

	"github.com/kutbudev/yaru/internal/domain/stats"
	"github.com/kutbudev/yaru/internal/domain/tag"
	"github.com/kutbudev/yaru/internal/domain/task"
)

// NoTagLabel is the tag_stats key for tasks without tags.
const NoTagLabel = "(no tag)"

// NewTask converts an aggregate. Tag names come from names; identifiers
// without a name are shown by number.
func NewTask(t *task.Task, names map[tag.ID]string) Task {
	dto := Task{
		ID:          t.ID().Value(),
		Title:       t.Title().Value(),
		Status:      t.Status().FilterString(),
		Priority:    t.Priority().FilterString(),
		Tags:        make([]TagInfo, 0, len(t.Tags())),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
		CompletedAt: t.CompletedAt(),
	}
	if !t.Description().IsEmpty() {
		d := t.Description().Value()
		dto.Description = &d
	}
	if due := t.DueDate(); due != nil {
		s := due.String()
		dto.DueDate = &s
	}
	for _, id := range t.Tags() {
		dto.Tags = append(dto.Tags, TagInfo{ID: id.Value(), Name: tagLabel(id, names)})
	}
	return dto
}

// NewTag converts a tag aggregate.
func NewTag(t *tag.Tag) Tag {
	dto := Tag{
		ID:        t.ID().Value(),
		Name:      t.Name().Value(),
		CreatedAt: t.CreatedAt(),
		UpdatedAt: t.UpdatedAt(),
	}
	if !t.Description().IsEmpty() {
		d := t.Description().Value()
		dto.Description = &d
	}
	return dto
}

// NewStats converts a snapshot, resolving tag identifiers through names.
func NewStats(snap stats.Snapshot, names map[tag.ID]string) Stats {
	out := Stats{
		StatusStats:          map[string]int{},
		PriorityStats:        map[string]int{},
		DueDateStats:         map[string]int{},
		TagStats:             map[string]int{},
		PriorityStatusMatrix: map[string]int{},
		TotalCount:           snap.Total(),
	}
	for _, s := range task.Statuses {
		putNonZero(out.StatusStats, s.FilterString(), snap.StatusCount(s))
	}
	for _, p := range task.Priorities {
		putNonZero(out.PriorityStats, p.FilterString(), snap.PriorityCount(p))
		for _, s := range task.Statuses {
			putNonZero(out.PriorityStatusMatrix, p.FilterString()+":"+s.FilterString(), snap.MatrixCount(p, s))
		}
	}
	for _, d := range task.DueDateStatuses {
		putNonZero(out.DueDateStats, d.FilterString(), snap.DueDateCount(d))
	}
	for _, id := range snap.TagIDs() {
		out.TagStats[tagLabel(id, names)] += snap.TagCount(id)
	}
	putNonZero(out.TagStats, NoTagLabel, snap.UntaggedCount())
	return out
}

func tagLabel(id tag.ID, names map[tag.ID]string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("Tag ID: %d", id.Value())
}

func putNonZero(m map[string]int, key string, n int) {
	if n > 0 {
		m[key] = n
	}
}
