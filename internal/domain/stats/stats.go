// Package stats computes task statistics.
package stats

import (
	"cmp"
	"maps"
	"slices"

	"github.com/kutbudev/yaru/internal/domain/tag"
	"github.com/kutbudev/yaru/internal/domain/task"
)

// Snapshot is an immutable set of counts over a task collection.
type Snapshot struct {
	status   [3]int
	priority [4]int
	dueDate  [4]int
	matrix   [4][3]int
	tags     map[tag.ID]int
	untagged int
	total    int
}

// StatusCount returns the number of tasks in status s.
func (s Snapshot) StatusCount(st task.Status) int {
	if !st.IsValid() {
		return 0
	}
	return s.status[st]
}

// PriorityCount returns the number of tasks with priority p.
func (s Snapshot) PriorityCount(p task.Priority) int {
	if !p.IsValid() {
		return 0
	}
	return s.priority[p]
}

// DueDateCount returns the number of open tasks in bucket d.
func (s Snapshot) DueDateCount(d task.DueDateStatus) int {
	if d < task.DueOverdue || d > task.NoDueDate {
		return 0
	}
	return s.dueDate[d]
}

// MatrixCount returns the number of tasks with priority p and status st.
func (s Snapshot) MatrixCount(p task.Priority, st task.Status) int {
	if !p.IsValid() || !st.IsValid() {
		return 0
	}
	return s.matrix[p][st]
}

// TagCount returns how many tasks carry the tag.
func (s Snapshot) TagCount(id tag.ID) int {
	return s.tags[id]
}

// TagCounts returns a copy of the per-tag counts.
func (s Snapshot) TagCounts() map[tag.ID]int {
	return maps.Clone(s.tags)
}

// TagIDs returns the counted tag identifiers in ascending order.
func (s Snapshot) TagIDs() []tag.ID {
	ids := slices.Collect(maps.Keys(s.tags))
	slices.SortFunc(ids, func(a, b tag.ID) int {
		return cmp.Compare(a.Value(), b.Value())
	})
	return ids
}

// UntaggedCount returns the number of tasks without tags.
func (s Snapshot) UntaggedCount() int {
	return s.untagged
}

// Total returns the number of tasks, completed and untagged included.
func (s Snapshot) Total() int {
	return s.total
}

// Service computes statistics. It holds no state.
type Service struct{}

// Calculate counts tasks relative to today. A task whose status or priority is
// out of range counts toward the total and its tags but not toward the status,
// priority or matrix tables.
func (Service) Calculate(tasks []*task.Task, today task.DueDate) Snapshot {
	snap := Snapshot{tags: make(map[tag.ID]int)}
	snap.total = len(tasks)

	for _, t := range tasks {
		st, p := t.Status(), t.Priority()
		if st.IsValid() {
			snap.status[st]++
		}
		if p.IsValid() {
			snap.priority[p]++
		}
		if st.IsValid() && p.IsValid() {
			snap.matrix[p][st]++
		}

		if st != task.StatusCompleted {
			if bucket, ok := t.DueDateStatus(today); ok {
				snap.dueDate[bucket]++
			}
		}

		tags := t.Tags()
		if len(tags) == 0 {
			snap.untagged++
			continue
		}
		for _, id := range tags {
			snap.tags[id]++
		}
	}
	return snap
}
