package stats

import (
	"math"
	"testing"
	"time"

	"github.com/kutbudev/yaru/internal/domain/tag"
	"github.com/kutbudev/yaru/internal/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = func() task.DueDate {
	d, _ := task.NewDueDate(2026, time.June, 10)
	return d
}()

func newTask(t *testing.T, status task.Status, priority task.Priority, due *task.DueDate, tags ...int64) *task.Task {
	t.Helper()
	title, err := task.NewTitle("task")
	require.NoError(t, err)
	ids := make([]tag.ID, 0, len(tags))
	for _, v := range tags {
		ids = append(ids, tag.MustID(v))
	}
	return task.New(title, task.NewDescription(""), status, priority, ids, due)
}

func offset(n int) *task.DueDate {
	d := today.AddDays(n)
	return &d
}

func TestCalculateEmpty(t *testing.T) {
	snap := Service{}.Calculate(nil, today)

	assert.Zero(t, snap.Total())
	for _, s := range task.Statuses {
		assert.Zero(t, snap.StatusCount(s))
	}
	for _, p := range task.Priorities {
		assert.Zero(t, snap.PriorityCount(p))
	}
	for _, d := range task.DueDateStatuses {
		assert.Zero(t, snap.DueDateCount(d))
	}
	assert.Empty(t, snap.TagCounts())
	assert.Zero(t, snap.UntaggedCount())
}

func TestDueDateBuckets(t *testing.T) {
	t.Run("buckets open tasks by due date", func(t *testing.T) {
		tasks := []*task.Task{
			newTask(t, task.StatusPending, task.PriorityMedium, offset(-1)),
			newTask(t, task.StatusPending, task.PriorityMedium, offset(0)),
			newTask(t, task.StatusPending, task.PriorityMedium, offset(3)),
			newTask(t, task.StatusInProgress, task.PriorityMedium, offset(7)),
			newTask(t, task.StatusPending, task.PriorityMedium, offset(8)),
			newTask(t, task.StatusPending, task.PriorityMedium, nil),
		}
		snap := Service{}.Calculate(tasks, today)

		assert.Equal(t, 1, snap.DueDateCount(task.DueOverdue))
		assert.Equal(t, 1, snap.DueDateCount(task.DueToday))
		assert.Equal(t, 2, snap.DueDateCount(task.DueThisWeek))
		assert.Equal(t, 1, snap.DueDateCount(task.NoDueDate))

		bucketed := 0
		for _, d := range task.DueDateStatuses {
			bucketed += snap.DueDateCount(d)
		}
		assert.Equal(t, 5, bucketed, "the task due in eight days is in no bucket")
		assert.Equal(t, 6, snap.Total())
	})

	t.Run("completed tasks are never bucketed", func(t *testing.T) {
		done := newTask(t, task.StatusPending, task.PriorityLow, offset(-1))
		done.Complete()
		doneNoDate := newTask(t, task.StatusCompleted, task.PriorityLow, nil)

		snap := Service{}.Calculate([]*task.Task{done, doneNoDate}, today)
		for _, d := range task.DueDateStatuses {
			assert.Zero(t, snap.DueDateCount(d), d.String())
		}
		assert.Equal(t, 2, snap.Total())
		assert.Equal(t, 2, snap.StatusCount(task.StatusCompleted))
	})
}

func TestCounts(t *testing.T) {
	tasks := []*task.Task{
		newTask(t, task.StatusPending, task.PriorityHigh, nil, 1, 2),
		newTask(t, task.StatusPending, task.PriorityHigh, nil, 1),
		newTask(t, task.StatusCompleted, task.PriorityLow, nil),
		newTask(t, task.StatusInProgress, task.PriorityCritical, nil),
	}
	snap := Service{}.Calculate(tasks, today)

	t.Run("status counts are zero filled", func(t *testing.T) {
		assert.Equal(t, 2, snap.StatusCount(task.StatusPending))
		assert.Equal(t, 1, snap.StatusCount(task.StatusInProgress))
		assert.Equal(t, 1, snap.StatusCount(task.StatusCompleted))
	})

	t.Run("priority counts are zero filled", func(t *testing.T) {
		assert.Equal(t, 1, snap.PriorityCount(task.PriorityLow))
		assert.Equal(t, 0, snap.PriorityCount(task.PriorityMedium))
		assert.Equal(t, 2, snap.PriorityCount(task.PriorityHigh))
		assert.Equal(t, 1, snap.PriorityCount(task.PriorityCritical))
	})

	t.Run("tag counts include the untagged bucket", func(t *testing.T) {
		assert.Equal(t, 2, snap.TagCount(tag.MustID(1)))
		assert.Equal(t, 1, snap.TagCount(tag.MustID(2)))
		assert.Equal(t, 2, snap.UntaggedCount())
		assert.Equal(t, []tag.ID{tag.MustID(1), tag.MustID(2)}, snap.TagIDs())
	})

	t.Run("matrix covers all twelve cells", func(t *testing.T) {
		sum := 0
		for _, p := range task.Priorities {
			for _, s := range task.Statuses {
				sum += snap.MatrixCount(p, s)
			}
		}
		assert.Equal(t, snap.Total(), sum)
		assert.Equal(t, 2, snap.MatrixCount(task.PriorityHigh, task.StatusPending))
		assert.Equal(t, 1, snap.MatrixCount(task.PriorityCritical, task.StatusInProgress))
		assert.Zero(t, snap.MatrixCount(task.PriorityMedium, task.StatusPending))
	})

	t.Run("snapshot is not affected by callers", func(t *testing.T) {
		counts := snap.TagCounts()
		counts[tag.MustID(1)] = 100
		assert.Equal(t, 2, snap.TagCount(tag.MustID(1)))
	})

	t.Run("identical input gives identical output", func(t *testing.T) {
		again := Service{}.Calculate(tasks, today)
		assert.Equal(t, snap, again)
	})
}

func TestTagIDsOrderWithLargeIdentifiers(t *testing.T) {
	tasks := []*task.Task{
		newTask(t, task.StatusPending, task.PriorityLow, nil, math.MaxInt64),
		newTask(t, task.StatusPending, task.PriorityLow, nil, 0),
		newTask(t, task.StatusPending, task.PriorityLow, nil, 1),
	}
	snap := Service{}.Calculate(tasks, today)
	assert.Equal(t, []tag.ID{tag.MustID(0), tag.MustID(1), tag.MustID(math.MaxInt64)}, snap.TagIDs())
}

func TestCalculateSkipsUnknownEnumerants(t *testing.T) {
	title, err := task.NewTitle("stored")
	require.NoError(t, err)
	created := time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)
	odd := task.Reconstruct(task.MustID(1), title, task.NewDescription(""), task.Status(9), task.Priority(-1),
		[]tag.ID{tag.MustID(3)}, created, created, nil, nil)
	valid := newTask(t, task.StatusPending, task.PriorityHigh, nil)

	var snap Snapshot
	require.NotPanics(t, func() {
		snap = Service{}.Calculate([]*task.Task{odd, valid}, today)
	})
	assert.Equal(t, 2, snap.Total())
	assert.Equal(t, 1, snap.StatusCount(task.StatusPending))
	assert.Equal(t, 1, snap.PriorityCount(task.PriorityHigh))
	assert.Equal(t, 1, snap.MatrixCount(task.PriorityHigh, task.StatusPending))
	assert.Equal(t, 1, snap.TagCount(tag.MustID(3)))
}
