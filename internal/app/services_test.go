package app

import (
	"context"
	"testing"
	"time"

	"github.com/kutbudev/yaru/internal/domain/shared"
	"github.com/kutbudev/yaru/internal/domain/task"
	"github.com/kutbudev/yaru/internal/models"
	"github.com/kutbudev/yaru/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)

func newServices(t *testing.T) *Services {
	t.Helper()
	return New(memory.NewTaskRepository(), memory.NewTagRepository(), nil, func() time.Time { return now })
}

func ptr[T any](v T) *T { return &v }

func addTag(t *testing.T, svc *Services, name string) int64 {
	t.Helper()
	tg, err := svc.Tags.Add(context.Background(), models.CreateTagInput{Name: name})
	require.NoError(t, err)
	return tg.ID
}

func addTask(t *testing.T, svc *Services, in models.CreateTaskInput) *models.Task {
	t.Helper()
	created, err := svc.Tasks.Add(context.Background(), in)
	require.NoError(t, err)
	return created
}

func titles(tasks []models.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func TestTaskService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("applies defaults", func(t *testing.T) {
		svc := newServices(t)
		created, err := svc.Tasks.Add(ctx, models.CreateTaskInput{Title: "  Write report  "})
		require.NoError(t, err)

		assert.Equal(t, int64(1), created.ID)
		assert.Equal(t, "pending", created.Status)
		assert.Equal(t, "medium", created.Priority)
		assert.Nil(t, created.Description)
		assert.Nil(t, created.DueDate)
		assert.Empty(t, created.Tags)
		assert.Equal(t, now, created.CreatedAt)
	})

	t.Run("resolves tag names", func(t *testing.T) {
		svc := newServices(t)
		work := addTag(t, svc, "work")

		created := addTask(t, svc, models.CreateTaskInput{Title: "a", TagIDs: []int64{work}, DueDate: "2026-06-12"})
		require.Len(t, created.Tags, 1)
		assert.Equal(t, "work", created.Tags[0].Name)
		require.NotNil(t, created.DueDate)
		assert.Equal(t, "2026-06-12", *created.DueDate)
	})

	t.Run("rejects unknown tags", func(t *testing.T) {
		svc := newServices(t)
		_, err := svc.Tasks.Add(ctx, models.CreateTaskInput{Title: "a", TagIDs: []int64{7}})
		require.Error(t, err)
		assert.True(t, shared.IsValidation(err))
		assert.Contains(t, err.Error(), "7")
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		svc := newServices(t)
		for _, in := range []models.CreateTaskInput{
			{Title: "   "},
			{Title: "a", Status: "blocked"},
			{Title: "a", Priority: "urgent"},
			{Title: "a", DueDate: "2026-02-30"},
		} {
			_, err := svc.Tasks.Add(ctx, in)
			assert.True(t, shared.IsValidation(err), "input %+v", in)
		}
	})

	t.Run("completed on creation has completion time", func(t *testing.T) {
		svc := newServices(t)
		created := addTask(t, svc, models.CreateTaskInput{Title: "a", Status: "done"})
		assert.Equal(t, "completed", created.Status)
		require.NotNil(t, created.CompletedAt)
	})
}

func TestTaskService_Edit(t *testing.T) {
	ctx := context.Background()

	t.Run("updates only provided fields", func(t *testing.T) {
		svc := newServices(t)
		created := addTask(t, svc, models.CreateTaskInput{Title: "a", Description: "keep", DueDate: "2026-06-12"})

		edited, err := svc.Tasks.Edit(ctx, created.ID, models.UpdateTaskInput{
			Title:    ptr("b"),
			Priority: ptr("critical"),
		})
		require.NoError(t, err)
		assert.Equal(t, "b", edited.Title)
		assert.Equal(t, "critical", edited.Priority)
		require.NotNil(t, edited.Description)
		assert.Equal(t, "keep", *edited.Description)
		require.NotNil(t, edited.DueDate)
	})

	t.Run("clears due date", func(t *testing.T) {
		svc := newServices(t)
		created := addTask(t, svc, models.CreateTaskInput{Title: "a", DueDate: "2026-06-12"})

		edited, err := svc.Tasks.Edit(ctx, created.ID, models.UpdateTaskInput{ClearDueDate: true})
		require.NoError(t, err)
		assert.Nil(t, edited.DueDate)
	})

	t.Run("status change to completed stamps completion", func(t *testing.T) {
		svc := newServices(t)
		created := addTask(t, svc, models.CreateTaskInput{Title: "a"})

		edited, err := svc.Tasks.Edit(ctx, created.ID, models.UpdateTaskInput{Status: ptr("completed")})
		require.NoError(t, err)
		assert.NotNil(t, edited.CompletedAt)
	})

	t.Run("replaces tags", func(t *testing.T) {
		svc := newServices(t)
		a := addTag(t, svc, "a")
		b := addTag(t, svc, "b")
		created := addTask(t, svc, models.CreateTaskInput{Title: "x", TagIDs: []int64{a}})

		edited, err := svc.Tasks.Edit(ctx, created.ID, models.UpdateTaskInput{TagIDs: &[]int64{b}})
		require.NoError(t, err)
		require.Len(t, edited.Tags, 1)
		assert.Equal(t, b, edited.Tags[0].ID)
	})

	t.Run("repeated tag ids are stored once", func(t *testing.T) {
		svc := newServices(t)
		work := addTag(t, svc, "work")
		home := addTag(t, svc, "home")
		created := addTask(t, svc, models.CreateTaskInput{Title: "x"})

		edited, err := svc.Tasks.Edit(ctx, created.ID, models.UpdateTaskInput{TagIDs: &[]int64{home, work, home, work}})
		require.NoError(t, err)
		assert.Equal(t, []models.TagInfo{{ID: home, Name: "home"}, {ID: work, Name: "work"}}, edited.Tags)

		stats, err := svc.Stats.Show(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.TagStats["work"])
		assert.Equal(t, 1, stats.TagStats["home"])
	})

	t.Run("unknown task", func(t *testing.T) {
		svc := newServices(t)
		_, err := svc.Tasks.Edit(ctx, 42, models.UpdateTaskInput{Title: ptr("b")})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestTaskService_CompleteAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newServices(t)
	created := addTask(t, svc, models.CreateTaskInput{Title: "a"})

	done, err := svc.Tasks.Complete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", done.Status)

	again, err := svc.Tasks.Complete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, done.CompletedAt, again.CompletedAt)

	require.NoError(t, svc.Tasks.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Tasks.Delete(ctx, created.ID), shared.ErrNotFound)

	_, err = svc.Tasks.Get(ctx, created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestTaskService_TagMembership(t *testing.T) {
	ctx := context.Background()
	svc := newServices(t)
	work := addTag(t, svc, "work")
	created := addTask(t, svc, models.CreateTaskInput{Title: "a"})

	tagged, err := svc.Tasks.AddTag(ctx, created.ID, work)
	require.NoError(t, err)
	assert.Len(t, tagged.Tags, 1)

	_, err = svc.Tasks.AddTag(ctx, created.ID, work)
	assert.ErrorIs(t, err, shared.ErrDuplicateTag)

	untagged, err := svc.Tasks.RemoveTag(ctx, created.ID, work)
	require.NoError(t, err)
	assert.Empty(t, untagged.Tags)

	_, err = svc.Tasks.RemoveTag(ctx, created.ID, work)
	assert.ErrorIs(t, err, shared.ErrTagNotFound)
}

func TestTaskService_List(t *testing.T) {
	ctx := context.Background()
	svc := newServices(t)
	work := addTag(t, svc, "work")
	addTask(t, svc, models.CreateTaskInput{Title: "low", Priority: "low", DueDate: "2026-06-20"})
	addTask(t, svc, models.CreateTaskInput{Title: "high", Priority: "high", TagIDs: []int64{work}})
	addTask(t, svc, models.CreateTaskInput{Title: "crit", Priority: "critical", Status: "in_progress", DueDate: "2026-06-11"})

	t.Run("default order is creation", func(t *testing.T) {
		got, err := svc.Tasks.List(ctx, ListOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"low", "high", "crit"}, titles(got))
	})

	t.Run("sorted by priority descending", func(t *testing.T) {
		got, err := svc.Tasks.List(ctx, ListOptions{SortBy: SortByPriority, Order: OrderDesc})
		require.NoError(t, err)
		assert.Equal(t, []string{"crit", "high", "low"}, titles(got))
	})

	t.Run("sorted by due date puts undated last", func(t *testing.T) {
		got, err := svc.Tasks.List(ctx, ListOptions{SortBy: SortByDueDate})
		require.NoError(t, err)
		assert.Equal(t, []string{"crit", "low", "high"}, titles(got))
	})

	t.Run("filters combine with and", func(t *testing.T) {
		got, err := svc.Tasks.List(ctx, ListOptions{Filters: []string{"status:pending", "tag:1"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"high"}, titles(got))
	})

	t.Run("invalid filter", func(t *testing.T) {
		_, err := svc.Tasks.List(ctx, ListOptions{Filters: []string{"colour:red"}})
		assert.True(t, shared.IsValidation(err))
	})
}

func TestTaskService_Search(t *testing.T) {
	ctx := context.Background()
	svc := newServices(t)
	addTask(t, svc, models.CreateTaskInput{Title: "Write Report", Description: "quarterly numbers"})
	addTask(t, svc, models.CreateTaskInput{Title: "Read report", Status: "completed"})

	t.Run("all keywords must match", func(t *testing.T) {
		got, err := svc.Tasks.Search(ctx, "report write", task.SearchAll, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"Write Report"}, titles(got))
	})

	t.Run("field restricts the match", func(t *testing.T) {
		got, err := svc.Tasks.Search(ctx, "quarterly", task.SearchTitle, nil)
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = svc.Tasks.Search(ctx, "QUARTERLY", task.SearchDescription, nil)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("filters narrow results", func(t *testing.T) {
		got, err := svc.Tasks.Search(ctx, "report", task.SearchAll, []string{"status:done"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Read report"}, titles(got))
	})

	t.Run("empty query", func(t *testing.T) {
		_, err := svc.Tasks.Search(ctx, "  ", task.SearchAll, nil)
		assert.True(t, shared.IsValidation(err))
	})
}

func TestTaskService_OverdueAndBoard(t *testing.T) {
	ctx := context.Background()
	svc := newServices(t)
	addTask(t, svc, models.CreateTaskInput{Title: "late", DueDate: "2026-06-01"})
	addTask(t, svc, models.CreateTaskInput{Title: "later", DueDate: "2026-05-01", Priority: "high"})
	addTask(t, svc, models.CreateTaskInput{Title: "late but done", DueDate: "2026-06-01", Status: "completed"})
	addTask(t, svc, models.CreateTaskInput{Title: "today", DueDate: "2026-06-10", Status: "in_progress"})

	overdue, err := svc.Tasks.Overdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"later", "late"}, titles(overdue))

	board, err := svc.Tasks.Board(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"later", "late"}, titles(board.Pending))
	assert.Equal(t, []string{"today"}, titles(board.InProgress))
	assert.Equal(t, []string{"late but done"}, titles(board.Completed))
}

func TestTagService(t *testing.T) {
	ctx := context.Background()

	t.Run("names are unique", func(t *testing.T) {
		svc := newServices(t)
		addTag(t, svc, "work")
		_, err := svc.Tags.Add(ctx, models.CreateTagInput{Name: "work"})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("rename to an existing name fails", func(t *testing.T) {
		svc := newServices(t)
		addTag(t, svc, "work")
		home := addTag(t, svc, "home")
		_, err := svc.Tags.Edit(ctx, home, models.UpdateTagInput{Name: ptr("work")})
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("edit keeps the same name", func(t *testing.T) {
		svc := newServices(t)
		home := addTag(t, svc, "home")
		edited, err := svc.Tags.Edit(ctx, home, models.UpdateTagInput{Name: ptr("home"), Description: ptr("chores")})
		require.NoError(t, err)
		require.NotNil(t, edited.Description)
		assert.Equal(t, "chores", *edited.Description)
	})

	t.Run("tag in use cannot be deleted", func(t *testing.T) {
		svc := newServices(t)
		work := addTag(t, svc, "work")
		created := addTask(t, svc, models.CreateTaskInput{Title: "a", TagIDs: []int64{work}})

		assert.ErrorIs(t, svc.Tags.Delete(ctx, work), shared.ErrTagInUse)

		_, err := svc.Tasks.RemoveTag(ctx, created.ID, work)
		require.NoError(t, err)
		require.NoError(t, svc.Tags.Delete(ctx, work))

		tags, err := svc.Tags.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, tags)
	})

	t.Run("unknown tag", func(t *testing.T) {
		svc := newServices(t)
		_, err := svc.Tags.Get(ctx, 3)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.ErrorIs(t, svc.Tags.Delete(ctx, 3), shared.ErrNotFound)
	})
}

func TestStatsService_Show(t *testing.T) {
	ctx := context.Background()
	svc := newServices(t)
	work := addTag(t, svc, "work")
	addTask(t, svc, models.CreateTaskInput{Title: "a", DueDate: "2026-06-09", TagIDs: []int64{work}})
	addTask(t, svc, models.CreateTaskInput{Title: "b", DueDate: "2026-06-10", Priority: "high"})
	addTask(t, svc, models.CreateTaskInput{Title: "c", DueDate: "2026-06-30", Status: "completed"})

	got, err := svc.Stats.Show(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, got.TotalCount)
	assert.Equal(t, map[string]int{"pending": 2, "completed": 1}, got.StatusStats)
	assert.Equal(t, map[string]int{"medium": 2, "high": 1}, got.PriorityStats)
	assert.Equal(t, map[string]int{"overdue": 1, "due_today": 1}, got.DueDateStats)
	assert.Equal(t, map[string]int{"work": 1, models.NoTagLabel: 2}, got.TagStats)
	assert.Equal(t, 1, got.PriorityStatusMatrix["high:pending"])
	assert.NotContains(t, got.PriorityStatusMatrix, "low:pending")
}
