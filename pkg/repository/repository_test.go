package repository

import (
	"context"
	"testing"
	"time"

	"github.com/kutbudev/yaru/internal/config"
	"github.com/kutbudev/yaru/internal/domain/shared"
	"github.com/kutbudev/yaru/internal/domain/tag"
	"github.com/kutbudev/yaru/internal/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return epoch }

func setupTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(&config.StorageConfig{
		Driver:      config.DriverSQLite,
		DatabaseURL: "sqlite://:memory:",
	}, nil, "silent")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func saveTag(t *testing.T, repo *TagRepository, name string) *tag.Tag {
	t.Helper()
	n, err := tag.NewName(name)
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), tag.New(n, tag.NewDescription(""), tag.WithClock(clock)))
	require.NoError(t, err)
	return saved
}

func newTask(t *testing.T, title string, tags ...tag.ID) *task.Task {
	t.Helper()
	tt, err := task.NewTitle(title)
	require.NoError(t, err)
	due, err := task.NewDueDate(2026, time.June, 12)
	require.NoError(t, err)
	return task.New(tt, task.NewDescription("details"), task.StatusPending, task.PriorityHigh, tags, &due, task.WithClock(clock))
}

func TestDatabase(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, db.Health(context.Background()))

	status, err := Status(db.DB)
	require.NoError(t, err)
	require.Len(t, status, 3)
	for _, s := range status {
		assert.True(t, s.Exists, s.Table)
		assert.Zero(t, s.Rows, s.Table)
	}

	require.NoError(t, Reset(db.DB))
	status, err = Status(db.DB)
	require.NoError(t, err)
	assert.False(t, status[0].Exists)
}

func TestNewDatabase_UnknownDriver(t *testing.T) {
	_, err := NewDatabase(&config.StorageConfig{Driver: config.DriverJSON}, nil, "")
	assert.Error(t, err)
}

func TestTaskRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("round trips every field", func(t *testing.T) {
		db := setupTestDB(t)
		tags := NewTagRepository(db.DB)
		repo := NewTaskRepository(db.DB)
		b := saveTag(t, tags, "b")
		a := saveTag(t, tags, "a")

		saved, err := repo.Save(ctx, newTask(t, "Write report", b.ID(), a.ID()))
		require.NoError(t, err)
		assert.Equal(t, int64(1), saved.ID().Value())

		found, err := repo.FindByID(ctx, saved.ID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Write report", found.Title().Value())
		assert.Equal(t, "details", found.Description().Value())
		assert.Equal(t, task.StatusPending, found.Status())
		assert.Equal(t, task.PriorityHigh, found.Priority())
		assert.Equal(t, []tag.ID{b.ID(), a.ID()}, found.Tags())
		require.NotNil(t, found.DueDate())
		assert.Equal(t, "2026-06-12", found.DueDate().String())
		assert.True(t, epoch.Equal(found.CreatedAt()))
		assert.Nil(t, found.CompletedAt())
	})

	t.Run("find by id returns nil when absent", func(t *testing.T) {
		repo := NewTaskRepository(setupTestDB(t).DB)
		found, err := repo.FindByID(ctx, task.MustID(99))
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("update replaces fields and links", func(t *testing.T) {
		db := setupTestDB(t)
		tags := NewTagRepository(db.DB)
		repo := NewTaskRepository(db.DB)
		a := saveTag(t, tags, "a")
		b := saveTag(t, tags, "b")

		saved, err := repo.Save(ctx, newTask(t, "x", a.ID()))
		require.NoError(t, err)
		saved.UseClock(func() time.Time { return epoch.Add(time.Hour) })
		saved.ReplaceTags([]tag.ID{b.ID()})
		saved.ChangeDueDate(nil)
		saved.Complete()

		_, err = repo.Update(ctx, saved)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, saved.ID())
		require.NoError(t, err)
		assert.Equal(t, []tag.ID{b.ID()}, found.Tags())
		assert.Nil(t, found.DueDate())
		assert.Equal(t, task.StatusCompleted, found.Status())
		require.NotNil(t, found.CompletedAt())
	})

	t.Run("update with a repeated tag keeps one link", func(t *testing.T) {
		db := setupTestDB(t)
		tags := NewTagRepository(db.DB)
		repo := NewTaskRepository(db.DB)
		a := saveTag(t, tags, "a")

		saved, err := repo.Save(ctx, newTask(t, "x"))
		require.NoError(t, err)
		saved.ReplaceTags([]tag.ID{a.ID(), a.ID()})

		_, err = repo.Update(ctx, saved)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, saved.ID())
		require.NoError(t, err)
		assert.Equal(t, []tag.ID{a.ID()}, found.Tags())
	})

	t.Run("update of unknown task", func(t *testing.T) {
		repo := NewTaskRepository(setupTestDB(t).DB)
		_, err := repo.Update(ctx, newTask(t, "x").WithID(task.MustID(5)))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("save with identifier inserts when absent", func(t *testing.T) {
		repo := NewTaskRepository(setupTestDB(t).DB)
		_, err := repo.Save(ctx, newTask(t, "x").WithID(task.MustID(7)))
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, task.MustID(7))
		require.NoError(t, err)
		assert.NotNil(t, found)
	})

	t.Run("unknown tag is rejected", func(t *testing.T) {
		repo := NewTaskRepository(setupTestDB(t).DB)
		_, err := repo.Save(ctx, newTask(t, "x", tag.MustID(42)))
		assert.True(t, shared.IsValidation(err))
	})

	t.Run("specification filters", func(t *testing.T) {
		db := setupTestDB(t)
		tags := NewTagRepository(db.DB)
		repo := NewTaskRepository(db.DB)
		a := saveTag(t, tags, "a")
		_, err := repo.Save(ctx, newTask(t, "tagged", a.ID()))
		require.NoError(t, err)
		_, err = repo.Save(ctx, newTask(t, "plain"))
		require.NoError(t, err)

		found, err := repo.FindBySpecification(ctx, task.ByTag(a.ID()))
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "tagged", found[0].Title().Value())
	})

	t.Run("delete removes links", func(t *testing.T) {
		db := setupTestDB(t)
		tags := NewTagRepository(db.DB)
		repo := NewTaskRepository(db.DB)
		a := saveTag(t, tags, "a")
		saved, err := repo.Save(ctx, newTask(t, "x", a.ID()))
		require.NoError(t, err)

		removed, err := repo.Delete(ctx, saved.ID())
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = repo.Delete(ctx, saved.ID())
		require.NoError(t, err)
		assert.False(t, removed)

		ok, err := tags.Delete(ctx, a.ID())
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestTagRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("find by name and ids", func(t *testing.T) {
		repo := NewTagRepository(setupTestDB(t).DB)
		a := saveTag(t, repo, "a")
		b := saveTag(t, repo, "b")

		n, _ := tag.NewName("b")
		found, err := repo.FindByName(ctx, n)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.True(t, found.ID().Equals(b.ID()))

		many, err := repo.FindByIDs(ctx, []tag.ID{a.ID(), b.ID(), tag.MustID(999)})
		require.NoError(t, err)
		assert.Len(t, many, 2)

		none, err := repo.FindByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("duplicate names", func(t *testing.T) {
		repo := NewTagRepository(setupTestDB(t).DB)
		saveTag(t, repo, "a")
		n, _ := tag.NewName("a")
		_, err := repo.Save(ctx, tag.New(n, tag.NewDescription("")))
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("linked tag cannot be deleted", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewTagRepository(db.DB)
		a := saveTag(t, repo, "a")
		_, err := NewTaskRepository(db.DB).Save(ctx, newTask(t, "x", a.ID()))
		require.NoError(t, err)

		_, err = repo.Delete(ctx, a.ID())
		assert.ErrorIs(t, err, shared.ErrTagInUse)
	})

	t.Run("update renames", func(t *testing.T) {
		repo := NewTagRepository(setupTestDB(t).DB)
		a := saveTag(t, repo, "a")
		n, _ := tag.NewName("renamed")
		a.ChangeName(n)

		_, err := repo.Update(ctx, a)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, a.ID())
		require.NoError(t, err)
		assert.Equal(t, "renamed", found.Name().Value())

		_, err = repo.Update(ctx, a.WithID(tag.MustID(50)))
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestSeed(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	require.NoError(t, Seed(ctx, db.DB, clock))
	require.NoError(t, Seed(ctx, db.DB, clock))

	tags, err := NewTagRepository(db.DB).FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 4)

	tasks, err := NewTaskRepository(db.DB).FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 10)
}
