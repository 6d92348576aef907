package repository

import (
	"context"
	"fmt"

	"github.com/kutbudev/yaru/internal/domain/shared"
	"github.com/kutbudev/yaru/internal/domain/tag"
	"github.com/kutbudev/yaru/internal/domain/task"
	"github.com/kutbudev/yaru/pkg/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the tasks, tags and task_tags tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Task{},
		&models.Tag{},
		&models.TaskTag{},
	)
}

// Reset drops every table, link table first.
func Reset(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.TaskTag{}, &models.Task{}, &models.Tag{})
}

// TableCount is a row count for one table
type TableCount struct {
	Table  string
	Exists bool
	Rows   int64
}

// Status reports which tables exist and how many rows they hold
func Status(db *gorm.DB) ([]TableCount, error) {
	tables := []struct {
		name  string
		model any
	}{
		{"tasks", &models.Task{}},
		{"tags", &models.Tag{}},
		{"task_tags", &models.TaskTag{}},
	}
	out := make([]TableCount, 0, len(tables))
	for _, t := range tables {
		tc := TableCount{Table: t.name, Exists: db.Migrator().HasTable(t.model)}
		if tc.Exists {
			if err := db.Model(t.model).Count(&tc.Rows).Error; err != nil {
				return nil, fmt.Errorf("failed to count %s: %w", t.name, err)
			}
		}
		out = append(out, tc)
	}
	return out, nil
}

type seedTask struct {
	title       string
	description string
	status      task.Status
	priority    task.Priority
	tags        []string
	dueInDays   *int
}

func days(n int) *int { return &n }

// Seed inserts sample tags and tasks through the repositories. Due dates are
// relative to clock; nil means the system clock. Existing tags are reused.
func Seed(ctx context.Context, db *gorm.DB, clock shared.Clock) error {
	if clock == nil {
		clock = shared.SystemClock
	}
	tags := NewTagRepository(db)
	tasks := NewTaskRepository(db)

	tagIDs := map[string]tag.ID{}
	for _, name := range []string{"work", "home", "urgent", "learning"} {
		n, err := tag.NewName(name)
		if err != nil {
			return err
		}
		if existing, err := tags.FindByName(ctx, n); err != nil {
			return err
		} else if existing != nil {
			tagIDs[name] = existing.ID()
			continue
		}
		saved, err := tags.Save(ctx, tag.New(n, tag.NewDescription(""), tag.WithClock(clock)))
		if err != nil {
			return fmt.Errorf("failed to seed tag %s: %w", name, err)
		}
		tagIDs[name] = saved.ID()
	}

	today := task.DueDateFromTime(clock())
	samples := []seedTask{
		{"Prepare quarterly report", "Numbers for **Q3**", task.StatusInProgress, task.PriorityHigh, []string{"work", "urgent"}, days(2)},
		{"Renew passport", "", task.StatusPending, task.PriorityCritical, []string{"home"}, days(-3)},
		{"Read the Go memory model", "", task.StatusPending, task.PriorityLow, []string{"learning"}, nil},
		{"Fix the kitchen tap", "", task.StatusCompleted, task.PriorityMedium, []string{"home"}, days(-1)},
		{"Plan team offsite", "", task.StatusPending, task.PriorityMedium, nil, days(0)},
	}
	for _, s := range samples {
		title, err := task.NewTitle(s.title)
		if err != nil {
			return err
		}
		ids := make([]tag.ID, 0, len(s.tags))
		for _, name := range s.tags {
			ids = append(ids, tagIDs[name])
		}
		var due *task.DueDate
		if s.dueInDays != nil {
			d := today.AddDays(*s.dueInDays)
			due = &d
		}
		t := task.New(title, task.NewDescription(s.description), s.status, s.priority, ids, due, task.WithClock(clock))
		if _, err := tasks.Save(ctx, t); err != nil {
			return fmt.Errorf("failed to seed task %q: %w", s.title, err)
		}
	}
	return nil
}

