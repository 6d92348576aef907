package commands

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/kutbudev/yaru/internal/app"
	"github.com/kutbudev/yaru/internal/domain/task"
	"github.com/kutbudev/yaru/internal/models"
	"github.com/urfave/cli/v2"
)

// NewTaskCommand creates all subcommands for the 'task' command group.
func NewTaskCommand() *cli.Command {
	return &cli.Command{
		Name:    "task",
		Aliases: []string{"t"},
		Usage:   "Manage tasks",
		Subcommands: []*cli.Command{
			taskListCmd(),
			taskShowCmd(),
			taskAddCmd(),
			taskEditCmd(),
			taskDoneCmd(),
			taskDeleteCmd(),
			taskSearchCmd(),
			taskOverdueCmd(),
			taskTagCmd(),
			taskUntagCmd(),
		},
	}
}

func jsonFlag() cli.Flag {
	return &cli.BoolFlag{Name: "json", Usage: "Print JSON instead of a table"}
}

func filterFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    "filter",
		Aliases: []string{"f"},
		Usage:   "Filter as key:value (status, priority, tag); repeat to combine",
	}
}

func printTasks(c *cli.Context, tasks []models.Task, empty string) error {
	if c.Bool("json") {
		return writeJSON(c.App.Writer, tasks)
	}
	if len(tasks) == 0 {
		fmt.Fprintln(c.App.Writer, empty)
		return nil
	}
	fmt.Fprint(c.App.Writer, renderTaskTable(tasks, terminalWidth()))
	fmt.Fprintf(c.App.Writer, "%d task(s)\n", len(tasks))
	return nil
}

// taskListCmd lists tasks.
func taskListCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List tasks",
		Flags: []cli.Flag{
			filterFlag(),
			&cli.StringFlag{
				Name:    "sort",
				Aliases: []string{"s"},
				Usage:   "Sort by priority, due_date or created_at",
				Value:   string(app.SortByCreatedAt),
			},
			&cli.StringFlag{
				Name:    "order",
				Aliases: []string{"o"},
				Usage:   "Sort order: asc or desc",
				Value:   string(app.OrderAsc),
			},
			jsonFlag(),
		},
		Action: func(c *cli.Context) error {
			sortBy, err := app.ParseSortKey(c.String("sort"))
			if err != nil {
				return err
			}
			order, err := app.ParseOrder(c.String("order"))
			if err != nil {
				return err
			}
			return withServices(c, func(rt *runtime) error {
				tasks, err := rt.services.Tasks.List(c.Context, app.ListOptions{
					Filters: c.StringSlice("filter"),
					SortBy:  sortBy,
					Order:   order,
				})
				if err != nil {
					return fmt.Errorf("error listing tasks: %w", err)
				}
				return printTasks(c, tasks, "No tasks found. Use 'yaru task add' to create one.")
			})
		},
	}
}

// taskShowCmd shows details for a specific task.
func taskShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show details for a task",
		ArgsUsage: "[task-id]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "copy", Aliases: []string{"c"}, Usage: "Copy the task to the clipboard"},
			jsonFlag(),
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("task ID is required")
			}
			id, err := parseID("task", c.Args().First())
			if err != nil {
				return err
			}
			return withServices(c, func(rt *runtime) error {
				t, err := rt.services.Tasks.Get(c.Context, id)
				if err != nil {
					return fmt.Errorf("error getting task: %w", err)
				}
				if c.Bool("json") {
					return writeJSON(c.App.Writer, t)
				}
				fmt.Fprint(c.App.Writer, formatTaskDetails(t))
				if t.Description != nil {
					fmt.Fprint(c.App.Writer, renderMarkdown(*t.Description, terminalWidth()))
				}
				if c.Bool("copy") {
					if err := clipboard.WriteAll(plainTaskText(t)); err != nil {
						return fmt.Errorf("failed to copy to clipboard: %w", err)
					}
					fmt.Fprintln(c.App.Writer, "📋 Copied to clipboard")
				}
				return nil
			})
		},
	}
}

func taskFieldFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Task description (markdown)"},
		&cli.StringFlag{Name: "status", Usage: "Status: pending, in_progress or completed"},
		&cli.StringFlag{Name: "priority", Aliases: []string{"p"}, Usage: "Priority: low, medium, high or critical"},
		&cli.StringFlag{Name: "tags", Aliases: []string{"t"}, Usage: "Comma separated tag IDs, e.g. 1,3"},
		&cli.StringFlag{Name: "due-date", Aliases: []string{"due"}, Usage: "Due date as YYYY-MM-DD"},
	}
}

// taskAddCmd creates a new task.
func taskAddCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Aliases:   []string{"create"},
		Usage:     "Create a new task",
		ArgsUsage: "[title]",
		Flags: append(taskFieldFlags(),
			&cli.BoolFlag{Name: "interactive", Aliases: []string{"i"}, Usage: "Prompt for the task fields"},
		),
		Action: func(c *cli.Context) error {
			in := models.CreateTaskInput{
				Title:       strings.Join(c.Args().Slice(), " "),
				Description: c.String("description"),
				Status:      c.String("status"),
				Priority:    c.String("priority"),
				DueDate:     c.String("due-date"),
			}
			tagIDs, err := parseIDList("tag", c.String("tags"))
			if err != nil {
				return err
			}
			in.TagIDs = tagIDs

			if in.Title == "" || c.Bool("interactive") {
				if err := promptNewTask(&in); err != nil {
					return err
				}
			}

			return withServices(c, func(rt *runtime) error {
				t, err := rt.services.Tasks.Add(c.Context, in)
				if err != nil {
					return fmt.Errorf("error creating task: %w", err)
				}
				fmt.Fprintf(c.App.Writer, "✅ Task '%s' created successfully!\n", t.Title)
				fmt.Fprintf(c.App.Writer, "ID: %d\n", t.ID)
				return nil
			})
		},
	}
}

// taskEditCmd updates a task. Only flags that are set are changed.
func taskEditCmd() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Aliases:   []string{"update"},
		Usage:     "Update a task's properties",
		ArgsUsage: "[task-id]",
		Flags: append(taskFieldFlags(),
			&cli.StringFlag{Name: "title", Usage: "New title"},
			&cli.BoolFlag{Name: "clear-due-date", Usage: "Remove the due date"},
		),
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("task ID is required")
			}
			id, err := parseID("task", c.Args().First())
			if err != nil {
				return err
			}

			var in models.UpdateTaskInput
			for name, dst := range map[string]**string{
				"title":       &in.Title,
				"description": &in.Description,
				"status":      &in.Status,
				"priority":    &in.Priority,
				"due-date":    &in.DueDate,
			} {
				if c.IsSet(name) {
					*dst = stringPtr(c.String(name))
				}
			}
			if c.IsSet("tags") {
				tagIDs, err := parseIDList("tag", c.String("tags"))
				if err != nil {
					return err
				}
				in.TagIDs = &tagIDs
			}
			in.ClearDueDate = c.Bool("clear-due-date")

			if in.IsEmpty() {
				fmt.Fprintln(c.App.Writer, "No update fields provided.")
				return nil
			}

			return withServices(c, func(rt *runtime) error {
				t, err := rt.services.Tasks.Edit(c.Context, id, in)
				if err != nil {
					return fmt.Errorf("error updating task: %w", err)
				}
				fmt.Fprintf(c.App.Writer, "✅ Task '%s' (ID: %d) updated successfully.\n", t.Title, t.ID)
				return nil
			})
		},
	}
}

// taskDoneCmd marks a task completed.
func taskDoneCmd() *cli.Command {
	return &cli.Command{
		Name:      "done",
		Aliases:   []string{"complete"},
		Usage:     "Mark a task as completed",
		ArgsUsage: "[task-id]",
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("task ID is required")
			}
			id, err := parseID("task", c.Args().First())
			if err != nil {
				return err
			}
			return withServices(c, func(rt *runtime) error {
				t, err := rt.services.Tasks.Complete(c.Context, id)
				if err != nil {
					return fmt.Errorf("error completing task: %w", err)
				}
				fmt.Fprintf(c.App.Writer, "✅ Task '%s' completed.\n", t.Title)
				return nil
			})
		},
	}
}

// taskDeleteCmd deletes a task.
func taskDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a task",
		ArgsUsage: "[task-id]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("task ID is required")
			}
			id, err := parseID("task", c.Args().First())
			if err != nil {
				return err
			}
			if !c.Bool("yes") {
				ok, err := askForConfirmation(fmt.Sprintf("Delete task %d?", id))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(c.App.Writer, "Cancelled.")
					return nil
				}
			}
			return withServices(c, func(rt *runtime) error {
				if err := rt.services.Tasks.Delete(c.Context, id); err != nil {
					return fmt.Errorf("error deleting task: %w", err)
				}
				fmt.Fprintf(c.App.Writer, "🗑️ Task %d deleted successfully.\n", id)
				return nil
			})
		},
	}
}

// taskSearchCmd runs a keyword search.
func taskSearchCmd() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search tasks by keywords",
		ArgsUsage: "[keywords...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "field", Usage: "Field to search: title, description or all", Value: "all"},
			filterFlag(),
			jsonFlag(),
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("search query is required")
			}
			field, err := task.ParseSearchField(c.String("field"))
			if err != nil {
				return err
			}
			query := strings.Join(c.Args().Slice(), " ")
			return withServices(c, func(rt *runtime) error {
				tasks, err := rt.services.Tasks.Search(c.Context, query, field, c.StringSlice("filter"))
				if err != nil {
					return fmt.Errorf("error searching tasks: %w", err)
				}
				return printTasks(c, tasks, fmt.Sprintf("No tasks match %q.", query))
			})
		},
	}
}

// taskOverdueCmd lists overdue tasks.
func taskOverdueCmd() *cli.Command {
	return &cli.Command{
		Name:  "overdue",
		Usage: "List overdue tasks",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			return withServices(c, func(rt *runtime) error {
				tasks, err := rt.services.Tasks.Overdue(c.Context)
				if err != nil {
					return fmt.Errorf("error listing overdue tasks: %w", err)
				}
				return printTasks(c, tasks, "🎉 Nothing is overdue.")
			})
		},
	}
}

func taskTagCmd() *cli.Command {
	return &cli.Command{
		Name:      "tag",
		Usage:     "Attach a tag to a task",
		ArgsUsage: "[task-id] [tag-id]",
		Action: func(c *cli.Context) error {
			id, tagID, err := taskAndTagArgs(c)
			if err != nil {
				return err
			}
			return withServices(c, func(rt *runtime) error {
				t, err := rt.services.Tasks.AddTag(c.Context, id, tagID)
				if err != nil {
					return fmt.Errorf("error tagging task: %w", err)
				}
				fmt.Fprintf(c.App.Writer, "🏷️ Task %d tags: %s\n", t.ID, tagList(t.Tags))
				return nil
			})
		},
	}
}

func taskUntagCmd() *cli.Command {
	return &cli.Command{
		Name:      "untag",
		Usage:     "Detach a tag from a task",
		ArgsUsage: "[task-id] [tag-id]",
		Action: func(c *cli.Context) error {
			id, tagID, err := taskAndTagArgs(c)
			if err != nil {
				return err
			}
			return withServices(c, func(rt *runtime) error {
				t, err := rt.services.Tasks.RemoveTag(c.Context, id, tagID)
				if err != nil {
					return fmt.Errorf("error untagging task: %w", err)
				}
				fmt.Fprintf(c.App.Writer, "🏷️ Task %d tags: %s\n", t.ID, valueOr(stringPtr(tagList(t.Tags)), "(none)"))
				return nil
			})
		},
	}
}

func taskAndTagArgs(c *cli.Context) (int64, int64, error) {
	if c.NArg() < 2 {
		return 0, 0, fmt.Errorf("task ID and tag ID are required")
	}
	id, err := parseID("task", c.Args().Get(0))
	if err != nil {
		return 0, 0, err
	}
	tagID, err := parseID("tag", c.Args().Get(1))
	if err != nil {
		return 0, 0, err
	}
	return id, tagID, nil
}
