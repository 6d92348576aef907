package commands

import (
	"fmt"
	"strings"

	"github.com/kutbudev/yaru/internal/models"
	"github.com/urfave/cli/v2"
)

// NewTagCommand creates all subcommands for the 'tag' command group.
func NewTagCommand() *cli.Command {
	return &cli.Command{
		Name:    "tag",
		Aliases: []string{"g"},
		Usage:   "Manage tags",
		Subcommands: []*cli.Command{
			tagListCmd(),
			tagShowCmd(),
			tagAddCmd(),
			tagEditCmd(),
			tagDeleteCmd(),
		},
	}
}

// tagListCmd lists all tags.
func tagListCmd() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List all tags",
		Flags:   []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			return withServices(c, func(rt *runtime) error {
				tags, err := rt.services.Tags.List(c.Context)
				if err != nil {
					return fmt.Errorf("error listing tags: %w", err)
				}
				if c.Bool("json") {
					return writeJSON(c.App.Writer, tags)
				}
				if len(tags) == 0 {
					fmt.Fprintln(c.App.Writer, "No tags found. Use 'yaru tag add' to add one.")
					return nil
				}
				fmt.Fprint(c.App.Writer, renderTagTable(tags))
				return nil
			})
		},
	}
}

// tagShowCmd shows details for a specific tag.
func tagShowCmd() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show details for a tag",
		ArgsUsage: "[tag-id]",
		Flags:     []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("tag ID is required")
			}
			id, err := parseID("tag", c.Args().First())
			if err != nil {
				return err
			}
			return withServices(c, func(rt *runtime) error {
				t, err := rt.services.Tags.Get(c.Context, id)
				if err != nil {
					return fmt.Errorf("error getting tag: %w", err)
				}
				if c.Bool("json") {
					return writeJSON(c.App.Writer, t)
				}
				w := c.App.Writer
				fmt.Fprintf(w, "Tag Details for '%s':\n", t.Name)
				fmt.Fprintf(w, "----------------------------------\n")
				fmt.Fprintf(w, "ID:          %d\n", t.ID)
				fmt.Fprintf(w, "Name:        %s\n", t.Name)
				fmt.Fprintf(w, "Description: %s\n", valueOr(t.Description, "-"))
				fmt.Fprintf(w, "Created At:  %s\n", t.CreatedAt.Format("2006-01-02 15:04:05"))
				fmt.Fprintf(w, "Updated At:  %s\n", t.UpdatedAt.Format("2006-01-02 15:04:05"))
				return nil
			})
		},
	}
}

// tagAddCmd creates a new tag.
func tagAddCmd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Aliases:   []string{"create"},
		Usage:     "Create a new tag",
		ArgsUsage: "[name]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "Tag description",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("tag name is required")
			}
			in := models.CreateTagInput{
				Name:        strings.Join(c.Args().Slice(), " "),
				Description: c.String("description"),
			}
			return withServices(c, func(rt *runtime) error {
				t, err := rt.services.Tags.Add(c.Context, in)
				if err != nil {
					return fmt.Errorf("error creating tag: %w", err)
				}
				fmt.Fprintf(c.App.Writer, "✅ Tag '%s' created successfully!\n", t.Name)
				fmt.Fprintf(c.App.Writer, "ID: %d\n", t.ID)
				return nil
			})
		},
	}
}

// tagEditCmd updates a tag.
func tagEditCmd() *cli.Command {
	return &cli.Command{
		Name:      "edit",
		Aliases:   []string{"update"},
		Usage:     "Update a tag's properties",
		ArgsUsage: "[tag-id]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "New tag name",
			},
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "New tag description",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("tag ID is required")
			}
			id, err := parseID("tag", c.Args().First())
			if err != nil {
				return err
			}

			var in models.UpdateTagInput
			if c.IsSet("name") {
				in.Name = stringPtr(c.String("name"))
			}
			if c.IsSet("description") {
				in.Description = stringPtr(c.String("description"))
			}
			if in.Name == nil && in.Description == nil {
				fmt.Fprintln(c.App.Writer, "No update fields provided.")
				return nil
			}

			return withServices(c, func(rt *runtime) error {
				t, err := rt.services.Tags.Edit(c.Context, id, in)
				if err != nil {
					return fmt.Errorf("error updating tag: %w", err)
				}
				fmt.Fprintf(c.App.Writer, "✅ Tag '%s' (ID: %d) updated successfully.\n", t.Name, t.ID)
				return nil
			})
		},
	}
}

// tagDeleteCmd deletes a tag that no task uses.
func tagDeleteCmd() *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete a tag",
		ArgsUsage: "[tag-id]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return fmt.Errorf("tag ID is required")
			}
			id, err := parseID("tag", c.Args().First())
			if err != nil {
				return err
			}
			if !c.Bool("yes") {
				ok, err := askForConfirmation(fmt.Sprintf("Delete tag %d?", id))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(c.App.Writer, "Cancelled.")
					return nil
				}
			}
			return withServices(c, func(rt *runtime) error {
				if err := rt.services.Tags.Delete(c.Context, id); err != nil {
					return fmt.Errorf("error deleting tag: %w", err)
				}
				fmt.Fprintf(c.App.Writer, "🗑️ Tag %d deleted successfully.\n", id)
				return nil
			})
		},
	}
}
