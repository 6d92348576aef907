package commands

import (
	"github.com/kutbudev/yaru/internal/tui"
	"github.com/urfave/cli/v2"
)

// NewTuiCommand opens the interactive board.
func NewTuiCommand() *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"ui"},
		Usage:   "Open the interactive kanban board",
		Action: func(c *cli.Context) error {
			return withServices(c, func(rt *runtime) error {
				return tui.Run(c.Context, rt.services.Tasks)
			})
		},
	}
}
