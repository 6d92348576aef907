package commands

import (
	"github.com/urfave/cli/v2"
)

// NewApp assembles the yaru command line.
func NewApp(version string) *cli.App {
	return &cli.App{
		Name:                 "yaru",
		Usage:                "A local task manager with tags, statistics, a REST API and an MCP server",
		Version:              version,
		EnableBashCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config.toml",
				EnvVars: []string{"YARU_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			NewTaskCommand(),
			NewTagCommand(),
			NewBoardCommand(),
			NewStatsCommand(),
			NewTuiCommand(),
			NewServeCommand(),
			NewMcpCommand(),
			NewConfigCommand(),
			NewOverviewCommand(),
		},
	}
}
