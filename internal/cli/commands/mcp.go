package commands

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kutbudev/yaru/internal/mcp"
	"github.com/urfave/cli/v2"
)

func NewMcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "MCP (Model Context Protocol) server management",
		Subcommands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start MCP server (stdio)",
				Action: func(c *cli.Context) error {
					return withServices(c, func(rt *runtime) error {
						ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
						defer stop()
						server := mcp.NewServer(rt.services, rt.cfg.MCP, c.App.Version, rt.log)
						return server.ServeStdio(ctx)
					})
				},
			},
			{
				Name:  "config",
				Usage: "Print MCP config examples for clients",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "client",
						Aliases: []string{"c"},
						Usage:   "target client (generic|codex)",
						Value:   "generic",
					},
				},
				Action: func(c *cli.Context) error {
					switch strings.ToLower(c.String("client")) {
					case "codex":
						printCodexConfig(c)
						return nil
					default:
						return printGenericConfig(c)
					}
				},
			},
			{
				Name:  "tools",
				Usage: "List available MCP tools",
				Action: func(c *cli.Context) error {
					tools, err := mcp.ToolDefinitions(c.Context)
					if err != nil {
						return fmt.Errorf("failed to list tools: %w", err)
					}
					return writeJSON(c.App.Writer, tools)
				},
			},
		},
	}
}

func serverArgs(c *cli.Context) []string {
	args := []string{}
	if path := c.String("config"); path != "" {
		args = append(args, "--config", path)
	}
	return append(args, "mcp", "serve")
}

func printGenericConfig(c *cli.Context) error {
	cfg := map[string]any{
		"mcpServers": map[string]any{
			"yaru": map[string]any{
				"command": "yaru",
				"args":    serverArgs(c),
			},
		},
	}
	return writeJSON(c.App.Writer, cfg)
}

func printCodexConfig(c *cli.Context) {
	quoted := make([]string, 0, 4)
	for _, a := range serverArgs(c) {
		quoted = append(quoted, fmt.Sprintf("%q", a))
	}
	w := c.App.Writer
	fmt.Fprintln(w, "# Add the following to ~/.codex/config.toml (merge with existing settings)")
	fmt.Fprintln(w, "[mcp_servers.yaru]")
	fmt.Fprintln(w, "command = \"yaru\"")
	fmt.Fprintf(w, "args = [%s]\n", strings.Join(quoted, ", "))
	fmt.Fprintln(w, "enabled = true")
}
