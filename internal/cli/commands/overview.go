package commands

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// NewOverviewCommand creates the overview command.
func NewOverviewCommand() *cli.Command {
	return &cli.Command{
		Name:    "overview",
		Aliases: []string{"help-all"},
		Usage:   "Show all available features and commands",
		Action: func(c *cli.Context) error {
			fmt.Fprint(c.App.Writer, `
╔═══════════════════════════════════════════════════════════════════╗
║                          ✅ yaru                                  ║
║                      Feature Overview                             ║
╚═══════════════════════════════════════════════════════════════════╝

📋 TASKS
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
  yaru task list                 List tasks (--filter, --sort, --order)
  yaru task add "title"          Create a task (no title: interactive)
  yaru task show <id>            Show task details (--copy)
  yaru task edit <id>            Update task properties
  yaru task done <id>            Complete a task
  yaru task delete <id>          Delete a task
  yaru task search "words"       Keyword search (--field title|description|all)
  yaru task overdue              Tasks past their due date
  yaru task tag <id> <tag>       Attach a tag
  yaru task untag <id> <tag>     Detach a tag

🏷️  TAGS
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
  yaru tag list                  List all tags
  yaru tag add "name"            Create a tag
  yaru tag edit <id>             Rename or describe a tag
  yaru tag delete <id>           Delete an unused tag

📊 REPORTS & VIEWS
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
  yaru board                     Kanban board view
  yaru tui                       Interactive board
  yaru stats                     Task statistics

🌐 SERVERS
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
  yaru serve                     REST API (server.addr)
  yaru mcp serve                 MCP server over stdio
  yaru mcp config                Client config snippet
  yaru mcp tools                 List MCP tools

⚙️  CONFIGURATION
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
  yaru config init               Write a default config.toml
  yaru config show               Effective configuration
  yaru config check              Check storage connectivity
  yaru config set-password       Keep the postgres password in the keyring

━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
💡 TIP: Use 'yaru <command> --help' for detailed command usage.
━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━
`)
			return nil
		},
	}
}
