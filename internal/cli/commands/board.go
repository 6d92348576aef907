package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kutbudev/yaru/internal/models"
	"github.com/urfave/cli/v2"
)

// NewBoardCommand shows tasks as a kanban board.
func NewBoardCommand() *cli.Command {
	return &cli.Command{
		Name:    "board",
		Aliases: []string{"kanban"},
		Usage:   "Display tasks in a kanban board view",
		Flags:   []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			return withServices(c, func(rt *runtime) error {
				board, err := rt.services.Tasks.Board(c.Context)
				if err != nil {
					return fmt.Errorf("error fetching tasks: %w", err)
				}
				if c.Bool("json") {
					return writeJSON(c.App.Writer, board)
				}
				fmt.Fprint(c.App.Writer, renderBoard(board, terminalWidth()))
				return nil
			})
		},
	}
}

var columnStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

func renderBoard(board *models.Board, width int) string {
	colWidth := max((width-12)/3, 24)

	column := func(header string, tasks []models.Task) string {
		lines := []string{titleStyle.Render(header), ""}
		for _, t := range tasks {
			lines = append(lines, fmt.Sprintf("%s #%d %s",
				getPriorityIcon(t.Priority), t.ID, truncateString(t.Title, colWidth-8)))
		}
		if len(tasks) == 0 {
			lines = append(lines, faintStyle.Render("(empty)"))
		}
		return columnStyle.Width(colWidth).Render(strings.Join(lines, "\n"))
	}

	var b strings.Builder
	b.WriteString("📋 Task Kanban Board\n\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		column("📝 PENDING", board.Pending),
		column("🚀 IN PROGRESS", board.InProgress),
		column("✅ COMPLETED", board.Completed),
	))
	fmt.Fprintf(&b, "\n\nSummary: %d PENDING, %d IN PROGRESS, %d COMPLETED\n",
		len(board.Pending), len(board.InProgress), len(board.Completed))
	b.WriteString("Priority: 🔥 Critical | 🔴 High | 🟡 Medium | 🟢 Low\n")
	return b.String()
}
