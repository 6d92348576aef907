package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kutbudev/yaru/internal/models"
	"golang.org/x/term"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

func getPriorityIcon(priority string) string {
	icons := map[string]string{
		"critical": "🔥",
		"high":     "🔴",
		"medium":   "🟡",
		"low":      "🟢",
	}
	if icon, exists := icons[priority]; exists {
		return icon
	}
	return "⚪"
}

func getStatusIcon(status string) string {
	icons := map[string]string{
		"pending":     "📋",
		"in_progress": "🚀",
		"completed":   "✅",
	}
	if icon, exists := icons[status]; exists {
		return icon
	}
	return "❓"
}

func tagList(tags []models.TagInfo) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// renderTaskTable lays tasks out to the terminal width. Narrow terminals get
// one line per task instead of a table.
func renderTaskTable(tasks []models.Task, width int) string {
	if width < 80 {
		var b strings.Builder
		for _, t := range tasks {
			fmt.Fprintf(&b, "%s %s #%d %s\n", getPriorityIcon(t.Priority), getStatusIcon(t.Status), t.ID, t.Title)
			if t.DueDate != nil || len(t.Tags) > 0 {
				fmt.Fprintf(&b, "   %s\n", faintStyle.Render(strings.TrimSpace(
					fmt.Sprintf("%s %s", valueOr(t.DueDate, ""), tagList(t.Tags)))))
			}
		}
		return b.String()
	}

	titleWidth := max(width-70, 20)
	tbl := newTable("ID", "PRI", "STATUS", "DUE", "TAGS", "TITLE")
	for _, t := range tasks {
		tbl.Row(
			fmt.Sprintf("%d", t.ID),
			getPriorityIcon(t.Priority),
			getStatusIcon(t.Status)+" "+t.Status,
			valueOr(t.DueDate, "-"),
			truncateString(tagList(t.Tags), 20),
			truncateString(t.Title, titleWidth),
		)
	}
	return tbl.Render() + "\n"
}

func renderTagTable(tags []models.Tag) string {
	tbl := newTable("ID", "NAME", "DESCRIPTION")
	for _, t := range tags {
		tbl.Row(fmt.Sprintf("%d", t.ID), t.Name, truncateString(valueOr(t.Description, ""), 50))
	}
	return tbl.Render() + "\n"
}

// renderMarkdown renders text through glamour, falling back to the raw text.
func renderMarkdown(text string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		return text + "\n"
	}
	out, err := r.Render(text)
	if err != nil {
		return text + "\n"
	}
	return out
}

func formatTaskDetails(t *models.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", titleStyle.Render(fmt.Sprintf("Task #%d: %s", t.ID, t.Title)))
	fmt.Fprintln(&b, strings.Repeat("-", 60))
	fmt.Fprintf(&b, "Status:      %s %s\n", getStatusIcon(t.Status), t.Status)
	fmt.Fprintf(&b, "Priority:    %s %s\n", getPriorityIcon(t.Priority), t.Priority)
	fmt.Fprintf(&b, "Due date:    %s\n", valueOr(t.DueDate, "-"))
	if len(t.Tags) > 0 {
		fmt.Fprintf(&b, "Tags:        %s\n", tagList(t.Tags))
	}
	fmt.Fprintf(&b, "Created At:  %s\n", t.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Updated At:  %s\n", t.UpdatedAt.Format("2006-01-02 15:04:05"))
	if t.CompletedAt != nil {
		fmt.Fprintf(&b, "Completed:   %s\n", t.CompletedAt.Format("2006-01-02 15:04:05"))
	}
	return b.String()
}

// plainTaskText is what `task show --copy` puts on the clipboard.
func plainTaskText(t *models.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%d %s [%s, %s]", t.ID, t.Title, t.Status, t.Priority)
	if t.DueDate != nil {
		fmt.Fprintf(&b, " due %s", *t.DueDate)
	}
	if t.Description != nil {
		fmt.Fprintf(&b, "\n\n%s", *t.Description)
	}
	return b.String()
}
