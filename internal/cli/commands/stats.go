package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kutbudev/yaru/internal/domain/task"
	"github.com/kutbudev/yaru/internal/models"
	"github.com/urfave/cli/v2"
)

// NewStatsCommand prints task statistics.
func NewStatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show task statistics",
		Flags: []cli.Flag{jsonFlag()},
		Action: func(c *cli.Context) error {
			return withServices(c, func(rt *runtime) error {
				s, err := rt.services.Stats.Show(c.Context)
				if err != nil {
					return fmt.Errorf("error calculating statistics: %w", err)
				}
				if c.Bool("json") {
					return writeJSON(c.App.Writer, s)
				}
				fmt.Fprint(c.App.Writer, renderStats(s))
				return nil
			})
		},
	}
}

func renderStats(s *models.Stats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", titleStyle.Render(fmt.Sprintf("📊 Task Statistics (%d total)", s.TotalCount)))

	statuses := make([]string, len(task.Statuses))
	for i, st := range task.Statuses {
		statuses[i] = st.FilterString()
	}
	priorities := make([]string, len(task.Priorities))
	for i, p := range task.Priorities {
		priorities[i] = p.FilterString()
	}
	dueBuckets := make([]string, len(task.DueDateStatuses))
	for i, d := range task.DueDateStatuses {
		dueBuckets[i] = d.FilterString()
	}

	section := func(title string, keys []string, counts map[string]int) {
		fmt.Fprintf(&b, "%s\n", title)
		for _, k := range keys {
			fmt.Fprintf(&b, "  %-16s %d\n", k, counts[k])
		}
		b.WriteString("\n")
	}
	section("By status:", statuses, s.StatusStats)
	section("By priority:", priorities, s.PriorityStats)
	section("By due date:", dueBuckets, s.DueDateStats)

	tags := make([]string, 0, len(s.TagStats))
	for name := range s.TagStats {
		tags = append(tags, name)
	}
	sort.Strings(tags)
	section("By tag:", tags, s.TagStats)

	b.WriteString("Priority x status:\n")
	tbl := newTable(append([]string{""}, statuses...)...)
	for _, p := range priorities {
		row := []string{getPriorityIcon(p) + " " + p}
		for _, st := range statuses {
			row = append(row, fmt.Sprintf("%d", s.PriorityStatusMatrix[p+":"+st]))
		}
		tbl.Row(row...)
	}
	b.WriteString(tbl.Render())
	b.WriteString("\n")
	return b.String()
}
