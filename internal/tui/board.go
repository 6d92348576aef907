// Package tui is the interactive kanban board.
package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kutbudev/yaru/internal/models"
)

// Source loads the board and applies changes to it.
type Source interface {
	Board(ctx context.Context) (*models.Board, error)
	Complete(ctx context.Context, id int64) (*models.Task, error)
}

type column int

const (
	colPending column = iota
	colInProgress
	colCompleted
)

var columnTitles = [...]string{"📝 Pending", "🚀 In Progress", "✅ Completed"}

type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Complete key.Binding
	Reload   key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Complete, k.Reload, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Next:     key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("→/tab", "next column")),
	Prev:     key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("←", "prev column")),
	Complete: key.NewBinding(key.WithKeys("d", "enter"), key.WithHelp("d", "complete")),
	Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
}

var (
	activeTab   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Padding(0, 2)
	inactiveTab = lipgloss.NewStyle().Faint(true).Padding(0, 2)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type boardMsg struct{ board *models.Board }

type errMsg struct{ err error }

type completedMsg struct{ task *models.Task }

// Model is the bubbletea model for the board.
type Model struct {
	ctx     context.Context
	source  Source
	board   *models.Board
	active  column
	table   table.Model
	help    help.Model
	status  string
	err     error
	loading bool
}

// New creates a board model reading from source.
func New(ctx context.Context, source Source) Model {
	t := table.New(
		table.WithColumns(columnsFor(80)),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	return Model{
		ctx:     ctx,
		source:  source,
		table:   t,
		help:    help.New(),
		loading: true,
	}
}

// Run starts the program in the alternate screen and blocks until it exits.
func Run(ctx context.Context, source Source) error {
	_, err := tea.NewProgram(New(ctx, source), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func columnsFor(width int) []table.Column {
	titleWidth := max(width-40, 20)
	return []table.Column{
		{Title: "ID", Width: 5},
		{Title: "PRI", Width: 9},
		{Title: "DUE", Width: 11},
		{Title: "TITLE", Width: titleWidth},
	}
}

func (m Model) load() tea.Msg {
	board, err := m.source.Board(m.ctx)
	if err != nil {
		return errMsg{err}
	}
	return boardMsg{board}
}

func (m Model) complete(id int64) tea.Cmd {
	return func() tea.Msg {
		t, err := m.source.Complete(m.ctx, id)
		if err != nil {
			return errMsg{err}
		}
		return completedMsg{t}
	}
}

func (m Model) Init() tea.Cmd {
	return m.load
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetColumns(columnsFor(msg.Width))
		m.table.SetHeight(max(msg.Height-8, 5))
		m.help.Width = msg.Width
		return m, nil

	case boardMsg:
		m.board = msg.board
		m.loading = false
		m.err = nil
		m.refreshRows()
		return m, nil

	case completedMsg:
		m.status = fmt.Sprintf("Task #%d completed", msg.task.ID)
		return m, m.load

	case errMsg:
		m.err = msg.err
		m.loading = false
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Next):
			m.active = (m.active + 1) % 3
			m.refreshRows()
			return m, nil
		case key.Matches(msg, keys.Prev):
			m.active = (m.active + 2) % 3
			m.refreshRows()
			return m, nil
		case key.Matches(msg, keys.Reload):
			m.loading = true
			return m, m.load
		case key.Matches(msg, keys.Complete):
			if id, ok := m.selectedID(); ok && m.active != colCompleted {
				return m, m.complete(id)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) tasks() []models.Task {
	if m.board == nil {
		return nil
	}
	switch m.active {
	case colInProgress:
		return m.board.InProgress
	case colCompleted:
		return m.board.Completed
	}
	return m.board.Pending
}

func (m *Model) refreshRows() {
	tasks := m.tasks()
	rows := make([]table.Row, len(tasks))
	for i, t := range tasks {
		due := "-"
		if t.DueDate != nil {
			due = *t.DueDate
		}
		rows[i] = table.Row{strconv.FormatInt(t.ID, 10), t.Priority, due, t.Title}
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func (m Model) selectedID() (int64, bool) {
	row := m.table.SelectedRow()
	if row == nil {
		return 0, false
	}
	id, err := strconv.ParseInt(row[0], 10, 64)
	return id, err == nil
}

func (m Model) View() string {
	tabs := make([]string, len(columnTitles))
	for i, title := range columnTitles {
		count := 0
		if m.board != nil {
			count = len([][]models.Task{m.board.Pending, m.board.InProgress, m.board.Completed}[i])
		}
		label := fmt.Sprintf("%s (%d)", title, count)
		if column(i) == m.active {
			tabs[i] = activeTab.Render(label)
		} else {
			tabs[i] = inactiveTab.Render(label)
		}
	}

	body := m.table.View()
	switch {
	case m.loading && m.board == nil:
		body = "Loading tasks..."
	case m.err != nil:
		body += "\n" + errorStyle.Render("Error: "+m.err.Error())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
		"",
		body,
		statusStyle.Render(m.status),
		m.help.View(keys),
	)
}
