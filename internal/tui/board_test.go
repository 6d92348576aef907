package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kutbudev/yaru/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	board     *models.Board
	completed []int64
	err       error
}

func (f *fakeSource) Board(context.Context) (*models.Board, error) {
	return f.board, f.err
}

func (f *fakeSource) Complete(_ context.Context, id int64) (*models.Task, error) {
	f.completed = append(f.completed, id)
	return &models.Task{ID: id, Status: "completed"}, nil
}

func sampleBoard() *models.Board {
	due := "2026-06-01"
	return &models.Board{
		Pending:    []models.Task{{ID: 1, Title: "Write tests", Priority: "high", DueDate: &due}, {ID: 2, Title: "Refactor", Priority: "low"}},
		InProgress: []models.Task{{ID: 3, Title: "Review PR", Priority: "medium"}},
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestModel_LoadsAndSwitchesColumns(t *testing.T) {
	src := &fakeSource{board: sampleBoard()}
	m := New(context.Background(), src)

	msg := m.Init()()
	m, _ = update(t, m, msg)
	assert.False(t, m.loading)
	assert.Len(t, m.table.Rows(), 2)
	assert.Contains(t, m.View(), "Write tests")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, colInProgress, m.active)
	require.Len(t, m.table.Rows(), 1)
	assert.Equal(t, "Review PR", m.table.Rows()[0][3])

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, colCompleted, m.active)
	assert.Empty(t, m.table.Rows())
}

func TestModel_CompleteSelected(t *testing.T) {
	src := &fakeSource{board: sampleBoard()}
	m := New(context.Background(), src)
	m, _ = update(t, m, m.Init()())

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	require.NotNil(t, cmd)
	done := cmd()
	assert.Equal(t, []int64{1}, src.completed)

	m, cmd = update(t, m, done)
	assert.Contains(t, m.status, "#1 completed")
	require.NotNil(t, cmd)
}

func TestModel_ShowsErrors(t *testing.T) {
	src := &fakeSource{err: errors.New("storage offline")}
	m := New(context.Background(), src)
	m, _ = update(t, m, m.Init()())
	assert.Contains(t, m.View(), "storage offline")
}

func TestModel_Quit(t *testing.T) {
	m := New(context.Background(), &fakeSource{board: &models.Board{}})
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
