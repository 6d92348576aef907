package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kutbudev/yaru/internal/app"
	"github.com/kutbudev/yaru/internal/models"
	"github.com/kutbudev/yaru/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var now = time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	services := app.New(memory.NewTaskRepository(), memory.NewTagRepository(), nil, func() time.Time { return now })
	return NewRouter(services, nil, nil)
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestPing(t *testing.T) {
	r := setupRouter(t)
	w := do(t, r, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestHealthz(t *testing.T) {
	services := app.New(memory.NewTaskRepository(), memory.NewTagRepository(), nil, nil)

	r := NewRouter(services, func(context.Context) error { return errors.New("db down") }, nil)
	w := do(t, r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	r = NewRouter(services, func(context.Context) error { return nil }, nil)
	w = do(t, r, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTaskRoutes(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodPost, "/v1/tags", map[string]any{"name": "work"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	tag := decodeBody[models.Tag](t, w)

	w = do(t, r, http.MethodPost, "/v1/tasks", map[string]any{
		"title":    "Prepare demo",
		"priority": "high",
		"tags":     []int64{tag.ID},
		"due_date": "2026-06-01",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeBody[models.Task](t, w)
	assert.Equal(t, "pending", created.Status)
	require.Len(t, created.Tags, 1)

	w = do(t, r, http.MethodGet, "/v1/tasks/overdue", nil)
	assert.Len(t, decodeBody[[]models.Task](t, w), 1)

	w = do(t, r, http.MethodGet, "/v1/tasks/search?q=demo&field=title", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody[[]models.Task](t, w), 1)

	w = do(t, r, http.MethodGet, "/v1/tasks?filter=status:completed", nil)
	assert.Empty(t, decodeBody[[]models.Task](t, w))

	w = do(t, r, http.MethodPut, "/v1/tasks/1", map[string]any{"title": "Prepare the demo", "clear_due_date": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeBody[models.Task](t, w)
	assert.Equal(t, "Prepare the demo", updated.Title)
	assert.Nil(t, updated.DueDate)

	w = do(t, r, http.MethodPut, "/v1/tasks/1/status", map[string]any{"status": "done"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotNil(t, decodeBody[models.Task](t, w).CompletedAt)

	w = do(t, r, http.MethodGet, "/v1/stats", nil)
	stats := decodeBody[models.Stats](t, w)
	assert.Equal(t, 1, stats.TotalCount)
	assert.Equal(t, 1, stats.StatusStats["completed"])

	w = do(t, r, http.MethodDelete, "/v1/tags/1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodDelete, "/v1/tasks/1/tags/1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Empty(t, decodeBody[models.Task](t, w).Tags)

	w = do(t, r, http.MethodDelete, "/v1/tags/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodDelete, "/v1/tasks/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/v1/tasks/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestErrorMapping(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"missing title", http.MethodPost, "/v1/tasks", map[string]any{}, http.StatusBadRequest},
		{"title too long", http.MethodPost, "/v1/tasks", map[string]any{"title": string(bytes.Repeat([]byte("x"), 201))}, http.StatusBadRequest},
		{"unknown tag", http.MethodPost, "/v1/tasks", map[string]any{"title": "x", "tags": []int64{42}}, http.StatusBadRequest},
		{"bad filter", http.MethodGet, "/v1/tasks?filter=colour:red", nil, http.StatusBadRequest},
		{"bad sort", http.MethodGet, "/v1/tasks?sort=name", nil, http.StatusBadRequest},
		{"bad id", http.MethodGet, "/v1/tasks/abc", nil, http.StatusBadRequest},
		{"missing task", http.MethodGet, "/v1/tasks/7", nil, http.StatusNotFound},
		{"missing tag", http.MethodDelete, "/v1/tags/7", nil, http.StatusNotFound},
		{"empty update", http.MethodPut, "/v1/tasks/1", map[string]any{}, http.StatusBadRequest},
		{"search without query", http.MethodGet, "/v1/tasks/search", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}

	w := do(t, r, http.MethodPost, "/v1/tags", map[string]any{"name": "dup"})
	require.Equal(t, http.StatusCreated, w.Code)
	w = do(t, r, http.MethodPost, "/v1/tags", map[string]any{"name": "dup"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_EXISTS", decodeBody[map[string]any](t, w)["code"])
}
