package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kutbudev/yaru/api/handlers"
	"github.com/kutbudev/yaru/internal/app"
	"github.com/kutbudev/yaru/internal/logger"
	"go.uber.org/zap"
)

// HealthFunc reports whether the storage backend is reachable.
type HealthFunc func(ctx context.Context) error

// NewRouter wires the REST routes.
func NewRouter(services *app.Services, health HealthFunc, log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	r := gin.New()
	r.Use(logger.GinMiddleware(log), logger.Recovery(log))

	// Ping endpoint for health check
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	r.GET("/healthz", func(c *gin.Context) {
		if health != nil {
			if err := health(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := handlers.New(services)

	// API v1 routes
	v1 := r.Group("/v1")
	{
		v1.GET("/tasks", h.ListTasks)
		v1.POST("/tasks", h.CreateTask)
		v1.GET("/tasks/search", h.SearchTasks)
		v1.GET("/tasks/overdue", h.OverdueTasks)
		v1.GET("/tasks/:id", h.GetTask)
		v1.PUT("/tasks/:id", h.UpdateTask)
		v1.DELETE("/tasks/:id", h.DeleteTask)
		v1.PUT("/tasks/:id/status", h.SetTaskStatus)
		v1.PUT("/tasks/:id/tags/:tagId", h.AddTaskTag)
		v1.DELETE("/tasks/:id/tags/:tagId", h.RemoveTaskTag)

		// Tag routes
		v1.GET("/tags", h.ListTags)
		v1.POST("/tags", h.CreateTag)
		v1.GET("/tags/:id", h.GetTag)
		v1.PUT("/tags/:id", h.UpdateTag)
		v1.DELETE("/tags/:id", h.DeleteTag)

		v1.GET("/board", h.Board)
		v1.GET("/stats", h.Stats)
	}

	return r
}
