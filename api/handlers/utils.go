package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kutbudev/yaru/internal/app"
	"github.com/kutbudev/yaru/internal/domain/shared"
)

// Handler serves the REST endpoints on top of the application services.
type Handler struct {
	services *app.Services
}

// New creates a Handler.
func New(services *app.Services) *Handler {
	return &Handler{services: services}
}

// statusFor maps a domain error code to an HTTP status.
func statusFor(code string) int {
	switch code {
	case shared.CodeValidation, shared.CodeInvalidIdentifier:
		return http.StatusBadRequest
	case shared.CodeNotFound, shared.CodeTagNotFound:
		return http.StatusNotFound
	case shared.CodeAlreadyExists, shared.CodeDuplicateTag, shared.CodeTagInUse:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError writes err as JSON. Unknown errors are attached to the context
// for the logging middleware and hidden from the client.
func respondError(c *gin.Context, err error) {
	code := shared.CodeOf(err)
	status := statusFor(code)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

// paramID parses a numeric path parameter, writing a 400 on failure.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name, "code": shared.CodeInvalidIdentifier})
		return 0, false
	}
	return id, true
}
