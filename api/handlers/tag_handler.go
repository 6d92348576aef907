package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kutbudev/yaru/internal/models"
)

// CreateTag creates a new tag.
func (h *Handler) CreateTag(c *gin.Context) {
	var input models.CreateTagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.services.Tags.Add(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListTags retrieves all tags.
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.services.Tags.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

// GetTag retrieves a single tag.
func (h *Handler) GetTag(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	t, err := h.services.Tags.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

// UpdateTag renames a tag or changes its description.
func (h *Handler) UpdateTag(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input models.UpdateTagInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Name == nil && input.Description == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no update fields provided"})
		return
	}

	updated, err := h.services.Tags.Edit(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteTag deletes a tag no task references.
func (h *Handler) DeleteTag(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.services.Tags.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
}
