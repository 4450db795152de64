package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/casafile/api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// SubmitHandler implements the acknowledgment stub the review step posts
// to. It performs no field validation, no persistence, and no side
// effects: any syntactically parseable JSON body is acknowledged with
// success, and only an outright parse failure produces an error.
type SubmitHandler struct{}

// NewSubmitHandler creates a new SubmitHandler instance.
func NewSubmitHandler() *SubmitHandler {
	return &SubmitHandler{}
}

// Submit handles POST /api/submit.
func (h *SubmitHandler) Submit(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err == nil && json.Valid(body) {
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	if log := middleware.GetLogger(c); log != nil {
		log.Error("Form submission error", err, map[string]interface{}{
			"bytes": len(body),
		})
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Failed to process form submission",
	})
}
