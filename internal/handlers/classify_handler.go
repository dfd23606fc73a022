package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fluxo/internal/classify"
	apperrors "fluxo/internal/errors"
)

// ClassifyHandler exposes the rule-based classifier over HTTP.
type ClassifyHandler struct{}

// NewClassifyHandler creates a new ClassifyHandler
func NewClassifyHandler() *ClassifyHandler {
	return &ClassifyHandler{}
}

// ClassifyRequest represents the request payload for a classification
type ClassifyRequest struct {
	RawDescription string `json:"raw_description" binding:"required"`
}

// Classify categorizes a raw statement description.
func (h *ClassifyHandler) Classify(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "raw_description is required"))
		return
	}

	c.JSON(http.StatusOK, classify.Process(req.RawDescription))
}
