package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fluxo/internal/services"
)

// InsightHandler handles analysis requests
type InsightHandler struct {
	insightService services.InsightServicer
}

// NewInsightHandler creates a new InsightHandler
func NewInsightHandler(insightService services.InsightServicer) *InsightHandler {
	return &InsightHandler{insightService: insightService}
}

// ExpenseBreakdown returns outbound spend per category, largest first.
func (h *InsightHandler) ExpenseBreakdown(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.insightService.ExpenseBreakdown(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"expenses": totals})
}

// Recommendations returns spending advice for the account.
func (h *InsightHandler) Recommendations(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	recs, err := h.insightService.Recommendations(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

// Offers returns contextual offers for the account.
func (h *InsightHandler) Offers(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	offers, err := h.insightService.Offers(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"offers": offers})
}
