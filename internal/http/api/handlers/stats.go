package handlers

import (
	"net/http"

	"github.com/fundabenefica/raffle-api/internal/raffle"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// StatsHandler serves the read-side counters and the sold number list.
type StatsHandler struct {
	db *gorm.DB
}

// NewStatsHandler constructs a StatsHandler.
func NewStatsHandler(db *gorm.DB) *StatsHandler {
	return &StatsHandler{db: db}
}

// Stats returns sold/pending/confirmed counts and confirmed revenue.
func (h *StatsHandler) Stats(c *gin.Context) {
	stats, errStats := raffle.ComputeStats(c.Request.Context(), h.db)
	if errStats != nil {
		respondError(c, http.StatusInternalServerError, "compute stats failed")
		return
	}
	respondOK(c, gin.H{"stats": stats})
}

// Sold returns every sold number.
func (h *StatsHandler) Sold(c *gin.Context) {
	numbers, errList := raffle.ListSold(c.Request.Context(), h.db)
	if errList != nil {
		respondError(c, http.StatusInternalServerError, "list sold failed")
		return
	}
	respondOK(c, gin.H{"numbers": numbers})
}
