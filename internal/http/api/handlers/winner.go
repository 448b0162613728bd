package handlers

import (
	"net/http"
	"strings"

	"github.com/fundabenefica/raffle-api/internal/raffle"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// WinnerHandler resolves a drawn number to its owner.
type WinnerHandler struct {
	db *gorm.DB
}

// NewWinnerHandler constructs a WinnerHandler.
func NewWinnerHandler(db *gorm.DB) *WinnerHandler {
	return &WinnerHandler{db: db}
}

// Find reports whether a number is sold, reserved by a pending order, or
// still available, including the owning order when one exists.
func (h *WinnerHandler) Find(c *gin.Context) {
	number := strings.TrimSpace(c.Param("number"))
	if number == "" {
		respondError(c, http.StatusBadRequest, "missing number")
		return
	}

	lookup, errFind := raffle.FindByNumber(c.Request.Context(), h.db, number)
	if errFind != nil {
		respondError(c, http.StatusInternalServerError, "lookup number failed")
		return
	}

	payload := gin.H{"found": lookup.Found, "status": lookup.Status}
	if lookup.Order != nil {
		payload["order"] = lookup.Order
	}
	respondOK(c, payload)
}
