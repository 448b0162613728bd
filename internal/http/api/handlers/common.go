// Package handlers implements the JSON API endpoints. Every response uses a
// {success: bool, ...} envelope.
package handlers

import (
	"errors"
	"net/http"

	"github.com/fundabenefica/raffle-api/internal/raffle"
	"github.com/gin-gonic/gin"
)

// respondOK writes a success envelope with optional extra fields.
func respondOK(c *gin.Context, extra gin.H) {
	payload := gin.H{"success": true}
	for k, v := range extra {
		payload[k] = v
	}
	c.JSON(http.StatusOK, payload)
}

// respondError writes a failure envelope with the given status.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// respondDomainError maps domain errors onto HTTP statuses: validation
// failures to 400, missing orders to 404, anything else to 500.
func respondDomainError(c *gin.Context, err error, fallback string) {
	var ve *raffle.ValidationError
	switch {
	case errors.As(err, &ve):
		respondError(c, http.StatusBadRequest, ve.Reason)
	case errors.Is(err, raffle.ErrOrderNotFound):
		respondError(c, http.StatusNotFound, "order not found")
	default:
		respondError(c, http.StatusInternalServerError, fallback)
	}
}
