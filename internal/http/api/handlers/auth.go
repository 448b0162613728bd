package handlers

import (
	"net/http"
	"time"

	"github.com/fundabenefica/raffle-api/internal/security"
	"github.com/fundabenefica/raffle-api/internal/settings"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler verifies the admin password and issues session tokens.
type AuthHandler struct {
	db          *gorm.DB
	jwtSecret   string
	tokenExpiry time.Duration
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, jwtSecret string, tokenExpiry time.Duration) *AuthHandler {
	return &AuthHandler{db: db, jwtSecret: jwtSecret, tokenExpiry: tokenExpiry}
}

// authRequest defines the login request body.
type authRequest struct {
	Password string `json:"password"`
}

// Login checks the admin password against the stored hash. On success the
// response carries a bearer token for the admin endpoints.
func (h *AuthHandler) Login(c *gin.Context) {
	var body authRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		respondError(c, http.StatusBadRequest, "invalid json")
		return
	}

	match, errVerify := settings.VerifyAdminPassword(c.Request.Context(), h.db, body.Password)
	if errVerify != nil {
		respondError(c, http.StatusInternalServerError, "verify password failed")
		return
	}
	if !match {
		c.JSON(http.StatusOK, gin.H{"success": false})
		return
	}

	token, errToken := security.GenerateAdminToken(h.jwtSecret, h.tokenExpiry)
	if errToken != nil {
		respondError(c, http.StatusInternalServerError, "issue token failed")
		return
	}
	respondOK(c, gin.H{"token": token})
}
