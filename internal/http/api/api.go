// Package api wires the raffle HTTP routes onto a gin engine.
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/fundabenefica/raffle-api/internal/http/api/handlers"
	"github.com/fundabenefica/raffle-api/internal/security"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterRoutes registers the public and admin raffle endpoints.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, jwtSecret string, tokenExpiry time.Duration) {
	if r == nil || db == nil {
		return
	}

	healthHandler := handlers.NewHealthHandler(db)
	r.GET("/healthz", healthHandler.Check)

	apiGroup := r.Group("/api")

	authHandler := handlers.NewAuthHandler(db, jwtSecret, tokenExpiry)
	apiGroup.POST("/auth", authHandler.Login)

	configHandler := handlers.NewConfigHandler(db)
	apiGroup.GET("/config", configHandler.Get)

	ordersHandler := handlers.NewOrdersHandler(db)
	apiGroup.POST("/orders", ordersHandler.Create)

	statsHandler := handlers.NewStatsHandler(db)
	apiGroup.GET("/sold", statsHandler.Sold)
	apiGroup.GET("/stats", statsHandler.Stats)

	winnerHandler := handlers.NewWinnerHandler(db)
	apiGroup.GET("/winner/:number", winnerHandler.Find)

	admin := apiGroup.Group("")
	admin.Use(adminAuthMiddleware(jwtSecret))

	admin.POST("/config/prize", configHandler.UpdatePrize)
	admin.POST("/config/payment/:type", configHandler.SetPayment)
	admin.POST("/config/password", configHandler.ChangePassword)

	imagesHandler := handlers.NewImagesHandler(db)
	admin.POST("/images", imagesHandler.Add)
	admin.DELETE("/images/:position", imagesHandler.Remove)

	admin.GET("/orders/pending", ordersHandler.ListPending)
	admin.GET("/orders/confirmed", ordersHandler.ListConfirmed)
	admin.POST("/orders/:id/confirm", ordersHandler.Confirm)
	admin.POST("/orders/:id/reject", ordersHandler.Reject)

	backupHandler := handlers.NewBackupHandler(db)
	admin.GET("/backup/download", backupHandler.Download)
	admin.POST("/reset", backupHandler.Reset)
}

// adminAuthMiddleware validates the admin session token issued by /api/auth.
func adminAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "missing token"})
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if _, errParse := security.ParseAdminToken(jwtSecret, token); errParse != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid token"})
			return
		}
		c.Next()
	}
}
