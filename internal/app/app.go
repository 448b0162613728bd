// Package app boots the raffle server: config, logging, database, backup
// runner and HTTP engine.
package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fundabenefica/raffle-api/internal/backup"
	"github.com/fundabenefica/raffle-api/internal/config"
	"github.com/fundabenefica/raffle-api/internal/db"
	"github.com/fundabenefica/raffle-api/internal/http/api"
	"github.com/fundabenefica/raffle-api/internal/settings"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RunServer boots the raffle API and blocks until ctx is cancelled.
func RunServer(ctx context.Context, configPath string) error {
	cfg, errLoad := config.Load(config.ResolveConfigPath(configPath))
	if errLoad != nil {
		return errLoad
	}

	initLogging(cfg)

	conn, errOpen := db.Open(cfg.DatabaseDSN)
	if errOpen != nil {
		return errOpen
	}
	if errMigrate := db.Migrate(conn); errMigrate != nil {
		return errMigrate
	}
	if errSeed := settings.Seed(ctx, conn); errSeed != nil {
		return errSeed
	}

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		jwtSecret = randomSecret()
		log.Warn("no jwt secret configured, using a per-process secret; admin sessions will not survive restarts")
	}

	backup.NewRunner(conn, cfg.BackupInterval).Start(ctx)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())
	api.RegisterRoutes(engine, conn, jwtSecret, cfg.TokenExpiry)

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("raffle server listening on %s", cfg.ListenAddr)
		if errServe := server.ListenAndServe(); errServe != nil && !errors.Is(errServe, http.ErrServerClosed) {
			errCh <- errServe
		}
	}()

	select {
	case errServe := <-errCh:
		return fmt.Errorf("app: serve: %w", errServe)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if errShutdown := server.Shutdown(shutdownCtx); errShutdown != nil {
		return fmt.Errorf("app: shutdown: %w", errShutdown)
	}
	log.Info("raffle server stopped")
	return nil
}

// initLogging configures logrus level and optional rotating file output.
func initLogging(cfg config.Config) {
	level, errParse := log.ParseLevel(cfg.LogLevel)
	if errParse != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if cfg.LogFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		})
	}
}

// requestLogger logs one line per request through logrus.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Debug("request")
	}
}

// randomSecret generates a fallback JWT signing secret.
func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken anyway.
		panic(err)
	}
	return hex.EncodeToString(buf)
}
