package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fundabenefica/raffle-api/internal/backup"
	"github.com/fundabenefica/raffle-api/internal/raffle"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BackupHandler serves the export download and the full reset.
type BackupHandler struct {
	db *gorm.DB
}

// NewBackupHandler constructs a BackupHandler.
func NewBackupHandler(db *gorm.DB) *BackupHandler {
	return &BackupHandler{db: db}
}

// Download streams a point-in-time export of the full dataset as a JSON
// attachment.
func (h *BackupHandler) Download(c *gin.Context) {
	doc, errExport := backup.Export(c.Request.Context(), h.db)
	if errExport != nil {
		respondError(c, http.StatusInternalServerError, "export failed")
		return
	}

	blob, errMarshal := json.MarshalIndent(doc, "", "  ")
	if errMarshal != nil {
		respondError(c, http.StatusInternalServerError, "serialize export failed")
		return
	}

	filename := fmt.Sprintf("fundabenefica-backup-%s.json", doc.ExportedAt.Format("2006-01-02-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/json", blob)
}

// Reset wipes the raffle back to a clean slate. A snapshot is taken first so
// the wiped dataset stays recoverable from history.
func (h *BackupHandler) Reset(c *gin.Context) {
	backup.TrySnapshot(c.Request.Context(), h.db)

	if errReset := raffle.Reset(c.Request.Context(), h.db); errReset != nil {
		respondError(c, http.StatusInternalServerError, "reset failed")
		return
	}

	log.WithField("at", time.Now().UTC().Format(time.RFC3339)).Warn("raffle reset")
	respondOK(c, nil)
}
