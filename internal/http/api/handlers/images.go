package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/fundabenefica/raffle-api/internal/raffle"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ImagesHandler manages the prize image gallery.
type ImagesHandler struct {
	db *gorm.DB
}

// NewImagesHandler constructs an ImagesHandler.
func NewImagesHandler(db *gorm.DB) *ImagesHandler {
	return &ImagesHandler{db: db}
}

// addImageRequest defines the upload body.
type addImageRequest struct {
	Image    string `json:"image"`
	Position int    `json:"position"`
}

// Add stores an image at a gallery position, replacing any existing one.
func (h *ImagesHandler) Add(c *gin.Context) {
	var body addImageRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		respondError(c, http.StatusBadRequest, "invalid json")
		return
	}

	if errAdd := raffle.AddImage(c.Request.Context(), h.db, body.Image, body.Position); errAdd != nil {
		respondDomainError(c, errAdd, "save image failed")
		return
	}
	respondOK(c, nil)
}

// Remove deletes the image at a position and closes the gap.
func (h *ImagesHandler) Remove(c *gin.Context) {
	position, errAtoi := strconv.Atoi(strings.TrimSpace(c.Param("position")))
	if errAtoi != nil || position < 0 {
		respondError(c, http.StatusBadRequest, "invalid position")
		return
	}

	if errRemove := raffle.RemoveImage(c.Request.Context(), h.db, position); errRemove != nil {
		respondDomainError(c, errRemove, "delete image failed")
		return
	}
	respondOK(c, nil)
}
