package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/fundabenefica/raffle-api/internal/models"
	"github.com/fundabenefica/raffle-api/internal/raffle"
	"github.com/fundabenefica/raffle-api/internal/settings"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ConfigHandler serves the public config read and the admin config writes.
type ConfigHandler struct {
	db *gorm.DB
}

// NewConfigHandler constructs a ConfigHandler.
func NewConfigHandler(db *gorm.DB) *ConfigHandler {
	return &ConfigHandler{db: db}
}

// Get returns the public raffle view: config (admin password excluded),
// payment methods, gallery images in order, and the sold counter.
func (h *ConfigHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	config, errConfig := settings.All(ctx, h.db)
	if errConfig != nil {
		respondError(c, http.StatusInternalServerError, "load config failed")
		return
	}
	payments, errPayments := settings.AllPayments(ctx, h.db)
	if errPayments != nil {
		respondError(c, http.StatusInternalServerError, "load payments failed")
		return
	}
	images, errImages := raffle.ListImages(ctx, h.db)
	if errImages != nil {
		respondError(c, http.StatusInternalServerError, "load images failed")
		return
	}

	var soldCount int64
	if errCount := h.db.WithContext(ctx).Model(&models.SoldNumber{}).Count(&soldCount).Error; errCount != nil {
		respondError(c, http.StatusInternalServerError, "count sold failed")
		return
	}

	respondOK(c, gin.H{
		"config":    config,
		"payments":  payments,
		"images":    images,
		"soldCount": soldCount,
	})
}

// prizeRequest defines the partial prize update body. Absent fields stay
// untouched.
type prizeRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Date        *string          `json:"date"`
	Time        *string          `json:"time"`
	Price       *json.RawMessage `json:"price"`
	Digits      *json.RawMessage `json:"digits"`
}

// UpdatePrize applies a prize configuration change. A digit-count change
// wipes existing orders and sold numbers.
func (h *ConfigHandler) UpdatePrize(c *gin.Context) {
	var body prizeRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		respondError(c, http.StatusBadRequest, "invalid json")
		return
	}

	in := settings.PrizeUpdate{
		Title:       body.Title,
		Description: body.Description,
		Date:        body.Date,
		Time:        body.Time,
		Price:       scalarString(body.Price),
		Digits:      scalarString(body.Digits),
	}

	_, errUpdate := settings.UpdatePrize(c.Request.Context(), h.db, in)
	if errUpdate != nil {
		respondError(c, http.StatusInternalServerError, "update prize failed")
		return
	}
	respondOK(c, nil)
}

// scalarString renders a JSON number or string into its string form, so
// clients may send digits/price either way.
func scalarString(raw *json.RawMessage) *string {
	if raw == nil {
		return nil
	}
	var asString string
	if errString := json.Unmarshal(*raw, &asString); errString == nil {
		return &asString
	}
	trimmed := strings.TrimSpace(string(*raw))
	return &trimmed
}

// SetPayment replaces a payment method payload wholesale.
func (h *ConfigHandler) SetPayment(c *gin.Context) {
	methodType := strings.TrimSpace(c.Param("type"))
	if methodType == "" {
		respondError(c, http.StatusBadRequest, "missing payment type")
		return
	}

	var payload json.RawMessage
	if errBind := c.ShouldBindJSON(&payload); errBind != nil {
		respondError(c, http.StatusBadRequest, "invalid json")
		return
	}

	if errSet := settings.SetPayment(c.Request.Context(), h.db, methodType, payload); errSet != nil {
		respondError(c, http.StatusInternalServerError, "save payment method failed")
		return
	}
	respondOK(c, nil)
}

// passwordRequest defines the admin password change body.
type passwordRequest struct {
	Password string `json:"password"`
}

// ChangePassword stores a new admin password hash.
func (h *ConfigHandler) ChangePassword(c *gin.Context) {
	var body passwordRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		respondError(c, http.StatusBadRequest, "invalid json")
		return
	}

	errSet := settings.SetAdminPassword(c.Request.Context(), h.db, body.Password)
	if errSet != nil {
		if errors.Is(errSet, settings.ErrPasswordTooShort) {
			respondError(c, http.StatusBadRequest, errSet.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "save password failed")
		return
	}
	respondOK(c, nil)
}
