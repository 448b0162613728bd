package handlers

import (
	"net/http"
	"strings"

	"github.com/fundabenefica/raffle-api/internal/backup"
	"github.com/fundabenefica/raffle-api/internal/models"
	"github.com/fundabenefica/raffle-api/internal/raffle"
	"github.com/fundabenefica/raffle-api/internal/util"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// OrdersHandler manages the order lifecycle endpoints.
type OrdersHandler struct {
	db *gorm.DB
}

// NewOrdersHandler constructs an OrdersHandler.
func NewOrdersHandler(db *gorm.DB) *OrdersHandler {
	return &OrdersHandler{db: db}
}

// createOrderRequest defines the public purchase body.
type createOrderRequest struct {
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Numbers []string `json:"numbers"`
	Qty     int      `json:"qty"`
	Total   float64  `json:"total"`
	Image   string   `json:"image"`
}

// Create registers a pending purchase and returns its generated order id.
// A snapshot follows; its failure never fails the purchase.
func (h *OrdersHandler) Create(c *gin.Context) {
	var body createOrderRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		respondError(c, http.StatusBadRequest, "invalid json")
		return
	}

	orderID, errCreate := raffle.CreateOrder(c.Request.Context(), h.db, raffle.CreateOrderInput{
		Name:    body.Name,
		Email:   body.Email,
		Phone:   body.Phone,
		Numbers: body.Numbers,
		Qty:     body.Qty,
		Total:   body.Total,
		Image:   body.Image,
	})
	if errCreate != nil {
		respondDomainError(c, errCreate, "create order failed")
		return
	}

	log.WithFields(log.Fields{
		"order_id": orderID,
		"qty":      body.Qty,
		"phone":    util.MaskPhone(body.Phone),
	}).Info("order created")

	backup.TrySnapshot(c.Request.Context(), h.db)
	respondOK(c, gin.H{"orderId": orderID})
}

// ListPending returns pending orders, newest first.
func (h *OrdersHandler) ListPending(c *gin.Context) {
	h.list(c, models.OrderStatusPending)
}

// ListConfirmed returns confirmed orders, newest first.
func (h *OrdersHandler) ListConfirmed(c *gin.Context) {
	h.list(c, models.OrderStatusConfirmed)
}

func (h *OrdersHandler) list(c *gin.Context, status string) {
	orders, errList := raffle.ListOrders(c.Request.Context(), h.db, status)
	if errList != nil {
		respondError(c, http.StatusInternalServerError, "list orders failed")
		return
	}
	respondOK(c, gin.H{"orders": orders})
}

// Confirm marks an order confirmed, allocates its numbers, and returns the
// WhatsApp notification link for the buyer.
func (h *OrdersHandler) Confirm(c *gin.Context) {
	orderID := strings.TrimSpace(c.Param("id"))

	link, errConfirm := raffle.ConfirmOrder(c.Request.Context(), h.db, orderID)
	if errConfirm != nil {
		respondDomainError(c, errConfirm, "confirm order failed")
		return
	}

	log.WithField("order_id", orderID).Info("order confirmed")

	backup.TrySnapshot(c.Request.Context(), h.db)
	respondOK(c, gin.H{"whatsappLink": link})
}

// Reject deletes an order. Rejecting an unknown id succeeds as a no-op.
func (h *OrdersHandler) Reject(c *gin.Context) {
	orderID := strings.TrimSpace(c.Param("id"))

	if errReject := raffle.RejectOrder(c.Request.Context(), h.db, orderID); errReject != nil {
		respondError(c, http.StatusInternalServerError, "reject order failed")
		return
	}
	respondOK(c, nil)
}
