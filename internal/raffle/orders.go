package raffle

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/fundabenefica/raffle-api/internal/models"
	"github.com/fundabenefica/raffle-api/internal/settings"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateOrderInput carries the public purchase request.
type CreateOrderInput struct {
	Name    string
	Email   string
	Phone   string
	Numbers []string
	Qty     int
	Total   float64
	Image   string
}

// OrderView is the outward shape of an order, numbers inlined as an ordered
// list.
type OrderView struct {
	OrderID   string    `json:"order_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Numbers   []string  `json:"numbers"`
	Qty       int       `json:"qty"`
	Total     float64   `json:"total"`
	Image     string    `json:"image,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateOrder validates the purchase, reserves the requested numbers against
// the sold set and persists the order as pending, all in one transaction.
// It returns the generated order identifier.
func CreateOrder(ctx context.Context, db *gorm.DB, in CreateOrderInput) (string, error) {
	if strings.TrimSpace(in.Name) == "" {
		return "", &ValidationError{Reason: "missing name"}
	}
	if strings.TrimSpace(in.Email) == "" {
		return "", &ValidationError{Reason: "missing email"}
	}
	if strings.TrimSpace(in.Phone) == "" {
		return "", &ValidationError{Reason: "missing phone"}
	}
	if len(in.Numbers) == 0 {
		return "", &ValidationError{Reason: "missing numbers"}
	}
	if len(in.Numbers) != in.Qty {
		return "", &ValidationError{Reason: fmt.Sprintf("qty %d does not match %d numbers", in.Qty, len(in.Numbers))}
	}
	if in.Total < 0 {
		return "", &ValidationError{Reason: "total cannot be negative"}
	}

	digits, _, errGet := settings.Get(ctx, db, settings.PrizeDigitsKey)
	if errGet != nil {
		return "", errGet
	}
	if errCheck := checkNumberFormat(in.Numbers, digits); errCheck != nil {
		return "", errCheck
	}

	orderID, errID := generateOrderID()
	if errID != nil {
		return "", fmt.Errorf("raffle: generate order id: %w", errID)
	}

	order := models.Order{
		OrderID: orderID,
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Qty:     in.Qty,
		Total:   in.Total,
		Image:   in.Image,
		Status:  models.OrderStatusPending,
	}
	for idx, number := range in.Numbers {
		order.Numbers = append(order.Numbers, models.OrderNumber{Idx: idx, Number: number})
	}

	errTx := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken []string
		if errFind := tx.Model(&models.SoldNumber{}).
			Where("number IN ?", in.Numbers).
			Pluck("number", &taken).Error; errFind != nil {
			return fmt.Errorf("raffle: check sold numbers: %w", errFind)
		}
		if len(taken) > 0 {
			return &ValidationError{Reason: fmt.Sprintf("numbers already sold: %s", strings.Join(taken, ", "))}
		}
		if errCreate := tx.Create(&order).Error; errCreate != nil {
			return fmt.Errorf("raffle: create order: %w", errCreate)
		}
		return nil
	})
	if errTx != nil {
		return "", errTx
	}
	return orderID, nil
}

// checkNumberFormat rejects numbers that are not exactly the configured digit
// count, and duplicate picks within one request.
func checkNumberFormat(numbers []string, digits string) error {
	want, errAtoi := strconv.Atoi(strings.TrimSpace(digits))
	if errAtoi != nil {
		want = 0
	}
	seen := make(map[string]struct{}, len(numbers))
	for _, number := range numbers {
		if want > 0 && len(number) != want {
			return &ValidationError{Reason: fmt.Sprintf("number %q must have %d digits", number, want)}
		}
		for _, r := range number {
			if !unicode.IsDigit(r) {
				return &ValidationError{Reason: fmt.Sprintf("number %q is not numeric", number)}
			}
		}
		if _, dup := seen[number]; dup {
			return &ValidationError{Reason: fmt.Sprintf("number %q picked twice", number)}
		}
		seen[number] = struct{}{}
	}
	return nil
}

// orderIDAlphabet avoids ambiguous characters in the random suffix.
const orderIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generateOrderID builds a human-readable id that stays unique across
// concurrent creations: millisecond timestamp plus a random suffix.
func generateOrderID() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	suffix := make([]byte, len(buf))
	for i, b := range buf {
		suffix[i] = orderIDAlphabet[int(b)%len(orderIDAlphabet)]
	}
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix), nil
}

// ListOrders returns orders with the given status, newest first, numbers
// joined back into their original sequence.
func ListOrders(ctx context.Context, db *gorm.DB, status string) ([]OrderView, error) {
	var rows []models.Order
	errFind := db.WithContext(ctx).
		Preload("Numbers", func(tx *gorm.DB) *gorm.DB { return tx.Order("idx ASC") }).
		Where("status = ?", status).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	if errFind != nil {
		return nil, fmt.Errorf("raffle: list %s orders: %w", status, errFind)
	}
	out := make([]OrderView, 0, len(rows))
	for i := range rows {
		out = append(out, toView(&rows[i]))
	}
	return out, nil
}

// ConfirmOrder moves a pending order to confirmed and marks each of its
// numbers sold, ignoring numbers already in the sold set so a double confirm
// cannot duplicate rows. It returns the pre-filled WhatsApp notification
// link for the buyer.
func ConfirmOrder(ctx context.Context, db *gorm.DB, orderID string) (string, error) {
	var view OrderView
	errTx := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		errFind := tx.Preload("Numbers", func(q *gorm.DB) *gorm.DB { return q.Order("idx ASC") }).
			Where("order_id = ?", orderID).
			First(&order).Error
		if errFind != nil {
			if errors.Is(errFind, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return fmt.Errorf("raffle: load order: %w", errFind)
		}

		if errUpdate := tx.Model(&models.Order{}).
			Where("order_id = ?", orderID).
			Update("status", models.OrderStatusConfirmed).Error; errUpdate != nil {
			return fmt.Errorf("raffle: confirm order: %w", errUpdate)
		}

		now := time.Now().UTC()
		sold := make([]models.SoldNumber, 0, len(order.Numbers))
		for _, n := range order.Numbers {
			sold = append(sold, models.SoldNumber{Number: n.Number, OrderID: orderID, ConfirmedAt: now})
		}
		if len(sold) > 0 {
			if errSold := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&sold).Error; errSold != nil {
				return fmt.Errorf("raffle: mark sold: %w", errSold)
			}
		}

		order.Status = models.OrderStatusConfirmed
		view = toView(&order)
		return nil
	})
	if errTx != nil {
		return "", errTx
	}
	return BuildConfirmationLink(view), nil
}

// RejectOrder deletes a pending order and its numbers. Rejecting an id that
// does not exist is a no-op.
func RejectOrder(ctx context.Context, db *gorm.DB, orderID string) error {
	errTx := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if errDel := tx.Where("order_id = ?", orderID).Delete(&models.OrderNumber{}).Error; errDel != nil {
			return fmt.Errorf("raffle: delete order numbers: %w", errDel)
		}
		if errDel := tx.Where("order_id = ?", orderID).Delete(&models.Order{}).Error; errDel != nil {
			return fmt.Errorf("raffle: delete order: %w", errDel)
		}
		return nil
	})
	return errTx
}

// toView flattens an order row and its number relation.
func toView(order *models.Order) OrderView {
	numbers := make([]string, 0, len(order.Numbers))
	for _, n := range order.Numbers {
		numbers = append(numbers, n.Number)
	}
	return OrderView{
		OrderID:   order.OrderID,
		Name:      order.Name,
		Email:     order.Email,
		Phone:     order.Phone,
		Numbers:   numbers,
		Qty:       order.Qty,
		Total:     order.Total,
		Image:     order.Image,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
	}
}
