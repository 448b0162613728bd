package raffle

import (
	"context"
	"errors"
	"fmt"

	"github.com/fundabenefica/raffle-api/internal/models"
	"gorm.io/gorm"
)

// Number lookup statuses returned by FindByNumber.
const (
	// NumberStatusConfirmed means the number belongs to a confirmed order.
	NumberStatusConfirmed = "confirmed"
	// NumberStatusPending means only a pending order references the number.
	NumberStatusPending = "pending"
	// NumberStatusAvailable means nothing references the number.
	NumberStatusAvailable = "available"
)

// NumberLookup is the result of a winner search.
type NumberLookup struct {
	Found  bool       `json:"found"`
	Status string     `json:"status"`
	Order  *OrderView `json:"order,omitempty"`
}

// IsSold reports whether a number is in the sold set.
func IsSold(ctx context.Context, db *gorm.DB, number string) (bool, error) {
	var count int64
	errCount := db.WithContext(ctx).Model(&models.SoldNumber{}).
		Where("number = ?", number).
		Count(&count).Error
	if errCount != nil {
		return false, fmt.Errorf("raffle: check sold: %w", errCount)
	}
	return count > 0, nil
}

// ListSold returns every sold number.
func ListSold(ctx context.Context, db *gorm.DB) ([]string, error) {
	var numbers []string
	errFind := db.WithContext(ctx).Model(&models.SoldNumber{}).
		Order("number ASC").
		Pluck("number", &numbers).Error
	if errFind != nil {
		return nil, fmt.Errorf("raffle: list sold: %w", errFind)
	}
	return numbers, nil
}

// FindByNumber resolves a raffle number to its current allocation: the
// confirmed order that sold it, a pending order that picked it, or available.
func FindByNumber(ctx context.Context, db *gorm.DB, number string) (NumberLookup, error) {
	var sold models.SoldNumber
	errSold := db.WithContext(ctx).Where("number = ?", number).First(&sold).Error
	switch {
	case errSold == nil:
		view, errLoad := loadOrderView(ctx, db, sold.OrderID)
		if errLoad != nil && !errors.Is(errLoad, ErrOrderNotFound) {
			return NumberLookup{}, errLoad
		}
		return NumberLookup{Found: true, Status: NumberStatusConfirmed, Order: view}, nil
	case !errors.Is(errSold, gorm.ErrRecordNotFound):
		return NumberLookup{}, fmt.Errorf("raffle: lookup sold: %w", errSold)
	}

	var owner models.OrderNumber
	errPending := db.WithContext(ctx).
		Joins("JOIN orders ON orders.order_id = order_numbers.order_id").
		Where("order_numbers.number = ? AND orders.status = ?", number, models.OrderStatusPending).
		First(&owner).Error
	switch {
	case errPending == nil:
		view, errLoad := loadOrderView(ctx, db, owner.OrderID)
		if errLoad != nil && !errors.Is(errLoad, ErrOrderNotFound) {
			return NumberLookup{}, errLoad
		}
		return NumberLookup{Found: true, Status: NumberStatusPending, Order: view}, nil
	case !errors.Is(errPending, gorm.ErrRecordNotFound):
		return NumberLookup{}, fmt.Errorf("raffle: lookup pending: %w", errPending)
	}

	return NumberLookup{Found: false, Status: NumberStatusAvailable}, nil
}

// loadOrderView loads one order by public id with its numbers in sequence.
func loadOrderView(ctx context.Context, db *gorm.DB, orderID string) (*OrderView, error) {
	var order models.Order
	errFind := db.WithContext(ctx).
		Preload("Numbers", func(tx *gorm.DB) *gorm.DB { return tx.Order("idx ASC") }).
		Where("order_id = ?", orderID).
		First(&order).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("raffle: load order %s: %w", orderID, errFind)
	}
	view := toView(&order)
	return &view, nil
}
