package backup

import (
	"context"
	"time"

	"github.com/fundabenefica/raffle-api/internal/models"
	"github.com/fundabenefica/raffle-api/internal/raffle"
	"github.com/fundabenefica/raffle-api/internal/settings"
	"gorm.io/gorm"
)

// ExportDocument is a point-in-time dump of the whole raffle, independent of
// the rotating history. It is served as a downloadable attachment.
type ExportDocument struct {
	ExportedAt     time.Time          `json:"exported_at"`
	TotalOrders    int                `json:"total_orders"`
	ConfirmedCount int                `json:"confirmed_count"`
	PendingCount   int                `json:"pending_count"`
	SoldCount      int                `json:"sold_count"`
	Config         map[string]string  `json:"config"`
	Orders         []raffle.OrderView `json:"orders"`
	SoldNumbers    []string           `json:"sold_numbers"`
}

// Export assembles the full export document.
func Export(ctx context.Context, db *gorm.DB) (ExportDocument, error) {
	pending, errPending := raffle.ListOrders(ctx, db, models.OrderStatusPending)
	if errPending != nil {
		return ExportDocument{}, errPending
	}
	confirmed, errConfirmed := raffle.ListOrders(ctx, db, models.OrderStatusConfirmed)
	if errConfirmed != nil {
		return ExportDocument{}, errConfirmed
	}
	sold, errSold := raffle.ListSold(ctx, db)
	if errSold != nil {
		return ExportDocument{}, errSold
	}
	config, errConfig := settings.All(ctx, db)
	if errConfig != nil {
		return ExportDocument{}, errConfig
	}

	orders := append(confirmed, pending...)
	return ExportDocument{
		ExportedAt:     time.Now().UTC(),
		TotalOrders:    len(orders),
		ConfirmedCount: len(confirmed),
		PendingCount:   len(pending),
		SoldCount:      len(sold),
		Config:         config,
		Orders:         orders,
		SoldNumbers:    sold,
	}, nil
}
