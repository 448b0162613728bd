package raffle

import (
	"context"
	"fmt"

	"github.com/fundabenefica/raffle-api/internal/models"
	"gorm.io/gorm"
)

// Stats holds the derived raffle counters. Everything is recomputed per call;
// nothing is cached.
type Stats struct {
	SoldCount      int64   `json:"soldCount"`
	PendingCount   int64   `json:"pendingCount"`
	ConfirmedCount int64   `json:"confirmedCount"`
	TotalRevenue   float64 `json:"totalRevenue"`
}

// ComputeStats aggregates counts over sold numbers and orders, and revenue
// over confirmed orders only.
func ComputeStats(ctx context.Context, db *gorm.DB) (Stats, error) {
	var stats Stats

	if errCount := db.WithContext(ctx).Model(&models.SoldNumber{}).
		Count(&stats.SoldCount).Error; errCount != nil {
		return Stats{}, fmt.Errorf("raffle: count sold: %w", errCount)
	}
	if errCount := db.WithContext(ctx).Model(&models.Order{}).
		Where("status = ?", models.OrderStatusPending).
		Count(&stats.PendingCount).Error; errCount != nil {
		return Stats{}, fmt.Errorf("raffle: count pending: %w", errCount)
	}
	if errCount := db.WithContext(ctx).Model(&models.Order{}).
		Where("status = ?", models.OrderStatusConfirmed).
		Count(&stats.ConfirmedCount).Error; errCount != nil {
		return Stats{}, fmt.Errorf("raffle: count confirmed: %w", errCount)
	}
	if errSum := db.WithContext(ctx).Model(&models.Order{}).
		Where("status = ?", models.OrderStatusConfirmed).
		Select("COALESCE(SUM(total), 0)").
		Scan(&stats.TotalRevenue).Error; errSum != nil {
		return Stats{}, fmt.Errorf("raffle: sum revenue: %w", errSum)
	}

	return stats, nil
}
