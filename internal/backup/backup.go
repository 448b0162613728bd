// Package backup maintains a bounded rotating history of full dataset
// snapshots and produces on-demand exports.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fundabenefica/raffle-api/internal/models"
	"github.com/fundabenefica/raffle-api/internal/raffle"
	"github.com/fundabenefica/raffle-api/internal/settings"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// historyLimit bounds the rotating snapshot history.
const historyLimit = 50

// snapshotPayload is the serialized dataset stored per history entry.
type snapshotPayload struct {
	Orders      []raffle.OrderView  `json:"orders"`
	SoldNumbers []models.SoldNumber `json:"sold_numbers"`
	Config      map[string]string   `json:"config"`
	TakenAt     time.Time           `json:"taken_at"`
}

// Snapshot serializes the current orders, sold numbers and config into one
// history entry, then evicts everything but the newest entries. Failures are
// the caller's to log; order flows must not fail because a backup did.
func Snapshot(ctx context.Context, db *gorm.DB) error {
	payload, errCollect := collect(ctx, db)
	if errCollect != nil {
		return errCollect
	}

	blob, errMarshal := json.Marshal(payload)
	if errMarshal != nil {
		return fmt.Errorf("backup: marshal snapshot: %w", errMarshal)
	}

	errTx := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := models.BackupSnapshot{Data: datatypes.JSON(blob)}
		if errCreate := tx.Create(&row).Error; errCreate != nil {
			return fmt.Errorf("backup: store snapshot: %w", errCreate)
		}
		return rotate(tx)
	})
	return errTx
}

// TrySnapshot runs Snapshot and swallows any failure with a warning log.
func TrySnapshot(ctx context.Context, db *gorm.DB) {
	if errSnap := Snapshot(ctx, db); errSnap != nil {
		log.WithError(errSnap).Warn("backup snapshot failed")
	}
}

// rotate evicts all but the newest historyLimit snapshots, oldest first.
func rotate(tx *gorm.DB) error {
	var ids []uint64
	errFind := tx.Model(&models.BackupSnapshot{}).
		Order("id DESC").
		Offset(historyLimit - 1).
		Limit(1).
		Pluck("id", &ids).Error
	if errFind != nil {
		return fmt.Errorf("backup: find rotation cutoff: %w", errFind)
	}
	if len(ids) == 0 {
		return nil
	}
	if errDel := tx.Where("id < ?", ids[0]).Delete(&models.BackupSnapshot{}).Error; errDel != nil {
		return fmt.Errorf("backup: evict snapshots: %w", errDel)
	}
	return nil
}

// collect gathers the full dataset for serialization.
func collect(ctx context.Context, db *gorm.DB) (snapshotPayload, error) {
	pending, errPending := raffle.ListOrders(ctx, db, models.OrderStatusPending)
	if errPending != nil {
		return snapshotPayload{}, errPending
	}
	confirmed, errConfirmed := raffle.ListOrders(ctx, db, models.OrderStatusConfirmed)
	if errConfirmed != nil {
		return snapshotPayload{}, errConfirmed
	}

	var sold []models.SoldNumber
	if errFind := db.WithContext(ctx).Order("number ASC").Find(&sold).Error; errFind != nil {
		return snapshotPayload{}, fmt.Errorf("backup: list sold: %w", errFind)
	}

	config, errConfig := settings.All(ctx, db)
	if errConfig != nil {
		return snapshotPayload{}, errConfig
	}

	return snapshotPayload{
		Orders:      append(confirmed, pending...),
		SoldNumbers: sold,
		Config:      config,
		TakenAt:     time.Now().UTC(),
	}, nil
}

// HistoryCount returns the number of retained snapshots.
func HistoryCount(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	if errCount := db.WithContext(ctx).Model(&models.BackupSnapshot{}).Count(&count).Error; errCount != nil {
		return 0, fmt.Errorf("backup: count snapshots: %w", errCount)
	}
	return count, nil
}
