package models

import (
	"time"

	"gorm.io/datatypes"
)

// BackupSnapshot is one entry in the rotating backup history: the full
// dataset (orders, sold numbers, config) serialized as a single JSON blob.
type BackupSnapshot struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement"` // Primary key, also the rotation order.
	Data      datatypes.JSON `gorm:"type:jsonb;not null"`      // Serialized dataset.
	CreatedAt time.Time      `gorm:"not null;autoCreateTime"`  // When the snapshot was taken.
}
