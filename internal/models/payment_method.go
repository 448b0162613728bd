package models

import (
	"time"

	"gorm.io/datatypes"
)

// PaymentMethod stores one payment channel keyed by its identifier.
//
// Data carries the whole channel payload (account numbers, emails, links) as
// opaque JSON; writes always replace it wholesale.
type PaymentMethod struct {
	ID        string         `gorm:"type:varchar(64);primaryKey"` // Method identifier, e.g. "zelle".
	Data      datatypes.JSON `gorm:"type:jsonb;not null"`         // Channel payload in JSON.
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime"`     // Last update timestamp.
}
