package models

import "time"

// SoldNumber records a raffle number permanently allocated to a confirmed order.
type SoldNumber struct {
	Number      string    `gorm:"type:varchar(16);primaryKey"` // The raffle number itself.
	OrderID     string    `gorm:"type:varchar(64);index"`      // Order that sold the number.
	ConfirmedAt time.Time `gorm:"not null"`                    // When the sale was confirmed.
}
