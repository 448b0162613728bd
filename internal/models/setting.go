package models

import "time"

// Setting stores a key/value raffle configuration entry in the database.
type Setting struct {
	Key       string    `gorm:"type:varchar(255);primaryKey"`                      // Configuration key.
	Value     string    `gorm:"type:text"`                                         // Plain string value.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime;default:CURRENT_TIMESTAMP"` // Last update timestamp.
}
