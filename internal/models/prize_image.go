package models

// PrizeImage stores one prize gallery image as a data URI.
//
// Positions form a dense 0-based sequence; deleting an image reindexes the
// remaining rows so no gap survives.
type PrizeImage struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.
	ImageData string `gorm:"type:text;not null"`       // Image payload as a data URI.
	Position  int    `gorm:"not null;index"`           // Slot in the gallery, 0-based.
}
