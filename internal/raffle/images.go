package raffle

import (
	"context"
	"fmt"

	"github.com/fundabenefica/raffle-api/internal/models"
	"gorm.io/gorm"
)

// AddImage stores a prize image at the given gallery position. An existing
// image at that position is replaced, not duplicated.
func AddImage(ctx context.Context, db *gorm.DB, imageData string, position int) error {
	if imageData == "" {
		return &ValidationError{Reason: "missing image"}
	}
	if position < 0 {
		return &ValidationError{Reason: "position cannot be negative"}
	}
	errTx := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if errDel := tx.Where("position = ?", position).Delete(&models.PrizeImage{}).Error; errDel != nil {
			return fmt.Errorf("raffle: replace image: %w", errDel)
		}
		row := models.PrizeImage{ImageData: imageData, Position: position}
		if errCreate := tx.Create(&row).Error; errCreate != nil {
			return fmt.Errorf("raffle: add image: %w", errCreate)
		}
		return nil
	})
	return errTx
}

// RemoveImage deletes the image at a position and reindexes the remaining
// rows to a dense 0-based sequence, preserving their relative order.
func RemoveImage(ctx context.Context, db *gorm.DB, position int) error {
	errTx := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if errDel := tx.Where("position = ?", position).Delete(&models.PrizeImage{}).Error; errDel != nil {
			return fmt.Errorf("raffle: delete image: %w", errDel)
		}

		var remaining []models.PrizeImage
		if errFind := tx.Order("position ASC").Find(&remaining).Error; errFind != nil {
			return fmt.Errorf("raffle: list images: %w", errFind)
		}
		if errClear := tx.Where("1 = 1").Delete(&models.PrizeImage{}).Error; errClear != nil {
			return fmt.Errorf("raffle: clear images: %w", errClear)
		}
		for idx := range remaining {
			row := models.PrizeImage{ImageData: remaining[idx].ImageData, Position: idx}
			if errCreate := tx.Create(&row).Error; errCreate != nil {
				return fmt.Errorf("raffle: reindex image: %w", errCreate)
			}
		}
		return nil
	})
	return errTx
}

// ListImages returns image payloads ordered by gallery position.
func ListImages(ctx context.Context, db *gorm.DB) ([]string, error) {
	var images []string
	errFind := db.WithContext(ctx).Model(&models.PrizeImage{}).
		Order("position ASC").
		Pluck("image_data", &images).Error
	if errFind != nil {
		return nil, fmt.Errorf("raffle: list images: %w", errFind)
	}
	return images, nil
}
