package raffle

import (
	"context"
	"fmt"

	"github.com/fundabenefica/raffle-api/internal/models"
	"github.com/fundabenefica/raffle-api/internal/settings"
	"gorm.io/gorm"
)

// Reset wipes orders, their numbers, the sold set and the prize gallery,
// then restores the prize configuration to its defaults. The admin password
// and payment methods survive a reset. Callers snapshot before invoking this.
func Reset(ctx context.Context, db *gorm.DB) error {
	errTx := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&models.OrderNumber{},
			&models.Order{},
			&models.SoldNumber{},
			&models.PrizeImage{},
		} {
			if errDel := tx.Where("1 = 1").Delete(model).Error; errDel != nil {
				return fmt.Errorf("raffle: reset wipe: %w", errDel)
			}
		}

		restore := map[string]string{
			settings.PrizeTitleKey:       "",
			settings.PrizeDescriptionKey: "",
			settings.PrizeDateKey:        "",
			settings.PrizeTimeKey:        "",
			settings.PrizePriceKey:       settings.DefaultPrizePrice,
			settings.PrizeDigitsKey:      settings.DefaultPrizeDigits,
		}
		for key, value := range restore {
			if errSet := settings.Set(ctx, tx, key, value); errSet != nil {
				return errSet
			}
		}
		return nil
	})
	return errTx
}
