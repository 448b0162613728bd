package db

import (
	"fmt"

	"github.com/fundabenefica/raffle-api/internal/models"
	"gorm.io/gorm"
)

// Migrate creates or updates the raffle schema.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}
	if errMigrate := conn.AutoMigrate(
		&models.Setting{},
		&models.PaymentMethod{},
		&models.PrizeImage{},
		&models.Order{},
		&models.OrderNumber{},
		&models.SoldNumber{},
		&models.BackupSnapshot{},
	); errMigrate != nil {
		return fmt.Errorf("db: migrate: %w", errMigrate)
	}
	return nil
}
