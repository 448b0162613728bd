// Package settings persists raffle configuration and payment methods in the
// database. Nothing is cached: every read goes back to the store.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fundabenefica/raffle-api/internal/models"
	"github.com/fundabenefica/raffle-api/internal/security"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrPasswordTooShort indicates an admin password below the minimum length.
var ErrPasswordTooShort = fmt.Errorf("settings: password must be at least %d characters", MinPasswordLength)

// Get returns the value for a config key, or "" with found=false when absent.
func Get(ctx context.Context, db *gorm.DB, key string) (string, bool, error) {
	var row models.Setting
	errFind := db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("settings: get %s: %w", key, errFind)
	}
	return row.Value, true, nil
}

// Set upserts a config key.
func Set(ctx context.Context, db *gorm.DB, key, value string) error {
	row := models.Setting{Key: key, Value: value}
	errSave := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if errSave != nil {
		return fmt.Errorf("settings: set %s: %w", key, errSave)
	}
	return nil
}

// All returns every config entry except the admin password hash, which must
// never leave the process through a bulk read.
func All(ctx context.Context, db *gorm.DB) (map[string]string, error) {
	var rows []models.Setting
	if errFind := db.WithContext(ctx).Where("key <> ?", AdminPassKey).Find(&rows).Error; errFind != nil {
		return nil, fmt.Errorf("settings: list: %w", errFind)
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

// Seed inserts the default config entries and payment methods, skipping any
// key already present. Existing values are never overwritten.
func Seed(ctx context.Context, db *gorm.DB) error {
	hash, errHash := security.HashPassword(DefaultAdminPassword)
	if errHash != nil {
		return fmt.Errorf("settings: hash default password: %w", errHash)
	}
	defaults := []models.Setting{
		{Key: AdminPassKey, Value: hash},
		{Key: PrizeTitleKey, Value: DefaultPrizeTitle},
		{Key: PrizeDescriptionKey, Value: DefaultPrizeDescription},
		{Key: PrizeDateKey, Value: ""},
		{Key: PrizeTimeKey, Value: ""},
		{Key: PrizePriceKey, Value: DefaultPrizePrice},
		{Key: PrizeDigitsKey, Value: DefaultPrizeDigits},
	}
	errSeed := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}).Create(&defaults).Error
	if errSeed != nil {
		return fmt.Errorf("settings: seed config: %w", errSeed)
	}
	return seedPayments(ctx, db)
}

// VerifyAdminPassword checks a candidate password against the stored hash.
func VerifyAdminPassword(ctx context.Context, db *gorm.DB, password string) (bool, error) {
	hash, found, errGet := Get(ctx, db, AdminPassKey)
	if errGet != nil {
		return false, errGet
	}
	if !found {
		return false, nil
	}
	return security.CheckPassword(hash, password), nil
}

// SetAdminPassword validates and stores a new admin password hash.
func SetAdminPassword(ctx context.Context, db *gorm.DB, password string) error {
	if len(strings.TrimSpace(password)) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	hash, errHash := security.HashPassword(password)
	if errHash != nil {
		return fmt.Errorf("settings: hash password: %w", errHash)
	}
	return Set(ctx, db, AdminPassKey, hash)
}

// PrizeUpdate carries a partial prize configuration change. Nil fields are
// left untouched.
type PrizeUpdate struct {
	Title       *string
	Description *string
	Date        *string
	Time        *string
	Price       *string
	Digits      *string
}

// UpdatePrize applies a partial prize configuration update. Changing the
// digit count invalidates every existing number, so orders, their numbers
// and the sold set are wiped in the same transaction.
func UpdatePrize(ctx context.Context, db *gorm.DB, in PrizeUpdate) (digitsChanged bool, err error) {
	errTx := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if in.Digits != nil {
			oldDigits, _, errGet := Get(ctx, tx, PrizeDigitsKey)
			if errGet != nil {
				return errGet
			}
			if *in.Digits != oldDigits {
				digitsChanged = true
				for _, model := range []any{&models.SoldNumber{}, &models.OrderNumber{}, &models.Order{}} {
					if errDel := tx.Where("1 = 1").Delete(model).Error; errDel != nil {
						return fmt.Errorf("settings: wipe on digit change: %w", errDel)
					}
				}
			}
		}

		fields := map[string]*string{
			PrizeTitleKey:       in.Title,
			PrizeDescriptionKey: in.Description,
			PrizeDateKey:        in.Date,
			PrizeTimeKey:        in.Time,
			PrizePriceKey:       in.Price,
			PrizeDigitsKey:      in.Digits,
		}
		for key, value := range fields {
			if value == nil {
				continue
			}
			if errSet := Set(ctx, tx, key, *value); errSet != nil {
				return errSet
			}
		}
		return nil
	})
	if errTx != nil {
		return false, errTx
	}
	return digitsChanged, nil
}
