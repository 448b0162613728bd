package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fundabenefica/raffle-api/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SetPayment replaces or creates a payment method. The payload is always
// written wholesale; there is no partial merge.
func SetPayment(ctx context.Context, db *gorm.DB, id string, payload json.RawMessage) error {
	row := models.PaymentMethod{ID: id, Data: datatypes.JSON(payload)}
	errSave := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
	}).Create(&row).Error
	if errSave != nil {
		return fmt.Errorf("settings: set payment %s: %w", id, errSave)
	}
	return nil
}

// AllPayments returns every payment method with its payload parsed back into
// structured form.
func AllPayments(ctx context.Context, db *gorm.DB) (map[string]json.RawMessage, error) {
	var rows []models.PaymentMethod
	if errFind := db.WithContext(ctx).Find(&rows).Error; errFind != nil {
		return nil, fmt.Errorf("settings: list payments: %w", errFind)
	}
	out := make(map[string]json.RawMessage, len(rows))
	for _, row := range rows {
		out[row.ID] = json.RawMessage(row.Data)
	}
	return out, nil
}

// seedPayments inserts the default payment channels, skipping existing ids.
func seedPayments(ctx context.Context, db *gorm.DB) error {
	defaults := []models.PaymentMethod{
		{ID: "zelle", Data: datatypes.JSON(`{"email":"pagos@fundabenefica.com","phone":"+1 555 123-4567","name":"FundaBenefica"}`)},
		{ID: "bank", Data: datatypes.JSON(`{"name":"Bank of America","account":"1234567890","routing":"026009593","beneficiary":"FundaBenefica"}`)},
		{ID: "paypal", Data: datatypes.JSON(`{"email":"paypal@fundabenefica.com","link":"paypal.me/fundabenefica"}`)},
	}
	errSeed := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&defaults).Error
	if errSeed != nil {
		return fmt.Errorf("settings: seed payments: %w", errSeed)
	}
	return nil
}
