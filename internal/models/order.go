package models

import "time"

// Order statuses. Rejected orders are deleted, never marked.
const (
	// OrderStatusPending marks an order awaiting payment confirmation.
	OrderStatusPending = "pending"
	// OrderStatusConfirmed marks an order whose payment was verified.
	OrderStatusConfirmed = "confirmed"
)

// Order represents a purchase request for one or more raffle numbers.
type Order struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	OrderID string `gorm:"type:varchar(64);not null;uniqueIndex"` // Public order identifier.

	Name  string `gorm:"type:text;not null"` // Buyer name.
	Email string `gorm:"type:text;not null"` // Buyer email.
	Phone string `gorm:"type:text;not null"` // Buyer phone, free form.

	Qty   int     `gorm:"not null"`  // Number of raffle numbers purchased.
	Total float64 `gorm:"not null"`  // Total price.
	Image string  `gorm:"type:text"` // Optional proof-of-payment data URI.

	Status string `gorm:"type:varchar(16);not null;default:pending;index"` // pending or confirmed.

	Numbers []OrderNumber `gorm:"foreignKey:OrderID;references:OrderID;constraint:OnDelete:CASCADE"` // Ordered raffle numbers.

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index"` // Creation timestamp.
}

// OrderNumber is one raffle number inside an order, kept as a real relation
// so the order's numbers stay an ordered sequence addressable by SQL.
type OrderNumber struct {
	ID      uint64 `gorm:"primaryKey;autoIncrement"`          // Primary key.
	OrderID string `gorm:"type:varchar(64);not null;index"`   // Owning order identifier.
	Idx     int    `gorm:"not null"`                          // Position within the order.
	Number  string `gorm:"type:varchar(16);not null;index"`   // The raffle number.
}
