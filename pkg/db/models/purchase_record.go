package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseRecord is one completed sale in a customer's history.
type PurchaseRecord struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID  uuid.UUID       `gorm:"column:customer_id;type:uuid;not null"`
	VehicleID   uuid.UUID       `gorm:"column:vehicle_id;type:uuid;not null"`
	OfferID     *uuid.UUID      `gorm:"column:offer_id;type:uuid"`
	SalePrice   decimal.Decimal `gorm:"column:sale_price;type:numeric(12,2);not null"`
	PurchasedAt time.Time       `gorm:"column:purchased_at;not null"`
	Notes       *string         `gorm:"column:notes"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
}
