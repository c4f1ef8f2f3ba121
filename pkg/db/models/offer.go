package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motordesk/backend/pkg/enums"
)

// Offer is a promotion attached to a single vehicle. DiscountValue is a
// percentage for percentage offers and an absolute amount for fixed
// amount offers; buy-one-get-one offers ignore it.
type Offer struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VehicleID     uuid.UUID       `gorm:"column:vehicle_id;type:uuid;not null"`
	Title         string          `gorm:"column:title;not null"`
	Description   *string         `gorm:"column:description"`
	OfferType     enums.OfferType `gorm:"column:offer_type;not null"`
	DiscountValue decimal.Decimal `gorm:"column:discount_value;type:numeric(12,2);not null;default:0"`
	IsActive      bool            `gorm:"column:is_active;not null;default:true"`
	ValidFrom     *time.Time      `gorm:"column:valid_from"`
	ValidUntil    *time.Time      `gorm:"column:valid_until"`
	MaxUsage      *int            `gorm:"column:max_usage"`
	UsedCount     int             `gorm:"column:used_count;not null;default:0"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
