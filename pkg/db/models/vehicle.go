package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/motordesk/backend/pkg/enums"
)

// Vehicle is the canonical catalog listing.
type Vehicle struct {
	ID               uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name             string                `gorm:"column:name;not null"`
	Brand            string                `gorm:"column:brand;not null"`
	Model            string                `gorm:"column:model;not null"`
	Year             int                   `gorm:"column:year;not null"`
	Category         enums.VehicleCategory `gorm:"column:category;not null"`
	Price            decimal.Decimal       `gorm:"column:price;type:numeric(12,2);not null"`
	Description      *string               `gorm:"column:description"`
	Colors           pq.StringArray        `gorm:"column:colors;type:text[];not null;default:ARRAY[]::text[]"`
	StockQuantity    int                   `gorm:"column:stock_quantity;not null;default:0"`
	ReservedQuantity int                   `gorm:"column:reserved_quantity;not null;default:0"`
	InventoryStatus  enums.InventoryStatus `gorm:"column:inventory_status;not null"`
	IsActive         bool                  `gorm:"column:is_active;not null;default:true"`
	IsFeatured       bool                  `gorm:"column:is_featured;not null;default:false"`
	Images           []VehicleImage        `gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
