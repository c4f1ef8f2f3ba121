package models

import (
	"time"

	"github.com/google/uuid"
)

// VehicleImage is a gallery entry attached to a vehicle listing.
type VehicleImage struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	VehicleID uuid.UUID `gorm:"column:vehicle_id;type:uuid;not null"`
	URL       string    `gorm:"column:url;not null"`
	AltText   *string   `gorm:"column:alt_text"`
	Color     *string   `gorm:"column:color"`
	Position  int       `gorm:"column:position;not null;default:0"`
	IsPrimary bool      `gorm:"column:is_primary;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
