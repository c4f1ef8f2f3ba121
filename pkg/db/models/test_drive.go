package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/motordesk/backend/pkg/enums"
)

// TestDrive is a scheduled appointment in a customer's history.
type TestDrive struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID  uuid.UUID             `gorm:"column:customer_id;type:uuid;not null"`
	VehicleID   uuid.UUID             `gorm:"column:vehicle_id;type:uuid;not null"`
	ScheduledAt time.Time             `gorm:"column:scheduled_at;not null"`
	Status      enums.TestDriveStatus `gorm:"column:status;not null;default:scheduled"`
	Notes       *string               `gorm:"column:notes"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
