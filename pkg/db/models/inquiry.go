package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/motordesk/backend/pkg/enums"
)

// Inquiry is a walk-in or website question routed to the staff queue.
// VehicleID is optional: general inquiries reference no listing.
type Inquiry struct {
	ID           uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID   *uuid.UUID            `gorm:"column:customer_id;type:uuid"`
	CustomerName string                `gorm:"column:customer_name;not null"`
	Email        string                `gorm:"column:email;not null"`
	Phone        *string               `gorm:"column:phone"`
	VehicleID    *uuid.UUID            `gorm:"column:vehicle_id;type:uuid"`
	InquiryType  enums.InquiryType     `gorm:"column:inquiry_type;not null"`
	Status       enums.InquiryStatus   `gorm:"column:status;not null;default:new"`
	Priority     enums.InquiryPriority `gorm:"column:priority;not null;default:medium"`
	Subject      string                `gorm:"column:subject;not null;default:''"`
	Message      string                `gorm:"column:message;not null"`
	Tags         pq.StringArray        `gorm:"column:tags;type:text[];not null;default:ARRAY[]::text[]"`
	AssignedTo   *string               `gorm:"column:assigned_to"`
	ResolvedAt   *time.Time            `gorm:"column:resolved_at"`
	Responses    []InquiryResponse     `gorm:"foreignKey:InquiryID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
