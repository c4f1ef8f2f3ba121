package models

import (
	"time"

	"github.com/google/uuid"
)

// InquiryResponse is one staff reply appended to an inquiry thread.
type InquiryResponse struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	InquiryID uuid.UUID `gorm:"column:inquiry_id;type:uuid;not null"`
	Responder string    `gorm:"column:responder;not null"`
	Message   string    `gorm:"column:message;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
