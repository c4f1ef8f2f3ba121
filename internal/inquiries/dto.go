package inquiries

import (
	"time"

	"github.com/google/uuid"

	"github.com/motordesk/backend/pkg/db/models"
)

// InquiryDTO is the staff queue payload.
type InquiryDTO struct {
	ID           uuid.UUID            `json:"id"`
	CustomerID   *uuid.UUID           `json:"customer_id,omitempty"`
	CustomerName string               `json:"customer_name"`
	Email        string               `json:"email"`
	Phone        *string              `json:"phone,omitempty"`
	VehicleID    *uuid.UUID           `json:"vehicle_id,omitempty"`
	InquiryType  string               `json:"inquiry_type"`
	Status       string               `json:"status"`
	Priority     string               `json:"priority"`
	Subject      string               `json:"subject"`
	Message      string               `json:"message"`
	Tags         []string             `json:"tags"`
	AssignedTo   *string              `json:"assigned_to,omitempty"`
	ResolvedAt   *time.Time           `json:"resolved_at,omitempty"`
	IsOpen       bool                 `json:"is_open"`
	Responses    []InquiryResponseDTO `json:"responses,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// InquiryResponseDTO is one staff reply in the thread.
type InquiryResponseDTO struct {
	ID        uuid.UUID `json:"id"`
	Responder string    `json:"responder"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// NewInquiryDTO builds the queue payload from the persisted model.
func NewInquiryDTO(inquiry *models.Inquiry) *InquiryDTO {
	dto := &InquiryDTO{
		ID:           inquiry.ID,
		CustomerID:   inquiry.CustomerID,
		CustomerName: inquiry.CustomerName,
		Email:        inquiry.Email,
		Phone:        inquiry.Phone,
		VehicleID:    inquiry.VehicleID,
		InquiryType:  inquiry.InquiryType.String(),
		Status:       inquiry.Status.String(),
		Priority:     inquiry.Priority.String(),
		Subject:      inquiry.Subject,
		Message:      inquiry.Message,
		Tags:         append([]string{}, inquiry.Tags...),
		AssignedTo:   inquiry.AssignedTo,
		ResolvedAt:   inquiry.ResolvedAt,
		IsOpen:       inquiry.Status.IsOpen(),
		CreatedAt:    inquiry.CreatedAt,
		UpdatedAt:    inquiry.UpdatedAt,
	}

	if len(inquiry.Responses) > 0 {
		dto.Responses = make([]InquiryResponseDTO, len(inquiry.Responses))
		for i, response := range inquiry.Responses {
			dto.Responses[i] = InquiryResponseDTO{
				ID:        response.ID,
				Responder: response.Responder,
				Message:   response.Message,
				CreatedAt: response.CreatedAt,
			}
		}
	}
	return dto
}
