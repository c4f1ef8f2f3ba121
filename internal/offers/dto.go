package offers

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motordesk/backend/internal/pricing"
	"github.com/motordesk/backend/pkg/db/models"
)

// OfferDTO is the offer payload returned to clients. Validity and
// remaining usage are computed at render time against the clock.
type OfferDTO struct {
	ID                uuid.UUID       `json:"id"`
	VehicleID         uuid.UUID       `json:"vehicle_id"`
	Title             string          `json:"title"`
	Description       *string         `json:"description,omitempty"`
	OfferType         string          `json:"offer_type"`
	DiscountValue     decimal.Decimal `json:"discount_value"`
	IsActive          bool            `json:"is_active"`
	ValidFrom         *time.Time      `json:"valid_from,omitempty"`
	ValidUntil        *time.Time      `json:"valid_until,omitempty"`
	MaxUsage          *int            `json:"max_usage,omitempty"`
	UsedCount         int             `json:"used_count"`
	IsCurrentlyValid  bool            `json:"is_currently_valid"`
	HasUsageRemaining bool            `json:"has_usage_remaining"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// NewOfferDTO builds a DTO from the persisted model, evaluating the
// time-dependent fields against now.
func NewOfferDTO(offer *models.Offer, now time.Time) *OfferDTO {
	return &OfferDTO{
		ID:                offer.ID,
		VehicleID:         offer.VehicleID,
		Title:             offer.Title,
		Description:       offer.Description,
		OfferType:         offer.OfferType.String(),
		DiscountValue:     offer.DiscountValue,
		IsActive:          offer.IsActive,
		ValidFrom:         offer.ValidFrom,
		ValidUntil:        offer.ValidUntil,
		MaxUsage:          offer.MaxUsage,
		UsedCount:         offer.UsedCount,
		IsCurrentlyValid:  pricing.IsOfferCurrentlyValid(*offer, now),
		HasUsageRemaining: pricing.HasUsageRemaining(*offer),
		CreatedAt:         offer.CreatedAt,
		UpdatedAt:         offer.UpdatedAt,
	}
}
