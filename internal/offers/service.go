package offers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/motordesk/backend/internal/pricing"
	"github.com/motordesk/backend/pkg/db/models"
	"github.com/motordesk/backend/pkg/enums"
	pkgerrors "github.com/motordesk/backend/pkg/errors"
	"github.com/motordesk/backend/pkg/logger"
	"github.com/motordesk/backend/pkg/pagination"
)

// Service exposes offer management operations.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*OfferDTO, error)
	Update(ctx context.Context, offerID uuid.UUID, input UpdateInput) (*OfferDTO, error)
	Delete(ctx context.Context, offerID uuid.UUID) error
	Get(ctx context.Context, offerID uuid.UUID) (*OfferDTO, error)
	List(ctx context.Context, input ListInput) (*ListResult, error)
	ActiveForVehicle(ctx context.Context, vehicleID uuid.UUID) ([]OfferDTO, error)
	SetActive(ctx context.Context, offerID uuid.UUID, active bool) (*OfferDTO, error)
	RecordRedemption(ctx context.Context, offerID uuid.UUID) (*OfferDTO, error)
}

// CreateInput holds the validated payload to create an offer.
type CreateInput struct {
	VehicleID     uuid.UUID
	Title         string
	Description   *string
	OfferType     enums.OfferType
	DiscountValue decimal.Decimal
	IsActive      bool
	ValidFrom     *time.Time
	ValidUntil    *time.Time
	MaxUsage      *int
}

// UpdateInput holds optional mutation values for an offer. The offer
// type and discount are patched together so they stay coherent.
type UpdateInput struct {
	Title         *string
	Description   *string
	OfferType     *enums.OfferType
	DiscountValue *decimal.Decimal
	IsActive      *bool
	ValidFrom     *time.Time
	ValidUntil    *time.Time
	ClearValidity bool
	MaxUsage      *int
	ClearMaxUsage bool
}

type service struct {
	repo        Repository
	vehicleRepo vehicleReader
	logg        *logger.Logger
	now         func() time.Time
}

// NewService constructs an offer service instance.
func NewService(repo Repository, vehicleRepo vehicleReader, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("offer repository required")
	}
	if vehicleRepo == nil {
		return nil, fmt.Errorf("vehicle repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:        repo,
		vehicleRepo: vehicleRepo,
		logg:        logg,
		now:         time.Now,
	}, nil
}

// Create attaches a new offer to an existing vehicle.
func (s *service) Create(ctx context.Context, input CreateInput) (*OfferDTO, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if err := validateDiscount(input.OfferType, input.DiscountValue); err != nil {
		return nil, err
	}
	if err := validateMaxUsage(input.MaxUsage); err != nil {
		return nil, err
	}

	if _, err := s.vehicleRepo.FindByID(ctx, input.VehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
	}

	offer := &models.Offer{
		VehicleID:     input.VehicleID,
		Title:         strings.TrimSpace(input.Title),
		Description:   input.Description,
		OfferType:     input.OfferType,
		DiscountValue: input.DiscountValue,
		IsActive:      input.IsActive,
		ValidFrom:     input.ValidFrom,
		ValidUntil:    input.ValidUntil,
		MaxUsage:      input.MaxUsage,
	}
	if !input.OfferType.AffectsPrice() {
		offer.DiscountValue = decimal.Zero
	}

	// Omitted validity bounds default to a 30-day window from now.
	now := s.now()
	if offer.ValidFrom == nil {
		from := now
		offer.ValidFrom = &from
	}
	if offer.ValidUntil == nil {
		until := now.Add(30 * 24 * time.Hour)
		offer.ValidUntil = &until
	}

	created, err := s.repo.Create(ctx, offer)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert offer")
	}
	return NewOfferDTO(created, s.now()), nil
}

// Update patches the offer; only provided fields change.
func (s *service) Update(ctx context.Context, offerID uuid.UUID, input UpdateInput) (*OfferDTO, error) {
	offer, err := s.loadOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}

	offerType := offer.OfferType
	if input.OfferType != nil {
		offerType = *input.OfferType
	}
	discount := offer.DiscountValue
	if input.DiscountValue != nil {
		discount = *input.DiscountValue
	}
	if err := validateDiscount(offerType, discount); err != nil {
		return nil, err
	}
	if input.MaxUsage != nil {
		if err := validateMaxUsage(input.MaxUsage); err != nil {
			return nil, err
		}
	}
	if input.Title != nil && strings.TrimSpace(*input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}

	applyUpdateToOffer(offer, input)
	if !offer.OfferType.AffectsPrice() {
		offer.DiscountValue = decimal.Zero
	}

	updated, err := s.repo.Update(ctx, offer)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update offer")
	}
	return NewOfferDTO(updated, s.now()), nil
}

func (s *service) Delete(ctx context.Context, offerID uuid.UUID) error {
	if _, err := s.loadOffer(ctx, offerID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, offerID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete offer")
	}
	return nil
}

func (s *service) Get(ctx context.Context, offerID uuid.UUID) (*OfferDTO, error) {
	offer, err := s.loadOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	return NewOfferDTO(offer, s.now()), nil
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	rows, total, err := s.repo.List(ctx, ListQuery(input))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list offers")
	}

	now := s.now()
	dtos := make([]OfferDTO, len(rows))
	for i := range rows {
		dtos[i] = *NewOfferDTO(&rows[i], now)
	}
	return &ListResult{
		Offers: dtos,
		Page:   pagination.Build(input.Pagination, total),
	}, nil
}

// ActiveForVehicle returns the vehicle's currently-valid offers in
// creation order. The first entry is the one that prices the listing.
func (s *service) ActiveForVehicle(ctx context.Context, vehicleID uuid.UUID) ([]OfferDTO, error) {
	if _, err := s.vehicleRepo.FindByID(ctx, vehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
	}

	rows, err := s.repo.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list vehicle offers")
	}

	now := s.now()
	dtos := make([]OfferDTO, 0, len(rows))
	for i := range rows {
		if pricing.IsOfferCurrentlyValid(rows[i], now) {
			dtos = append(dtos, *NewOfferDTO(&rows[i], now))
		}
	}
	return dtos, nil
}

// SetActive flips the activation toggle without touching anything else.
func (s *service) SetActive(ctx context.Context, offerID uuid.UUID, active bool) (*OfferDTO, error) {
	offer, err := s.loadOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}

	offer.IsActive = active
	updated, err := s.repo.Update(ctx, offer)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: toggle offer")
	}
	return NewOfferDTO(updated, s.now()), nil
}

// RecordRedemption bumps the usage counter. The cap is advisory: an
// exhausted offer is logged, not rejected, because redemptions are
// recorded after the fact.
func (s *service) RecordRedemption(ctx context.Context, offerID uuid.UUID) (*OfferDTO, error) {
	offer, err := s.loadOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}

	if !pricing.HasUsageRemaining(*offer) {
		warnCtx := s.logg.WithFields(ctx, map[string]any{
			"offer_id":   offerID.String(),
			"used_count": offer.UsedCount,
		})
		s.logg.Warn(warnCtx, "offer redeemed past its usage cap")
	}

	if err := s.repo.IncrementUsage(ctx, offerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment offer usage")
	}

	return s.Get(ctx, offerID)
}

func (s *service) loadOffer(ctx context.Context, offerID uuid.UUID) (*models.Offer, error) {
	offer, err := s.repo.FindByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "offer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offer")
	}
	return offer, nil
}

func applyUpdateToOffer(offer *models.Offer, input UpdateInput) {
	if input.Title != nil {
		offer.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		offer.Description = input.Description
	}
	if input.OfferType != nil {
		offer.OfferType = *input.OfferType
	}
	if input.DiscountValue != nil {
		offer.DiscountValue = *input.DiscountValue
	}
	if input.IsActive != nil {
		offer.IsActive = *input.IsActive
	}
	if input.ClearValidity {
		offer.ValidFrom = nil
		offer.ValidUntil = nil
	} else {
		if input.ValidFrom != nil {
			offer.ValidFrom = input.ValidFrom
		}
		if input.ValidUntil != nil {
			offer.ValidUntil = input.ValidUntil
		}
	}
	if input.ClearMaxUsage {
		offer.MaxUsage = nil
	} else if input.MaxUsage != nil {
		offer.MaxUsage = input.MaxUsage
	}
}

func validateDiscount(offerType enums.OfferType, value decimal.Decimal) error {
	if !offerType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid offer type")
	}
	switch offerType {
	case enums.OfferTypePercentage:
		if value.IsNegative() || value.GreaterThan(decimal.NewFromInt(100)) {
			return pkgerrors.New(pkgerrors.CodeValidation, "percentage discount must be between 0 and 100")
		}
	case enums.OfferTypeFixedAmount:
		if value.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "fixed amount discount must be non-negative")
		}
	}
	return nil
}

func validateMaxUsage(maxUsage *int) error {
	if maxUsage != nil && *maxUsage <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "max_usage must be positive")
	}
	return nil
}
