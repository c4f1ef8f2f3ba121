package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motordesk/backend/api/responses"
	"github.com/motordesk/backend/api/validators"
	offersvc "github.com/motordesk/backend/internal/offers"
	"github.com/motordesk/backend/pkg/enums"
	pkgerrors "github.com/motordesk/backend/pkg/errors"
	"github.com/motordesk/backend/pkg/logger"
)

// CreateOffer attaches a promotional offer to a vehicle.
func CreateOffer(svc offersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "offer service unavailable"))
			return
		}

		var payload createOfferRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		offer, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, offer)
	}
}

// UpdateOffer patches an existing offer.
func UpdateOffer(svc offersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "offer service unavailable"))
			return
		}

		offerID, err := validators.ParseUUIDParam(r, "offerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateOfferRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		offer, err := svc.Update(r.Context(), offerID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, offer)
	}
}

// DeleteOffer removes an offer outright.
func DeleteOffer(svc offersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "offer service unavailable"))
			return
		}

		offerID, err := validators.ParseUUIDParam(r, "offerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), offerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// GetOffer returns one offer with its computed validity flags.
func GetOffer(svc offersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "offer service unavailable"))
			return
		}

		offerID, err := validators.ParseUUIDParam(r, "offerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		offer, err := svc.Get(r.Context(), offerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, offer)
	}
}

// ListOffers returns a filtered offer page.
func ListOffers(svc offersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "offer service unavailable"))
			return
		}

		input, err := parseOfferListInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// VehicleActiveOffers returns the vehicle's currently-valid offers in
// creation order.
func VehicleActiveOffers(svc offersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "offer service unavailable"))
			return
		}

		vehicleID, err := validators.ParseUUIDParam(r, "vehicleId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		offers, err := svc.ActiveForVehicle(r.Context(), vehicleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, offers)
	}
}

// SetOfferActive flips the activation toggle.
func SetOfferActive(svc offersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "offer service unavailable"))
			return
		}

		offerID, err := validators.ParseUUIDParam(r, "offerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setOfferActiveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		offer, err := svc.SetActive(r.Context(), offerID, payload.IsActive)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, offer)
	}
}

// RecordOfferRedemption bumps the usage counter after a sale closes.
func RecordOfferRedemption(svc offersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "offer service unavailable"))
			return
		}

		offerID, err := validators.ParseUUIDParam(r, "offerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		offer, err := svc.RecordRedemption(r.Context(), offerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, offer)
	}
}

type createOfferRequest struct {
	VehicleID     string          `json:"vehicle_id" validate:"required,uuid"`
	Title         string          `json:"title" validate:"required"`
	Description   *string         `json:"description,omitempty"`
	OfferType     string          `json:"offer_type" validate:"required"`
	DiscountValue decimal.Decimal `json:"discount_value"`
	IsActive      *bool           `json:"is_active,omitempty"`
	ValidFrom     *time.Time      `json:"valid_from,omitempty"`
	ValidUntil    *time.Time      `json:"valid_until,omitempty"`
	MaxUsage      *int            `json:"max_usage,omitempty" validate:"omitempty,min=1"`
}

type updateOfferRequest struct {
	Title         *string          `json:"title,omitempty"`
	Description   *string          `json:"description,omitempty"`
	OfferType     *string          `json:"offer_type,omitempty"`
	DiscountValue *decimal.Decimal `json:"discount_value,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"`
	ValidFrom     *time.Time       `json:"valid_from,omitempty"`
	ValidUntil    *time.Time       `json:"valid_until,omitempty"`
	ClearValidity bool             `json:"clear_validity,omitempty"`
	MaxUsage      *int             `json:"max_usage,omitempty"`
	ClearMaxUsage bool             `json:"clear_max_usage,omitempty"`
}

type setOfferActiveRequest struct {
	IsActive bool `json:"is_active"`
}

func (r createOfferRequest) toCreateInput() (offersvc.CreateInput, error) {
	vehicleID, err := uuid.Parse(strings.TrimSpace(r.VehicleID))
	if err != nil {
		return offersvc.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vehicle id")
	}

	offerType, err := enums.ParseOfferType(strings.TrimSpace(r.OfferType))
	if err != nil {
		return offersvc.CreateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid offer type")
	}

	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	return offersvc.CreateInput{
		VehicleID:     vehicleID,
		Title:         strings.TrimSpace(r.Title),
		Description:   r.Description,
		OfferType:     offerType,
		DiscountValue: r.DiscountValue,
		IsActive:      isActive,
		ValidFrom:     r.ValidFrom,
		ValidUntil:    r.ValidUntil,
		MaxUsage:      r.MaxUsage,
	}, nil
}

func (r updateOfferRequest) toUpdateInput() (offersvc.UpdateInput, error) {
	input := offersvc.UpdateInput{
		Title:         r.Title,
		Description:   r.Description,
		DiscountValue: r.DiscountValue,
		IsActive:      r.IsActive,
		ValidFrom:     r.ValidFrom,
		ValidUntil:    r.ValidUntil,
		ClearValidity: r.ClearValidity,
		MaxUsage:      r.MaxUsage,
		ClearMaxUsage: r.ClearMaxUsage,
	}

	if r.OfferType != nil {
		offerType, err := enums.ParseOfferType(strings.TrimSpace(*r.OfferType))
		if err != nil {
			return offersvc.UpdateInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid offer type")
		}
		input.OfferType = &offerType
	}
	return input, nil
}

func parseOfferListInput(r *http.Request) (offersvc.ListInput, error) {
	params, err := validators.ParsePagination(r)
	if err != nil {
		return offersvc.ListInput{}, err
	}

	filters := offersvc.Filters{}

	if raw := validators.ParseQueryString(r, "vehicle_id"); raw != nil {
		vehicleID, err := uuid.Parse(*raw)
		if err != nil {
			return offersvc.ListInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vehicle id")
		}
		filters.VehicleID = &vehicleID
	}
	if raw := validators.ParseQueryString(r, "offer_type"); raw != nil {
		offerType, err := enums.ParseOfferType(*raw)
		if err != nil {
			return offersvc.ListInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid offer type")
		}
		filters.OfferType = &offerType
	}

	active, err := validators.ParseQueryBool(r, "is_active")
	if err != nil {
		return offersvc.ListInput{}, err
	}
	filters.IsActive = active

	return offersvc.ListInput{Pagination: params, Filters: filters}, nil
}
