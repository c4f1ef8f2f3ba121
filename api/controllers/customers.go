package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motordesk/backend/api/responses"
	"github.com/motordesk/backend/api/validators"
	customersvc "github.com/motordesk/backend/internal/customers"
	"github.com/motordesk/backend/pkg/enums"
	pkgerrors "github.com/motordesk/backend/pkg/errors"
	"github.com/motordesk/backend/pkg/logger"
)

// CreateCustomer registers a new CRM customer.
func CreateCustomer(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		var payload createCustomerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Create(r.Context(), payload.toCreateInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, customer)
	}
}

// UpdateCustomer patches customer contact details.
func UpdateCustomer(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		customerID, err := validators.ParseUUIDParam(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCustomerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Update(r.Context(), customerID, payload.toUpdateInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, customer)
	}
}

// DeleteCustomer removes the customer and their history.
func DeleteCustomer(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		customerID, err := validators.ParseUUIDParam(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), customerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// GetCustomer returns the customer with purchase and test-drive history.
func GetCustomer(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		customerID, err := validators.ParseUUIDParam(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Get(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, customer)
	}
}

// ListCustomers returns a searchable customer page.
func ListCustomers(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), customersvc.ListInput{
			Pagination: params,
			Filters: customersvc.Filters{
				Search: validators.ParseQueryString(r, "search"),
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// AddCustomerPurchase records a completed sale against the customer.
func AddCustomerPurchase(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		customerID, err := validators.ParseUUIDParam(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addPurchaseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toPurchaseInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.AddPurchase(r.Context(), customerID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, customer)
	}
}

// ScheduleTestDrive books an appointment for the customer.
func ScheduleTestDrive(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		customerID, err := validators.ParseUUIDParam(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload scheduleTestDriveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toTestDriveInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		drive, err := svc.ScheduleTestDrive(r.Context(), customerID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, drive)
	}
}

// UpdateTestDriveStatus moves an appointment through its lifecycle.
func UpdateTestDriveStatus(svc customersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "customer service unavailable"))
			return
		}

		testDriveID, err := validators.ParseUUIDParam(r, "testDriveId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateTestDriveStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseTestDriveStatus(strings.TrimSpace(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid test drive status"))
			return
		}

		drive, err := svc.UpdateTestDriveStatus(r.Context(), testDriveID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, drive)
	}
}

type createCustomerRequest struct {
	FirstName   string   `json:"first_name" validate:"required"`
	LastName    string   `json:"last_name" validate:"required"`
	Email       string   `json:"email" validate:"required,email"`
	Phone       *string  `json:"phone,omitempty"`
	Address     *string  `json:"address,omitempty"`
	Preferences []string `json:"preferences,omitempty"`
}

type updateCustomerRequest struct {
	FirstName   *string   `json:"first_name,omitempty"`
	LastName    *string   `json:"last_name,omitempty"`
	Email       *string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string   `json:"phone,omitempty"`
	Address     *string   `json:"address,omitempty"`
	Preferences *[]string `json:"preferences,omitempty"`
}

type addPurchaseRequest struct {
	VehicleID   string          `json:"vehicle_id" validate:"required,uuid"`
	OfferID     *string         `json:"offer_id,omitempty" validate:"omitempty,uuid"`
	SalePrice   decimal.Decimal `json:"sale_price" validate:"required"`
	PurchasedAt *time.Time      `json:"purchased_at,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
}

type scheduleTestDriveRequest struct {
	VehicleID   string     `json:"vehicle_id" validate:"required,uuid"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
}

type updateTestDriveStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (r createCustomerRequest) toCreateInput() customersvc.CreateInput {
	return customersvc.CreateInput{
		FirstName:   strings.TrimSpace(r.FirstName),
		LastName:    strings.TrimSpace(r.LastName),
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
		Preferences: r.Preferences,
	}
}

func (r updateCustomerRequest) toUpdateInput() customersvc.UpdateInput {
	return customersvc.UpdateInput{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
		Preferences: r.Preferences,
	}
}

func (r addPurchaseRequest) toPurchaseInput() (customersvc.PurchaseInput, error) {
	vehicleID, err := uuid.Parse(strings.TrimSpace(r.VehicleID))
	if err != nil {
		return customersvc.PurchaseInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vehicle id")
	}

	var offerID *uuid.UUID
	if r.OfferID != nil {
		parsed, err := uuid.Parse(strings.TrimSpace(*r.OfferID))
		if err != nil {
			return customersvc.PurchaseInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid offer id")
		}
		offerID = &parsed
	}

	purchasedAt := time.Now().UTC()
	if r.PurchasedAt != nil {
		purchasedAt = *r.PurchasedAt
	}

	return customersvc.PurchaseInput{
		VehicleID:   vehicleID,
		OfferID:     offerID,
		SalePrice:   r.SalePrice,
		PurchasedAt: purchasedAt,
		Notes:       r.Notes,
	}, nil
}

func (r scheduleTestDriveRequest) toTestDriveInput() (customersvc.TestDriveInput, error) {
	vehicleID, err := uuid.Parse(strings.TrimSpace(r.VehicleID))
	if err != nil {
		return customersvc.TestDriveInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vehicle id")
	}

	input := customersvc.TestDriveInput{
		VehicleID: vehicleID,
		Notes:     r.Notes,
	}
	if r.ScheduledAt != nil {
		input.ScheduledAt = *r.ScheduledAt
	}
	return input, nil
}
