package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/motordesk/backend/api/middleware"
	"github.com/motordesk/backend/api/responses"
	"github.com/motordesk/backend/api/validators"
	inquirysvc "github.com/motordesk/backend/internal/inquiries"
	"github.com/motordesk/backend/pkg/enums"
	pkgerrors "github.com/motordesk/backend/pkg/errors"
	"github.com/motordesk/backend/pkg/logger"
)

// SubmitInquiry files a public inquiry; no authentication required.
func SubmitInquiry(svc inquirysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inquiry service unavailable"))
			return
		}

		var payload submitInquiryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toSubmitInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		inquiry, err := svc.Submit(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, inquiry)
	}
}

// GetInquiry returns one inquiry with its response thread.
func GetInquiry(svc inquirysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inquiry service unavailable"))
			return
		}

		inquiryID, err := validators.ParseUUIDParam(r, "inquiryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		inquiry, err := svc.Get(r.Context(), inquiryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, inquiry)
	}
}

// ListInquiries returns the staff queue, newest first.
func ListInquiries(svc inquirysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inquiry service unavailable"))
			return
		}

		input, err := parseInquiryListInput(r)
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

// UpdateInquiryStatus moves an inquiry through the workflow.
func UpdateInquiryStatus(svc inquirysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inquiry service unavailable"))
			return
		}

		inquiryID, err := validators.ParseUUIDParam(r, "inquiryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateInquiryStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseInquiryStatus(strings.TrimSpace(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid inquiry status"))
			return
		}

		inquiry, err := svc.UpdateStatus(r.Context(), inquiryID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, inquiry)
	}
}

// DeleteInquiry removes an inquiry outright; reserved for spam.
func DeleteInquiry(svc inquirysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inquiry service unavailable"))
			return
		}

		inquiryID, err := validators.ParseUUIDParam(r, "inquiryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), inquiryID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// AssignInquiry hands the inquiry to a staff member. With an empty
// body the caller claims it for themselves.
func AssignInquiry(svc inquirysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inquiry service unavailable"))
			return
		}

		inquiryID, err := validators.ParseUUIDParam(r, "inquiryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload assignInquiryRequest
		if r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		assignee := strings.TrimSpace(payload.Assignee)
		if assignee == "" {
			assignee = middleware.UserIDFromContext(r.Context())
		}
		if assignee == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "assignee is required"))
			return
		}

		inquiry, err := svc.Assign(r.Context(), inquiryID, assignee)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, inquiry)
	}
}

// RespondToInquiry appends a staff reply, optionally resolving the
// inquiry in the same call.
func RespondToInquiry(svc inquirysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inquiry service unavailable"))
			return
		}

		inquiryID, err := validators.ParseUUIDParam(r, "inquiryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload respondToInquiryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responder := strings.TrimSpace(payload.Responder)
		if responder == "" {
			responder = middleware.UserIDFromContext(r.Context())
		}

		inquiry, err := svc.AddResponse(r.Context(), inquiryID, inquirysvc.ResponseInput{
			Responder: responder,
			Message:   payload.Message,
			Resolve:   payload.Resolve,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, inquiry)
	}
}

// InquiryQueueStats reports how many inquiries still need attention.
func InquiryQueueStats(svc inquirysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inquiry service unavailable"))
			return
		}

		open, err := svc.OpenCount(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]int64{"open": open})
	}
}

type submitInquiryRequest struct {
	CustomerID   *string  `json:"customer_id,omitempty" validate:"omitempty,uuid"`
	CustomerName string   `json:"customer_name" validate:"required"`
	Email        string   `json:"email" validate:"required,email"`
	Phone        *string  `json:"phone,omitempty"`
	VehicleID    *string  `json:"vehicle_id,omitempty" validate:"omitempty,uuid"`
	InquiryType  string   `json:"inquiry_type" validate:"required"`
	Priority     *string  `json:"priority,omitempty"`
	Subject      string   `json:"subject,omitempty"`
	Message      string   `json:"message" validate:"required"`
	Tags         []string `json:"tags,omitempty"`
}

type updateInquiryStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type assignInquiryRequest struct {
	Assignee string `json:"assignee,omitempty"`
}

type respondToInquiryRequest struct {
	Responder string `json:"responder,omitempty"`
	Message   string `json:"message" validate:"required"`
	Resolve   bool   `json:"resolve,omitempty"`
}

func (r submitInquiryRequest) toSubmitInput() (inquirysvc.SubmitInput, error) {
	inquiryType, err := enums.ParseInquiryType(strings.TrimSpace(r.InquiryType))
	if err != nil {
		return inquirysvc.SubmitInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid inquiry type")
	}

	input := inquirysvc.SubmitInput{
		CustomerName: r.CustomerName,
		Email:        r.Email,
		Phone:        r.Phone,
		InquiryType:  inquiryType,
		Subject:      r.Subject,
		Message:      r.Message,
		Tags:         r.Tags,
	}

	if r.CustomerID != nil && strings.TrimSpace(*r.CustomerID) != "" {
		customerID, err := uuid.Parse(strings.TrimSpace(*r.CustomerID))
		if err != nil {
			return inquirysvc.SubmitInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid customer id")
		}
		input.CustomerID = &customerID
	}
	if r.VehicleID != nil && strings.TrimSpace(*r.VehicleID) != "" {
		vehicleID, err := uuid.Parse(strings.TrimSpace(*r.VehicleID))
		if err != nil {
			return inquirysvc.SubmitInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vehicle id")
		}
		input.VehicleID = &vehicleID
	}
	if r.Priority != nil {
		priority, err := enums.ParseInquiryPriority(strings.TrimSpace(*r.Priority))
		if err != nil {
			return inquirysvc.SubmitInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid priority")
		}
		input.Priority = &priority
	}
	return input, nil
}

func parseInquiryListInput(r *http.Request) (inquirysvc.ListInput, error) {
	params, err := validators.ParsePagination(r)
	if err != nil {
		return inquirysvc.ListInput{}, err
	}

	filters := inquirysvc.Filters{
		Assignee: validators.ParseQueryString(r, "assignee"),
	}

	if raw := validators.ParseQueryString(r, "status"); raw != nil {
		status, err := enums.ParseInquiryStatus(*raw)
		if err != nil {
			return inquirysvc.ListInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid inquiry status")
		}
		filters.Status = &status
	}
	if raw := validators.ParseQueryString(r, "priority"); raw != nil {
		priority, err := enums.ParseInquiryPriority(*raw)
		if err != nil {
			return inquirysvc.ListInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid priority")
		}
		filters.Priority = &priority
	}
	if raw := validators.ParseQueryString(r, "inquiry_type"); raw != nil {
		inquiryType, err := enums.ParseInquiryType(*raw)
		if err != nil {
			return inquirysvc.ListInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid inquiry type")
		}
		filters.Type = &inquiryType
	}
	if raw := validators.ParseQueryString(r, "vehicle_id"); raw != nil {
		vehicleID, err := uuid.Parse(*raw)
		if err != nil {
			return inquirysvc.ListInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid vehicle id")
		}
		filters.VehicleID = &vehicleID
	}

	return inquirysvc.ListInput{Pagination: params, Filters: filters}, nil
}
