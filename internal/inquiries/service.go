package inquiries

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/motordesk/backend/pkg/db/models"
	"github.com/motordesk/backend/pkg/enums"
	pkgerrors "github.com/motordesk/backend/pkg/errors"
	"github.com/motordesk/backend/pkg/logger"
	"github.com/motordesk/backend/pkg/pagination"
)

// Service exposes the inquiry queue. Submit is reachable from the
// public storefront; everything else is staff-only.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*InquiryDTO, error)
	Get(ctx context.Context, inquiryID uuid.UUID) (*InquiryDTO, error)
	List(ctx context.Context, input ListInput) (*ListResult, error)
	UpdateStatus(ctx context.Context, inquiryID uuid.UUID, status enums.InquiryStatus) (*InquiryDTO, error)
	Delete(ctx context.Context, inquiryID uuid.UUID) error
	Assign(ctx context.Context, inquiryID uuid.UUID, assignee string) (*InquiryDTO, error)
	AddResponse(ctx context.Context, inquiryID uuid.UUID, input ResponseInput) (*InquiryDTO, error)
	OpenCount(ctx context.Context) (int64, error)
}

// SubmitInput is the public inquiry form payload. CustomerID links the
// inquiry to a known CRM record; walk-ins leave it empty.
type SubmitInput struct {
	CustomerID   *uuid.UUID
	CustomerName string
	Email        string
	Phone        *string
	VehicleID    *uuid.UUID
	InquiryType  enums.InquiryType
	Priority     *enums.InquiryPriority
	Subject      string
	Message      string
	Tags         []string
}

// ResponseInput is one staff reply. Resolve also moves the inquiry to
// resolved when the workflow allows it.
type ResponseInput struct {
	Responder string
	Message   string
	Resolve   bool
}

type service struct {
	repo        Repository
	vehicleRepo vehicleReader
	logg        *logger.Logger
	now         func() time.Time
}

// NewService constructs an inquiry service instance.
func NewService(repo Repository, vehicleRepo vehicleReader, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inquiry repository required")
	}
	if vehicleRepo == nil {
		return nil, fmt.Errorf("vehicle repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, vehicleRepo: vehicleRepo, logg: logg, now: time.Now}, nil
}

// Submit files a new inquiry. A referenced vehicle must exist; general
// inquiries omit the reference entirely.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*InquiryDTO, error) {
	name := strings.TrimSpace(input.CustomerName)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	message := strings.TrimSpace(input.Message)

	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer_name is required")
	}
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}
	if !input.InquiryType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid inquiry type")
	}

	priority := enums.InquiryPriorityMedium
	if input.Priority != nil {
		if !input.Priority.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid inquiry priority")
		}
		priority = *input.Priority
	}

	if input.VehicleID != nil {
		if _, err := s.vehicleRepo.FindByID(ctx, *input.VehicleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
		}
	}

	inquiry := &models.Inquiry{
		CustomerID:   input.CustomerID,
		CustomerName: name,
		Email:        email,
		Phone:        input.Phone,
		VehicleID:    input.VehicleID,
		InquiryType:  input.InquiryType,
		Status:       enums.InquiryStatusNew,
		Priority:     priority,
		Subject:      strings.TrimSpace(input.Subject),
		Message:      message,
		Tags:         append([]string{}, input.Tags...),
	}
	created, err := s.repo.Create(ctx, inquiry)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert inquiry")
	}
	return NewInquiryDTO(created), nil
}

func (s *service) Get(ctx context.Context, inquiryID uuid.UUID) (*InquiryDTO, error) {
	inquiry, err := s.repo.FindDetail(ctx, inquiryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inquiry not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inquiry detail")
	}
	return NewInquiryDTO(inquiry), nil
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	rows, total, err := s.repo.List(ctx, ListQuery(input))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inquiries")
	}

	dtos := make([]InquiryDTO, len(rows))
	for i := range rows {
		dtos[i] = *NewInquiryDTO(&rows[i])
	}
	return &ListResult{
		Inquiries: dtos,
		Page:      pagination.Build(input.Pagination, total),
	}, nil
}

// UpdateStatus moves the inquiry along the workflow. Backwards moves
// and moves out of a terminal state are state conflicts.
func (s *service) UpdateStatus(ctx context.Context, inquiryID uuid.UUID, status enums.InquiryStatus) (*InquiryDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid inquiry status")
	}

	inquiry, err := s.loadInquiry(ctx, inquiryID)
	if err != nil {
		return nil, err
	}

	if !inquiry.Status.CanTransitionTo(status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move inquiry from %s to %s", inquiry.Status, status))
	}

	inquiry.Status = status
	if status == enums.InquiryStatusResolved {
		resolvedAt := s.now().UTC()
		inquiry.ResolvedAt = &resolvedAt
	}
	updated, err := s.repo.Update(ctx, inquiry)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update inquiry")
	}
	return NewInquiryDTO(updated), nil
}

// Delete removes the inquiry and its response thread. Used for spam;
// settled inquiries are normally closed, not deleted.
func (s *service) Delete(ctx context.Context, inquiryID uuid.UUID) error {
	if _, err := s.loadInquiry(ctx, inquiryID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, inquiryID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete inquiry")
	}
	return nil
}

// Assign routes the inquiry to a staff member. A fresh inquiry moves to
// in_progress as a side effect; reassignment keeps the current state.
func (s *service) Assign(ctx context.Context, inquiryID uuid.UUID, assignee string) (*InquiryDTO, error) {
	assignee = strings.TrimSpace(assignee)
	if assignee == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "assignee is required")
	}

	inquiry, err := s.loadInquiry(ctx, inquiryID)
	if err != nil {
		return nil, err
	}
	if !inquiry.Status.IsOpen() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cannot assign a settled inquiry")
	}

	inquiry.AssignedTo = &assignee
	if inquiry.Status == enums.InquiryStatusNew {
		inquiry.Status = enums.InquiryStatusInProgress
	}

	updated, err := s.repo.Update(ctx, inquiry)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update inquiry")
	}
	return NewInquiryDTO(updated), nil
}

// AddResponse appends a staff reply to the thread.
func (s *service) AddResponse(ctx context.Context, inquiryID uuid.UUID, input ResponseInput) (*InquiryDTO, error) {
	responder := strings.TrimSpace(input.Responder)
	message := strings.TrimSpace(input.Message)
	if responder == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "responder is required")
	}
	if message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message is required")
	}

	inquiry, err := s.loadInquiry(ctx, inquiryID)
	if err != nil {
		return nil, err
	}
	if inquiry.Status == enums.InquiryStatusClosed {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cannot respond to a closed inquiry")
	}

	response := &models.InquiryResponse{
		InquiryID: inquiryID,
		Responder: responder,
		Message:   message,
	}
	if _, err := s.repo.AddResponse(ctx, response); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert inquiry response")
	}

	if input.Resolve && inquiry.Status.CanTransitionTo(enums.InquiryStatusResolved) {
		inquiry.Status = enums.InquiryStatusResolved
		resolvedAt := s.now().UTC()
		inquiry.ResolvedAt = &resolvedAt
		if _, err := s.repo.Update(ctx, inquiry); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update inquiry")
		}
	}

	return s.Get(ctx, inquiryID)
}

func (s *service) OpenCount(ctx context.Context) (int64, error) {
	total, err := s.repo.CountOpen(ctx)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count open inquiries")
	}
	return total, nil
}

func (s *service) loadInquiry(ctx context.Context, inquiryID uuid.UUID) (*models.Inquiry, error) {
	inquiry, err := s.repo.FindByID(ctx, inquiryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inquiry not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inquiry")
	}
	return inquiry, nil
}
