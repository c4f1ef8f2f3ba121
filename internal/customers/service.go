package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/motordesk/backend/pkg/db"
	"github.com/motordesk/backend/pkg/db/models"
	"github.com/motordesk/backend/pkg/enums"
	pkgerrors "github.com/motordesk/backend/pkg/errors"
	"github.com/motordesk/backend/pkg/logger"
	"github.com/motordesk/backend/pkg/pagination"
)

// Service exposes CRM operations: customer records plus their purchase
// and test drive history.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*CustomerDTO, error)
	Update(ctx context.Context, customerID uuid.UUID, input UpdateInput) (*CustomerDTO, error)
	Delete(ctx context.Context, customerID uuid.UUID) error
	Get(ctx context.Context, customerID uuid.UUID) (*CustomerDTO, error)
	List(ctx context.Context, input ListInput) (*ListResult, error)
	AddPurchase(ctx context.Context, customerID uuid.UUID, input PurchaseInput) (*CustomerDTO, error)
	ScheduleTestDrive(ctx context.Context, customerID uuid.UUID, input TestDriveInput) (*TestDriveDTO, error)
	UpdateTestDriveStatus(ctx context.Context, testDriveID uuid.UUID, status enums.TestDriveStatus) (*TestDriveDTO, error)
}

// CreateInput holds the validated payload to create a customer.
// Preferences are free-form tags staff use to match listings.
type CreateInput struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       *string
	Address     *string
	Preferences []string
}

// UpdateInput holds optional mutation values for a customer.
type UpdateInput struct {
	FirstName   *string
	LastName    *string
	Email       *string
	Phone       *string
	Address     *string
	Preferences *[]string
}

// PurchaseInput records a completed sale. OfferID points at the
// promotion redeemed during the sale, when there was one.
type PurchaseInput struct {
	VehicleID   uuid.UUID
	OfferID     *uuid.UUID
	SalePrice   decimal.Decimal
	PurchasedAt time.Time
	Notes       *string
}

// TestDriveInput schedules an appointment. A zero ScheduledAt means
// the drive starts now.
type TestDriveInput struct {
	VehicleID   uuid.UUID
	ScheduledAt time.Time
	Notes       *string
}

type service struct {
	repo        Repository
	vehicleRepo vehicleReader
	logg        *logger.Logger
	now         func() time.Time
}

// NewService constructs a customer service instance.
func NewService(repo Repository, vehicleRepo vehicleReader, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	if vehicleRepo == nil {
		return nil, fmt.Errorf("vehicle repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, vehicleRepo: vehicleRepo, logg: logg, now: time.Now}, nil
}

// Create inserts a customer; emails are unique across the CRM.
func (s *service) Create(ctx context.Context, input CreateInput) (*CustomerDTO, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "a customer with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check customer email")
	}

	customer := &models.Customer{
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		Email:       email,
		Phone:       input.Phone,
		Address:     input.Address,
		Preferences: append([]string{}, input.Preferences...),
	}

	created, err := s.repo.Create(ctx, customer)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_customers_email") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a customer with this email already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert customer")
	}
	return NewCustomerDTO(created), nil
}

// Update patches the customer; only provided fields change.
func (s *service) Update(ctx context.Context, customerID uuid.UUID, input UpdateInput) (*CustomerDTO, error) {
	customer, err := s.loadCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
		}
		if email != customer.Email {
			if existing, err := s.repo.FindByEmail(ctx, email); err == nil && existing.ID != customerID {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "a customer with this email already exists")
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check customer email")
			}
		}
		customer.Email = email
	}

	if input.FirstName != nil {
		customer.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		customer.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.Preferences != nil {
		customer.Preferences = append([]string(nil), *input.Preferences...)
	}

	updated, err := s.repo.Update(ctx, customer)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update customer")
	}
	return NewCustomerDTO(updated), nil
}

// Delete removes the customer; history rows cascade with the parent.
func (s *service) Delete(ctx context.Context, customerID uuid.UUID) error {
	if _, err := s.loadCustomer(ctx, customerID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, customerID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete customer")
	}
	return nil
}

func (s *service) Get(ctx context.Context, customerID uuid.UUID) (*CustomerDTO, error) {
	customer, err := s.repo.FindDetail(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer detail")
	}
	return NewCustomerDTO(customer), nil
}

func (s *service) List(ctx context.Context, input ListInput) (*ListResult, error) {
	rows, total, err := s.repo.List(ctx, ListQuery(input))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}

	dtos := make([]CustomerDTO, len(rows))
	for i := range rows {
		dtos[i] = *NewCustomerDTO(&rows[i])
	}
	return &ListResult{
		Customers: dtos,
		Page:      pagination.Build(input.Pagination, total),
	}, nil
}

// AddPurchase appends a sale to the customer's history. Inventory is
// not decremented here: stock corrections are a deliberate staff
// action, so a sale against a zero-stock listing only logs a warning.
func (s *service) AddPurchase(ctx context.Context, customerID uuid.UUID, input PurchaseInput) (*CustomerDTO, error) {
	if input.SalePrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sale_price must be non-negative")
	}
	if input.PurchasedAt.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "purchased_at is required")
	}

	if _, err := s.loadCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicleRepo.FindByID(ctx, input.VehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
	}

	if vehicle.StockQuantity <= 0 {
		warnCtx := s.logg.WithFields(ctx, map[string]any{
			"customer_id": customerID.String(),
			"vehicle_id":  vehicle.ID.String(),
		})
		s.logg.Warn(warnCtx, "purchase recorded against a vehicle with no stock")
	}

	record := &models.PurchaseRecord{
		CustomerID:  customerID,
		VehicleID:   input.VehicleID,
		OfferID:     input.OfferID,
		SalePrice:   input.SalePrice,
		PurchasedAt: input.PurchasedAt,
		Notes:       input.Notes,
	}
	if _, err := s.repo.AddPurchase(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert purchase record")
	}

	return s.Get(ctx, customerID)
}

// ScheduleTestDrive appends a scheduled appointment. An omitted
// scheduled_at means the drive starts immediately.
func (s *service) ScheduleTestDrive(ctx context.Context, customerID uuid.UUID, input TestDriveInput) (*TestDriveDTO, error) {
	scheduledAt := input.ScheduledAt
	if scheduledAt.IsZero() {
		scheduledAt = s.now().UTC()
	}

	if _, err := s.loadCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	if _, err := s.vehicleRepo.FindByID(ctx, input.VehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vehicle not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load vehicle")
	}

	drive := &models.TestDrive{
		CustomerID:  customerID,
		VehicleID:   input.VehicleID,
		ScheduledAt: scheduledAt,
		Status:      enums.TestDriveStatusScheduled,
		Notes:       input.Notes,
	}
	created, err := s.repo.AddTestDrive(ctx, drive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert test drive")
	}
	return NewTestDriveDTO(created), nil
}

// UpdateTestDriveStatus moves a scheduled appointment to completed or
// cancelled. Any other transition is a state conflict.
func (s *service) UpdateTestDriveStatus(ctx context.Context, testDriveID uuid.UUID, status enums.TestDriveStatus) (*TestDriveDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid test drive status")
	}

	drive, err := s.repo.FindTestDrive(ctx, testDriveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "test drive not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load test drive")
	}

	if !drive.Status.CanTransitionTo(status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move test drive from %s to %s", drive.Status, status))
	}

	drive.Status = status
	updated, err := s.repo.UpdateTestDrive(ctx, drive)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update test drive")
	}
	return NewTestDriveDTO(updated), nil
}

func (s *service) loadCustomer(ctx context.Context, customerID uuid.UUID) (*models.Customer, error) {
	customer, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	return customer, nil
}
