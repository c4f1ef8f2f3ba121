package customers

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/motordesk/backend/pkg/db/models"
	"github.com/motordesk/backend/pkg/enums"
	pkgerrors "github.com/motordesk/backend/pkg/errors"
	"github.com/motordesk/backend/pkg/logger"
)

type stubRepo struct {
	customers  map[uuid.UUID]*models.Customer
	purchases  map[uuid.UUID][]models.PurchaseRecord
	testDrives map[uuid.UUID]*models.TestDrive
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		customers:  make(map[uuid.UUID]*models.Customer),
		purchases:  make(map[uuid.UUID][]models.PurchaseRecord),
		testDrives: make(map[uuid.UUID]*models.TestDrive),
	}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubRepo) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	s.customers[customer.ID] = customer
	return customer, nil
}

func (s *stubRepo) Update(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	s.customers[customer.ID] = customer
	return customer, nil
}

func (s *stubRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.customers, id)
	return nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, ok := s.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return customer, nil
}

func (s *stubRepo) FindDetail(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	customer, ok := s.customers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	detail := *customer
	detail.Purchases = s.purchases[id]
	return &detail, nil
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (*models.Customer, error) {
	needle := strings.ToLower(strings.TrimSpace(email))
	for _, customer := range s.customers {
		if customer.Email == needle {
			return customer, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) List(ctx context.Context, query ListQuery) ([]models.Customer, int64, error) {
	rows := make([]models.Customer, 0, len(s.customers))
	for _, customer := range s.customers {
		rows = append(rows, *customer)
	}
	return rows, int64(len(rows)), nil
}

func (s *stubRepo) AddPurchase(ctx context.Context, record *models.PurchaseRecord) (*models.PurchaseRecord, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	s.purchases[record.CustomerID] = append(s.purchases[record.CustomerID], *record)
	return record, nil
}

func (s *stubRepo) AddTestDrive(ctx context.Context, drive *models.TestDrive) (*models.TestDrive, error) {
	if drive.ID == uuid.Nil {
		drive.ID = uuid.New()
	}
	s.testDrives[drive.ID] = drive
	return drive, nil
}

func (s *stubRepo) FindTestDrive(ctx context.Context, id uuid.UUID) (*models.TestDrive, error) {
	drive, ok := s.testDrives[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return drive, nil
}

func (s *stubRepo) UpdateTestDrive(ctx context.Context, drive *models.TestDrive) (*models.TestDrive, error) {
	s.testDrives[drive.ID] = drive
	return drive, nil
}

type stubVehicleReader struct {
	vehicles map[uuid.UUID]*models.Vehicle
}

func (s *stubVehicleReader) FindByID(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	vehicle, ok := s.vehicles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return vehicle, nil
}

func newTestService(t *testing.T, repo Repository, vehicles *stubVehicleReader) Service {
	t.Helper()
	if vehicles == nil {
		vehicles = &stubVehicleReader{vehicles: make(map[uuid.UUID]*models.Vehicle)}
	}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(repo, vehicles, logg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func seedVehicle(stock int) (*stubVehicleReader, uuid.UUID) {
	id := uuid.New()
	return &stubVehicleReader{vehicles: map[uuid.UUID]*models.Vehicle{
		id: {ID: id, Name: "Aero 450", StockQuantity: stock},
	}}, id
}

func validCreateInput() CreateInput {
	return CreateInput{
		FirstName: "Maya",
		LastName:  "Okafor",
		Email:     "maya@example.com",
	}
}

func TestCreateNormalizesEmail(t *testing.T) {
	svc := newTestService(t, newStubRepo(), nil)

	input := validCreateInput()
	input.Email = "  Maya@Example.COM "

	dto, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.Email != "maya@example.com" {
		t.Fatalf("expected lowercased email, got %q", dto.Email)
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc := newTestService(t, newStubRepo(), nil)

	if _, err := svc.Create(context.Background(), validCreateInput()); err != nil {
		t.Fatalf("first create: %v", err)
	}

	input := validCreateInput()
	input.FirstName = "Another"
	_, err := svc.Create(context.Background(), input)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	svc := newTestService(t, newStubRepo(), nil)

	created, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	phone := "+1-555-0100"
	updated, err := svc.Update(context.Background(), created.ID, UpdateInput{Phone: &phone})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Phone == nil || *updated.Phone != phone {
		t.Fatalf("expected patched phone, got %v", updated.Phone)
	}
	if updated.FirstName != "Maya" || updated.Email != "maya@example.com" {
		t.Fatalf("unpatched fields must survive, got %q / %q", updated.FirstName, updated.Email)
	}
}

func TestUpdateEmailConflict(t *testing.T) {
	svc := newTestService(t, newStubRepo(), nil)

	if _, err := svc.Create(context.Background(), validCreateInput()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	other, err := svc.Create(context.Background(), CreateInput{
		FirstName: "Jon",
		LastName:  "Reyes",
		Email:     "jon@example.com",
	})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}

	email := "maya@example.com"
	_, err = svc.Update(context.Background(), other.ID, UpdateInput{Email: &email})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestAddPurchaseUnknownVehicle(t *testing.T) {
	svc := newTestService(t, newStubRepo(), nil)

	created, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.AddPurchase(context.Background(), created.ID, PurchaseInput{
		VehicleID:   uuid.New(),
		SalePrice:   decimal.NewFromInt(45000),
		PurchasedAt: time.Now(),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestAddPurchaseZeroStockStillRecords(t *testing.T) {
	vehicles, vehicleID := seedVehicle(0)
	repo := newStubRepo()
	svc := newTestService(t, repo, vehicles)

	created, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	dto, err := svc.AddPurchase(context.Background(), created.ID, PurchaseInput{
		VehicleID:   vehicleID,
		SalePrice:   decimal.NewFromInt(45000),
		PurchasedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("purchase against zero stock must still record: %v", err)
	}
	if dto.PurchaseCount != 1 {
		t.Fatalf("expected 1 purchase in history, got %d", dto.PurchaseCount)
	}
}

func TestAddPurchaseSumsTotalSpent(t *testing.T) {
	vehicles, vehicleID := seedVehicle(5)
	svc := newTestService(t, newStubRepo(), vehicles)

	created, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, price := range []int64{45000, 38000} {
		if _, err := svc.AddPurchase(context.Background(), created.ID, PurchaseInput{
			VehicleID:   vehicleID,
			SalePrice:   decimal.NewFromInt(price),
			PurchasedAt: time.Now(),
		}); err != nil {
			t.Fatalf("add purchase: %v", err)
		}
	}

	dto, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !dto.TotalSpent.Equal(decimal.NewFromInt(83000)) {
		t.Fatalf("expected total spent 83000, got %s", dto.TotalSpent)
	}
}

func TestScheduleTestDriveStartsScheduled(t *testing.T) {
	vehicles, vehicleID := seedVehicle(1)
	svc := newTestService(t, newStubRepo(), vehicles)

	created, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	drive, err := svc.ScheduleTestDrive(context.Background(), created.ID, TestDriveInput{
		VehicleID:   vehicleID,
		ScheduledAt: time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if drive.Status != enums.TestDriveStatusScheduled.String() {
		t.Fatalf("expected scheduled status, got %s", drive.Status)
	}
}

func TestScheduleTestDriveDefaultsToNow(t *testing.T) {
	vehicles, vehicleID := seedVehicle(1)
	svc := newTestService(t, newStubRepo(), vehicles)

	fixed := time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)
	svc.(*service).now = func() time.Time { return fixed }

	created, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	drive, err := svc.ScheduleTestDrive(context.Background(), created.ID, TestDriveInput{
		VehicleID: vehicleID,
	})
	if err != nil {
		t.Fatalf("omitted scheduled_at must default, got %v", err)
	}
	if !drive.ScheduledAt.Equal(fixed) {
		t.Fatalf("expected scheduled_at defaulted to now, got %v", drive.ScheduledAt)
	}
	if drive.Status != enums.TestDriveStatusScheduled.String() {
		t.Fatalf("expected scheduled status, got %s", drive.Status)
	}
}

func TestAddPurchaseKeepsOfferReference(t *testing.T) {
	vehicles, vehicleID := seedVehicle(5)
	svc := newTestService(t, newStubRepo(), vehicles)

	created, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	offerID := uuid.New()
	dto, err := svc.AddPurchase(context.Background(), created.ID, PurchaseInput{
		VehicleID:   vehicleID,
		OfferID:     &offerID,
		SalePrice:   decimal.NewFromInt(40000),
		PurchasedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("add purchase: %v", err)
	}
	if len(dto.Purchases) != 1 {
		t.Fatalf("expected 1 purchase, got %d", len(dto.Purchases))
	}
	if dto.Purchases[0].OfferID == nil || *dto.Purchases[0].OfferID != offerID {
		t.Fatalf("expected offer reference on the record, got %v", dto.Purchases[0].OfferID)
	}
}

func TestCreateAndUpdatePreferences(t *testing.T) {
	svc := newTestService(t, newStubRepo(), nil)

	input := validCreateInput()
	input.Preferences = []string{"electric", "under 50k"}
	created, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(created.Preferences) != 2 || created.Preferences[0] != "electric" {
		t.Fatalf("expected preferences stored, got %v", created.Preferences)
	}

	prefs := []string{"touring"}
	updated, err := svc.Update(context.Background(), created.ID, UpdateInput{Preferences: &prefs})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.Preferences) != 1 || updated.Preferences[0] != "touring" {
		t.Fatalf("expected preferences replaced, got %v", updated.Preferences)
	}
}

func TestUpdateTestDriveStatusTransitions(t *testing.T) {
	vehicles, vehicleID := seedVehicle(1)
	repo := newStubRepo()
	svc := newTestService(t, repo, vehicles)

	created, err := svc.Create(context.Background(), validCreateInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	drive, err := svc.ScheduleTestDrive(context.Background(), created.ID, TestDriveInput{
		VehicleID:   vehicleID,
		ScheduledAt: time.Now().Add(48 * time.Hour),
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}

	completed, err := svc.UpdateTestDriveStatus(context.Background(), drive.ID, enums.TestDriveStatusCompleted)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != enums.TestDriveStatusCompleted.String() {
		t.Fatalf("expected completed, got %s", completed.Status)
	}

	// Terminal states cannot move again.
	_, err = svc.UpdateTestDriveStatus(context.Background(), drive.ID, enums.TestDriveStatusCancelled)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestUpdateTestDriveStatusUnknownDrive(t *testing.T) {
	svc := newTestService(t, newStubRepo(), nil)

	_, err := svc.UpdateTestDriveStatus(context.Background(), uuid.New(), enums.TestDriveStatusCancelled)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}
