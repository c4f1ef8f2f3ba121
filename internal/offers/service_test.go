package offers

import (
	"context"
	"io"
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

type stubOfferRepo struct {
	offers map[uuid.UUID]*models.Offer
	order  []uuid.UUID
}

func newStubOfferRepo() *stubOfferRepo {
	return &stubOfferRepo{offers: make(map[uuid.UUID]*models.Offer)}
}

func (s *stubOfferRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubOfferRepo) Create(ctx context.Context, offer *models.Offer) (*models.Offer, error) {
	if offer.ID == uuid.Nil {
		offer.ID = uuid.New()
	}
	s.offers[offer.ID] = offer
	s.order = append(s.order, offer.ID)
	return offer, nil
}

func (s *stubOfferRepo) Update(ctx context.Context, offer *models.Offer) (*models.Offer, error) {
	s.offers[offer.ID] = offer
	return offer, nil
}

func (s *stubOfferRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.offers, id)
	return nil
}

func (s *stubOfferRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Offer, error) {
	offer, ok := s.offers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return offer, nil
}

func (s *stubOfferRepo) ListByVehicle(ctx context.Context, vehicleID uuid.UUID) ([]models.Offer, error) {
	var rows []models.Offer
	for _, id := range s.order {
		offer, ok := s.offers[id]
		if ok && offer.VehicleID == vehicleID {
			rows = append(rows, *offer)
		}
	}
	return rows, nil
}

func (s *stubOfferRepo) List(ctx context.Context, query ListQuery) ([]models.Offer, int64, error) {
	var rows []models.Offer
	for _, id := range s.order {
		if offer, ok := s.offers[id]; ok {
			rows = append(rows, *offer)
		}
	}
	return rows, int64(len(rows)), nil
}

func (s *stubOfferRepo) ListAll(ctx context.Context) ([]models.Offer, error) {
	rows, _, err := s.List(ctx, ListQuery{})
	return rows, err
}

func (s *stubOfferRepo) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	offer, ok := s.offers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	offer.UsedCount++
	return nil
}

func (s *stubOfferRepo) DeactivateExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	var swept int64
	for _, offer := range s.offers {
		if offer.IsActive && offer.ValidUntil != nil && !offer.ValidUntil.After(cutoff) {
			offer.IsActive = false
			swept++
		}
	}
	return swept, nil
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

func newTestOfferService(t *testing.T, repo Repository, vehicleIDs ...uuid.UUID) Service {
	t.Helper()
	vehicles := make(map[uuid.UUID]*models.Vehicle, len(vehicleIDs))
	for _, id := range vehicleIDs {
		vehicles[id] = &models.Vehicle{ID: id}
	}
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := NewService(repo, &stubVehicleReader{vehicles: vehicles}, logg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreateRejectsUnknownVehicle(t *testing.T) {
	svc := newTestOfferService(t, newStubOfferRepo())

	_, err := svc.Create(context.Background(), CreateInput{
		VehicleID:     uuid.New(),
		Title:         "Summer Sale",
		OfferType:     enums.OfferTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
		IsActive:      true,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
	if typed.Message() != "vehicle not found" {
		t.Fatalf("expected vehicle not found message, got %q", typed.Message())
	}
}

func TestCreateDefaultsValidityWindow(t *testing.T) {
	vehicleID := uuid.New()
	repo := newStubOfferRepo()
	svc := newTestOfferService(t, repo, vehicleID)

	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.(*service).now = func() time.Time { return fixed }

	dto, err := svc.Create(context.Background(), CreateInput{
		VehicleID:     vehicleID,
		Title:         "Open Window",
		OfferType:     enums.OfferTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
		IsActive:      true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.ValidFrom == nil || !dto.ValidFrom.Equal(fixed) {
		t.Fatalf("expected valid_from defaulted to now, got %v", dto.ValidFrom)
	}
	if dto.ValidUntil == nil || !dto.ValidUntil.Equal(fixed.Add(30*24*time.Hour)) {
		t.Fatalf("expected valid_until defaulted to now+30d, got %v", dto.ValidUntil)
	}

	explicit := fixed.Add(48 * time.Hour)
	kept, err := svc.Create(context.Background(), CreateInput{
		VehicleID:     vehicleID,
		Title:         "Pinned Window",
		OfferType:     enums.OfferTypePercentage,
		DiscountValue: decimal.NewFromInt(10),
		IsActive:      true,
		ValidFrom:     &explicit,
		ValidUntil:    &explicit,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kept.ValidFrom == nil || !kept.ValidFrom.Equal(explicit) {
		t.Fatalf("expected explicit valid_from kept, got %v", kept.ValidFrom)
	}
	if kept.ValidUntil == nil || !kept.ValidUntil.Equal(explicit) {
		t.Fatalf("expected explicit valid_until kept, got %v", kept.ValidUntil)
	}
}

func TestCreateRejectsPercentageOutOfRange(t *testing.T) {
	vehicleID := uuid.New()
	svc := newTestOfferService(t, newStubOfferRepo(), vehicleID)

	_, err := svc.Create(context.Background(), CreateInput{
		VehicleID:     vehicleID,
		Title:         "Bad Deal",
		OfferType:     enums.OfferTypePercentage,
		DiscountValue: decimal.NewFromInt(150),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateZeroesDiscountForDisplayOnlyOffers(t *testing.T) {
	vehicleID := uuid.New()
	repo := newStubOfferRepo()
	svc := newTestOfferService(t, repo, vehicleID)

	dto, err := svc.Create(context.Background(), CreateInput{
		VehicleID:     vehicleID,
		Title:         "BOGO Weekend",
		OfferType:     enums.OfferTypeBuyOneGetOne,
		DiscountValue: decimal.NewFromInt(50),
		IsActive:      true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dto.DiscountValue.Equal(decimal.Zero) {
		t.Fatalf("display-only offers carry no discount, got %s", dto.DiscountValue)
	}
}

func TestActiveForVehicleFiltersAndKeepsOrder(t *testing.T) {
	vehicleID := uuid.New()
	repo := newStubOfferRepo()
	svc := newTestOfferService(t, repo, vehicleID)

	past := time.Now().Add(-time.Hour)
	mustCreate := func(input CreateInput) *OfferDTO {
		dto, err := svc.Create(context.Background(), input)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		return dto
	}

	mustCreate(CreateInput{VehicleID: vehicleID, Title: "expired", OfferType: enums.OfferTypePercentage, DiscountValue: decimal.NewFromInt(30), IsActive: true, ValidUntil: &past})
	first := mustCreate(CreateInput{VehicleID: vehicleID, Title: "first valid", OfferType: enums.OfferTypePercentage, DiscountValue: decimal.NewFromInt(10), IsActive: true})
	mustCreate(CreateInput{VehicleID: vehicleID, Title: "inactive", OfferType: enums.OfferTypePercentage, DiscountValue: decimal.NewFromInt(20), IsActive: false})
	mustCreate(CreateInput{VehicleID: vehicleID, Title: "second valid", OfferType: enums.OfferTypeFixedAmount, DiscountValue: decimal.NewFromInt(500), IsActive: true})

	active, err := svc.ActiveForVehicle(context.Background(), vehicleID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("expected 2 active offers, got %d", len(active))
	}
	if active[0].ID != first.ID {
		t.Fatalf("the oldest valid offer must come first, got %s", active[0].Title)
	}
}

func TestSetActiveToggles(t *testing.T) {
	vehicleID := uuid.New()
	repo := newStubOfferRepo()
	svc := newTestOfferService(t, repo, vehicleID)

	created, err := svc.Create(context.Background(), CreateInput{
		VehicleID:     vehicleID,
		Title:         "Summer Sale",
		OfferType:     enums.OfferTypePercentage,
		DiscountValue: decimal.NewFromInt(25),
		IsActive:      true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	toggled, err := svc.SetActive(context.Background(), created.ID, false)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if toggled.IsActive {
		t.Fatal("expected offer deactivated")
	}
	if toggled.IsCurrentlyValid {
		t.Fatal("deactivated offers are never currently valid")
	}
}

func TestRecordRedemptionPastCapIsAllowed(t *testing.T) {
	vehicleID := uuid.New()
	repo := newStubOfferRepo()
	svc := newTestOfferService(t, repo, vehicleID)

	limit := 1
	created, err := svc.Create(context.Background(), CreateInput{
		VehicleID:     vehicleID,
		Title:         "Limited",
		OfferType:     enums.OfferTypeFixedAmount,
		DiscountValue: decimal.NewFromInt(100),
		IsActive:      true,
		MaxUsage:      &limit,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	first, err := svc.RecordRedemption(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("first redemption: %v", err)
	}
	if first.UsedCount != 1 {
		t.Fatalf("expected used count 1, got %d", first.UsedCount)
	}
	if first.HasUsageRemaining {
		t.Fatal("expected cap exhausted after first redemption")
	}

	second, err := svc.RecordRedemption(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("redemption past the cap must still record: %v", err)
	}
	if second.UsedCount != 2 {
		t.Fatalf("expected used count 2, got %d", second.UsedCount)
	}
}

func TestUpdateClearsValidity(t *testing.T) {
	vehicleID := uuid.New()
	repo := newStubOfferRepo()
	svc := newTestOfferService(t, repo, vehicleID)

	until := time.Now().Add(-time.Minute)
	created, err := svc.Create(context.Background(), CreateInput{
		VehicleID:     vehicleID,
		Title:         "Expiring",
		OfferType:     enums.OfferTypePercentage,
		DiscountValue: decimal.NewFromInt(5),
		IsActive:      true,
		ValidUntil:    &until,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.IsCurrentlyValid {
		t.Fatal("expected expired offer to be invalid")
	}

	updated, err := svc.Update(context.Background(), created.ID, UpdateInput{ClearValidity: true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ValidUntil != nil {
		t.Fatal("expected validity cleared")
	}
	if !updated.IsCurrentlyValid {
		t.Fatal("an active offer without expiry is valid")
	}
}
