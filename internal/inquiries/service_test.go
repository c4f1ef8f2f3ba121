package inquiries

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/motordesk/backend/pkg/db/models"
	"github.com/motordesk/backend/pkg/enums"
	pkgerrors "github.com/motordesk/backend/pkg/errors"
	"github.com/motordesk/backend/pkg/logger"
)

type stubRepo struct {
	inquiries map[uuid.UUID]*models.Inquiry
	responses map[uuid.UUID][]models.InquiryResponse
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		inquiries: make(map[uuid.UUID]*models.Inquiry),
		responses: make(map[uuid.UUID][]models.InquiryResponse),
	}
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubRepo) Create(ctx context.Context, inquiry *models.Inquiry) (*models.Inquiry, error) {
	if inquiry.ID == uuid.Nil {
		inquiry.ID = uuid.New()
	}
	s.inquiries[inquiry.ID] = inquiry
	return inquiry, nil
}

func (s *stubRepo) Update(ctx context.Context, inquiry *models.Inquiry) (*models.Inquiry, error) {
	s.inquiries[inquiry.ID] = inquiry
	return inquiry, nil
}

func (s *stubRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Inquiry, error) {
	inquiry, ok := s.inquiries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return inquiry, nil
}

func (s *stubRepo) FindDetail(ctx context.Context, id uuid.UUID) (*models.Inquiry, error) {
	inquiry, ok := s.inquiries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	detail := *inquiry
	detail.Responses = s.responses[id]
	return &detail, nil
}

func (s *stubRepo) List(ctx context.Context, query ListQuery) ([]models.Inquiry, int64, error) {
	rows := make([]models.Inquiry, 0, len(s.inquiries))
	for _, inquiry := range s.inquiries {
		rows = append(rows, *inquiry)
	}
	return rows, int64(len(rows)), nil
}

func (s *stubRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.inquiries, id)
	return nil
}

func (s *stubRepo) AddResponse(ctx context.Context, response *models.InquiryResponse) (*models.InquiryResponse, error) {
	if response.ID == uuid.Nil {
		response.ID = uuid.New()
	}
	s.responses[response.InquiryID] = append(s.responses[response.InquiryID], *response)
	return response, nil
}

func (s *stubRepo) CountOpen(ctx context.Context) (int64, error) {
	var total int64
	for _, inquiry := range s.inquiries {
		if inquiry.Status.IsOpen() {
			total++
		}
	}
	return total, nil
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

func validSubmitInput() SubmitInput {
	return SubmitInput{
		CustomerName: "Maya Okafor",
		Email:        "maya@example.com",
		InquiryType:  enums.InquiryTypeGeneral,
		Message:      "Do you deliver out of state?",
	}
}

func TestSubmitDefaultsStatusAndPriority(t *testing.T) {
	svc := newTestService(t, newStubRepo(), nil)

	dto, err := svc.Submit(context.Background(), validSubmitInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.Status != enums.InquiryStatusNew.String() {
		t.Fatalf("expected new status, got %s", dto.Status)
	}
	if dto.Priority != enums.InquiryPriorityMedium.String() {
		t.Fatalf("expected medium priority, got %s", dto.Priority)
	}
	if !dto.IsOpen {
		t.Fatal("fresh inquiry must be open")
	}
}

func TestSubmitRejectsEmptyMessage(t *testing.T) {
	svc := newTestService(t, newStubRepo(), nil)

	input := validSubmitInput()
	input.Message = "   "

	_, err := svc.Submit(context.Background(), input)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitUnknownVehicle(t *testing.T) {
	svc := newTestService(t, newStubRepo(), nil)

	vehicleID := uuid.New()
	input := validSubmitInput()
	input.VehicleID = &vehicleID

	_, err := svc.Submit(context.Background(), input)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestSubmitWithVehicleReference(t *testing.T) {
	vehicleID := uuid.New()
	vehicles := &stubVehicleReader{vehicles: map[uuid.UUID]*models.Vehicle{
		vehicleID: {ID: vehicleID, Name: "Aero 450"},
	}}
	svc := newTestService(t, newStubRepo(), vehicles)

	input := validSubmitInput()
	input.VehicleID = &vehicleID
	input.InquiryType = enums.InquiryTypePricing

	dto, err := svc.Submit(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.VehicleID == nil || *dto.VehicleID != vehicleID {
		t.Fatalf("expected vehicle reference preserved, got %v", dto.VehicleID)
	}
}

func TestUpdateStatusForwardOnly(t *testing.T) {
	svc := newTestService(t, newStubRepo(), nil)

	created, err := svc.Submit(context.Background(), validSubmitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	resolved, err := svc.UpdateStatus(context.Background(), created.ID, enums.InquiryStatusResolved)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Status != enums.InquiryStatusResolved.String() {
		t.Fatalf("expected resolved, got %s", resolved.Status)
	}

	// No moving backwards once resolved.
	_, err = svc.UpdateStatus(context.Background(), created.ID, enums.InquiryStatusInProgress)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestUpdateStatusStampsResolvedAt(t *testing.T) {
	svc := newTestService(t, newStubRepo(), nil)

	fixed := time.Date(2026, 5, 10, 16, 0, 0, 0, time.UTC)
	svc.(*service).now = func() time.Time { return fixed }

	created, err := svc.Submit(context.Background(), validSubmitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if created.ResolvedAt != nil {
		t.Fatal("fresh inquiry must carry no resolution timestamp")
	}

	resolved, err := svc.UpdateStatus(context.Background(), created.ID, enums.InquiryStatusResolved)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ResolvedAt == nil || !resolved.ResolvedAt.Equal(fixed) {
		t.Fatalf("expected resolved_at stamped at resolution, got %v", resolved.ResolvedAt)
	}
}

func TestSubmitKeepsSubjectTagsAndCustomerLink(t *testing.T) {
	svc := newTestService(t, newStubRepo(), nil)

	customerID := uuid.New()
	input := validSubmitInput()
	input.CustomerID = &customerID
	input.Subject = "  Delivery options "
	input.Tags = []string{"delivery", "out-of-state"}

	dto, err := svc.Submit(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.Subject != "Delivery options" {
		t.Fatalf("expected trimmed subject, got %q", dto.Subject)
	}
	if len(dto.Tags) != 2 || dto.Tags[0] != "delivery" {
		t.Fatalf("expected tags preserved, got %v", dto.Tags)
	}
	if dto.CustomerID == nil || *dto.CustomerID != customerID {
		t.Fatalf("expected customer link preserved, got %v", dto.CustomerID)
	}
}

func TestUpdateStatusClosedIsTerminal(t *testing.T) {
	svc := newTestService(t, newStubRepo(), nil)

	created, err := svc.Submit(context.Background(), validSubmitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), created.ID, enums.InquiryStatusClosed); err != nil {
		t.Fatalf("close: %v", err)
	}

	_, err = svc.UpdateStatus(context.Background(), created.ID, enums.InquiryStatusResolved)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestAssignMovesNewToInProgress(t *testing.T) {
	svc := newTestService(t, newStubRepo(), nil)

	created, err := svc.Submit(context.Background(), validSubmitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	assigned, err := svc.Assign(context.Background(), created.ID, "dana")
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if assigned.AssignedTo == nil || *assigned.AssignedTo != "dana" {
		t.Fatalf("expected assignee dana, got %v", assigned.AssignedTo)
	}
	if assigned.Status != enums.InquiryStatusInProgress.String() {
		t.Fatalf("expected in_progress after assignment, got %s", assigned.Status)
	}
}

func TestAssignSettledInquiry(t *testing.T) {
	svc := newTestService(t, newStubRepo(), nil)

	created, err := svc.Submit(context.Background(), validSubmitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), created.ID, enums.InquiryStatusClosed); err != nil {
		t.Fatalf("close: %v", err)
	}

	_, err = svc.Assign(context.Background(), created.ID, "dana")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestAddResponseAppendsAndResolves(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo, nil)

	created, err := svc.Submit(context.Background(), validSubmitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	dto, err := svc.AddResponse(context.Background(), created.ID, ResponseInput{
		Responder: "dana",
		Message:   "Yes, statewide delivery is free.",
		Resolve:   true,
	})
	if err != nil {
		t.Fatalf("add response: %v", err)
	}
	if len(dto.Responses) != 1 {
		t.Fatalf("expected 1 response in thread, got %d", len(dto.Responses))
	}
	if dto.Status != enums.InquiryStatusResolved.String() {
		t.Fatalf("expected resolved after responding, got %s", dto.Status)
	}
}

func TestAddResponseToClosedInquiry(t *testing.T) {
	svc := newTestService(t, newStubRepo(), nil)

	created, err := svc.Submit(context.Background(), validSubmitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), created.ID, enums.InquiryStatusClosed); err != nil {
		t.Fatalf("close: %v", err)
	}

	_, err = svc.AddResponse(context.Background(), created.ID, ResponseInput{
		Responder: "dana",
		Message:   "too late",
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestOpenCount(t *testing.T) {
	svc := newTestService(t, newStubRepo(), nil)

	first, err := svc.Submit(context.Background(), validSubmitInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Submit(context.Background(), validSubmitInput()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), first.ID, enums.InquiryStatusClosed); err != nil {
		t.Fatalf("close: %v", err)
	}

	total, err := svc.OpenCount(context.Background())
	if err != nil {
		t.Fatalf("open count: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 open inquiry, got %d", total)
	}
}
