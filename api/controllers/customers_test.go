package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	customersvc "github.com/motordesk/backend/internal/customers"
	"github.com/motordesk/backend/pkg/enums"
)

func TestScheduleTestDriveAcceptsOmittedDate(t *testing.T) {
	stub := &stubCustomerService{}
	customerID := uuid.New()
	body := `{"vehicle_id":"` + uuid.New().String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/customers/"+customerID.String()+"/test-drives", strings.NewReader(body))
	req = withURLParam(req, "customerId", customerID.String())
	rec := httptest.NewRecorder()
	ScheduleTestDrive(stub, testControllerLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 without a scheduled date, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.scheduled == nil {
		t.Fatalf("expected ScheduleTestDrive to be invoked")
	}
	if !stub.scheduled.ScheduledAt.IsZero() {
		t.Fatalf("expected a zero scheduled date to be passed through, got %v", stub.scheduled.ScheduledAt)
	}
}

func TestAddCustomerPurchaseRejectsMalformedOfferID(t *testing.T) {
	customerID := uuid.New()
	body := `{"vehicle_id":"` + uuid.New().String() + `","sale_price":"31000","offer_id":"not-a-uuid"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/customers/"+customerID.String()+"/purchases", strings.NewReader(body))
	req = withURLParam(req, "customerId", customerID.String())
	rec := httptest.NewRecorder()
	AddCustomerPurchase(&stubCustomerService{}, testControllerLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed offer id, got %d", rec.Code)
	}
}

type stubCustomerService struct {
	scheduled *customersvc.TestDriveInput
	purchase  *customersvc.PurchaseInput
}

func (s *stubCustomerService) Create(ctx context.Context, input customersvc.CreateInput) (*customersvc.CustomerDTO, error) {
	panic("unimplemented")
}

func (s *stubCustomerService) Update(ctx context.Context, customerID uuid.UUID, input customersvc.UpdateInput) (*customersvc.CustomerDTO, error) {
	panic("unimplemented")
}

func (s *stubCustomerService) Delete(ctx context.Context, customerID uuid.UUID) error {
	panic("unimplemented")
}

func (s *stubCustomerService) Get(ctx context.Context, customerID uuid.UUID) (*customersvc.CustomerDTO, error) {
	panic("unimplemented")
}

func (s *stubCustomerService) List(ctx context.Context, input customersvc.ListInput) (*customersvc.ListResult, error) {
	panic("unimplemented")
}

func (s *stubCustomerService) AddPurchase(ctx context.Context, customerID uuid.UUID, input customersvc.PurchaseInput) (*customersvc.CustomerDTO, error) {
	s.purchase = &input
	return &customersvc.CustomerDTO{ID: customerID}, nil
}

func (s *stubCustomerService) ScheduleTestDrive(ctx context.Context, customerID uuid.UUID, input customersvc.TestDriveInput) (*customersvc.TestDriveDTO, error) {
	s.scheduled = &input
	return &customersvc.TestDriveDTO{ID: uuid.New(), VehicleID: input.VehicleID, Status: enums.TestDriveStatusScheduled.String()}, nil
}

func (s *stubCustomerService) UpdateTestDriveStatus(ctx context.Context, testDriveID uuid.UUID, status enums.TestDriveStatus) (*customersvc.TestDriveDTO, error) {
	panic("unimplemented")
}
