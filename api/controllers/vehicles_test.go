package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	vehiclesvc "github.com/motordesk/backend/internal/vehicles"
	"github.com/motordesk/backend/pkg/logger"
)

func testControllerLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	return req.WithContext(ctx)
}

func TestDeleteVehicle(t *testing.T) {
	logg := testControllerLogger()
	vehicleID := uuid.New()

	t.Run("invalid vehicle id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/admin/v1/vehicles/not-a-uuid", nil)
		req = withURLParam(req, "vehicleId", "not-a-uuid")
		rec := httptest.NewRecorder()
		DeleteVehicle(&stubVehicleService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for invalid id, got %d", rec.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		stub := &stubVehicleService{}
		req := httptest.NewRequest(http.MethodDelete, "/api/admin/v1/vehicles/"+vehicleID.String(), nil)
		req = withURLParam(req, "vehicleId", vehicleID.String())
		rec := httptest.NewRecorder()
		DeleteVehicle(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204 on success, got %d", rec.Code)
		}
		if !stub.deleted {
			t.Fatalf("expected Delete to be invoked")
		}
	})
}

func TestCreateVehicleRejectsUnknownCategory(t *testing.T) {
	body := `{"name":"City Hopper","brand":"Aurora","model":"CH-1","year":2024,"category":"submarine","price":"45000"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/vehicles", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CreateVehicle(&stubVehicleService{}, testControllerLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown category, got %d", rec.Code)
	}
}

func TestCreateVehicleReturnsCreated(t *testing.T) {
	stub := &stubVehicleService{}
	body := `{"name":"City Hopper","brand":"Aurora","model":"CH-1","year":2024,"category":"car","price":"45000","stock_quantity":3}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/vehicles", strings.NewReader(body))
	rec := httptest.NewRecorder()
	CreateVehicle(stub, testControllerLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.created == nil {
		t.Fatalf("expected Create to be invoked")
	}
	if stub.created.Name != "City Hopper" {
		t.Fatalf("unexpected name %q", stub.created.Name)
	}
	if stub.created.StockQuantity != 3 {
		t.Fatalf("unexpected stock %d", stub.created.StockQuantity)
	}
}

func TestBrowseVehiclesOnlyServesActiveListings(t *testing.T) {
	stub := &stubVehicleService{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/vehicles?sort_by=price&sort_dir=desc", nil)
	rec := httptest.NewRecorder()
	BrowseVehicles(stub, testControllerLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.listed == nil {
		t.Fatalf("expected List to be invoked")
	}
	if stub.listed.Filters.IsActive == nil || !*stub.listed.Filters.IsActive {
		t.Fatalf("expected the public browse to pin the active filter, got %+v", stub.listed.Filters.IsActive)
	}
	if stub.listed.Sort.By != "price" || stub.listed.Sort.Direction != "desc" {
		t.Fatalf("expected sort to be forwarded, got %+v", stub.listed.Sort)
	}
}

func TestBrowseVehiclesRejectsUnknownSortColumn(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/vehicles?sort_by=vin", nil)
	rec := httptest.NewRecorder()
	BrowseVehicles(&stubVehicleService{}, testControllerLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown sort column, got %d", rec.Code)
	}
}

type stubVehicleService struct {
	created *vehiclesvc.CreateInput
	listed  *vehiclesvc.ListInput
	deleted bool
}

func (s *stubVehicleService) Create(ctx context.Context, input vehiclesvc.CreateInput) (*vehiclesvc.VehicleDTO, error) {
	s.created = &input
	return &vehiclesvc.VehicleDTO{ID: uuid.New(), Name: input.Name}, nil
}

func (s *stubVehicleService) Update(ctx context.Context, vehicleID uuid.UUID, input vehiclesvc.UpdateInput) (*vehiclesvc.VehicleDTO, error) {
	panic("unimplemented")
}

func (s *stubVehicleService) Delete(ctx context.Context, vehicleID uuid.UUID) error {
	s.deleted = true
	return nil
}

func (s *stubVehicleService) Get(ctx context.Context, vehicleID uuid.UUID) (*vehiclesvc.VehicleDTO, error) {
	panic("unimplemented")
}

func (s *stubVehicleService) List(ctx context.Context, input vehiclesvc.ListInput) (*vehiclesvc.ListResult, error) {
	s.listed = &input
	return &vehiclesvc.ListResult{Vehicles: []vehiclesvc.VehicleDTO{}}, nil
}

func (s *stubVehicleService) ReplaceInventory(ctx context.Context, vehicleID uuid.UUID, input vehiclesvc.InventoryInput) (*vehiclesvc.VehicleDTO, error) {
	panic("unimplemented")
}
