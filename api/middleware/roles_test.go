package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/motordesk/backend/pkg/enums"
)

func TestRequireRoleAdmitsExactRoleOnly(t *testing.T) {
	handler := RequireRole(enums.RoleAdmin, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req = req.WithContext(WithRole(context.Background(), enums.RoleAdmin.String()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected admin admitted, got %d", rec.Code)
	}

	for _, role := range []string{enums.RoleStaff.String(), enums.RoleCustomer.String(), ""} {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req = req.WithContext(WithRole(context.Background(), role))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403 for role %q, got %d", role, rec.Code)
		}
	}
}
