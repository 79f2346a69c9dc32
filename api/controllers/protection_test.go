package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/diarmuidw/enquiry-backend/internal/protection"
	"github.com/diarmuidw/enquiry-backend/pkg/logger"
)

func newProtectionHandler(t *testing.T) http.HandlerFunc {
	t.Helper()
	svc, err := protection.NewService(protection.ServiceParams{
		Logger: logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return ProtectionPlan(svc, nil)
}

func TestProtectionPlanAdds(t *testing.T) {
	handler := newProtectionHandler(t)

	body := `{"subtotal":"100.00","enabled":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/protection/plan", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data protection.Plan `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Action != protection.ActionAdd {
		t.Fatalf("expected add, got %q", envelope.Data.Action)
	}
	if !envelope.Data.Price.Equal(decimal.RequireFromString("2.95")) {
		t.Fatalf("expected tier price 2.95, got %s", envelope.Data.Price)
	}
}

func TestProtectionPlanRejectsBadSubtotal(t *testing.T) {
	handler := newProtectionHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/protection/plan", strings.NewReader(`{"subtotal":"abc"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestProtectionPlanDisabledRemovesExisting(t *testing.T) {
	handler := newProtectionHandler(t)

	body := `{"subtotal":"100.00","current_variant_id":"39358028218417","enabled":false}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/protection/plan", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data protection.Plan `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Action != protection.ActionRemove {
		t.Fatalf("expected remove, got %q", envelope.Data.Action)
	}
}
