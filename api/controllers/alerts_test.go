package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/andresrodas/puntoventa-backend/pkg/db/models"
	"github.com/andresrodas/puntoventa-backend/pkg/enums"
	pkgerrors "github.com/andresrodas/puntoventa-backend/pkg/errors"
	"github.com/andresrodas/puntoventa-backend/pkg/logger"
)

type testAlertsService struct {
	resolveFn func(ctx context.Context, alertID uuid.UUID) error
	listFn    func(ctx context.Context, filter enums.AlertFilter) ([]models.InventoryAlert, error)
}

func (s *testAlertsService) EvaluateAndCreate(ctx context.Context, tx *gorm.DB, product *models.Product) (bool, error) {
	return false, nil
}

func (s *testAlertsService) Resolve(ctx context.Context, alertID uuid.UUID) error {
	if s.resolveFn != nil {
		return s.resolveFn(ctx, alertID)
	}
	return nil
}

func (s *testAlertsService) List(ctx context.Context, filter enums.AlertFilter) ([]models.InventoryAlert, error) {
	if s.listFn != nil {
		return s.listFn(ctx, filter)
	}
	return []models.InventoryAlert{}, nil
}

func addRouteParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestListAlertsDefaultsToActive(t *testing.T) {
	var seen enums.AlertFilter
	svc := &testAlertsService{
		listFn: func(ctx context.Context, filter enums.AlertFilter) ([]models.InventoryAlert, error) {
			seen = filter
			return []models.InventoryAlert{{Message: "Yerba is low on stock: 2 left (minimum 5)"}}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts", nil)
	resp := httptest.NewRecorder()
	ListAlerts(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if seen != enums.AlertFilterActive {
		t.Fatalf("expected active filter got %q", seen)
	}
	var envelope struct {
		Data []models.InventoryAlert `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(envelope.Data) != 1 {
		t.Fatalf("expected 1 alert got %d", len(envelope.Data))
	}
}

func TestListAlertsRejectsUnknownFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts?filter=bogus", nil)
	resp := httptest.NewRecorder()
	ListAlerts(&testAlertsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestResolveAlertSuccess(t *testing.T) {
	alertID := uuid.New()
	called := false
	svc := &testAlertsService{
		resolveFn: func(ctx context.Context, id uuid.UUID) error {
			called = true
			if id != alertID {
				t.Fatalf("unexpected alert %s", id)
			}
			return nil
		},
	}

	req := httptest.NewRequest(http.MethodPut, "/api/v1/alerts/"+alertID.String()+"/resolve", nil)
	req = addRouteParam(req, "alertId", alertID.String())
	resp := httptest.NewRecorder()
	ResolveAlert(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if !called {
		t.Fatal("expected service called")
	}
	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["status"] != "resolved" {
		t.Fatalf("expected resolved status got %v", envelope.Data)
	}
}

func TestResolveAlertUnknownID(t *testing.T) {
	svc := &testAlertsService{
		resolveFn: func(ctx context.Context, id uuid.UUID) error {
			return pkgerrors.New(pkgerrors.CodeNotFound, "alert not found")
		},
	}
	req := httptest.NewRequest(http.MethodPut, "/api/v1/alerts/"+uuid.NewString()+"/resolve", nil)
	req = addRouteParam(req, "alertId", uuid.NewString())
	resp := httptest.NewRecorder()
	ResolveAlert(svc, testLogger())(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestResolveAlertMalformedID(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/alerts/invalid/resolve", nil)
	req = addRouteParam(req, "alertId", "invalid")
	resp := httptest.NewRecorder()
	ResolveAlert(&testAlertsService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
