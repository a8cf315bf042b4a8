package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/andresrodas/puntoventa-backend/api/middleware"
	"github.com/andresrodas/puntoventa-backend/internal/orders"
	"github.com/andresrodas/puntoventa-backend/pkg/db/models"
	"github.com/andresrodas/puntoventa-backend/pkg/enums"
	pkgerrors "github.com/andresrodas/puntoventa-backend/pkg/errors"
	"github.com/andresrodas/puntoventa-backend/pkg/pagination"
)

type testOrdersService struct {
	createFn  func(ctx context.Context, input orders.CreateOrderInput) (*models.OnlineOrder, error)
	findFn    func(ctx context.Context, customerID, orderID uuid.UUID, admin bool) (*models.OnlineOrder, error)
	listFn    func(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*orders.ListResult, error)
	listAllFn func(ctx context.Context, params pagination.Params) (*orders.ListResult, error)
}

func (s *testOrdersService) Create(ctx context.Context, input orders.CreateOrderInput) (*models.OnlineOrder, error) {
	if s.createFn != nil {
		return s.createFn(ctx, input)
	}
	return &models.OnlineOrder{OrderNumber: "O-20250101-0001"}, nil
}

func (s *testOrdersService) FindByID(ctx context.Context, customerID, orderID uuid.UUID, admin bool) (*models.OnlineOrder, error) {
	if s.findFn != nil {
		return s.findFn(ctx, customerID, orderID, admin)
	}
	return &models.OnlineOrder{OrderNumber: "O-20250101-0001"}, nil
}

func (s *testOrdersService) ListByCustomer(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*orders.ListResult, error) {
	if s.listFn != nil {
		return s.listFn(ctx, customerID, params)
	}
	return &orders.ListResult{}, nil
}

func (s *testOrdersService) ListAll(ctx context.Context, params pagination.Params) (*orders.ListResult, error) {
	if s.listAllFn != nil {
		return s.listAllFn(ctx, params)
	}
	return &orders.ListResult{}, nil
}

func orderBody(productID uuid.UUID) string {
	return `{"address":"Av. Siempreviva 742","paymentMethod":"card","totalAmount":9000,"items":[{"productId":"` + productID.String() + `","quantity":2}]}`
}

func TestCreateOrderUsesTokenCustomer(t *testing.T) {
	customerID := uuid.New()
	called := false
	svc := &testOrdersService{
		createFn: func(ctx context.Context, input orders.CreateOrderInput) (*models.OnlineOrder, error) {
			called = true
			if input.CustomerID != customerID {
				t.Fatalf("expected customer %s got %s", customerID, input.CustomerID)
			}
			return &models.OnlineOrder{OrderNumber: "O-20250101-0003", CustomerID: customerID}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(orderBody(uuid.New())))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithCustomerID(req.Context(), customerID))
	resp := httptest.NewRecorder()
	CreateOrder(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d body %s", resp.Code, resp.Body.String())
	}
	if !called {
		t.Fatal("expected service called")
	}
	var envelope struct {
		Data models.OnlineOrder `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.OrderNumber != "O-20250101-0003" {
		t.Fatalf("unexpected order number %q", envelope.Data.OrderNumber)
	}
}

func TestCreateOrderIgnoresBodyCustomerID(t *testing.T) {
	tokenCustomer := uuid.New()
	bodyCustomer := uuid.New()
	svc := &testOrdersService{
		createFn: func(ctx context.Context, input orders.CreateOrderInput) (*models.OnlineOrder, error) {
			if input.CustomerID == bodyCustomer {
				t.Fatal("body customer id leaked into input")
			}
			if input.CustomerID != tokenCustomer {
				t.Fatalf("expected token customer %s got %s", tokenCustomer, input.CustomerID)
			}
			return &models.OnlineOrder{}, nil
		},
	}

	body := `{"address":"Calle 1","paymentMethod":"card","totalAmount":100,"customerId":"` + bodyCustomer.String() + `","items":[{"productId":"` + uuid.NewString() + `","quantity":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithCustomerID(req.Context(), tokenCustomer))
	resp := httptest.NewRecorder()
	CreateOrder(svc, testLogger())(resp, req)

	// Unknown body fields are rejected outright.
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field got %d", resp.Code)
	}
}

func TestCreateOrderRejectsMissingTotal(t *testing.T) {
	body := `{"address":"Calle 1","paymentMethod":"card","items":[{"productId":"` + uuid.NewString() + `","quantity":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(middleware.WithCustomerID(req.Context(), uuid.New()))
	resp := httptest.NewRecorder()
	CreateOrder(&testOrdersService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetOrderPassesAdminFlag(t *testing.T) {
	orderID := uuid.New()
	customerID := uuid.New()
	svc := &testOrdersService{
		findFn: func(ctx context.Context, cid, oid uuid.UUID, admin bool) (*models.OnlineOrder, error) {
			if cid != customerID || oid != orderID {
				t.Fatalf("unexpected lookup %s %s", cid, oid)
			}
			if !admin {
				t.Fatal("expected admin flag")
			}
			return &models.OnlineOrder{ID: orderID}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil)
	req = addRouteParam(req, "orderId", orderID.String())
	ctx := middleware.WithCustomerID(req.Context(), customerID)
	ctx = middleware.WithRole(ctx, string(enums.AccountRoleAdmin))
	req = req.WithContext(ctx)
	resp := httptest.NewRecorder()
	GetOrder(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	svc := &testOrdersService{
		findFn: func(ctx context.Context, cid, oid uuid.UUID, admin bool) (*models.OnlineOrder, error) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		},
	}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+uuid.NewString(), nil)
	req = addRouteParam(req, "orderId", uuid.NewString())
	req = req.WithContext(middleware.WithCustomerID(req.Context(), uuid.New()))
	resp := httptest.NewRecorder()
	GetOrder(svc, testLogger())(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestGetOrderMalformedID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/invalid", nil)
	req = addRouteParam(req, "orderId", "invalid")
	resp := httptest.NewRecorder()
	GetOrder(&testOrdersService{}, testLogger())(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestListOrdersScopesToTokenCustomer(t *testing.T) {
	customerID := uuid.New()
	var seen uuid.UUID
	svc := &testOrdersService{
		listFn: func(ctx context.Context, cid uuid.UUID, params pagination.Params) (*orders.ListResult, error) {
			seen = cid
			return &orders.ListResult{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?limit=10", nil)
	req = req.WithContext(middleware.WithCustomerID(req.Context(), customerID))
	resp := httptest.NewRecorder()
	ListOrders(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if seen != customerID {
		t.Fatalf("expected customer %s got %s", customerID, seen)
	}
}

func TestListAllOrdersPassesParams(t *testing.T) {
	var seen pagination.Params
	svc := &testOrdersService{
		listAllFn: func(ctx context.Context, params pagination.Params) (*orders.ListResult, error) {
			seen = params
			return &orders.ListResult{Cursor: "next"}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/all?limit=25&cursor=xyz", nil)
	resp := httptest.NewRecorder()
	ListAllOrders(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	if seen.Limit != 25 || seen.Cursor != "xyz" {
		t.Fatalf("unexpected params %+v", seen)
	}
}
