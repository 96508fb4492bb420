package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"canteen_service/internal/domain"
	"canteen_service/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type stubOrderUseCase struct {
	placeOrder func(ctx context.Context, identity domain.Identity, req *domain.PlaceOrderRequest) (*domain.Order, error)
	myOrders   func(ctx context.Context, identity domain.Identity) (*domain.OrderList, error)
}

func (s *stubOrderUseCase) PlaceOrder(ctx context.Context, identity domain.Identity, req *domain.PlaceOrderRequest) (*domain.Order, error) {
	return s.placeOrder(ctx, identity, req)
}

func (s *stubOrderUseCase) MyOrders(ctx context.Context, identity domain.Identity) (*domain.OrderList, error) {
	return s.myOrders(ctx, identity)
}

func setupOrderRouter(uc domain.OrderUseCase, withIdentity bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if withIdentity {
		router.Use(func(c *gin.Context) {
			middleware.SetIdentity(c, domain.Identity{UserID: 42, Phone: "+77001234567"})
		})
	}
	NewOrderHandler(uc, testLogger()).RegisterRoutes(router)
	return router
}

const validPlaceOrderBody = `{
	"orderItems": [{"itemId": "A", "quantity": 2}],
	"deliveryDetails": {"type": "pickup", "pickupTime": "18:00"}
}`

func TestPlaceOrderCreated(t *testing.T) {
	uc := &stubOrderUseCase{
		placeOrder: func(_ context.Context, identity domain.Identity, req *domain.PlaceOrderRequest) (*domain.Order, error) {
			if identity.UserID != 42 {
				t.Errorf("handler passed identity %+v, want user 42", identity)
			}
			if len(req.OrderItems) != 1 || req.OrderItems[0].ItemID != "A" {
				t.Errorf("handler passed request %+v", req)
			}
			return &domain.Order{ID: "order-1", TotalAmount: 10}, nil
		},
	}
	router := setupOrderRouter(uc, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/place-order", strings.NewReader(validPlaceOrderBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", w.Code, w.Body.String())
	}

	var resp PlaceOrderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.OrderID != "order-1" || resp.TotalAmount != 10 || resp.Message != "Order placed successfully" {
		t.Errorf("response = %+v", resp)
	}
}

func TestPlaceOrderValidationErrorsReturn400(t *testing.T) {
	tests := []struct {
		name    string
		ucErr   error
		wantMsg string
	}{
		{"invalid delivery type", domain.ErrInvalidDeliveryType, "Invalid delivery type"},
		{"missing hostel name", domain.ErrHostelNameRequired, "Hostel name is required for delivery"},
		{"missing pickup time", domain.ErrPickupTimeRequired, "Pickup time is required for pickup"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubOrderUseCase{
				placeOrder: func(context.Context, domain.Identity, *domain.PlaceOrderRequest) (*domain.Order, error) {
					return nil, tt.ucErr
				},
			}
			router := setupOrderRouter(uc, true)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/place-order", strings.NewReader(validPlaceOrderBody))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			var body ErrorBody
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if body.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", body.Message, tt.wantMsg)
			}
		})
	}
}

func TestPlaceOrderLookupFailureReturns500(t *testing.T) {
	uc := &stubOrderUseCase{
		placeOrder: func(context.Context, domain.Identity, *domain.PlaceOrderRequest) (*domain.Order, error) {
			return nil, errors.New("menu item ghost not found")
		},
	}
	router := setupOrderRouter(uc, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/place-order", strings.NewReader(validPlaceOrderBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var body ErrorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Message != "Order placement failed" {
		t.Errorf("message = %q, want %q", body.Message, "Order placement failed")
	}
	if !strings.Contains(body.Detail, "ghost") {
		t.Errorf("error detail %q must name the missing item", body.Detail)
	}
}

func TestPlaceOrderMalformedBody(t *testing.T) {
	uc := &stubOrderUseCase{
		placeOrder: func(context.Context, domain.Identity, *domain.PlaceOrderRequest) (*domain.Order, error) {
			t.Fatal("use case must not be called for malformed JSON")
			return nil, nil
		},
	}
	router := setupOrderRouter(uc, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/place-order", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestPlaceOrderWithoutIdentity(t *testing.T) {
	uc := &stubOrderUseCase{
		placeOrder: func(context.Context, domain.Identity, *domain.PlaceOrderRequest) (*domain.Order, error) {
			t.Fatal("use case must not be called without identity")
			return nil, nil
		},
	}
	router := setupOrderRouter(uc, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/place-order", strings.NewReader(validPlaceOrderBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestMyOrdersOK(t *testing.T) {
	uc := &stubOrderUseCase{
		myOrders: func(_ context.Context, identity domain.Identity) (*domain.OrderList, error) {
			return &domain.OrderList{
				CompletedOrders: []domain.Order{{ID: "o2", OrderStatus: domain.StatusDelivered}},
				CurrentOrders:   []domain.Order{{ID: "o1", OrderStatus: domain.StatusPlaced}},
			}, nil
		},
	}
	router := setupOrderRouter(uc, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/my-orders", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var list domain.OrderList
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(list.CompletedOrders) != 1 || list.CompletedOrders[0].ID != "o2" {
		t.Errorf("completedOrders = %+v", list.CompletedOrders)
	}
	if len(list.CurrentOrders) != 1 || list.CurrentOrders[0].ID != "o1" {
		t.Errorf("currentOrders = %+v", list.CurrentOrders)
	}
}

func TestMyOrdersEmptyBuckets(t *testing.T) {
	uc := &stubOrderUseCase{
		myOrders: func(context.Context, domain.Identity) (*domain.OrderList, error) {
			return &domain.OrderList{
				CompletedOrders: []domain.Order{},
				CurrentOrders:   []domain.Order{},
			}, nil
		},
	}
	router := setupOrderRouter(uc, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/my-orders", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"completedOrders":[]`) || !strings.Contains(body, `"currentOrders":[]`) {
		t.Errorf("empty buckets must serialize as empty arrays, got %s", body)
	}
}

func TestMyOrdersStoreFailureReturns500(t *testing.T) {
	uc := &stubOrderUseCase{
		myOrders: func(context.Context, domain.Identity) (*domain.OrderList, error) {
			return nil, errors.New("connection refused")
		},
	}
	router := setupOrderRouter(uc, true)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/my-orders", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var body ErrorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Message != "Failed to fetch orders" {
		t.Errorf("message = %q, want %q", body.Message, "Failed to fetch orders")
	}
}
