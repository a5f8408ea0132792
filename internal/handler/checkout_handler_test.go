package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopkart/internal/checkout"
	"shopkart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCheckoutService is a mock implementation of CheckoutService.
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Begin(ctx context.Context, userID uuid.UUID, items []model.OrderItemRequest) (*checkout.Session, model.OrderTotal, error) {
	args := m.Called(ctx, userID, items)
	if args.Get(0) == nil {
		return nil, model.OrderTotal{}, args.Error(2)
	}
	return args.Get(0).(*checkout.Session), args.Get(1).(model.OrderTotal), args.Error(2)
}

func (m *MockCheckoutService) Get(ctx context.Context, userID uuid.UUID) (*checkout.Session, model.OrderTotal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, model.OrderTotal{}, args.Error(2)
	}
	return args.Get(0).(*checkout.Session), args.Get(1).(model.OrderTotal), args.Error(2)
}

func (m *MockCheckoutService) ApplyVoucher(ctx context.Context, userID uuid.UUID, code string) (*checkout.Session, model.OrderTotal, error) {
	args := m.Called(ctx, userID, code)
	if args.Get(0) == nil {
		return nil, model.OrderTotal{}, args.Error(2)
	}
	return args.Get(0).(*checkout.Session), args.Get(1).(model.OrderTotal), args.Error(2)
}

func (m *MockCheckoutService) SetPoints(ctx context.Context, userID uuid.UUID, use bool, points int64) (*checkout.Session, model.OrderTotal, error) {
	args := m.Called(ctx, userID, use, points)
	if args.Get(0) == nil {
		return nil, model.OrderTotal{}, args.Error(2)
	}
	return args.Get(0).(*checkout.Session), args.Get(1).(model.OrderTotal), args.Error(2)
}

func TestCheckoutHandler_Session_Begin(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()

	mockService := new(MockCheckoutService)
	handler := NewCheckoutHandler(mockService, logger)

	session := checkout.NewSession(userID, []model.CartLine{
		{ProductID: "P001", UnitPrice: 200000, Quantity: 2},
	})
	total := model.OrderTotal{Subtotal: 400000, ShippingCost: 30000, FinalTotal: 430000}

	mockService.On("Begin", mock.Anything, userID, mock.AnythingOfType("[]model.OrderItemRequest")).
		Return(session, total, nil)

	body, _ := json.Marshal(map[string]interface{}{
		"items": []model.OrderItemRequest{{ProductID: "P001", Quantity: 2}},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/checkout/session", bytes.NewReader(body))
	req.Header.Set("X-User-ID", userID.String())
	w := httptest.NewRecorder()

	handler.Session(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Total model.OrderTotal `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(430000), resp.Data.Total.FinalTotal)
}

func TestCheckoutHandler_Session_MissingUser(t *testing.T) {
	logger := zerolog.Nop()

	mockService := new(MockCheckoutService)
	handler := NewCheckoutHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/checkout/session", nil)
	w := httptest.NewRecorder()

	handler.Session(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertNotCalled(t, "Get")
}

func TestCheckoutHandler_Session_NotFound(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()

	mockService := new(MockCheckoutService)
	handler := NewCheckoutHandler(mockService, logger)

	mockService.On("Get", mock.Anything, userID).
		Return(nil, model.OrderTotal{}, checkout.ErrSessionNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/checkout/session", nil)
	req.Header.Set("X-User-ID", userID.String())
	w := httptest.NewRecorder()

	handler.Session(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutHandler_ApplyVoucher_EmptyCode(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()

	mockService := new(MockCheckoutService)
	handler := NewCheckoutHandler(mockService, logger)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout/voucher", bytes.NewReader([]byte(`{"code":""}`)))
	req.Header.Set("X-User-ID", userID.String())
	w := httptest.NewRecorder()

	handler.ApplyVoucher(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "ApplyVoucher")
}

func TestCheckoutHandler_SetPoints(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()

	mockService := new(MockCheckoutService)
	handler := NewCheckoutHandler(mockService, logger)

	session := checkout.NewSession(userID, []model.CartLine{
		{ProductID: "P001", UnitPrice: 200000, Quantity: 1},
	})
	session.UsePoints = true
	session.PointsToUse = 1150
	total := model.OrderTotal{Subtotal: 200000, ShippingCost: 30000, PointsUsed: 1150, PointsDiscount: 115000, FinalTotal: 115000}

	mockService.On("SetPoints", mock.Anything, userID, true, int64(5000)).
		Return(session, total, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout/points", bytes.NewReader([]byte(`{"usePoints":true,"points":5000}`)))
	req.Header.Set("X-User-ID", userID.String())
	w := httptest.NewRecorder()

	handler.SetPoints(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}
