package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopkart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderService is a mock implementation of OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateCashOnDelivery(ctx context.Context, userID uuid.UUID, req *model.OrderRequest) (*model.OrderResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderResponse), args.Error(1)
}

func (m *MockOrderService) Checkout(ctx context.Context, userID uuid.UUID, req *model.OrderRequest) (*model.CheckoutResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutResponse), args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.Order), args.Get(1).([]model.OrderItem), args.Error(2)
}

func TestOrderHandler_CashOnDelivery(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()

	orderID := uuid.New()
	testResponse := &model.OrderResponse{
		ID: orderID,
		Total: model.OrderTotal{
			Subtotal:     490000,
			ShippingCost: 30000,
			FinalTotal:   520000,
		},
		Items: []model.OrderItem{
			{ID: uuid.New(), OrderID: orderID, ProductID: "P001", Quantity: 2, UnitPrice: 200000},
		},
	}

	validBody := &model.OrderRequest{
		ListItems: []model.OrderItemRequest{{ProductID: "P001", Quantity: 2}},
		AddressID: uuid.New(),
	}

	tests := []struct {
		name           string
		userID         string
		requestBody    interface{}
		mockReturn     *model.OrderResponse
		mockError      error
		expectedStatus int
		expectService  bool
	}{
		{
			name:           "Success",
			userID:         userID.String(),
			requestBody:    validBody,
			mockReturn:     testResponse,
			expectedStatus: http.StatusCreated,
			expectService:  true,
		},
		{
			name:           "Missing user header",
			userID:         "",
			requestBody:    validBody,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid user header",
			userID:         "not-a-uuid",
			requestBody:    validBody,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid body",
			userID:         userID.String(),
			requestBody:    "{not json",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Voucher rejected",
			userID:         userID.String(),
			requestBody:    validBody,
			mockError:      model.ErrVoucherExpired,
			expectedStatus: http.StatusBadRequest,
			expectService:  true,
		},
		{
			name:           "Address not found",
			userID:         userID.String(),
			requestBody:    validBody,
			mockError:      model.ErrAddressNotFound,
			expectedStatus: http.StatusNotFound,
			expectService:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockOrderService)
			handler := NewOrderHandler(mockService, logger)

			if tt.expectService {
				mockService.On("CreateCashOnDelivery", mock.Anything, userID, mock.AnythingOfType("*model.OrderRequest")).
					Return(tt.mockReturn, tt.mockError)
			}

			var body bytes.Buffer
			switch b := tt.requestBody.(type) {
			case string:
				body.WriteString(b)
			default:
				require.NoError(t, json.NewEncoder(&body).Encode(b))
			}

			req := httptest.NewRequest(http.MethodPost, "/api/order/cash-on-delivery", &body)
			if tt.userID != "" {
				req.Header.Set("X-User-ID", tt.userID)
			}
			w := httptest.NewRecorder()

			handler.CashOnDelivery(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var resp Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedStatus < 400, resp.Success)
			if tt.expectedStatus >= 400 {
				assert.NotEmpty(t, resp.Message)
			}
		})
	}
}

func TestOrderHandler_Checkout_FreeOrder(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()

	mockService := new(MockOrderService)
	handler := NewOrderHandler(mockService, logger)

	mockService.On("Checkout", mock.Anything, userID, mock.AnythingOfType("*model.OrderRequest")).
		Return(&model.CheckoutResponse{IsFreeOrder: true, Message: "Order placed"}, nil)

	body, _ := json.Marshal(&model.OrderRequest{
		ListItems: []model.OrderItemRequest{{ProductID: "P001", Quantity: 1}},
		AddressID: uuid.New(),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/order/checkout", bytes.NewReader(body))
	req.Header.Set("X-User-ID", userID.String())
	w := httptest.NewRecorder()

	handler.Checkout(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp model.CheckoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.IsFreeOrder)
	assert.Empty(t, resp.ID)
}

func TestOrderHandler_Checkout_PaymentSession(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()

	mockService := new(MockOrderService)
	handler := NewOrderHandler(mockService, logger)

	mockService.On("Checkout", mock.Anything, userID, mock.AnythingOfType("*model.OrderRequest")).
		Return(&model.CheckoutResponse{ID: "cs_test_abc"}, nil)

	body, _ := json.Marshal(&model.OrderRequest{
		ListItems: []model.OrderItemRequest{{ProductID: "P001", Quantity: 1}},
		AddressID: uuid.New(),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/order/checkout", bytes.NewReader(body))
	req.Header.Set("X-User-ID", userID.String())
	w := httptest.NewRecorder()

	handler.Checkout(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp model.CheckoutResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.IsFreeOrder)
	assert.Equal(t, "cs_test_abc", resp.ID)
}

func TestOrderHandler_Checkout_PaymentFailed(t *testing.T) {
	logger := zerolog.Nop()
	userID := uuid.New()

	mockService := new(MockOrderService)
	handler := NewOrderHandler(mockService, logger)

	mockService.On("Checkout", mock.Anything, userID, mock.AnythingOfType("*model.OrderRequest")).
		Return(nil, model.ErrPaymentFailed)

	body, _ := json.Marshal(&model.OrderRequest{
		ListItems: []model.OrderItemRequest{{ProductID: "P001", Quantity: 1}},
		AddressID: uuid.New(),
	})
	req := httptest.NewRequest(http.MethodPost, "/api/order/checkout", bytes.NewReader(body))
	req.Header.Set("X-User-ID", userID.String())
	w := httptest.NewRecorder()

	handler.Checkout(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestOrderHandler_GetByID(t *testing.T) {
	logger := zerolog.Nop()
	orderID := uuid.New()

	mockService := new(MockOrderService)
	handler := NewOrderHandler(mockService, logger)

	mockService.On("GetByID", mock.Anything, orderID).
		Return(&model.Order{ID: orderID, Status: model.OrderStatusConfirmed}, []model.OrderItem{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/order/"+orderID.String(), nil)
	w := httptest.NewRecorder()

	handler.GetByID(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
