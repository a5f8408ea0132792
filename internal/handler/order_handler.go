package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"shopkart/internal/model"
	"shopkart/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles the two terminal checkout endpoints.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// CashOnDelivery handles POST /api/order/cash-on-delivery requests.
func (h *OrderHandler) CashOnDelivery(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := h.decodeOrder(w, r)
	if !ok {
		return
	}

	resp, err := h.service.CreateCashOnDelivery(r.Context(), userID, req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Order placed",
		Data:    resp,
	})
}

// Checkout handles POST /api/order/checkout requests. The body is the same
// as cash-on-delivery; the response is either a free-order confirmation or
// a hosted payment session id for client-side redirect.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := h.decodeOrder(w, r)
	if !ok {
		return
	}

	resp, err := h.service.Checkout(r.Context(), userID, req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetByID handles GET /api/order/{id} requests.
func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, Response{Success: false, Message: "method not allowed"})
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/api/order/")
	orderID, err := uuid.Parse(raw)
	if err != nil {
		writeBadRequest(w, "invalid order ID format", h.logger)
		return
	}

	order, items, err := h.service.GetByID(r.Context(), orderID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, map[string]interface{}{
		"order": order,
		"items": items,
	})
}

func (h *OrderHandler) decodeOrder(w http.ResponseWriter, r *http.Request) (uuid.UUID, *model.OrderRequest, bool) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, Response{Success: false, Message: "method not allowed"})
		return uuid.Nil, nil, false
	}

	userID, err := userIDFromRequest(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Message: err.Error()})
		return uuid.Nil, nil, false
	}

	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return uuid.Nil, nil, false
	}

	return userID, &req, true
}
