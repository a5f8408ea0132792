package handler

import (
	"encoding/json"
	"net/http"

	"shopkart/internal/checkout"
	"shopkart/internal/model"
	"shopkart/internal/service"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles the checkout session endpoints: starting a
// checkout over selected items, toggling vouchers and adjusting the
// reward-point spend. Every response carries the session and the refreshed
// total breakdown.
type CheckoutHandler struct {
	service service.CheckoutService
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service service.CheckoutService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// checkoutView is the session payload returned by every checkout endpoint.
type checkoutView struct {
	Session *checkout.Session `json:"session"`
	Total   model.OrderTotal  `json:"total"`
}

// Session handles POST and GET /api/checkout/session requests. POST starts
// a checkout over the selected items, replacing any session in progress;
// GET returns the current one.
func (h *CheckoutHandler) Session(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Message: err.Error()})
		return
	}

	switch r.Method {
	case http.MethodPost:
		var req struct {
			Items []model.OrderItemRequest `json:"items"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "invalid request body", h.logger)
			return
		}

		session, total, err := h.service.Begin(r.Context(), userID, req.Items)
		if err != nil {
			writeError(w, err, h.logger)
			return
		}
		writeData(w, http.StatusCreated, checkoutView{Session: session, Total: total})

	case http.MethodGet:
		session, total, err := h.service.Get(r.Context(), userID)
		if err != nil {
			writeError(w, err, h.logger)
			return
		}
		writeData(w, http.StatusOK, checkoutView{Session: session, Total: total})

	default:
		writeJSON(w, http.StatusMethodNotAllowed, Response{Success: false, Message: "method not allowed"})
	}
}

// ApplyVoucher handles POST /api/checkout/voucher requests. Applying a
// selected code deselects it; applying a new code of the same kind replaces
// the previous one.
func (h *CheckoutHandler) ApplyVoucher(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, Response{Success: false, Message: "method not allowed"})
		return
	}

	userID, err := userIDFromRequest(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Message: err.Error()})
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}
	if req.Code == "" {
		writeBadRequest(w, "voucher code is required", h.logger)
		return
	}

	session, total, err := h.service.ApplyVoucher(r.Context(), userID, req.Code)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, checkoutView{Session: session, Total: total})
}

// SetPoints handles POST /api/checkout/points requests.
func (h *CheckoutHandler) SetPoints(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, Response{Success: false, Message: "method not allowed"})
		return
	}

	userID, err := userIDFromRequest(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Message: err.Error()})
		return
	}

	var req struct {
		UsePoints bool  `json:"usePoints"`
		Points    int64 `json:"points"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	session, total, err := h.service.SetPoints(r.Context(), userID, req.UsePoints, req.Points)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, checkoutView{Session: session, Total: total})
}
