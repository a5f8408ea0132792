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

// AddressHandler handles address book requests.
type AddressHandler struct {
	service service.AddressService
	logger  zerolog.Logger
}

// NewAddressHandler creates a new address handler.
func NewAddressHandler(service service.AddressService, logger zerolog.Logger) *AddressHandler {
	return &AddressHandler{
		service: service,
		logger:  logger.With().Str("handler", "address").Logger(),
	}
}

// List handles GET /api/address requests.
func (h *AddressHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Message: err.Error()})
		return
	}

	addresses, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, addresses)
}

// Create handles POST /api/address requests.
func (h *AddressHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Message: err.Error()})
		return
	}

	var req model.AddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	address, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusCreated, address)
}

// Update handles PUT /api/address/{id} requests.
func (h *AddressHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Message: err.Error()})
		return
	}

	id, ok := h.addressID(w, r)
	if !ok {
		return
	}

	var req model.AddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body", h.logger)
		return
	}

	address, err := h.service.Update(r.Context(), userID, id, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, address)
}

// Delete handles DELETE /api/address/{id} requests.
func (h *AddressHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromRequest(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Message: err.Error()})
		return
	}

	id, ok := h.addressID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), userID, id); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, nil)
}

func (h *AddressHandler) addressID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := strings.TrimPrefix(r.URL.Path, "/api/address/")
	if raw == "" {
		writeBadRequest(w, "address ID is required", h.logger)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		writeBadRequest(w, "invalid address ID format", h.logger)
		return uuid.Nil, false
	}
	return id, true
}
