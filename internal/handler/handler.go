package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"shopkart/internal/checkout"
	"shopkart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Response is the envelope every endpoint answers with. Data carries the
// payload on success; Message carries the user-facing text on failure.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeData writes a success envelope.
func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, Response{Success: true, Data: data})
}

// writeError maps an error to a status code and writes a failure envelope.
// Domain errors carry their own user-facing message; anything else is
// reported as an internal error without leaking detail.
func writeError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := statusForCode(domainErr.Code)
		logger.Warn().Str("code", domainErr.Code).Int("status", status).Msg(domainErr.Message)
		writeJSON(w, status, Response{Success: false, Message: domainErr.Message})
		return
	}

	if errors.Is(err, checkout.ErrSessionNotFound) {
		writeJSON(w, http.StatusNotFound, Response{Success: false, Message: "No checkout in progress"})
		return
	}

	logger.Error().Err(err).Msg("handler error")
	writeJSON(w, http.StatusInternalServerError, Response{Success: false, Message: "internal server error"})
}

// writeBadRequest writes a 400 failure envelope with the given message.
func writeBadRequest(w http.ResponseWriter, message string, logger zerolog.Logger) {
	logger.Warn().Str("error", message).Msg("bad request")
	writeJSON(w, http.StatusBadRequest, Response{Success: false, Message: message})
}

func statusForCode(code string) int {
	switch code {
	case model.ErrCodeProductNotFound,
		model.ErrCodeCategoryNotFound,
		model.ErrCodeAddressNotFound,
		model.ErrCodeUserNotFound,
		model.ErrCodeOrderNotFound,
		model.ErrCodeVoucherNotFound:
		return http.StatusNotFound
	case model.ErrCodeInvalidJSON,
		model.ErrCodeMissingField,
		model.ErrCodeInvalidQuantity,
		model.ErrCodeVoucherInactive,
		model.ErrCodeVoucherNotStarted,
		model.ErrCodeVoucherExpired,
		model.ErrCodeVoucherMinOrder,
		model.ErrCodeVoucherExhausted,
		model.ErrCodeVoucherConflict,
		model.ErrCodeInvalidAddress,
		model.ErrCodeInsufficientFunds:
		return http.StatusBadRequest
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	case model.ErrCodePaymentFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// userIDFromRequest reads the authenticated user from the X-User-ID header.
// The gateway in front of this service resolves the session token and
// forwards the user id.
func userIDFromRequest(r *http.Request) (uuid.UUID, error) {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		return uuid.Nil, errors.New("missing X-User-ID header")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.New("invalid X-User-ID header")
	}
	return id, nil
}
