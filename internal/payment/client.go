// Package payment creates hosted payment sessions. The client talks to the
// provider's REST API; the storefront never touches card data, it only
// redirects the customer to the hosted page.
package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"shopkart/internal/config"

	"github.com/rs/zerolog"
)

// Client creates payment sessions with the hosted provider.
type Client interface {
	CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error)
}

// CreateSessionRequest carries the order reference and the authoritative
// server-computed amount, in the smallest currency unit.
type CreateSessionRequest struct {
	OrderID     string
	Amount      int64
	Currency    string
	Description string
}

// Session is the provider's checkout session. ID is handed to the client
// for redirect; RedirectURL is the hosted payment page.
type Session struct {
	ID          string
	RedirectURL string
}

type sessionLink struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

type createSessionResult struct {
	ID     string        `json:"id"`
	Status string        `json:"status"`
	Links  []sessionLink `json:"links"`
}

type hostedClient struct {
	httpClient *http.Client
	baseURL    string
	secretKey  string
	returnURL  string
	cancelURL  string
	logger     zerolog.Logger
}

// NewClient creates a hosted payment client from configuration.
func NewClient(cfg config.PaymentConfig, logger zerolog.Logger) Client {
	return &hostedClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		returnURL: cfg.ReturnURL,
		cancelURL: cfg.CancelURL,
		logger:    logger.With().Str("component", "payment-client").Logger(),
	}
}

// CreateSession creates a checkout session with the provider and returns
// its id and redirect URL.
func (c *hostedClient) CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error) {
	payload := map[string]interface{}{
		"reference":   req.OrderID,
		"amount":      req.Amount,
		"currency":    req.Currency,
		"description": req.Description,
		"return_url":  c.returnURL,
		"cancel_url":  c.cancelURL,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal session payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/v1/checkout/sessions",
		bytes.NewBuffer(body),
	)
	if err != nil {
		return nil, fmt.Errorf("create session request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("payment session request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("order_id", req.OrderID).
			Msg("payment provider rejected session")
		return nil, fmt.Errorf("payment provider error %d: %s", resp.StatusCode, string(b))
	}

	var result createSessionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode session response: %w", err)
	}

	c.logger.Info().
		Str("order_id", req.OrderID).
		Str("session_id", result.ID).
		Msg("payment session created")

	return &Session{
		ID:          result.ID,
		RedirectURL: extractRedirectURL(result.Links),
	}, nil
}

func extractRedirectURL(links []sessionLink) string {
	for _, link := range links {
		if link.Rel == "checkout" || link.Rel == "approve" {
			return link.Href
		}
	}
	return ""
}
