package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/slotpress/slotpress/internal/pkg/env"
)

const defaultProviderAPIBaseURL = "https://api.checkout.example.com/v1"

// Client talks to the hosted-checkout payment provider. All money amounts are
// integer cents.
type Client struct {
	APIBaseURL string
	APIKey     string
	ReturnURL  string

	HTTPClient *http.Client
}

// CheckoutSession is the provider-side checkout a buyer is redirected to.
type CheckoutSession struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Status      string `json:"status"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Reference   string `json:"reference"`
}

const (
	SessionStatusOpen    = "open"
	SessionStatusPaid    = "paid"
	SessionStatusExpired = "expired"
)

// NewClientFromEnv builds a client from PAYMENT_* environment variables.
func NewClientFromEnv() *Client {
	base := strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", ""), "/")
	returnURL := strings.TrimSpace(env.GetEnv("PAYMENT_RETURN_URL", ""))
	if returnURL == "" && base != "" {
		returnURL = base + "/checkout/return"
	}

	return &Client{
		APIBaseURL: strings.TrimRight(env.GetEnv("PAYMENT_API_BASE_URL", defaultProviderAPIBaseURL), "/"),
		APIKey:     strings.TrimSpace(env.GetEnv("PAYMENT_API_KEY", "")),
		ReturnURL:  returnURL,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// CreateCheckoutSession opens a checkout session at the provider. Reference is
// our order public ID and comes back in webhooks.
func (c *Client) CreateCheckoutSession(ctx context.Context, amountCents int64, currency, reference string) (*CheckoutSession, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, errors.New("PAYMENT_API_KEY is not configured")
	}
	if amountCents <= 0 {
		return nil, errors.New("amount must be positive")
	}
	if strings.TrimSpace(reference) == "" {
		return nil, errors.New("order reference is required")
	}

	payload, err := json.Marshal(map[string]interface{}{
		"amount_cents": amountCents,
		"currency":     strings.ToLower(strings.TrimSpace(currency)),
		"reference":    reference,
		"return_url":   c.ReturnURL,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIBaseURL+"/checkout/sessions", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("checkout session create failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out CheckoutSession
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.ID) == "" || strings.TrimSpace(out.URL) == "" {
		return nil, errors.New("checkout session response missing id or url")
	}
	return &out, nil
}

// GetCheckoutSession fetches the current state of a checkout session.
func (c *Client) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, errors.New("PAYMENT_API_KEY is not configured")
	}
	id := strings.TrimSpace(sessionID)
	if id == "" {
		return nil, errors.New("session id is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIBaseURL+"/checkout/sessions/"+id, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("checkout session fetch failed: status=%d body=%s", resp.StatusCode, string(body))
	}

	var out CheckoutSession
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
