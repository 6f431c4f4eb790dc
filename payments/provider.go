// Package payments talks to the hosted checkout provider. The provider hosts
// the actual payment page; this service only creates sessions, hands the
// shopper the redirect URL, and asks for the session status when the shopper
// comes back.
package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// SessionIDPlaceholder is the literal token the provider substitutes with the
// real session id when redirecting back to the success URL.
const SessionIDPlaceholder = "{CHECKOUT_SESSION_ID}"

// Client is the part of the provider API this service consumes.
type Client interface {
	CreateSession(ctx context.Context, req CreateSessionRequest) (*Session, error)
	SessionStatus(ctx context.Context, sessionID string) (string, error)
}

type CreateSessionRequest struct {
	OrderID     string
	Amount      string // decimal string, e.g. "84.55"
	Currency    string
	Description string
	SuccessURL  string
	CancelURL   string
}

// Session is the provider's view of a hosted checkout transaction.
type Session struct {
	ID     string
	URL    string
	Status string
}

type providerResponse struct {
	Session struct {
		ID     string `json:"id"`
		URL    string `json:"url"`
		Status string `json:"status"`
	} `json:"session"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// HostedCheckout is the HTTP client for the provider's REST API.
type HostedCheckout struct {
	apiURL   string
	apiKey   string
	testMode bool
	http     *http.Client
}

// NewHostedCheckout builds a provider client. mode "sandbox" or "dev" flags
// sessions as test transactions on the live endpoint.
func NewHostedCheckout(apiURL, apiKey, mode string) (*HostedCheckout, error) {
	if apiURL == "" || apiKey == "" {
		return nil, fmt.Errorf("payment provider configuration missing")
	}
	return &HostedCheckout{
		apiURL:   strings.TrimRight(apiURL, "/"),
		apiKey:   apiKey,
		testMode: mode == "sandbox" || mode == "dev",
		http:     &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// CreateSession registers a hosted checkout session and returns the session
// id plus the URL the shopper must be redirected to.
func (hc *HostedCheckout) CreateSession(ctx context.Context, r CreateSessionRequest) (*Session, error) {
	payload := map[string]interface{}{
		"method": "create",
		"test":   hc.testMode,
		"order": map[string]string{
			"ref":         r.OrderID,
			"amount":      r.Amount,
			"currency":    r.Currency,
			"description": r.Description,
		},
		"return": map[string]string{
			"success":   r.SuccessURL,
			"cancelled": r.CancelURL,
		},
	}

	var resp providerResponse
	if err := hc.post(ctx, "/sessions", payload, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("provider error: %s", resp.Error.Message)
	}
	if resp.Session.URL == "" || resp.Session.ID == "" {
		return nil, fmt.Errorf("provider returned empty session")
	}

	return &Session{ID: resp.Session.ID, URL: resp.Session.URL, Status: resp.Session.Status}, nil
}

// SessionStatus asks the provider for the current status of a session. The
// returned string is the provider's own vocabulary ("paid", "unpaid", ...).
func (hc *HostedCheckout) SessionStatus(ctx context.Context, sessionID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, hc.apiURL+"/sessions/"+sessionID, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+hc.apiKey)

	resp, err := hc.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach payment provider: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("provider API error (%d): %s", resp.StatusCode, string(body))
	}

	var pr providerResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return "", fmt.Errorf("failed to parse provider response: %v", err)
	}
	if pr.Error != nil {
		return "", fmt.Errorf("provider error: %s", pr.Error.Message)
	}
	if pr.Session.Status == "" {
		return "", fmt.Errorf("provider returned empty session status")
	}
	return pr.Session.Status, nil
}

func (hc *HostedCheckout) post(ctx context.Context, path string, payload interface{}, out *providerResponse) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, hc.apiURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+hc.apiKey)

	resp, err := hc.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach payment provider: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider API error (%d): %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse provider response: %v", err)
	}
	return nil
}
