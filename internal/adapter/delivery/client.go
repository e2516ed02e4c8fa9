package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"inventory-sync-gateway/internal/core/domain"

	"github.com/rs/zerolog"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client performs single outbound webhook deliveries and connectivity
// probes. It never retries; retry policy belongs to the sync engine.
type Client struct {
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewClient creates a delivery client on top of an HTTP client.
func NewClient(httpClient HTTPClient, log zerolog.Logger) *Client {
	return &Client{httpClient: httpClient, log: log}
}

// payload is the wire body sent to each webhook endpoint. The serialization
// is stable across retries of the same transaction; the transaction id in
// the body and the X-Transaction-ID header serve as an idempotency key for
// receivers.
type payload struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	Operation    string `json:"operation"`
	RackLocation string `json:"rack_location"`
	Timestamp    string `json:"timestamp"`
	DeviceID     string `json:"device_id"`
}

// probePayload is the body of a connectivity test request.
type probePayload struct {
	Event     string `json:"event"`
	Timestamp string `json:"timestamp"`
}

// Deliver posts one transaction to one endpoint URL. Any non-2xx response or
// transport error is a failure.
func (c *Client) Deliver(ctx context.Context, url string, tx *domain.Transaction) error {
	body := payload{
		ID:           tx.ID.String(),
		Code:         tx.Code,
		Operation:    string(tx.Operation),
		RackLocation: tx.RackLocation,
		Timestamp:    tx.Timestamp.UTC().Format(time.RFC3339),
		DeviceID:     tx.DeviceID,
	}

	status, err := c.post(ctx, url, body, tx.ID.String())
	if err != nil {
		return fmt.Errorf("deliver to %s: %w", url, err)
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("deliver to %s: unexpected status %d", url, status)
	}

	c.log.Debug().
		Str("tx_id", tx.ID.String()).
		Str("url", url).
		Int("status", status).
		Msg("webhook delivered")
	return nil
}

// Probe sends a lightweight test request to an endpoint. It mutates no local
// state.
func (c *Client) Probe(ctx context.Context, url string) error {
	body := probePayload{
		Event:     "test",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	status, err := c.post(ctx, url, body, "")
	if err != nil {
		return fmt.Errorf("probe %s: %w", url, err)
	}
	if status < 200 || status >= 300 {
		return fmt.Errorf("probe %s: unexpected status %d", url, status)
	}
	return nil
}

func (c *Client) post(ctx context.Context, url string, body any, txID string) (int, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if txID != "" {
		req.Header.Set("X-Transaction-ID", txID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}
