// Package webhook delivers assembled captures to the remote collector
// over HTTP with bounded retries. Client errors (4xx) are terminal;
// network failures and server errors retry with exponential backoff.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hpungsan/glance/internal/capture"
	"github.com/hpungsan/glance/internal/config"
)

// clientID identifies this sender to the collector.
const clientID = "glance"

// Payload is the wire form of a capture: the subset the collector
// consumes. It is re-derived from the stored capture on every retry,
// never persisted on its own.
type Payload struct {
	ID           string                    `json:"id"`
	Timestamp    time.Time                 `json:"timestamp"`
	ActiveWindow capture.ActiveWindow      `json:"activeWindow"`
	BrowserTabs  []capture.BrowserTab      `json:"browserTabs"`
	Clipboard    *capture.ClipboardContent `json:"clipboard"`
}

// PayloadFrom derives the wire payload from a stored capture.
func PayloadFrom(c *capture.CapturedContext) *Payload {
	return &Payload{
		ID:           c.ID,
		Timestamp:    c.Timestamp,
		ActiveWindow: c.ActiveWindow,
		BrowserTabs:  c.BrowserTabs,
		Clipboard:    c.Clipboard,
	}
}

// Result is the outcome of one Send call (all attempts included).
type Result struct {
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	StatusCode int    `json:"status_code,omitempty"`
}

// Sender is the delivery capability the orchestrator depends on.
type Sender interface {
	Send(ctx context.Context, p *Payload) Result
	TestConnection(ctx context.Context) bool
}

// Client posts payloads to one fixed collector endpoint.
type Client struct {
	httpClient  *http.Client
	url         string
	maxAttempts int
	baseDelay   time.Duration

	// sleep is swapped out by tests to observe backoff without waiting
	sleep func(time.Duration)
}

// NewClient builds a delivery client from config.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: time.Duration(cfg.WebhookTimeoutSecs) * time.Second},
		url:         cfg.WebhookURL,
		maxAttempts: cfg.WebhookMaxAttempts,
		baseDelay:   time.Duration(cfg.WebhookBaseDelayMs) * time.Millisecond,
		sleep:       time.Sleep,
	}
}

// Enabled reports whether a collector endpoint is configured.
func (c *Client) Enabled() bool {
	return c.url != ""
}

// Send posts the payload, retrying retryable failures with doubling
// delays up to the attempt cap. A 4xx response is terminal: it returns
// failure immediately with that status recorded. Timeouts, network
// errors, and 5xx responses retry; once attempts are exhausted the last
// error is returned.
func (c *Client) Send(ctx context.Context, p *Payload) Result {
	if c.url == "" {
		return Result{Success: false, Error: "webhook URL not configured"}
	}

	log := slog.With("capture_id", p.ID)

	var lastErr string
	var lastStatus int
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			c.sleep(c.baseDelay << (attempt - 2))
		}

		status, err := c.post(ctx, p)
		if err != nil {
			lastErr = err.Error()
			lastStatus = 0
			log.Warn("webhook attempt failed", "attempt", attempt, "error", err)
			continue
		}

		if status >= 200 && status < 300 {
			log.Info("webhook delivered", "attempt", attempt, "status", status)
			return Result{Success: true, StatusCode: status}
		}

		if status >= 400 && status < 500 {
			log.Warn("webhook rejected, not retrying", "status", status)
			return Result{
				Success:    false,
				Error:      fmt.Sprintf("webhook rejected with status %d", status),
				StatusCode: status,
			}
		}

		lastErr = fmt.Sprintf("webhook returned status %d", status)
		lastStatus = status
		log.Warn("webhook attempt failed", "attempt", attempt, "status", status)
	}

	return Result{Success: false, Error: lastErr, StatusCode: lastStatus}
}

// TestConnection performs a single best-effort probe post, outside the
// retry policy. Used only for diagnostics.
func (c *Client) TestConnection(ctx context.Context) bool {
	if c.url == "" {
		return false
	}

	probe := map[string]any{"test": true, "timestamp": time.Now().UTC().Format(time.RFC3339)}
	body, _ := json.Marshal(probe)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return false
	}
	setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// post performs one HTTP attempt and returns the response status.
func (c *Client) post(ctx context.Context, p *Payload) (int, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}

func setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-ID", clientID)
}
