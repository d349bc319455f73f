package collaborator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Eloy96/impresiones-prueba/internal/config"
)

// Client talks to the remote pricing/upload/order collaborator. A single
// configured endpoint serves every exchange; requests are JSON-bodied
// POSTs distinguished by an embedded action field.
type Client struct {
	endpointURL string
	attempts    int
	retryDelay  time.Duration
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewClient creates a collaborator client
func NewClient(cfg config.CollaboratorConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	retryDelay := cfg.RetryDelay
	if retryDelay <= 0 {
		retryDelay = time.Second
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		endpointURL: strings.TrimSuffix(cfg.EndpointURL, "/"),
		attempts:    attempts,
		retryDelay:  retryDelay,
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

// envelope is the status wrapper every collaborator response carries
type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// doAction executes one exchange with bounded retry. The delay before a
// retry grows linearly with the attempt index. A response is accepted
// only on transport success AND status "success"; non-2xx, empty body,
// unparsable body and application-level errors all retry the same way.
func (c *Client) doAction(ctx context.Context, action string, payload interface{}, out interface{}) error {
	if c.endpointURL == "" {
		return fmt.Errorf("collaborator client not configured: endpoint URL required")
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		if attempt > 1 {
			delay := c.retryDelay * time.Duration(attempt-1)
			c.logger.Warn("Retrying collaborator request",
				zap.String("action", action),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(lastErr),
			)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		lastErr = c.post(ctx, action, jsonData, out)
		if lastErr == nil {
			return nil
		}
	}

	c.logger.Error("Collaborator request exhausted retries",
		zap.String("action", action),
		zap.Int("attempts", c.attempts),
		zap.Error(lastErr),
	)
	return lastErr
}

func (c *Client) post(ctx context.Context, action string, jsonData []byte, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpointURL, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	// The collaborator only accepts simple-CORS content types
	req.Header.Set("Content-Type", "text/plain;charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("collaborator error: action %s, status %d, body: %s", action, resp.StatusCode, string(body))
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Errorf("empty response from collaborator: action %s", action)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w, body: %s", err, string(body))
	}

	if env.Status != "success" {
		if env.Message != "" {
			return fmt.Errorf("collaborator rejected %s: %s", action, env.Message)
		}
		return fmt.Errorf("collaborator rejected %s: status %q", action, env.Status)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to unmarshal %s response: %w", action, err)
		}
	}

	return nil
}
