// Package bexio is the outbound adapter for the Bexio REST API. It owns the
// authenticated transport and the per-resource endpoint catalog; everything
// above it works with domain values and never sees HTTP.
package bexio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tomasbottlik/bexio-mcp-server/internal/domain"
)

const userAgent = "bexio-mcp-server/0.2.0 (+https://github.com/tomasbottlik/bexio-mcp-server)"

// Config holds the connection settings for one Bexio account.
type Config struct {
	BaseURL     string
	AccessToken string
	Timeout     time.Duration
}

// Client performs authenticated JSON requests against the Bexio API. It is
// constructed once at process start and is safe for concurrent use; there is
// no token refresh path, a changed token requires a restart.
type Client struct {
	base   string
	token  string
	client *http.Client
	logger *slog.Logger
}

// New creates a Client. The HTTP timeout is the only cancellation layer the
// transport adds; callers control everything else through ctx.
func New(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		base:   strings.TrimRight(cfg.BaseURL, "/"),
		token:  cfg.AccessToken,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger.With("component", "bexio_client"),
	}
}

// errorEnvelope is the shape Bexio uses for error bodies. The message key
// varies across the 2.0 and 3.0 path families.
type errorEnvelope struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Detail  string `json:"detail"`
	Errors  any    `json:"errors"`
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body any) (json.RawMessage, error) {
	reqURL := c.base + endpoint
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.logger.With(slog.String("method", method), slog.String("endpoint", endpoint))
	log.Debug("Executing Bexio request")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Error("Request failed", slog.Any("error", err))
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := parseAPIError(resp.StatusCode, respBody)
		log.Warn("Bexio returned non-success status",
			slog.Int("status_code", resp.StatusCode),
			slog.String("message", apiErr.Message))
		return nil, apiErr
	}

	log.Debug("Bexio request succeeded", slog.Int("status_code", resp.StatusCode))
	return respBody, nil
}

// parseAPIError extracts message and field-level errors when the body is the
// known envelope; otherwise the raw text is preserved as-is.
func parseAPIError(status int, body []byte) *domain.RemoteError {
	apiErr := &domain.RemoteError{StatusCode: status, Body: strings.TrimSpace(string(body))}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return apiErr
	}
	switch {
	case env.Message != "":
		apiErr.Message = env.Message
	case env.Error != "":
		apiErr.Message = env.Error
	case env.Detail != "":
		apiErr.Message = env.Detail
	}
	switch errs := env.Errors.(type) {
	case []any:
		for _, e := range errs {
			apiErr.FieldErrors = append(apiErr.FieldErrors, fmt.Sprintf("%v", e))
		}
	case map[string]any:
		for field, e := range errs {
			apiErr.FieldErrors = append(apiErr.FieldErrors, fmt.Sprintf("%s: %v", field, e))
		}
	}
	return apiErr
}

func (c *Client) getJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	raw, err := c.do(ctx, http.MethodGet, endpoint, query, nil)
	if err != nil {
		return err
	}
	return decodeInto(raw, out)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, body any, out any) error {
	raw, err := c.do(ctx, http.MethodPost, endpoint, nil, body)
	if err != nil {
		return err
	}
	return decodeInto(raw, out)
}

func (c *Client) putJSON(ctx context.Context, endpoint string, body any, out any) error {
	raw, err := c.do(ctx, http.MethodPut, endpoint, nil, body)
	if err != nil {
		return err
	}
	return decodeInto(raw, out)
}

func decodeInto(raw json.RawMessage, out any) error {
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}
