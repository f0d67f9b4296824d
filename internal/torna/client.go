package torna

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	. "github.com/li7hai26/torna-mcp/internal/logging"
)

// Locale is sent as Accept-Language on every request; Torna ships with
// Chinese-first message catalogs.
const Locale = "zh-CN"

const defaultTimeout = 30 * time.Second

// Client performs Torna OpenAPI calls. It holds only the endpoint and the
// timeout; each call builds its own transport so one call is exactly one
// HTTP exchange with nothing cached across calls.
type Client struct {
	baseURL string
	timeout time.Duration
}

// NewClient validates and normalizes the base URL and parses the timeout.
// A missing URL is a configuration error.
func NewClient(rawURL, timeout string) (*Client, error) {
	if rawURL == "" {
		return nil, NewConfigError("torna URL not configured")
	}

	// Parse timeout
	t := defaultTimeout
	if timeout != "" {
		var err error
		t, err = time.ParseDuration(timeout)
		if err != nil {
			L_warn("torna: invalid timeout, using default", "timeout", timeout, "error", err)
			t = defaultTimeout
		}
	}

	// Normalize: strip trailing slash, ensure the /api endpoint suffix
	baseURL := strings.TrimSuffix(rawURL, "/")
	if !strings.HasSuffix(baseURL, "/api") {
		baseURL += "/api"
	}

	L_debug("torna: client created", "url", baseURL, "timeout", t)

	return &Client{
		baseURL: baseURL,
		timeout: t,
	}, nil
}

// BaseURL returns the normalized endpoint.
func (c *Client) BaseURL() string { return c.baseURL }

// Timeout returns the per-call timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// Do POSTs one envelope and decodes the reply. The HTTP client is scoped
// to this call, with keep-alives disabled.
func (c *Client) Do(ctx context.Context, env Envelope) (*Response, error) {
	body, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}

	httpClient := &http.Client{
		Timeout: c.timeout,
		Transport: &http.Transport{
			DisableKeepAlives: true,
		},
	}
	defer httpClient.CloseIdleConnections()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", Locale)

	L_debug("torna: POST", "interface", env.Name, "url", c.baseURL, "token", MaskToken(env.AccessToken))

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, ClassifyStatus(resp.StatusCode)
	}

	decoded, err := DecodeResponse(respBody)
	if err != nil {
		return nil, &Error{Kind: KindParse, Message: err.Error(), cause: err}
	}

	L_debug("torna: completed", "interface", env.Name, "status", resp.StatusCode, "code", string(decoded.Code), "bytes", len(respBody))
	return decoded, nil
}

// MaskToken reduces a token to its last four characters for log output.
func MaskToken(t string) string {
	if len(t) <= 4 {
		return "****"
	}
	return "****" + t[len(t)-4:]
}
