package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout is applied when Config.Timeout is zero. A hung backend
// request surfaces as a NetworkError once it fires.
const DefaultTimeout = 10 * time.Second

// Client is the RechargeHub backend API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string // bearer token for authenticated requests
}

// Config holds the client configuration.
type Config struct {
	BaseURL    string        // backend base URL (e.g. "http://localhost:3000")
	Timeout    time.Duration // HTTP client timeout (default: 10s)
	HTTPClient *http.Client  // optional custom HTTP client
}

// NewClient creates a new backend API client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
		}
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
	}
}

// SetToken sets the bearer token for authenticated requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	return c.token
}

// Plans returns the plan catalog service.
func (c *Client) Plans() *PlanService {
	return &PlanService{client: c}
}

// doRequest performs an HTTP request against the backend. Transport
// failures (including the client timeout) return a *NetworkError; a
// response with status >= 400 returns a *RequestError carrying the
// server-provided message when one could be parsed.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: method + " " + path, Err: err}
	}

	if resp.StatusCode >= 400 {
		return newRequestError(resp.StatusCode, respBody)
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}
