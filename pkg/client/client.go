package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Client is the training console API client
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string // bearer token from the demo login endpoint
	limiter    *rate.Limiter
}

// Config holds the client configuration
type Config struct {
	BaseURL        string        // API base URL (e.g., "http://127.0.0.1:8000")
	Token          string        // Optional bearer token
	Timeout        time.Duration // HTTP client timeout (default: 30s)
	RequestsPerSec float64       // Client-side rate limit (default: 20)
	Burst          int           // Rate limit burst (default: 40)
	HTTPClient     *http.Client  // Optional custom HTTP client
}

// NewClient creates a new training console API client
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RequestsPerSec == 0 {
		cfg.RequestsPerSec = 20
	}
	if cfg.Burst == 0 {
		cfg.Burst = 40
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
		token:      cfg.Token,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), cfg.Burst),
	}
}

// SetToken sets the bearer token for authenticated requests
func (c *Client) SetToken(token string) {
	c.token = token
}

// GetToken returns the current bearer token
func (c *Client) GetToken() string {
	return c.token
}

// doRequest performs an HTTP request with proper error handling
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

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
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr APIError
		if err := json.Unmarshal(respBody, &apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = string(respBody)
		}
		apiErr.StatusCode = resp.StatusCode
		return &apiErr
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

// Auth returns the authentication service
func (c *Client) Auth() *AuthService {
	return &AuthService{client: c}
}

// Alerts returns the alert service
func (c *Client) Alerts() *AlertService {
	return &AlertService{client: c}
}

// Incidents returns the incident service
func (c *Client) Incidents() *IncidentService {
	return &IncidentService{client: c}
}

// Devices returns the device inventory service
func (c *Client) Devices() *DeviceService {
	return &DeviceService{client: c}
}

// Labs returns the lab scenario service
func (c *Client) Labs() *LabService {
	return &LabService{client: c}
}

// Hunting returns the query execution service
func (c *Client) Hunting() *HuntingService {
	return &HuntingService{client: c}
}
