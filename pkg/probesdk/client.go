package probesdk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to a sessionprobe service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// InspectProfile inspects the stored session of profile as seen from path.
func (c *Client) InspectProfile(ctx context.Context, profile, path string) (*InspectionResponse, error) {
	endpoint := "/v1/profiles/" + url.PathEscape(profile) + "/session"
	if path != "" {
		endpoint += "?" + url.Values{"path": {path}}.Encode()
	}

	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return nil, err
	}

	var res InspectionResponse
	if err := decodeJSON(resp, &res, http.StatusOK); err != nil {
		return nil, err
	}
	return &res, nil
}

// SetItem stores value under key in profile.
func (c *Client) SetItem(ctx context.Context, profile, key, value string) error {
	resp, err := c.doRequest(ctx, http.MethodPut, itemPath(profile, key), strings.NewReader(value),
		map[string]string{"Content-Type": "text/plain; charset=utf-8"},
	)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// GetItem reads one item of profile.
func (c *Client) GetItem(ctx context.Context, profile, key string) (*ItemResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, itemPath(profile, key), nil, nil)
	if err != nil {
		return nil, err
	}

	var item ItemResponse
	if err := decodeJSON(resp, &item, http.StatusOK); err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveItem deletes one item of profile.
func (c *Client) RemoveItem(ctx context.Context, profile, key string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, itemPath(profile, key), nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// ListItems lists every item of profile ordered by key.
func (c *Client) ListItems(ctx context.Context, profile string) (*ListItemsResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/v1/profiles/"+url.PathEscape(profile)+"/items", nil, nil)
	if err != nil {
		return nil, err
	}

	var list ListItemsResponse
	if err := decodeJSON(resp, &list, http.StatusOK); err != nil {
		return nil, err
	}
	return &list, nil
}

// ClearProfile removes every item of profile.
func (c *Client) ClearProfile(ctx context.Context, profile string) (*ClearProfileResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/v1/profiles/"+url.PathEscape(profile), nil, nil)
	if err != nil {
		return nil, err
	}

	var cleared ClearProfileResponse
	if err := decodeJSON(resp, &cleared, http.StatusOK); err != nil {
		return nil, err
	}
	return &cleared, nil
}

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks if the service is ready.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

func itemPath(profile, key string) string {
	return "/v1/profiles/" + url.PathEscape(profile) + "/items/" + url.PathEscape(key)
}

// doRequest performs an HTTP request with the Client's HTTP client.
func (c *Client) doRequest(
	ctx context.Context,
	method, path string,
	body io.Reader,
	headers map[string]string,
) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	return resp, nil
}

// decodeJSON decodes a JSON response into target, or returns an *APIError
// when the status is not expectedStatus.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, body)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// checkStatusNoContent returns an *APIError if the response status is not 204.
func checkStatusNoContent(resp *http.Response) error {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return parseErrorResponse(resp, body)
	}
	return nil
}
