// Package backend implements the HTTP client for the remote
// backend-as-a-service that owns all property, inquiry, and user data.
// Every call here is a single attempt with the configured timeout: no
// retries, no backoff, no circuit breaking. Failures surface as errors and
// are converted into safe defaults one layer up, in the entities facade.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/orbitlettings/orbit-api/internal/config"
	"github.com/orbitlettings/orbit-api/internal/models"
)

// DefaultSort is the sort spec used by every page of the site: a field name
// with a leading '-' for descending order.
const DefaultSort = "-created_date"

// Sentinel errors mapped from backend HTTP statuses.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrUnauthenticated = errors.New("not authenticated")
)

// API defines the remote collection operations this service consumes.
type API interface {
	// ListProperties retrieves every property, ordered by sort.
	ListProperties(ctx context.Context, sort string) ([]models.Property, error)

	// FilterProperties retrieves properties matching a server-side equality
	// criteria object, ordered by sort. A limit of 0 means no limit.
	FilterProperties(ctx context.Context, criteria map[string]interface{}, sort string, limit int) ([]models.Property, error)

	// GetProperty retrieves a single property by id.
	// Returns ErrNotFound if no such property exists.
	GetProperty(ctx context.Context, id string) (*models.Property, error)

	// CreateInquiry submits a tenant application and returns the created record.
	CreateInquiry(ctx context.Context, payload models.InquiryPayload) (*models.TenantInquiry, error)

	// ListInquiries retrieves every tenant inquiry, ordered by sort.
	ListInquiries(ctx context.Context, sort string) ([]models.TenantInquiry, error)

	// Me retrieves the user the request's bearer token authenticates as.
	// Returns ErrUnauthenticated when the token is missing or rejected.
	Me(ctx context.Context) (*models.User, error)
}

// Client is the concrete HTTP implementation of API.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a backend client from configuration. The transport is
// wrapped with otelhttp so each remote call produces a client span.
func NewClient(cfg config.BackendConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type authTokenKey struct{}

// WithAuthToken stores the caller's bearer token on the context so Me can
// pass it through to the backend's auth surface. Authentication itself is
// entirely the backend's concern.
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, authTokenKey{}, token)
}

func authTokenFrom(ctx context.Context) string {
	if token, ok := ctx.Value(authTokenKey{}).(string); ok {
		return token
	}
	return ""
}

// ListProperties implements API.
func (c *Client) ListProperties(ctx context.Context, sort string) ([]models.Property, error) {
	query := url.Values{}
	if sort != "" {
		query.Set("sort", sort)
	}

	var properties []models.Property
	if err := c.get(ctx, "/entities/Property", query, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// FilterProperties implements API. The criteria object is JSON-encoded into
// the q query parameter, matching the backend's filter contract.
func (c *Client) FilterProperties(ctx context.Context, criteria map[string]interface{}, sort string, limit int) ([]models.Property, error) {
	query := url.Values{}
	if len(criteria) > 0 {
		encoded, err := json.Marshal(criteria)
		if err != nil {
			return nil, fmt.Errorf("encode filter criteria: %w", err)
		}
		query.Set("q", string(encoded))
	}
	if sort != "" {
		query.Set("sort", sort)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var properties []models.Property
	if err := c.get(ctx, "/entities/Property", query, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// GetProperty implements API.
func (c *Client) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	var property models.Property
	if err := c.get(ctx, "/entities/Property/"+url.PathEscape(id), nil, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

// CreateInquiry implements API.
func (c *Client) CreateInquiry(ctx context.Context, payload models.InquiryPayload) (*models.TenantInquiry, error) {
	var inquiry models.TenantInquiry
	if err := c.post(ctx, "/entities/TenantInquiry", payload, &inquiry); err != nil {
		return nil, err
	}
	return &inquiry, nil
}

// ListInquiries implements API.
func (c *Client) ListInquiries(ctx context.Context, sort string) ([]models.TenantInquiry, error) {
	query := url.Values{}
	if sort != "" {
		query.Set("sort", sort)
	}

	var inquiries []models.TenantInquiry
	if err := c.get(ctx, "/entities/TenantInquiry", query, &inquiries); err != nil {
		return nil, err
	}
	return inquiries, nil
}

// Me implements API.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// get performs a GET request against the backend and decodes the JSON body
// into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// post performs a POST request with a JSON body and decodes the response
// into out.
func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, nil, encoded, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build %s %s request: %w", method, path, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	if token := authTokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthenticated)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: backend returned status %d: %s", method, path, resp.StatusCode, snippet)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}
