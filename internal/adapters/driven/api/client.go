package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/stylist-cli/internal/core/domain"
	"github.com/custodia-labs/stylist-cli/internal/core/ports/driven"
	"github.com/custodia-labs/stylist-cli/internal/logger"
)

// Ensure Client implements the interfaces.
var (
	_ driven.StorefrontAPI = (*Client)(nil)
	_ driven.Endpoint      = (*Client)(nil)
)

// maxErrorBody bounds how much of an error response is kept.
const maxErrorBody = 512

// Config holds configuration for the storefront client.
type Config struct {
	// BaseURL is the API root (default: http://127.0.0.1:8000/api/v1).
	BaseURL string

	// Timeout bounds each request. Zero disables the timeout.
	Timeout time.Duration

	// RateLimit is the sustained requests per second. Zero disables throttling.
	RateLimit float64

	// Burst is the token bucket size.
	Burst int

	// HTTPClient overrides the transport. Timeout is ignored when set.
	HTTPClient *http.Client
}

// ConfigFromSettings builds a client config from application settings.
func ConfigFromSettings(s domain.APISettings) Config {
	return Config{
		BaseURL:   s.BaseURL,
		Timeout:   s.Timeout,
		RateLimit: s.RateLimit,
		Burst:     s.Burst,
	}
}

// Client talks to the storefront API.
type Client struct {
	client  *http.Client
	limiter *RateLimiter

	mu      sync.RWMutex
	baseURL string
}

// NewClient creates a new storefront client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultAPIBaseURL
	}
	if err := domain.ValidateBaseURL(cfg.BaseURL); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		client:  httpClient,
		limiter: NewRateLimiter(cfg.RateLimit, cfg.Burst),
		baseURL: normaliseBase(cfg.BaseURL),
	}, nil
}

// BaseURL returns the current API root.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// SetBaseURL re-points subsequent requests. In-flight requests are unaffected.
func (c *Client) SetBaseURL(baseURL string) error {
	if err := domain.ValidateBaseURL(baseURL); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = normaliseBase(baseURL)
	return nil
}

// ListProducts returns a page of catalog items.
func (c *Client) ListProducts(ctx context.Context, opts domain.ListOptions) ([]domain.CatalogItem, error) {
	query := url.Values{}
	if opts.Skip > 0 {
		query.Set("skip", strconv.Itoa(opts.Skip))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Category != "" {
		query.Set("category", opts.Category)
	}

	body, err := c.do(ctx, "list products", http.MethodGet, "/products", query, nil)
	if err != nil {
		return nil, err
	}

	items, err := decodeCatalogPage(body)
	if err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return items, nil
}

// GetProduct returns a single catalog item.
func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.CatalogItem, error) {
	path := "/products/" + strconv.FormatInt(id, 10)
	body, err := c.do(ctx, "get product", http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var raw catalogItem
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	item, err := raw.toDomain()
	if err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	return &item, nil
}

// Search sends a free-text query.
func (c *Client) Search(ctx context.Context, req domain.SearchRequest) (*domain.SearchResponse, error) {
	body, err := c.do(ctx, "search", http.MethodPost, "/search", nil, searchRequest{
		Query: req.Query,
		K:     req.K,
	})
	if err != nil {
		return nil, err
	}

	var raw searchResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return raw.toDomain()
}

// do performs one request and returns the body of a 2xx response.
func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, payload any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: rate limit wait: %w", op, err)
	}

	endpoint := c.BaseURL() + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: marshal request: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		logger.Debug("%s %s failed after %s: %v", method, endpoint, time.Since(start), err)
		return nil, fmt.Errorf("%s: send request: %w", op, err)
	}
	defer resp.Body.Close()
	logger.Debug("%s %s -> %d (%s)", method, endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusTooManyRequests {
			c.limiter.RecordRateLimit(resp)
		}
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			Op:   op,
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(snippet)),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read response: %w", op, err)
	}
	return body, nil
}

func normaliseBase(u string) string {
	return strings.TrimRight(u, "/")
}
