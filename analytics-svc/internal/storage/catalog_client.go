package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"ginraidee/analytics-svc/internal/domain"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// CatalogClient fetches food-svc's catalog and keeps it for TTL so a
// dashboard refresh does not fan out one request per widget.
type CatalogClient struct {
	BaseURL string
	HTTP    HTTPClient
	TTL     time.Duration

	mu        sync.Mutex
	items     []domain.MenuItem
	fetchedAt time.Time
	now       func() time.Time
}

func NewCatalogClient(baseURL string, client HTTPClient, ttl time.Duration) *CatalogClient {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &CatalogClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTP:    client,
		TTL:     ttl,
		now:     time.Now,
	}
}

func (c *CatalogClient) Catalog(ctx context.Context) ([]domain.MenuItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.items != nil && c.now().Sub(c.fetchedAt) < c.TTL {
		return c.items, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/foods/meta/catalog", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch catalog: status %d", resp.StatusCode)
	}
	var body struct {
		Success bool              `json:"success"`
		Data    []domain.MenuItem `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if body.Data == nil {
		body.Data = []domain.MenuItem{}
	}

	c.items = body.Data
	c.fetchedAt = c.now()
	return c.items, nil
}
