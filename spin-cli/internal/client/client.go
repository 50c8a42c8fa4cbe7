// Package client talks to the public API through the gateway.
package client

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
	"strings"

	"ginraidee/spin-cli/internal/domain"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	BaseURL string
	HTTP    HTTPClient
}

func New(baseURL string, httpClient HTTPClient) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{BaseURL: strings.TrimSuffix(baseURL, "/"), HTTP: httpClient}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// APIError is a non-2xx or success:false answer other than the
// no-candidates 404.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned status %d", e.Status)
	}
	return fmt.Sprintf("api returned status %d: %s", e.Status, e.Message)
}

// Random asks the server for one pick. A 404 maps to domain.ErrNoCandidates.
func (c *Client) Random(ctx context.Context, filter domain.Filter, exclude []int, userID string) (domain.MenuItem, error) {
	q := url.Values{}
	if len(filter.Categories) > 0 {
		q.Set("category", strings.Join(filter.Categories, ","))
	}
	if filter.MinPrice != nil {
		q.Set("minPrice", strconv.FormatFloat(*filter.MinPrice, 'f', -1, 64))
	}
	if filter.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatFloat(*filter.MaxPrice, 'f', -1, 64))
	}
	if len(exclude) > 0 {
		ids := make([]string, len(exclude))
		for i, id := range exclude {
			ids[i] = strconv.Itoa(id)
		}
		q.Set("exclude", strings.Join(ids, ","))
	}
	if userID != "" {
		q.Set("userId", userID)
	}

	var item domain.MenuItem
	err := c.do(ctx, http.MethodGet, "/api/foods/action/random?"+q.Encode(), nil, &item)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound && apiErr.Message == domain.ErrNoCandidates.Error() {
		return domain.MenuItem{}, domain.ErrNoCandidates
	}
	return item, err
}

func (c *Client) Feedback(ctx context.Context, userID string, foodID int, action domain.Action) error {
	body := map[string]interface{}{"userId": userID, "foodId": foodID, "feedback": action}
	return c.do(ctx, http.MethodPost, "/api/foods/feedback", body, nil)
}

func (c *Client) Select(ctx context.Context, userID string, foodID int) error {
	body := map[string]interface{}{"userId": userID, "foodId": foodID}
	return c.do(ctx, http.MethodPost, "/api/users/select", body, nil)
}

// InitUser registers or refreshes userID and returns the id the server settled on.
func (c *Client) InitUser(ctx context.Context, userID string) (string, error) {
	var out struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/users/init", map[string]string{"userId": userID}, &out); err != nil {
		return "", err
	}
	return out.User.ID, nil
}

func (c *Client) Catalog(ctx context.Context) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	err := c.do(ctx, http.MethodGet, "/api/foods/meta/catalog", nil, &items)
	return items, err
}

func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := c.do(ctx, http.MethodGet, "/api/foods/meta/categories", nil, &categories)
	return categories, err
}

func (c *Client) do(ctx context.Context, method, path string, body, dst interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: env.Error}
	}
	if decodeErr != nil {
		return fmt.Errorf("decode %s: %w", path, decodeErr)
	}
	if !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Error}
	}
	if dst == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, dst)
}
