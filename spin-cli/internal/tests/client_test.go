package tests

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ginraidee/spin-cli/internal/client"
	"ginraidee/spin-cli/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Method string
	Path   string
	Query  string
	Body   map[string]interface{}
}

func newAPI(t *testing.T, status int, body string) (*client.Client, *[]capturedRequest) {
	t.Helper()
	var captured []capturedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := capturedRequest{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			json.Unmarshal(raw, &req.Body)
		}
		captured = append(captured, req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return client.New(server.URL+"/", server.Client()), &captured
}

func TestClient_Random(t *testing.T) {
	api, captured := newAPI(t, http.StatusOK, `{"success":true,"data":{"id":1,"nameEn":"Pad Kra Pao","category":"thai","price":40}}`)
	maxPrice := 50.0

	item, err := api.Random(context.Background(), domain.Filter{Categories: []string{"thai", "japanese"}, MaxPrice: &maxPrice}, []int{3, 7}, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Pad Kra Pao", item.NameEn)

	require.Len(t, *captured, 1)
	req := (*captured)[0]
	assert.Equal(t, "/api/foods/action/random", req.Path)
	assert.Equal(t, "category=thai%2Cjapanese&exclude=3%2C7&maxPrice=50&userId=user-1", req.Query)
}

func TestClient_RandomNoCandidates(t *testing.T) {
	api, _ := newAPI(t, http.StatusNotFound, `{"success":false,"error":"no menu matches your filters"}`)

	_, err := api.Random(context.Background(), domain.Filter{Categories: []string{"korean"}}, nil, "")
	assert.ErrorIs(t, err, domain.ErrNoCandidates)
}

func TestClient_RandomUnknownRouteIsNotNoCandidates(t *testing.T) {
	api, _ := newAPI(t, http.StatusNotFound, `{"success":false,"error":"API route not found"}`)

	_, err := api.Random(context.Background(), domain.Filter{}, nil, "")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "API route not found", apiErr.Message)
	assert.NotErrorIs(t, err, domain.ErrNoCandidates)
}

func TestClient_UnsuccessfulEnvelope(t *testing.T) {
	api, _ := newAPI(t, http.StatusOK, `{"success":false,"error":"feedback not stored"}`)

	err := api.Feedback(context.Background(), "user-1", 4, domain.ActionLike)
	assert.EqualError(t, err, "api returned status 200: feedback not stored")
}

func TestClient_RandomServerError(t *testing.T) {
	api, _ := newAPI(t, http.StatusBadGateway, `{"success":false,"error":"upstream service unavailable"}`)

	_, err := api.Random(context.Background(), domain.Filter{}, nil, "")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "api returned status 502: upstream service unavailable", err.Error())
	assert.NotErrorIs(t, err, domain.ErrNoCandidates)
}

func TestClient_FeedbackAndSelect(t *testing.T) {
	api, captured := newAPI(t, http.StatusOK, `{"success":true,"data":{"id":4}}`)

	require.NoError(t, api.Feedback(context.Background(), "user-1", 4, domain.ActionDislike))
	require.NoError(t, api.Select(context.Background(), "user-1", 4))

	require.Len(t, *captured, 2)
	assert.Equal(t, capturedRequest{
		Method: http.MethodPost,
		Path:   "/api/foods/feedback",
		Body:   map[string]interface{}{"userId": "user-1", "foodId": float64(4), "feedback": "dislike"},
	}, (*captured)[0])
	assert.Equal(t, "/api/users/select", (*captured)[1].Path)
	assert.Equal(t, map[string]interface{}{"userId": "user-1", "foodId": float64(4)}, (*captured)[1].Body)
}

func TestClient_InitUser(t *testing.T) {
	api, captured := newAPI(t, http.StatusOK, `{"success":true,"data":{"user":{"id":"user-9","visitCount":1},"isNewUser":true}}`)

	id, err := api.InitUser(context.Background(), "user-9")
	require.NoError(t, err)
	assert.Equal(t, "user-9", id)
	assert.Equal(t, "/api/users/init", (*captured)[0].Path)
}

func TestClient_CatalogAndCategories(t *testing.T) {
	api, _ := newAPI(t, http.StatusOK, `{"success":true,"data":[{"id":1,"nameEn":"Pad Kra Pao","category":"thai","tags":["spicy"]}]}`)

	items, err := api.Catalog(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "thai", items[0].Category)
	assert.Equal(t, []string{"spicy"}, items[0].Tags)

	api, _ = newAPI(t, http.StatusOK, `{"success":true,"data":[{"id":"thai","name":"อาหารไทย"},{"id":"dessert","name":"ของหวาน"}]}`)

	categories, err := api.Categories(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, domain.Category{ID: "dessert", Name: "ของหวาน"}, categories[1])
}

func TestClient_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	err := client.New(url, nil).Select(context.Background(), "user-1", 1)
	assert.ErrorContains(t, err, "POST /api/users/select")
}
