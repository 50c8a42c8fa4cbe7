package gateway

import (
	"io"
	"net/http"
	"strings"
	"time"

	"ginraidee/logging"
	"ginraidee/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	FoodSvcURL      string
	AnalyticsSvcURL string
}

type Gateway struct {
	config Config
	client HTTPClient
}

func NewGateway(config Config, client HTTPClient) *Gateway {
	return &Gateway{
		config: config,
		client: client,
	}
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "api-gateway",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// Target picks the upstream for path. Menu administration lives in food-svc,
// the rest of /api/admin in analytics-svc.
func (g *Gateway) Target(path string) (string, bool) {
	switch {
	case path == "/api/admin/menus" || strings.HasPrefix(path, "/api/admin/menus/"):
		return g.config.FoodSvcURL, true
	case strings.HasPrefix(path, "/api/admin/"):
		return g.config.AnalyticsSvcURL, true
	case hasSegmentPrefix(path, "/api/foods"), hasSegmentPrefix(path, "/api/users"):
		return g.config.FoodSvcURL, true
	}
	return "", false
}

func hasSegmentPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	log := logging.Ctx(r.Context())

	url := strings.TrimSuffix(targetURL, "/") + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		log.Error().Err(err).Str("url", url).Msg("failed to build upstream request")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	req.Header = r.Header.Clone()
	if id := logging.RequestIDFromContext(r.Context()); id != "" {
		req.Header.Set(middleware.RequestIDHeader, id)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		log.Error().Err(err).Str("upstream", targetURL).Str("path", r.URL.Path).Msg("proxy failed")
		writeError(w, http.StatusBadGateway, "upstream service unavailable")
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		log.Warn().Err(err).Msg("failed to copy upstream response")
	}
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	target, ok := g.Target(r.URL.Path)
	if !ok {
		logging.Ctx(r.Context()).Debug().Str("path", r.URL.Path).Msg("unmatched api route")
		writeError(w, http.StatusNotFound, "API route not found")
		return
	}
	g.ProxyRequest(w, r, target)
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Instrument("api-gateway"))
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.PathPrefix("/api/").HandlerFunc(g.RouteHandler)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	return r
}
