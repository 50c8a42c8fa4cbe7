package httpapi

import (
	"net/http"
	"time"

	"ginraidee/logging"
	"ginraidee/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

func NewRouter(handler *Handler, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Instrument("analytics-svc"))
	handler.RegisterRoutes(r)
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}).Handler(r)
}

func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}
}

func StartServer(srv *http.Server) {
	logging.Info().Str("addr", srv.Addr).Msg("analytics service starting")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logging.Fatal().Err(err).Msg("analytics service stopped")
	}
}
