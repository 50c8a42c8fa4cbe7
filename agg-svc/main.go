package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ginraidee/agg-svc/internal/service"
	"ginraidee/agg-svc/internal/storage"
	"ginraidee/config"
	"ginraidee/logging"
	"ginraidee/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// newRouter exposes liveness and metrics; the consumer has no other HTTP surface.
func newRouter(rdb *redis.Client) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Instrument("agg-svc"))
	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		status, code := "healthy", http.StatusOK
		if err := rdb.Ping(req.Context()).Err(); err != nil {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		w.Write([]byte(`{"status":"` + status + `","service":"agg-svc"}`))
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	return r
}

func main() {
	settings := config.Load("8082")
	logging.Init(logging.Config{Level: settings.LogLevel, Format: settings.LogFormat, Service: "agg-svc"})

	rdb := config.MustInitRedis()
	defer rdb.Close()

	reader := config.NewKafkaReader(settings.KafkaTopic, settings.KafkaGroup)
	if reader == nil {
		logging.Fatal().Msg("KAFKA_BROKER is required")
	}
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: settings.Addr(), Handler: newRouter(rdb), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("agg service http starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error().Err(err).Msg("agg service http stopped")
		}
	}()

	logging.Info().Str("topic", settings.KafkaTopic).Str("group", settings.KafkaGroup).Msg("consuming food events")
	service.NewConsumer(reader, storage.NewStore(rdb)).Start(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}
