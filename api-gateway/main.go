package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ginraidee/api-gateway/internal/gateway"
	"ginraidee/config"
	"ginraidee/logging"

	"github.com/rs/cors"
)

func newHandler(settings *config.Settings, client gateway.HTTPClient) http.Handler {
	gw := gateway.NewGateway(gateway.Config{
		FoodSvcURL:      settings.FoodSvcURL,
		AnalyticsSvcURL: settings.AnalyticsSvcURL,
	}, client)

	return cors.New(cors.Options{
		AllowedOrigins: settings.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}).Handler(gw.SetupRoutes())
}

func main() {
	settings := config.Load("8080")
	logging.Init(logging.Config{Level: settings.LogLevel, Format: settings.LogFormat, Service: "api-gateway"})

	srv := &http.Server{
		Addr:              settings.Addr(),
		Handler:           newHandler(settings, &http.Client{Timeout: 15 * time.Second}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logging.Info().Str("addr", srv.Addr).
			Str("food_svc", settings.FoodSvcURL).
			Str("analytics_svc", settings.AnalyticsSvcURL).
			Msg("api gateway starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal().Err(err).Msg("api gateway stopped")
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("shutdown failed")
	}
}
