package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ginraidee/auth"
	"ginraidee/config"
	httpapi "ginraidee/food-svc/internal/api/http"
	"ginraidee/food-svc/internal/service"
	"ginraidee/food-svc/internal/storage"
	"ginraidee/logging"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
)

const dislikeTTL = 24 * time.Hour

type deps struct {
	db      *sql.DB
	rdb     *redis.Client
	catalog *storage.MemoryCatalog
	events  service.EventPublisher
	jwt     *auth.JWTManager
}

// buildHandler wires repositories and services. rdb and events may be nil.
func buildHandler(settings *config.Settings, d deps) *httpapi.Handler {
	repo := storage.NewPostgresRepository(d.db)

	var dislikes service.DislikeCache
	if d.rdb != nil {
		dislikes = storage.NewRedisDislikeCache(d.rdb, dislikeTTL)
	}

	qr := service.DefaultQRGenerator{BaseURL: settings.PublicURL}
	foods := service.NewFoodService(d.catalog, repo, dislikes, service.NewPicker(), qr)
	feedback := service.NewFeedbackService(d.catalog, repo, dislikes, d.events)
	users := service.NewUserService(repo, d.catalog)
	menus := service.NewMenuService(d.catalog)

	var adminAuth mux.MiddlewareFunc
	if d.jwt != nil {
		adminAuth = d.jwt.RequireRole(auth.RoleAdmin)
	}
	return httpapi.NewHandler(foods, feedback, users, menus, adminAuth)
}

func main() {
	settings := config.Load("8081")
	logging.Init(logging.Config{Level: settings.LogLevel, Format: settings.LogFormat, Service: "food-svc"})
	settings.WarnInsecureDefaults()

	catalog, err := storage.LoadCatalog(settings.CatalogPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load catalog")
	}
	logging.Info().Int("items", catalog.Len()).Str("path", settings.CatalogPath).Msg("catalog loaded")

	db := config.MustInitPostgres()
	defer db.Close()
	if err := storage.NewPostgresRepository(db).EnsureSchema(); err != nil {
		logging.Fatal().Err(err).Msg("failed to ensure schema")
	}

	rdb := config.InitRedis()
	if rdb != nil {
		defer rdb.Close()
	}

	var events service.EventPublisher
	if writer := config.NewKafkaWriter(settings.KafkaTopic); writer != nil {
		defer writer.Close()
		events = storage.NewKafkaPublisher(writer)
	} else {
		logging.Warn().Msg("KAFKA_BROKER not set, food events will not be published")
	}

	jwtManager, err := auth.NewJWTManager(settings.JWTSecret, settings.TokenTTL)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to init jwt")
	}

	handler := buildHandler(settings, deps{db: db, rdb: rdb, catalog: catalog, events: events, jwt: jwtManager})
	srv := httpapi.NewServer(settings.Addr(), httpapi.NewRouter(handler, settings.CORSOrigins))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go httpapi.StartServer(srv)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("shutdown failed")
	}
}
