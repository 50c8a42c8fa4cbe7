package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "ginraidee/analytics-svc/internal/api/http"
	"ginraidee/analytics-svc/internal/service"
	"ginraidee/analytics-svc/internal/storage"
	"ginraidee/auth"
	"ginraidee/config"
	"ginraidee/logging"

	"github.com/redis/go-redis/v9"
)

const catalogTTL = 30 * time.Second

type deps struct {
	db      *sql.DB
	rdb     *redis.Client
	catalog service.CatalogReader
	jwt     *auth.JWTManager
}

// buildHandler wires repositories and services. rdb may be nil.
func buildHandler(d deps) (*httpapi.Handler, *service.AuthService) {
	repo := storage.NewPostgresRepository(d.db)

	var board service.Leaderboard
	if d.rdb != nil {
		board = storage.NewRedisLeaderboard(d.rdb)
	}

	analytics := service.NewAnalyticsService(repo, board, d.catalog)
	authSvc := service.NewAuthService(repo, d.jwt)
	return httpapi.NewHandler(analytics, authSvc, d.jwt.RequireRole(auth.RoleAdmin)), authSvc
}

func main() {
	settings := config.Load("8083")
	logging.Init(logging.Config{Level: settings.LogLevel, Format: settings.LogFormat, Service: "analytics-svc"})
	settings.WarnInsecureDefaults()

	db := config.MustInitPostgres()
	defer db.Close()
	if err := storage.NewPostgresRepository(db).EnsureSchema(); err != nil {
		logging.Fatal().Err(err).Msg("failed to ensure schema")
	}

	rdb := config.InitRedis()
	if rdb != nil {
		defer rdb.Close()
	} else {
		logging.Warn().Msg("redis unavailable, leaderboards will be computed from postgres")
	}

	jwtManager, err := auth.NewJWTManager(settings.JWTSecret, settings.TokenTTL)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to init jwt")
	}

	catalog := storage.NewCatalogClient(settings.FoodSvcURL, nil, catalogTTL)
	handler, authSvc := buildHandler(deps{db: db, rdb: rdb, catalog: catalog, jwt: jwtManager})

	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authSvc.EnsureDefaultAdmin(bootCtx, settings.AdminUsername, settings.AdminPassword); err != nil {
		logging.Error().Err(err).Msg("failed to ensure default admin")
	}
	cancelBoot()

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
