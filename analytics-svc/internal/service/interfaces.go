package service

import (
	"context"

	"ginraidee/analytics-svc/internal/domain"
	"ginraidee/analytics-svc/internal/storage"
)

type AnalyticsRepository interface {
	Dashboard(ctx context.Context) (domain.DashboardStats, error)
	PopularFoods(ctx context.Context, days, limit int) ([]domain.FoodCount, error)
	SelectionCounts(ctx context.Context) ([]domain.FoodCount, error)
	TopSelectedToday(ctx context.Context, limit int) ([]domain.FoodCount, error)
	TopSelectedAllTime(ctx context.Context, limit int) ([]domain.FoodCount, error)
	FeedbackTotals(ctx context.Context) (likes, dislikes int, err error)
	TopFeedback(ctx context.Context, action string, limit int) ([]domain.FoodCount, error)
	RecentUsers(ctx context.Context, limit int) ([]domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, int, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UserSelections(ctx context.Context, id string, limit int) ([]domain.UserSelection, error)
	DeleteUser(ctx context.Context, id string) error
}

type AdminRepository interface {
	AdminByUsername(ctx context.Context, username string) (*domain.Admin, error)
	CountAdmins(ctx context.Context) (int, error)
	CreateAdmin(ctx context.Context, username, passwordHash string) error
}

// Leaderboard reads the sorted sets agg-svc maintains.
type Leaderboard interface {
	Top(ctx context.Context, key string, limit int) ([]domain.FoodCount, error)
	TopMembers(ctx context.Context, key string, limit int) (map[string]float64, error)
}

type CatalogReader interface {
	Catalog(ctx context.Context) ([]domain.MenuItem, error)
}

type AnalyticsInterface interface {
	Dashboard(ctx context.Context) (domain.DashboardStats, error)
	PopularMenus(ctx context.Context, days, limit int) ([]domain.RankedFood, error)
	CategoryStats(ctx context.Context) ([]domain.CategoryStat, error)
	TopToday(ctx context.Context) ([]domain.RankedFood, error)
	TopAllTime(ctx context.Context) ([]domain.RankedFood, error)
	FeedbackSummary(ctx context.Context) (domain.FeedbackSummary, error)
	RecentUsers(ctx context.Context, limit int) ([]domain.User, error)
	Users(ctx context.Context, page, limit int) (domain.UserPage, error)
	UserDetail(ctx context.Context, id string) (*domain.UserDetail, error)
	DeleteUser(ctx context.Context, id string) error
}

type AuthInterface interface {
	Login(ctx context.Context, username, password string) (string, error)
	EnsureDefaultAdmin(ctx context.Context, username, password string) error
}

var (
	_ AnalyticsRepository = (*storage.PostgresRepository)(nil)
	_ AdminRepository     = (*storage.PostgresRepository)(nil)
	_ Leaderboard         = (*storage.RedisLeaderboard)(nil)
	_ CatalogReader       = (*storage.CatalogClient)(nil)
	_ AnalyticsInterface  = (*AnalyticsService)(nil)
	_ AuthInterface       = (*AuthService)(nil)
)
