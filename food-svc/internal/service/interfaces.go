package service

import (
	"context"
	"time"

	"ginraidee/food-svc/internal/domain"
)

type CatalogRepository interface {
	All() []domain.MenuItem
	Get(id int) (domain.MenuItem, bool)
	Insert(item domain.MenuItem) (domain.MenuItem, error)
	Update(id int, patch domain.MenuPatch) (domain.MenuItem, error)
	Delete(id int) (domain.MenuItem, error)
}

type FeedbackRepository interface {
	InsertFeedback(ctx context.Context, rec *domain.FeedbackRecord) error
	InsertSelection(ctx context.Context, rec *domain.SelectionRecord) error
	DislikedSince(ctx context.Context, userID string, since time.Time) ([]int, error)
	FeedbackCountsSince(ctx context.Context, foodID int, since time.Time) (likes, dislikes int, err error)
}

type UserRepository interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) error
	TouchUser(ctx context.Context, id string) error
	InsertPageView(ctx context.Context, pv *domain.PageView) error
	ListSelections(ctx context.Context, userID string, limit int) ([]domain.SelectionRecord, error)
}

// DislikeCache remembers which items a user disliked on a given day.
type DislikeCache interface {
	AddDislike(ctx context.Context, userID, day string, foodID int) error
	Dislikes(ctx context.Context, userID, day string) ([]int, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

type FoodServiceInterface interface {
	List(q domain.ListQuery) domain.ListResult
	Get(id int) (domain.MenuItem, error)
	Catalog() []domain.MenuItem
	Random(ctx context.Context, spec domain.FilterSpec, userID string) (domain.MenuItem, error)
	Categories() []domain.CategoryInfo
	PriceRanges() domain.PriceRanges
	Stats(ctx context.Context, id int) (domain.FoodStats, error)
	QRCode(id int) ([]byte, error)
}

type FeedbackServiceInterface interface {
	RecordFeedback(ctx context.Context, rec *domain.FeedbackRecord) error
	RecordSelection(ctx context.Context, rec *domain.SelectionRecord) error
}

type UserServiceInterface interface {
	Init(ctx context.Context, userID string) (*domain.User, bool, error)
	History(ctx context.Context, userID string, limit int) ([]domain.HistoryEntry, error)
	PageView(ctx context.Context, pv *domain.PageView) error
}

type MenuServiceInterface interface {
	List() []domain.MenuItem
	Create(item domain.MenuItem) (domain.MenuItem, error)
	Update(id int, patch domain.MenuPatch) (domain.MenuItem, error)
	Delete(id int) (domain.MenuItem, error)
}

var (
	_ FoodServiceInterface     = (*FoodService)(nil)
	_ FeedbackServiceInterface = (*FeedbackService)(nil)
	_ UserServiceInterface     = (*UserService)(nil)
	_ MenuServiceInterface     = (*MenuService)(nil)
)
