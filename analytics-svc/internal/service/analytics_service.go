package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"ginraidee/analytics-svc/internal/domain"
	"ginraidee/leaderboard"
	"ginraidee/logging"
	"ginraidee/metrics"
)

const (
	topLimit            = 10
	categoryMemberLimit = 100
	userSelectionsLimit = 50
)

type AnalyticsService struct {
	repo    AnalyticsRepository
	board   Leaderboard
	catalog CatalogReader
	now     func() time.Time
}

// NewAnalyticsService builds the dashboard reader. board may be nil, in which
// case every leaderboard read goes straight to Postgres.
func NewAnalyticsService(repo AnalyticsRepository, board Leaderboard, catalog CatalogReader) *AnalyticsService {
	return &AnalyticsService{
		repo:    repo,
		board:   board,
		catalog: catalog,
		now:     time.Now,
	}
}

func (s *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	s.now = now
	return s
}

func (s *AnalyticsService) Dashboard(ctx context.Context) (domain.DashboardStats, error) {
	return s.repo.Dashboard(ctx)
}

func (s *AnalyticsService) PopularMenus(ctx context.Context, days, limit int) ([]domain.RankedFood, error) {
	counts, err := s.repo.PopularFoods(ctx, days, limit)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, counts), nil
}

func (s *AnalyticsService) TopToday(ctx context.Context) ([]domain.RankedFood, error) {
	counts, err := s.top(ctx, "top_today", leaderboard.SelectionsDaily(leaderboard.Day(s.now())), func() ([]domain.FoodCount, error) {
		return s.repo.TopSelectedToday(ctx, topLimit)
	})
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, counts), nil
}

func (s *AnalyticsService) TopAllTime(ctx context.Context) ([]domain.RankedFood, error) {
	counts, err := s.top(ctx, "top_alltime", leaderboard.SelectionsAllTime, func() ([]domain.FoodCount, error) {
		return s.repo.TopSelectedAllTime(ctx, topLimit)
	})
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, counts), nil
}

func (s *AnalyticsService) FeedbackSummary(ctx context.Context) (domain.FeedbackSummary, error) {
	var summary domain.FeedbackSummary
	likes, dislikes, err := s.repo.FeedbackTotals(ctx)
	if err != nil {
		return summary, err
	}
	summary.Likes, summary.Dislikes = likes, dislikes

	for _, side := range []struct {
		action string
		dst    *[]domain.RankedFood
	}{
		{"like", &summary.TopLiked},
		{"dislike", &summary.TopDisliked},
	} {
		counts, err := s.top(ctx, "top_"+side.action, leaderboard.Feedback(side.action), func() ([]domain.FoodCount, error) {
			return s.repo.TopFeedback(ctx, side.action, topLimit)
		})
		if err != nil {
			return summary, err
		}
		*side.dst = s.enrich(ctx, counts)
	}
	return summary, nil
}

// top reads key from Redis and falls back to fromDB when Redis is absent,
// failing, or has nothing yet.
func (s *AnalyticsService) top(ctx context.Context, read, key string, fromDB func() ([]domain.FoodCount, error)) ([]domain.FoodCount, error) {
	if s.board != nil {
		counts, err := s.board.Top(ctx, key, topLimit)
		if err == nil && len(counts) > 0 {
			return counts, nil
		}
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("leaderboard read failed, using postgres")
		}
	}
	metrics.CacheFallbacks.WithLabelValues(read).Inc()
	return fromDB()
}

func (s *AnalyticsService) CategoryStats(ctx context.Context) ([]domain.CategoryStat, error) {
	names := map[string]string{}
	items, catalogErr := s.catalog.Catalog(ctx)
	for _, item := range items {
		if _, ok := names[item.Category]; !ok {
			names[item.Category] = item.CategoryName
		}
	}

	totals := map[string]int{}
	if s.board != nil {
		members, err := s.board.TopMembers(ctx, leaderboard.Categories, categoryMemberLimit)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Msg("category leaderboard read failed, using postgres")
		}
		for category, score := range members {
			totals[category] = int(score)
		}
	}

	if len(totals) == 0 {
		metrics.CacheFallbacks.WithLabelValues("category_stats").Inc()
		if catalogErr != nil {
			return nil, catalogErr
		}
		counts, err := s.repo.SelectionCounts(ctx)
		if err != nil {
			return nil, err
		}
		byID := make(map[int]domain.MenuItem, len(items))
		for _, item := range items {
			byID[item.ID] = item
		}
		for _, c := range counts {
			if item, ok := byID[c.FoodID]; ok {
				totals[item.Category] += int(c.Score)
			}
		}
	}

	stats := make([]domain.CategoryStat, 0, len(totals))
	for category, count := range totals {
		name := names[category]
		if name == "" {
			name = category
		}
		stats = append(stats, domain.CategoryStat{Category: category, CategoryName: name, Count: count})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].Category < stats[j].Category
	})
	return stats, nil
}

func (s *AnalyticsService) RecentUsers(ctx context.Context, limit int) ([]domain.User, error) {
	return s.repo.RecentUsers(ctx, limit)
}

func (s *AnalyticsService) Users(ctx context.Context, page, limit int) (domain.UserPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	users, total, err := s.repo.ListUsers(ctx, limit, (page-1)*limit)
	if err != nil {
		return domain.UserPage{}, err
	}
	return domain.UserPage{
		Users: users,
		Pagination: domain.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: (total + limit - 1) / limit,
		},
	}, nil
}

func (s *AnalyticsService) UserDetail(ctx context.Context, id string) (*domain.UserDetail, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	selections, err := s.repo.UserSelections(ctx, id, userSelectionsLimit)
	if err != nil {
		return nil, err
	}

	lookup := s.foodLookup(ctx)
	for i := range selections {
		selections[i].Food = lookup(selections[i].FoodID)
	}
	return &domain.UserDetail{User: *user, Selections: selections}, nil
}

func (s *AnalyticsService) DeleteUser(ctx context.Context, id string) error {
	err := s.repo.DeleteUser(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		logging.Ctx(ctx).Error().Err(err).Str("user_id", id).Msg("delete user failed")
	}
	return err
}

func (s *AnalyticsService) enrich(ctx context.Context, counts []domain.FoodCount) []domain.RankedFood {
	lookup := s.foodLookup(ctx)
	out := make([]domain.RankedFood, 0, len(counts))
	for _, c := range counts {
		out = append(out, domain.RankedFood{FoodID: c.FoodID, Score: c.Score, Food: lookup(c.FoodID)})
	}
	return out
}

// foodLookup resolves ids against the catalog. When the catalog cannot be
// fetched every id resolves to UnknownFood.
func (s *AnalyticsService) foodLookup(ctx context.Context) func(int) *domain.MenuItem {
	items, err := s.catalog.Catalog(ctx)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("catalog unavailable, foods shown as unknown")
	}
	byID := make(map[int]domain.MenuItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}
	return func(id int) *domain.MenuItem {
		if item, ok := byID[id]; ok {
			return &item
		}
		return domain.UnknownFood(id)
	}
}
