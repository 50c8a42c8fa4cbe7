package service

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"ginraidee/food-svc/internal/domain"
	"ginraidee/logging"
	"ginraidee/metrics"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var ErrFoodNotFound = domain.ErrFoodNotFound

const (
	DefaultPageLimit = 12
	MaxPageLimit     = 100
	dayLayout        = "2006-01-02"
)

var priceRanges = []domain.PriceRange{
	{Key: "cheap", Label: "ประหยัด (0-50 บาท)", Min: 0, Max: 50},
	{Key: "medium", Label: "ปานกลาง (50-150 บาท)", Min: 50, Max: 150},
	{Key: "expensive", Label: "พรีเมียม (150+ บาท)", Min: 150, Max: 9999},
}

type FoodService struct {
	catalog  CatalogRepository
	feedback FeedbackRepository
	dislikes DislikeCache
	picker   *Picker
	qr       QRGenerator
	now      func() time.Time
}

// NewFoodService wires the read side of the catalog. feedback, dislikes and
// qr may be nil; Random then only honours the request's own exclusions.
func NewFoodService(catalog CatalogRepository, feedback FeedbackRepository, dislikes DislikeCache, picker *Picker, qr QRGenerator) *FoodService {
	if picker == nil {
		picker = NewPicker()
	}
	return &FoodService{
		catalog:  catalog,
		feedback: feedback,
		dislikes: dislikes,
		picker:   picker,
		qr:       qr,
		now:      time.Now,
	}
}

// WithClock replaces time.Now; used by tests that depend on "today".
func (s *FoodService) WithClock(now func() time.Time) *FoodService {
	s.now = now
	return s
}

func (s *FoodService) List(q domain.ListQuery) domain.ListResult {
	items := FilterCandidates(s.catalog.All(), q.Filter)
	items = filterText(items, q.Search, q.Tags)
	sortItems(items, q.Sort)

	limit := q.Limit
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}

	total := len(items)
	start := min((page-1)*limit, total)
	end := min(start+limit, total)

	return domain.ListResult{
		Items: items[start:end],
		Pagination: domain.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}
}

func filterText(items []domain.MenuItem, search string, tags []string) []domain.MenuItem {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" && len(tags) == 0 {
		return items
	}

	out := items[:0]
	for _, item := range items {
		if search != "" &&
			!strings.Contains(strings.ToLower(item.Name), search) &&
			!strings.Contains(strings.ToLower(item.NameEn), search) &&
			!strings.Contains(strings.ToLower(item.Description), search) {
			continue
		}
		if len(tags) > 0 && !slices.ContainsFunc(item.Tags, func(t string) bool {
			return slices.Contains(tags, t)
		}) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func sortItems(items []domain.MenuItem, order domain.SortOrder) {
	switch order {
	case domain.SortPriceLow:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price < items[j].Price })
	case domain.SortPriceHigh:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price > items[j].Price })
	case domain.SortRating:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Rating > items[j].Rating })
	default:
		// A Collator is not safe for concurrent use, so build one per call.
		c := collate.New(language.Thai)
		sort.SliceStable(items, func(i, j int) bool {
			return c.CompareString(items[i].Name, items[j].Name) < 0
		})
	}
}

func (s *FoodService) Get(id int) (domain.MenuItem, error) {
	item, ok := s.catalog.Get(id)
	if !ok {
		return domain.MenuItem{}, ErrFoodNotFound
	}
	return item, nil
}

func (s *FoodService) Catalog() []domain.MenuItem {
	return s.catalog.All()
}

// Random filters the catalog and picks one candidate. When userID is set the
// user's dislikes from today are excluded on top of spec.Exclude.
func (s *FoodService) Random(ctx context.Context, spec domain.FilterSpec, userID string) (domain.MenuItem, error) {
	if userID != "" && userID != domain.AnonymousUser {
		spec.Exclude = append(slices.Clone(spec.Exclude), s.dislikedToday(ctx, userID)...)
	}

	item, err := s.picker.Pick(FilterCandidates(s.catalog.All(), spec))
	if err != nil {
		metrics.SpinsTotal.WithLabelValues("no_candidates").Inc()
		return domain.MenuItem{}, err
	}
	metrics.SpinsTotal.WithLabelValues("picked").Inc()
	return item, nil
}

func (s *FoodService) dislikedToday(ctx context.Context, userID string) []int {
	now := s.now()
	if s.dislikes != nil {
		ids, err := s.dislikes.Dislikes(ctx, userID, now.Format(dayLayout))
		if err == nil {
			return ids
		}
		logging.Ctx(ctx).Warn().Err(err).Str("user_id", userID).Msg("dislike cache read failed")
		metrics.CacheFallbacks.WithLabelValues("dislikes").Inc()
	}
	if s.feedback == nil {
		return nil
	}
	ids, err := s.feedback.DislikedSince(ctx, userID, startOfDay(now))
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("user_id", userID).Msg("dislike lookup failed, not excluding")
		return nil
	}
	return ids
}

func (s *FoodService) Categories() []domain.CategoryInfo {
	out := make([]domain.CategoryInfo, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		out = append(out, domain.CategoryInfo{ID: c, Name: c.DisplayName()})
	}
	return out
}

func (s *FoodService) PriceRanges() domain.PriceRanges {
	result := domain.PriceRanges{Ranges: slices.Clone(priceRanges)}
	for i, item := range s.catalog.All() {
		if i == 0 || item.Price < result.Stats.Min {
			result.Stats.Min = item.Price
		}
		if i == 0 || item.Price > result.Stats.Max {
			result.Stats.Max = item.Price
		}
	}
	return result
}

func (s *FoodService) Stats(ctx context.Context, id int) (domain.FoodStats, error) {
	if _, ok := s.catalog.Get(id); !ok {
		return domain.FoodStats{}, ErrFoodNotFound
	}
	now := s.now()
	stats := domain.FoodStats{FoodID: id, Date: now.Format(dayLayout)}
	if s.feedback == nil {
		return stats, nil
	}
	likes, dislikes, err := s.feedback.FeedbackCountsSince(ctx, id, startOfDay(now))
	if err != nil {
		return stats, fmt.Errorf("count feedback: %w", err)
	}
	stats.Likes, stats.Dislikes = likes, dislikes
	return stats, nil
}

func (s *FoodService) QRCode(id int) ([]byte, error) {
	if _, ok := s.catalog.Get(id); !ok {
		return nil, ErrFoodNotFound
	}
	if s.qr == nil {
		return nil, fmt.Errorf("qr generator not configured")
	}
	return s.qr.Generate(id)
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
