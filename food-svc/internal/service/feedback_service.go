package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ginraidee/food-svc/internal/domain"
	"ginraidee/logging"
	"ginraidee/metrics"
)

var ErrInvalidFeedback = errors.New("feedback must be like or dislike")

// FeedbackService writes feedback and selection rows. The write itself is
// reported to the caller; the dislike cache and event publish are best-effort.
type FeedbackService struct {
	catalog    CatalogRepository
	repository FeedbackRepository
	dislikes   DislikeCache
	publisher  EventPublisher
	now        func() time.Time
}

func NewFeedbackService(catalog CatalogRepository, repository FeedbackRepository, dislikes DislikeCache, publisher EventPublisher) *FeedbackService {
	return &FeedbackService{
		catalog:    catalog,
		repository: repository,
		dislikes:   dislikes,
		publisher:  publisher,
		now:        time.Now,
	}
}

func (s *FeedbackService) WithClock(now func() time.Time) *FeedbackService {
	s.now = now
	return s
}

func (s *FeedbackService) RecordFeedback(ctx context.Context, rec *domain.FeedbackRecord) error {
	if !rec.Action.Valid() {
		return ErrInvalidFeedback
	}
	item, ok := s.catalog.Get(rec.FoodID)
	if !ok {
		return ErrFoodNotFound
	}
	if rec.UserID == "" {
		rec.UserID = domain.AnonymousUser
	}

	if err := s.repository.InsertFeedback(ctx, rec); err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	metrics.FeedbackTotal.WithLabelValues(string(rec.Action)).Inc()

	if rec.Action == domain.ActionDislike && rec.UserID != domain.AnonymousUser && s.dislikes != nil {
		if err := s.dislikes.AddDislike(ctx, rec.UserID, s.now().Format(dayLayout), rec.FoodID); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Str("user_id", rec.UserID).Int("food_id", rec.FoodID).Msg("dislike cache write failed")
		}
	}

	s.publish(ctx, domain.Event{
		Type:      domain.EventFeedback,
		UserID:    rec.UserID,
		FoodID:    rec.FoodID,
		Action:    rec.Action,
		Category:  item.Category,
		Timestamp: s.now(),
	})
	return nil
}

func (s *FeedbackService) RecordSelection(ctx context.Context, rec *domain.SelectionRecord) error {
	item, ok := s.catalog.Get(rec.FoodID)
	if !ok {
		return ErrFoodNotFound
	}
	if rec.UserID == "" {
		rec.UserID = domain.AnonymousUser
	}

	if err := s.repository.InsertSelection(ctx, rec); err != nil {
		return fmt.Errorf("insert selection: %w", err)
	}
	metrics.SelectionsTotal.Inc()

	s.publish(ctx, domain.Event{
		Type:      domain.EventSelection,
		UserID:    rec.UserID,
		FoodID:    rec.FoodID,
		Category:  item.Category,
		Timestamp: s.now(),
	})
	return nil
}

func (s *FeedbackService) publish(ctx context.Context, event domain.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("type", event.Type).Int("food_id", event.FoodID).Msg("event publish failed")
	}
}
