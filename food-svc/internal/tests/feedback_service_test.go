package tests

import (
	"context"
	"errors"
	"testing"

	"ginraidee/food-svc/internal/domain"
	"ginraidee/food-svc/internal/mocks"
	"ginraidee/food-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRecordFeedback(t *testing.T) {
	tests := []struct {
		name         string
		rec          domain.FeedbackRecord
		mockSetup    func(repo *mocks.FeedbackRepository, cache *mocks.DislikeCache, pub *mocks.EventPublisher)
		expectedErr  error
		expectedUser string
	}{
		{
			name: "like is stored and published",
			rec:  domain.FeedbackRecord{UserID: "user-1", FoodID: 1, Action: domain.ActionLike},
			mockSetup: func(repo *mocks.FeedbackRepository, cache *mocks.DislikeCache, pub *mocks.EventPublisher) {
				repo.On("InsertFeedback", mock.Anything, mock.AnythingOfType("*domain.FeedbackRecord")).Return(nil).Once()
				pub.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
					return e.Type == domain.EventFeedback && e.Action == domain.ActionLike && e.Category == domain.CategoryThai && e.Timestamp.Equal(fixedNow)
				})).Return(nil).Once()
			},
			expectedUser: "user-1",
		},
		{
			name: "dislike also lands in today's cache",
			rec:  domain.FeedbackRecord{UserID: "user-1", FoodID: 3, Action: domain.ActionDislike},
			mockSetup: func(repo *mocks.FeedbackRepository, cache *mocks.DislikeCache, pub *mocks.EventPublisher) {
				repo.On("InsertFeedback", mock.Anything, mock.Anything).Return(nil).Once()
				cache.On("AddDislike", mock.Anything, "user-1", "2026-03-14", 3).Return(nil).Once()
				pub.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectedUser: "user-1",
		},
		{
			name: "anonymous dislike skips the cache",
			rec:  domain.FeedbackRecord{FoodID: 3, Action: domain.ActionDislike},
			mockSetup: func(repo *mocks.FeedbackRepository, cache *mocks.DislikeCache, pub *mocks.EventPublisher) {
				repo.On("InsertFeedback", mock.Anything, mock.MatchedBy(func(r *domain.FeedbackRecord) bool {
					return r.UserID == domain.AnonymousUser
				})).Return(nil).Once()
				pub.On("Publish", mock.Anything, mock.Anything).Return(nil).Once()
			},
			expectedUser: domain.AnonymousUser,
		},
		{
			name: "cache and publish failures are swallowed",
			rec:  domain.FeedbackRecord{UserID: "user-1", FoodID: 2, Action: domain.ActionDislike},
			mockSetup: func(repo *mocks.FeedbackRepository, cache *mocks.DislikeCache, pub *mocks.EventPublisher) {
				repo.On("InsertFeedback", mock.Anything, mock.Anything).Return(nil).Once()
				cache.On("AddDislike", mock.Anything, "user-1", "2026-03-14", 2).Return(errors.New("redis down")).Once()
				pub.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
			},
			expectedUser: "user-1",
		},
		{
			name:        "invalid action",
			rec:         domain.FeedbackRecord{UserID: "user-1", FoodID: 1, Action: "meh"},
			mockSetup:   func(repo *mocks.FeedbackRepository, cache *mocks.DislikeCache, pub *mocks.EventPublisher) {},
			expectedErr: service.ErrInvalidFeedback,
		},
		{
			name:        "unknown food",
			rec:         domain.FeedbackRecord{UserID: "user-1", FoodID: 404, Action: domain.ActionLike},
			mockSetup:   func(repo *mocks.FeedbackRepository, cache *mocks.DislikeCache, pub *mocks.EventPublisher) {},
			expectedErr: service.ErrFoodNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewFeedbackRepository(t)
			cache := mocks.NewDislikeCache(t)
			pub := mocks.NewEventPublisher(t)
			testCase.mockSetup(repo, cache, pub)

			svc := service.NewFeedbackService(newCatalog(t, scenarioCatalog()), repo, cache, pub).WithClock(fixedClock)
			rec := testCase.rec

			err := svc.RecordFeedback(context.Background(), &rec)

			if testCase.expectedErr != nil {
				assert.ErrorIs(t, err, testCase.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expectedUser, rec.UserID)
		})
	}
}

func TestRecordFeedbackReportsWriteFailure(t *testing.T) {
	repo := mocks.NewFeedbackRepository(t)
	pub := mocks.NewEventPublisher(t)
	dbErr := errors.New("connection refused")
	repo.On("InsertFeedback", mock.Anything, mock.Anything).Return(dbErr).Once()

	svc := service.NewFeedbackService(newCatalog(t, scenarioCatalog()), repo, nil, pub)

	err := svc.RecordFeedback(context.Background(), &domain.FeedbackRecord{UserID: "u", FoodID: 1, Action: domain.ActionLike})
	assert.ErrorIs(t, err, dbErr)
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestRecordFeedbackWithoutPublisher(t *testing.T) {
	repo := mocks.NewFeedbackRepository(t)
	repo.On("InsertFeedback", mock.Anything, mock.Anything).Return(nil).Once()

	svc := service.NewFeedbackService(newCatalog(t, scenarioCatalog()), repo, nil, nil)

	assert.NoError(t, svc.RecordFeedback(context.Background(), &domain.FeedbackRecord{UserID: "u", FoodID: 2, Action: domain.ActionDislike}))
}

func TestRecordSelection(t *testing.T) {
	repo := mocks.NewFeedbackRepository(t)
	pub := mocks.NewEventPublisher(t)
	repo.On("InsertSelection", mock.Anything, mock.MatchedBy(func(r *domain.SelectionRecord) bool {
		return r.UserID == domain.AnonymousUser && r.FoodID == 3
	})).Return(nil).Once()
	pub.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.Event) bool {
		return e.Type == domain.EventSelection && e.FoodID == 3 && e.Category == domain.CategoryJapanese && e.Action == ""
	})).Return(nil).Once()

	svc := service.NewFeedbackService(newCatalog(t, scenarioCatalog()), repo, nil, pub).WithClock(fixedClock)

	rec := &domain.SelectionRecord{FoodID: 3}
	require.NoError(t, svc.RecordSelection(context.Background(), rec))
	assert.Equal(t, domain.AnonymousUser, rec.UserID)
}

func TestRecordSelectionErrors(t *testing.T) {
	repo := mocks.NewFeedbackRepository(t)
	svc := service.NewFeedbackService(newCatalog(t, scenarioCatalog()), repo, nil, nil)

	err := svc.RecordSelection(context.Background(), &domain.SelectionRecord{UserID: "u", FoodID: 50})
	assert.ErrorIs(t, err, service.ErrFoodNotFound)

	dbErr := errors.New("disk full")
	repo.On("InsertSelection", mock.Anything, mock.Anything).Return(dbErr).Once()
	err = svc.RecordSelection(context.Background(), &domain.SelectionRecord{UserID: "u", FoodID: 1})
	assert.ErrorIs(t, err, dbErr)
}
