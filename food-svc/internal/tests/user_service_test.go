package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"ginraidee/food-svc/internal/domain"
	"ginraidee/food-svc/internal/mocks"
	"ginraidee/food-svc/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserServiceInit(t *testing.T) {
	tests := []struct {
		name        string
		userID      string
		mockSetup   func(repo *mocks.UserRepository)
		wantNew     bool
		wantVisits  int
		wantID      string
		expectedErr bool
	}{
		{
			name:   "returning user is touched",
			userID: "user-1",
			mockSetup: func(repo *mocks.UserRepository) {
				repo.On("GetUser", mock.Anything, "user-1").Return(&domain.User{ID: "user-1", VisitCount: 3}, nil).Once()
				repo.On("TouchUser", mock.Anything, "user-1").Return(nil).Once()
			},
			wantVisits: 4,
			wantID:     "user-1",
		},
		{
			name:   "unknown id gets a fresh user",
			userID: "stale-id",
			mockSetup: func(repo *mocks.UserRepository) {
				repo.On("GetUser", mock.Anything, "stale-id").Return(nil, domain.ErrUserNotFound).Once()
				repo.On("CreateUser", mock.Anything, mock.Anything).Return(nil).Once()
			},
			wantNew: true,
		},
		{
			name:   "no id gets a fresh user",
			userID: "",
			mockSetup: func(repo *mocks.UserRepository) {
				repo.On("CreateUser", mock.Anything, mock.Anything).Return(nil).Once()
			},
			wantNew: true,
		},
		{
			name:   "lookup failure is reported",
			userID: "user-1",
			mockSetup: func(repo *mocks.UserRepository) {
				repo.On("GetUser", mock.Anything, "user-1").Return(nil, errors.New("timeout")).Once()
			},
			expectedErr: true,
		},
		{
			name:   "create failure is reported",
			userID: "",
			mockSetup: func(repo *mocks.UserRepository) {
				repo.On("CreateUser", mock.Anything, mock.Anything).Return(errors.New("unique violation")).Once()
			},
			expectedErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewUserRepository(t)
			testCase.mockSetup(repo)
			svc := service.NewUserService(repo, newCatalog(t, scenarioCatalog()))

			user, isNew, err := svc.Init(context.Background(), testCase.userID)

			if testCase.expectedErr {
				assert.Error(t, err)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.wantNew, isNew)
			if testCase.wantNew {
				_, parseErr := uuid.Parse(user.ID)
				assert.NoError(t, parseErr)
				return
			}
			assert.Equal(t, testCase.wantID, user.ID)
			assert.Equal(t, testCase.wantVisits, user.VisitCount)
		})
	}
}

func TestUserServiceHistory(t *testing.T) {
	repo := mocks.NewUserRepository(t)
	at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	repo.On("ListSelections", mock.Anything, "user-1", service.DefaultHistoryLimit).Return([]domain.SelectionRecord{
		{ID: 9, UserID: "user-1", FoodID: 2, SelectedAt: at},
		{ID: 8, UserID: "user-1", FoodID: 77, SelectedAt: at.Add(-time.Hour)},
	}, nil).Once()

	svc := service.NewUserService(repo, newCatalog(t, scenarioCatalog()))

	history, err := svc.History(context.Background(), "user-1", 0)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.NotNil(t, history[0].Food)
	assert.Equal(t, "Tom Yum Goong", history[0].Food.Name)
	assert.Nil(t, history[1].Food, "deleted menus keep their history row")
}

func TestUserServiceHistoryLimit(t *testing.T) {
	repo := mocks.NewUserRepository(t)
	repo.On("ListSelections", mock.Anything, "user-1", 5).Return(nil, nil).Once()
	repo.On("ListSelections", mock.Anything, "user-1", service.DefaultHistoryLimit).Return(nil, nil).Once()

	svc := service.NewUserService(repo, newCatalog(t, scenarioCatalog()))

	history, err := svc.History(context.Background(), "user-1", 5)
	require.NoError(t, err)
	assert.Empty(t, history)

	_, err = svc.History(context.Background(), "user-1", 10000)
	require.NoError(t, err)
}

func TestUserServicePageView(t *testing.T) {
	repo := mocks.NewUserRepository(t)
	repo.On("InsertPageView", mock.Anything, mock.MatchedBy(func(pv *domain.PageView) bool {
		return pv.UserID == domain.AnonymousUser && pv.Page == "/spin"
	})).Return(nil).Once()

	svc := service.NewUserService(repo, newCatalog(t, scenarioCatalog()))

	assert.NoError(t, svc.PageView(context.Background(), &domain.PageView{Page: "/spin"}))
}
