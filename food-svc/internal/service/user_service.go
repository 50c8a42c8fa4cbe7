package service

import (
	"context"
	"errors"
	"fmt"

	"ginraidee/food-svc/internal/domain"

	"github.com/google/uuid"
)

const DefaultHistoryLimit = 20

type UserService struct {
	repository UserRepository
	catalog    CatalogRepository
	newID      func() string
}

func NewUserService(repository UserRepository, catalog CatalogRepository) *UserService {
	return &UserService{repository: repository, catalog: catalog, newID: uuid.NewString}
}

// Init returns the known user (bumping its visit) or creates a fresh
// anonymous one. The bool reports whether a new user was created.
func (s *UserService) Init(ctx context.Context, userID string) (*domain.User, bool, error) {
	if userID != "" && userID != domain.AnonymousUser {
		user, err := s.repository.GetUser(ctx, userID)
		switch {
		case err == nil:
			if err := s.repository.TouchUser(ctx, userID); err != nil {
				return nil, false, fmt.Errorf("touch user: %w", err)
			}
			user.VisitCount++
			return user, false, nil
		case !errors.Is(err, domain.ErrUserNotFound):
			return nil, false, fmt.Errorf("get user: %w", err)
		}
	}

	user := &domain.User{ID: s.newID()}
	if err := s.repository.CreateUser(ctx, user); err != nil {
		return nil, false, fmt.Errorf("create user: %w", err)
	}
	return user, true, nil
}

func (s *UserService) History(ctx context.Context, userID string, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 || limit > MaxPageLimit {
		limit = DefaultHistoryLimit
	}
	selections, err := s.repository.ListSelections(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	out := make([]domain.HistoryEntry, 0, len(selections))
	for _, sel := range selections {
		entry := domain.HistoryEntry{SelectionRecord: sel}
		if item, ok := s.catalog.Get(sel.FoodID); ok {
			entry.Food = &item
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *UserService) PageView(ctx context.Context, pv *domain.PageView) error {
	if pv.UserID == "" {
		pv.UserID = domain.AnonymousUser
	}
	return s.repository.InsertPageView(ctx, pv)
}
