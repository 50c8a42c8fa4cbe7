package service

import (
	"ginraidee/food-svc/internal/domain"
	"ginraidee/logging"
)

var ErrInvalidCategory = domain.ErrInvalidCategory

// MenuService is the admin write path for the in-memory catalog.
type MenuService struct {
	catalog CatalogRepository
}

func NewMenuService(catalog CatalogRepository) *MenuService {
	return &MenuService{catalog: catalog}
}

func (s *MenuService) List() []domain.MenuItem {
	return s.catalog.All()
}

func (s *MenuService) Create(item domain.MenuItem) (domain.MenuItem, error) {
	if !item.Category.Valid() {
		return domain.MenuItem{}, ErrInvalidCategory
	}
	if item.CategoryName == "" {
		item.CategoryName = item.Category.DisplayName()
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}
	created, err := s.catalog.Insert(item)
	if err != nil {
		return domain.MenuItem{}, err
	}
	logging.Info().Int("food_id", created.ID).Str("name", created.Name).Msg("menu created")
	return created, nil
}

func (s *MenuService) Update(id int, patch domain.MenuPatch) (domain.MenuItem, error) {
	if patch.Category != nil && !patch.Category.Valid() {
		return domain.MenuItem{}, ErrInvalidCategory
	}
	updated, err := s.catalog.Update(id, patch)
	if err != nil {
		return domain.MenuItem{}, err
	}
	logging.Info().Int("food_id", id).Msg("menu updated")
	return updated, nil
}

func (s *MenuService) Delete(id int) (domain.MenuItem, error) {
	deleted, err := s.catalog.Delete(id)
	if err != nil {
		return domain.MenuItem{}, err
	}
	logging.Info().Int("food_id", id).Msg("menu deleted")
	return deleted, nil
}
