package httpapi

import "ginraidee/food-svc/internal/domain"

type FeedbackRequest struct {
	UserID   string `json:"userId" validate:"omitempty,max=64"`
	FoodID   int    `json:"foodId" validate:"required,gt=0"`
	Feedback string `json:"feedback" validate:"required,oneof=like dislike"`
}

type ItemFeedbackRequest struct {
	UserID string `json:"userId" validate:"omitempty,max=64"`
	Action string `json:"action" validate:"required,oneof=like dislike"`
}

type SelectRequest struct {
	UserID string `json:"userId" validate:"omitempty,max=64"`
	FoodID int    `json:"foodId" validate:"required,gt=0"`
}

type InitUserRequest struct {
	UserID string `json:"userId" validate:"omitempty,max=64"`
}

type PageViewRequest struct {
	UserID string `json:"userId" validate:"omitempty,max=64"`
	Page   string `json:"page" validate:"required,max=255"`
}

type CreateMenuRequest struct {
	Name         string   `json:"name" validate:"required,max=200"`
	NameEn       string   `json:"nameEn" validate:"max=200"`
	Description  string   `json:"description" validate:"max=2000"`
	Price        float64  `json:"price" validate:"gte=0"`
	Category     string   `json:"category" validate:"required,oneof=thai japanese korean western fastfood dessert"`
	CategoryName string   `json:"categoryName" validate:"max=100"`
	Image        string   `json:"image" validate:"max=500"`
	Tags         []string `json:"tags" validate:"max=20,dive,max=50"`
	Rating       float64  `json:"rating" validate:"gte=0,lte=5"`
}

func (req CreateMenuRequest) toItem() domain.MenuItem {
	return domain.MenuItem{
		Name:         req.Name,
		NameEn:       req.NameEn,
		Description:  req.Description,
		Price:        req.Price,
		Category:     domain.Category(req.Category),
		CategoryName: req.CategoryName,
		Image:        req.Image,
		Tags:         req.Tags,
		Rating:       req.Rating,
	}
}

// UpdateMenuRequest is a partial update; absent fields keep their value.
type UpdateMenuRequest struct {
	Name         *string   `json:"name" validate:"omitempty,min=1,max=200"`
	NameEn       *string   `json:"nameEn" validate:"omitempty,max=200"`
	Description  *string   `json:"description" validate:"omitempty,max=2000"`
	Price        *float64  `json:"price" validate:"omitempty,gte=0"`
	Category     *string   `json:"category" validate:"omitempty,oneof=thai japanese korean western fastfood dessert"`
	CategoryName *string   `json:"categoryName" validate:"omitempty,max=100"`
	Image        *string   `json:"image" validate:"omitempty,max=500"`
	Tags         *[]string `json:"tags" validate:"omitempty,max=20,dive,max=50"`
	Rating       *float64  `json:"rating" validate:"omitempty,gte=0,lte=5"`
}

func (req UpdateMenuRequest) toPatch() domain.MenuPatch {
	patch := domain.MenuPatch{
		Name:         req.Name,
		NameEn:       req.NameEn,
		Description:  req.Description,
		Price:        req.Price,
		CategoryName: req.CategoryName,
		Image:        req.Image,
		Tags:         req.Tags,
		Rating:       req.Rating,
	}
	if req.Category != nil {
		c := domain.Category(*req.Category)
		patch.Category = &c
	}
	return patch
}
