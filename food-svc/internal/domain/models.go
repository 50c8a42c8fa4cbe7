package domain

import (
	"errors"
	"slices"
	"time"
)

var (
	ErrFoodNotFound = errors.New("food not found")
	ErrUserNotFound = errors.New("user not found")

	ErrInvalidCategory = errors.New("unknown category")
)

type Category string

const (
	CategoryThai     Category = "thai"
	CategoryJapanese Category = "japanese"
	CategoryKorean   Category = "korean"
	CategoryWestern  Category = "western"
	CategoryFastfood Category = "fastfood"
	CategoryDessert  Category = "dessert"
)

// Categories lists the fixed enumeration in display order.
var Categories = []Category{
	CategoryThai,
	CategoryJapanese,
	CategoryKorean,
	CategoryWestern,
	CategoryFastfood,
	CategoryDessert,
}

var categoryNames = map[Category]string{
	CategoryThai:     "อาหารไทย",
	CategoryJapanese: "อาหารญี่ปุ่น",
	CategoryKorean:   "อาหารเกาหลี",
	CategoryWestern:  "อาหารตะวันตก",
	CategoryFastfood: "ฟาสต์ฟู้ด",
	CategoryDessert:  "ของหวาน",
}

func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

func (c Category) DisplayName() string {
	return categoryNames[c]
}

type CategoryInfo struct {
	ID   Category `json:"id"`
	Name string   `json:"name"`
}

type MenuItem struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	NameEn       string   `json:"nameEn"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Category     Category `json:"category"`
	CategoryName string   `json:"categoryName"`
	Image        string   `json:"image"`
	Tags         []string `json:"tags"`
	Rating       float64  `json:"rating"`
}

// Clone returns a copy that does not share the tag slice.
func (m MenuItem) Clone() MenuItem {
	m.Tags = slices.Clone(m.Tags)
	return m
}

// MenuPatch carries a partial admin update; nil fields are left unchanged.
type MenuPatch struct {
	Name         *string
	NameEn       *string
	Description  *string
	Price        *float64
	Category     *Category
	CategoryName *string
	Image        *string
	Tags         *[]string
	Rating       *float64
}

func (p MenuPatch) Apply(item MenuItem) MenuItem {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.NameEn != nil {
		item.NameEn = *p.NameEn
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	if p.Category != nil {
		item.Category = *p.Category
		item.CategoryName = p.Category.DisplayName()
	}
	if p.CategoryName != nil {
		item.CategoryName = *p.CategoryName
	}
	if p.Image != nil {
		item.Image = *p.Image
	}
	if p.Tags != nil {
		item.Tags = slices.Clone(*p.Tags)
	}
	if p.Rating != nil {
		item.Rating = *p.Rating
	}
	return item
}

// FilterSpec is built per request and never persisted. Nil bounds and an
// empty category list mean no restriction.
type FilterSpec struct {
	Categories []Category
	MinPrice   *float64
	MaxPrice   *float64
	Exclude    []int
}

type SortOrder string

const (
	SortName      SortOrder = "name"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortRating    SortOrder = "rating"
)

type ListQuery struct {
	Filter FilterSpec
	Search string
	Tags   []string
	Sort   SortOrder
	Page   int
	Limit  int
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type ListResult struct {
	Items      []MenuItem
	Pagination Pagination
}

type PriceRange struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

type PriceStats struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type PriceRanges struct {
	Ranges []PriceRange `json:"ranges"`
	Stats  PriceStats   `json:"stats"`
}

type FeedbackAction string

const (
	ActionLike    FeedbackAction = "like"
	ActionDislike FeedbackAction = "dislike"
)

func (a FeedbackAction) Valid() bool {
	return a == ActionLike || a == ActionDislike
}

const AnonymousUser = "anonymous"

type FeedbackRecord struct {
	ID        int64          `json:"id"`
	UserID    string         `json:"userId"`
	FoodID    int            `json:"foodId"`
	Action    FeedbackAction `json:"action"`
	CreatedAt time.Time      `json:"createdAt"`
}

type SelectionRecord struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"userId"`
	FoodID     int       `json:"foodId"`
	SelectedAt time.Time `json:"selectedAt"`
}

type FoodStats struct {
	FoodID   int    `json:"foodId"`
	Date     string `json:"date"`
	Likes    int    `json:"likes"`
	Dislikes int    `json:"dislikes"`
}

type User struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	LastVisit  time.Time `json:"lastVisit"`
	VisitCount int       `json:"visitCount"`
}

type PageView struct {
	UserID   string    `json:"userId"`
	Page     string    `json:"page"`
	ViewedAt time.Time `json:"viewedAt"`
}

type HistoryEntry struct {
	SelectionRecord
	Food *MenuItem `json:"food,omitempty"`
}

const (
	EventSelection = "selection"
	EventFeedback  = "feedback"
)

// Event is the Kafka payload consumed by agg-svc.
type Event struct {
	Type      string         `json:"type"`
	UserID    string         `json:"userId"`
	FoodID    int            `json:"foodId"`
	Action    FeedbackAction `json:"action,omitempty"`
	Category  Category       `json:"category,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
