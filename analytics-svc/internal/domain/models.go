package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrUserNotFound       = errors.New("user not found")
)

// MenuItem is the slice of food-svc's catalog entry the dashboard shows.
type MenuItem struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	NameEn       string  `json:"nameEn,omitempty"`
	Price        float64 `json:"price,omitempty"`
	Category     string  `json:"category,omitempty"`
	CategoryName string  `json:"categoryName,omitempty"`
	Image        string  `json:"image,omitempty"`
}

// UnknownFood stands in for ids no longer present in the catalog.
func UnknownFood(id int) *MenuItem {
	return &MenuItem{ID: id, Name: "Unknown"}
}

type Admin struct {
	ID           int64
	Username     string
	PasswordHash string
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type DashboardStats struct {
	TotalUsers      int          `json:"totalUsers"`
	UsersToday      int          `json:"usersToday"`
	TotalSelections int          `json:"totalSelections"`
	SelectionsToday int          `json:"selectionsToday"`
	PageViewsToday  int          `json:"pageViewsToday"`
	UsersByDay      []DailyCount `json:"usersByDay"`
	SelectionsByDay []DailyCount `json:"selectionsByDay"`
}

// FoodCount is one row of a per-food aggregate, from Postgres or a Redis sorted set.
type FoodCount struct {
	FoodID int     `json:"foodId"`
	Score  float64 `json:"score"`
}

type RankedFood struct {
	FoodID int       `json:"foodId"`
	Score  float64   `json:"score"`
	Food   *MenuItem `json:"food"`
}

type CategoryStat struct {
	Category     string `json:"category"`
	CategoryName string `json:"categoryName"`
	Count        int    `json:"count"`
}

type FeedbackSummary struct {
	Likes       int          `json:"likes"`
	Dislikes    int          `json:"dislikes"`
	TopLiked    []RankedFood `json:"topLiked"`
	TopDisliked []RankedFood `json:"topDisliked"`
}

type User struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	LastVisit  time.Time `json:"lastVisit"`
	VisitCount int       `json:"visitCount"`
}

type UserSelection struct {
	FoodID     int       `json:"foodId"`
	SelectedAt time.Time `json:"selectedAt"`
	Food       *MenuItem `json:"food"`
}

type UserDetail struct {
	User
	Selections []UserSelection `json:"selections"`
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

type UserPage struct {
	Users      []User
	Pagination Pagination
}
