package domain

import (
	"errors"
	"slices"
)

// ErrNoCandidates means the server found nothing for the current filters and exclusions.
var ErrNoCandidates = errors.New("no menu matches your filters")

type Action string

const (
	ActionLike    Action = "like"
	ActionDislike Action = "dislike"
)

func (a Action) Valid() bool {
	return a == ActionLike || a == ActionDislike
}

type MenuItem struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	NameEn       string   `json:"nameEn"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Category     string   `json:"category"`
	CategoryName string   `json:"categoryName"`
	Image        string   `json:"image"`
	Tags         []string `json:"tags"`
	Rating       float64  `json:"rating"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Filter is the locally held filter state sent with every spin.
type Filter struct {
	Categories []string
	MinPrice   *float64
	MaxPrice   *float64
}

// Matches applies the same predicates the server does, minus exclusions.
func (f Filter) Matches(item MenuItem) bool {
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, item.Category) {
		return false
	}
	if f.MinPrice != nil && item.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && item.Price > *f.MaxPrice {
		return false
	}
	return true
}

// Apply returns the items matching f whose ids are not excluded, in order.
func (f Filter) Apply(items []MenuItem, exclude []int) []MenuItem {
	out := make([]MenuItem, 0, len(items))
	for _, item := range items {
		if f.Matches(item) && !slices.Contains(exclude, item.ID) {
			out = append(out, item)
		}
	}
	return out
}
