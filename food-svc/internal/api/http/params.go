package httpapi

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"ginraidee/food-svc/internal/domain"
)

// Query parsing is permissive: values that do not parse are dropped so a
// single bad parameter never fails the request.

func parseFilterSpec(q url.Values) domain.FilterSpec {
	return domain.FilterSpec{
		Categories: parseCategories(q.Get("category")),
		MinPrice:   parsePrice(firstNonEmpty(q.Get("minPrice"), q.Get("min"))),
		MaxPrice:   parsePrice(firstNonEmpty(q.Get("maxPrice"), q.Get("max"))),
		Exclude:    parseIDs(q.Get("exclude")),
	}
}

func parseListQuery(q url.Values) domain.ListQuery {
	return domain.ListQuery{
		Filter: parseFilterSpec(q),
		Search: strings.TrimSpace(q.Get("search")),
		Tags:   splitCSV(q.Get("tags")),
		Sort:   parseSort(q.Get("sort")),
		Page:   parsePositiveInt(q.Get("page")),
		Limit:  parsePositiveInt(q.Get("limit")),
	}
}

func parseCategories(raw string) []domain.Category {
	var out []domain.Category
	for _, part := range splitCSV(strings.ToLower(raw)) {
		if part == "all" {
			return nil
		}
		if c := domain.Category(part); c.Valid() {
			out = append(out, c)
		}
	}
	return out
}

func parsePrice(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func parseIDs(raw string) []int {
	var out []int
	for _, part := range splitCSV(raw) {
		if id, err := strconv.Atoi(part); err == nil && id > 0 {
			out = append(out, id)
		}
	}
	return out
}

func parseSort(raw string) domain.SortOrder {
	switch s := domain.SortOrder(strings.ToLower(raw)); s {
	case domain.SortPriceLow, domain.SortPriceHigh, domain.SortRating:
		return s
	default:
		return domain.SortName
	}
}

func parsePositiveInt(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
