package service

import (
	"errors"
	"math/rand/v2"
	"slices"

	"ginraidee/food-svc/internal/domain"
)

var ErrNoCandidates = errors.New("no menu matches your filters")

// FilterCandidates returns the catalog items matching the filter in catalog order.
func FilterCandidates(catalog []domain.MenuItem, spec domain.FilterSpec) []domain.MenuItem {
	var excluded map[int]struct{}
	if len(spec.Exclude) > 0 {
		excluded = make(map[int]struct{}, len(spec.Exclude))
		for _, id := range spec.Exclude {
			excluded[id] = struct{}{}
		}
	}

	out := make([]domain.MenuItem, 0, len(catalog))
	for _, item := range catalog {
		if len(spec.Categories) > 0 && !slices.Contains(spec.Categories, item.Category) {
			continue
		}
		if spec.MinPrice != nil && item.Price < *spec.MinPrice {
			continue
		}
		if spec.MaxPrice != nil && item.Price > *spec.MaxPrice {
			continue
		}
		if _, skip := excluded[item.ID]; skip {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Picker chooses uniformly among candidates. The zero value is not usable;
// use NewPicker.
type Picker struct {
	intN func(n int) int
}

// NewPicker uses math/rand/v2's global source, which is seeded from the OS
// at start so sequences differ between restarts.
func NewPicker() *Picker {
	return &Picker{intN: rand.IntN}
}

// NewPickerWithSource is for tests that need a fixed index sequence.
func NewPickerWithSource(intN func(n int) int) *Picker {
	return &Picker{intN: intN}
}

func (p *Picker) Pick(candidates []domain.MenuItem) (domain.MenuItem, error) {
	if len(candidates) == 0 {
		return domain.MenuItem{}, ErrNoCandidates
	}
	return candidates[p.intN(len(candidates))], nil
}
