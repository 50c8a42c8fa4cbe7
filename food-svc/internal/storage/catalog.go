package storage

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"ginraidee/food-svc/internal/domain"
)

//go:embed seed/foods.json
var seedCatalog []byte

// MemoryCatalog owns the menu catalog. Reads take the read lock and return
// copies, so an admin write never mutates a slice a reader is iterating.
type MemoryCatalog struct {
	mu    sync.RWMutex
	items map[int]domain.MenuItem
	order []int
	path  string
}

// NewMemoryCatalog builds a catalog from items, keeping their order.
// Duplicate ids and unknown categories are rejected.
func NewMemoryCatalog(items []domain.MenuItem) (*MemoryCatalog, error) {
	c := &MemoryCatalog{items: make(map[int]domain.MenuItem, len(items))}
	for _, item := range items {
		if _, dup := c.items[item.ID]; dup {
			return nil, fmt.Errorf("duplicate menu id %d", item.ID)
		}
		if !item.Category.Valid() {
			return nil, fmt.Errorf("menu %d: unknown category %q", item.ID, item.Category)
		}
		if item.CategoryName == "" {
			item.CategoryName = item.Category.DisplayName()
		}
		c.items[item.ID] = item.Clone()
		c.order = append(c.order, item.ID)
	}
	return c, nil
}

// LoadCatalog reads path when it exists and falls back to the embedded seed.
// With a non-empty path every mutation is written back as a JSON snapshot.
func LoadCatalog(path string) (*MemoryCatalog, error) {
	data := seedCatalog
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case err == nil && len(raw) > 0:
			data = raw
		case err != nil && !os.IsNotExist(err):
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
	}

	var items []domain.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	c, err := NewMemoryCatalog(items)
	if err != nil {
		return nil, err
	}
	c.path = path
	return c, nil
}

func (c *MemoryCatalog) All() []domain.MenuItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

func (c *MemoryCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

func (c *MemoryCatalog) Get(id int) (domain.MenuItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	if !ok {
		return domain.MenuItem{}, false
	}
	return item.Clone(), true
}

// Insert assigns the next id (max + 1) and appends the item.
func (c *MemoryCatalog) Insert(item domain.MenuItem) (domain.MenuItem, error) {
	if !item.Category.Valid() {
		return domain.MenuItem{}, fmt.Errorf("%w %q", domain.ErrInvalidCategory, item.Category)
	}
	if item.CategoryName == "" {
		item.CategoryName = item.Category.DisplayName()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next := 1
	for id := range c.items {
		if id >= next {
			next = id + 1
		}
	}
	item.ID = next
	c.items[item.ID] = item.Clone()
	c.order = append(c.order, item.ID)

	if err := c.persistLocked(); err != nil {
		delete(c.items, item.ID)
		c.order = c.order[:len(c.order)-1]
		return domain.MenuItem{}, err
	}
	return item.Clone(), nil
}

func (c *MemoryCatalog) Update(id int, patch domain.MenuPatch) (domain.MenuItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.items[id]
	if !ok {
		return domain.MenuItem{}, domain.ErrFoodNotFound
	}
	updated := patch.Apply(current.Clone())
	if !updated.Category.Valid() {
		return domain.MenuItem{}, fmt.Errorf("%w %q", domain.ErrInvalidCategory, updated.Category)
	}
	if updated.CategoryName == "" {
		updated.CategoryName = updated.Category.DisplayName()
	}
	updated.ID = id
	c.items[id] = updated

	if err := c.persistLocked(); err != nil {
		c.items[id] = current
		return domain.MenuItem{}, err
	}
	return updated.Clone(), nil
}

// Delete removes the item and returns it.
func (c *MemoryCatalog) Delete(id int) (domain.MenuItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.items[id]
	if !ok {
		return domain.MenuItem{}, domain.ErrFoodNotFound
	}
	idx := slices.Index(c.order, id)
	previousOrder := slices.Clone(c.order)
	delete(c.items, id)
	c.order = slices.Delete(c.order, idx, idx+1)

	if err := c.persistLocked(); err != nil {
		c.items[id] = current
		c.order = previousOrder
		return domain.MenuItem{}, err
	}
	return current, nil
}

func (c *MemoryCatalog) snapshotLocked() []domain.MenuItem {
	out := make([]domain.MenuItem, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id].Clone())
	}
	return out
}

func (c *MemoryCatalog) persistLocked() error {
	if c.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("persist catalog: %w", err)
	}
	data, err := json.MarshalIndent(c.snapshotLocked(), "", "  ")
	if err != nil {
		return fmt.Errorf("persist catalog: %w", err)
	}
	temp := c.path + ".tmp"
	if err := os.WriteFile(temp, data, 0o644); err != nil {
		return fmt.Errorf("persist catalog: %w", err)
	}
	if err := os.Rename(temp, c.path); err != nil {
		return errors.Join(fmt.Errorf("persist catalog: %w", err), os.Remove(temp))
	}
	return nil
}
