package tests

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"ginraidee/food-svc/internal/domain"
	"ginraidee/food-svc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCatalogFromSeed(t *testing.T) {
	catalog, err := storage.LoadCatalog("")
	require.NoError(t, err)
	assert.Equal(t, 24, catalog.Len())

	perCategory := map[domain.Category]int{}
	for _, item := range catalog.All() {
		perCategory[item.Category]++
		assert.NotEmpty(t, item.Name)
		assert.NotEmpty(t, item.CategoryName)
	}
	for _, c := range domain.Categories {
		assert.Equal(t, 4, perCategory[c], "category %s", c)
	}
}

func TestNewMemoryCatalogRejectsBadInput(t *testing.T) {
	_, err := storage.NewMemoryCatalog([]domain.MenuItem{
		{ID: 1, Category: domain.CategoryThai},
		{ID: 1, Category: domain.CategoryThai},
	})
	assert.ErrorContains(t, err, "duplicate menu id 1")

	_, err = storage.NewMemoryCatalog([]domain.MenuItem{{ID: 2, Category: "martian"}})
	assert.ErrorContains(t, err, "unknown category")
}

func TestMemoryCatalogEnforcesCategory(t *testing.T) {
	catalog, err := storage.LoadCatalog("")
	require.NoError(t, err)

	_, err = catalog.Insert(domain.MenuItem{Name: "Margherita", Category: "pizza", Price: 250})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
	assert.Equal(t, 24, catalog.Len())

	created, err := catalog.Insert(domain.MenuItem{Name: "Bingsu", Category: domain.CategoryDessert, Price: 120})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryDessert.DisplayName(), created.CategoryName)
	stored, ok := catalog.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, created, stored)

	bad := domain.Category("pizza")
	_, err = catalog.Update(created.ID, domain.MenuPatch{Category: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
	stored, _ = catalog.Get(created.ID)
	assert.Equal(t, domain.CategoryDessert, stored.Category)

	korean := domain.CategoryKorean
	updated, err := catalog.Update(created.ID, domain.MenuPatch{Category: &korean})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryKorean.DisplayName(), updated.CategoryName)
}

func TestMemoryCatalogReturnsCopies(t *testing.T) {
	catalog := newCatalog(t, []domain.MenuItem{{ID: 1, Name: "Som Tam", Category: domain.CategoryThai, Tags: []string{"spicy"}}})

	all := catalog.All()
	all[0].Name = "changed"
	all[0].Tags[0] = "changed"

	item, ok := catalog.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Som Tam", item.Name)
	assert.Equal(t, []string{"spicy"}, item.Tags)
}

func TestMemoryCatalogSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "catalog.json")

	catalog, err := storage.LoadCatalog(path)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "nothing is written before the first mutation")

	created, err := catalog.Insert(domain.MenuItem{Name: "Mango Sticky Rice", Category: domain.CategoryDessert, Price: 89})
	require.NoError(t, err)
	assert.Equal(t, 25, created.ID)

	_, err = catalog.Delete(1)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var saved []domain.MenuItem
	require.NoError(t, json.Unmarshal(raw, &saved))
	assert.Len(t, saved, 24)

	reloaded, err := storage.LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, catalog.All(), reloaded.All())
	_, ok := reloaded.Get(1)
	assert.False(t, ok)
}

func TestMemoryCatalogRollsBackWhenSnapshotFails(t *testing.T) {
	parent := filepath.Join(t.TempDir(), "data")
	catalog, err := storage.LoadCatalog(filepath.Join(parent, "catalog.json"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(parent, []byte("not a directory"), 0o644))

	_, err = catalog.Insert(domain.MenuItem{Name: "Ghost", Category: domain.CategoryThai})
	assert.Error(t, err)
	assert.Equal(t, 24, catalog.Len())

	_, err = catalog.Delete(3)
	assert.Error(t, err)
	_, ok := catalog.Get(3)
	assert.True(t, ok)
}

func TestMemoryCatalogConcurrentAccess(t *testing.T) {
	catalog := newCatalog(t, scenarioCatalog())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				for _, item := range catalog.All() {
					_ = item.Name
				}
			}
		}()
		go func(i int) {
			defer wg.Done()
			price := float64(i)
			for j := 0; j < 50; j++ {
				_, _ = catalog.Update(1, domain.MenuPatch{Price: &price})
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 3, catalog.Len())
}
