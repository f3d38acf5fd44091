package admin

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"curryleaf-backend/internal/manager"
	"curryleaf-backend/internal/models"
	"curryleaf-backend/internal/seed"
	"curryleaf-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// stubStore serves the default aggregate and accepts every write.
type stubStore struct{}

func (stubStore) LoadAll(ctx context.Context) (*models.Aggregate, error) {
	return seed.DefaultAggregate(), nil
}
func (stubStore) Persist(ctx context.Context, agg *models.Aggregate, scope store.Scope) error {
	return nil
}
func (stubStore) SaveAllWithBackup(ctx context.Context, agg *models.Aggregate, label string) error {
	return nil
}
func (stubStore) AddItem(ctx context.Context, item models.MenuItem) error { return nil }
func (stubStore) UpdateItem(ctx context.Context, id string, f map[string]any) error {
	return nil
}
func (stubStore) DeleteItem(ctx context.Context, id string) error { return nil }
func (stubStore) BatchUpdateItems(ctx context.Context, items []models.MenuItem) error {
	return nil
}
func (stubStore) ClearAll(ctx context.Context) error { return nil }

func listMenu(t *testing.T, target string) []models.MenuItem {
	t.Helper()
	app := fiber.New()
	app.Get("/menu", ListMenuItemsHandler(manager.New(stubStore{})))

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var items []models.MenuItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return items
}

func TestListMenuItemsCategoryFilter(t *testing.T) {
	wantTiffin := 0
	for _, it := range seed.DefaultMenuItems() {
		if it.Category == models.CategoryTiffin {
			wantTiffin++
		}
	}

	items := listMenu(t, "/menu?category="+models.CategoryTiffin)
	if len(items) != wantTiffin {
		t.Errorf("filtered items = %d, want %d", len(items), wantTiffin)
	}
	for _, it := range items {
		if it.Category != models.CategoryTiffin {
			t.Errorf("item %s has category %s", it.ID, it.Category)
		}
	}

	if items := listMenu(t, "/menu?category=Nonexistent"); len(items) != 0 {
		t.Errorf("unknown category returned %d items, want 0", len(items))
	}
}

func TestListMenuItemsQueryAndSort(t *testing.T) {
	items := listMenu(t, "/menu?query=dosa")
	if len(items) == 0 {
		t.Fatal("seeded dosa not found by query")
	}

	sorted := listMenu(t, "/menu?sort=price&order=desc")
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Price > sorted[i-1].Price {
			t.Fatalf("descending price sort out of order at %d: %v > %v", i, sorted[i].Price, sorted[i-1].Price)
		}
	}
}
