package manager

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"curryleaf-backend/internal/menu"
	"curryleaf-backend/internal/models"
	"curryleaf-backend/internal/seed"
	"curryleaf-backend/internal/store"
)

// fakeStore is an in-memory Store. Setting fail makes every write operation
// error, which is how the rollback tests simulate an unavailable backend.
type fakeStore struct {
	agg       *models.Aggregate
	fail      bool
	loadCalls int
	saveCalls int
	labels    []string // snapshot labels, in write order
}

var errStoreDown = errors.New("storage unavailable")

func newFakeStore() *fakeStore {
	return &fakeStore{agg: seed.DefaultAggregate()}
}

func (f *fakeStore) LoadAll(ctx context.Context) (*models.Aggregate, error) {
	f.loadCalls++
	return f.agg.Clone(), nil
}

func (f *fakeStore) write() error {
	f.saveCalls++
	if f.fail {
		return errStoreDown
	}
	return nil
}

func (f *fakeStore) Persist(ctx context.Context, agg *models.Aggregate, scope store.Scope) error {
	if err := f.write(); err != nil {
		return err
	}
	f.agg = agg.Clone()
	return nil
}

func (f *fakeStore) SaveAllWithBackup(ctx context.Context, agg *models.Aggregate, label string) error {
	if err := f.write(); err != nil {
		return err
	}
	f.agg = agg.Clone()
	f.labels = append(f.labels, label)
	return nil
}

func (f *fakeStore) AddItem(ctx context.Context, item models.MenuItem) error { return f.write() }
func (f *fakeStore) UpdateItem(ctx context.Context, id string, fields map[string]any) error {
	return f.write()
}
func (f *fakeStore) DeleteItem(ctx context.Context, id string) error { return f.write() }
func (f *fakeStore) BatchUpdateItems(ctx context.Context, items []models.MenuItem) error {
	return f.write()
}
func (f *fakeStore) ClearAll(ctx context.Context) error {
	if err := f.write(); err != nil {
		return err
	}
	f.agg = seed.DefaultAggregate()
	return nil
}

func newTestManager(t *testing.T) (*Manager, *fakeStore) {
	t.Helper()
	fs := newFakeStore()
	m := New(fs)
	return m, fs
}

func TestLoadIsMemoized(t *testing.T) {
	m, fs := newTestManager(t)
	ctx := context.Background()
	if _, err := m.MenuItems(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := m.BuffetSettings(ctx); err != nil {
		t.Fatal(err)
	}
	if fs.loadCalls != 1 {
		t.Errorf("loadCalls = %d, want 1", fs.loadCalls)
	}
	if err := m.ForceRefresh(ctx); err != nil {
		t.Fatal(err)
	}
	if fs.loadCalls != 2 {
		t.Errorf("loadCalls after refresh = %d, want 2", fs.loadCalls)
	}
}

func TestAddThenToggle(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	item, err := m.AddMenuItem(ctx, MenuItemInput{
		Name: "Test", Description: "d", Price: 1.00, Category: models.CategoryTiffin,
	})
	if err != nil {
		t.Fatalf("AddMenuItem: %v", err)
	}
	if item.ID == "" || !strings.HasPrefix(item.ID, "tiffin-") {
		t.Errorf("generated id = %q", item.ID)
	}
	if !item.IsAvailable {
		t.Error("new item should default to available")
	}

	toggled, err := m.ToggleAvailability(ctx, item.ID)
	if err != nil {
		t.Fatalf("ToggleAvailability: %v", err)
	}
	if toggled.IsAvailable {
		t.Error("first toggle should flip to unavailable")
	}
	toggled, err = m.ToggleAvailability(ctx, item.ID)
	if err != nil {
		t.Fatalf("second ToggleAvailability: %v", err)
	}
	if !toggled.IsAvailable {
		t.Error("second toggle should flip back to available")
	}
}

func TestValidationPrecedesMutation(t *testing.T) {
	m, fs := newTestManager(t)
	ctx := context.Background()
	before, _ := m.MenuItems(ctx)
	saveCallsBefore := fs.saveCalls

	_, err := m.AddMenuItem(ctx, MenuItemInput{Name: "X", Description: "d", Price: -1, Category: models.CategoryTiffin})
	if err == nil {
		t.Fatal("negative price should be rejected")
	}
	if _, ok := models.AsValidationError(err); !ok {
		t.Errorf("error = %v, want *ValidationError", err)
	}

	_, err = m.AddMenuItem(ctx, MenuItemInput{Name: "X", Description: "d", Price: 1, Category: "Pizza"})
	if err == nil {
		t.Fatal("unknown category should be rejected")
	}

	after, _ := m.MenuItems(ctx)
	if !reflect.DeepEqual(before, after) {
		t.Error("cache changed by rejected input")
	}
	if fs.saveCalls != saveCallsBefore {
		t.Errorf("store was invoked %d times for invalid input", fs.saveCalls-saveCallsBefore)
	}
}

func TestRollbackOnStoreFailure(t *testing.T) {
	ctx := context.Background()

	ops := []struct {
		name string
		run  func(m *Manager, existingID string) error
	}{
		{"add", func(m *Manager, _ string) error {
			_, err := m.AddMenuItem(ctx, MenuItemInput{Name: "New", Description: "d", Price: 2, Category: models.CategoryBreads})
			return err
		}},
		{"update", func(m *Manager, id string) error {
			name := "Renamed"
			_, err := m.UpdateMenuItem(ctx, id, MenuItemUpdate{Name: &name})
			return err
		}},
		{"delete", func(m *Manager, id string) error {
			return m.DeleteMenuItem(ctx, id)
		}},
		{"toggle", func(m *Manager, id string) error {
			_, err := m.ToggleAvailability(ctx, id)
			return err
		}},
		{"adjust prices", func(m *Manager, _ string) error {
			_, err := m.AdjustCategoryPrices(ctx, models.CategoryCurries, menu.AdjustPercent, 10)
			return err
		}},
		{"buffet update", func(m *Manager, _ string) error {
			_, _, err := m.UpdateBuffetSettings(ctx, models.BuffetSettings{Price: 19.99, Hours: "12:00 PM - 3:00 PM", Description: "x", IsActive: true})
			return err
		}},
		{"import", func(m *Manager, _ string) error {
			_, err := m.ImportMenu(ctx, []MenuItemInput{{Name: "I", Description: "d", Price: 2, Category: models.CategoryBreads}}, false)
			return err
		}},
	}

	for _, op := range ops {
		t.Run(op.name, func(t *testing.T) {
			m, fs := newTestManager(t)
			before, err := m.MenuItems(ctx) // warm the cache first
			if err != nil {
				t.Fatal(err)
			}
			buffetBefore, _ := m.BuffetSettings(ctx)

			fs.fail = true
			if err := op.run(m, before[0].ID); !errors.Is(err, errStoreDown) {
				t.Fatalf("error = %v, want storage unavailable", err)
			}

			after, _ := m.MenuItems(ctx)
			if !reflect.DeepEqual(before, after) {
				t.Errorf("cache not rolled back:\nbefore %+v\nafter  %+v", before, after)
			}
			buffetAfter, _ := m.BuffetSettings(ctx)
			if !reflect.DeepEqual(buffetBefore, buffetAfter) {
				t.Errorf("buffet not rolled back: %+v vs %+v", buffetBefore, buffetAfter)
			}
		})
	}
}

func TestAdjustCategoryPricesRounding(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	item, err := m.AddMenuItem(ctx, MenuItemInput{Name: "Special Thali", Description: "d", Price: 18.99, Category: models.CategoryCurries})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := m.AdjustCategoryPrices(ctx, models.CategoryCurries, menu.AdjustPercent, 10); err != nil {
		t.Fatal(err)
	}
	got, err := m.GetItem(ctx, item.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Price != 20.89 {
		t.Errorf("price after +10%% = %v, want exactly 20.89", got.Price)
	}
}

func TestBuffetFastPathConvergesWithFullPath(t *testing.T) {
	m, fs := newTestManager(t)
	ctx := context.Background()

	in := models.BuffetSettings{Price: 18.49, Hours: "11:30 AM - 2:30 PM", Description: "weekend buffet", IsActive: true}
	if _, _, err := m.UpdateBuffetSettings(ctx, in); err != nil {
		t.Fatal(err)
	}

	// Read back through the full-aggregate path: drop the cache and reload.
	if err := m.ForceRefresh(ctx); err != nil {
		t.Fatal(err)
	}
	got, err := m.BuffetSettings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got.Price != 18.49 || got.Hours != in.Hours || got.Description != in.Description {
		t.Errorf("fast path and full path diverged: %+v", got)
	}
	if fs.agg.Buffet.Price != 18.49 {
		t.Errorf("store row = %+v", fs.agg.Buffet)
	}
}

func TestBulkUpdateValidatesEverythingFirst(t *testing.T) {
	m, fs := newTestManager(t)
	ctx := context.Background()
	items, _ := m.MenuItems(ctx)
	saveCallsBefore := fs.saveCalls

	bad := items[0]
	bad.Price = -5
	if err := m.BulkUpdateItems(ctx, []models.MenuItem{bad}); err == nil {
		t.Fatal("invalid bulk item should be rejected")
	}
	unknown := items[0]
	unknown.ID = "nope-123"
	if err := m.BulkUpdateItems(ctx, []models.MenuItem{unknown}); err == nil {
		t.Fatal("unknown bulk item should be rejected")
	}
	if fs.saveCalls != saveCallsBefore {
		t.Error("store touched by rejected bulk update")
	}
}

func TestImportAndCleanSlate(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	n, err := m.ImportMenu(ctx, []MenuItemInput{
		{Name: "A", Description: "d", Price: 1, Category: models.CategoryBreads},
		{Name: "B", Description: "d", Price: 2, Category: models.CategoryBreads},
	}, true)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("imported = %d, want 2", n)
	}
	items, _ := m.MenuItems(ctx)
	if len(items) != 2 {
		t.Errorf("items after replace import = %d, want 2", len(items))
	}

	if err := m.CleanSlate(ctx); err != nil {
		t.Fatal(err)
	}
	items, _ = m.MenuItems(ctx)
	if len(items) != len(seed.DefaultMenuItems()) {
		t.Errorf("items after clean slate = %d, want the %d defaults", len(items), len(seed.DefaultMenuItems()))
	}
}

func TestMarkDeployed(t *testing.T) {
	m, fs := newTestManager(t)
	m.now = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	text, err := m.MarkDeployed(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "site update") || !strings.Contains(text, "Aug 30, 2026") {
		t.Errorf("deploy summary = %q", text)
	}
	if fs.saveCalls == 0 {
		t.Error("deploy should persist a backup")
	}
}

func TestBackupLabels(t *testing.T) {
	m, fs := newTestManager(t)
	ctx := context.Background()

	if err := m.CreateBackup(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := m.MarkDeployed(ctx); err != nil {
		t.Fatal(err)
	}
	want := []string{"manual", "deploy"}
	if !reflect.DeepEqual(fs.labels, want) {
		t.Errorf("snapshot labels = %v, want %v", fs.labels, want)
	}
}

func TestReadFilters(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	byCat, err := m.ItemsByCategory(ctx, models.CategoryTiffin)
	if err != nil {
		t.Fatal(err)
	}
	for _, it := range byCat {
		if it.Category != models.CategoryTiffin {
			t.Errorf("wrong category in filter: %+v", it)
		}
	}

	found, err := m.SearchItems(ctx, "dosa")
	if err != nil {
		t.Fatal(err)
	}
	if len(found) == 0 {
		t.Error("seeded dosa not found by search")
	}

	stats, err := m.Stats(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalItems != len(seed.DefaultMenuItems()) {
		t.Errorf("stats total = %d", stats.TotalItems)
	}
}
