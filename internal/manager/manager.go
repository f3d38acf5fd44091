// Package manager is the single in-process authority over the cached
// aggregate. Every admin read and write goes through it: writes validate
// first, mutate the cache optimistically, then persist through the store and
// roll the cache back if the store fails.
package manager

import (
	"context"
	"fmt"
	"sync"
	"time"

	"curryleaf-backend/internal/analytics"
	"curryleaf-backend/internal/buffet"
	"curryleaf-backend/internal/deploy"
	"curryleaf-backend/internal/menu"
	"curryleaf-backend/internal/models"
	"curryleaf-backend/internal/store"
)

// Store is the persistence surface the manager depends on. *store.Store
// satisfies it; tests use an in-memory fake.
type Store interface {
	LoadAll(ctx context.Context) (*models.Aggregate, error)
	Persist(ctx context.Context, agg *models.Aggregate, scope store.Scope) error
	SaveAllWithBackup(ctx context.Context, agg *models.Aggregate, label string) error
	AddItem(ctx context.Context, item models.MenuItem) error
	UpdateItem(ctx context.Context, id string, fields map[string]any) error
	DeleteItem(ctx context.Context, id string) error
	BatchUpdateItems(ctx context.Context, items []models.MenuItem) error
	ClearAll(ctx context.Context) error
}

type Manager struct {
	mu    sync.Mutex
	store Store
	agg   *models.Aggregate

	now func() time.Time // overridable in tests
}

// New constructs a manager around the given store. The aggregate is loaded
// lazily on first use.
func New(st Store) *Manager {
	return &Manager{store: st, now: time.Now}
}

// ensureLoaded loads the aggregate on first use. Callers must hold m.mu; the
// lock doubles as the load memoization, so concurrent first calls block here
// and share the single remote read instead of issuing their own.
func (m *Manager) ensureLoaded(ctx context.Context) error {
	if m.agg != nil {
		return nil
	}
	agg, err := m.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("manager: load failed: %w", err)
	}
	m.agg = agg
	return nil
}

// ForceRefresh throws away the cache and reloads from the store. This is the
// only way a stale cache catches up with writes made by another process.
func (m *Manager) ForceRefresh(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.agg = nil
	return m.ensureLoaded(ctx)
}

// ---- reads (cache only) ----

func (m *Manager) MenuItems(ctx context.Context) ([]models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	out := make([]models.MenuItem, len(m.agg.MenuItems))
	copy(out, m.agg.MenuItems)
	return out, nil
}

func (m *Manager) GetItem(ctx context.Context, id string) (models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureLoaded(ctx); err != nil {
		return models.MenuItem{}, err
	}
	if it := m.agg.FindItem(id); it != nil {
		return *it, nil
	}
	return models.MenuItem{}, fmt.Errorf("menu item %s not found", id)
}

func (m *Manager) ItemsByCategory(ctx context.Context, category string) ([]models.MenuItem, error) {
	items, err := m.MenuItems(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.MenuItem
	for _, it := range items {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *Manager) AvailableItems(ctx context.Context) ([]models.MenuItem, error) {
	items, err := m.MenuItems(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.MenuItem
	for _, it := range items {
		if it.IsAvailable {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *Manager) PopularItems(ctx context.Context) ([]models.MenuItem, error) {
	items, err := m.MenuItems(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.MenuItem
	for _, it := range items {
		if it.IsPopular {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *Manager) SearchItems(ctx context.Context, query string) ([]models.MenuItem, error) {
	items, err := m.MenuItems(ctx)
	if err != nil {
		return nil, err
	}
	return menu.Search(items, query), nil
}

func (m *Manager) SortItems(ctx context.Context, field menu.SortField, descending bool) ([]models.MenuItem, error) {
	items, err := m.MenuItems(ctx)
	if err != nil {
		return nil, err
	}
	return menu.Sort(items, field, descending), nil
}

func (m *Manager) FindDuplicates(ctx context.Context) ([]menu.DuplicateGroup, error) {
	items, err := m.MenuItems(ctx)
	if err != nil {
		return nil, err
	}
	return menu.FindDuplicates(items), nil
}

func (m *Manager) Stats(ctx context.Context) (analytics.Stats, error) {
	items, err := m.MenuItems(ctx)
	if err != nil {
		return analytics.Stats{}, err
	}
	return analytics.Compute(items, m.now()), nil
}

func (m *Manager) BuffetSettings(ctx context.Context) (models.BuffetSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureLoaded(ctx); err != nil {
		return models.BuffetSettings{}, err
	}
	return m.agg.Buffet, nil
}

func (m *Manager) RestaurantInfo(ctx context.Context) (models.RestaurantInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureLoaded(ctx); err != nil {
		return models.RestaurantInfo{}, err
	}
	return m.agg.RestaurantInfo, nil
}

func (m *Manager) Categories(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	out := make([]string, len(m.agg.Categories))
	copy(out, m.agg.Categories)
	return out, nil
}

// ---- writes (optimistic mutate, persist, rollback on failure) ----

// mutate runs the uniform write protocol: snapshot the cache, apply fn to it,
// persist through the store and restore the snapshot when the store fails.
func (m *Manager) mutate(ctx context.Context, apply func(agg *models.Aggregate) error, persist func(ctx context.Context) error) error {
	if err := m.ensureLoaded(ctx); err != nil {
		return err
	}
	snapshot := m.agg.Clone()
	if err := apply(m.agg); err != nil {
		m.agg = snapshot
		return err
	}
	if err := persist(ctx); err != nil {
		m.agg = snapshot
		return err
	}
	return nil
}

// MenuItemInput is the payload for creating a menu item.
type MenuItemInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	IsPopular   bool    `json:"is_popular"`
	IsAvailable *bool   `json:"is_available"` // nil defaults to available
}

// MenuItemUpdate is a partial update; nil fields are left unchanged.
type MenuItemUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	IsPopular   *bool    `json:"is_popular"`
	IsAvailable *bool    `json:"is_available"`
}

// AddMenuItem validates, assigns an id and persists a new item.
func (m *Manager) AddMenuItem(ctx context.Context, in MenuItemInput) (models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	item := models.MenuItem{
		Name:        in.Name,
		Description: in.Description,
		Price:       menu.Round2(in.Price),
		Category:    in.Category,
		IsPopular:   in.IsPopular,
		IsAvailable: true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	if errs := menu.Validate(item); len(errs) > 0 {
		return models.MenuItem{}, &models.ValidationError{Fields: errs}
	}

	err := m.mutate(ctx, func(agg *models.Aggregate) error {
		item.ID = menu.GenerateID(item.Category, now)
		// same-millisecond adds in one category would collide
		for agg.FindItem(item.ID) != nil {
			now = now.Add(time.Millisecond)
			item.ID = menu.GenerateID(item.Category, now)
		}
		agg.MenuItems = append(agg.MenuItems, item)
		return nil
	}, func(ctx context.Context) error {
		return m.store.AddItem(ctx, item)
	})
	if err != nil {
		return models.MenuItem{}, err
	}
	return item, nil
}

// UpdateMenuItem applies a partial update to one item.
func (m *Manager) UpdateMenuItem(ctx context.Context, id string, in MenuItemUpdate) (models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(ctx); err != nil {
		return models.MenuItem{}, err
	}
	existing := m.agg.FindItem(id)
	if existing == nil {
		return models.MenuItem{}, fmt.Errorf("menu item %s not found", id)
	}

	updated := *existing
	fields := map[string]any{}
	if in.Name != nil {
		updated.Name = *in.Name
		fields["name"] = *in.Name
	}
	if in.Description != nil {
		updated.Description = *in.Description
		fields["description"] = *in.Description
	}
	if in.Price != nil {
		updated.Price = menu.Round2(*in.Price)
		fields["price"] = updated.Price
	}
	if in.Category != nil {
		updated.Category = *in.Category
		fields["category"] = *in.Category
	}
	if in.IsPopular != nil {
		updated.IsPopular = *in.IsPopular
		fields["is_popular"] = *in.IsPopular
	}
	if in.IsAvailable != nil {
		updated.IsAvailable = *in.IsAvailable
		fields["is_available"] = *in.IsAvailable
	}
	if len(fields) == 0 {
		return *existing, nil
	}
	if errs := menu.Validate(updated); len(errs) > 0 {
		return models.MenuItem{}, &models.ValidationError{Fields: errs}
	}
	updated.UpdatedAt = m.now()
	fields["updated_at"] = updated.UpdatedAt

	err := m.mutate(ctx, func(agg *models.Aggregate) error {
		*agg.FindItem(id) = updated
		return nil
	}, func(ctx context.Context) error {
		return m.store.UpdateItem(ctx, id, fields)
	})
	if err != nil {
		return models.MenuItem{}, err
	}
	return updated, nil
}

func (m *Manager) DeleteMenuItem(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(ctx); err != nil {
		return err
	}
	if m.agg.FindItem(id) == nil {
		return fmt.Errorf("menu item %s not found", id)
	}

	return m.mutate(ctx, func(agg *models.Aggregate) error {
		out := agg.MenuItems[:0]
		for _, it := range agg.MenuItems {
			if it.ID != id {
				out = append(out, it)
			}
		}
		agg.MenuItems = out
		return nil
	}, func(ctx context.Context) error {
		return m.store.DeleteItem(ctx, id)
	})
}

// ToggleAvailability flips the availability flag of one item.
func (m *Manager) ToggleAvailability(ctx context.Context, id string) (models.MenuItem, error) {
	return m.toggleFlag(ctx, id, "is_available")
}

// TogglePopular flips the popularity flag of one item.
func (m *Manager) TogglePopular(ctx context.Context, id string) (models.MenuItem, error) {
	return m.toggleFlag(ctx, id, "is_popular")
}

func (m *Manager) toggleFlag(ctx context.Context, id, column string) (models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(ctx); err != nil {
		return models.MenuItem{}, err
	}
	existing := m.agg.FindItem(id)
	if existing == nil {
		return models.MenuItem{}, fmt.Errorf("menu item %s not found", id)
	}

	updated := *existing
	var value bool
	switch column {
	case "is_available":
		updated.IsAvailable = !updated.IsAvailable
		value = updated.IsAvailable
	case "is_popular":
		updated.IsPopular = !updated.IsPopular
		value = updated.IsPopular
	}
	updated.UpdatedAt = m.now()

	err := m.mutate(ctx, func(agg *models.Aggregate) error {
		*agg.FindItem(id) = updated
		return nil
	}, func(ctx context.Context) error {
		return m.store.UpdateItem(ctx, id, map[string]any{column: value, "updated_at": updated.UpdatedAt})
	})
	if err != nil {
		return models.MenuItem{}, err
	}
	return updated, nil
}

// BulkUpdateItems replaces the given items wholesale. Every item is validated
// before anything is touched; the store writes run concurrently and a single
// failure rolls the whole cache back.
func (m *Manager) BulkUpdateItems(ctx context.Context, items []models.MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(ctx); err != nil {
		return err
	}
	var errs []models.FieldError
	for _, it := range items {
		if m.agg.FindItem(it.ID) == nil {
			errs = append(errs, models.FieldError{Field: it.ID, Message: "menu item not found"})
			continue
		}
		errs = append(errs, menu.Validate(it)...)
	}
	if len(errs) > 0 {
		return &models.ValidationError{Fields: errs}
	}

	now := m.now()
	return m.mutate(ctx, func(agg *models.Aggregate) error {
		for i := range items {
			items[i].UpdatedAt = now
			*agg.FindItem(items[i].ID) = items[i]
		}
		return nil
	}, func(ctx context.Context) error {
		return m.store.BatchUpdateItems(ctx, items)
	})
}

// AdjustCategoryPrices applies a category-wide absolute or percentage price
// change, rounded to cents, and persists the touched items as a batch.
func (m *Manager) AdjustCategoryPrices(ctx context.Context, category string, mode menu.AdjustMode, value float64) ([]models.MenuItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	adjusted, errs := menu.AdjustPrices(m.agg.MenuItems, category, mode, value, m.now())
	if errs != nil {
		return nil, &models.ValidationError{Fields: errs}
	}

	var touched []models.MenuItem
	for _, it := range adjusted {
		if it.Category == category {
			touched = append(touched, it)
		}
	}

	err := m.mutate(ctx, func(agg *models.Aggregate) error {
		agg.MenuItems = adjusted
		return nil
	}, func(ctx context.Context) error {
		return m.store.BatchUpdateItems(ctx, touched)
	})
	if err != nil {
		return nil, err
	}
	return touched, nil
}

// UpdateBuffetSettings validates and persists new buffet settings over the
// single-document fast path. It returns the changelog between the old and new
// snapshots.
func (m *Manager) UpdateBuffetSettings(ctx context.Context, in models.BuffetSettings) (models.BuffetSettings, []string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if errs := buffet.Validate(in); len(errs) > 0 {
		return models.BuffetSettings{}, nil, &models.ValidationError{Fields: errs}
	}
	if err := m.ensureLoaded(ctx); err != nil {
		return models.BuffetSettings{}, nil, err
	}

	old := m.agg.Buffet
	in.ID = 1
	in.Price = menu.Round2(in.Price)
	in.UpdatedAt = m.now()
	changes := buffet.Diff(old, in)

	err := m.mutate(ctx, func(agg *models.Aggregate) error {
		agg.Buffet = in
		return nil
	}, func(ctx context.Context) error {
		return m.store.Persist(ctx, m.agg, store.ScopeBuffetOnly)
	})
	if err != nil {
		return models.BuffetSettings{}, nil, err
	}
	return in, changes, nil
}

// UpdateRestaurantInfo persists new contact/hours data over the
// single-document fast path.
func (m *Manager) UpdateRestaurantInfo(ctx context.Context, in models.RestaurantInfo) (models.RestaurantInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []models.FieldError
	if len(in.Name) == 0 || len(in.Name) > 100 {
		errs = append(errs, models.FieldError{Field: "name", Message: "name is required and must be at most 100 characters"})
	}
	if len(in.Address) == 0 {
		errs = append(errs, models.FieldError{Field: "address", Message: "address is required"})
	}
	if len(errs) > 0 {
		return models.RestaurantInfo{}, &models.ValidationError{Fields: errs}
	}

	if err := m.ensureLoaded(ctx); err != nil {
		return models.RestaurantInfo{}, err
	}
	in.ID = 1
	in.UpdatedAt = m.now()

	err := m.mutate(ctx, func(agg *models.Aggregate) error {
		agg.RestaurantInfo = in
		return nil
	}, func(ctx context.Context) error {
		return m.store.Persist(ctx, m.agg, store.ScopeInfoOnly)
	})
	if err != nil {
		return models.RestaurantInfo{}, err
	}
	return in, nil
}

// ImportMenu adds (or, with replace, substitutes) a whole item list. The full
// aggregate is persisted with a backup snapshot.
func (m *Manager) ImportMenu(ctx context.Context, inputs []MenuItemInput, replace bool) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	items := make([]models.MenuItem, 0, len(inputs))
	var errs []models.FieldError
	for i, in := range inputs {
		item := models.MenuItem{
			Name:        in.Name,
			Description: in.Description,
			Price:       menu.Round2(in.Price),
			Category:    in.Category,
			IsPopular:   in.IsPopular,
			IsAvailable: true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if in.IsAvailable != nil {
			item.IsAvailable = *in.IsAvailable
		}
		if ferrs := menu.Validate(item); len(ferrs) > 0 {
			for _, fe := range ferrs {
				errs = append(errs, models.FieldError{Field: fmt.Sprintf("row %d %s", i+1, fe.Field), Message: fe.Message})
			}
			continue
		}
		item.ID = menu.GenerateID(item.Category, now.Add(time.Duration(i)*time.Millisecond))
		items = append(items, item)
	}
	if len(errs) > 0 {
		return 0, &models.ValidationError{Fields: errs}
	}

	if err := m.ensureLoaded(ctx); err != nil {
		return 0, err
	}
	err := m.mutate(ctx, func(agg *models.Aggregate) error {
		if replace {
			agg.MenuItems = items
		} else {
			agg.MenuItems = append(agg.MenuItems, items...)
		}
		return nil
	}, func(ctx context.Context) error {
		if replace {
			if err := m.store.ClearAll(ctx); err != nil {
				return err
			}
		}
		return m.store.SaveAllWithBackup(ctx, m.agg, "import")
	})
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// RestoreAggregate swaps in a previously-backed-up aggregate and persists it
// fully, snapshotting the restored state as well.
func (m *Manager) RestoreAggregate(ctx context.Context, agg *models.Aggregate, label string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(ctx); err != nil {
		return err
	}
	restored := agg.Clone()
	return m.mutate(ctx, func(current *models.Aggregate) error {
		*current = *restored
		return nil
	}, func(ctx context.Context) error {
		if err := m.store.ClearAll(ctx); err != nil {
			return err
		}
		return m.store.SaveAllWithBackup(ctx, m.agg, label)
	})
}

// CleanSlate wipes everything and reloads, which reseeds the default dataset.
func (m *Manager) CleanSlate(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(ctx); err != nil {
		return err
	}
	snapshot := m.agg.Clone()
	if err := m.store.ClearAll(ctx); err != nil {
		m.agg = snapshot
		return err
	}
	m.agg = nil
	return m.ensureLoaded(ctx)
}

// CreateBackup persists the aggregate with a manually-requested snapshot.
func (m *Manager) CreateBackup(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(ctx); err != nil {
		return err
	}
	return m.store.SaveAllWithBackup(ctx, m.agg, "manual")
}

// MarkDeployed snapshots the current aggregate with a backup and returns the
// generated deployment announcement text.
func (m *Manager) MarkDeployed(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(ctx); err != nil {
		return "", err
	}
	now := m.now()
	summary := deploy.Summary(m.agg, analytics.Compute(m.agg.MenuItems, now), now)

	if err := m.store.SaveAllWithBackup(ctx, m.agg, "deploy"); err != nil {
		return "", err
	}
	return summary, nil
}
