// Package store is the persistence adapter between the in-memory aggregate and
// Postgres. It exposes a full-aggregate path, scoped single-document fast
// paths and per-item operations. The adapter never retries and never rolls
// back; failure handling is the data manager's job.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"curryleaf-backend/internal/models"
	"curryleaf-backend/internal/seed"
)

// Scope selects how much of the aggregate a Persist call writes.
type Scope int

const (
	ScopeFull Scope = iota
	ScopeBuffetOnly
	ScopeInfoOnly
	ScopeItemsOnly
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// LoadAll reads the full aggregate. An empty menu table triggers one-time
// seeding from the default dataset. A read failure is logged and answered with
// the default aggregate so the site stays up in a degraded state.
func (s *Store) LoadAll(ctx context.Context) (*models.Aggregate, error) {
	agg := &models.Aggregate{Categories: models.MenuCategories()}

	if err := s.db.WithContext(ctx).Find(&agg.MenuItems).Error; err != nil {
		log.Printf("[WARN] store: menu read failed, serving defaults: %v", err)
		return seed.DefaultAggregate(), nil
	}

	if len(agg.MenuItems) == 0 {
		if err := s.seedDefaults(ctx); err != nil {
			log.Printf("[WARN] store: seeding failed, serving defaults: %v", err)
			return seed.DefaultAggregate(), nil
		}
		return seed.DefaultAggregate(), nil
	}

	if err := s.loadSingleton(ctx, &agg.RestaurantInfo, seed.DefaultRestaurantInfo()); err != nil {
		log.Printf("[WARN] store: restaurant info read failed, serving defaults: %v", err)
		return seed.DefaultAggregate(), nil
	}
	if err := s.loadSingleton(ctx, &agg.Buffet, seed.DefaultBuffetSettings()); err != nil {
		log.Printf("[WARN] store: buffet read failed, serving defaults: %v", err)
		return seed.DefaultAggregate(), nil
	}

	return agg, nil
}

// loadSingleton fetches the single row of dst's table, creating it from def
// when missing so exactly one record always exists.
func (s *Store) loadSingleton(ctx context.Context, dst any, def any) error {
	err := s.db.WithContext(ctx).First(dst, "id = ?", 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.db.WithContext(ctx).Create(def).Error; err != nil {
			return err
		}
		return s.db.WithContext(ctx).First(dst, "id = ?", 1).Error
	}
	return err
}

func (s *Store) seedDefaults(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range seed.DefaultMenuItems() {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&item).Error; err != nil {
				return err
			}
		}
		info := seed.DefaultRestaurantInfo()
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&info).Error; err != nil {
			return err
		}
		buffet := seed.DefaultBuffetSettings()
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&buffet).Error
	})
}

// Persist writes the aggregate at the requested scope. All scopes converge on
// the same rows, so the narrow scopes are purely a write-cost optimization.
func (s *Store) Persist(ctx context.Context, agg *models.Aggregate, scope Scope) error {
	switch scope {
	case ScopeBuffetOnly:
		b := agg.Buffet
		b.ID = 1
		if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&b).Error; err != nil {
			return fmt.Errorf("store: buffet save failed: %w", err)
		}
		return nil

	case ScopeInfoOnly:
		info := agg.RestaurantInfo
		info.ID = 1
		if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&info).Error; err != nil {
			return fmt.Errorf("store: restaurant info save failed: %w", err)
		}
		return nil

	case ScopeItemsOnly:
		return s.saveItems(ctx, agg.MenuItems)

	default: // ScopeFull
		b := agg.Buffet
		b.ID = 1
		if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&b).Error; err != nil {
			return fmt.Errorf("store: buffet save failed: %w", err)
		}
		info := agg.RestaurantInfo
		info.ID = 1
		if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&info).Error; err != nil {
			return fmt.Errorf("store: restaurant info save failed: %w", err)
		}
		return s.saveItems(ctx, agg.MenuItems)
	}
}

func (s *Store) saveItems(ctx context.Context, items []models.MenuItem) error {
	for i := range items {
		if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&items[i]).Error; err != nil {
			return fmt.Errorf("store: item %s save failed: %w", items[i].ID, err)
		}
	}
	return nil
}

// SaveAllWithBackup does a full persist and appends a snapshot of the
// aggregate to the backups table.
func (s *Store) SaveAllWithBackup(ctx context.Context, agg *models.Aggregate, label string) error {
	if err := s.Persist(ctx, agg, ScopeFull); err != nil {
		return err
	}
	payload, err := json.Marshal(agg)
	if err != nil {
		return fmt.Errorf("store: backup marshal failed: %w", err)
	}
	backup := models.MenuBackup{
		ID:        uuid.NewString(),
		Label:     label,
		Payload:   string(payload),
		ItemCount: len(agg.MenuItems),
		CreatedAt: time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&backup).Error; err != nil {
		return fmt.Errorf("store: backup write failed: %w", err)
	}
	return nil
}

func (s *Store) AddItem(ctx context.Context, item models.MenuItem) error {
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return fmt.Errorf("store: item %s create failed: %w", item.ID, err)
	}
	return nil
}

// UpdateItem writes only the given columns of one item.
func (s *Store) UpdateItem(ctx context.Context, id string, fields map[string]any) error {
	res := s.db.WithContext(ctx).Model(&models.MenuItem{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return fmt.Errorf("store: item %s update failed: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("store: item %s not found", id)
	}
	return nil
}

func (s *Store) DeleteItem(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&models.MenuItem{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("store: item %s delete failed: %w", id, err)
	}
	return nil
}

// BatchUpdateItems upserts the given items concurrently. There is no ordering
// guarantee between them; the first failure is reported and partial writes are
// left for the caller to roll back.
func (s *Store) BatchUpdateItems(ctx context.Context, items []models.MenuItem) error {
	g, gctx := errgroup.WithContext(ctx)
	for i := range items {
		item := items[i]
		g.Go(func() error {
			if err := s.db.WithContext(gctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&item).Error; err != nil {
				return fmt.Errorf("store: item %s save failed: %w", item.ID, err)
			}
			return nil
		})
	}
	return g.Wait()
}

// ClearAll deletes every menu item and both singleton rows. Destructive; only
// the explicit clean-slate flow calls this.
func (s *Store) ClearAll(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.MenuItem{}).Error; err != nil {
			return fmt.Errorf("store: item wipe failed: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.BuffetSettings{}).Error; err != nil {
			return fmt.Errorf("store: buffet wipe failed: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.RestaurantInfo{}).Error; err != nil {
			return fmt.Errorf("store: restaurant info wipe failed: %w", err)
		}
		return nil
	})
}

// ListBackups returns snapshot metadata, newest first. Payloads are omitted.
func (s *Store) ListBackups(ctx context.Context) ([]models.MenuBackup, error) {
	var backups []models.MenuBackup
	err := s.db.WithContext(ctx).
		Select("id", "label", "item_count", "created_at").
		Order("created_at DESC").
		Find(&backups).Error
	if err != nil {
		return nil, fmt.Errorf("store: backup list failed: %w", err)
	}
	return backups, nil
}

// GetBackup returns one snapshot decoded back into an aggregate.
func (s *Store) GetBackup(ctx context.Context, id string) (*models.Aggregate, error) {
	var backup models.MenuBackup
	if err := s.db.WithContext(ctx).First(&backup, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("store: backup %s read failed: %w", id, err)
	}
	var agg models.Aggregate
	if err := json.Unmarshal([]byte(backup.Payload), &agg); err != nil {
		return nil, fmt.Errorf("store: backup %s decode failed: %w", id, err)
	}
	return &agg, nil
}
