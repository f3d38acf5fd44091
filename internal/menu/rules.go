// Package menu holds the pure business rules for menu items: id generation,
// validation, price adjustment, search, sort and duplicate detection. Nothing
// in here touches the database or the cache.
package menu

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"curryleaf-backend/internal/models"
)

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
	MaxPrice             = 999.99
)

// GenerateID builds an item id from the category slug and a millisecond
// timestamp, e.g. "curries-1724979000123".
func GenerateID(category string, now time.Time) string {
	slug := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(category), " ", "-"))
	return fmt.Sprintf("%s-%d", slug, now.UnixMilli())
}

// Validate checks a menu item against the field rules. It returns a field-error
// list; an empty list means the item is acceptable.
func Validate(item models.MenuItem) []models.FieldError {
	var errs []models.FieldError

	name := strings.TrimSpace(item.Name)
	if name == "" {
		errs = append(errs, models.FieldError{Field: "name", Message: "name is required"})
	} else if len(name) > MaxNameLength {
		errs = append(errs, models.FieldError{Field: "name", Message: fmt.Sprintf("name must be at most %d characters", MaxNameLength)})
	}

	desc := strings.TrimSpace(item.Description)
	if desc == "" {
		errs = append(errs, models.FieldError{Field: "description", Message: "description is required"})
	} else if len(desc) > MaxDescriptionLength {
		errs = append(errs, models.FieldError{Field: "description", Message: fmt.Sprintf("description must be at most %d characters", MaxDescriptionLength)})
	}

	if item.Price <= 0 {
		errs = append(errs, models.FieldError{Field: "price", Message: "price must be greater than 0"})
	} else if item.Price > MaxPrice {
		errs = append(errs, models.FieldError{Field: "price", Message: fmt.Sprintf("price must be at most %.2f", MaxPrice)})
	}

	if !models.IsValidCategory(item.Category) {
		errs = append(errs, models.FieldError{Field: "category", Message: "unknown category: " + item.Category})
	}

	return errs
}

// Round2 rounds to the nearest cent.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// AdjustMode selects how AdjustPrices interprets its value.
type AdjustMode string

const (
	AdjustAbsolute AdjustMode = "absolute" // add/subtract a fixed amount
	AdjustPercent  AdjustMode = "percent"  // change by a percentage
)

// AdjustPrices returns a copy of items with every item in category adjusted.
// Results are rounded to cents. An adjustment that would push any price out of
// (0, MaxPrice] is rejected as a whole.
func AdjustPrices(items []models.MenuItem, category string, mode AdjustMode, value float64, now time.Time) ([]models.MenuItem, []models.FieldError) {
	if !models.IsValidCategory(category) {
		return nil, []models.FieldError{{Field: "category", Message: "unknown category: " + category}}
	}
	if mode != AdjustAbsolute && mode != AdjustPercent {
		return nil, []models.FieldError{{Field: "mode", Message: "mode must be absolute or percent"}}
	}

	out := make([]models.MenuItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].Category != category {
			continue
		}
		var p float64
		switch mode {
		case AdjustAbsolute:
			p = out[i].Price + value
		case AdjustPercent:
			p = out[i].Price * (1 + value/100)
		}
		p = Round2(p)
		if p <= 0 || p > MaxPrice {
			return nil, []models.FieldError{{
				Field:   "value",
				Message: fmt.Sprintf("adjustment puts %q at %.2f, outside (0, %.2f]", out[i].Name, p, MaxPrice),
			}}
		}
		out[i].Price = p
		out[i].UpdatedAt = now
	}
	return out, nil
}

// Search does a case-insensitive substring match over name, description and
// category.
func Search(items []models.MenuItem, query string) []models.MenuItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	var out []models.MenuItem
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), q) ||
			strings.Contains(strings.ToLower(it.Description), q) ||
			strings.Contains(strings.ToLower(it.Category), q) {
			out = append(out, it)
		}
	}
	return out
}

// SortField names the supported sort keys.
type SortField string

const (
	SortByName     SortField = "name"
	SortByPrice    SortField = "price"
	SortByCategory SortField = "category"
	SortByUpdated  SortField = "updated"
)

// Sort returns a sorted copy of items. Category sort falls back to name so the
// order inside a category is stable for the caller.
func Sort(items []models.MenuItem, field SortField, descending bool) []models.MenuItem {
	out := make([]models.MenuItem, len(items))
	copy(out, items)

	less := func(a, b models.MenuItem) bool {
		switch field {
		case SortByPrice:
			return a.Price < b.Price
		case SortByCategory:
			if a.Category != b.Category {
				return a.Category < b.Category
			}
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case SortByUpdated:
			return a.UpdatedAt.Before(b.UpdatedAt)
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if descending {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

// DuplicateGroup is a set of items sharing the same lowercase name + category.
type DuplicateGroup struct {
	Name     string            `json:"name"`
	Category string            `json:"category"`
	Items    []models.MenuItem `json:"items"`
}

// FindDuplicates groups items by lowercase name + category and returns the
// groups with more than one member, in first-seen order.
func FindDuplicates(items []models.MenuItem) []DuplicateGroup {
	type key struct{ name, category string }
	groups := map[key][]models.MenuItem{}
	var order []key
	for _, it := range items {
		k := key{strings.ToLower(strings.TrimSpace(it.Name)), it.Category}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], it)
	}

	var out []DuplicateGroup
	for _, k := range order {
		if len(groups[k]) > 1 {
			out = append(out, DuplicateGroup{Name: k.name, Category: k.category, Items: groups[k]})
		}
	}
	return out
}
