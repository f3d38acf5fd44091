package deploy

import (
	"strings"
	"testing"
	"time"

	"curryleaf-backend/internal/analytics"
	"curryleaf-backend/internal/models"
)

func TestSummary(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	agg := &models.Aggregate{
		RestaurantInfo: models.RestaurantInfo{Name: "Curry Leaf Kitchen"},
		Buffet:         models.BuffetSettings{Price: 15.99, Hours: "12:00 PM - 3:00 PM", IsActive: true},
		MenuItems: []models.MenuItem{
			{Name: "butter chicken", Price: 13.99, Category: models.CategoryCurries, IsAvailable: true, CreatedAt: now.AddDate(0, 0, -2)},
			{Name: "Garlic Naan", Price: 3.49, Category: models.CategoryBreads, IsAvailable: true, CreatedAt: now.AddDate(0, 0, -40)},
		},
	}
	stats := analytics.Compute(agg.MenuItems, now)
	got := Summary(agg, stats, now)

	for _, want := range []string{
		"Curry Leaf Kitchen site update — Aug 30, 2026",
		"Menu: 2 items across 2 categories",
		"Buffet: Saturday 12:00 PM - 3:00 PM at $15.99",
		"New this week: Butter Chicken",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Garlic Naan,") {
		t.Errorf("old item listed as new:\n%s", got)
	}
}

func TestSummary_BuffetOff(t *testing.T) {
	agg := &models.Aggregate{
		RestaurantInfo: models.RestaurantInfo{Name: "Curry Leaf Kitchen"},
		Buffet:         models.BuffetSettings{IsActive: false},
	}
	got := Summary(agg, analytics.Compute(nil, time.Now()), time.Now())
	if !strings.Contains(got, "Buffet: currently off") {
		t.Errorf("summary = %q", got)
	}
}
