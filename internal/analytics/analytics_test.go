package analytics

import (
	"testing"
	"time"

	"curryleaf-backend/internal/models"
)

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil, time.Now())
	if s.TotalItems != 0 || s.AveragePrice != 0 || len(s.ByCategory) != 0 {
		t.Errorf("empty stats = %+v", s)
	}
}

func TestCompute(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	items := []models.MenuItem{
		{Price: 10, Category: models.CategoryCurries, IsAvailable: true, IsPopular: true, CreatedAt: now.AddDate(0, 0, -1)},
		{Price: 10, Category: models.CategoryCurries, IsAvailable: true, CreatedAt: now.AddDate(0, 0, -20)},
		{Price: 20, Category: models.CategoryBiryani, IsAvailable: false, CreatedAt: now.AddDate(0, 0, -60)},
		{Price: 40, Category: models.CategoryBiryani, IsAvailable: true, CreatedAt: now.AddDate(0, 0, -120)},
	}
	s := Compute(items, now)

	if s.TotalItems != 4 || s.AvailableCount != 3 || s.PopularCount != 1 {
		t.Errorf("counts = %d/%d/%d", s.TotalItems, s.AvailableCount, s.PopularCount)
	}
	if s.AvailableRate != 0.75 || s.PopularRate != 0.25 {
		t.Errorf("rates = %v/%v", s.AvailableRate, s.PopularRate)
	}
	if s.AveragePrice != 20 {
		t.Errorf("average = %v, want 20", s.AveragePrice)
	}
	if s.MedianPrice != 15 { // (10+20)/2
		t.Errorf("median = %v, want 15", s.MedianPrice)
	}
	if s.ModePrice != 10 {
		t.Errorf("mode = %v, want 10", s.ModePrice)
	}
	if s.MinPrice != 10 || s.MaxPrice != 40 {
		t.Errorf("min/max = %v/%v", s.MinPrice, s.MaxPrice)
	}
	if s.ByCategory[models.CategoryCurries].Count != 2 || s.ByCategory[models.CategoryCurries].AveragePrice != 10 {
		t.Errorf("curries = %+v", s.ByCategory[models.CategoryCurries])
	}
	if s.ByCategory[models.CategoryBiryani].AveragePrice != 30 {
		t.Errorf("biryani = %+v", s.ByCategory[models.CategoryBiryani])
	}
	if s.AddedLast7Days != 1 || s.AddedLast30Days != 2 || s.AddedLast90Days != 3 {
		t.Errorf("recency = %d/%d/%d, want 1/2/3", s.AddedLast7Days, s.AddedLast30Days, s.AddedLast90Days)
	}
}

func TestCompute_MedianOddAndModeTie(t *testing.T) {
	now := time.Now()
	items := []models.MenuItem{
		{Price: 5, Category: models.CategoryBreads, CreatedAt: now},
		{Price: 7, Category: models.CategoryBreads, CreatedAt: now},
		{Price: 9, Category: models.CategoryBreads, CreatedAt: now},
	}
	s := Compute(items, now)
	if s.MedianPrice != 7 {
		t.Errorf("median = %v, want 7", s.MedianPrice)
	}
	// All frequencies tie at 1; the lowest price wins.
	if s.ModePrice != 5 {
		t.Errorf("mode = %v, want 5", s.ModePrice)
	}
}
