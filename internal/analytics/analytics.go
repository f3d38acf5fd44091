// Package analytics computes aggregate menu statistics by full scan of the
// in-memory item collection. Nothing is maintained incrementally; callers
// recompute on demand.
package analytics

import (
	"math"
	"sort"
	"time"

	"curryleaf-backend/internal/models"
)

type CategoryStats struct {
	Count        int     `json:"count"`
	AveragePrice float64 `json:"average_price"`
}

type Stats struct {
	TotalItems     int     `json:"total_items"`
	AvailableCount int     `json:"available_count"`
	PopularCount   int     `json:"popular_count"`
	AvailableRate  float64 `json:"available_rate"` // 0..1
	PopularRate    float64 `json:"popular_rate"`   // 0..1

	AveragePrice float64 `json:"average_price"`
	MedianPrice  float64 `json:"median_price"`
	ModePrice    float64 `json:"mode_price"`
	MinPrice     float64 `json:"min_price"`
	MaxPrice     float64 `json:"max_price"`

	ByCategory map[string]CategoryStats `json:"by_category"`

	// Items created within the trailing window, relative to the time passed in.
	AddedLast7Days  int `json:"added_last_7_days"`
	AddedLast30Days int `json:"added_last_30_days"`
	AddedLast90Days int `json:"added_last_90_days"`
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func Compute(items []models.MenuItem, now time.Time) Stats {
	s := Stats{ByCategory: map[string]CategoryStats{}}
	s.TotalItems = len(items)
	if len(items) == 0 {
		return s
	}

	prices := make([]float64, 0, len(items))
	catSum := map[string]float64{}
	priceFreq := map[float64]int{}
	s.MinPrice = items[0].Price
	s.MaxPrice = items[0].Price

	var sum float64
	for _, it := range items {
		if it.IsAvailable {
			s.AvailableCount++
		}
		if it.IsPopular {
			s.PopularCount++
		}
		sum += it.Price
		prices = append(prices, it.Price)
		priceFreq[round2(it.Price)]++
		if it.Price < s.MinPrice {
			s.MinPrice = it.Price
		}
		if it.Price > s.MaxPrice {
			s.MaxPrice = it.Price
		}

		cs := s.ByCategory[it.Category]
		cs.Count++
		catSum[it.Category] += it.Price
		s.ByCategory[it.Category] = cs

		age := now.Sub(it.CreatedAt)
		if age <= 7*24*time.Hour {
			s.AddedLast7Days++
		}
		if age <= 30*24*time.Hour {
			s.AddedLast30Days++
		}
		if age <= 90*24*time.Hour {
			s.AddedLast90Days++
		}
	}

	s.AvailableRate = round2(float64(s.AvailableCount) / float64(len(items)))
	s.PopularRate = round2(float64(s.PopularCount) / float64(len(items)))
	s.AveragePrice = round2(sum / float64(len(items)))

	sort.Float64s(prices)
	mid := len(prices) / 2
	if len(prices)%2 == 1 {
		s.MedianPrice = prices[mid]
	} else {
		s.MedianPrice = round2((prices[mid-1] + prices[mid]) / 2)
	}

	// Mode: most frequent cent-rounded price; ties broken by the lower price so
	// the result is deterministic.
	bestCount := 0
	for p, n := range priceFreq {
		if n > bestCount || (n == bestCount && p < s.ModePrice) {
			bestCount = n
			s.ModePrice = p
		}
	}

	for cat, cs := range s.ByCategory {
		cs.AveragePrice = round2(catSum[cat] / float64(cs.Count))
		s.ByCategory[cat] = cs
	}

	return s
}
