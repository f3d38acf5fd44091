// Package deploy generates the human-readable site-update text recorded when an
// admin marks the current menu as deployed.
package deploy

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"curryleaf-backend/internal/analytics"
	"curryleaf-backend/internal/models"
)

var titler = cases.Title(language.AmericanEnglish)

// Summary renders a deployment announcement for the current aggregate. The
// text is stored alongside the backup snapshot so the change history reads as
// a changelog.
func Summary(agg *models.Aggregate, stats analytics.Stats, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s site update — %s\n", agg.RestaurantInfo.Name, now.Format("Jan 2, 2006"))
	fmt.Fprintf(&b, "Menu: %d items across %d categories (%d available, %d popular)\n",
		stats.TotalItems, len(stats.ByCategory), stats.AvailableCount, stats.PopularCount)

	if agg.Buffet.IsActive {
		fmt.Fprintf(&b, "Buffet: Saturday %s at $%.2f\n", agg.Buffet.Hours, agg.Buffet.Price)
	} else {
		b.WriteString("Buffet: currently off\n")
	}

	cats := make([]string, 0, len(stats.ByCategory))
	for cat := range stats.ByCategory {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	for _, cat := range cats {
		cs := stats.ByCategory[cat]
		fmt.Fprintf(&b, "  %s: %d items, avg $%.2f\n", titler.String(cat), cs.Count, cs.AveragePrice)
	}

	if recent := recentItems(agg.MenuItems, now); len(recent) > 0 {
		fmt.Fprintf(&b, "New this week: %s\n", strings.Join(recent, ", "))
	}

	return b.String()
}

// recentItems lists names of items created within the last seven days, title
// cased for display, oldest first.
func recentItems(items []models.MenuItem, now time.Time) []string {
	type entry struct {
		name    string
		created time.Time
	}
	var entries []entry
	for _, it := range items {
		if now.Sub(it.CreatedAt) <= 7*24*time.Hour {
			entries = append(entries, entry{titler.String(it.Name), it.CreatedAt})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].created.Before(entries[j].created) })

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.name)
	}
	return names
}
