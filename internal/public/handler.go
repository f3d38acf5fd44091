// Package public serves the unauthenticated endpoints the marketing site
// reads from. Everything here is read-only and backed by the manager cache.
package public

import (
	"time"

	"curryleaf-backend/internal/buffet"
	"curryleaf-backend/internal/manager"
	"curryleaf-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/menu
//
// Only available items are exposed publicly; the back office sees the rest.
func MenuHandler(m *manager.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := m.AvailableItems(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Menu is temporarily unavailable")
		}
		grouped := make(map[string][]models.MenuItem)
		for _, it := range items {
			grouped[it.Category] = append(grouped[it.Category], it)
		}
		return c.JSON(fiber.Map{
			"categories": models.MenuCategories(),
			"items":      grouped,
		})
	}
}

// GET /api/menu/categories
func CategoriesHandler(m *manager.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		categories, err := m.Categories(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Menu is temporarily unavailable")
		}
		return c.JSON(categories)
	}
}

// GET /api/menu/popular
func PopularHandler(m *manager.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := m.PopularItems(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Menu is temporarily unavailable")
		}
		return c.JSON(items)
	}
}

// GET /api/restaurant-info
func RestaurantInfoHandler(m *manager.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		info, err := m.RestaurantInfo(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Restaurant info is temporarily unavailable")
		}
		return c.JSON(fiber.Map{
			"info":  info,
			"hours": info.HoursMap(),
		})
	}
}

// GET /api/buffet
//
// Includes whether the buffet is being served right now so the site can show
// a live banner.
func BuffetHandler(m *manager.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		settings, err := m.BuffetSettings(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Buffet info is temporarily unavailable")
		}
		return c.JSON(fiber.Map{
			"settings":       settings,
			"serving_now":    buffet.IsActiveNow(settings, time.Now()),
			"saturdays_only": true,
		})
	}
}
