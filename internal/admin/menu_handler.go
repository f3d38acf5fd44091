package admin

import (
	"strings"

	"curryleaf-backend/internal/audit"
	"curryleaf-backend/internal/manager"
	"curryleaf-backend/internal/menu"
	"curryleaf-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// writeError maps manager failures onto HTTP responses: validation errors
// carry their field list, "not found" turns into 404, everything else is a
// storage failure the client may retry.
func writeError(c *fiber.Ctx, err error) error {
	if ve, ok := models.AsValidationError(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"errors": ve.Fields,
		})
	}
	if strings.Contains(err.Error(), "not found") {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, "Could not save changes, please try again")
}

type AdjustPricesRequest struct {
	Category string  `json:"category"`
	Mode     string  `json:"mode"` // "absolute" or "percent"
	Value    float64 `json:"value"`
}

// GET /api/admin/menu?category=&query=&sort=&order=
func ListMenuItemsHandler(m *manager.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		items, err := m.MenuItems(c.Context())
		if err != nil {
			return writeError(c, err)
		}
		if category := c.Query("category"); category != "" {
			var filtered []models.MenuItem
			for _, it := range items {
				if it.Category == category {
					filtered = append(filtered, it)
				}
			}
			items = filtered
		}
		if query := c.Query("query"); query != "" {
			items = menu.Search(items, query)
		}
		if sortField := c.Query("sort"); sortField != "" {
			items = menu.Sort(items, menu.SortField(sortField), c.Query("order") == "desc")
		}
		return c.JSON(items)
	}
}

// POST /api/admin/menu
func CreateMenuItemHandler(m *manager.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, actorName, err := actorFromLocals(c)
		if err != nil {
			return err
		}

		var body manager.MenuItemInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		item, err := m.AddMenuItem(c.Context(), body)
		if err != nil {
			return writeError(c, err)
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID: actorID, UserName: actorName,
			EntityType: "menu_item", EntityID: item.ID,
			Action:      models.AuditActionCreate,
			Description: "added menu item " + item.Name,
			After:       item,
		})

		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// PUT /api/admin/menu/:id
func UpdateMenuItemHandler(m *manager.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, actorName, err := actorFromLocals(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		before, err := m.GetItem(c.Context(), id)
		if err != nil {
			return writeError(c, err)
		}

		var body manager.MenuItemUpdate
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		item, err := m.UpdateMenuItem(c.Context(), id, body)
		if err != nil {
			return writeError(c, err)
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID: actorID, UserName: actorName,
			EntityType: "menu_item", EntityID: item.ID,
			Action:      models.AuditActionUpdate,
			Description: "updated menu item " + item.Name,
			Before:      before, After: item,
		})

		return c.JSON(item)
	}
}

// DELETE /api/admin/menu/:id
func DeleteMenuItemHandler(m *manager.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, actorName, err := actorFromLocals(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		before, err := m.GetItem(c.Context(), id)
		if err != nil {
			return writeError(c, err)
		}
		if err := m.DeleteMenuItem(c.Context(), id); err != nil {
			return writeError(c, err)
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID: actorID, UserName: actorName,
			EntityType: "menu_item", EntityID: id,
			Action:      models.AuditActionDelete,
			Description: "deleted menu item " + before.Name,
			Before:      before,
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/admin/menu/:id/toggle-availability
func ToggleAvailabilityHandler(m *manager.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, err := m.ToggleAvailability(c.Context(), c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(item)
	}
}

// POST /api/admin/menu/:id/toggle-popular
func TogglePopularHandler(m *manager.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		item, err := m.TogglePopular(c.Context(), c.Params("id"))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(item)
	}
}

// POST /api/admin/menu/adjust-prices
func AdjustPricesHandler(m *manager.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, actorName, err := actorFromLocals(c)
		if err != nil {
			return err
		}

		var body AdjustPricesRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		touched, err := m.AdjustCategoryPrices(c.Context(), body.Category, menu.AdjustMode(body.Mode), body.Value)
		if err != nil {
			return writeError(c, err)
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID: actorID, UserName: actorName,
			EntityType: "menu_item", EntityID: body.Category,
			Action:      models.AuditActionUpdate,
			Description: "adjusted prices for category " + body.Category,
			After:       touched,
		})

		return c.JSON(fiber.Map{"updated": len(touched), "items": touched})
	}
}

// GET /api/admin/menu/duplicates
func FindDuplicatesHandler(m *manager.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		groups, err := m.FindDuplicates(c.Context())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(groups)
	}
}

// GET /api/admin/menu/stats
func MenuStatsHandler(m *manager.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := m.Stats(c.Context())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(stats)
	}
}

// POST /api/admin/refresh re-reads the aggregate from the store. This is the
// only way this process picks up writes made by another instance.
func ForceRefreshHandler(m *manager.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := m.ForceRefresh(c.Context()); err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Cache refreshed"})
	}
}

// POST /api/admin/clean-slate wipes everything and reseeds the defaults.
func CleanSlateHandler(m *manager.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, actorName, err := actorFromLocals(c)
		if err != nil {
			return err
		}
		if err := m.CleanSlate(c.Context()); err != nil {
			return writeError(c, err)
		}
		_ = audit.WriteLog(audit.LogOptions{
			UserID: actorID, UserName: actorName,
			EntityType: "menu_item", EntityID: "all",
			Action:      models.AuditActionDelete,
			Description: "reset menu to the default dataset",
		})
		return c.JSON(fiber.Map{"message": "Menu reset to defaults"})
	}
}

// POST /api/admin/deploy snapshots the aggregate and returns the generated
// site-update announcement.
func MarkDeployedHandler(m *manager.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, actorName, err := actorFromLocals(c)
		if err != nil {
			return err
		}
		summary, err := m.MarkDeployed(c.Context())
		if err != nil {
			return writeError(c, err)
		}
		_ = audit.WriteLog(audit.LogOptions{
			UserID: actorID, UserName: actorName,
			EntityType: "menu_item", EntityID: "all",
			Action:      models.AuditActionDeploy,
			Description: "marked current menu as deployed",
			After:       fiber.Map{"summary": summary},
		})
		return c.JSON(fiber.Map{"summary": summary})
	}
}
