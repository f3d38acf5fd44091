package admin

import (
	"strings"

	"curryleaf-backend/internal/audit"
	"curryleaf-backend/internal/manager"
	"curryleaf-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type BuffetRequest struct {
	Price       float64 `json:"price"`
	Hours       string  `json:"hours"`
	Description string  `json:"description"`
	IsActive    bool    `json:"is_active"`
}

// GET /api/admin/buffet
func GetBuffetHandler(m *manager.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		settings, err := m.BuffetSettings(c.Context())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(settings)
	}
}

// PUT /api/admin/buffet
//
// Uses the single-document fast path; the menu collection is never touched.
func UpdateBuffetHandler(m *manager.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, actorName, err := actorFromLocals(c)
		if err != nil {
			return err
		}

		var body BuffetRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		before, err := m.BuffetSettings(c.Context())
		if err != nil {
			return writeError(c, err)
		}

		updated, changes, err := m.UpdateBuffetSettings(c.Context(), models.BuffetSettings{
			Price:       body.Price,
			Hours:       strings.TrimSpace(body.Hours),
			Description: strings.TrimSpace(body.Description),
			IsActive:    body.IsActive,
		})
		if err != nil {
			return writeError(c, err)
		}

		if len(changes) > 0 {
			_ = audit.WriteLog(audit.LogOptions{
				UserID: actorID, UserName: actorName,
				EntityType: "buffet_settings", EntityID: "1",
				Action:      models.AuditActionUpdate,
				Description: strings.Join(changes, "; "),
				Before:      before, After: updated,
			})
		}

		return c.JSON(fiber.Map{"settings": updated, "changes": changes})
	}
}
