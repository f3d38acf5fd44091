package admin

import (
	"strings"

	"curryleaf-backend/internal/audit"
	"curryleaf-backend/internal/manager"
	"curryleaf-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type RestaurantInfoRequest struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Website     string `json:"website"`
	Description string `json:"description"`

	HoursMonday    string `json:"hours_monday"`
	HoursTuesday   string `json:"hours_tuesday"`
	HoursWednesday string `json:"hours_wednesday"`
	HoursThursday  string `json:"hours_thursday"`
	HoursFriday    string `json:"hours_friday"`
	HoursSaturday  string `json:"hours_saturday"`
	HoursSunday    string `json:"hours_sunday"`
}

// GET /api/admin/restaurant-info
func GetRestaurantInfoHandler(m *manager.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		info, err := m.RestaurantInfo(c.Context())
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(info)
	}
}

// PUT /api/admin/restaurant-info
//
// Uses the single-document fast path; the menu collection is never touched.
func UpdateRestaurantInfoHandler(m *manager.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, actorName, err := actorFromLocals(c)
		if err != nil {
			return err
		}

		var body RestaurantInfoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		before, err := m.RestaurantInfo(c.Context())
		if err != nil {
			return writeError(c, err)
		}

		updated, err := m.UpdateRestaurantInfo(c.Context(), models.RestaurantInfo{
			Name:           strings.TrimSpace(body.Name),
			Address:        strings.TrimSpace(body.Address),
			Phone:          strings.TrimSpace(body.Phone),
			Email:          strings.TrimSpace(strings.ToLower(body.Email)),
			Website:        strings.TrimSpace(body.Website),
			Description:    strings.TrimSpace(body.Description),
			HoursMonday:    body.HoursMonday,
			HoursTuesday:   body.HoursTuesday,
			HoursWednesday: body.HoursWednesday,
			HoursThursday:  body.HoursThursday,
			HoursFriday:    body.HoursFriday,
			HoursSaturday:  body.HoursSaturday,
			HoursSunday:    body.HoursSunday,
		})
		if err != nil {
			return writeError(c, err)
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID: actorID, UserName: actorName,
			EntityType: "restaurant_info", EntityID: "1",
			Action:      models.AuditActionUpdate,
			Description: "updated restaurant contact/hours information",
			Before:      before, After: updated,
		})

		return c.JSON(updated)
	}
}
