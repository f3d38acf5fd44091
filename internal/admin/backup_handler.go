package admin

import (
	"curryleaf-backend/internal/audit"
	"curryleaf-backend/internal/manager"
	"curryleaf-backend/internal/models"
	"curryleaf-backend/internal/store"

	"github.com/gofiber/fiber/v2"
)

// GET /api/admin/backups
func ListBackupsHandler(st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		backups, err := st.ListBackups(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list backups")
		}
		return c.JSON(backups)
	}
}

// POST /api/admin/backups creates a snapshot of the current aggregate.
func CreateBackupHandler(m *manager.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := m.CreateBackup(c.Context()); err != nil {
			return writeError(c, err)
		}
		return c.JSON(fiber.Map{"message": "Backup created"})
	}
}

// POST /api/admin/backups/:id/restore swaps a snapshot back in as the live
// aggregate.
func RestoreBackupHandler(m *manager.Manager, st *store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, actorName, err := actorFromLocals(c)
		if err != nil {
			return err
		}

		id := c.Params("id")
		agg, err := st.GetBackup(c.Context(), id)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Backup not found")
		}

		if err := m.RestoreAggregate(c.Context(), agg, "restore"); err != nil {
			return writeError(c, err)
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID: actorID, UserName: actorName,
			EntityType: "menu_item", EntityID: "all",
			Action:      models.AuditActionUpdate,
			Description: "restored menu from backup " + id,
		})

		return c.JSON(fiber.Map{"message": "Backup restored", "items": len(agg.MenuItems)})
	}
}
