package admin

import (
	"time"

	"curryleaf-backend/internal/audit"
	"curryleaf-backend/internal/database"
	"curryleaf-backend/internal/invite"
	"curryleaf-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateInviteRequest struct {
	ExpiryHours int `json:"expiry_hours"` // 0 means the 168h default
	MaxUses     int `json:"max_uses"`     // 0 means 1
}

type InviteResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Status    string `json:"status"`
	CreatedBy uint   `json:"created_by"`
	MaxUses   int    `json:"max_uses"`
	UsedCount int    `json:"used_count"`
	UsedBy    *uint  `json:"used_by,omitempty"`
	ExpiresAt string `json:"expires_at"`
	CreatedAt string `json:"created_at"`
}

func toInviteResponse(ic models.InviteCode, now time.Time) InviteResponse {
	return InviteResponse{
		ID:        ic.ID,
		Code:      ic.Code,
		Status:    string(invite.StatusOf(ic, now)),
		CreatedBy: ic.CreatedBy,
		MaxUses:   ic.MaxUses,
		UsedCount: ic.UsedCount,
		UsedBy:    ic.UsedBy,
		ExpiresAt: ic.ExpiresAt.Format("2006-01-02 15:04:05"),
		CreatedAt: ic.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// POST /api/admin/invites
func CreateInviteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, actorName, err := actorFromLocals(c)
		if err != nil {
			return err
		}

		var body CreateInviteRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		expiry := invite.DefaultExpiry
		if body.ExpiryHours > 0 {
			expiry = time.Duration(body.ExpiryHours) * time.Hour
		}
		maxUses := invite.DefaultMaxUses
		if body.MaxUses > 0 {
			maxUses = body.MaxUses
		}

		now := time.Now()
		ic := models.InviteCode{
			ID:        uuid.NewString(),
			Code:      invite.NewCode(),
			CreatedBy: actorID,
			MaxUses:   maxUses,
			ExpiresAt: now.Add(expiry),
			CreatedAt: now,
		}

		if err := database.DB.Create(&ic).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create invite code")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      actorID,
			UserName:    actorName,
			EntityType:  "invite_code",
			EntityID:    ic.ID,
			Action:      models.AuditActionCreate,
			Description: "created invite code " + ic.Code,
			After:       toInviteResponse(ic, now),
		})

		return c.Status(fiber.StatusCreated).JSON(toInviteResponse(ic, now))
	}
}

// GET /api/admin/invites
func ListInvitesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var codes []models.InviteCode
		if err := database.DB.Order("created_at DESC").Find(&codes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list invite codes")
		}

		now := time.Now()
		resp := make([]InviteResponse, 0, len(codes))
		for _, ic := range codes {
			resp = append(resp, toInviteResponse(ic, now))
		}
		return c.JSON(resp)
	}
}

// DELETE /api/admin/invites/:id
func DeleteInviteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, actorName, err := actorFromLocals(c)
		if err != nil {
			return err
		}

		var ic models.InviteCode
		if err := database.DB.First(&ic, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Invite code not found")
		}
		if err := database.DB.Delete(&models.InviteCode{}, "id = ?", ic.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete invite code")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      actorID,
			UserName:    actorName,
			EntityType:  "invite_code",
			EntityID:    ic.ID,
			Action:      models.AuditActionDelete,
			Description: "deleted invite code " + ic.Code,
			Before:      toInviteResponse(ic, time.Now()),
		})

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/admin/invites/sweep-expired
//
// Removes codes that are past expiry and were never fully used. Expiry is a
// derived state, so this sweep is housekeeping, not a correctness requirement.
func SweepExpiredInvitesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		res := database.DB.
			Where("expires_at < ? AND used_count < max_uses", time.Now()).
			Delete(&models.InviteCode{})
		if res.Error != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not sweep invite codes")
		}
		return c.JSON(fiber.Map{"deleted": res.RowsAffected})
	}
}
