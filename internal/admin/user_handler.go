package admin

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"curryleaf-backend/internal/audit"
	"curryleaf-backend/internal/auth"
	"curryleaf-backend/internal/config"
	"curryleaf-backend/internal/database"
	"curryleaf-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AdminUserResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	PictureURL  string `json:"picture_url"`
	LastLoginAt string `json:"last_login_at,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type ChangeRoleRequest struct {
	Role models.UserRole `json:"role"`
}

func toUserResponse(u models.User) AdminUserResponse {
	resp := AdminUserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		PictureURL: u.PictureURL,
		CreatedAt:  u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if u.LastLoginAt != nil {
		resp.LastLoginAt = u.LastLoginAt.Format("2006-01-02 15:04:05")
	}
	return resp
}

func actorFromLocals(c *fiber.Ctx) (uint, string, error) {
	id, ok := c.Locals(auth.CtxUserIDKey).(uint)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusUnauthorized, "Could not resolve user")
	}
	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusUnauthorized, "Could not resolve user")
	}
	return user.ID, user.Name, nil
}

func countSuperAdmins() int64 {
	var count int64
	database.DB.Model(&models.User{}).
		Where("role = ?", models.RoleSuperAdmin).
		Count(&count)
	return count
}

// GET /api/admin/users
func ListUsersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var users []models.User
		if err := database.DB.Order("created_at ASC").Find(&users).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list users")
		}

		resp := make([]AdminUserResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, toUserResponse(u))
		}
		return c.JSON(resp)
	}
}

// PUT /api/admin/users/:id/role
func ChangeRoleHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, actorName, err := actorFromLocals(c)
		if err != nil {
			return err
		}

		var body ChangeRoleRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		var target models.User
		if err := database.DB.First(&target, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}

		if err := CanChangeRole(target, body.Role, countSuperAdmins()); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		before := target
		target.Role = body.Role
		if err := database.DB.Save(&target).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not change role")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      actorID,
			UserName:    actorName,
			EntityType:  "user",
			EntityID:    fmt.Sprint(target.ID),
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("role of %s changed from %s to %s", target.Email, before.Role, target.Role),
			Before:      fiber.Map{"role": before.Role},
			After:       fiber.Map{"role": target.Role},
		})

		return c.JSON(toUserResponse(target))
	}
}

// DELETE /api/admin/users/:id
//
// Responds with {success, message}. Deleting an already-deleted user reports
// success so the operation is idempotent.
func DeleteUserHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actorID, actorName, err := actorFromLocals(c)
		if err != nil {
			return err
		}

		id := c.Params("id")

		// Self-deletion is checked before any lookup or delete is issued.
		if id == fmt.Sprint(actorID) {
			return fiber.NewError(fiber.StatusBadRequest, ErrSelfDeletion.Error())
		}

		var target models.User
		if err := database.DB.First(&target, "id = ?", id).Error; err != nil {
			return c.JSON(fiber.Map{"success": true, "message": "User not found (already deleted)"})
		}

		if err := CanDeleteUser(actorID, target, countSuperAdmins()); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if err := database.DB.Delete(&models.User{}, "id = ?", target.ID).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete user")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserID:      actorID,
			UserName:    actorName,
			EntityType:  "user",
			EntityID:    fmt.Sprint(target.ID),
			Action:      models.AuditActionDelete,
			Description: "deleted admin account " + target.Email,
			Before:      toUserResponse(target),
		})

		return c.JSON(fiber.Map{"success": true, "message": "User deleted"})
	}
}

// POST /api/admin/users/:id/picture (multipart field "picture")
func UploadPictureHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var target models.User
		if err := database.DB.First(&target, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}

		file, err := c.FormFile("picture")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "A picture file is required")
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
			return fiber.NewError(fiber.StatusBadRequest, "Only jpg, png and webp pictures are supported")
		}

		if err := os.MkdirAll(cfg.ProfileImagePath, 0o755); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not prepare image directory")
		}

		filename := fmt.Sprintf("user-%d%s", target.ID, ext)
		dst := filepath.Join(cfg.ProfileImagePath, filename)
		if err := c.SaveFile(file, dst); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not save picture")
		}

		// Replace any previous picture with a different extension.
		if target.PictureURL != "" && !strings.HasSuffix(target.PictureURL, filename) {
			old := filepath.Join(cfg.ProfileImagePath, filepath.Base(target.PictureURL))
			_ = os.Remove(old)
		}

		target.PictureURL = "/profile-images/" + filename
		if err := database.DB.Save(&target).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update user")
		}

		return c.JSON(fiber.Map{"picture_url": target.PictureURL})
	}
}

// DELETE /api/admin/users/:id/picture
func DeletePictureHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var target models.User
		if err := database.DB.First(&target, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		if target.PictureURL != "" {
			_ = os.Remove(filepath.Join(cfg.ProfileImagePath, filepath.Base(target.PictureURL)))
		}
		target.PictureURL = ""
		if err := database.DB.Save(&target).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update user")
		}
		return c.JSON(fiber.Map{"success": true, "message": "Picture removed"})
	}
}
