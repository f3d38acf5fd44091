package main

import (
	"log"
	"strings"

	"curryleaf-backend/internal/admin"
	"curryleaf-backend/internal/audit"
	"curryleaf-backend/internal/auth"
	"curryleaf-backend/internal/config"
	"curryleaf-backend/internal/database"
	"curryleaf-backend/internal/manager"
	"curryleaf-backend/internal/models"
	"curryleaf-backend/internal/public"
	"curryleaf-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	st := store.New(database.DB)
	m := manager.New(st)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	// CORS origins arrive as a comma separated string from the environment.
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Static("/profile-images", cfg.ProfileImagePath)

	api := app.Group("/api")

	// Public site endpoints
	api.Get("/menu", public.MenuHandler(m))
	api.Get("/menu/categories", public.CategoriesHandler(m))
	api.Get("/menu/popular", public.PopularHandler(m))
	api.Get("/restaurant-info", public.RestaurantInfoHandler(m))
	api.Get("/buffet", public.BuffetHandler(m))

	// Public auth
	api.Post("/auth/register-super-admin", auth.RegisterSuperAdminHandler(cfg))
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())
	protected.Post("/auth/change-password", auth.ChangePasswordHandler())

	// Content routes, open to every admin role. Super-admin-only endpoints
	// add a second role check per route; a group-level Use would match every
	// path under /admin and lock content admins out.
	content := protected.Group("/admin")
	content.Use(auth.RequireRole(models.RoleSuperAdmin, models.RoleContentAdmin))
	superOnly := auth.RequireRole(models.RoleSuperAdmin)

	content.Get("/menu", admin.ListMenuItemsHandler(m))
	content.Post("/menu", admin.CreateMenuItemHandler(m))
	content.Get("/menu/stats", admin.MenuStatsHandler(m))
	content.Get("/menu/duplicates", admin.FindDuplicatesHandler(m))
	content.Get("/menu/export", admin.ExportMenuHandler(m))
	content.Post("/menu/import", admin.ImportMenuHandler(m))
	content.Post("/menu/adjust-prices", admin.AdjustPricesHandler(m))
	content.Put("/menu/:id", admin.UpdateMenuItemHandler(m))
	content.Delete("/menu/:id", admin.DeleteMenuItemHandler(m))
	content.Post("/menu/:id/toggle-availability", admin.ToggleAvailabilityHandler(m))
	content.Post("/menu/:id/toggle-popular", admin.TogglePopularHandler(m))

	content.Get("/buffet", admin.GetBuffetHandler(m))
	content.Put("/buffet", admin.UpdateBuffetHandler(m))
	content.Get("/restaurant-info", admin.GetRestaurantInfoHandler(m))
	content.Put("/restaurant-info", admin.UpdateRestaurantInfoHandler(m))

	content.Post("/refresh", admin.ForceRefreshHandler(m))

	// Super admin only
	content.Get("/users", superOnly, admin.ListUsersHandler())
	content.Put("/users/:id/role", superOnly, admin.ChangeRoleHandler())
	content.Delete("/users/:id", superOnly, admin.DeleteUserHandler())
	content.Post("/users/:id/picture", superOnly, admin.UploadPictureHandler(cfg))
	content.Delete("/users/:id/picture", superOnly, admin.DeletePictureHandler(cfg))

	content.Post("/invites", superOnly, admin.CreateInviteHandler())
	content.Get("/invites", superOnly, admin.ListInvitesHandler())
	content.Delete("/invites/:id", superOnly, admin.DeleteInviteHandler())
	content.Post("/invites/sweep-expired", superOnly, admin.SweepExpiredInvitesHandler())

	content.Get("/backups", superOnly, admin.ListBackupsHandler(st))
	content.Post("/backups", superOnly, admin.CreateBackupHandler(m))
	content.Post("/backups/:id/restore", superOnly, admin.RestoreBackupHandler(m, st))

	content.Post("/clean-slate", superOnly, admin.CleanSlateHandler(m))
	content.Post("/deploy", superOnly, admin.MarkDeployedHandler(m))

	content.Get("/audit-logs", superOnly, audit.ListAuditLogsHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
