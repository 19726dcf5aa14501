package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/justiceconnect/internal/api/http/handlers"
	"github.com/spec-kit/justiceconnect/internal/auth"
	"github.com/spec-kit/justiceconnect/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Profile        *handlers.ProfileHandler
	Cases          *handlers.CasesHandler
	Files          *handlers.FilesHandler
	AdminCases     *handlers.AdminCasesHandler
	Lawyers        *handlers.LawyersHandler
	Metrics        *handlers.MetricsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Profile.Me)

	profile := api.Group("/profile", cfg.AuthMiddleware.Handle)
	profile.Get("/me", cfg.Profile.Me)
	profile.Put("/me", cfg.Profile.UpdateMe)

	// Download links carry their own signed token; no session required.
	api.Get("/files/:token", cfg.Files.Download)

	cases := api.Group("/cases", cfg.AuthMiddleware.Handle)
	cases.Post("/request", auth.RequireRole(domain.RoleSurvivor), cfg.Cases.Submit)
	cases.Get("/mine", auth.RequireRole(domain.RoleSurvivor), cfg.Cases.ListMine)
	cases.Get("/latest", auth.RequireRole(domain.RoleSurvivor), cfg.Cases.Latest)
	cases.Get("/:id", auth.RequireRole(domain.RoleSurvivor, domain.RoleAdmin), cfg.Cases.Get)
	cases.Delete("/:id", auth.RequireRole(domain.RoleSurvivor), cfg.Cases.Delete)
	cases.Get("/:id/attachments/:file/link", auth.RequireRole(domain.RoleSurvivor, domain.RoleAdmin), cfg.Cases.AttachmentLink)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin))
	admin.Get("/cases/queue", cfg.AdminCases.Queue)
	admin.Get("/cases/:caseId", cfg.AdminCases.Detail)
	admin.Post("/cases/:caseId/assign", cfg.AdminCases.Assign)
	admin.Patch("/cases/:caseId/status", cfg.AdminCases.UpdateStatus)

	admin.Get("/lawyers", cfg.Lawyers.List)
	admin.Post("/lawyers", cfg.Lawyers.Create)
	admin.Get("/lawyers/:id", cfg.Lawyers.Get)
	admin.Patch("/lawyers/:id", cfg.Lawyers.Update)

	admin.Get("/metrics/snapshot", cfg.Metrics.Dashboard)
}
