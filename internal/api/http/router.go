package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-intake-service/internal/api/http/handlers"
	"github.com/spec-kit/lead-intake-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	PublicLeads    *handlers.PublicLeadsHandler
	Auth           *handlers.AuthHandler
	Leads          *handlers.LeadsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	public := app.Group("/public")
	public.Post("/leads", cfg.PublicLeads.CreateLead)

	internal := app.Group("/internal")
	internal.Post("/token", cfg.Auth.Token)

	protected := internal.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/leads", cfg.Leads.List)
	protected.Get("/leads/:id", cfg.Leads.GetDetail)
	protected.Patch("/leads/:id", cfg.Leads.UpdateStatus)
}
