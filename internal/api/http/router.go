package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Tickets      *handlers.TicketsHandler
	AdminTickets *handlers.AdminTicketsHandler
	Gate         *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Route groups mirror the two protected
// views: /tickets for employees, /admin for administrators.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/admin/login", cfg.Auth.AdminLogin)
	authGroup.Post("/logout", cfg.Gate.Require(""), cfg.Auth.Logout)
	authGroup.Get("/me", cfg.Gate.Require(""), cfg.Auth.Me)

	tickets := app.Group("/tickets", cfg.Gate.Require(domain.RoleUser))
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.Get)

	admin := app.Group("/admin/tickets", cfg.Gate.Require(domain.RoleAdmin))
	admin.Get("/", cfg.AdminTickets.List)
	admin.Get("/stats", cfg.AdminTickets.Stats)
	admin.Get("/:id", cfg.AdminTickets.Get)
	admin.Patch("/:id", cfg.AdminTickets.Update)
}
