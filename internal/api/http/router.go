package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/thallyson03/ceapdesk/internal/api/http/handlers"
	"github.com/thallyson03/ceapdesk/internal/auth"
	"github.com/thallyson03/ceapdesk/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Holidays       *handlers.HolidaysHandler
	SLA            *handlers.SLAHandler
	Sectors        *handlers.SectorsHandler
	Tickets        *handlers.TicketsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	app.Post("/auth/login", cfg.Auth.Login)

	authed := app.Group("", cfg.AuthMiddleware.Handle)
	admin := auth.RequireRole(domain.UserRoleAdmin)
	anyRole := auth.RequireRole(domain.UserRoleAdmin, domain.UserRoleAgent)

	holidays := authed.Group("/holidays")
	holidays.Get("/", admin, cfg.Holidays.List)
	holidays.Get("/year/:year", anyRole, cfg.Holidays.ListActiveByYear)
	holidays.Get("/business-day/:date", anyRole, cfg.Holidays.CheckBusinessDay)
	holidays.Post("/defaults/:year", admin, cfg.Holidays.SeedDefaults)
	holidays.Post("/", admin, cfg.Holidays.Create)
	holidays.Put("/:id", admin, cfg.Holidays.Update)
	holidays.Delete("/:id", admin, cfg.Holidays.Delete)

	slaGroup := authed.Group("/sla")
	slaGroup.Get("/due-date", anyRole, cfg.SLA.DueDate)
	slaGroup.Get("/remaining", anyRole, cfg.SLA.Remaining)
	slaGroup.Get("/policies", admin, cfg.SLA.ListPolicies)
	slaGroup.Get("/policies/sector/:sectorId", anyRole, cfg.SLA.GetSectorPolicy)
	slaGroup.Post("/policies", admin, cfg.SLA.CreatePolicy)
	slaGroup.Put("/policies/:id", admin, cfg.SLA.UpdatePolicy)
	slaGroup.Delete("/policies/:id", admin, cfg.SLA.DeletePolicy)

	sectors := authed.Group("/sectors")
	sectors.Get("/", anyRole, cfg.Sectors.List)
	sectors.Post("/", admin, cfg.Sectors.Create)

	tickets := authed.Group("/tickets", anyRole)
	tickets.Get("/sla/alerts", cfg.Tickets.ListAlerts)
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/", cfg.Tickets.ListTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
}
