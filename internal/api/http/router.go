// Package http wires the fiber application: middleware, error rendering and
// the route table.
package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/qmdesk/complaint-service/internal/api/http/handlers"
	"github.com/qmdesk/complaint-service/internal/auth"
	"github.com/qmdesk/complaint-service/internal/domain"
)

// Handlers bundles everything the route table needs.
type Handlers struct {
	Health     *handlers.HealthHandler
	Auth       *handlers.AuthHandler
	Users      *handlers.UserHandler
	Complaints *handlers.ComplaintHandler
	Dashboard  *handlers.DashboardHandler
	Reports    *handlers.ReportHandler
	Lookups    *handlers.LookupHandler
	AuthMW     *auth.AuthMiddleware
}

// RegisterRoutes attaches the full route table. Complaint reads are open to
// any authenticated caller; complaint mutation and reporting need the super
// user or admin role; account management is admin only.
func RegisterRoutes(app *fiber.App, h Handlers) {
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/health/metrics", h.Health.Metrics)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/password/reset/request", h.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", h.Auth.ConfirmPasswordReset)
	authGroup.Post("/password/change", h.AuthMW.Handle, h.Auth.ChangePassword)

	adminOnly := auth.RequireRole(domain.RoleAdmin)
	users := api.Group("/users", h.AuthMW.Handle)
	users.Get("/me", h.Users.Me)
	users.Get("/roles", adminOnly, h.Users.Roles)
	users.Get("/", adminOnly, h.Users.List)
	users.Post("/", adminOnly, h.Users.Create)
	users.Get("/:id", adminOnly, h.Users.Get)
	users.Put("/:id", adminOnly, h.Users.Update)
	users.Delete("/:id", adminOnly, h.Users.Delete)

	canMutate := auth.RequireRole(domain.RoleAdmin, domain.RoleSuperUser)
	complaints := api.Group("/complaints", h.AuthMW.Handle)
	complaints.Get("/", h.Complaints.List)
	complaints.Get("/:id", h.Complaints.Get)
	complaints.Post("/", canMutate, h.Complaints.Create)
	complaints.Put("/:id", canMutate, h.Complaints.Update)
	complaints.Delete("/:id", canMutate, h.Complaints.Delete)

	api.Get("/dashboard-stats", h.AuthMW.Handle, h.Dashboard.Stats)
	api.Get("/recent-complaints", h.AuthMW.Handle, h.Dashboard.RecentComplaints)

	reports := api.Group("/reports", h.AuthMW.Handle, canMutate)
	reports.Post("/query", h.Reports.Query)
	reports.Post("/export", h.Reports.Export)

	api.Get("/lookups/:dimension", h.AuthMW.Handle, h.Lookups.List)
}
