package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/wa-group-directory/internal/api/http/handlers"
	"github.com/spec-kit/wa-group-directory/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Groups         *handlers.GroupsHandler
	Resolver       *handlers.ResolverHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Reads are public; every mutation sits
// behind the bearer-token middleware.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	api := app.Group("/api")

	api.Post("/user/login", cfg.Users.Login)

	api.Get("/groups", cfg.Groups.List)
	api.Get("/groups/jenis", cfg.Groups.ListJenis)
	api.Get("/resolve-wa-link", cfg.Resolver.Resolve)

	protected := api.Group("", cfg.AuthMiddleware.Handle)
	protected.Post("/groups", cfg.Groups.Create)
	protected.Put("/groups/:id", cfg.Groups.Update)
	protected.Delete("/groups/:id", cfg.Groups.Delete)
	protected.Patch("/groups/:id/status", cfg.Groups.ChangeStatus)
}
