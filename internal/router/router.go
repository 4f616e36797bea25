package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/iqac-report-api/internal/config"
	"github.com/noah-isme/iqac-report-api/internal/handler"
	"github.com/noah-isme/iqac-report-api/internal/middleware"
	"github.com/noah-isme/iqac-report-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ReportHandler   *handler.ReportHandler
	ActivityHandler *handler.ActivityHandler
	HealthProbes    map[string]handler.HealthProbe
	JWTMiddleware   fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.HealthProbes))
	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	reports := app.Group("/api/v2/reports",
		jwtMiddleware,
		middleware.RequireRole(middleware.RoleAdmin, middleware.RoleIQAC, middleware.RoleHOD, middleware.RoleFaculty),
	)

	if deps.ActivityHandler != nil {
		audit := reports.Group("/audit", middleware.WithAuth(func(c *fiber.Ctx) error {
			return c.Next()
		}, middleware.AuthOptions{Role: middleware.AuthRoleAdmin}))
		deps.ActivityHandler.Register(audit)
	}

	if deps.ReportHandler != nil {
		reports.Use("/download", middleware.RateLimit("reports", cfg.ReportRateLimit, rateWindow(cfg)))
		deps.ReportHandler.Register(reports)
	}
}

func rateWindow(cfg config.Config) time.Duration {
	if cfg.ReportRateWindow <= 0 {
		return time.Minute
	}
	return cfg.ReportRateWindow
}
