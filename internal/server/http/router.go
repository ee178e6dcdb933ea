package httpserver

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"valinor/internal/metrics"
	"valinor/pkg/cfg"
)

// RegisterRoutes wires every endpoint to its handler.
func RegisterRoutes(app *fiber.App, deps Deps) {
	metrics.Init()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard", fiber.StatusTemporaryRedirect)
	})
	app.Get("/health", healthHandler(deps))
	app.Get("/version", versionHandler(deps))
	app.Get("/sources/probe", probeHandler(deps))
	app.Get("/dashboard", dashboardHandler(deps))
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	if cfg.IsDev(deps.Settings.Env) {
		app.Get("/debug/config", func(c *fiber.Ctx) error { return c.JSON(deps.Settings) })
	}
}
