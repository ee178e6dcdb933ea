package httpserver

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"valinor/internal/config"
	"valinor/internal/datasource"
)

// Prober is the slice of datasource.Probe the handlers need.
type Prober interface {
	ProbeAll(ctx context.Context, limit int) datasource.Result
}

// Deps are built once at startup and shared by every handler.
type Deps struct {
	Settings *config.Settings
	Version  config.Version
	Probe    Prober
}

// Server wraps Fiber app and configuration.
type Server struct {
	app *fiber.App
	cfg *config.Settings
}

// New builds a Fiber server with common middlewares.
func New(deps Deps) *Server {
	app := newApp(deps)
	return &Server{app: app, cfg: deps.Settings}
}

func newApp(deps Deps) *fiber.App {
	s := deps.Settings
	app := fiber.New(fiber.Config{
		AppName:      "valinor " + deps.Version.Version,
		ReadTimeout:  s.HTTP.ReadTimeout,
		WriteTimeout: s.HTTP.WriteTimeout,
		IdleTimeout:  s.HTTP.IdleTimeout,
	})

	app.Use(recover.New())
	app.Use(requestID())
	app.Use(countRequests())

	RegisterRoutes(app, deps)
	return app
}

// App exposes the underlying Fiber app, mostly for tests.
func (s *Server) App() *fiber.App { return s.app }

// Start runs Fiber server and handles graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	addr := cfgAddress(s.cfg.HTTP.Address)
	log.Printf("[valinor] listening on %s", addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(addr)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.HTTP.ShutdownTimeout)
		defer cancel()
		log.Printf("[valinor] shutting down")
		return s.app.ShutdownWithContext(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func cfgAddress(addr string) string {
	if addr == "" {
		return ":8000"
	}
	return addr
}
