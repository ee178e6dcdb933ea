package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"valinor/internal/config"
	"valinor/internal/datasource"
	httpserver "valinor/internal/server/http"
	"valinor/pkg/cache"
	"valinor/pkg/cfg"
	"valinor/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cleanup := logger.Setup(cfg.String("APP_ENV", "development"))
	defer cleanup()

	settings, err := config.Load(cfg.String("APP_CONFIG", "config/valinor.yaml"))
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}
	if cfg.IsDev(settings.Env) {
		if pretty, err := settings.Pretty(); err == nil {
			log.Printf("[valinor] settings:\n%s", pretty)
		}
	}

	version, err := config.LoadVersion(settings.VersionFile)
	if err != nil {
		log.Fatalf("failed to load version: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend := cache.Build(ctx, settings.CacheConfig())
	defer backend.Close()

	probe := datasource.New(backend,
		datasource.WithTimeout(settings.Sources.Timeout),
		datasource.WithEndpoints(datasource.Endpoints{
			INEBaseURL:     settings.Sources.INEBaseURL,
			EurostatTOCURL: settings.Sources.EurostatTOCURL,
			BDESeriesURL:   settings.Sources.BDESeriesURL,
		}),
	)

	srv := httpserver.New(httpserver.Deps{
		Settings: settings,
		Version:  version,
		Probe:    probe,
	})

	log.Printf("[valinor] starting %s (%s) env=%s cache=%s", version.Version, version.Codename, settings.Env, backend.Name())
	if err := srv.Start(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
