// Command probe runs one probe against every source and prints the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"valinor/internal/datasource"
	"valinor/pkg/cache"
	"valinor/pkg/cfg"
)

func main() {
	limit := flag.Int("limit", 3, "sample size per source")
	timeout := flag.Duration("timeout", datasource.DefaultTimeout, "per-request upstream timeout")
	flag.Parse()

	_ = godotenv.Load()
	log.SetOutput(os.Stderr)

	backend := cache.Build(context.Background(), cache.LoadConfigFromEnv())
	defer backend.Close()

	probe := datasource.New(backend,
		datasource.WithTimeout(*timeout),
		datasource.WithEndpoints(datasource.Endpoints{
			INEBaseURL:     cfg.String("INE_BASE_URL", ""),
			EurostatTOCURL: cfg.String("EUROSTAT_TOC_URL", ""),
			BDESeriesURL:   cfg.String("BDE_SERIES_URL", ""),
		}),
	)

	res := probe.ProbeAll(context.Background(), *limit)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(res); err != nil {
		log.Fatalf("encode result: %v", err)
	}
}
