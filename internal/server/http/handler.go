package httpserver

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"valinor/internal/datasource"
)

func healthHandler(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "environment": deps.Settings.Env})
	}
}

func versionHandler(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(deps.Version)
	}
}

// probeHandler returns the raw probe result. It always answers 200; failed sources carry
// their error in the body.
func probeHandler(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, _ := runProbe(c, deps.Probe)
		return c.JSON(res)
	}
}

// runProbe executes a probe for the request limit and logs failed sources. A missing or
// unparsable limit falls back to DefaultLimit.
func runProbe(c *fiber.Ctx, p Prober) (datasource.Result, int) {
	logReq := reqLogger(c)
	limit := c.QueryInt("limit", datasource.DefaultLimit)

	start := time.Now()
	res := p.ProbeAll(c.UserContext(), limit)

	if failed := failedSources(res); len(failed) > 0 {
		logReq("[valinor][probe] limit=%d completed with failed sources %v in %s", limit, failed, time.Since(start))
	} else {
		logReq("[valinor][probe] limit=%d ok in %s", limit, time.Since(start))
	}
	return res, limit
}

func failedSources(res datasource.Result) []string {
	var out []string
	for name, s := range res {
		if !s.OK() {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
