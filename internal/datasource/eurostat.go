package datasource

import (
	"context"
	"strconv"
)

type eurostatTOC struct {
	Datasets []map[string]any `json:"datasets"`
}

// FetchEurostatCatalog samples the Eurostat table of contents.
func (p *Probe) FetchEurostatCatalog(ctx context.Context, limit int) Summary {
	limit = max(limit, 0)
	return p.cached(ctx, SourceEurostat, cacheKey("eurostat:toc", limit), func(ctx context.Context) (Summary, error) {
		var toc eurostatTOC
		status, err := p.client.getJSON(ctx, p.endpoints.EurostatTOCURL, map[string]string{"limit": strconv.Itoa(limit)}, &toc)
		if err != nil {
			return Summary{}, err
		}

		s := p.success(status)
		s.Count = intPtr(len(toc.Datasets))
		s.Sample = append(s.Sample, toc.Datasets[:min(limit, len(toc.Datasets))]...)
		return s, nil
	})
}
