package datasource

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	seriesPerOperation = 100
	seriesSampleSize   = 5
)

// OperationSeries summarizes the series published under one INE operation.
type OperationSeries struct {
	Code        string       `json:"codigo"`
	Name        string       `json:"nombre"`
	SeriesCount int          `json:"series_count"`
	Sample      []SeriesInfo `json:"sample"`
}

type SeriesInfo struct {
	Code        string `json:"codigo"`
	Name        string `json:"nombre"`
	Periodicity string `json:"periodicidad"`
}

type ineOperation struct {
	ID      any    `json:"Id"`
	Code    string `json:"Codigo"`
	Name    string `json:"Nombre"`
	IOECode string `json:"Cod_IOE"`
}

type ineSeries struct {
	Code        string `json:"COD"`
	Name        string `json:"Nombre"`
	Periodicity any    `json:"FK_Periodicidad"`
}

// FetchINEOperations samples the list of INE operations publishing indicators.
func (p *Probe) FetchINEOperations(ctx context.Context, limit int) Summary {
	limit = max(limit, 0)
	return p.cached(ctx, SourceINE, cacheKey("ine:operations", limit), func(ctx context.Context) (Summary, error) {
		var ops []map[string]any
		status, err := p.client.getJSON(ctx, p.operationsURL(), map[string]string{"clase": "IND"}, &ops)
		if err != nil {
			return Summary{}, err
		}

		s := p.success(status)
		s.Count = intPtr(len(ops))
		for _, op := range ops[:min(limit, len(ops))] {
			s.Sample = append(s.Sample, map[string]any{
				"codigo": op["Codigo"],
				"nombre": op["Nombre"],
			})
		}
		return s, nil
	})
}

// FetchINESeries lists the first limit operations and, for each, inspects up to 100 of its
// series, building a histogram of periodicity codes.
func (p *Probe) FetchINESeries(ctx context.Context, limit int) Summary {
	limit = max(limit, 0)
	return p.cached(ctx, SourceINESeries, cacheKey("ine:series", limit), func(ctx context.Context) (Summary, error) {
		var ops []ineOperation
		status, err := p.client.getJSON(ctx, p.operationsURL(), map[string]string{"clase": "IND"}, &ops)
		if err != nil {
			return Summary{}, err
		}

		s := p.success(status)
		s.Operations = []OperationSeries{}
		s.PeriodicityHistogram = map[string]int{}
		inspected := 0

		for _, op := range ops[:min(limit, len(ops))] {
			code := op.ref()
			if code == "" {
				return Summary{}, fmt.Errorf("operation %q has no code", op.Name)
			}

			var series []ineSeries
			if _, err := p.client.getJSON(ctx, p.seriesURL(code), map[string]string{"page": "1"}, &series); err != nil {
				return Summary{}, fmt.Errorf("series of operation %s: %w", code, err)
			}
			series = series[:min(seriesPerOperation, len(series))]

			entry := OperationSeries{
				Code:        code,
				Name:        op.Name,
				SeriesCount: len(series),
				Sample:      []SeriesInfo{},
			}
			for i, se := range series {
				period := periodicityCode(se.Periodicity)
				s.PeriodicityHistogram[period]++
				if i < seriesSampleSize {
					entry.Sample = append(entry.Sample, SeriesInfo{Code: se.Code, Name: se.Name, Periodicity: period})
				}
			}
			inspected += len(series)
			s.Operations = append(s.Operations, entry)
		}

		s.Count = intPtr(inspected)
		return s, nil
	})
}

func (p *Probe) operationsURL() string {
	return strings.TrimRight(p.endpoints.INEBaseURL, "/") + "/OPERACIONES_DISPONIBLES"
}

func (p *Probe) seriesURL(operation string) string {
	return strings.TrimRight(p.endpoints.INEBaseURL, "/") + "/SERIES_OPERACION/" + url.PathEscape(operation)
}

// ref picks the identifier accepted by SERIES_OPERACION.
func (o ineOperation) ref() string {
	if c := strings.TrimSpace(o.Code); c != "" {
		return c
	}
	if c := strings.TrimSpace(o.IOECode); c != "" {
		return "IOE" + c
	}
	if o.ID != nil {
		return scalarString(o.ID)
	}
	return ""
}

func periodicityCode(v any) string {
	if v == nil {
		return "unknown"
	}
	if s := scalarString(v); s != "" {
		return s
	}
	return "unknown"
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
