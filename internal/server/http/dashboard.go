package httpserver

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sort"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"valinor/internal/datasource"
)

//go:embed templates/dashboard.html
var templatesFS embed.FS

var dashboardTmpl = template.Must(template.New("dashboard.html").Funcs(template.FuncMap{
	"status": statusText,
	"deref":  func(p *int) int { return *p },
	"errtext": func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	},
	"pairs": sortedPairs,
}).ParseFS(templatesFS, "templates/dashboard.html"))

// sourceSections fixes the order and titles of the dashboard tables.
var sourceSections = []struct{ id, title string }{
	{datasource.SourceINE, "INE"},
	{datasource.SourceINESeries, "INE: series por operación"},
	{datasource.SourceEurostat, "Eurostat"},
	{datasource.SourceBDE, "Banco de España"},
}

type chartData struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

type section struct {
	ID      string
	Title   string
	Summary datasource.Summary
}

type dashboardView struct {
	Limit            int
	Sections         []section
	SeriesChart      chartData
	PeriodicityChart chartData
	Result           datasource.Result
}

type pair struct {
	Key   string
	Value string
}

func dashboardHandler(deps Deps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, limit := runProbe(c, deps.Probe)

		var buf bytes.Buffer
		if err := dashboardTmpl.Execute(&buf, newDashboardView(res, limit)); err != nil {
			reqLogger(c)("[valinor] render dashboard: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "dashboard render error")
		}

		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(buf.Bytes())
	}
}

func newDashboardView(res datasource.Result, limit int) dashboardView {
	v := dashboardView{Limit: limit, Result: res}
	for _, s := range sourceSections {
		sum, ok := res[s.id]
		if !ok {
			continue
		}
		v.Sections = append(v.Sections, section{ID: s.id, Title: s.title, Summary: sum})
	}

	series := res[datasource.SourceINESeries]
	v.SeriesChart = seriesChart(series)
	v.PeriodicityChart = periodicityChart(series)
	return v
}

// seriesChart plots how many series were inspected per operation.
func seriesChart(s datasource.Summary) chartData {
	out := chartData{Labels: []string{}, Values: []int{}}
	for _, op := range s.Operations {
		out.Labels = append(out.Labels, op.Code)
		out.Values = append(out.Values, op.SeriesCount)
	}
	return out
}

// periodicityChart orders numeric periodicity codes numerically, then anything else by name.
func periodicityChart(s datasource.Summary) chartData {
	out := chartData{Labels: []string{}, Values: []int{}}
	codes := make([]string, 0, len(s.PeriodicityHistogram))
	for code := range s.PeriodicityHistogram {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool {
		a, aErr := strconv.Atoi(codes[i])
		b, bErr := strconv.Atoi(codes[j])
		switch {
		case aErr == nil && bErr == nil:
			return a < b
		case aErr == nil:
			return true
		case bErr == nil:
			return false
		}
		return codes[i] < codes[j]
	})
	for _, code := range codes {
		out.Labels = append(out.Labels, code)
		out.Values = append(out.Values, s.PeriodicityHistogram[code])
	}
	return out
}

func statusText(code *int) string {
	if code == nil {
		return "Sin código"
	}
	return strconv.Itoa(*code)
}

func sortedPairs(m map[string]any) []pair {
	out := make([]pair, 0, len(m))
	for k, v := range m {
		val := "-"
		if v != nil {
			val = fmt.Sprint(v)
		}
		out = append(out, pair{Key: k, Value: val})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
