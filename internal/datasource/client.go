package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const maxErrorBody = 200

// client performs the upstream GETs. Every call is bounded by the configured timeout.
type client struct {
	rc *resty.Client
}

func newClient(timeout time.Duration) *client {
	rc := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "valinor-probe/1.0")
	return &client{rc: rc}
}

// get returns the body and status of a successful (2xx) response.
func (c *client) get(ctx context.Context, url string, query map[string]string) ([]byte, int, error) {
	req := c.rc.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, 0, fmt.Errorf("GET %s: %w", url, err)
	}
	if !resp.IsSuccess() {
		return nil, resp.StatusCode(), fmt.Errorf("GET %s: http %d: %s", url, resp.StatusCode(), errorBody(resp.Body()))
	}
	return resp.Body(), resp.StatusCode(), nil
}

func (c *client) getJSON(ctx context.Context, url string, query map[string]string, out any) (int, error) {
	body, status, err := c.get(ctx, url, query)
	if err != nil {
		return status, err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return status, fmt.Errorf("decode %s: %w", url, err)
	}
	return status, nil
}

func errorBody(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}
	return s
}
