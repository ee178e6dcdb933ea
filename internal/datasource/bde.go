package datasource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

const (
	bdeCacheKey = "bde:sample"
	bdeKeyCount = 5
)

// FetchBDESample reports the first top-level keys of the Banco de España series payload.
func (p *Probe) FetchBDESample(ctx context.Context) Summary {
	return p.cached(ctx, SourceBDE, bdeCacheKey, func(ctx context.Context) (Summary, error) {
		body, status, err := p.client.get(ctx, p.endpoints.BDESeriesURL, map[string]string{"type": "JSON"})
		if err != nil {
			return Summary{}, err
		}

		keys, err := leadingKeys(body, bdeKeyCount)
		if err != nil {
			return Summary{}, fmt.Errorf("decode %s: %w", p.endpoints.BDESeriesURL, err)
		}

		s := p.success(status)
		s.Keys = keys
		return s, nil
	})
}

// leadingKeys returns up to n top-level keys of a JSON object in document order. The whole
// document must be well formed.
func leadingKeys(body []byte, n int) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(body))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("expected a JSON object")
	}

	keys := []string{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		if len(keys) < n {
			keys = append(keys, key)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err == nil {
		return nil, errors.New("trailing data after JSON object")
	}
	return keys, nil
}
