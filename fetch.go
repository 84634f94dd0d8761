package collator

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Discovery resolves a logical service name to its base URL. Resolution
// failures are surfaced to the consumer; the collator performs no retries of
// its own.
type Discovery interface {
	ResolveBaseURL(ctx context.Context, serviceName string) (string, error)
}

const entitiesPath = "/entities"

// fetchEntities resolves the catalog base URL and retrieves the full entity
// list in a single request. The result preserves the server's ordering; no
// local re-ordering, deduplication or caching happens here.
func (c *Collator) fetchEntities(ctx context.Context) ([]Entity, error) {
	base, err := c.discovery.ResolveBaseURL(ctx, c.opts.ServiceName)
	if err != nil {
		return nil, fmt.Errorf("resolve service %q: %w: %w", c.opts.ServiceName, err, ErrDiscovery)
	}

	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("base url %q: %w: %w", base, err, ErrDiscovery)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + entitiesPath
	if encoded := c.opts.Filter.Encode(); encoded != "" {
		q := url.Values{}
		q.Set("filter", encoded)
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build entity request: %w: %w", err, ErrRetrieval)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list entities: %w: %w", err, ErrRetrieval)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("list entities: %s: %w", statusDetail(resp), ErrRetrieval)
	}

	var entities []Entity
	if err := json.NewDecoder(resp.Body).Decode(&entities); err != nil {
		return nil, fmt.Errorf("decode entities: %w: %w", err, ErrRetrieval)
	}
	return entities, nil
}

// statusDetail formats a non-2xx response for the error message, including a
// bounded slice of the body when the server sent one.
func statusDetail(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	detail := strings.TrimSpace(string(body))
	if detail == "" {
		return fmt.Sprintf("status %d", resp.StatusCode)
	}
	return fmt.Sprintf("status %d: %s", resp.StatusCode, detail)
}
