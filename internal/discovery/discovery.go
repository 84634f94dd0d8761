// Package discovery resolves logical service names to base URLs.
package discovery

import (
	"context"
	"fmt"
)

// Static resolves service names from a fixed table of base URLs, typically
// sourced from configuration. It implements collator.Discovery.
type Static struct {
	endpoints map[string]string
}

// NewStatic creates a resolver over the given service-name → base-URL table.
func NewStatic(endpoints map[string]string) *Static {
	eps := make(map[string]string, len(endpoints))
	for name, u := range endpoints {
		eps[name] = u
	}
	return &Static{endpoints: eps}
}

// ResolveBaseURL returns the configured base URL for serviceName.
func (s *Static) ResolveBaseURL(_ context.Context, serviceName string) (string, error) {
	u, ok := s.endpoints[serviceName]
	if !ok || u == "" {
		return "", fmt.Errorf("no endpoint configured for service %q", serviceName)
	}
	return u, nil
}
