package health

import "context"

// DBPinger checks search-index store availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogResolver checks that the catalog service can be located.
type CatalogResolver interface {
	ResolveBaseURL(ctx context.Context, serviceName string) (string, error)
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}
