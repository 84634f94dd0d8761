package collator

import (
	"net/http"
	"time"
)

const (
	// DefaultServiceName is the logical name resolved through Discovery.
	DefaultServiceName = "catalog"

	defaultRequestTimeout = 10 * time.Second
)

// Options configure a Collator. The zero value selects all defaults.
type Options struct {
	// ServiceName is the logical catalog service name passed to Discovery.
	ServiceName string
	// Filter restricts which entities the catalog returns. Nil means all.
	Filter FilterSpec
	// LocationTemplate computes each document's location path.
	LocationTemplate string
	// HTTPClient overrides the client used for the entity-listing request.
	HTTPClient *http.Client
	// Timeout bounds the entity-listing request when no HTTPClient is given.
	Timeout time.Duration
}

// MergeOptions combines explicitly passed options with configuration-sourced
// defaults, field by field. An explicit field always wins over its
// configuration-sourced counterpart. The merge is pure: neither input is
// modified.
func MergeOptions(explicit, defaults Options) Options {
	merged := explicit
	if merged.ServiceName == "" {
		merged.ServiceName = defaults.ServiceName
	}
	if merged.Filter == nil {
		merged.Filter = defaults.Filter
	}
	if merged.LocationTemplate == "" {
		merged.LocationTemplate = defaults.LocationTemplate
	}
	if merged.HTTPClient == nil {
		merged.HTTPClient = defaults.HTTPClient
	}
	if merged.Timeout == 0 {
		merged.Timeout = defaults.Timeout
	}
	return merged
}

// withDefaults fills any remaining unset field with the built-in defaults.
func (o Options) withDefaults() Options {
	return MergeOptions(o, Options{
		ServiceName:      DefaultServiceName,
		LocationTemplate: DefaultLocationTemplate,
		Timeout:          defaultRequestTimeout,
	})
}
