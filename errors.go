package collator

import (
	"errors"
	"fmt"
)

var (
	// ErrDiscovery signals that the catalog service's base URL could not be resolved.
	ErrDiscovery = errors.New("catalog discovery failed")
	// ErrRetrieval signals that the entity-listing request failed or returned a non-2xx status.
	ErrRetrieval = errors.New("entity retrieval failed")
	// ErrMapping signals an entity that cannot be converted into a document.
	ErrMapping = errors.New("entity mapping failed")
)

// MappingError wraps ErrMapping with enough context to locate the offending entity.
type MappingError struct {
	Kind      string
	Namespace string
	Reason    string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("map entity (kind=%s namespace=%s): %s", e.Kind, e.Namespace, e.Reason)
}

func (e *MappingError) Unwrap() error { return ErrMapping }
