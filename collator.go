// Package collator pulls entity records from a catalog service and emits
// normalized, indexable documents for a search subsystem to consume.
//
// A Collator resolves the catalog endpoint through a Discovery collaborator,
// issues one entity-listing request per Execute call (optionally carrying an
// encoded kind filter) and lazily converts each returned entity into a flat
// CatalogDocument, substituting entity coordinates into a configurable
// location template.
package collator

import (
	"context"
	"errors"
	"iter"
	"net/http"
)

// Collator fetches catalog entities and lazily maps them to documents.
// A Collator is safe for concurrent use: each Execute call performs its own
// independent fetch and holds no state across calls.
type Collator struct {
	discovery Discovery
	client    *http.Client
	opts      Options
}

// New creates a Collator. Unset options fall back to the built-in defaults;
// use MergeOptions to layer configuration-sourced defaults under explicitly
// passed values.
func New(discovery Discovery, opts Options) (*Collator, error) {
	if discovery == nil {
		return nil, errors.New("collator: discovery is required")
	}
	opts = opts.withDefaults()

	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	return &Collator{
		discovery: discovery,
		client:    client,
		opts:      opts,
	}, nil
}

// Execute performs one catalog fetch and returns a lazy sequence of
// documents. The sequence is finite and single-pass: the fetch happens when
// the consumer pulls the first item, one document is mapped per pull, and
// re-invoking Execute triggers a fresh fetch.
//
// A discovery or retrieval failure aborts the sequence before any document
// is produced. A mapping failure aborts the sequence at the malformed
// entity: a silently shortened document set could hide data-quality problems
// from the search index. In both cases the error is yielded as the final
// element and errors.Is matches ErrDiscovery, ErrRetrieval or ErrMapping.
func (c *Collator) Execute(ctx context.Context) iter.Seq2[CatalogDocument, error] {
	return func(yield func(CatalogDocument, error) bool) {
		entities, err := c.fetchEntities(ctx)
		if err != nil {
			yield(CatalogDocument{}, err)
			return
		}
		for i := range entities {
			doc, err := ToDocument(&entities[i], c.opts.LocationTemplate)
			if err != nil {
				yield(CatalogDocument{}, err)
				return
			}
			if !yield(doc, nil) {
				return
			}
		}
	}
}
