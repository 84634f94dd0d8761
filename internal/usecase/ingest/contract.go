package ingest

import (
	"context"
	"iter"

	"github.com/kitesearch/collator"
)

// Source produces the lazy document sequence of one collation run.
type Source interface {
	Execute(ctx context.Context) iter.Seq2[collator.CatalogDocument, error]
}

// IndexWriter persists collated documents into the search index. UpsertBatch
// takes vectors parallel to docs; a nil vectors slice means no enrichment.
type IndexWriter interface {
	EnsureIndex(ctx context.Context) error
	UpsertBatch(ctx context.Context, docs []collator.CatalogDocument, vectors [][]float32) error
	Prune(ctx context.Context, seen map[string]struct{}) (int, error)
}

// Embedder vectorizes document text. Optional; nil disables enrichment.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
