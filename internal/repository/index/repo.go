// Package index persists catalog documents as Redis hashes behind an
// FT.SEARCH index, so the search subsystem can query what the collator
// produced.
package index

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kitesearch/collator"
	"github.com/kitesearch/collator/internal/db"
)

// Store is the slice of db.Store the repository consumes.
type Store interface {
	db.HashStore
	db.IndexManager
	db.Searcher
}

// Repo writes collated documents into the search index. Documents are keyed
// by their location, so re-collation upserts in place.
type Repo struct {
	store     Store
	keyPrefix string
	indexName string
	vectorDim int
}

// New creates an index repository.
func New(store Store, keyPrefix, indexName string) *Repo {
	return &Repo{
		store:     store,
		keyPrefix: keyPrefix,
		indexName: indexName,
	}
}

// WithVector enables a vector field of the given dimension in the index schema.
func (r *Repo) WithVector(dim int) *Repo {
	if dim > 0 {
		r.vectorDim = dim
	}
	return r
}

func (r *Repo) docKey(location string) string {
	return r.keyPrefix + "doc:" + location
}

func (r *Repo) docPattern() string {
	return r.keyPrefix + "doc:*"
}

// definition builds the FT index schema for the current configuration.
func (r *Repo) definition() *db.IndexDefinition {
	def := &db.IndexDefinition{
		Name:        r.indexName,
		StorageType: db.StorageHash,
		Prefixes:    []string{r.keyPrefix + "doc:"},
		Fields: []db.IndexField{
			{Name: "title", Type: db.IndexFieldText},
			{Name: "text", Type: db.IndexFieldText},
			{Name: "location", Type: db.IndexFieldTag},
			{Name: "namespace", Type: db.IndexFieldTag},
			{Name: "componentType", Type: db.IndexFieldTag},
			{Name: "lifecycle", Type: db.IndexFieldTag},
			{Name: "owner", Type: db.IndexFieldTag},
		},
	}
	if r.vectorDim > 0 {
		def.Fields = append(def.Fields, db.IndexField{
			Name:      "vector",
			Type:      db.IndexFieldVector,
			VectorDim: r.vectorDim,
		})
	}
	return def
}

// EnsureIndex creates the FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, r.indexName)
	if err != nil {
		return fmt.Errorf("check index %s: %w", r.indexName, err)
	}
	if exists {
		return nil
	}

	if err := r.store.CreateIndex(ctx, r.definition()); err != nil {
		// Concurrent EnsureIndex may have won the race since the check.
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index %s: %w", r.indexName, err)
	}
	return nil
}

// RebuildIndex drops the FT index and recreates it with the current schema.
// Documents are untouched; RediSearch re-indexes existing hashes under the
// configured prefix on creation. Used when the schema changes, e.g. after
// enabling the vector field.
func (r *Repo) RebuildIndex(ctx context.Context) error {
	if err := r.store.DropIndex(ctx, r.indexName); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop index %s: %w", r.indexName, err)
	}
	return r.EnsureIndex(ctx)
}

// UpsertBatch writes a batch of documents in one pipelined round-trip,
// replacing any previous version at the same locations. vectors may be nil
// when embedding enrichment is disabled; otherwise it is parallel to docs
// with nil entries allowed.
func (r *Repo) UpsertBatch(ctx context.Context, docs []collator.CatalogDocument, vectors [][]float32) error {
	if len(docs) == 0 {
		return nil
	}
	if vectors != nil && len(vectors) != len(docs) {
		return fmt.Errorf("vectors length %d does not match documents length %d", len(vectors), len(docs))
	}

	items := make([]db.HashSetItem, len(docs))
	for i, doc := range docs {
		if doc.Location == "" {
			return fmt.Errorf("document location is required")
		}
		var vector []float32
		if vectors != nil {
			vector = vectors[i]
		}
		items[i] = db.HashSetItem{
			Key:    r.docKey(doc.Location),
			Fields: buildHashFields(doc, vector),
		}
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("upsert %d documents: %w", len(docs), err)
	}
	return nil
}

// Get returns the document stored at the given location.
func (r *Repo) Get(ctx context.Context, location string) (collator.CatalogDocument, error) {
	key := r.docKey(location)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return collator.CatalogDocument{}, fmt.Errorf("check document %s: %w", location, err)
	}
	if !exists {
		return collator.CatalogDocument{}, db.ErrKeyNotFound
	}

	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return collator.CatalogDocument{}, fmt.Errorf("get document %s: %w", location, err)
	}
	if len(fields) == 0 {
		// Deleted between the existence check and the read.
		return collator.CatalogDocument{}, db.ErrKeyNotFound
	}
	return parseHashFields(fields), nil
}

// Prune removes indexed documents whose locations were not seen in the
// current collation run. Returns the number of removed documents.
func (r *Repo) Prune(ctx context.Context, seen map[string]struct{}) (int, error) {
	keys, err := r.store.Scan(ctx, r.docPattern())
	if err != nil {
		return 0, fmt.Errorf("scan documents: %w", err)
	}

	pruned := 0
	prefix := r.keyPrefix + "doc:"
	for _, key := range keys {
		location := strings.TrimPrefix(key, prefix)
		if _, ok := seen[location]; ok {
			continue
		}
		if err := r.store.Del(ctx, key); err != nil {
			return pruned, fmt.Errorf("prune document %s: %w", location, err)
		}
		pruned++
	}
	return pruned, nil
}

// Count returns the number of indexed documents.
func (r *Repo) Count(ctx context.Context) (int, error) {
	count, err := r.store.SearchCount(ctx, r.indexName, "*")
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return count, nil
}
