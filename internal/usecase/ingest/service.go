// Package ingest runs collation: it pulls the document sequence from the
// collator, writes every document into the search index, and prunes index
// entries that the current run no longer produces.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kitesearch/collator"
	"github.com/kitesearch/collator/internal/metrics"
)

// RunStats summarizes one collation run.
type RunStats struct {
	StartedAt time.Time     `json:"startedAt"`
	Duration  time.Duration `json:"duration"`
	Fetched   int           `json:"fetched"`
	Indexed   int           `json:"indexed"`
	Pruned    int           `json:"pruned"`
	Error     string        `json:"error,omitempty"`
}

// Service executes collation runs. Runs are serialized: a second Run blocks
// until the first finishes, so manual triggers cannot race the scheduler.
type Service struct {
	source   Source
	writer   IndexWriter
	embedder Embedder
	logger   *zap.Logger

	runMu sync.Mutex

	mu      sync.RWMutex
	lastRun *RunStats
}

// New creates an ingest service. embedder can be nil.
func New(source Source, writer IndexWriter, embedder Embedder, logger *zap.Logger) *Service {
	return &Service{
		source:   source,
		writer:   writer,
		embedder: embedder,
		logger:   logger,
	}
}

// Run performs one full collation: ensure index, upsert every document the
// source yields, prune locations not seen this run. The first error aborts
// the run; documents already upserted stay in place (upserts are keyed by
// location, so a retried run converges).
func (s *Service) Run(ctx context.Context) (RunStats, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	stats := RunStats{StartedAt: time.Now()}
	err := s.run(ctx, &stats)
	stats.Duration = time.Since(stats.StartedAt)

	if err != nil {
		stats.Error = err.Error()
		metrics.CollationRunsTotal.WithLabelValues("error").Inc()
		metrics.CollationErrorsTotal.WithLabelValues(stageOf(err)).Inc()
		s.logger.Error("collation run failed",
			zap.Int("fetched", stats.Fetched),
			zap.Int("indexed", stats.Indexed),
			zap.Duration("duration", stats.Duration),
			zap.Error(err))
	} else {
		metrics.CollationRunsTotal.WithLabelValues("success").Inc()
		metrics.CollationDuration.Observe(stats.Duration.Seconds())
		s.logger.Info("collation run finished",
			zap.Int("fetched", stats.Fetched),
			zap.Int("indexed", stats.Indexed),
			zap.Int("pruned", stats.Pruned),
			zap.Duration("duration", stats.Duration))
	}

	s.mu.Lock()
	s.lastRun = &stats
	s.mu.Unlock()

	return stats, err
}

// indexBatchSize is how many documents are buffered before one pipelined
// write to the index.
const indexBatchSize = 100

func (s *Service) run(ctx context.Context, stats *RunStats) error {
	if err := s.writer.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("ensure index: %w", err)
	}

	seen := make(map[string]struct{})
	var docs []collator.CatalogDocument
	var vectors [][]float32

	flush := func() error {
		if len(docs) == 0 {
			return nil
		}
		if err := s.writer.UpsertBatch(ctx, docs, vectors); err != nil {
			return fmt.Errorf("index %d documents: %w", len(docs), err)
		}
		stats.Indexed += len(docs)
		metrics.DocumentsIndexedTotal.Add(float64(len(docs)))
		docs, vectors = docs[:0], vectors[:0]
		return nil
	}

	for doc, err := range s.source.Execute(ctx) {
		if err != nil {
			// Documents mapped before the failure stay indexed; upserts are
			// keyed by location, so a retried run converges.
			if ferr := flush(); ferr != nil {
				return ferr
			}
			return fmt.Errorf("collate: %w", err)
		}
		stats.Fetched++

		var vector []float32
		if s.embedder != nil {
			vector, err = s.embedder.Embed(ctx, embeddingInput(doc))
			if err != nil {
				if ferr := flush(); ferr != nil {
					return ferr
				}
				return &stageError{stage: "embedding", err: fmt.Errorf("embed document %s: %w", doc.Location, err)}
			}
		}

		docs = append(docs, doc)
		vectors = append(vectors, vector)
		seen[doc.Location] = struct{}{}

		if len(docs) >= indexBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := flush(); err != nil {
		return err
	}

	pruned, err := s.writer.Prune(ctx, seen)
	if err != nil {
		return fmt.Errorf("prune index: %w", err)
	}
	stats.Pruned = pruned
	metrics.DocumentsPrunedTotal.Add(float64(pruned))

	return nil
}

// Latest returns the stats of the most recent run, if any ran yet.
func (s *Service) Latest() (RunStats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastRun == nil {
		return RunStats{}, false
	}
	return *s.lastRun, true
}

// embeddingInput is the text sent to the embedding provider: title plus
// description, so title-only entities still get a vector.
func embeddingInput(doc collator.CatalogDocument) string {
	if doc.Text == "" {
		return doc.Title
	}
	return doc.Title + "\n" + doc.Text
}

// stageError tags an error with the pipeline stage it came from, for the
// per-stage error counter.
type stageError struct {
	stage string
	err   error
}

func (e *stageError) Error() string { return e.err.Error() }
func (e *stageError) Unwrap() error { return e.err }

// stageOf classifies a run error for the per-stage error counter.
func stageOf(err error) string {
	var se *stageError
	if errors.As(err, &se) {
		return se.stage
	}
	switch {
	case errors.Is(err, collator.ErrDiscovery):
		return "discovery"
	case errors.Is(err, collator.ErrRetrieval):
		return "retrieval"
	case errors.Is(err, collator.ErrMapping):
		return "mapping"
	default:
		return "index"
	}
}
