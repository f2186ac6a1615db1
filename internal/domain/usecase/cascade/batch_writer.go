package cascade

import (
	"context"
	"fmt"

	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
)

// DefaultBatchLimit is the store's per-batch mutation ceiling
const DefaultBatchLimit = 400

// BatchWriter turns the store's bounded batch-write primitive into an
// unbounded logical operation by committing sequential chunks. Each chunk is
// atomic at the store level; chunk boundaries are not atomic with each other,
// so a failure partway leaves earlier chunks committed.
type BatchWriter struct {
	committer persistence.ChunkCommitter
	limit     int
	logger    coreport.Logger
}

// NewBatchWriter creates a batch writer with the given chunk ceiling.
// A non-positive limit falls back to DefaultBatchLimit.
func NewBatchWriter(committer persistence.ChunkCommitter, limit int, logger coreport.Logger) *BatchWriter {
	if limit <= 0 {
		limit = DefaultBatchLimit
	}
	return &BatchWriter{
		committer: committer,
		limit:     limit,
		logger:    logger,
	}
}

// Commit applies the staged mutations in order, committing a chunk every time
// the ceiling is reached and once more for any remainder. Returns the number
// of chunk commits issued; on error, the count covers chunks already durable.
func (w *BatchWriter) Commit(ctx context.Context, muts []persistence.Mutation) (int, error) {
	commits := 0
	for start := 0; start < len(muts); start += w.limit {
		end := start + w.limit
		if end > len(muts) {
			end = len(muts)
		}
		if err := w.committer.CommitChunk(ctx, muts[start:end]); err != nil {
			w.logger.Error("Batch chunk commit failed", map[string]any{
				"chunk":      commits,
				"chunk_size": end - start,
				"committed":  commits,
				"error":      err.Error(),
			})
			return commits, fmt.Errorf("commit chunk %d: %w", commits, err)
		}
		commits++
	}
	return commits, nil
}
