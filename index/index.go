// Package index defines the similarity index consumed by the ingestion and
// retrieval stages, with an in-process implementation suitable for tests and
// single-user sessions. A PostgreSQL/pgvector implementation lives in the
// pgvector subpackage for durable deployments.
package index

import (
	"context"

	"github.com/hupe1980/ragmesh/core"
)

// Index stores chunks and answers ranked top-K similarity searches.
// Implementations provide their own concurrency safety; callers do not add
// external locking.
type Index interface {
	// Add indexes the given chunks. Adding the same content twice creates
	// duplicate entries; deduplication is intentionally not provided.
	Add(ctx context.Context, chunks []core.Chunk) error

	// Search returns up to k chunks ranked by descending similarity to query.
	Search(ctx context.Context, query string, k int) ([]core.ScoredChunk, error)
}
