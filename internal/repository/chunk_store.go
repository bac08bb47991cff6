package repository

import (
	"context"

	"github.com/user/newsingest/internal/entity"
)

// ChunkFilter selects stored chunks by metadata. Zero values mean "no
// constraint on this field".
type ChunkFilter struct {
	DateFrom      string // YYYY-MM-DD inclusive
	DateTo        string // YYYY-MM-DD inclusive
	Organizations []string
	Keyword       string
	Limit         int
}

// ChunkStore is the document/vector-store variant of persistence:
// (id, text, metadata) triples keyed by the composite chunk id.
type ChunkStore interface {
	// Upsert writes chunks keyed by their IDs. Re-writing the same IDs
	// replaces in place; it never duplicates.
	Upsert(ctx context.Context, chunks []entity.Chunk) error
	// ByNewsID returns all chunks of one article in chunk-index order.
	ByNewsID(ctx context.Context, newsID string) ([]entity.Chunk, error)
	// NewsIDs returns the distinct article ids present in the store.
	NewsIDs(ctx context.Context) ([]string, error)
	// Query returns chunks matching the filter.
	Query(ctx context.Context, filter ChunkFilter) ([]entity.Chunk, error)
}
