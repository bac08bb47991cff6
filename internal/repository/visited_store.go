package repository

import (
	"context"
	"time"
)

// VisitedStore tracks which articles have already been ingested so
// re-running an overlapping date range skips the expensive
// fetch-extract-store path. The persistent stores stay correct without
// it (upserts are idempotent); this is purely a cost saver.
type VisitedStore interface {
	// MarkIngested records a news id with an expiry.
	MarkIngested(ctx context.Context, newsID string, expiry time.Duration) error
	// IsIngested checks whether a news id was recorded recently.
	IsIngested(ctx context.Context, newsID string) (bool, error)
	// Remove forgets a news id, forcing re-ingestion on the next run.
	Remove(ctx context.Context, newsID string) error
}
