package repository

import (
	"context"

	"github.com/user/newsingest/internal/entity"
)

// RecordExtractor derives the structured fields of one article from its
// rendered text. Unusable extractor output is reported as
// ErrMalformedOutput or ErrNoData; it is never raised past this
// boundary as a panic or a batch-level failure.
type RecordExtractor interface {
	Extract(ctx context.Context, page *entity.Page) (*entity.ExtractedRecord, error)
}

// Summarizer writes a prose report over a set of stored chunks.
type Summarizer interface {
	Summarize(ctx context.Context, chunks []entity.Chunk, question string) (string, error)
}
