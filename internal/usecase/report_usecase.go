package usecase

import (
	"context"
	"fmt"

	"github.com/user/newsingest/internal/repository"
)

// Reporter answers ad hoc questions over stored press releases: it
// pulls matching chunks from the store and has the LLM write a grouped
// summary report.
type Reporter interface {
	BuildReport(ctx context.Context, filter repository.ChunkFilter, question string) (string, error)
}

type reportUseCase struct {
	chunks     repository.ChunkStore
	summarizer repository.Summarizer
}

// NewReportUseCase creates a Reporter over the chunk store.
func NewReportUseCase(chunks repository.ChunkStore, summarizer repository.Summarizer) Reporter {
	return &reportUseCase{chunks: chunks, summarizer: summarizer}
}

func (uc *reportUseCase) BuildReport(ctx context.Context, filter repository.ChunkFilter, question string) (string, error) {
	if filter.Limit == 0 {
		filter.Limit = 200
	}
	chunks, err := uc.chunks.Query(ctx, filter)
	if err != nil {
		return "", fmt.Errorf("failed to query chunks for report: %w", err)
	}
	if len(chunks) == 0 {
		return "", repository.ErrNotFound
	}

	report, err := uc.summarizer.Summarize(ctx, chunks, question)
	if err != nil {
		return "", fmt.Errorf("failed to summarize %d chunks: %w", len(chunks), err)
	}
	return report, nil
}
