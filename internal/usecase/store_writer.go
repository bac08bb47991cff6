package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/user/newsingest/internal/entity"
	"github.com/user/newsingest/internal/repository"
	"github.com/user/newsingest/pkg/metrics"
	"github.com/user/newsingest/pkg/utils"
)

// StoreWriter owns the derivation of stored chunks and rows from a
// fetched article plus its extracted record, and is solely responsible
// for store consistency: chunk ids are deterministic and every write is
// an upsert, so re-running a date range converges instead of
// duplicating. Either store may be nil when that backend is disabled;
// at least one must be set.
type StoreWriter struct {
	chunks    repository.ChunkStore
	news      repository.NewsStore
	chunkSize int
}

// NewStoreWriter creates a StoreWriter with the given chunk size.
func NewStoreWriter(chunks repository.ChunkStore, news repository.NewsStore, chunkSize int) *StoreWriter {
	return &StoreWriter{chunks: chunks, news: news, chunkSize: chunkSize}
}

// Write persists one article. Missing record fields are backfilled from
// the page itself (title from the rendered page title, date/time from
// the tail-line parser) and otherwise left empty; an incomplete record
// never blocks persistence. Returns the number of chunks written.
func (w *StoreWriter) Write(ctx context.Context, page *entity.Page, record *entity.ExtractedRecord) (int, error) {
	newsID := utils.NewsIDFromURL(page.URL)
	if newsID == "" {
		return 0, fmt.Errorf("cannot derive news id from url %q", page.URL)
	}

	rec := backfillRecord(page, record)

	var written int
	if w.chunks != nil {
		chunks := buildChunks(newsID, page, rec, w.chunkSize)
		if err := w.chunks.Upsert(ctx, chunks); err != nil {
			return 0, fmt.Errorf("%w: %d chunks for %s: %v", repository.ErrStoreWrite, len(chunks), newsID, err)
		}
		metrics.ChunksUpsertedTotal.Add(float64(len(chunks)))
		written = len(chunks)
		slog.Info("Upserted chunks", "news_id", newsID, "chunks", len(chunks))
	}

	if w.news != nil {
		row := &entity.News{
			ID:           newsID,
			URL:          page.URL,
			Title:        rec.Title,
			PubDate:      rec.PubDate,
			PubTime:      rec.PubTime,
			Organization: rec.Organization,
			Keywords:     rec.Keywords,
			Summary:      rec.Summary,
			Content:      page.Text,
			CrawledAt:    time.Now(),
		}
		if err := w.news.Upsert(ctx, row); err != nil {
			return written, fmt.Errorf("%w: news row %s: %v", repository.ErrStoreWrite, newsID, err)
		}
		slog.Info("Upserted news row", "news_id", newsID)
	}

	metrics.ArticlesStoredTotal.Inc()
	return written, nil
}

// backfillRecord fills gaps in the extracted record from the page
// without mutating the caller's copy.
func backfillRecord(page *entity.Page, record *entity.ExtractedRecord) entity.ExtractedRecord {
	rec := entity.ExtractedRecord{}
	if record != nil {
		rec = *record
	}
	if rec.Title == "" {
		rec.Title = page.Title
	}
	if rec.PubDate == "" {
		rec.PubDate = PubDateFromText(page.Text)
	}
	if rec.PubTime == "" {
		rec.PubTime = PubTimeFromText(page.Text)
	}
	return rec
}

func buildChunks(newsID string, page *entity.Page, rec entity.ExtractedRecord, chunkSize int) []entity.Chunk {
	parts := SplitText(page.Text, chunkSize)
	chunks := make([]entity.Chunk, 0, len(parts))
	for i, part := range parts {
		chunks = append(chunks, entity.Chunk{
			ID:   entity.ChunkID(newsID, i),
			Text: part,
			Meta: entity.ChunkMeta{
				NewsID:       newsID,
				URL:          page.URL,
				Title:        rec.Title,
				PubDate:      rec.PubDate,
				PubTime:      rec.PubTime,
				Organization: rec.Organization,
				Keywords:     rec.Keywords,
				Summary:      rec.Summary,
				ChunkIndex:   i,
			},
		})
	}
	return chunks
}
