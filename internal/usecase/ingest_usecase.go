package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/user/newsingest/internal/entity"
	"github.com/user/newsingest/internal/repository"
	"github.com/user/newsingest/pkg/metrics"
	"github.com/user/newsingest/pkg/utils"
)

// Fetch targets for the two crawl stages. The selectors are the page
// regions carrying the press-release index and body on the source site.
var (
	ListingTarget = repository.FetchTarget{
		Kind:      "listing",
		Selectors: []string{`div.leftBody`},
	}
	ArticleTarget = repository.FetchTarget{
		Kind:      "article",
		Selectors: []string{`#PRHeadline`, `#pressrelease`},
	}
)

// Ingester runs date-range ingestion batches.
type Ingester interface {
	Run(ctx context.Context, startDate, endDate string) (*entity.RunReport, error)
}

type ingestUseCase struct {
	dispatcher *Dispatcher
	extractor  repository.RecordExtractor
	writer     *StoreWriter
	visited    repository.VisitedStore // optional
	baseURL    string
	visitedTTL time.Duration
}

// NewIngestUseCase wires the two-stage crawl pipeline: listing fetch,
// link extraction, article fetch with per-item extract-then-persist.
// visited may be nil, which disables cross-run skip.
func NewIngestUseCase(
	dispatcher *Dispatcher,
	extractor repository.RecordExtractor,
	writer *StoreWriter,
	visited repository.VisitedStore,
	baseURL string,
	visitedTTL time.Duration,
) Ingester {
	return &ingestUseCase{
		dispatcher: dispatcher,
		extractor:  extractor,
		writer:     writer,
		visited:    visited,
		baseURL:    baseURL,
		visitedTTL: visitedTTL,
	}
}

// Run walks the date range. Failures in date parsing are fatal to the
// call; everything after that is contained per URL or per article and
// only removes that one item from the output.
func (uc *ingestUseCase) Run(ctx context.Context, startDate, endDate string) (*entity.RunReport, error) {
	urls, err := BuildListingURLs(uc.baseURL, startDate, endDate)
	if err != nil {
		return nil, err
	}

	report := &entity.RunReport{StartDate: startDate, EndDate: endDate, ListingPages: len(urls)}
	slog.Info("Starting ingestion run", "start_date", startDate, "end_date", endDate, "listing_pages", len(urls))

	// Stage one: fetch listing pages, collect article links.
	linkSet := make(map[string]struct{})
	for _, outcome := range uc.dispatcher.FetchMany(ctx, urls, ListingTarget, nil) {
		if !outcome.Success() {
			report.Failures = append(report.Failures, entity.StageFailure{
				URL: outcome.URL, Stage: entity.StageFetch, Reason: outcome.Err.Error(),
			})
			continue
		}
		for _, link := range ExtractArticleLinks(outcome.Page) {
			linkSet[link] = struct{}{}
		}
	}

	links := sortedKeys(linkSet)
	report.ArticlesFound = len(links)

	links, skipped := uc.filterVisited(ctx, links)
	report.ArticlesSkipped = skipped
	report.ArticlesAttempted = len(links)
	slog.Info("Discovered article links", "found", report.ArticlesFound, "skipped", skipped)

	// Stage two: fetch each article and, still inside the fan-out worker,
	// extract structured fields and persist. One article's failure never
	// aborts the batch.
	var mu sync.Mutex
	stored := 0
	outcomes := uc.dispatcher.FetchMany(ctx, links, ArticleTarget, func(ctx context.Context, page *entity.Page) error {
		if err := uc.processArticle(ctx, page); err != nil {
			return err
		}
		mu.Lock()
		stored++
		mu.Unlock()
		return nil
	})

	for _, outcome := range outcomes {
		if outcome.Success() {
			continue
		}
		report.Failures = append(report.Failures, entity.StageFailure{
			URL:    outcome.URL,
			Stage:  failureStage(outcome.Err),
			Reason: outcome.Err.Error(),
		})
	}
	report.ArticlesStored = stored

	slog.Info("Ingestion run complete",
		"start_date", startDate,
		"end_date", endDate,
		"articles_attempted", report.ArticlesAttempted,
		"articles_stored", report.ArticlesStored,
		"failures", len(report.Failures),
	)
	return report, nil
}

// processArticle is the per-item journey: Fetched -> Extracted -> Stored.
func (uc *ingestUseCase) processArticle(ctx context.Context, page *entity.Page) error {
	record, err := uc.extractor.Extract(ctx, page)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrMalformedOutput):
			metrics.ExtractionsTotal.WithLabelValues("malformed").Inc()
		case errors.Is(err, repository.ErrNoData):
			metrics.ExtractionsTotal.WithLabelValues("no_data").Inc()
		default:
			metrics.ExtractionsTotal.WithLabelValues("error").Inc()
		}
		slog.Error("Extraction failed, skipping article", "url", page.URL, "error", err)
		return fmt.Errorf("extract %s: %w", page.URL, err)
	}
	metrics.ExtractionsTotal.WithLabelValues("success").Inc()

	if _, err := uc.writer.Write(ctx, page, record); err != nil {
		slog.Error("Store write failed", "url", page.URL, "error", err)
		return fmt.Errorf("store %s: %w", page.URL, err)
	}

	if uc.visited != nil {
		newsID := utils.NewsIDFromURL(page.URL)
		if err := uc.visited.MarkIngested(ctx, newsID, uc.visitedTTL); err != nil {
			// Not critical: the next run re-ingests and the upsert converges.
			slog.Warn("Failed to mark article as ingested", "news_id", newsID, "error", err)
		}
	}
	return nil
}

func (uc *ingestUseCase) filterVisited(ctx context.Context, links []string) ([]string, int) {
	if uc.visited == nil {
		return links, 0
	}
	kept := links[:0]
	skipped := 0
	for _, link := range links {
		ingested, err := uc.visited.IsIngested(ctx, utils.NewsIDFromURL(link))
		if err != nil {
			slog.Warn("Visited lookup failed, ingesting anyway", "url", link, "error", err)
		}
		if ingested {
			skipped++
			continue
		}
		kept = append(kept, link)
	}
	return kept, skipped
}

// failureStage classifies a per-article error into the stage where the
// journey ended.
func failureStage(err error) string {
	switch {
	case errors.Is(err, repository.ErrMalformedOutput), errors.Is(err, repository.ErrNoData):
		return entity.StageExtract
	case errors.Is(err, repository.ErrStoreWrite):
		return entity.StageStore
	default:
		return entity.StageFetch
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
