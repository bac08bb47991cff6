package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/user/newsingest/internal/entity"
	"github.com/user/newsingest/internal/repository"
	"github.com/user/newsingest/pkg/metrics"
)

// Gate is an admission control hook consulted before each fetch slot is
// taken. The production gate pauses admissions under host memory
// pressure (pkg/sysmem); tests plug in stubs.
type Gate interface {
	Wait(ctx context.Context) error
}

// NopGate admits immediately.
type NopGate struct{}

func (NopGate) Wait(ctx context.Context) error { return ctx.Err() }

// ProcessFunc runs against each successfully fetched page, inside the
// fan-out worker, still under the concurrency cap. A non-nil error
// becomes that URL's failure outcome.
type ProcessFunc func(ctx context.Context, page *entity.Page) error

// Dispatcher fetches many URLs concurrently under two independent
// admission gates: a fixed slot count and the pluggable Gate. Every
// input URL yields exactly one FetchOutcome; a failure on one URL never
// blocks or aborts the others.
type Dispatcher struct {
	fetcher repository.PageFetcher
	gate    Gate
	slots   chan struct{}
}

// NewDispatcher creates a Dispatcher with the given concurrency ceiling.
func NewDispatcher(fetcher repository.PageFetcher, gate Gate, maxConcurrency int) *Dispatcher {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	if gate == nil {
		gate = NopGate{}
	}
	return &Dispatcher{
		fetcher: fetcher,
		gate:    gate,
		slots:   make(chan struct{}, maxConcurrency),
	}
}

// FetchMany fetches all URLs and, when process is non-nil, runs it on
// each fetched page before the slot is released. The returned slice is
// index-aligned with urls and always has len(urls) entries. No retries:
// the caller owns retry policy, because a blind retry could re-trigger
// an expensive LLM extraction.
func (d *Dispatcher) FetchMany(ctx context.Context, urls []string, target repository.FetchTarget, process ProcessFunc) []entity.FetchOutcome {
	outcomes := make([]entity.FetchOutcome, len(urls))
	var wg sync.WaitGroup

	for i, u := range urls {
		outcomes[i].URL = u

		// Admission gate one: memory pressure.
		if err := d.gate.Wait(ctx); err != nil {
			outcomes[i].Err = err
			continue
		}
		// Admission gate two: fixed slot count.
		select {
		case d.slots <- struct{}{}:
		case <-ctx.Done():
			outcomes[i].Err = ctx.Err()
			continue
		}

		wg.Add(1)
		go func(i int, pageURL string) {
			defer wg.Done()
			defer func() { <-d.slots }()

			start := time.Now()
			page, err := d.fetcher.Fetch(ctx, pageURL, target)
			if err == nil && process != nil {
				err = process(ctx, page)
			}
			metrics.FetchDuration.WithLabelValues(target.Kind).Observe(time.Since(start).Seconds())

			if err != nil {
				metrics.FetchesTotal.WithLabelValues(target.Kind, "failure").Inc()
				slog.Error("Page processing failed", "kind", target.Kind, "url", pageURL, "error", err)
				outcomes[i] = entity.FetchOutcome{URL: pageURL, Page: page, Err: err}
				return
			}

			metrics.FetchesTotal.WithLabelValues(target.Kind, "success").Inc()
			outcomes[i] = entity.FetchOutcome{URL: pageURL, Page: page}
		}(i, u)
	}

	wg.Wait()
	return outcomes
}
