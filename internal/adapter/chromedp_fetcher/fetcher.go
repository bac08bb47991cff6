package chromedp_fetcher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/user/newsingest/internal/entity"
	"github.com/user/newsingest/internal/repository"
)

const userAgent = `Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.0.0 Safari/537.36`

// Fetcher implements repository.PageFetcher with headless Chrome. Exec
// allocators are pooled; each Fetch gets its own browser context that
// is cancelled on every exit path.
type Fetcher struct {
	allocatorPool *sync.Pool
	timeout       time.Duration
}

// New creates a Fetcher. maxConcurrency pre-warms the allocator pool to
// the fan-out ceiling so concurrent fetches do not cold-start Chrome.
func New(maxConcurrency int, pageLoadTimeout time.Duration) (repository.PageFetcher, error) {
	pool := &sync.Pool{
		New: func() interface{} {
			opts := append(chromedp.DefaultExecAllocatorOptions[:],
				chromedp.Flag("headless", true),
				chromedp.Flag("disable-gpu", true),
				chromedp.Flag("no-sandbox", true),
				chromedp.Flag("disable-dev-shm-usage", true),
				chromedp.Flag("blink-settings", "imagesEnabled=false"),
				chromedp.UserAgent(userAgent),
			)
			allocCtx, _ := chromedp.NewExecAllocator(context.Background(), opts...)
			return allocCtx
		},
	}

	for i := 0; i < maxConcurrency; i++ {
		allocCtx := pool.Get().(context.Context)
		pool.Put(allocCtx)
	}

	return &Fetcher{
		allocatorPool: pool,
		timeout:       pageLoadTimeout,
	}, nil
}

// Fetch renders one page and parses out title, target-element text and
// internal links. Timeouts and navigation errors come back as sentinel
// fetch errors for the caller's outcome classification.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string, target repository.FetchTarget) (*entity.Page, error) {
	allocCtx := f.allocatorPool.Get().(context.Context)
	defer f.allocatorPool.Put(allocCtx)

	taskCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	taskCtx, cancelTimeout := context.WithTimeout(taskCtx, f.timeout)
	defer cancelTimeout()

	// Track the HTTP status of the main document via network events.
	var statusCode atomic.Int64
	chromedp.ListenTarget(taskCtx, func(ev interface{}) {
		if resp, ok := ev.(*network.EventResponseReceived); ok && resp.Type == network.ResourceTypeDocument {
			statusCode.CompareAndSwap(0, resp.Response.Status)
		}
	})

	var html string
	err := chromedp.Run(taskCtx,
		network.Enable(),
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, repository.ErrFetchTimeout
		}
		slog.Debug("Navigation failed", "url", pageURL, "error", err)
		return nil, errors.Join(repository.ErrNavigationFailed, err)
	}

	page, err := ParsePage(pageURL, html, target)
	if err != nil {
		return nil, err
	}
	page.StatusCode = int(statusCode.Load())
	page.FetchedAt = time.Now()
	return page, nil
}
