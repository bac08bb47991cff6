package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/newsingest/internal/entity"
	"github.com/user/newsingest/internal/repository"
)

// fakeFetcher serves canned pages and tracks peak in-flight calls so
// tests can verify the concurrency ceiling. URLs listed in fail return
// their error instead of a page.
type fakeFetcher struct {
	mu       sync.Mutex
	inFlight int
	peak     int
	delay    time.Duration
	fail     map[string]error
	pages    map[string]*entity.Page
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string, target repository.FetchTarget) (*entity.Page, error) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.peak {
		f.peak = f.inFlight
	}
	f.mu.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()

	if err, ok := f.fail[url]; ok {
		return nil, err
	}
	if page, ok := f.pages[url]; ok {
		return page, nil
	}
	return &entity.Page{URL: url, Text: "body of " + url, FetchedAt: time.Now()}, nil
}

type errGate struct{ err error }

func (g errGate) Wait(ctx context.Context) error { return g.err }

var testTarget = repository.FetchTarget{Kind: "listing", Selectors: []string{"div.leftBody"}}

func TestFetchManyOneOutcomePerURL(t *testing.T) {
	urls := []string{
		"https://example.org/a.htm",
		"https://example.org/b.htm",
		"https://example.org/c.htm",
		"https://example.org/d.htm",
	}
	fetcher := &fakeFetcher{fail: map[string]error{
		"https://example.org/c.htm": repository.ErrNavigationFailed,
	}}
	d := NewDispatcher(fetcher, nil, 2)

	outcomes := d.FetchMany(context.Background(), urls, testTarget, nil)

	require.Len(t, outcomes, len(urls))
	for i, o := range outcomes {
		assert.Equal(t, urls[i], o.URL, "outcomes must stay index-aligned")
	}
	assert.True(t, outcomes[0].Success())
	assert.True(t, outcomes[1].Success())
	assert.ErrorIs(t, outcomes[2].Err, repository.ErrNavigationFailed)
	assert.True(t, outcomes[3].Success(), "one failing URL must not affect the rest")
}

func TestFetchManyHonorsConcurrencyCeiling(t *testing.T) {
	urls := make([]string, 12)
	for i := range urls {
		urls[i] = "https://example.org/" + strings.Repeat("x", i+1) + ".htm"
	}
	fetcher := &fakeFetcher{delay: 20 * time.Millisecond}
	d := NewDispatcher(fetcher, nil, 3)

	d.FetchMany(context.Background(), urls, testTarget, nil)

	assert.LessOrEqual(t, fetcher.peak, 3)
	assert.Greater(t, fetcher.peak, 1, "fan-out should actually run in parallel")
}

func TestNewDispatcherClampsConcurrency(t *testing.T) {
	fetcher := &fakeFetcher{delay: 5 * time.Millisecond}
	d := NewDispatcher(fetcher, nil, 0)

	outcomes := d.FetchMany(context.Background(), []string{"https://a", "https://b"}, testTarget, nil)

	require.Len(t, outcomes, 2)
	assert.Equal(t, 1, fetcher.peak)
}

func TestFetchManyProcessErrorBecomesOutcome(t *testing.T) {
	boom := errors.New("process failed")
	fetcher := &fakeFetcher{}
	d := NewDispatcher(fetcher, nil, 2)

	outcomes := d.FetchMany(context.Background(), []string{"https://a", "https://b"}, testTarget,
		func(ctx context.Context, page *entity.Page) error {
			if page.URL == "https://b" {
				return boom
			}
			return nil
		})

	require.Len(t, outcomes, 2)
	assert.True(t, outcomes[0].Success())
	assert.ErrorIs(t, outcomes[1].Err, boom)
	assert.NotNil(t, outcomes[1].Page, "the fetched page stays attached to a process failure")
}

func TestFetchManyGateDenied(t *testing.T) {
	denied := errors.New("admission denied")
	d := NewDispatcher(&fakeFetcher{}, errGate{err: denied}, 2)

	outcomes := d.FetchMany(context.Background(), []string{"https://a", "https://b"}, testTarget, nil)

	require.Len(t, outcomes, 2)
	for _, o := range outcomes {
		assert.ErrorIs(t, o.Err, denied)
	}
}

func TestFetchManyCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := NewDispatcher(&fakeFetcher{}, nil, 2)

	outcomes := d.FetchMany(ctx, []string{"https://a", "https://b"}, testTarget, nil)

	require.Len(t, outcomes, 2)
	for _, o := range outcomes {
		assert.ErrorIs(t, o.Err, context.Canceled)
	}
}
