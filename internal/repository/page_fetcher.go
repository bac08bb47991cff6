package repository

import (
	"context"

	"github.com/user/newsingest/internal/entity"
)

// FetchTarget tells the fetcher which page elements hold the content of
// interest. Kind labels metrics; Selectors are CSS selectors whose
// rendered text becomes Page.Text.
type FetchTarget struct {
	Kind      string
	Selectors []string
}

// PageFetcher defines the contract for fetching and rendering a single
// web page. Implementations must release every browser/session resource
// on all exit paths, including errors and context cancellation.
type PageFetcher interface {
	Fetch(ctx context.Context, url string, target FetchTarget) (*entity.Page, error)
}
