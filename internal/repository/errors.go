package repository

import "errors"

var (
	// Fetch failures. All of them are per-URL: they surface as
	// FetchOutcome errors, never abort a batch.
	ErrFetchTimeout     = errors.New("page fetch timed out")
	ErrNavigationFailed = errors.New("page navigation failed")
	ErrNoContent        = errors.New("page rendered without target content")

	// Extraction failures, per article.
	ErrMalformedOutput = errors.New("extractor returned malformed output")
	ErrNoData          = errors.New("extractor returned no data")

	// Persistence failures, per article. Logged as errors but never
	// abort the rest of a batch.
	ErrStoreWrite = errors.New("store write failed")

	// Store lookups.
	ErrNotFound = errors.New("record not found")
)
