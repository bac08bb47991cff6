package entity

// Stage names for per-article failure reporting.
const (
	StageFetch   = "fetch"
	StageExtract = "extract"
	StageStore   = "store"
)

// StageFailure records where in the Fetched -> Extracted -> Stored
// journey one article dropped out.
type StageFailure struct {
	URL    string `json:"url"`
	Stage  string `json:"stage"`
	Reason string `json:"reason"`
}

// RunReport summarizes one date-range ingestion run.
type RunReport struct {
	StartDate         string         `json:"start_date"`
	EndDate           string         `json:"end_date"`
	ListingPages      int            `json:"listing_pages"`
	ArticlesFound     int            `json:"articles_found"`
	ArticlesSkipped   int            `json:"articles_skipped"` // already ingested
	ArticlesAttempted int            `json:"articles_attempted"`
	ArticlesStored    int            `json:"articles_stored"`
	Failures          []StageFailure `json:"failures,omitempty"`
}
