package response

import "time"

// IngestResponse acknowledges an accepted ingestion run.
type IngestResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// NewsResponse is a DTO for one stored press release row.
type NewsResponse struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	Title        string    `json:"title"`
	PubDate      string    `json:"pub_date,omitempty"`
	PubTime      string    `json:"pub_time,omitempty"`
	Organization string    `json:"organization,omitempty"`
	Keywords     []string  `json:"keywords,omitempty"`
	Summary      string    `json:"summary,omitempty"`
	CrawledAt    time.Time `json:"crawled_at"`
}

// ReportResponse carries an LLM-written report over stored chunks.
type ReportResponse struct {
	Report string `json:"report"`
}
