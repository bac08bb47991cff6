package entity

// ExtractedRecord is the LLM-derived structured payload for one
// article. Every field is optional: incomplete extractor output leaves
// zero values, it never aborts the article.
type ExtractedRecord struct {
	Title        string   `json:"title"`
	Organization string   `json:"organization"`
	PubDate      string   `json:"pub_date"` // YYYY-MM-DD
	PubTime      string   `json:"pub_time"` // HH:MM:SS
	Keywords     []string `json:"keywords"` // at most MaxKeywords
	Summary      string   `json:"summary"`  // at most MaxSummaryWords words
}

const (
	MaxKeywords     = 5
	MaxSummaryWords = 700
)

// Empty reports whether the record carries no extracted content at all.
func (r *ExtractedRecord) Empty() bool {
	return r.Title == "" && r.Organization == "" && r.PubDate == "" &&
		r.PubTime == "" && len(r.Keywords) == 0 && r.Summary == ""
}
