package entity

import "time"

// News mirrors the `news` PostgreSQL table: one row per press release,
// keyed by the news_id derived from the article URL.
type News struct {
	ID           string
	URL          string
	Title        string
	PubDate      string // YYYY-MM-DD, empty if unknown
	PubTime      string // HH:MM:SS, empty if unknown
	Organization string
	Keywords     []string
	Summary      string
	Content      string
	CrawledAt    time.Time
}
