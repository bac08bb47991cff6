package entity

import "time"

// Page is a fetched and rendered web page: either a day-indexed listing
// page or a press-release article page. Listing pages live only long
// enough for link extraction; article pages feed extraction and storage.
type Page struct {
	URL        string
	Title      string
	HTML       string
	Text       string   // rendered text of the target elements, paragraphs separated by blank lines
	Links      []string // absolute internal links found on the page
	StatusCode int
	FetchedAt  time.Time
}
