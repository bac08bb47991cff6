package entity

// FetchOutcome is the per-URL result of a fan-out fetch. Exactly one
// outcome exists for every input URL: either a rendered page, or an
// error explaining why that URL (and only that URL) dropped out.
type FetchOutcome struct {
	URL  string
	Page *Page
	Err  error
}

// Success reports whether the URL was fetched and processed.
func (o FetchOutcome) Success() bool {
	return o.Err == nil
}
