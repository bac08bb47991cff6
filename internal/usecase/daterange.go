package usecase

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDateFormat is returned when a date bound is not a parsable
// 8-digit YYYYMMDD string. It is fatal to the call, not to the process.
var ErrInvalidDateFormat = errors.New("invalid date format, want YYYYMMDD")

const dateLayout = "20060102"

// listing pages are grouped by year+month directory, addressed by day:
// <base>/gia/general/<YYYYMM>/<DD>.htm
const listingPathFormat = "%s/gia/general/%s/%s.htm"

// ParseDate validates an 8-digit YYYYMMDD date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return t, nil
}

// BuildListingURLs returns one listing-page URL per calendar day from
// startDate to endDate inclusive, in ascending date order. A start date
// after the end date yields an empty slice and no error.
func BuildListingURLs(baseURL, startDate, endDate string) ([]string, error) {
	start, err := ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := ParseDate(endDate)
	if err != nil {
		return nil, err
	}

	var urls []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		ds := d.Format(dateLayout)
		urls = append(urls, fmt.Sprintf(listingPathFormat, baseURL, ds[:6], ds[6:]))
	}
	return urls, nil
}
