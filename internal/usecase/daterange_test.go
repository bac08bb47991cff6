package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBase = "https://www.info.gov.hk"

func TestBuildListingURLsSingleDay(t *testing.T) {
	urls, err := BuildListingURLs(testBase, "20260201", "20260201")
	require.NoError(t, err)
	require.Len(t, urls, 1)
	assert.Equal(t, "https://www.info.gov.hk/gia/general/202602/01.htm", urls[0])
}

func TestBuildListingURLsCrossesMonthBoundary(t *testing.T) {
	urls, err := BuildListingURLs(testBase, "20260130", "20260202")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://www.info.gov.hk/gia/general/202601/30.htm",
		"https://www.info.gov.hk/gia/general/202601/31.htm",
		"https://www.info.gov.hk/gia/general/202602/01.htm",
		"https://www.info.gov.hk/gia/general/202602/02.htm",
	}, urls)
}

func TestBuildListingURLsInclusiveDayCount(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"same day", "20260101", "20260101", 1},
		{"one week", "20260101", "20260107", 7},
		{"full month", "20260101", "20260131", 31},
		{"leap february", "20240201", "20240301", 30},
		{"across year", "20251230", "20260102", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			urls, err := BuildListingURLs(testBase, tt.start, tt.end)
			require.NoError(t, err)
			assert.Len(t, urls, tt.want)
		})
	}
}

func TestBuildListingURLsStartAfterEnd(t *testing.T) {
	urls, err := BuildListingURLs(testBase, "20260202", "20260201")
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestBuildListingURLsInvalidFormat(t *testing.T) {
	invalid := []string{"", "2026-02-01", "202602", "2026020", "abcdefgh", "20261301", "20260232"}
	for _, bad := range invalid {
		_, err := BuildListingURLs(testBase, bad, "20260201")
		assert.ErrorIs(t, err, ErrInvalidDateFormat, "start date %q", bad)

		_, err = BuildListingURLs(testBase, "20260201", bad)
		assert.ErrorIs(t, err, ErrInvalidDateFormat, "end date %q", bad)
	}
}
