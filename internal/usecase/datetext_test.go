package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const sampleArticleText = `Flu vaccination scheme extended

The Department of Health announced today (January 2) that the scheme
will run until March.

Ends/Issued at HKT 16:30
Friday, January 2, 2026`

func TestPubDateFromText(t *testing.T) {
	assert.Equal(t, "2026-01-02", PubDateFromText(sampleArticleText))
}

func TestPubTimeFromText(t *testing.T) {
	assert.Equal(t, "16:30:00", PubTimeFromText(sampleArticleText))
}

func TestPubDateFromTextPrefersTailLines(t *testing.T) {
	text := "Published February 10, 2025 originally\n\nbody\n\nWednesday, March 5, 2025"
	assert.Equal(t, "2025-03-05", PubDateFromText(text))
}

func TestPubDateFromTextAbsent(t *testing.T) {
	assert.Empty(t, PubDateFromText("no dates here at all"))
	assert.Empty(t, PubDateFromText(""))
}

func TestPubDateFromTextRejectsImpossibleDate(t *testing.T) {
	assert.Empty(t, PubDateFromText("Monday, January 45, 2026"))
}

func TestPubTimeFromTextRejectsImpossibleTime(t *testing.T) {
	assert.Empty(t, PubTimeFromText("Ends/Issued at HKT 99:99"))
}

func TestPubTimeFromTextSingleDigitHour(t *testing.T) {
	assert.Equal(t, "09:05:00", PubTimeFromText("Ends/Issued at HKT 9:05"))
}
