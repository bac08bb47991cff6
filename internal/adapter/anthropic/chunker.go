package anthropic

import "unicode/utf8"

// Rough chars-per-token ratio used to translate the token threshold
// into a character budget without a tokenizer dependency.
const charsPerToken = 4

// chunkByTokens slices text into pieces of at most threshold tokens
// (approximated), each overlapping the previous one by overlapRate so
// a field straddling a boundary is still seen whole by one chunk. Cuts
// land on rune boundaries, never inside a multi-byte character. The
// slicing is deterministic.
func chunkByTokens(text string, tokenThreshold int, overlapRate float64) []string {
	if tokenThreshold < 1 {
		tokenThreshold = 1
	}
	if overlapRate < 0 || overlapRate >= 1 {
		overlapRate = 0
	}

	size := tokenThreshold * charsPerToken
	if len(text) <= size {
		return []string{text}
	}

	overlap := int(float64(size) * overlapRate)
	step := size - overlap
	if step < 1 {
		step = 1
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + size
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			break
		}
		end = runeStart(text, end)
		if end <= start {
			end = start + size
		}
		chunks = append(chunks, text[start:end])

		next := start + step
		if next > end {
			next = end
		}
		next = runeStart(text, next)
		if next <= start {
			next = end
		}
		start = next
	}
	return chunks
}

// runeStart backs a byte offset off to the start of the rune it falls
// inside.
func runeStart(s string, i int) int {
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}
