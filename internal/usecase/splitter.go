package usecase

import (
	"strings"
	"unicode/utf8"
)

const paragraphSeparator = "\n\n"

// SplitText splits text into chunks of at most maxChunkSize characters,
// greedily packing whole paragraphs (separated by blank lines) into
// each chunk. A single paragraph longer than maxChunkSize is hard-split
// at the size boundary. The split is deterministic: identical input and
// size always produce identical chunks.
func SplitText(text string, maxChunkSize int) []string {
	if maxChunkSize < 1 {
		maxChunkSize = 1
	}

	var paragraphs []string
	for _, p := range strings.Split(text, paragraphSeparator) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		for len(p) > maxChunkSize {
			// Back the cut off to a rune boundary so a multi-byte
			// character never straddles two chunks.
			cut := maxChunkSize
			for cut > 0 && !utf8.RuneStart(p[cut]) {
				cut--
			}
			if cut == 0 {
				cut = maxChunkSize
			}
			paragraphs = append(paragraphs, p[:cut])
			p = p[cut:]
		}
		paragraphs = append(paragraphs, p)
	}

	var chunks []string
	var current strings.Builder
	for _, p := range paragraphs {
		if current.Len() > 0 && current.Len()+len(paragraphSeparator)+len(p) > maxChunkSize {
			chunks = append(chunks, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(paragraphSeparator)
		}
		current.WriteString(p)
	}
	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}
	return chunks
}
