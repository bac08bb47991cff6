package entity

import "fmt"

// Chunk is a content-addressed slice of an article's text. Chunk IDs
// are deterministic ({news_id}#chunk={index}) so re-ingesting the same
// article upserts in place instead of duplicating.
type Chunk struct {
	ID   string
	Text string
	Meta ChunkMeta
}

// ChunkMeta is the metadata bag attached to every chunk of an article.
// The extracted summary fields are denormalized onto each chunk so the
// store can filter on them without a join.
type ChunkMeta struct {
	NewsID       string   `json:"news_id"`
	URL          string   `json:"url"`
	Title        string   `json:"title"`
	PubDate      string   `json:"pub_date"`
	PubTime      string   `json:"pub_time"`
	Organization string   `json:"organization"`
	Keywords     []string `json:"keywords"`
	Summary      string   `json:"summary"`
	ChunkIndex   int      `json:"chunk_index"`
}

// ChunkID builds the stable composite identifier for one chunk.
func ChunkID(newsID string, index int) string {
	return fmt.Sprintf("%s#chunk=%d", newsID, index)
}
