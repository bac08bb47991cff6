package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/newsingest/internal/entity"
	"github.com/user/newsingest/internal/repository"
)

// memChunkStore keeps chunks keyed by id, mirroring the upsert
// semantics of the real document store.
type memChunkStore struct {
	mu      sync.Mutex
	docs    map[string]entity.Chunk
	upserts int
	failure error
}

func newMemChunkStore() *memChunkStore {
	return &memChunkStore{docs: make(map[string]entity.Chunk)}
}

func (s *memChunkStore) Upsert(ctx context.Context, chunks []entity.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failure != nil {
		return s.failure
	}
	for _, c := range chunks {
		s.docs[c.ID] = c
	}
	s.upserts++
	return nil
}

func (s *memChunkStore) ByNewsID(ctx context.Context, newsID string) ([]entity.Chunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Chunk
	for _, c := range s.docs {
		if c.Meta.NewsID == newsID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Meta.ChunkIndex < out[j].Meta.ChunkIndex })
	return out, nil
}

func (s *memChunkStore) NewsIDs(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{})
	for _, c := range s.docs {
		seen[c.Meta.NewsID] = struct{}{}
	}
	return sortedKeys(seen), nil
}

func (s *memChunkStore) Query(ctx context.Context, filter repository.ChunkFilter) ([]entity.Chunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Chunk
	for _, c := range s.docs {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// memNewsStore keeps news rows keyed by id.
type memNewsStore struct {
	mu   sync.Mutex
	rows map[string]*entity.News
}

func newMemNewsStore() *memNewsStore {
	return &memNewsStore{rows: make(map[string]*entity.News)}
}

func (s *memNewsStore) EnsureSchema(ctx context.Context) error { return nil }

func (s *memNewsStore) Upsert(ctx context.Context, news *entity.News) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[news.ID] = news
	return nil
}

func (s *memNewsStore) FindByID(ctx context.Context, id string) (*entity.News, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return row, nil
}

func (s *memNewsStore) FindByDateRange(ctx context.Context, from, to string) ([]*entity.News, error) {
	return nil, nil
}

func articlePage() *entity.Page {
	return &entity.Page{
		URL:   "https://www.info.gov.hk/gia/general/202601/02/P2026010200321.htm",
		Title: "Flu vaccination scheme extended",
		Text: strings.Repeat("First paragraph of the release body.\n\n", 3) +
			"Ends/Issued at HKT 16:30\nFriday, January 2, 2026",
		FetchedAt: time.Now(),
	}
}

func TestWriteUpsertsDeterministicChunkIDs(t *testing.T) {
	chunks := newMemChunkStore()
	writer := NewStoreWriter(chunks, nil, 60)

	n, err := writer.Write(context.Background(), articlePage(), &entity.ExtractedRecord{Title: "t"})
	require.NoError(t, err)
	require.Greater(t, n, 1)

	stored, err := chunks.ByNewsID(context.Background(), "P2026010200321")
	require.NoError(t, err)
	require.Len(t, stored, n)
	for i, c := range stored {
		assert.Equal(t, entity.ChunkID("P2026010200321", i), c.ID)
		assert.Equal(t, i, c.Meta.ChunkIndex)
	}
}

func TestWriteIsIdempotent(t *testing.T) {
	chunks := newMemChunkStore()
	news := newMemNewsStore()
	writer := NewStoreWriter(chunks, news, 60)
	page := articlePage()
	record := &entity.ExtractedRecord{Title: "Flu scheme", Organization: "Department of Health"}

	first, err := writer.Write(context.Background(), page, record)
	require.NoError(t, err)
	second, err := writer.Write(context.Background(), page, record)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, chunks.upserts, "both writes must reach the store")
	assert.Len(t, chunks.docs, first, "re-writing replaces in place, it never duplicates")
	assert.Len(t, news.rows, 1)
}

func TestWriteBackfillsFromPage(t *testing.T) {
	chunks := newMemChunkStore()
	writer := NewStoreWriter(chunks, nil, 2000)

	// The extractor returned nothing usable for these fields.
	_, err := writer.Write(context.Background(), articlePage(), &entity.ExtractedRecord{Organization: "DH"})
	require.NoError(t, err)

	stored, err := chunks.ByNewsID(context.Background(), "P2026010200321")
	require.NoError(t, err)
	require.NotEmpty(t, stored)
	meta := stored[0].Meta
	assert.Equal(t, "Flu vaccination scheme extended", meta.Title)
	assert.Equal(t, "2026-01-02", meta.PubDate)
	assert.Equal(t, "16:30:00", meta.PubTime)
	assert.Equal(t, "DH", meta.Organization)
}

func TestWriteNewsRow(t *testing.T) {
	news := newMemNewsStore()
	writer := NewStoreWriter(nil, news, 2000)

	_, err := writer.Write(context.Background(), articlePage(), &entity.ExtractedRecord{
		Title:    "Flu scheme",
		Keywords: []string{"health", "vaccination"},
		Summary:  "The scheme runs until March.",
	})
	require.NoError(t, err)

	row, err := news.FindByID(context.Background(), "P2026010200321")
	require.NoError(t, err)
	assert.Equal(t, "Flu scheme", row.Title)
	assert.Equal(t, []string{"health", "vaccination"}, row.Keywords)
	assert.NotEmpty(t, row.Content)
	assert.False(t, row.CrawledAt.IsZero())
}

func TestWriteChunkStoreFailure(t *testing.T) {
	chunks := newMemChunkStore()
	chunks.failure = errors.New("cluster unreachable")
	writer := NewStoreWriter(chunks, nil, 2000)

	_, err := writer.Write(context.Background(), articlePage(), &entity.ExtractedRecord{Title: "t"})
	assert.ErrorIs(t, err, repository.ErrStoreWrite)
}

func TestWriteUnderivableNewsID(t *testing.T) {
	writer := NewStoreWriter(newMemChunkStore(), nil, 2000)

	_, err := writer.Write(context.Background(), &entity.Page{URL: "https://example.org/", Text: "x"}, nil)
	assert.Error(t, err)
}
