package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	es "github.com/elastic/go-elasticsearch/v8"

	"github.com/user/newsingest/internal/entity"
	"github.com/user/newsingest/internal/repository"
)

// ChunkStore implements repository.ChunkStore on Elasticsearch. Each
// chunk is one document whose _id is the composite chunk id, so
// indexing the same chunk again replaces it in place: the store-level
// upsert the pipeline's idempotence rests on.
type ChunkStore struct {
	client *es.Client
	index  string
}

// NewChunkStore creates a ChunkStore writing to the given index.
func NewChunkStore(client *es.Client, index string) *ChunkStore {
	return &ChunkStore{client: client, index: index}
}

// chunkDoc is the stored document shape: the chunk text plus the
// denormalized metadata bag, flattened.
type chunkDoc struct {
	Text string `json:"text"`
	entity.ChunkMeta
}

const indexMapping = `{
	"mappings": {
		"properties": {
			"text":         {"type": "text"},
			"news_id":      {"type": "keyword"},
			"url":          {"type": "keyword"},
			"title":        {"type": "text"},
			"pub_date":     {"type": "keyword"},
			"pub_time":     {"type": "keyword"},
			"organization": {"type": "keyword"},
			"keywords":     {"type": "keyword"},
			"summary":      {"type": "text"},
			"chunk_index":  {"type": "integer"}
		}
	}
}`

// EnsureIndex creates the index with its mapping if it does not exist.
func (s *ChunkStore) EnsureIndex(ctx context.Context) error {
	res, err := s.client.Indices.Exists([]string{s.index}, s.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to check index %s: %w", s.index, err)
	}
	defer res.Body.Close()
	if res.StatusCode == 200 {
		return nil
	}

	res, err = s.client.Indices.Create(
		s.index,
		s.client.Indices.Create.WithContext(ctx),
		s.client.Indices.Create.WithBody(strings.NewReader(indexMapping)),
	)
	if err != nil {
		return fmt.Errorf("failed to create index %s: %w", s.index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("error creating index %s: %s", s.index, res.String())
	}
	slog.Info("Created chunk index", "index", s.index)
	return nil
}

// Upsert indexes every chunk by its id.
func (s *ChunkStore) Upsert(ctx context.Context, chunks []entity.Chunk) error {
	for _, chunk := range chunks {
		docBytes, err := json.Marshal(chunkDoc{Text: chunk.Text, ChunkMeta: chunk.Meta})
		if err != nil {
			return fmt.Errorf("failed to marshal chunk %s: %w", chunk.ID, err)
		}

		res, err := s.client.Index(
			s.index,
			bytes.NewReader(docBytes),
			s.client.Index.WithContext(ctx),
			s.client.Index.WithDocumentID(chunk.ID),
		)
		if err != nil {
			return fmt.Errorf("failed to index chunk %s: %w", chunk.ID, err)
		}
		res.Body.Close()
		if res.IsError() {
			return fmt.Errorf("error indexing chunk %s: %s", chunk.ID, res.String())
		}
	}
	return nil
}

// ByNewsID returns all chunks of one article in chunk-index order.
func (s *ChunkStore) ByNewsID(ctx context.Context, newsID string) ([]entity.Chunk, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{"news_id": newsID},
		},
		"size": 1000,
		"sort": []map[string]interface{}{
			{"chunk_index": map[string]interface{}{"order": "asc"}},
		},
	}
	return s.search(ctx, query)
}

// NewsIDs returns the distinct article ids present in the store.
func (s *ChunkStore) NewsIDs(ctx context.Context) ([]string, error) {
	query := map[string]interface{}{
		"size": 0,
		"aggs": map[string]interface{}{
			"news_ids": map[string]interface{}{
				"terms": map[string]interface{}{"field": "news_id", "size": 10000},
			},
		},
	}
	queryBytes, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal aggregation: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(queryBytes)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate news ids: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("error aggregating news ids: %s", res.String())
	}

	var aggResult struct {
		Aggregations struct {
			NewsIDs struct {
				Buckets []struct {
					Key string `json:"key"`
				} `json:"buckets"`
			} `json:"news_ids"`
		} `json:"aggregations"`
	}
	if err := json.NewDecoder(res.Body).Decode(&aggResult); err != nil {
		return nil, fmt.Errorf("error decoding aggregation response: %w", err)
	}

	ids := make([]string, 0, len(aggResult.Aggregations.NewsIDs.Buckets))
	for _, bucket := range aggResult.Aggregations.NewsIDs.Buckets {
		ids = append(ids, bucket.Key)
	}
	sort.Strings(ids)
	return ids, nil
}

// Query returns chunks matching the metadata filter.
func (s *ChunkStore) Query(ctx context.Context, filter repository.ChunkFilter) ([]entity.Chunk, error) {
	query := BuildQuery(filter)
	return s.search(ctx, query)
}

// BuildQuery translates a ChunkFilter into an Elasticsearch bool query.
func BuildQuery(filter repository.ChunkFilter) map[string]interface{} {
	var filters []map[string]interface{}

	if filter.DateFrom != "" || filter.DateTo != "" {
		bounds := map[string]interface{}{}
		if filter.DateFrom != "" {
			bounds["gte"] = filter.DateFrom
		}
		if filter.DateTo != "" {
			bounds["lte"] = filter.DateTo
		}
		filters = append(filters, map[string]interface{}{
			"range": map[string]interface{}{"pub_date": bounds},
		})
	}
	if len(filter.Organizations) > 0 {
		filters = append(filters, map[string]interface{}{
			"terms": map[string]interface{}{"organization": filter.Organizations},
		})
	}
	if filter.Keyword != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"keywords": filter.Keyword},
		})
	}

	boolQuery := map[string]interface{}{}
	if len(filters) > 0 {
		boolQuery["filter"] = filters
	} else {
		boolQuery["must"] = []map[string]interface{}{{"match_all": map[string]interface{}{}}}
	}

	size := filter.Limit
	if size <= 0 {
		size = 100
	}
	return map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
		"size":  size,
		"sort": []map[string]interface{}{
			{"news_id": map[string]interface{}{"order": "asc"}},
			{"chunk_index": map[string]interface{}{"order": "asc"}},
		},
	}
}

func (s *ChunkStore) search(ctx context.Context, query map[string]interface{}) ([]entity.Chunk, error) {
	queryBytes, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(bytes.NewReader(queryBytes)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search chunks: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("error searching chunks: %s", res.String())
	}

	var searchResult struct {
		Hits struct {
			Hits []struct {
				ID     string   `json:"_id"`
				Source chunkDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&searchResult); err != nil {
		return nil, fmt.Errorf("error decoding search response: %w", err)
	}

	chunks := make([]entity.Chunk, 0, len(searchResult.Hits.Hits))
	for _, hit := range searchResult.Hits.Hits {
		chunks = append(chunks, entity.Chunk{
			ID:   hit.ID,
			Text: hit.Source.Text,
			Meta: hit.Source.ChunkMeta,
		})
	}
	return chunks, nil
}
