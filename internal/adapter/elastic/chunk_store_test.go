package elastic

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/newsingest/internal/entity"
	"github.com/user/newsingest/internal/repository"
)

func TestBuildQueryEmptyFilter(t *testing.T) {
	q := BuildQuery(repository.ChunkFilter{})

	boolQuery := q["query"].(map[string]interface{})["bool"].(map[string]interface{})
	assert.Contains(t, boolQuery, "must", "no constraints means match_all")
	assert.NotContains(t, boolQuery, "filter")
	assert.Equal(t, 100, q["size"], "default result size")
}

func TestBuildQueryFullFilter(t *testing.T) {
	q := BuildQuery(repository.ChunkFilter{
		DateFrom:      "2026-01-01",
		DateTo:        "2026-01-31",
		Organizations: []string{"Department of Health", "Transport Department"},
		Keyword:       "vaccination",
		Limit:         25,
	})

	assert.Equal(t, 25, q["size"])

	boolQuery := q["query"].(map[string]interface{})["bool"].(map[string]interface{})
	filters := boolQuery["filter"].([]map[string]interface{})
	require.Len(t, filters, 3)

	rangeFilter := filters[0]["range"].(map[string]interface{})["pub_date"].(map[string]interface{})
	assert.Equal(t, "2026-01-01", rangeFilter["gte"])
	assert.Equal(t, "2026-01-31", rangeFilter["lte"])

	terms := filters[1]["terms"].(map[string]interface{})["organization"].([]string)
	assert.Equal(t, []string{"Department of Health", "Transport Department"}, terms)

	term := filters[2]["term"].(map[string]interface{})["keywords"]
	assert.Equal(t, "vaccination", term)
}

func TestBuildQueryOpenEndedDateRange(t *testing.T) {
	q := BuildQuery(repository.ChunkFilter{DateFrom: "2026-01-01"})

	boolQuery := q["query"].(map[string]interface{})["bool"].(map[string]interface{})
	filters := boolQuery["filter"].([]map[string]interface{})
	require.Len(t, filters, 1)

	bounds := filters[0]["range"].(map[string]interface{})["pub_date"].(map[string]interface{})
	assert.Equal(t, "2026-01-01", bounds["gte"])
	assert.NotContains(t, bounds, "lte")
}

func TestBuildQuerySortIsStable(t *testing.T) {
	q := BuildQuery(repository.ChunkFilter{})

	sortSpec := q["sort"].([]map[string]interface{})
	require.Len(t, sortSpec, 2)
	assert.Contains(t, sortSpec[0], "news_id")
	assert.Contains(t, sortSpec[1], "chunk_index")
}

func TestChunkDocRoundTrip(t *testing.T) {
	doc := chunkDoc{
		Text: "body text",
		ChunkMeta: entity.ChunkMeta{
			NewsID:     "P2026010200001",
			PubDate:    "2026-01-02",
			Keywords:   []string{"health"},
			ChunkIndex: 3,
		},
	}

	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	// The metadata bag flattens into the document root so the index
	// mapping's field names line up.
	var flat map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &flat))
	assert.Equal(t, "body text", flat["text"])
	assert.Equal(t, "P2026010200001", flat["news_id"])
	assert.Equal(t, float64(3), flat["chunk_index"])
	assert.NotContains(t, flat, "ChunkMeta")
}
