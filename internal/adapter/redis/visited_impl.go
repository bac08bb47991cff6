package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/user/newsingest/pkg/utils"
)

const ingestedKeyPrefix = "ingested:"

// VisitedStoreImpl tracks ingested news ids in Redis with a TTL, so a
// re-run over an overlapping date range skips articles it already paid
// to fetch and extract.
type VisitedStoreImpl struct {
	client *redis.Client
}

// NewVisitedStore creates a new instance of VisitedStoreImpl.
func NewVisitedStore(client *redis.Client) *VisitedStoreImpl {
	return &VisitedStoreImpl{client: client}
}

// generateKey creates a consistent Redis key for a news id by hashing it.
func (r *VisitedStoreImpl) generateKey(newsID string) string {
	return fmt.Sprintf("%s%s", ingestedKeyPrefix, utils.HashURL(newsID))
}

// MarkIngested records a news id with an expiry.
func (r *VisitedStoreImpl) MarkIngested(ctx context.Context, newsID string, expiry time.Duration) error {
	return r.client.SetEx(ctx, r.generateKey(newsID), "1", expiry).Err()
}

// IsIngested checks whether a news id was recorded recently.
func (r *VisitedStoreImpl) IsIngested(ctx context.Context, newsID string) (bool, error) {
	val, err := r.client.Exists(ctx, r.generateKey(newsID)).Result()
	if err != nil {
		return false, err
	}
	return val == 1, nil
}

// Remove forgets a news id, forcing re-ingestion on the next run.
func (r *VisitedStoreImpl) Remove(ctx context.Context, newsID string) error {
	return r.client.Del(ctx, r.generateKey(newsID)).Err()
}
