package repository

import (
	"context"

	"github.com/user/newsingest/internal/entity"
)

// NewsStore is the relational variant of persistence: one row per
// article in a `news` table keyed by news_id.
type NewsStore interface {
	// EnsureSchema creates the news table if it does not exist.
	EnsureSchema(ctx context.Context) error
	// Upsert stores the row, replacing any existing row with the same id.
	Upsert(ctx context.Context, news *entity.News) error
	// FindByID returns one row or ErrNotFound.
	FindByID(ctx context.Context, id string) (*entity.News, error)
	// FindByDateRange returns rows with pub_date in [from, to], ascending.
	FindByDateRange(ctx context.Context, from, to string) ([]*entity.News, error)
}
