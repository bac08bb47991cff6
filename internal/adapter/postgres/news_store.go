package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/newsingest/internal/entity"
	"github.com/user/newsingest/internal/repository"
)

// NewsStoreImpl provides the relational persistence variant: one row
// per press release in a `news` table, keyed by news_id.
type NewsStoreImpl struct {
	db *pgxpool.Pool
}

// NewNewsStore creates a new instance of NewsStoreImpl.
func NewNewsStore(db *pgxpool.Pool) *NewsStoreImpl {
	return &NewsStoreImpl{db: db}
}

// EnsureSchema creates the news table if it does not exist.
func (r *NewsStoreImpl) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS news (
			id            TEXT PRIMARY KEY,
			url           TEXT NOT NULL,
			title         TEXT NOT NULL DEFAULT '',
			pub_date      TEXT NOT NULL DEFAULT '',
			pub_time      TEXT NOT NULL DEFAULT '',
			organization  TEXT NOT NULL DEFAULT '',
			keywords      TEXT[] NOT NULL DEFAULT '{}',
			summary       TEXT NOT NULL DEFAULT '',
			content       TEXT NOT NULL DEFAULT '',
			crawled_at    TIMESTAMPTZ NOT NULL
		);
	`
	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure news table: %w", err)
	}
	return nil
}

// Upsert stores or updates the row for one article. Re-running the
// same date range converges on the latest crawl instead of erroring.
func (r *NewsStoreImpl) Upsert(ctx context.Context, news *entity.News) error {
	query := `
		INSERT INTO news (id, url, title, pub_date, pub_time, organization, keywords, summary, content, crawled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			url = EXCLUDED.url,
			title = EXCLUDED.title,
			pub_date = EXCLUDED.pub_date,
			pub_time = EXCLUDED.pub_time,
			organization = EXCLUDED.organization,
			keywords = EXCLUDED.keywords,
			summary = EXCLUDED.summary,
			content = EXCLUDED.content,
			crawled_at = EXCLUDED.crawled_at;
	`
	_, err := r.db.Exec(ctx, query,
		news.ID,
		news.URL,
		news.Title,
		news.PubDate,
		news.PubTime,
		news.Organization,
		news.Keywords,
		news.Summary,
		news.Content,
		news.CrawledAt,
	)
	return err
}

// FindByID retrieves one row or repository.ErrNotFound.
func (r *NewsStoreImpl) FindByID(ctx context.Context, id string) (*entity.News, error) {
	query := `
		SELECT id, url, title, pub_date, pub_time, organization, keywords, summary, content, crawled_at
		FROM news
		WHERE id = $1;
	`
	row := r.db.QueryRow(ctx, query, id)

	var news entity.News
	err := row.Scan(
		&news.ID,
		&news.URL,
		&news.Title,
		&news.PubDate,
		&news.PubTime,
		&news.Organization,
		&news.Keywords,
		&news.Summary,
		&news.Content,
		&news.CrawledAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &news, nil
}

// FindByDateRange returns rows with pub_date in [from, to], ascending.
func (r *NewsStoreImpl) FindByDateRange(ctx context.Context, from, to string) ([]*entity.News, error) {
	query := `
		SELECT id, url, title, pub_date, pub_time, organization, keywords, summary, content, crawled_at
		FROM news
		WHERE pub_date >= $1 AND pub_date <= $2
		ORDER BY pub_date ASC, pub_time ASC;
	`
	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*entity.News
	for rows.Next() {
		var news entity.News
		if err := rows.Scan(
			&news.ID,
			&news.URL,
			&news.Title,
			&news.PubDate,
			&news.PubTime,
			&news.Organization,
			&news.Keywords,
			&news.Summary,
			&news.Content,
			&news.CrawledAt,
		); err != nil {
			return nil, err
		}
		items = append(items, &news)
	}
	return items, rows.Err()
}
