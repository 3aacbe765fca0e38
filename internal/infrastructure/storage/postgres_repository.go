package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"

	"CityTrends/internal/ports"
)

const sentimentTable = "city_sentiments"

const sentimentSchema = `CREATE TABLE IF NOT EXISTS city_sentiments (
    city              TEXT PRIMARY KEY,
    average_sentiment DOUBLE PRECISION NOT NULL,
    created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresSentimentCache stores city sentiment in Postgres. Entries are written
// immediately so Flush has nothing to do.
type PostgresSentimentCache struct {
	db *sql.DB
}

var _ ports.SentimentCache = (*PostgresSentimentCache)(nil)

// NewPostgresSentimentCache wires a sql.DB implementation.
func NewPostgresSentimentCache(db *sql.DB) *PostgresSentimentCache {
	return &PostgresSentimentCache{db: db}
}

// OpenPostgres connects to the DSN and makes sure the cache table exists.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, sentimentSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return db, nil
}

// Get returns the stored sentiment of a city.
func (r *PostgresSentimentCache) Get(ctx context.Context, city string) (float64, bool, error) {
	if r.db == nil {
		return 0, false, nil
	}

	query, args, err := selectSentiment(city)
	if err != nil {
		return 0, false, fmt.Errorf("build select: %w", err)
	}

	var value float64
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query sentiment: %w", err)
	}
	return value, true, nil
}

// Put inserts the sentiment unless the city already has one.
func (r *PostgresSentimentCache) Put(ctx context.Context, city string, value float64) error {
	if r.db == nil {
		return nil
	}

	query, args, err := insertSentiment(city, value)
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert sentiment: %w", err)
	}
	return nil
}

// Flush is a no-op.
func (r *PostgresSentimentCache) Flush(context.Context) error { return nil }

func selectSentiment(city string) (string, []any, error) {
	return psql.Select("average_sentiment").
		From(sentimentTable).
		Where(sq.Eq{"city": city}).
		ToSql()
}

func insertSentiment(city string, value float64) (string, []any, error) {
	return psql.Insert(sentimentTable).
		Columns("city", "average_sentiment").
		Values(city, value).
		Suffix("ON CONFLICT (city) DO NOTHING").
		ToSql()
}
