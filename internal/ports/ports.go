package ports

import (
	"context"

	"CityTrends/internal/domain"
)

// NewsSource pulls articles matching a city query from an upstream provider.
type NewsSource interface {
	FetchArticles(ctx context.Context, city string) ([]domain.Article, error)
}

// TextScorer maps raw article text to keywords and a sentiment score.
type TextScorer interface {
	Keywords(text string, topN int) []string
	Sentiment(text string) float64
}

// Summarizer condenses texts into a short natural-language summary.
type Summarizer interface {
	Summarize(ctx context.Context, texts []string, maxWords int) (string, error)
}

// TopicClusterer groups articles into topic clusters.
type TopicClusterer interface {
	Cluster(articles []domain.Article, maxTopics int) []domain.TopicCluster
}

// SentimentCache persists the aggregate sentiment per city name.
type SentimentCache interface {
	Get(ctx context.Context, city string) (float64, bool, error)
	Put(ctx context.Context, city string, value float64) error
	Flush(ctx context.Context) error
}

// FavoritesStore loads and saves the favourites document.
type FavoritesStore interface {
	Load(ctx context.Context) (domain.Favorites, error)
	Save(ctx context.Context, favorites domain.Favorites) error
}

// CityDirectory exposes the filtered world cities table.
type CityDirectory interface {
	Names() []string
	PrimaryCapitals(limit int) []domain.City
}
