package rss

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"CityTrends/internal/config"
	"CityTrends/internal/domain"
	"CityTrends/internal/infrastructure/newsapi"
	"CityTrends/internal/ports"
)

// Name identifies the provider in the source registry.
const Name = "rss"

// Source reads a search feed whose URL template takes the escaped city name.
type Source struct {
	urlTemplate string
	parser      *gofeed.Parser
}

var _ ports.NewsSource = (*Source)(nil)

// NewSource builds an RSS search source.
func NewSource(cfg config.RSSConfig) *Source {
	parser := gofeed.NewParser()
	parser.UserAgent = "CityTrends/1.0"
	return &Source{urlTemplate: cfg.URLTemplate, parser: parser}
}

// Name implements source.Provider.
func (s *Source) Name() string { return Name }

// FetchArticles parses the feed for the city query.
func (s *Source) FetchArticles(ctx context.Context, city string) ([]domain.Article, error) {
	if !strings.Contains(s.urlTemplate, "%s") {
		return nil, fmt.Errorf("%w: rss url template must contain %%s", domain.ErrConfiguration)
	}

	feedURL := fmt.Sprintf(s.urlTemplate, url.QueryEscape(city))
	feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: parse feed: %v", domain.ErrUpstreamFetch, err)
	}

	articles := make([]domain.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		title := strings.TrimSpace(item.Title)
		if title == "" {
			continue
		}
		articles = append(articles, domain.Article{
			Title:       title,
			Description: newsapi.StripHTML(item.Description),
			URL:         item.Link,
			PublishedAt: published(item),
			ImageURL:    image(item),
			Source:      strings.TrimSpace(feed.Title),
		})
	}
	return articles, nil
}

func published(item *gofeed.Item) string {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC().Format(time.RFC3339)
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.UTC().Format(time.RFC3339)
	}
	return ""
}

func image(item *gofeed.Item) string {
	if item.Image != nil {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	return ""
}
