package rss

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"CityTrends/internal/config"
	"CityTrends/internal/domain"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>City Wire</title>
  <link>https://example.com</link>
  <description>search results</description>
  <item>
    <title>Harbour bridge reopens</title>
    <link>https://example.com/bridge</link>
    <description>&lt;b&gt;Traffic&lt;/b&gt; returns</description>
    <pubDate>Tue, 02 Jan 2024 10:00:00 GMT</pubDate>
    <enclosure url="https://example.com/bridge.jpg" type="image/jpeg" length="100"/>
  </item>
  <item>
    <title></title>
    <link>https://example.com/empty</link>
  </item>
  <item>
    <title>Undated note</title>
    <link>https://example.com/note</link>
  </item>
</channel>
</rss>`

func TestFetchArticlesParsesFeed(t *testing.T) {
	t.Parallel()

	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(feedXML))
	}))
	defer srv.Close()

	src := NewSource(config.RSSConfig{URLTemplate: srv.URL + "/rss?q=%s"})

	articles, err := src.FetchArticles(context.Background(), "Cape Town")
	if err != nil {
		t.Fatalf("FetchArticles returned error: %v", err)
	}
	if gotQuery != "Cape Town" {
		t.Fatalf("expected escaped city query, got %q", gotQuery)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	first := articles[0]
	if first.Title != "Harbour bridge reopens" || first.Description != "Traffic returns" {
		t.Fatalf("unexpected first article %+v", first)
	}
	if first.Day() != "2024-01-02" {
		t.Fatalf("unexpected publication day %q", first.Day())
	}
	if first.ImageURL != "https://example.com/bridge.jpg" || first.Source != "City Wire" {
		t.Fatalf("unexpected media fields %+v", first)
	}
	if articles[1].PublishedAt != "" {
		t.Fatalf("expected missing date, got %q", articles[1].PublishedAt)
	}
}

func TestFetchArticlesBadTemplate(t *testing.T) {
	t.Parallel()

	src := NewSource(config.RSSConfig{URLTemplate: "https://example.com/rss"})
	if _, err := src.FetchArticles(context.Background(), "Oslo"); !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestFetchArticlesUpstreamFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	src := NewSource(config.RSSConfig{URLTemplate: srv.URL + "/rss?q=%s"})
	if _, err := src.FetchArticles(context.Background(), "Oslo"); !errors.Is(err, domain.ErrUpstreamFetch) {
		t.Fatalf("expected ErrUpstreamFetch, got %v", err)
	}
}
