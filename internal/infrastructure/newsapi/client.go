package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"CityTrends/internal/config"
	"CityTrends/internal/domain"
	"CityTrends/internal/ports"
)

// Name identifies the provider in the source registry.
const Name = "newsapi"

// removedTitle marks articles withdrawn by the publisher.
const removedTitle = "[Removed]"

// Client queries the newsapi.org "everything" endpoint by city name.
type Client struct {
	endpoint string
	apiKey   string
	language string
	http     *http.Client
}

var _ ports.NewsSource = (*Client)(nil)

// NewClient builds a client from configuration.
func NewClient(cfg config.NewsAPIConfig) *Client {
	language := cfg.Language
	if language == "" {
		language = "en"
	}
	return &Client{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		apiKey:   cfg.APIKey,
		language: language,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// Name implements source.Provider.
func (c *Client) Name() string { return Name }

type response struct {
	Status       string       `json:"status"`
	Code         string       `json:"code"`
	Message      string       `json:"message"`
	TotalResults int          `json:"totalResults"`
	Articles     []apiArticle `json:"articles"`
}

type apiArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
}

// FetchArticles returns the most recent articles mentioning the city.
func (c *Client) FetchArticles(ctx context.Context, city string) ([]domain.Article, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("%w: NEWSAPI_KEY is not set", domain.ErrConfiguration)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(city), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFetch, err)
	}
	defer resp.Body.Close()

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("%w: unexpected status %s", domain.ErrUpstreamFetch, resp.Status)
		}
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrUpstreamFetch, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	if payload.Status == "error" || resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s %s: %s", domain.ErrUpstreamFetch, resp.Status, payload.Code, payload.Message)
	}

	articles := make([]domain.Article, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		title := strings.TrimSpace(a.Title)
		if title == "" || title == removedTitle {
			continue
		}
		articles = append(articles, domain.Article{
			Title:       title,
			Description: StripHTML(a.Description),
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
			ImageURL:    a.URLToImage,
			Source:      a.Source.Name,
		})
	}
	return articles, nil
}

func (c *Client) requestURL(city string) string {
	q := url.Values{}
	q.Set("q", city)
	q.Set("sortBy", "publishedAt")
	q.Set("language", c.language)
	q.Set("apiKey", c.apiKey)
	return c.endpoint + "/v2/everything?" + q.Encode()
}

// StripHTML drops markup from a snippet and collapses whitespace.
func StripHTML(fragment string) string {
	if !strings.ContainsAny(fragment, "<&") {
		return strings.Join(strings.Fields(fragment), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.Join(strings.Fields(fragment), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
