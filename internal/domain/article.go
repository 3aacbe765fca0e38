package domain

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// Article is a news item fetched from an upstream provider for one city query.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt,omitempty"`
	ImageURL    string `json:"urlToImage,omitempty"`
	Source      string `json:"source,omitempty"`
}

// UnmarshalJSON accepts source either as a name or as the NewsAPI
// {"id","name"} object kept by favourites written from raw API payloads.
func (a *Article) UnmarshalJSON(data []byte) error {
	type plain Article
	var raw struct {
		plain
		Source json.RawMessage `json:"source"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = Article(raw.plain)

	src := raw.Source
	switch {
	case len(src) == 0 || string(src) == "null":
		a.Source = ""
	case src[0] == '"':
		if err := json.Unmarshal(src, &a.Source); err != nil {
			return fmt.Errorf("decode article source: %w", err)
		}
	default:
		var obj struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(src, &obj); err != nil {
			return fmt.Errorf("decode article source: %w", err)
		}
		a.Source = obj.Name
		if a.Source == "" {
			a.Source = obj.ID
		}
	}
	return nil
}

// Text is the string fed to keyword extraction, sentiment and clustering.
func (a Article) Text() string {
	return a.Title + ". " + a.Description
}

// RichnessLen is the character length used to pick the representative article of a topic.
func (a Article) RichnessLen() int {
	return utf8.RuneCountInString(a.Title) + utf8.RuneCountInString(a.Description)
}

// Day returns the calendar-day bucket of the publication timestamp.
func (a Article) Day() string {
	if len(a.PublishedAt) < 10 {
		return a.PublishedAt
	}
	return a.PublishedAt[:10]
}

// ScoredArticle captures the per-article Text Scorer output.
type ScoredArticle struct {
	Article   Article  `json:"article"`
	Keywords  []string `json:"keywords"`
	Sentiment float64  `json:"sentiment"`
}

// Favorites is the persisted favourites document.
type Favorites struct {
	Cities   []string  `json:"cities"`
	Articles []Article `json:"articles"`
}

// HasCity reports whether the city is already a favourite.
func (f Favorites) HasCity(city string) bool {
	for _, c := range f.Cities {
		if c == city {
			return true
		}
	}
	return false
}

// HasArticle reports whether an article with the same URL is already saved.
func (f Favorites) HasArticle(url string) bool {
	for _, a := range f.Articles {
		if a.URL == url {
			return true
		}
	}
	return false
}

// City is one row of the world cities table.
type City struct {
	Name             string  `json:"name"`
	Country          string  `json:"country"`
	Latitude         float64 `json:"lat"`
	Longitude        float64 `json:"lng"`
	Population       float64 `json:"population"`
	IsPrimaryCapital bool    `json:"isPrimaryCapital"`
}

// CitySentiment is a durable sentiment cache entry.
type CitySentiment struct {
	City             string  `json:"city"`
	AverageSentiment float64 `json:"averageSentiment"`
}

// SentimentThreshold separates a positive or negative tone from a neutral one.
const SentimentThreshold = 0.1

// SentimentLabel buckets a polarity score as positive, negative or neutral.
func SentimentLabel(score float64) string {
	switch {
	case score > SentimentThreshold:
		return "positive"
	case score < -SentimentThreshold:
		return "negative"
	default:
		return "neutral"
	}
}
