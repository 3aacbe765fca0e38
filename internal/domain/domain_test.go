package domain

import (
	"encoding/json"
	"testing"
)

func TestArticleText(t *testing.T) {
	t.Parallel()

	a := Article{Title: "Bridge opens", Description: "Traffic flows"}
	if got := a.Text(); got != "Bridge opens. Traffic flows" {
		t.Fatalf("unexpected text %q", got)
	}
	if got := (Article{Title: "Only title"}).Text(); got != "Only title. " {
		t.Fatalf("unexpected text %q", got)
	}
	if a.RichnessLen() != len("Bridge opens")+len("Traffic flows") {
		t.Fatalf("unexpected richness %d", a.RichnessLen())
	}

	accented := Article{Title: "Café à Montréal", Description: "Zürich"}
	if got := accented.RichnessLen(); got != 21 {
		t.Fatalf("RichnessLen must count characters, got %d", got)
	}
}

func TestArticleDay(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"2024-03-05T10:00:00Z": "2024-03-05",
		"2024-03-05":           "2024-03-05",
		"":                     "",
		"2024":                 "2024",
	}
	for in, want := range tests {
		if got := (Article{PublishedAt: in}).Day(); got != want {
			t.Fatalf("Day(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSentimentLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score float64
		want  string
	}{
		{0.5, "positive"},
		{0.1, "neutral"},
		{0, "neutral"},
		{-0.1, "neutral"},
		{-0.11, "negative"},
	}
	for _, tt := range tests {
		if got := SentimentLabel(tt.score); got != tt.want {
			t.Fatalf("SentimentLabel(%v) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestFavoritesLookup(t *testing.T) {
	t.Parallel()

	f := Favorites{
		Cities:   []string{"Lima"},
		Articles: []Article{{Title: "Port", URL: "https://news.test/port"}},
	}
	if !f.HasCity("Lima") || f.HasCity("lima") {
		t.Fatal("city lookup must be exact")
	}
	if !f.HasArticle("https://news.test/port") || f.HasArticle("https://news.test/other") {
		t.Fatal("article lookup must match by URL")
	}
}

func TestOutlierCluster(t *testing.T) {
	t.Parallel()

	if !(TopicCluster{TopicID: OutlierTopic}).IsOutlier() || (TopicCluster{TopicID: 0}).IsOutlier() {
		t.Fatal("only the reserved id marks the outlier group")
	}
}

func TestArticleUnmarshalSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "name string", raw: `{"title":"T","url":"u","source":"BBC News"}`, want: "BBC News"},
		{name: "newsapi object", raw: `{"title":"T","url":"u","source":{"id":"bbc-news","name":"BBC News"}}`, want: "BBC News"},
		{name: "object without name", raw: `{"title":"T","url":"u","source":{"id":"reuters","name":null}}`, want: "reuters"},
		{name: "null", raw: `{"title":"T","url":"u","source":null}`, want: ""},
		{name: "absent", raw: `{"title":"T","url":"u"}`, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var a Article
			if err := json.Unmarshal([]byte(tt.raw), &a); err != nil {
				t.Fatalf("Unmarshal returned error: %v", err)
			}
			if a.Source != tt.want || a.Title != "T" || a.URL != "u" {
				t.Fatalf("unexpected article %+v", a)
			}
		})
	}
}

func TestFavoritesDecodeRawNewsAPIArticles(t *testing.T) {
	t.Parallel()

	raw := `{"cities":["Montréal"],"articles":[{"source":{"id":null,"name":"Le Devoir"},"author":"X","title":"Pont fermé","description":"Travaux","url":"https://news.test/pont","urlToImage":"https://news.test/p.jpg","publishedAt":"2024-05-01T08:00:00Z","content":"..."}]}`

	var f Favorites
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if len(f.Articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(f.Articles))
	}
	a := f.Articles[0]
	if a.Source != "Le Devoir" || a.ImageURL != "https://news.test/p.jpg" || a.PublishedAt != "2024-05-01T08:00:00Z" {
		t.Fatalf("unexpected article %+v", a)
	}

	out, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	var back Article
	if err := json.Unmarshal(out, &back); err != nil || back != a {
		t.Fatalf("round trip mismatch: %+v vs %+v (%v)", back, a, err)
	}
}
