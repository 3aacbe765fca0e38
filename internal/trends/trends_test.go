package trends

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"CityTrends/internal/domain"
)

// splitKeywords treats the description as a space separated keyword list.
func splitKeywords(text string, topN int) []string {
	_, desc, _ := strings.Cut(text, ". ")
	words := strings.Fields(desc)
	if topN >= 0 && len(words) > topN {
		words = words[:topN]
	}
	return words
}

func article(date, keywords string) domain.Article {
	return domain.Article{Title: "t", Description: keywords, PublishedAt: date}
}

func TestKeywordTrendsCountsPerDay(t *testing.T) {
	t.Parallel()

	articles := []domain.Article{
		article("2024-01-01T08:00:00Z", "news"),
		article("2024-01-01T09:00:00Z", "city"),
		article("2024-01-02T10:00:00Z", "news news"),
	}

	series, top := KeywordTrends(articles, 5, splitKeywords)

	if want := []string{"news", "city"}; !reflect.DeepEqual(top, want) {
		t.Fatalf("top keywords = %v, want %v", top, want)
	}

	want := []domain.Bucket{{Date: "2024-01-01", Value: 1}, {Date: "2024-01-02", Value: 2}}
	if got := series["news"].Buckets; !reflect.DeepEqual(got, want) {
		t.Fatalf("news series = %v, want %v", got, want)
	}
	if series["news"].Dimension != domain.DimensionKeywordCount {
		t.Fatalf("unexpected dimension %q", series["news"].Dimension)
	}
}

func TestKeywordTrendsZeroFillsMissingDays(t *testing.T) {
	t.Parallel()

	articles := []domain.Article{
		article("2024-01-02", "rain"),
		article("2024-01-01", "sun"),
	}

	series, _ := KeywordTrends(articles, 5, splitKeywords)

	want := []domain.Bucket{{Date: "2024-01-01", Value: 0}, {Date: "2024-01-02", Value: 1}}
	if got := series["rain"].Buckets; !reflect.DeepEqual(got, want) {
		t.Fatalf("rain series = %v, want %v", got, want)
	}
}

func TestKeywordTrendsUndatedBucket(t *testing.T) {
	t.Parallel()

	articles := []domain.Article{
		article("", "vote"),
		article("2024-03-05", "vote"),
	}

	series, _ := KeywordTrends(articles, 5, splitKeywords)

	got := series["vote"].Buckets
	if len(got) != 2 || got[0].Date != "" || got[1].Date != "2024-03-05" {
		t.Fatalf("unexpected buckets %v", got)
	}
}

func TestKeywordTrendsTieOrderFollowsDateGroups(t *testing.T) {
	t.Parallel()

	articles := []domain.Article{
		article("2024-01-01", "alpha"),
		article("2024-01-02", "beta"),
		article("2024-01-01", "gamma"),
	}

	_, top := KeywordTrends(articles, 5, splitKeywords)

	if want := []string{"alpha", "gamma", "beta"}; !reflect.DeepEqual(top, want) {
		t.Fatalf("top keywords = %v, want %v", top, want)
	}
}

func TestKeywordTrendsLimitsTopN(t *testing.T) {
	t.Parallel()

	articles := []domain.Article{
		article("2024-01-01", "a b c"),
		article("2024-01-01", "a b"),
		article("2024-01-01", "a"),
	}

	series, top := KeywordTrends(articles, 2, splitKeywords)

	if want := []string{"a", "b"}; !reflect.DeepEqual(top, want) {
		t.Fatalf("top keywords = %v, want %v", top, want)
	}
	if len(series) != 2 {
		t.Fatalf("expected 2 series, got %d", len(series))
	}
}

func TestKeywordTrendsEmpty(t *testing.T) {
	t.Parallel()

	series, top := KeywordTrends(nil, 5, splitKeywords)
	if len(series) != 0 || len(top) != 0 {
		t.Fatalf("expected no trends, got %v %v", series, top)
	}
}

func TestPublicationTimeline(t *testing.T) {
	t.Parallel()

	articles := []domain.Article{
		article("2024-01-02T10:00:00Z", ""),
		article("2024-01-01T08:00:00Z", ""),
		article("", ""),
		article("2024-01-02T11:00:00Z", ""),
	}

	got := PublicationTimeline(articles)

	want := []domain.Bucket{{Date: "2024-01-01", Value: 1}, {Date: "2024-01-02", Value: 2}}
	if !reflect.DeepEqual(got.Buckets, want) {
		t.Fatalf("timeline = %v, want %v", got.Buckets, want)
	}
	if got.Dimension != domain.DimensionPublicationCount {
		t.Fatalf("unexpected dimension %q", got.Dimension)
	}
}

func TestSentimentOverTimeKeepsOnePointPerArticle(t *testing.T) {
	t.Parallel()

	scored := []domain.ScoredArticle{
		{Article: article("2024-01-02", ""), Sentiment: 0.5},
		{Article: article("2024-01-01", ""), Sentiment: -0.2},
		{Article: article("2024-01-02", ""), Sentiment: 0.1},
		{Article: article("", ""), Sentiment: 0.9},
	}

	got := SentimentOverTime(scored).Buckets

	want := []domain.Bucket{
		{Date: "2024-01-01", Value: -0.2},
		{Date: "2024-01-02", Value: 0.5},
		{Date: "2024-01-02", Value: 0.1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("sentiment series = %v, want %v", got, want)
	}
}

func TestTopKeywords(t *testing.T) {
	t.Parallel()

	got := TopKeywords([]string{"bus", "rail", "bus", "tram", "rail", "bus"}, 2)

	want := []domain.WeightedTerm{{Term: "bus", Weight: 3}, {Term: "rail", Weight: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TopKeywords = %v, want %v", got, want)
	}
}

func TestAverageSentiment(t *testing.T) {
	t.Parallel()

	if got := AverageSentiment(nil); got != 0 {
		t.Fatalf("empty average = %v, want 0", got)
	}
	if got := AverageSentiment([]float64{0.5, -0.1, 0.2}); math.Abs(got-0.2) > 1e-9 {
		t.Fatalf("average = %v, want 0.2", got)
	}
}

func TestArticlesMentioning(t *testing.T) {
	t.Parallel()

	articles := []domain.Article{
		article("2024-01-01", "metro strike"),
		article("2024-01-01", "festival"),
		article("2024-01-02", "strike"),
	}

	got := ArticlesMentioning(articles, "strike", splitKeywords)
	if len(got) != 2 || got[0].Description != "metro strike" || got[1].Description != "strike" {
		t.Fatalf("unexpected mentions %v", got)
	}
}
