// Package trends turns per-article keywords, sentiment and dates into
// date-bucketed series for charting.
package trends

import (
	"cmp"
	"slices"
	"sort"

	"CityTrends/internal/domain"
)

// KeywordFunc extracts up to topN keywords from text.
type KeywordFunc func(text string, topN int) []string

// mentionDepth is how many keywords per article are searched for a mention.
const mentionDepth = 10

// KeywordTrends buckets per-article keywords by publication day and returns a
// zero-filled keyword_count series for each of the topN most frequent keywords,
// together with those keywords ranked by total count.
func KeywordTrends(articles []domain.Article, topN int, extract KeywordFunc) (map[string]domain.TrendSeries, []string) {
	byDate := map[string][]string{}
	var dates []string
	for _, article := range articles {
		date := article.Day()
		if _, ok := byDate[date]; !ok {
			dates = append(dates, date)
		}
		byDate[date] = append(byDate[date], extract(article.Text(), topN)...)
	}

	// ranking ties follow the order keywords appear when walking the date
	// groups in first-seen order
	totals := map[string]int{}
	var firstOrder []string
	for _, date := range dates {
		for _, kw := range byDate[date] {
			if _, seen := totals[kw]; !seen {
				firstOrder = append(firstOrder, kw)
			}
			totals[kw]++
		}
	}

	top := rankKeys(firstOrder, totals)
	if topN >= 0 && len(top) > topN {
		top = top[:topN]
	}

	sort.Strings(dates)

	series := make(map[string]domain.TrendSeries, len(top))
	for _, kw := range top {
		buckets := make([]domain.Bucket, 0, len(dates))
		for _, date := range dates {
			buckets = append(buckets, domain.Bucket{Date: date, Value: float64(countOf(byDate[date], kw))})
		}
		series[kw] = domain.TrendSeries{
			Dimension: domain.DimensionKeywordCount,
			Keyword:   kw,
			Buckets:   buckets,
		}
	}

	return series, top
}

// PublicationTimeline counts dated articles per calendar day.
func PublicationTimeline(articles []domain.Article) domain.TrendSeries {
	counts := map[string]int{}
	for _, article := range articles {
		if article.PublishedAt == "" {
			continue
		}
		counts[article.Day()]++
	}

	dates := make([]string, 0, len(counts))
	for date := range counts {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	buckets := make([]domain.Bucket, 0, len(dates))
	for _, date := range dates {
		buckets = append(buckets, domain.Bucket{Date: date, Value: float64(counts[date])})
	}
	return domain.TrendSeries{Dimension: domain.DimensionPublicationCount, Buckets: buckets}
}

// SentimentOverTime pairs each dated article with its sentiment, one point per
// article, stable-sorted ascending by date. No per-day averaging is applied.
func SentimentOverTime(scored []domain.ScoredArticle) domain.TrendSeries {
	buckets := make([]domain.Bucket, 0, len(scored))
	for _, s := range scored {
		if s.Article.PublishedAt == "" {
			continue
		}
		buckets = append(buckets, domain.Bucket{Date: s.Article.Day(), Value: s.Sentiment})
	}
	slices.SortStableFunc(buckets, func(a, b domain.Bucket) int {
		return cmp.Compare(a.Date, b.Date)
	})
	return domain.TrendSeries{Dimension: domain.DimensionSentiment, Buckets: buckets}
}

// TopKeywords counts keywords and returns the n most frequent; ties keep first occurrence.
func TopKeywords(keywords []string, n int) []domain.WeightedTerm {
	counts := map[string]int{}
	var order []string
	for _, kw := range keywords {
		if _, ok := counts[kw]; !ok {
			order = append(order, kw)
		}
		counts[kw]++
	}

	ranked := rankKeys(order, counts)
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}

	out := make([]domain.WeightedTerm, 0, len(ranked))
	for _, kw := range ranked {
		out = append(out, domain.WeightedTerm{Term: kw, Weight: float64(counts[kw])})
	}
	return out
}

// AverageSentiment returns the mean score, or 0 for no scores.
func AverageSentiment(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// ArticlesMentioning returns the articles whose leading keywords include keyword.
func ArticlesMentioning(articles []domain.Article, keyword string, extract KeywordFunc) []domain.Article {
	var out []domain.Article
	for _, article := range articles {
		if slices.Contains(extract(article.Text(), mentionDepth), keyword) {
			out = append(out, article)
		}
	}
	return out
}

func rankKeys(order []string, counts map[string]int) []string {
	ranked := slices.Clone(order)
	slices.SortStableFunc(ranked, func(a, b string) int {
		return cmp.Compare(counts[b], counts[a])
	})
	return ranked
}

func countOf(words []string, word string) int {
	n := 0
	for _, w := range words {
		if w == word {
			n++
		}
	}
	return n
}
