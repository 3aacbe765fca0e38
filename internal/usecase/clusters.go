package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"CityTrends/internal/domain"
	"CityTrends/internal/ports"
	"CityTrends/internal/topics"
)

const (
	notEnoughArticles = "Not enough articles for clustering."
	noTopicsFound     = "No topics found."
	unavailablePrefix = "Summary unavailable: "
	topWordsCount     = 5
	samplesPerTopic   = 3
)

// Clusters groups the fetched articles of a city into topics and summarizes each.
func (d *Dashboard) Clusters(ctx context.Context, city string, n int) (ClustersView, error) {
	defer d.observe(time.Now())

	data, err := d.CityData(ctx, city, n)
	if err != nil {
		return ClustersView{}, err
	}

	view := ClustersView{City: city, Topics: []TopicView{}}
	articles := data.Articles
	if len(articles) < domain.MinClusterDocuments || d.clusterer == nil {
		d.metrics.IncrementClustering(true)
		view.Message = notEnoughArticles
		return view, nil
	}
	d.metrics.IncrementClustering(false)

	maxTopics := min(d.opts.MaxTopics, len(articles)-1)
	for _, cluster := range d.clusterer.Cluster(articles, maxTopics) {
		if cluster.IsOutlier() || len(cluster.Members) == 0 {
			continue
		}

		rep := cluster.Representative
		if rep < 0 || rep >= len(articles) {
			rep = topics.Representative(articles, cluster.Members)
		}

		samples := make([]domain.Article, 0, samplesPerTopic)
		for _, idx := range cluster.Members[:min(samplesPerTopic, len(cluster.Members))] {
			samples = append(samples, articles[idx])
		}

		summary := SummarizeTopic(ctx, d.summarizer, []domain.Article{articles[rep]}, d.opts.SummaryWords)
		d.metrics.IncrementSummaries(!strings.HasPrefix(summary, unavailablePrefix))

		view.Topics = append(view.Topics, TopicView{
			Number:   cluster.TopicID + 1,
			Title:    articles[rep].Title,
			TopWords: topWords(cluster.Signature),
			Summary:  summary,
			Size:     len(cluster.Members),
			Samples:  samples,
		})
	}

	if len(view.Topics) == 0 {
		view.Message = noTopicsFound
	}
	return view, nil
}

func topWords(signature []domain.WeightedTerm) string {
	if len(signature) == 0 {
		return "N/A"
	}
	words := make([]string, 0, topWordsCount)
	for _, term := range signature[:min(topWordsCount, len(signature))] {
		words = append(words, term.Term)
	}
	return strings.Join(words, ", ")
}

// SummarizeTopic summarizes the articles of one topic. Any failure, including a
// panicking summarizer, yields "Summary unavailable: <reason>".
func SummarizeTopic(ctx context.Context, s ports.Summarizer, articles []domain.Article, maxWords int) (summary string) {
	if s == nil {
		return unavailablePrefix + "no summarizer configured"
	}

	texts := make([]string, 0, len(articles))
	for _, article := range articles {
		texts = append(texts, article.Text())
	}
	joined := strings.Join(texts, " ")
	if strings.TrimSpace(joined) == "" {
		return unavailablePrefix + "no text to summarize"
	}

	defer func() {
		if r := recover(); r != nil {
			summary = unavailablePrefix + fmt.Sprint(r)
		}
	}()

	out, err := s.Summarize(ctx, []string{joined}, maxWords)
	if err != nil {
		return unavailablePrefix + err.Error()
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return unavailablePrefix + "empty summary"
	}
	return out
}
