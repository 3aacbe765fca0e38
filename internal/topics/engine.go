// Package topics groups short news texts into topic clusters.
//
// Vectors are TF-IDF rows over title and description, partitioned with seeded
// k-means. Labels are deterministic for a fixed corpus and seed, but changing
// the seed or the article order may relabel topics; callers should rely only on
// coverage and membership, not on specific topic ids.
package topics

import (
	"cmp"
	"math"
	"slices"

	"CityTrends/internal/config"
	"CityTrends/internal/domain"
	"CityTrends/internal/ports"
)

const (
	defaultSignatureWidth    = 5
	defaultIterations        = 50
	defaultOutlierSimilarity = 0.05
)

// Engine implements ports.TopicClusterer.
type Engine struct {
	signatureWidth    int
	seed              uint64
	iterations        int
	outlierSimilarity float64
}

var _ ports.TopicClusterer = (*Engine)(nil)

// NewEngine builds an engine, falling back to defaults for unset fields.
func NewEngine(cfg config.ClusteringConfig) *Engine {
	e := &Engine{
		signatureWidth:    cfg.SignatureWidth,
		seed:              cfg.Seed,
		iterations:        cfg.Iterations,
		outlierSimilarity: cfg.OutlierSimilarity,
	}
	if e.signatureWidth <= 0 {
		e.signatureWidth = defaultSignatureWidth
	}
	if e.iterations <= 0 {
		e.iterations = defaultIterations
	}
	if e.outlierSimilarity <= 0 {
		e.outlierSimilarity = defaultOutlierSimilarity
	}
	return e
}

// Cluster partitions articles into at most maxTopics topics plus an outlier
// group. It returns an empty slice when the corpus has no usable words.
func (e *Engine) Cluster(articles []domain.Article, maxTopics int) []domain.TopicCluster {
	if len(articles) == 0 {
		return nil
	}

	c := newCorpus(articles)
	if len(c.terms) == 0 {
		return nil
	}

	k := max(min(maxTopics, len(articles)-1), 1)
	vectors := c.tfidf()
	labels, centroids := kmeans(vectors, k, e.iterations, e.seed)

	for i, label := range labels {
		if label == unassigned {
			continue
		}
		if cosine(vectors[i], centroids[label]) < e.outlierSimilarity {
			labels[i] = unassigned
		}
	}

	clusters := group(labels)
	for i := range clusters {
		clusters[i].Signature = e.signature(c, clusters, i)
		clusters[i].Representative = Representative(articles, clusters[i].Members)
	}
	return clusters
}

// group turns raw labels into clusters with ids renumbered by lowest member.
func group(labels []int) []domain.TopicCluster {
	members := map[int][]int{}
	var order []int
	for i, label := range labels {
		if _, ok := members[label]; !ok && label != unassigned {
			order = append(order, label)
		}
		members[label] = append(members[label], i)
	}

	var clusters []domain.TopicCluster
	if outliers := members[unassigned]; len(outliers) > 0 {
		clusters = append(clusters, domain.TopicCluster{TopicID: domain.OutlierTopic, Members: outliers})
	}
	for id, label := range order {
		clusters = append(clusters, domain.TopicCluster{TopicID: id, Members: members[label]})
	}
	return clusters
}

// signature ranks the words of cluster idx by class-based TF-IDF against all clusters.
func (e *Engine) signature(c corpus, clusters []domain.TopicCluster, idx int) []domain.WeightedTerm {
	classCounts := make([]map[string]float64, len(clusters))
	classTotals := make([]float64, len(clusters))
	global := map[string]float64{}
	for ci, cl := range clusters {
		classCounts[ci] = map[string]float64{}
		for _, doc := range cl.Members {
			for _, tok := range c.tokens[doc] {
				classCounts[ci][tok]++
				classTotals[ci]++
				global[tok]++
			}
		}
	}
	if classTotals[idx] == 0 {
		return nil
	}

	var sum float64
	for _, t := range classTotals {
		sum += t
	}
	avg := sum / float64(len(clusters))

	terms := make([]domain.WeightedTerm, 0, len(classCounts[idx]))
	for term, count := range classCounts[idx] {
		tf := count / classTotals[idx]
		terms = append(terms, domain.WeightedTerm{
			Term:   term,
			Weight: tf * math.Log(1+avg/global[term]),
		})
	}

	slices.SortFunc(terms, func(a, b domain.WeightedTerm) int {
		if n := cmp.Compare(b.Weight, a.Weight); n != 0 {
			return n
		}
		return cmp.Compare(a.Term, b.Term)
	})
	if len(terms) > e.signatureWidth {
		terms = terms[:e.signatureWidth]
	}
	return terms
}

// Representative returns the member whose title plus description is longest;
// ties resolve to the lowest index. It returns -1 for no members.
func Representative(articles []domain.Article, members []int) int {
	best, bestLen := -1, -1
	for _, idx := range members {
		if idx < 0 || idx >= len(articles) {
			continue
		}
		l := articles[idx].RichnessLen()
		if l > bestLen || (l == bestLen && idx < best) {
			best, bestLen = idx, l
		}
	}
	return best
}
