package topics

import (
	"math"

	"CityTrends/internal/domain"
	"CityTrends/internal/textscore"
)

// vector is a dense L2-normalised TF-IDF row.
type vector []float64

// corpus holds the tokenised documents and the shared vocabulary.
type corpus struct {
	tokens [][]string
	vocab  map[string]int
	terms  []string
}

func newCorpus(articles []domain.Article) corpus {
	c := corpus{
		tokens: make([][]string, len(articles)),
		vocab:  map[string]int{},
	}
	for i, article := range articles {
		toks := textscore.ContentTokens(article.Text())
		c.tokens[i] = toks
		for _, tok := range toks {
			if _, ok := c.vocab[tok]; !ok {
				c.vocab[tok] = len(c.terms)
				c.terms = append(c.terms, tok)
			}
		}
	}
	return c
}

// tfidf builds one vector per document using smoothed idf.
func (c corpus) tfidf() []vector {
	n := float64(len(c.tokens))
	df := make([]float64, len(c.terms))
	for _, toks := range c.tokens {
		seen := map[int]bool{}
		for _, tok := range toks {
			idx := c.vocab[tok]
			if !seen[idx] {
				seen[idx] = true
				df[idx]++
			}
		}
	}

	vectors := make([]vector, len(c.tokens))
	for i, toks := range c.tokens {
		v := make(vector, len(c.terms))
		for _, tok := range toks {
			v[c.vocab[tok]]++
		}
		for j := range v {
			if v[j] > 0 {
				v[j] *= math.Log((1+n)/(1+df[j])) + 1
			}
		}
		vectors[i] = normalize(v)
	}
	return vectors
}

func normalize(v vector) vector {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	if sum == 0 {
		return v
	}
	norm := math.Sqrt(sum)
	for i := range v {
		v[i] /= norm
	}
	return v
}

func isZero(v vector) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// cosine assumes both vectors are already normalised.
func cosine(a, b vector) float64 {
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot
}
