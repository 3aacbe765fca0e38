package textscore

import "CityTrends/internal/ports"

// DefaultKeywordCount is the number of keywords kept per article.
const DefaultKeywordCount = 5

// Scorer is the local lexicon-backed TextScorer. KeywordCount is used when a
// caller passes a non-positive topN; zero means DefaultKeywordCount.
type Scorer struct {
	KeywordCount int
}

var _ ports.TextScorer = Scorer{}

// Keywords delegates to ExtractKeywords.
func (s Scorer) Keywords(text string, topN int) []string {
	if topN <= 0 {
		topN = s.keywordCount()
	}
	return ExtractKeywords(text, topN)
}

// Sentiment delegates to AnalyzeSentiment.
func (Scorer) Sentiment(text string) float64 {
	return AnalyzeSentiment(text)
}

func (s Scorer) keywordCount() int {
	if s.KeywordCount > 0 {
		return s.KeywordCount
	}
	return DefaultKeywordCount
}
