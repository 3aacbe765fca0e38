package domain

// Dimension names the quantity a TrendSeries measures.
type Dimension string

const (
	DimensionPublicationCount Dimension = "publication_count"
	DimensionSentiment        Dimension = "sentiment"
	DimensionKeywordCount     Dimension = "keyword_count"
)

// Bucket is a single (date, value) point of a series.
type Bucket struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// TrendSeries is a date-ordered sequence used for time-based charting.
type TrendSeries struct {
	Dimension Dimension `json:"dimension"`
	Keyword   string    `json:"keyword,omitempty"`
	Buckets   []Bucket  `json:"buckets"`
}

// Empty reports whether the series has no points.
func (s TrendSeries) Empty() bool {
	return len(s.Buckets) == 0
}
