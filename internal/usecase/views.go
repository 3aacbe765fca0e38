package usecase

import "CityTrends/internal/domain"

// CityData is the scored article set fetched for one city and article count.
// Articles holds everything the source returned; Scored covers the first n.
type CityData struct {
	City       string
	Articles   []domain.Article
	Scored     []domain.ScoredArticle
	Keywords   []string
	Sentiments []float64
	NoResults  bool
}

// ArticleCard is one rendered article with its scores.
type ArticleCard struct {
	domain.ScoredArticle
	SentimentLabel string `json:"sentimentLabel"`
	Saved          bool   `json:"saved"`
}

// ArticlesView lists the analysed articles of a city.
type ArticlesView struct {
	City             string                `json:"city"`
	Articles         []ArticleCard         `json:"articles"`
	WordCloud        []domain.WeightedTerm `json:"wordCloud"`
	AverageSentiment float64               `json:"averageSentiment"`
	SentimentLabel   string                `json:"sentimentLabel"`
	NoResults        bool                  `json:"noResults"`
	Message          string                `json:"message,omitempty"`
}

// TrendsView carries the chart series of a city.
type TrendsView struct {
	City            string              `json:"city"`
	Timeline        domain.TrendSeries  `json:"timeline"`
	Sentiment       domain.TrendSeries  `json:"sentiment"`
	TopKeywords     []string            `json:"topKeywords"`
	Keyword         string              `json:"keyword,omitempty"`
	Series          *domain.TrendSeries `json:"series,omitempty"`
	Message         string              `json:"message,omitempty"`
	Mentions        []domain.Article    `json:"mentions"`
	MentionsMessage string              `json:"mentionsMessage,omitempty"`
}

// TopicView is one displayed topic cluster.
type TopicView struct {
	Number   int              `json:"number"`
	Title    string           `json:"title"`
	TopWords string           `json:"topWords"`
	Summary  string           `json:"summary"`
	Size     int              `json:"size"`
	Samples  []domain.Article `json:"samples"`
}

// ClustersView lists the topics of a city.
type ClustersView struct {
	City    string      `json:"city"`
	Topics  []TopicView `json:"topics"`
	Message string      `json:"message,omitempty"`
}

// CitySummary is one side of a city comparison.
type CitySummary struct {
	City             string                `json:"city"`
	ArticleCount     int                   `json:"articleCount"`
	WordCloud        []domain.WeightedTerm `json:"wordCloud"`
	Sentiments       []float64             `json:"sentiments"`
	AverageSentiment float64               `json:"averageSentiment"`
	NoResults        bool                  `json:"noResults"`
}

// CompareView puts two cities side by side.
type CompareView struct {
	A CitySummary `json:"a"`
	B CitySummary `json:"b"`
}

// MapPoint is one capital on the sentiment map.
type MapPoint struct {
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Sentiment float64 `json:"sentiment"`
	Cached    bool    `json:"cached"`
}

// MapView is the sentiment map of primary capitals.
type MapView struct {
	Points  []MapPoint `json:"points"`
	Message string     `json:"message,omitempty"`
}

// CitiesView lists selectable cities and the default selections.
type CitiesView struct {
	Cities         []string `json:"cities"`
	Default        string   `json:"default"`
	DefaultCompare string   `json:"defaultCompare"`
	Favorites      []string `json:"favorites"`
}
