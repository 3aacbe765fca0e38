package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"CityTrends/internal/cache"
	"CityTrends/internal/domain"
	"CityTrends/internal/metrics"
	"CityTrends/internal/ports"
	"CityTrends/internal/textscore"
	"CityTrends/internal/trends"
)

const (
	defaultCity        = "Pretoria"
	defaultCompareCity = "New York"

	wordCloudSize       = 50
	trendKeywordCount   = 5
	defaultKeywordCount = 5
	defaultMaxTopics    = 5
	defaultSummaryWords = 100
	defaultFlushEvery   = 50
)

// Options tunes the dashboard views.
type Options struct {
	KeywordCount int
	MaxTopics    int
	SummaryWords int
	FlushEvery   int
	SessionTTL   time.Duration
}

// Deps wires all driven adapters into the dashboard.
type Deps struct {
	Source         ports.NewsSource
	Scorer         ports.TextScorer
	Clusterer      ports.TopicClusterer
	Summarizer     ports.Summarizer
	SentimentCache ports.SentimentCache
	Favorites      ports.FavoritesStore
	Cities         ports.CityDirectory
	Metrics        *metrics.Metrics
	Logger         *slog.Logger
	Options        Options
}

// Dashboard builds every render-model of the city news dashboard.
type Dashboard struct {
	source         ports.NewsSource
	scorer         ports.TextScorer
	clusterer      ports.TopicClusterer
	summarizer     ports.Summarizer
	sentimentCache ports.SentimentCache
	favorites      ports.FavoritesStore
	cities         ports.CityDirectory
	metrics        *metrics.Metrics
	logger         *slog.Logger
	opts           Options
	session        *cache.Cache[CityData]
}

// NewDashboard constructs the orchestration component.
func NewDashboard(deps Deps) *Dashboard {
	opts := deps.Options
	if opts.KeywordCount <= 0 {
		opts.KeywordCount = defaultKeywordCount
	}
	if opts.MaxTopics <= 0 {
		opts.MaxTopics = defaultMaxTopics
	}
	if opts.SummaryWords <= 0 {
		opts.SummaryWords = defaultSummaryWords
	}
	if opts.FlushEvery <= 0 {
		opts.FlushEvery = defaultFlushEvery
	}

	scorer := deps.Scorer
	if scorer == nil {
		scorer = textscore.Scorer{KeywordCount: opts.KeywordCount}
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Dashboard{
		source:         deps.Source,
		scorer:         scorer,
		clusterer:      deps.Clusterer,
		summarizer:     deps.Summarizer,
		sentimentCache: deps.SentimentCache,
		favorites:      deps.Favorites,
		cities:         deps.Cities,
		metrics:        deps.Metrics,
		logger:         logger,
		opts:           opts,
		session:        cache.New[CityData](opts.SessionTTL),
	}
}

// CityData fetches and scores the articles of a city. Upstream failures degrade to
// an empty result; configuration errors are returned.
func (d *Dashboard) CityData(ctx context.Context, city string, n int) (CityData, error) {
	key := fmt.Sprintf("%s|%d", city, n)
	if data, ok := d.session.Get(key); ok {
		d.metrics.IncrementSessionCacheHits()
		return data, nil
	}

	if d.source == nil {
		return CityData{}, fmt.Errorf("%w: no news source configured", domain.ErrConfiguration)
	}

	articles, err := d.source.FetchArticles(ctx, city)
	if err != nil {
		if errors.Is(err, domain.ErrConfiguration) {
			d.metrics.SetError(err.Error())
			return CityData{}, err
		}
		d.metrics.IncrementFetchFailures()
		d.metrics.SetError(err.Error())
		d.logger.Warn("fetch articles failed", "city", city, "error", err)
		return CityData{City: city, NoResults: true}, nil
	}
	d.metrics.AddArticlesFetched(len(articles))

	data := CityData{City: city, Articles: articles, NoResults: len(articles) == 0}

	limit := min(max(n, 0), len(articles))
	data.Scored = make([]domain.ScoredArticle, 0, limit)
	for _, article := range articles[:limit] {
		text := article.Text()
		keywords := d.scorer.Keywords(text, d.opts.KeywordCount)
		sentiment := d.scorer.Sentiment(text)

		data.Scored = append(data.Scored, domain.ScoredArticle{Article: article, Keywords: keywords, Sentiment: sentiment})
		data.Keywords = append(data.Keywords, keywords...)
		data.Sentiments = append(data.Sentiments, sentiment)
	}

	d.logger.Debug("city data ready", "city", city, "fetched", len(articles), "scored", len(data.Scored))
	d.session.Set(key, data)
	return data, nil
}

// Cities lists selectable cities with the default selections.
func (d *Dashboard) Cities(ctx context.Context) (CitiesView, error) {
	view := CitiesView{Cities: []string{}, Favorites: []string{}}
	if d.cities != nil {
		view.Cities = d.cities.Names()
	}
	view.Default = pick(view.Cities, defaultCity)
	view.DefaultCompare = pick(view.Cities, defaultCompareCity)

	if d.favorites != nil {
		favorites, err := d.favorites.Load(ctx)
		if err != nil {
			return view, fmt.Errorf("load favorites: %w", err)
		}
		view.Favorites = favorites.Cities
	}
	return view, nil
}

func pick(names []string, preferred string) string {
	for _, name := range names {
		if name == preferred {
			return name
		}
	}
	if len(names) > 0 {
		return names[0]
	}
	return preferred
}

// Articles renders the scored article list of a city.
func (d *Dashboard) Articles(ctx context.Context, city string, n int) (ArticlesView, error) {
	defer d.observe(time.Now())

	data, err := d.CityData(ctx, city, n)
	if err != nil {
		return ArticlesView{}, err
	}

	var saved domain.Favorites
	if d.favorites != nil {
		if saved, err = d.favorites.Load(ctx); err != nil {
			d.logger.Warn("load favorites failed", "error", err)
		}
	}

	view := ArticlesView{
		City:      city,
		Articles:  make([]ArticleCard, 0, len(data.Scored)),
		WordCloud: trends.TopKeywords(data.Keywords, wordCloudSize),
		NoResults: data.NoResults,
	}
	for _, s := range data.Scored {
		view.Articles = append(view.Articles, ArticleCard{
			ScoredArticle:  s,
			SentimentLabel: domain.SentimentLabel(s.Sentiment),
			Saved:          saved.HasArticle(s.Article.URL),
		})
	}
	view.AverageSentiment = trends.AverageSentiment(data.Sentiments)
	view.SentimentLabel = domain.SentimentLabel(view.AverageSentiment)
	if data.NoResults {
		view.Message = fmt.Sprintf("No articles found for %s. Try another city.", city)
	}
	return view, nil
}

// Trends renders the timeline, sentiment and keyword series of a city. A non-blank
// keyword replaces the top keyword as the selected series.
func (d *Dashboard) Trends(ctx context.Context, city string, n int, keyword string) (TrendsView, error) {
	defer d.observe(time.Now())

	data, err := d.CityData(ctx, city, n)
	if err != nil {
		return TrendsView{}, err
	}

	scoredArticles := make([]domain.Article, 0, len(data.Scored))
	for _, s := range data.Scored {
		scoredArticles = append(scoredArticles, s.Article)
	}

	view := TrendsView{
		City:      city,
		Timeline:  trends.PublicationTimeline(scoredArticles),
		Sentiment: trends.SentimentOverTime(data.Scored),
		Mentions:  []domain.Article{},
	}

	series, top := trends.KeywordTrends(data.Articles, trendKeywordCount, d.scorer.Keywords)
	view.TopKeywords = top
	if len(top) == 0 {
		view.TopKeywords = []string{}
		view.Message = "Not enough data for keyword trends."
		return view, nil
	}

	view.Keyword = top[0]
	if custom := strings.TrimSpace(keyword); custom != "" {
		view.Keyword = custom
	}

	if s, ok := series[view.Keyword]; ok {
		view.Series = &s
	} else {
		view.Message = fmt.Sprintf("No trend data for '%s'.", view.Keyword)
	}

	if mentions := trends.ArticlesMentioning(data.Articles, view.Keyword, d.scorer.Keywords); len(mentions) > 0 {
		view.Mentions = mentions
	} else {
		view.MentionsMessage = fmt.Sprintf("No articles found mentioning '%s'.", view.Keyword)
	}
	return view, nil
}

// Compare renders two cities side by side.
func (d *Dashboard) Compare(ctx context.Context, cityA string, nA int, cityB string, nB int) (CompareView, error) {
	defer d.observe(time.Now())

	a, err := d.summary(ctx, cityA, nA)
	if err != nil {
		return CompareView{}, err
	}
	b, err := d.summary(ctx, cityB, nB)
	if err != nil {
		return CompareView{}, err
	}
	return CompareView{A: a, B: b}, nil
}

func (d *Dashboard) summary(ctx context.Context, city string, n int) (CitySummary, error) {
	data, err := d.CityData(ctx, city, n)
	if err != nil {
		return CitySummary{}, err
	}
	sentiments := data.Sentiments
	if sentiments == nil {
		sentiments = []float64{}
	}
	return CitySummary{
		City:             city,
		ArticleCount:     len(data.Articles),
		WordCloud:        trends.TopKeywords(data.Keywords, wordCloudSize),
		Sentiments:       sentiments,
		AverageSentiment: trends.AverageSentiment(sentiments),
		NoResults:        data.NoResults,
	}, nil
}

func (d *Dashboard) observe(start time.Time) {
	d.metrics.RecordViewTime(time.Since(start))
}
