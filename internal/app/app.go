package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"CityTrends/internal/api"
	"CityTrends/internal/config"
	"CityTrends/internal/domain"
	"CityTrends/internal/infrastructure/cities"
	"CityTrends/internal/infrastructure/extractive"
	"CityTrends/internal/infrastructure/gemini"
	"CityTrends/internal/infrastructure/llm"
	"CityTrends/internal/infrastructure/ml"
	"CityTrends/internal/infrastructure/newsapi"
	"CityTrends/internal/infrastructure/rss"
	"CityTrends/internal/infrastructure/storage"
	"CityTrends/internal/logging"
	"CityTrends/internal/metrics"
	"CityTrends/internal/ports"
	"CityTrends/internal/retry"
	"CityTrends/internal/source"
	"CityTrends/internal/textscore"
	"CityTrends/internal/topics"
	"CityTrends/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// Application wires configs to the dashboard and its HTTP surface.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	metrics   *metrics.Metrics
	dashboard *usecase.Dashboard
	closers   []func() error
}

// New builds every adapter selected by cfg. Configuration problems are
// returned wrapped in domain.ErrConfiguration.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format)
	}
	a := &Application{cfg: cfg, logger: baseLogger, metrics: metrics.New()}

	newsSource, err := newNewsSource(cfg.News, baseLogger.With("component", "source"))
	if err != nil {
		return nil, err
	}

	scorer, err := newScorer(cfg, baseLogger.With("component", "scorer"))
	if err != nil {
		return nil, err
	}

	summarizer, err := a.newSummarizer(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	sentimentCache, err := a.newSentimentCache(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	deps := usecase.Deps{
		Source:         newsSource,
		Scorer:         scorer,
		Clusterer:      topics.NewEngine(cfg.Clustering),
		Summarizer:     summarizer,
		SentimentCache: sentimentCache,
		Favorites:      storage.NewFileFavoritesStore(cfg.Cache.FavoritesPath),
		Metrics:        a.metrics,
		Logger:         baseLogger.With("component", "dashboard"),
		Options: usecase.Options{
			KeywordCount: cfg.Scoring.KeywordCount,
			MaxTopics:    cfg.Clustering.MaxTopics,
			SummaryWords: cfg.Summarizer.MaxWords,
			FlushEvery:   cfg.Cache.FlushEvery,
			SessionTTL:   cfg.Cache.SessionTTL,
		},
	}

	if dir, err := cities.LoadFile(cfg.Cities.Path, cfg.Cities.MinPopulation); err != nil {
		baseLogger.Warn("city directory unavailable", "path", cfg.Cities.Path, "error", err)
	} else {
		deps.Cities = dir
	}

	a.dashboard = usecase.NewDashboard(deps)
	return a, nil
}

func newNewsSource(cfg config.NewsConfig, logger *slog.Logger) (ports.NewsSource, error) {
	registry := source.NewRegistry()
	registry.Register(newsapi.NewClient(cfg.NewsAPI))
	registry.Register(rss.NewSource(cfg.RSS))

	provider, err := registry.Resolve(cfg.Provider)
	if err != nil {
		return nil, err
	}
	logger.Debug("news provider selected", "provider", provider.Name(), "available", registry.Names())

	return source.NewRetrying(provider, retry.Config{
		MaxAttempts: cfg.RetryAttempts,
		Delay:       cfg.RetryDelay,
		Backoff:     true,
	}, logger), nil
}

func newScorer(cfg config.Config, logger *slog.Logger) (ports.TextScorer, error) {
	switch cfg.Scoring.SentimentBackend {
	case "", "lexicon":
		return textscore.Scorer{KeywordCount: cfg.Scoring.KeywordCount}, nil
	case "ml":
		return ml.NewScorer(ml.NewClient(cfg.ML, cfg.Summarizer), textscore.Scorer{KeywordCount: cfg.Scoring.KeywordCount}, logger), nil
	default:
		return nil, fmt.Errorf("%w: unknown sentiment backend %q", domain.ErrConfiguration, cfg.Scoring.SentimentBackend)
	}
}

func (a *Application) newSummarizer(ctx context.Context, cfg config.Config) (ports.Summarizer, error) {
	switch cfg.Summarizer.Backend {
	case "", "extractive":
		return extractive.Summarizer{}, nil
	case "gemini":
		s, err := gemini.NewSummarizer(ctx, cfg.Gemini, cfg.Summarizer)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, s.Close)
		return s, nil
	case "chatgpt":
		return llm.NewChatGPTSummarizer(cfg.ChatGPT), nil
	case "ml":
		return ml.NewClient(cfg.ML, cfg.Summarizer), nil
	default:
		return nil, fmt.Errorf("%w: unknown summarizer backend %q", domain.ErrConfiguration, cfg.Summarizer.Backend)
	}
}

func (a *Application) newSentimentCache(ctx context.Context, cfg config.Config) (ports.SentimentCache, error) {
	switch cfg.Cache.Backend {
	case "", "file":
		c, err := storage.NewFileSentimentCache(cfg.Cache.SentimentPath)
		if err != nil {
			return nil, fmt.Errorf("sentiment cache: %w", err)
		}
		return c, nil
	case "postgres":
		if cfg.Database.DSN == "" {
			return nil, fmt.Errorf("%w: DATABASE_DSN is not set", domain.ErrConfiguration)
		}
		db, err := storage.OpenPostgres(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		return storage.NewPostgresSentimentCache(db), nil
	default:
		return nil, fmt.Errorf("%w: unknown cache backend %q", domain.ErrConfiguration, cfg.Cache.Backend)
	}
}

// Dashboard exposes the use case layer for the CLI.
func (a *Application) Dashboard() *usecase.Dashboard {
	return a.dashboard
}

// Handler builds the gin router serving the dashboard API.
func (a *Application) Handler() http.Handler {
	h := api.NewHandler(a.dashboard, a.metrics, a.logger.With("component", "api"))
	return api.NewRouter(h, a.cfg.HTTP.AllowedOrigins)
}

// Serve runs the HTTP API until ctx is cancelled.
func (a *Application) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.cfg.HTTP.Addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	a.logger.Info("http server stopped")
	return nil
}

// Close releases clients and database handles.
func (a *Application) Close() error {
	var errs []error
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
