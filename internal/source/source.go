package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"CityTrends/internal/domain"
	"CityTrends/internal/ports"
	"CityTrends/internal/retry"
)

// Provider is a named news backend (newsapi, rss).
type Provider interface {
	ports.NewsSource
	Name() string
}

// Registry keeps a mapping from provider names to their implementations.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: map[string]Provider{}}
}

// Register adds or replaces a provider implementation.
func (r *Registry) Register(provider Provider) {
	if r.providers == nil {
		r.providers = map[string]Provider{}
	}
	r.providers[provider.Name()] = provider
}

// Names lists registered providers in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns a provider by name or a configuration error if it is absent.
func (r *Registry) Resolve(name string) (Provider, error) {
	if provider, ok := r.providers[name]; ok {
		return provider, nil
	}
	return nil, fmt.Errorf("%w: news provider %q is not registered", domain.ErrConfiguration, name)
}

// Retrying wraps a provider with retries on upstream failures.
type Retrying struct {
	provider Provider
	cfg      retry.Config
	logger   *slog.Logger
}

var _ ports.NewsSource = (*Retrying)(nil)

// NewRetrying decorates provider; configuration errors are returned on the first attempt.
func NewRetrying(provider Provider, cfg retry.Config, logger *slog.Logger) *Retrying {
	return &Retrying{provider: provider, cfg: cfg, logger: logger}
}

// FetchArticles delegates to the wrapped provider.
func (s *Retrying) FetchArticles(ctx context.Context, city string) ([]domain.Article, error) {
	var articles []domain.Article
	attempt := 0
	err := retry.Do(ctx, s.cfg, retryable, func() error {
		attempt++
		var err error
		articles, err = s.provider.FetchArticles(ctx, city)
		if err != nil && s.logger != nil {
			s.logger.Debug("fetch attempt failed", "provider", s.provider.Name(), "city", city, "attempt", attempt, "error", err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return articles, nil
}

func retryable(err error) bool {
	return !errors.Is(err, domain.ErrConfiguration) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}
