package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"CityTrends/internal/app"
	"CityTrends/internal/config"
	"CityTrends/internal/domain"
	"CityTrends/internal/logging"
	"CityTrends/internal/usecase"
)

func main() {
	view := flag.String("view", "serve", "serve, cities, articles, trends, clusters, compare, map, favorites, favorite-city")
	city := flag.String("city", "", "city to inspect (defaults to the directory default)")
	n := flag.Int("n", 10, "number of articles to analyse")
	keyword := flag.String("keyword", "", "custom keyword for the trends view")
	city2 := flag.String("city2", "", "second city for the compare view")
	n2 := flag.Int("n2", 10, "number of articles for the second city")
	maxCities := flag.Int("max", 50, "number of capitals on the sentiment map")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format)

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("application setup failed", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	if *view == "serve" {
		if err := application.Serve(ctx); err != nil {
			logger.Error("application stopped", "error", err)
			os.Exit(1)
		}
		return
	}

	out, err := render(ctx, application.Dashboard(), *view, *city, *n, *keyword, *city2, *n2, *maxCities)
	if err != nil {
		logger.Error("view failed", "view", *view, "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("encode output", "error", err)
		os.Exit(1)
	}
}

func render(ctx context.Context, d *usecase.Dashboard, view, city string, n int, keyword, city2 string, n2, maxCities int) (any, error) {
	if city == "" || (view == "compare" && city2 == "") {
		cities, err := d.Cities(ctx)
		if err != nil {
			return nil, err
		}
		if city == "" {
			city = cities.Default
		}
		if city2 == "" {
			city2 = cities.DefaultCompare
		}
	}

	switch view {
	case "cities":
		return d.Cities(ctx)
	case "articles":
		return d.Articles(ctx, city, n)
	case "trends":
		return d.Trends(ctx, city, n, keyword)
	case "clusters":
		return d.Clusters(ctx, city, n)
	case "compare":
		return d.Compare(ctx, city, n, city2, n2)
	case "map":
		return d.SentimentMap(ctx, maxCities)
	case "favorites":
		return d.Favorites(ctx)
	case "favorite-city":
		favorites, _, err := d.AddFavoriteCity(ctx, city)
		return favorites, err
	default:
		return nil, fmt.Errorf("%w: unknown view %q", domain.ErrInvalidInput, view)
	}
}
