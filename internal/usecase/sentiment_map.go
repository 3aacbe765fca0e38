package usecase

import (
	"context"
	"fmt"
	"time"

	"CityTrends/internal/domain"
	"CityTrends/internal/trends"
)

// mapArticlesPerCity is how many articles are scored for an uncached capital.
const mapArticlesPerCity = 10

// SentimentMap computes the average sentiment of the most populous primary capitals.
// Cached cities are reused; misses are computed, stored and flushed every FlushEvery
// iterations and once more at the end.
func (d *Dashboard) SentimentMap(ctx context.Context, maxCities int) (MapView, error) {
	defer d.observe(time.Now())

	if d.cities == nil {
		return MapView{}, fmt.Errorf("%w: no city directory configured", domain.ErrConfiguration)
	}

	view := MapView{Points: []MapPoint{}}
	capitals := d.cities.PrimaryCapitals(maxCities)

	for i, c := range capitals {
		point := MapPoint{City: c.Name, Country: c.Country, Latitude: c.Latitude, Longitude: c.Longitude}

		value, ok := d.cachedSentiment(ctx, c.Name)
		if ok {
			d.metrics.IncrementSentimentCacheHits()
			point.Sentiment = value
			point.Cached = true
			view.Points = append(view.Points, point)
			continue
		}
		d.metrics.IncrementSentimentCacheMisses()

		data, err := d.CityData(ctx, c.Name, mapArticlesPerCity)
		if err != nil {
			d.flush(ctx)
			return MapView{}, err
		}
		point.Sentiment = trends.AverageSentiment(data.Sentiments)

		if d.sentimentCache != nil {
			if err := d.sentimentCache.Put(ctx, c.Name, point.Sentiment); err != nil {
				d.logger.Warn("cache sentiment failed", "city", c.Name, "error", err)
			}
			if i%d.opts.FlushEvery == 0 {
				d.flush(ctx)
			}
		}
		view.Points = append(view.Points, point)
	}
	d.flush(ctx)

	if len(view.Points) == 0 {
		view.Message = "No data to display on the map."
	}
	return view, nil
}

func (d *Dashboard) cachedSentiment(ctx context.Context, city string) (float64, bool) {
	if d.sentimentCache == nil {
		return 0, false
	}
	value, ok, err := d.sentimentCache.Get(ctx, city)
	if err != nil {
		d.logger.Warn("read sentiment cache failed", "city", city, "error", err)
		return 0, false
	}
	return value, ok
}

func (d *Dashboard) flush(ctx context.Context) {
	if d.sentimentCache == nil {
		return
	}
	if err := d.sentimentCache.Flush(ctx); err != nil {
		d.logger.Warn("flush sentiment cache failed", "error", err)
	}
}
