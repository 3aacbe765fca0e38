package usecase

import (
	"context"
	"fmt"
	"strings"

	"CityTrends/internal/domain"
)

// Favorites returns the saved cities and articles.
func (d *Dashboard) Favorites(ctx context.Context) (domain.Favorites, error) {
	if d.favorites == nil {
		return domain.Favorites{Cities: []string{}, Articles: []domain.Article{}}, nil
	}
	favorites, err := d.favorites.Load(ctx)
	if err != nil {
		return domain.Favorites{}, fmt.Errorf("load favorites: %w", err)
	}
	return favorites, nil
}

// AddFavoriteCity saves the city unless it is already a favourite.
func (d *Dashboard) AddFavoriteCity(ctx context.Context, city string) (domain.Favorites, bool, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return domain.Favorites{}, false, fmt.Errorf("%w: city is required", domain.ErrInvalidInput)
	}

	favorites, err := d.Favorites(ctx)
	if err != nil {
		return domain.Favorites{}, false, err
	}
	if favorites.HasCity(city) {
		return favorites, false, nil
	}

	favorites.Cities = append(favorites.Cities, city)
	if err := d.save(ctx, favorites); err != nil {
		return domain.Favorites{}, false, err
	}
	return favorites, true, nil
}

// AddFavoriteArticle saves the article unless one with the same URL is saved.
func (d *Dashboard) AddFavoriteArticle(ctx context.Context, article domain.Article) (domain.Favorites, bool, error) {
	if strings.TrimSpace(article.URL) == "" || strings.TrimSpace(article.Title) == "" {
		return domain.Favorites{}, false, fmt.Errorf("%w: article title and url are required", domain.ErrInvalidInput)
	}

	favorites, err := d.Favorites(ctx)
	if err != nil {
		return domain.Favorites{}, false, err
	}
	if favorites.HasArticle(article.URL) {
		return favorites, false, nil
	}

	favorites.Articles = append(favorites.Articles, article)
	if err := d.save(ctx, favorites); err != nil {
		return domain.Favorites{}, false, err
	}
	return favorites, true, nil
}

func (d *Dashboard) save(ctx context.Context, favorites domain.Favorites) error {
	if d.favorites == nil {
		return nil
	}
	if err := d.favorites.Save(ctx, favorites); err != nil {
		return fmt.Errorf("save favorites: %w", err)
	}
	return nil
}
