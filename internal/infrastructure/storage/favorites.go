package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"CityTrends/internal/domain"
	"CityTrends/internal/ports"
)

// FileFavoritesStore persists the favourites document as pretty-printed JSON.
type FileFavoritesStore struct {
	path string
	mu   sync.Mutex
}

var _ ports.FavoritesStore = (*FileFavoritesStore)(nil)

// NewFileFavoritesStore wires the store to a JSON file path.
func NewFileFavoritesStore(path string) *FileFavoritesStore {
	return &FileFavoritesStore{path: path}
}

// Load reads the document; a missing file yields empty favourites.
func (s *FileFavoritesStore) Load(_ context.Context) (domain.Favorites, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	favorites := domain.Favorites{Cities: []string{}, Articles: []domain.Article{}}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return favorites, nil
	}
	if err != nil {
		return favorites, fmt.Errorf("read favorites: %w", err)
	}
	if len(data) == 0 {
		return favorites, nil
	}
	if err := json.Unmarshal(data, &favorites); err != nil {
		return domain.Favorites{}, fmt.Errorf("decode favorites: %w", err)
	}
	if favorites.Cities == nil {
		favorites.Cities = []string{}
	}
	if favorites.Articles == nil {
		favorites.Articles = []domain.Article{}
	}
	return favorites, nil
}

// Save overwrites the document.
func (s *FileFavoritesStore) Save(_ context.Context, favorites domain.Favorites) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeJSON(s.path, favorites); err != nil {
		return fmt.Errorf("save favorites: %w", err)
	}
	return nil
}
