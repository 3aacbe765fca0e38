package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"CityTrends/internal/ports"
)

// FileSentimentCache keeps city sentiment in memory and persists it as a JSON object
// keyed by city name.
type FileSentimentCache struct {
	path  string
	mu    sync.RWMutex
	items map[string]float64
	dirty bool
}

var _ ports.SentimentCache = (*FileSentimentCache)(nil)

// NewFileSentimentCache loads the existing cache file; a missing or empty file starts empty.
func NewFileSentimentCache(path string) (*FileSentimentCache, error) {
	c := &FileSentimentCache{path: path, items: make(map[string]float64)}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read sentiment cache: %w", err)
	}
	if len(data) == 0 {
		return c, nil
	}
	if err := json.Unmarshal(data, &c.items); err != nil {
		return nil, fmt.Errorf("decode sentiment cache: %w", err)
	}
	return c, nil
}

// Get returns the remembered sentiment of a city.
func (c *FileSentimentCache) Get(_ context.Context, city string) (float64, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.items[city]
	return v, ok, nil
}

// Put records a sentiment in memory; it reaches disk on the next Flush.
func (c *FileSentimentCache) Put(_ context.Context, city string, value float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[city] = value
	c.dirty = true
	return nil
}

// Flush writes the whole map to disk when it has unsaved entries.
func (c *FileSentimentCache) Flush(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dirty {
		return nil
	}
	if err := writeJSON(c.path, c.items); err != nil {
		return fmt.Errorf("flush sentiment cache: %w", err)
	}
	c.dirty = false
	return nil
}

// Len reports how many cities are cached.
func (c *FileSentimentCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// writeJSON writes indented JSON without HTML escaping through a temp file and rename.
func writeJSON(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
