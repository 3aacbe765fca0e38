package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"CityTrends/internal/config"
	"CityTrends/internal/domain"
	"CityTrends/internal/ports"
)

// Client talks to an external ML service for summarization and sentiment.
type Client struct {
	endpoint  string
	apiKey    string
	minLength int
	maxLength int
	http      *http.Client
}

var _ ports.Summarizer = (*Client)(nil)

// NewClient creates a reusable HTTP client.
func NewClient(cfg config.MLConfig, bounds config.SummarizerConfig) *Client {
	return &Client{
		endpoint:  strings.TrimRight(cfg.InferenceURL, "/"),
		apiKey:    cfg.APIKey,
		minLength: bounds.MinLength,
		maxLength: bounds.MaxLength,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

// Summarize requests a summary of the joined texts bounded by min_length and max_length tokens.
func (c *Client) Summarize(ctx context.Context, texts []string, maxWords int) (string, error) {
	content := strings.TrimSpace(strings.Join(texts, " "))
	if content == "" {
		return "", fmt.Errorf("%w: nothing to summarize", domain.ErrSummarization)
	}

	maxLength := c.maxLength
	if maxWords > 0 && (maxLength <= 0 || maxWords < maxLength) {
		maxLength = maxWords
	}
	minLength := c.minLength
	if minLength > maxLength {
		minLength = maxLength
	}

	payload := map[string]any{
		"text":       content,
		"min_length": minLength,
		"max_length": maxLength,
	}

	var resp struct {
		Summary string `json:"summary"`
	}
	if err := c.post(ctx, "/summarize", payload, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSummarization, err)
	}

	summary := strings.TrimSpace(resp.Summary)
	if summary == "" {
		return "", fmt.Errorf("%w: empty summary", domain.ErrSummarization)
	}
	return summary, nil
}

// Sentiment scores the text; the service answers in [-1, 1].
func (c *Client) Sentiment(ctx context.Context, text string) (float64, error) {
	var resp struct {
		Score float64 `json:"score"`
	}
	if err := c.post(ctx, "/sentiment", map[string]any{"text": text}, &resp); err != nil {
		return 0, err
	}
	return max(-1, min(1, resp.Score)), nil
}

func (c *Client) post(ctx context.Context, path string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return fmt.Errorf("unexpected status %s, close body: %v", resp.Status, closeErr)
		}
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		_ = resp.Body.Close()
		return fmt.Errorf("decode response: %w", err)
	}

	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}

	return nil
}

// Scorer uses the ML service for sentiment and a local scorer for keywords.
// A failed sentiment call falls back to the local scorer.
type Scorer struct {
	client   *Client
	fallback ports.TextScorer
	timeout  time.Duration
	logger   *slog.Logger
}

var _ ports.TextScorer = (*Scorer)(nil)

// NewScorer wraps the client around a local fallback scorer.
func NewScorer(client *Client, fallback ports.TextScorer, logger *slog.Logger) *Scorer {
	return &Scorer{client: client, fallback: fallback, timeout: 10 * time.Second, logger: logger}
}

// Keywords delegates to the fallback scorer.
func (s *Scorer) Keywords(text string, topN int) []string {
	return s.fallback.Keywords(text, topN)
}

// Sentiment asks the service and falls back locally on error.
func (s *Scorer) Sentiment(text string) float64 {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	score, err := s.client.Sentiment(ctx, text)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("remote sentiment failed, using lexicon", "error", err)
		}
		return s.fallback.Sentiment(text)
	}
	return score
}
