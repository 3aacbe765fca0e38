package gemini

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"CityTrends/internal/config"
	"CityTrends/internal/domain"
	"CityTrends/internal/ports"
)

const (
	defaultModel   = "gemini-1.5-flash"
	maxPromptRunes = 6000
)

type generateFunc func(ctx context.Context, prompt string) (string, error)

// Summarizer produces abstractive topic summaries with a Gemini model.
type Summarizer struct {
	generate  generateFunc
	minLength int
	maxLength int
	close     func() error
}

var _ ports.Summarizer = (*Summarizer)(nil)

// NewSummarizer connects to the Gemini API.
func NewSummarizer(ctx context.Context, cfg config.GeminiConfig, bounds config.SummarizerConfig) (*Summarizer, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY is not set", domain.ErrConfiguration)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	name := cfg.Model
	if name == "" {
		name = defaultModel
	}
	model := client.GenerativeModel(name)

	s := newSummarizer(func(ctx context.Context, prompt string) (string, error) {
		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return "", fmt.Errorf("generate content: %w", err)
		}
		return responseText(resp), nil
	}, bounds)
	s.close = client.Close
	return s, nil
}

func newSummarizer(generate generateFunc, bounds config.SummarizerConfig) *Summarizer {
	return &Summarizer{generate: generate, minLength: bounds.MinLength, maxLength: bounds.MaxLength}
}

// Close releases the underlying client.
func (s *Summarizer) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

// Summarize asks the model for a neutral summary of the joined texts.
func (s *Summarizer) Summarize(ctx context.Context, texts []string, maxWords int) (string, error) {
	content := clip(strings.Join(strings.Fields(strings.Join(texts, " ")), " "))
	if content == "" {
		return "", fmt.Errorf("%w: nothing to summarize", domain.ErrSummarization)
	}

	out, err := s.generate(ctx, s.prompt(content, maxWords))
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", domain.ErrSummarization, err)
	}

	out = cleanResponse(out)
	if out == "" {
		return "", fmt.Errorf("%w: no response from gemini", domain.ErrSummarization)
	}
	return out, nil
}

func (s *Summarizer) prompt(content string, maxWords int) string {
	upper := s.maxLength
	if maxWords > 0 && (upper <= 0 || maxWords < upper) {
		upper = maxWords
	}
	lower := s.minLength
	if lower <= 0 || lower > upper {
		lower = upper / 3
	}

	return fmt.Sprintf(`Summarize the following local news articles as one neutral paragraph.
Use between %d and %d words. Do not add facts that are not in the articles.
Reply with the summary only.

ARTICLES:
%s`, lower, upper, content)
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}

func clip(content string) string {
	if utf8.RuneCountInString(content) <= maxPromptRunes {
		return content
	}
	trimmed := string([]rune(content)[:maxPromptRunes])
	if idx := strings.LastIndex(trimmed, ". "); idx > maxPromptRunes/5 {
		trimmed = trimmed[:idx+1]
	}
	return trimmed
}

// cleanResponse strips markdown fences and a leading "Summary:" label.
func cleanResponse(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```text")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	if len(s) >= 8 && strings.EqualFold(s[:8], "summary:") {
		s = strings.TrimSpace(s[8:])
	}
	return s
}
