package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"CityTrends/internal/config"
	"CityTrends/internal/domain"
)

func TestSummarizeBuildsPromptAndCleansResponse(t *testing.T) {
	t.Parallel()

	var prompt string
	s := newSummarizer(func(_ context.Context, p string) (string, error) {
		prompt = p
		return "```\nSummary: Council approves the new tram line.\n```", nil
	}, config.SummarizerConfig{MinLength: 30, MaxLength: 130})

	got, err := s.Summarize(context.Background(), []string{"Tram line approved.  Council", "votes yes."}, 100)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if got != "Council approves the new tram line." {
		t.Fatalf("unexpected summary %q", got)
	}
	if !strings.Contains(prompt, "between 30 and 100 words") {
		t.Fatalf("expected word bounds in prompt: %s", prompt)
	}
	if !strings.Contains(prompt, "Tram line approved. Council votes yes.") {
		t.Fatalf("expected normalised content in prompt: %s", prompt)
	}
}

func TestSummarizeWrapsFailures(t *testing.T) {
	t.Parallel()

	s := newSummarizer(func(context.Context, string) (string, error) {
		return "", errors.New("quota exceeded")
	}, config.SummarizerConfig{})

	_, err := s.Summarize(context.Background(), []string{"Anything."}, 50)
	if !errors.Is(err, domain.ErrSummarization) {
		t.Fatalf("expected ErrSummarization, got %v", err)
	}

	empty := newSummarizer(func(context.Context, string) (string, error) { return "  ", nil }, config.SummarizerConfig{})
	if _, err := empty.Summarize(context.Background(), []string{"Anything."}, 50); !errors.Is(err, domain.ErrSummarization) {
		t.Fatalf("expected ErrSummarization for blank output, got %v", err)
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	t.Parallel()

	called := false
	s := newSummarizer(func(context.Context, string) (string, error) {
		called = true
		return "x", nil
	}, config.SummarizerConfig{})

	if _, err := s.Summarize(context.Background(), nil, 50); !errors.Is(err, domain.ErrSummarization) {
		t.Fatalf("expected ErrSummarization, got %v", err)
	}
	if called {
		t.Fatal("model must not be called without content")
	}
}

func TestNewSummarizerRequiresKey(t *testing.T) {
	t.Parallel()

	_, err := NewSummarizer(context.Background(), config.GeminiConfig{}, config.SummarizerConfig{})
	if !errors.Is(err, domain.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestClip(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("Word word word. ", 1000)
	got := clip(long)
	if len([]rune(got)) > maxPromptRunes || !strings.HasSuffix(got, ".") {
		t.Fatalf("unexpected clip of length %d ending %q", len(got), got[len(got)-5:])
	}
	if clip("short") != "short" {
		t.Fatal("short content must be untouched")
	}
}
