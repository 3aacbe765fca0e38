package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"CityTrends/internal/config"
	"CityTrends/internal/domain"
	"CityTrends/internal/ports"
)

// ChatGPTSummarizer implements ports.Summarizer backed by OpenAI-compatible chat completion APIs.
type ChatGPTSummarizer struct {
	endpoint     string
	model        string
	apiKey       string
	systemPrompt string
	httpClient   *http.Client
}

var _ ports.Summarizer = (*ChatGPTSummarizer)(nil)

// NewChatGPTSummarizer builds a client from configuration.
func NewChatGPTSummarizer(cfg config.ChatGPTConfig) *ChatGPTSummarizer {
	return &ChatGPTSummarizer{
		endpoint:     cfg.Endpoint,
		model:        cfg.Model,
		apiKey:       cfg.APIKey,
		systemPrompt: cfg.SystemPrompt,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Summarize posts the joined texts as a user message and returns the first choice.
func (c *ChatGPTSummarizer) Summarize(ctx context.Context, texts []string, maxWords int) (string, error) {
	if c == nil {
		return "", fmt.Errorf("%w: chatgpt client is nil", domain.ErrSummarization)
	}
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return "", fmt.Errorf("%w: chatgpt client misconfigured", domain.ErrConfiguration)
	}

	content := strings.TrimSpace(strings.Join(texts, " "))
	if content == "" {
		return "", fmt.Errorf("%w: nothing to summarize", domain.ErrSummarization)
	}

	body, err := json.Marshal(map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": safePrompt(c.systemPrompt, maxWords)},
			{"role": "user", "content": content},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal chatgpt payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: send request: %v", domain.ErrSummarization, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("%w: chatgpt error %s: %s", domain.ErrSummarization, resp.Status, strings.TrimSpace(string(payload)))
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", domain.ErrSummarization, err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("%w: chatgpt returned no choices", domain.ErrSummarization)
	}

	summary := strings.TrimSpace(decoded.Choices[0].Message.Content)
	if summary == "" {
		return "", fmt.Errorf("%w: chatgpt returned an empty message", domain.ErrSummarization)
	}
	return summary, nil
}

func safePrompt(prompt string, maxWords int) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		prompt = "You summarize local news articles into one short neutral paragraph."
	}
	if maxWords > 0 {
		prompt += fmt.Sprintf(" Use at most %d words.", maxWords)
	}
	return prompt
}
