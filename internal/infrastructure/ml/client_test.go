package ml

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"CityTrends/internal/config"
	"CityTrends/internal/domain"
	"CityTrends/internal/logging"
)

type fixedScorer struct{ sentiment float64 }

func (fixedScorer) Keywords(string, int) []string { return []string{"local"} }
func (f fixedScorer) Sentiment(string) float64 { return f.sentiment }

func newInferenceServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/summarize", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Text      string `json:"text"`
			MinLength int    `json:"min_length"`
			MaxLength int    `json:"max_length"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if payload.MinLength != 30 || payload.MaxLength != 100 {
			t.Errorf("unexpected bounds %+v", payload)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"summary": "A " + payload.Text})
	})
	mux.HandleFunc("/sentiment", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]float64{"score": 1.7})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientSummarize(t *testing.T) {
	t.Parallel()

	srv := newInferenceServer(t)
	client := NewClient(config.MLConfig{InferenceURL: srv.URL + "/"}, config.SummarizerConfig{MinLength: 30, MaxLength: 130})

	got, err := client.Summarize(context.Background(), []string{"market", "reopens"}, 100)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	if got != "A market reopens" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestClientSummarizeFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(config.MLConfig{InferenceURL: srv.URL}, config.SummarizerConfig{})
	if _, err := client.Summarize(context.Background(), []string{"x"}, 10); !errors.Is(err, domain.ErrSummarization) {
		t.Fatalf("expected ErrSummarization, got %v", err)
	}
}

func TestScorerClampsRemoteSentiment(t *testing.T) {
	t.Parallel()

	srv := newInferenceServer(t)
	client := NewClient(config.MLConfig{InferenceURL: srv.URL, APIKey: "token"}, config.SummarizerConfig{})
	scorer := NewScorer(client, fixedScorer{sentiment: -0.3}, logging.Discard())

	if got := scorer.Sentiment("great day"); got != 1 {
		t.Fatalf("expected clamped remote score 1, got %v", got)
	}
	if kws := scorer.Keywords("anything", 3); len(kws) != 1 || kws[0] != "local" {
		t.Fatalf("expected local keywords, got %v", kws)
	}
}

func TestScorerFallsBackOnError(t *testing.T) {
	t.Parallel()

	srv := newInferenceServer(t)
	client := NewClient(config.MLConfig{InferenceURL: srv.URL}, config.SummarizerConfig{})
	scorer := NewScorer(client, fixedScorer{sentiment: -0.3}, logging.Discard())

	if got := scorer.Sentiment("great day"); got != -0.3 {
		t.Fatalf("expected fallback score -0.3, got %v", got)
	}
}
