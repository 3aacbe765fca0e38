package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	configPathEnv        = "CITYTRENDS_CONFIG"
	newsAPIKeyEnv        = "NEWSAPI_KEY"
	newsProviderEnv      = "NEWS_PROVIDER"
	geminiAPIKeyEnv      = "GEMINI_API_KEY"
	chatGPTAPIKeyEnv     = "CHATGPT_API_KEY"
	chatGPTModelEnv      = "CHATGPT_MODEL"
	mlAPIKeyEnv          = "ML_API_KEY"
	summarizerBackendEnv = "SUMMARIZER_BACKEND"
	databaseDSNEnv       = "DATABASE_DSN"
	logLevelEnv          = "LOG_LEVEL"
	httpAddrEnv          = "HTTP_ADDR"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	HTTP       HTTPConfig       `yaml:"http"`
	News       NewsConfig       `yaml:"news"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Clustering ClusteringConfig `yaml:"clustering"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	ChatGPT    ChatGPTConfig    `yaml:"chatgpt"`
	ML         MLConfig         `yaml:"ml"`
	Cache      CacheConfig      `yaml:"cache"`
	Database   DatabaseConfig   `yaml:"database"`
	Cities     CitiesConfig     `yaml:"cities"`
}

// LoggingConfig selects the slog level and handler format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// HTTPConfig configures the dashboard API server.
type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// NewsConfig groups settings for the article source.
type NewsConfig struct {
	Provider      string        `yaml:"provider"`
	NewsAPI       NewsAPIConfig `yaml:"newsapi"`
	RSS           RSSConfig     `yaml:"rss"`
	RetryAttempts int           `yaml:"retryAttempts"`
	RetryDelay    time.Duration `yaml:"retryDelay"`
}

// NewsAPIConfig describes the newsapi.org-compatible endpoint.
type NewsAPIConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"apiKey"`
	Language string `yaml:"language"`
}

// RSSConfig holds the search feed URL; %s is replaced by the escaped city.
type RSSConfig struct {
	URLTemplate string `yaml:"urlTemplate"`
}

// ScoringConfig configures the Text Scorer.
type ScoringConfig struct {
	KeywordCount     int    `yaml:"keywordCount"`
	SentimentBackend string `yaml:"sentimentBackend"`
}

// ClusteringConfig configures the topic clustering engine.
type ClusteringConfig struct {
	MaxTopics         int     `yaml:"maxTopics"`
	SignatureWidth    int     `yaml:"signatureWidth"`
	Seed              uint64  `yaml:"seed"`
	Iterations        int     `yaml:"iterations"`
	OutlierSimilarity float64 `yaml:"outlierSimilarity"`
}

// SummarizerConfig selects the summarization backend and its length bounds.
type SummarizerConfig struct {
	Backend   string `yaml:"backend"`
	MaxWords  int    `yaml:"maxWords"`
	MinLength int    `yaml:"minLength"`
	MaxLength int    `yaml:"maxLength"`
}

// GeminiConfig defines how to contact the Gemini API.
type GeminiConfig struct {
	APIKey string `yaml:"apiKey"`
	Model  string `yaml:"model"`
}

// ChatGPTConfig defines how to contact the ChatGPT API.
type ChatGPTConfig struct {
	Endpoint     string `yaml:"endpoint"`
	Model        string `yaml:"model"`
	APIKey       string `yaml:"apiKey"`
	SystemPrompt string `yaml:"systemPrompt"`
}

// MLConfig describes neural-service integration parameters.
type MLConfig struct {
	InferenceURL string `yaml:"inferenceUrl"`
	APIKey       string `yaml:"apiKey"`
}

// CacheConfig describes the durable sentiment cache and favourites files.
type CacheConfig struct {
	Backend       string        `yaml:"backend"`
	SentimentPath string        `yaml:"sentimentPath"`
	FavoritesPath string        `yaml:"favoritesPath"`
	FlushEvery    int           `yaml:"flushEvery"`
	SessionTTL    time.Duration `yaml:"sessionTtl"`
}

// DatabaseConfig describes Postgres connection details.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// CitiesConfig points at the world cities table.
type CitiesConfig struct {
	Path          string  `yaml:"path"`
	MinPopulation float64 `yaml:"minPopulation"`
}

// Load reads .env and YAML configuration (if present) and applies environment overrides.
func Load() Config {
	_ = godotenv.Load()

	cfg := defaultConfig()
	backendChosen := os.Getenv(summarizerBackendEnv) != ""

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
				backendChosen = backendChosen || fileCfg.Summarizer.Backend != ""
			}
		}
	}

	cfg.applyEnvOverrides()

	// abstractive summaries when a Gemini key is available and no backend was picked
	if !backendChosen && cfg.Gemini.APIKey != "" {
		cfg.Summarizer.Backend = "gemini"
	}
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(newsAPIKeyEnv); v != "" {
		c.News.NewsAPI.APIKey = v
	}
	if v := os.Getenv(newsProviderEnv); v != "" {
		c.News.Provider = v
	}
	if v := os.Getenv(geminiAPIKeyEnv); v != "" {
		c.Gemini.APIKey = v
	}
	if v := os.Getenv(chatGPTAPIKeyEnv); v != "" {
		c.ChatGPT.APIKey = v
	}
	if v := os.Getenv(chatGPTModelEnv); v != "" {
		c.ChatGPT.Model = v
	}
	if v := os.Getenv(mlAPIKeyEnv); v != "" {
		c.ML.APIKey = v
	}
	if v := os.Getenv(summarizerBackendEnv); v != "" {
		c.Summarizer.Backend = v
	}
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(httpAddrEnv); v != "" {
		c.HTTP.Addr = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.HTTP.Addr != "" {
		base.HTTP.Addr = override.HTTP.Addr
	}
	if len(override.HTTP.AllowedOrigins) > 0 {
		base.HTTP.AllowedOrigins = override.HTTP.AllowedOrigins
	}

	if override.News.Provider != "" {
		base.News.Provider = override.News.Provider
	}
	if override.News.NewsAPI.Endpoint != "" {
		base.News.NewsAPI.Endpoint = override.News.NewsAPI.Endpoint
	}
	if override.News.NewsAPI.APIKey != "" {
		base.News.NewsAPI.APIKey = override.News.NewsAPI.APIKey
	}
	if override.News.NewsAPI.Language != "" {
		base.News.NewsAPI.Language = override.News.NewsAPI.Language
	}
	if override.News.RSS.URLTemplate != "" {
		base.News.RSS.URLTemplate = override.News.RSS.URLTemplate
	}
	if override.News.RetryAttempts > 0 {
		base.News.RetryAttempts = override.News.RetryAttempts
	}
	if override.News.RetryDelay > 0 {
		base.News.RetryDelay = override.News.RetryDelay
	}

	if override.Scoring.KeywordCount > 0 {
		base.Scoring.KeywordCount = override.Scoring.KeywordCount
	}
	if override.Scoring.SentimentBackend != "" {
		base.Scoring.SentimentBackend = override.Scoring.SentimentBackend
	}

	if override.Clustering.MaxTopics > 0 {
		base.Clustering.MaxTopics = override.Clustering.MaxTopics
	}
	if override.Clustering.SignatureWidth > 0 {
		base.Clustering.SignatureWidth = override.Clustering.SignatureWidth
	}
	if override.Clustering.Seed != 0 {
		base.Clustering.Seed = override.Clustering.Seed
	}
	if override.Clustering.Iterations > 0 {
		base.Clustering.Iterations = override.Clustering.Iterations
	}
	if override.Clustering.OutlierSimilarity > 0 {
		base.Clustering.OutlierSimilarity = override.Clustering.OutlierSimilarity
	}

	if override.Summarizer.Backend != "" {
		base.Summarizer.Backend = override.Summarizer.Backend
	}
	if override.Summarizer.MaxWords > 0 {
		base.Summarizer.MaxWords = override.Summarizer.MaxWords
	}
	if override.Summarizer.MinLength > 0 {
		base.Summarizer.MinLength = override.Summarizer.MinLength
	}
	if override.Summarizer.MaxLength > 0 {
		base.Summarizer.MaxLength = override.Summarizer.MaxLength
	}

	if override.Gemini.APIKey != "" {
		base.Gemini.APIKey = override.Gemini.APIKey
	}
	if override.Gemini.Model != "" {
		base.Gemini.Model = override.Gemini.Model
	}

	if override.ChatGPT.Endpoint != "" {
		base.ChatGPT.Endpoint = override.ChatGPT.Endpoint
	}
	if override.ChatGPT.Model != "" {
		base.ChatGPT.Model = override.ChatGPT.Model
	}
	if override.ChatGPT.APIKey != "" {
		base.ChatGPT.APIKey = override.ChatGPT.APIKey
	}
	if override.ChatGPT.SystemPrompt != "" {
		base.ChatGPT.SystemPrompt = override.ChatGPT.SystemPrompt
	}

	if override.ML.InferenceURL != "" {
		base.ML.InferenceURL = override.ML.InferenceURL
	}
	if override.ML.APIKey != "" {
		base.ML.APIKey = override.ML.APIKey
	}

	if override.Cache.Backend != "" {
		base.Cache.Backend = override.Cache.Backend
	}
	if override.Cache.SentimentPath != "" {
		base.Cache.SentimentPath = override.Cache.SentimentPath
	}
	if override.Cache.FavoritesPath != "" {
		base.Cache.FavoritesPath = override.Cache.FavoritesPath
	}
	if override.Cache.FlushEvery > 0 {
		base.Cache.FlushEvery = override.Cache.FlushEvery
	}
	if override.Cache.SessionTTL > 0 {
		base.Cache.SessionTTL = override.Cache.SessionTTL
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Cities.Path != "" {
		base.Cities.Path = override.Cities.Path
	}
	if override.Cities.MinPopulation > 0 {
		base.Cities.MinPopulation = override.Cities.MinPopulation
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		HTTP: HTTPConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		News: NewsConfig{
			Provider: "newsapi",
			NewsAPI: NewsAPIConfig{
				Endpoint: "https://newsapi.org",
				Language: "en",
			},
			RSS:           RSSConfig{URLTemplate: "https://news.google.com/rss/search?q=%s&hl=en"},
			RetryAttempts: 2,
			RetryDelay:    time.Second,
		},
		Scoring: ScoringConfig{KeywordCount: 5, SentimentBackend: "lexicon"},
		Clustering: ClusteringConfig{
			MaxTopics:         5,
			SignatureWidth:    5,
			Seed:              42,
			Iterations:        50,
			OutlierSimilarity: 0.05,
		},
		Summarizer: SummarizerConfig{
			Backend:   "extractive",
			MaxWords:  100,
			MinLength: 30,
			MaxLength: 130,
		},
		Gemini: GeminiConfig{Model: "gemini-1.5-flash"},
		ChatGPT: ChatGPTConfig{
			Endpoint:     "https://api.openai.com/v1/chat/completions",
			Model:        "gpt-4o-mini",
			SystemPrompt: "You summarize local news topics in plain, neutral prose.",
		},
		ML: MLConfig{InferenceURL: "http://localhost:8000"},
		Cache: CacheConfig{
			Backend:       "file",
			SentimentPath: "city_sentiments.json",
			FavoritesPath: "favorites.json",
			FlushEvery:    50,
			SessionTTL:    30 * time.Minute,
		},
		Cities: CitiesConfig{
			Path:          "data/worldcities.csv",
			MinPopulation: 100000,
		},
	}
}
