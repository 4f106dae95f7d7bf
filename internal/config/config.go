package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// IngestConfig points at the scraper's bookmarks export.
type IngestConfig struct {
	BookmarksPath string `yaml:"bookmarks_path"`
}

// ChunkerConfig configures how record text is split before embedding.
type ChunkerConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
}

// GeminiEmbedderConfig holds settings for the Gemini embeddings client.
type GeminiEmbedderConfig struct {
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type   string                `yaml:"type"`
	Gemini *GeminiEmbedderConfig `yaml:"gemini,omitempty"`
}

// QdrantConfig contains connection details for a Qdrant vector index.
type QdrantConfig struct {
	URL         string `yaml:"url"`
	APIKey      string `yaml:"api_key"`
	Collection  string `yaml:"collection"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// VectorIndexConfig selects and configures the vector index implementation.
type VectorIndexConfig struct {
	Type   string        `yaml:"type"`
	Qdrant *QdrantConfig `yaml:"qdrant,omitempty"`
}

// LLMConfig configures the generative model used for summaries and the
// semantic fallback.
type LLMConfig struct {
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// AgentConfig tunes the query engine's display and retrieval sizes.
type AgentConfig struct {
	WorkingSetSize int `yaml:"working_set_size"`
	DisplayLimit   int `yaml:"display_limit"`
	SentimentLimit int `yaml:"sentiment_limit"`
	RetrievalTopK  int `yaml:"retrieval_top_k"`
	SummaryTopK    int `yaml:"summary_top_k"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Ingest      IngestConfig      `yaml:"ingest"`
	Chunker     ChunkerConfig     `yaml:"chunker"`
	Embedder    EmbedderConfig    `yaml:"embedder"`
	VectorIndex VectorIndexConfig `yaml:"vector_index"`
	LLM         LLMConfig         `yaml:"llm"`
	Agent       AgentConfig       `yaml:"agent"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return cfg, nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/bookmarkchat/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "bookmarkchat", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Ingest:      IngestConfig{BookmarksPath: "bookmarks.json"},
		Chunker:     ChunkerConfig{ChunkSize: 512, ChunkOverlap: 50},
		Embedder:    EmbedderConfig{Type: "tfidf"},
		VectorIndex: VectorIndexConfig{Type: "memory"},
		LLM:         LLMConfig{APIKeyEnv: "GEMINI_API_KEY", Model: "gemini-2.5-flash", TimeoutSecs: 30},
		Agent: AgentConfig{
			WorkingSetSize: 5,
			DisplayLimit:   5,
			SentimentLimit: 3,
			RetrievalTopK:  4,
			SummaryTopK:    20,
		},
	}
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Ingest.BookmarksPath == "" {
		cfg.Ingest.BookmarksPath = "bookmarks.json"
	}
	if cfg.Chunker.ChunkSize == 0 {
		cfg.Chunker.ChunkSize = 512
	}
	if cfg.Chunker.ChunkOverlap == 0 {
		cfg.Chunker.ChunkOverlap = 50
	}
	if cfg.Embedder.Type == "gemini" && cfg.Embedder.Gemini != nil {
		if cfg.Embedder.Gemini.APIKeyEnv == "" {
			cfg.Embedder.Gemini.APIKeyEnv = "GEMINI_API_KEY"
		}
		if cfg.Embedder.Gemini.Model == "" {
			cfg.Embedder.Gemini.Model = "gemini-embedding-001"
		}
		if cfg.Embedder.Gemini.TimeoutSecs == 0 {
			cfg.Embedder.Gemini.TimeoutSecs = 30
		}
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = "GEMINI_API_KEY"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gemini-2.5-flash"
	}
	if cfg.LLM.TimeoutSecs == 0 {
		cfg.LLM.TimeoutSecs = 30
	}
	if cfg.Agent.WorkingSetSize == 0 {
		cfg.Agent.WorkingSetSize = 5
	}
	if cfg.Agent.DisplayLimit == 0 {
		cfg.Agent.DisplayLimit = 5
	}
	if cfg.Agent.SentimentLimit == 0 {
		cfg.Agent.SentimentLimit = 3
	}
	if cfg.Agent.RetrievalTopK == 0 {
		cfg.Agent.RetrievalTopK = 4
	}
	if cfg.Agent.SummaryTopK == 0 {
		cfg.Agent.SummaryTopK = 20
	}
}
