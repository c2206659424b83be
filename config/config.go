package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all tool configuration for personarank.
type Config struct {
	Segment  SegmentConfig  `yaml:"segment"`
	Encoder  EncoderConfig  `yaml:"encoder"`
	Rank     RankConfig     `yaml:"rank"`
	Assemble AssembleConfig `yaml:"assemble"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SegmentConfig controls how document text is split into sections.
type SegmentConfig struct {
	MaxChars int `yaml:"max_chars"` // Maximum section body size in bytes.
	MinChars int `yaml:"min_chars"` // Sections shorter than this are merged forward or dropped.
}

// EncoderConfig holds embedding configuration.
type EncoderConfig struct {
	Provider      string `yaml:"provider"`       // "openai", "ollama", "fastembed", "mock"
	Model         string `yaml:"model"`          // e.g. "text-embedding-3-small"
	APIKeyEnv     string `yaml:"api_key_env"`    // Environment variable holding the API key
	BaseURL       string `yaml:"base_url"`       // Override endpoint (ollama/self-hosted)
	Dimension     int    `yaml:"dimension"`
	BatchSize     int    `yaml:"batch_size"`
	QueryPrefix   string `yaml:"query_prefix"`   // Asymmetric prefix for the query text
	PassagePrefix string `yaml:"passage_prefix"` // Asymmetric prefix for section bodies
}

// RankConfig holds ranking and diversity configuration.
type RankConfig struct {
	TopK           int     `yaml:"top_k"`
	MaxPerDocument int     `yaml:"max_per_document"` // Soft per-document cap among selected slots
	MinScore       float64 `yaml:"min_score"`        // Filter results below this score (0 = disabled)
}

// AssembleConfig holds output assembly configuration.
type AssembleConfig struct {
	RefinedChars int `yaml:"refined_chars"` // Refined-text excerpt size per selected section.
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Segment: SegmentConfig{
			MaxChars: 1000,
			MinChars: 30,
		},
		Encoder: EncoderConfig{
			Provider:      "openai",
			Model:         "text-embedding-3-small",
			APIKeyEnv:     "OPENAI_API_KEY",
			Dimension:     1536,
			BatchSize:     64,
			QueryPrefix:   "query: ",
			PassagePrefix: "passage: ",
		},
		Rank: RankConfig{
			TopK:           20,
			MaxPerDocument: 5,
			MinScore:       0,
		},
		Assemble: AssembleConfig{
			RefinedChars: 500,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file, falling back to defaults when
// the file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for personarank.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "personarank.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}
	return DefaultConfig(), nil
}

// WorkDir returns the per-collection working directory.
func WorkDir(dir string) string {
	return filepath.Join(dir, ".personarank")
}

// CacheDBPath returns the path to the extraction cache database.
func CacheDBPath(dir string) string {
	return filepath.Join(WorkDir(dir), "cache.db")
}

// EnsureWorkDir ensures the .personarank directory exists.
func EnsureWorkDir(dir string) error {
	return os.MkdirAll(WorkDir(dir), 0755)
}
