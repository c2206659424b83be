package encoder

import (
	"fmt"

	"personarank/config"
	"personarank/internal/port"
)

// FromConfig constructs the encoder named by the configuration. The encoder
// is loaded once per run and treated as a stateless function afterwards.
func FromConfig(cfg config.EncoderConfig) (port.Encoder, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.BaseURL != "" {
			return NewOpenAICompatibleEncoder(cfg.APIKeyEnv, cfg.Model, cfg.BaseURL, cfg.BatchSize)
		}
		return NewOpenAIEncoder(cfg.APIKeyEnv, cfg.Model, cfg.BatchSize)
	case "ollama":
		return NewOllamaEncoder(cfg.Model, cfg.BaseURL, cfg.BatchSize)
	case "fastembed":
		return NewFastEmbedEncoder(cfg.Model, "", cfg.BatchSize)
	case "mock":
		return NewMockEncoder(cfg.Dimension), nil
	default:
		return nil, fmt.Errorf("unknown encoder provider: %s", cfg.Provider)
	}
}
