// internal/services/llm/config.go
package llm

import (
	"time"

	"lead-assistant/internal/common/config"
)

type Config struct {
	BaseURL               string
	APIKey                string
	Model                 string
	ReplyTemperature      float64
	ExtractionTemperature float64
	Timeout               time.Duration
	MaxRetries            int
}

func LoadConfig(cfg config.LLMConfig) *Config {
	return &Config{
		BaseURL:               cfg.BaseURL,
		APIKey:                cfg.APIKey,
		Model:                 cfg.Model,
		ReplyTemperature:      cfg.ReplyTemperature,
		ExtractionTemperature: cfg.ExtractionTemperature,
		Timeout:               config.GetDuration(cfg.Timeout),
		MaxRetries:            cfg.MaxRetries,
	}
}
