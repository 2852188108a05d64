// internal/services/conversation/config.go
package conversation

import (
	"time"

	"lead-assistant/internal/common/config"
)

type Config struct {
	ConversationPrompt   string
	ClassificationPrompt string
	// Timeout bounds a whole turn, both upstream calls and the store update.
	Timeout time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	c := &Config{
		ConversationPrompt:   DefaultConversationPrompt,
		ClassificationPrompt: DefaultClassificationPrompt,
		Timeout:              config.GetDuration(cfg.Conversation.Timeout),
	}
	if cfg.Conversation.ConversationPrompt != "" {
		c.ConversationPrompt = cfg.Conversation.ConversationPrompt
	}
	if cfg.Conversation.ClassificationPrompt != "" {
		c.ClassificationPrompt = cfg.Conversation.ClassificationPrompt
	}
	return c
}
