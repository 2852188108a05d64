// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Server       ServerConfig       `mapstructure:"server"`
	LLM          LLMConfig          `mapstructure:"llm"`
	Conversation ConversationConfig `mapstructure:"conversation"`
	Store        StoreConfig        `mapstructure:"store"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Integrations IntegrationConfig  `mapstructure:"integrations"`
	Handoff      HandoffConfig      `mapstructure:"handoff"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ReadTimeout     int `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // milliseconds
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// LLMConfig points at an OpenAI-compatible chat completions endpoint.
type LLMConfig struct {
	BaseURL               string  `mapstructure:"base_url"`
	APIKey                string  `mapstructure:"api_key"`
	Model                 string  `mapstructure:"model"`
	ReplyTemperature      float64 `mapstructure:"reply_temperature"`
	ExtractionTemperature float64 `mapstructure:"extraction_temperature"`
	Timeout               int     `mapstructure:"timeout"` // milliseconds
	MaxRetries            int     `mapstructure:"max_retries"`
}

// ConversationConfig tunes one chat turn. Empty prompts fall back to the
// built-in ones.
type ConversationConfig struct {
	Timeout              int    `mapstructure:"timeout"` // milliseconds
	ConversationPrompt   string `mapstructure:"conversation_prompt"`
	ClassificationPrompt string `mapstructure:"classification_prompt"`
}

const (
	StoreBackendMemory = "memory"
	StoreBackendRedis  = "redis"
)

type StoreConfig struct {
	Backend    string `mapstructure:"backend"`
	KeyPrefix  string `mapstructure:"key_prefix"`
	TTL        int    `mapstructure:"ttl"` // milliseconds, 0 keeps records forever
	MaxRetries int    `mapstructure:"max_retries"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// IntegrationConfig holds settings for CRM and notification services.
type IntegrationConfig struct {
	Zoho struct {
		Enabled    bool   `mapstructure:"enabled"`
		BaseURL    string `mapstructure:"base_url"`
		AuthToken  string `mapstructure:"oauth_token"`
		LeadSource string `mapstructure:"lead_source"`
	} `mapstructure:"zoho"`

	AWS struct {
		Region string `mapstructure:"region"`
		SES    struct {
			Enabled   bool   `mapstructure:"enabled"`
			FromEmail string `mapstructure:"from_email"`
		} `mapstructure:"ses"`
		SNS struct {
			Enabled            bool   `mapstructure:"enabled"`
			DefaultSMSSenderID string `mapstructure:"default_sms_sender_id"`
		} `mapstructure:"sns"`
	} `mapstructure:"aws"`
}

// HandoffConfig controls what happens when a ready lead is passed to an agent.
type HandoffConfig struct {
	Persist    bool   `mapstructure:"persist"`
	AgentEmail string `mapstructure:"agent_email"`
	AgentPhone string `mapstructure:"agent_phone"`
	Timeout    int    `mapstructure:"timeout"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
