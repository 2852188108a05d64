// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lead-assistant/internal/common/validation"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml over it
// and applies environment overrides.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // optional

	return finish(v)
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	// SERVER_PORT overrides server.port and so on.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

func finish(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env", // test/e2e
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders left in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal {
				v.Set(key, expanded)
			}
		}
	}
}

// Direct override if config values are still empty after expansion
func overrideEmptyConfig(cfg *Config) {
	overrides := []struct {
		target *string
		env    string
	}{
		{&cfg.LLM.APIKey, "OPENAI_API_KEY"},
		{&cfg.LLM.BaseURL, "OPENAI_BASE_URL"},
		{&cfg.Database.Postgres.User, "DB_USER"},
		{&cfg.Database.Postgres.Password, "DB_PASSWORD"},
		{&cfg.Database.Redis.Password, "REDIS_PASSWORD"},
		{&cfg.Integrations.Zoho.AuthToken, "ZOHO_CRM_OAUTH_TOKEN"},
		{&cfg.Integrations.AWS.Region, "AWS_REGION"},
	}

	for _, o := range overrides {
		if *o.target != "" {
			continue
		}
		if val := os.Getenv(o.env); val != "" {
			*o.target = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "lead-assistant"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	// Server defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 90000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}

	// LLM defaults
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4"
	}
	if cfg.LLM.ReplyTemperature == 0 {
		cfg.LLM.ReplyTemperature = 0.7
	}
	if cfg.LLM.ExtractionTemperature == 0 {
		cfg.LLM.ExtractionTemperature = 0.3
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 60000
	}

	// Conversation defaults
	if cfg.Conversation.Timeout == 0 {
		cfg.Conversation.Timeout = 90000
	}

	// Store defaults
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = StoreBackendMemory
	}
	if cfg.Store.KeyPrefix == "" {
		cfg.Store.KeyPrefix = "lead:session:"
	}
	if cfg.Store.MaxRetries == 0 {
		cfg.Store.MaxRetries = 5
	}

	// Database defaults
	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}

	// Integration defaults
	if cfg.Integrations.Zoho.BaseURL == "" {
		cfg.Integrations.Zoho.BaseURL = "https://www.zohoapis.com/crm/v3"
	}
	if cfg.Integrations.Zoho.LeadSource == "" {
		cfg.Integrations.Zoho.LeadSource = "Lead Assistant"
	}
	if cfg.Integrations.AWS.Region == "" {
		cfg.Integrations.AWS.Region = "us-east-1"
	}

	if cfg.Handoff.Timeout == 0 {
		cfg.Handoff.Timeout = 15000
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required (or set OPENAI_API_KEY)")
	}
	if cfg.Conversation.Timeout < 0 {
		return fmt.Errorf("conversation.timeout must not be negative")
	}
	if cfg.LLM.MaxRetries < 0 {
		return fmt.Errorf("llm.max_retries must not be negative")
	}

	switch cfg.Store.Backend {
	case StoreBackendMemory:
	case StoreBackendRedis:
		if cfg.Database.Redis.Address == "" {
			return fmt.Errorf("database.redis.address is required for the redis store")
		}
	default:
		return fmt.Errorf("store.backend must be %q or %q, got %q", StoreBackendMemory, StoreBackendRedis, cfg.Store.Backend)
	}

	if cfg.Handoff.Persist {
		if cfg.Database.Postgres.Host == "" {
			return fmt.Errorf("database.postgres.host is required when handoff.persist is set")
		}
		if cfg.Database.Postgres.Database == "" {
			return fmt.Errorf("database.postgres.database is required when handoff.persist is set")
		}
		if cfg.Database.Postgres.User == "" {
			return fmt.Errorf("database.postgres.user is required when handoff.persist is set")
		}
	}

	if cfg.Integrations.Zoho.Enabled && cfg.Integrations.Zoho.AuthToken == "" {
		return fmt.Errorf("integrations.zoho.oauth_token is required when zoho is enabled")
	}

	if cfg.Integrations.AWS.SES.Enabled {
		if !validation.ValidateEmail(cfg.Integrations.AWS.SES.FromEmail) {
			return fmt.Errorf("integrations.aws.ses.from_email is not a valid address")
		}
		if !validation.ValidateEmail(cfg.Handoff.AgentEmail) {
			return fmt.Errorf("handoff.agent_email is required when ses is enabled")
		}
	}
	if cfg.Integrations.AWS.SNS.Enabled && !validation.ValidatePhone(cfg.Handoff.AgentPhone) {
		return fmt.Errorf("handoff.agent_phone must be an E.164 number when sns is enabled")
	}

	return nil
}
