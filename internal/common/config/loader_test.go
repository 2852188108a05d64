// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_DefaultsApplied(t *testing.T) {
	path := writeConfig(t, `
llm:
  api_key: test-key
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "lead-assistant", cfg.App.Name)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, ":8000", cfg.Server.Addr())
	assert.Equal(t, "gpt-4", cfg.LLM.Model)
	assert.Equal(t, 0.7, cfg.LLM.ReplyTemperature)
	assert.Equal(t, 0.3, cfg.LLM.ExtractionTemperature)
	assert.Equal(t, "https://api.openai.com/v1", cfg.LLM.BaseURL)
	assert.Equal(t, 90000, cfg.Conversation.Timeout)
	assert.Equal(t, StoreBackendMemory, cfg.Store.Backend)
	assert.Equal(t, "lead:session:", cfg.Store.KeyPrefix)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile_ExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("LEAD_TEST_KEY", "from-env")
	path := writeConfig(t, `
llm:
  api_key: ${LEAD_TEST_KEY}
  model: gpt-4o
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.LLM.APIKey)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
}

func TestLoadFromFile_OpenAIKeyFallback(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-fallback")
	path := writeConfig(t, `
server:
  port: 9090
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-fallback", cfg.LLM.APIKey)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.LLM.APIKey = "key"
		applyDefaults(cfg)
		return cfg
	}

	tests := []struct {
		name        string
		mutate      func(cfg *Config)
		expectedErr string
	}{
		{name: "defaults are valid", mutate: func(cfg *Config) {}},
		{name: "missing api key", mutate: func(cfg *Config) { cfg.LLM.APIKey = "" }, expectedErr: "llm.api_key"},
		{name: "unknown backend", mutate: func(cfg *Config) { cfg.Store.Backend = "etcd" }, expectedErr: "store.backend"},
		{name: "redis without address", mutate: func(cfg *Config) { cfg.Store.Backend = StoreBackendRedis }, expectedErr: "database.redis.address"},
		{
			name: "redis with address",
			mutate: func(cfg *Config) {
				cfg.Store.Backend = StoreBackendRedis
				cfg.Database.Redis.Address = "localhost:6379"
			},
		},
		{name: "persist without postgres", mutate: func(cfg *Config) { cfg.Handoff.Persist = true }, expectedErr: "database.postgres.host"},
		{name: "zoho without token", mutate: func(cfg *Config) { cfg.Integrations.Zoho.Enabled = true }, expectedErr: "oauth_token"},
		{
			name: "ses without agent email",
			mutate: func(cfg *Config) {
				cfg.Integrations.AWS.SES.Enabled = true
				cfg.Integrations.AWS.SES.FromEmail = "leads@example.com"
			},
			expectedErr: "handoff.agent_email",
		},
		{
			name: "sns with local phone number",
			mutate: func(cfg *Config) {
				cfg.Integrations.AWS.SNS.Enabled = true
				cfg.Handoff.AgentPhone = "3055550100"
			},
			expectedErr: "handoff.agent_phone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.expectedErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}
