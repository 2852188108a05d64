// internal/services/handoff/config.go
package handoff

import (
	"time"

	"lead-assistant/internal/common/config"
)

type Config struct {
	Persist      bool
	CRMEnabled   bool
	LeadSource   string
	EmailEnabled bool
	FromEmail    string
	AgentEmail   string
	SMSEnabled   bool
	SMSSenderID  string
	AgentPhone   string
	MaxRetries   int
	Timeout      time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		Persist:      cfg.Handoff.Persist,
		CRMEnabled:   cfg.Integrations.Zoho.Enabled,
		LeadSource:   cfg.Integrations.Zoho.LeadSource,
		EmailEnabled: cfg.Integrations.AWS.SES.Enabled,
		FromEmail:    cfg.Integrations.AWS.SES.FromEmail,
		AgentEmail:   cfg.Handoff.AgentEmail,
		SMSEnabled:   cfg.Integrations.AWS.SNS.Enabled,
		SMSSenderID:  cfg.Integrations.AWS.SNS.DefaultSMSSenderID,
		AgentPhone:   cfg.Handoff.AgentPhone,
		MaxRetries:   3,
		Timeout:      config.GetDuration(cfg.Handoff.Timeout),
	}
}
