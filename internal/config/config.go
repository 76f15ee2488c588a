package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	BotToken     string  `env:"BOT_TOKEN,required"`
	AdminUserIDs []int64 `env:"ADMIN_USER_IDS,required" envSeparator:","`
	StatePath    string  `env:"STATE_PATH" envDefault:"state.json"`
	MetricsAddr  string  `env:"METRICS_ADDR" envDefault:":9090"`
	LogLevel     string  `env:"LOG_LEVEL" envDefault:"info"`

	ReportTrigger string        `env:"REPORT_TRIGGER" envDefault:"@admin"`
	APITimeout    time.Duration `env:"API_TIMEOUT" envDefault:"10s"`

	SpamWindow       time.Duration `env:"SPAM_WINDOW" envDefault:"5m"`
	SpamRepeatLimit  int           `env:"SPAM_REPEAT_LIMIT" envDefault:"3"`
	SpamMuteDuration time.Duration `env:"SPAM_MUTE_DURATION" envDefault:"10m"`

	FalseReportThreshold    int           `env:"FALSE_REPORT_THRESHOLD" envDefault:"3"`
	FalseReportMuteDuration time.Duration `env:"FALSE_REPORT_MUTE_DURATION" envDefault:"30m"`

	AcceptedReportMuteDuration time.Duration `env:"ACCEPTED_REPORT_MUTE_DURATION" envDefault:"2h"`

	EnableTelemetry bool `env:"ENABLE_TELEMETRY" envDefault:"true"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if len(cfg.AdminUserIDs) == 0 {
		return nil, fmt.Errorf("ADMIN_USER_IDS must name at least one admin")
	}
	return cfg, nil
}

// IsAdmin reports whether the user is one of the configured moderation admins.
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
