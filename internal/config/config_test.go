package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("BOT_TOKEN", "test-token")
	t.Setenv("ADMIN_USER_IDS", "100,200")

	cfg, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, "test-token", cfg.BotToken)
	assert.Equal(t, []int64{100, 200}, cfg.AdminUserIDs)

	// Defaults.
	assert.Equal(t, "@admin", cfg.ReportTrigger)
	assert.Equal(t, 5*time.Minute, cfg.SpamWindow)
	assert.Equal(t, 3, cfg.SpamRepeatLimit)
	assert.Equal(t, 10*time.Minute, cfg.SpamMuteDuration)
	assert.Equal(t, 3, cfg.FalseReportThreshold)
	assert.Equal(t, 30*time.Minute, cfg.FalseReportMuteDuration)
	assert.Equal(t, 2*time.Hour, cfg.AcceptedReportMuteDuration)
	assert.Equal(t, "state.json", cfg.StatePath)
}

func TestLoadConfig_MissingToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "placeholder") // registers the restore
	os.Unsetenv("BOT_TOKEN")
	t.Setenv("ADMIN_USER_IDS", "100")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestConfig_IsAdmin(t *testing.T) {
	cfg := &Config{AdminUserIDs: []int64{100, 200}}
	assert.True(t, cfg.IsAdmin(100))
	assert.False(t, cfg.IsAdmin(300))
}
