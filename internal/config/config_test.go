package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "tg-token")
	t.Setenv("OPENAI_API_KEY", "openai-key")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test")
	t.Setenv("SUPABASE_URL", "https://project.supabase.co")
	t.Setenv("SUPABASE_KEY", "service-role-key")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "tg-token", cfg.TelegramToken)
	assert.Equal(t, "jobbot-storage", cfg.StorageBucket)
	assert.Equal(t, "jobbot.work", cfg.EmailDomain)
	assert.Equal(t, "forwardemail.net", cfg.ForwardingMX)
	assert.Equal(t, "https://jobbot.work/success", cfg.SuccessURL)
	assert.Equal(t, "https://jobbot.work/cancel", cfg.CancelURL)
}

func TestLoadConfigOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("EMAIL_DOMAIN", "example.org")
	t.Setenv("STORAGE_BUCKET", "cv-bucket")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "example.org", cfg.EmailDomain)
	assert.Equal(t, "cv-bucket", cfg.StorageBucket)
}

func TestLoadConfigMissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("TELEGRAM_TOKEN", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_TOKEN")
}
