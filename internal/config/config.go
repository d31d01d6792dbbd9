package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken   string
	OpenAIKey       string
	StripeSecretKey string
	SupabaseURL     string
	SupabaseKey     string
	StorageBucket   string
	EmailDomain     string
	ForwardingMX    string
	SuccessURL      string
	CancelURL       string
}

func LoadConfig() (*Config, error) {
	// .env is optional in production, required values are checked below
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),
		SupabaseURL:     os.Getenv("SUPABASE_URL"),
		SupabaseKey:     os.Getenv("SUPABASE_KEY"),
		StorageBucket:   os.Getenv("STORAGE_BUCKET"),
		EmailDomain:     os.Getenv("EMAIL_DOMAIN"),
		ForwardingMX:    os.Getenv("FORWARDING_MX"),
		SuccessURL:      os.Getenv("CHECKOUT_SUCCESS_URL"),
		CancelURL:       os.Getenv("CHECKOUT_CANCEL_URL"),
	}

	for name, value := range map[string]string{
		"TELEGRAM_TOKEN":    cfg.TelegramToken,
		"OPENAI_API_KEY":    cfg.OpenAIKey,
		"STRIPE_SECRET_KEY": cfg.StripeSecretKey,
		"SUPABASE_URL":      cfg.SupabaseURL,
		"SUPABASE_KEY":      cfg.SupabaseKey,
	} {
		if value == "" {
			return nil, fmt.Errorf("%s is required", name)
		}
	}

	if cfg.StorageBucket == "" {
		cfg.StorageBucket = "jobbot-storage"
	}
	if cfg.EmailDomain == "" {
		cfg.EmailDomain = "jobbot.work"
	}
	if cfg.ForwardingMX == "" {
		cfg.ForwardingMX = "forwardemail.net"
	}
	if cfg.SuccessURL == "" {
		cfg.SuccessURL = "https://jobbot.work/success"
	}
	if cfg.CancelURL == "" {
		cfg.CancelURL = "https://jobbot.work/cancel"
	}

	return cfg, nil
}
