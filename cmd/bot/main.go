package main

import (
	"context"
	"log"

	"github.com/jobbotwork/jobbot/internal/bot"
	"github.com/jobbotwork/jobbot/internal/config"
	"github.com/jobbotwork/jobbot/internal/email"
	"github.com/jobbotwork/jobbot/internal/extractor"
	"github.com/jobbotwork/jobbot/internal/model"
	"github.com/jobbotwork/jobbot/internal/payment"
	"github.com/jobbotwork/jobbot/internal/repository"
	"github.com/jobbotwork/jobbot/internal/service"
	"github.com/jobbotwork/jobbot/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	repo, err := repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		log.Fatal(err)
	}
	if err := repo.SeedPackages(context.Background(), model.Catalog()); err != nil {
		log.Printf("failed to seed package catalog: %v", err)
	}

	assistant := service.NewJobAssistant(service.Deps{
		Repo:        repo,
		Extractor:   extractor.NewGPTExtractor(cfg.OpenAIKey),
		Storage:     storage.NewStorage(cfg.SupabaseURL, cfg.SupabaseKey, cfg.StorageBucket),
		Gateway:     payment.NewGateway(cfg.StripeSecretKey, cfg.SuccessURL, cfg.CancelURL),
		Verifier:    email.NewVerifier(cfg.EmailDomain, cfg.ForwardingMX),
		EmailDomain: cfg.EmailDomain,
	})

	b, err := bot.NewBot(cfg.TelegramToken, assistant)
	if err != nil {
		log.Fatal(err)
	}

	if err := b.Start(); err != nil {
		log.Fatal(err)
	}
}
