package main

import (
	"context"

	"github.com/jobbotwork/jobbot/internal/bot"
	"github.com/jobbotwork/jobbot/internal/config"
	"github.com/jobbotwork/jobbot/internal/email"
	"github.com/jobbotwork/jobbot/internal/extractor"
	"github.com/jobbotwork/jobbot/internal/payment"
	"github.com/jobbotwork/jobbot/internal/repository"
	"github.com/jobbotwork/jobbot/internal/service"
	"github.com/jobbotwork/jobbot/internal/storage"
)

// Request is the incoming API gateway request.
type Request struct {
	Body string `json:"body"`
}

// Response is the API gateway response.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

// Handler processes one Telegram webhook update per invocation.
func Handler(ctx context.Context, request Request) (*Response, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return errorResponse(err)
	}

	repo, err := repository.NewSupabaseRepository(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		return errorResponse(err)
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
		return errorResponse(err)
	}

	if err := b.HandleWebhook([]byte(request.Body)); err != nil {
		return errorResponse(err)
	}

	return &Response{
		StatusCode: 200,
		Body:       "",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func errorResponse(err error) (*Response, error) {
	return &Response{
		StatusCode: 500,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func main() {
	// Entry point for local testing
}
