package bot

import (
	"encoding/json"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/jobbotwork/jobbot/internal/charts"
	"github.com/jobbotwork/jobbot/internal/service"
	"github.com/jobbotwork/jobbot/internal/session"
)

type Bot struct {
	api      *tgbotapi.BotAPI
	service  *service.JobAssistant
	sessions *session.Manager
	charts   *charts.ChartGenerator
}

func NewBot(token string, assistant *service.JobAssistant) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:      api,
		service:  assistant,
		sessions: session.NewManager(),
		charts:   charts.NewChartGenerator(),
	}, nil
}

// Start runs the bot in long-polling mode. Each update is handled on its
// own goroutine so one user's slow collaborator call cannot block other
// conversations; ordering within one conversation is kept by the session
// lock.
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		go b.handleUpdate(update)
	}

	return nil
}

// HandleWebhook is the entry point for incoming webhook updates.
func (b *Bot) HandleWebhook(body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return err
	}

	b.handleUpdate(update)
	return nil
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("failed to send message to chat %d: %v", chatID, err)
	}
}

func (b *Bot) sendWithMarkup(chatID int64, text string, markup tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("failed to send message to chat %d: %v", chatID, err)
	}
}
