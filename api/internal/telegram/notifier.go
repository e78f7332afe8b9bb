package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const maxMessageLen = 3900

// Notifier пишет короткие уведомления о событиях обучения в чат.
type Notifier struct {
	Bot    *tgbotapi.BotAPI
	ChatID int64
}

func NewNotifier(token string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	bot.Debug = false
	return &Notifier{Bot: bot, ChatID: chatID}, nil
}

// NewNotifierWithEndpoint — то же, но с нестандартным API endpoint
// (формат "https://host/bot%s/%s").
func NewNotifierWithEndpoint(token, endpoint string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &Notifier{Bot: bot, ChatID: chatID}, nil
}

func (n *Notifier) Notify(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(text) > maxMessageLen {
		text = text[:maxMessageLen] + "…"
	}
	if _, err := n.Bot.Send(tgbotapi.NewMessage(n.ChatID, text)); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
