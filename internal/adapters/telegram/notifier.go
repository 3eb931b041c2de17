package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/selivandex/briefing-bot/internal/briefing"
	"github.com/selivandex/briefing-bot/pkg/logger"
)

// Notifier announces finished briefings to a Telegram chat
type Notifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewNotifier creates a Telegram notifier
func NewNotifier(botToken string, chatID int64) (*Notifier, error) {
	if botToken == "" {
		return nil, fmt.Errorf("telegram bot token is required")
	}
	if chatID == 0 {
		return nil, fmt.Errorf("telegram chat ID is required")
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}

	bot.Debug = false

	logger.Info("telegram notifier initialized",
		zap.String("bot_username", bot.Self.UserName),
	)

	return &Notifier{
		api:    bot,
		chatID: chatID,
	}, nil
}

// BriefingReady sends a short markdown summary of the finished run
func (n *Notifier) BriefingReady(ctx context.Context, ready briefing.ReadyNotification) error {
	var b strings.Builder
	fmt.Fprintf(&b, "*Morning briefing ready* (%s)\n", ready.Date)
	fmt.Fprintf(&b, "Market tone: %s\n", ready.MarketTone)
	fmt.Fprintf(&b, "Net worth: $%.0f\n", ready.NetWorth)
	if ready.URL != "" {
		fmt.Fprintf(&b, "\n%s", ready.URL)
	}

	return n.sendMessageMarkdown(b.String())
}

func (n *Notifier) sendMessageMarkdown(text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = "Markdown"

	_, err := n.api.Send(msg)
	if err != nil {
		logger.Error("failed to send telegram message",
			zap.Int64("chat_id", n.chatID),
			zap.Error(err),
		)
		return err
	}

	return nil
}
