package bot

import (
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/strbit/downtime/internal/downtime"
)

// SendAlert pages the on-call chat with a markdown body and a button to the
// hosting dashboard.
func (b *Bot) SendAlert(a downtime.Alert) error {
	const op = "bot.SendAlert"

	msg := tgbotapi.NewMessage(a.ChatID, a.Body)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Open dashboard", a.DashboardURL),
		),
	)

	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	b.log.Info("on-call alert sent", slog.Int64("chat_id", a.ChatID))

	return nil
}
