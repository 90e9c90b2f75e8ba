package bot

import (
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/strbit/downtime/internal/lib/logger/sl"
	"github.com/strbit/downtime/internal/locale"
)

// Activate switches the bot into failover mode: every incoming text message
// gets the downtime notice instead of a primary-handler response.
func (b *Bot) Activate() {
	b.active.Store(true)
}

// Deactivate hands traffic back to the primary handler.
func (b *Bot) Deactivate() {
	b.active.Store(false)
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	if !b.active.Load() {
		// Primary is assumed live, it answers.
		return
	}

	const op = "bot.handleMessage"

	log := b.log.With(
		slog.String("op", op),
		slog.Int64("chat_id", msg.Chat.ID),
	)

	var lang string
	if msg.From != nil {
		lang = msg.From.LanguageCode
	}

	text, err := b.locales.Resolve(lang, locale.KeyDowntimeNotice, map[string]interface{}{
		"SupportContact": b.supportContact,
	})
	if err != nil {
		log.Error("failed to resolve downtime notice", sl.Err(err))

		return
	}

	if _, err := b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, text)); err != nil {
		log.Error("failed to send downtime notice", sl.Err(err))
	}
}
