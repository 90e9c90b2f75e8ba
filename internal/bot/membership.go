package bot

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/strbit/downtime/internal/lib/logger/sl"
)

// statusKicked is the chat-member status Telegram reports when a user
// blocks the bot; any other status means the bot is reachable again.
const statusKicked = "kicked"

func (b *Bot) handleMembership(ctx context.Context, m *tgbotapi.ChatMemberUpdated) {
	const op = "bot.handleMembership"

	blocked := m.NewChatMember.Status == statusKicked

	log := b.log.With(
		slog.String("op", op),
		slog.Int64("user_id", m.From.ID),
		slog.String("status", m.NewChatMember.Status),
	)

	// Swallowed on purpose: a failed block-state write must never take
	// down update processing, and there is no retry.
	if err := b.storage.SetBlocked(ctx, m.From.ID, blocked); err != nil {
		log.Error("failed to update block state", sl.Err(err))

		return
	}

	log.Info("block state updated", slog.Bool("has_blocked", blocked))
}
