// Package bot adapts the Telegram transport: it feeds membership changes to
// storage, answers user messages while failover is active, and delivers
// on-call alerts.
package bot

import (
	"context"
	"log/slog"
	"sync/atomic"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type api interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type BlockUpdater interface {
	SetBlocked(ctx context.Context, userID int64, blocked bool) error
}

type Localizer interface {
	Resolve(lang, key string, data map[string]interface{}) (string, error)
}

type Bot struct {
	log            *slog.Logger
	api            api
	storage        BlockUpdater
	locales        Localizer
	supportContact string

	// active mirrors the controller's confirmed-DOWN state; flipped only
	// through Activate/Deactivate.
	active atomic.Bool
}

func New(log *slog.Logger, api api, storage BlockUpdater, locales Localizer, supportContact string) *Bot {
	return &Bot{
		log:            log,
		api:            api,
		storage:        storage,
		locales:        locales,
		supportContact: supportContact,
	}
}

// Start consumes the update feed until ctx is cancelled or the feed closes.
func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	u.AllowedUpdates = []string{"message", "my_chat_member"}

	updates := b.api.GetUpdatesChan(u)

	b.log.Info("listening for updates")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()

			return
		case upd, ok := <-updates:
			if !ok {
				return
			}

			b.handleUpdate(ctx, upd)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, upd tgbotapi.Update) {
	switch {
	case upd.MyChatMember != nil:
		b.handleMembership(ctx, upd.MyChatMember)
	case upd.Message != nil && upd.Message.Text != "":
		b.handleMessage(upd.Message)
	default:
		b.log.Debug("unhandled update", slog.Int("update_id", upd.UpdateID))
	}
}
