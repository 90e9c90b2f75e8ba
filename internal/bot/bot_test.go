package bot

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strbit/downtime/internal/downtime"
	"github.com/strbit/downtime/internal/locale"
	"github.com/strbit/downtime/internal/storage/mongodb"
)

type fakeAPI struct {
	mu      sync.Mutex
	sent    []tgbotapi.Chattable
	sendErr error
	updates chan tgbotapi.Update
	stopped bool
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.sendErr != nil {
		return tgbotapi.Message{}, f.sendErr
	}

	f.sent = append(f.sent, c)

	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) GetUpdatesChan(cfg tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeAPI) StopReceivingUpdates() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.stopped = true
}

func (f *fakeAPI) sentMessages(t *testing.T) []tgbotapi.MessageConfig {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()

	msgs := make([]tgbotapi.MessageConfig, 0, len(f.sent))
	for _, c := range f.sent {
		mc, ok := c.(tgbotapi.MessageConfig)
		require.True(t, ok, "only plain messages expected")
		msgs = append(msgs, mc)
	}

	return msgs
}

type blockCall struct {
	userID  int64
	blocked bool
}

type fakeStorage struct {
	mu    sync.Mutex
	calls []blockCall
	err   error
}

func (f *fakeStorage) SetBlocked(_ context.Context, userID int64, blocked bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}

	f.calls = append(f.calls, blockCall{userID: userID, blocked: blocked})

	return nil
}

func newTestBot(t *testing.T) (*Bot, *fakeAPI, *fakeStorage) {
	t.Helper()

	locales, err := locale.New()
	require.NoError(t, err)

	api := &fakeAPI{updates: make(chan tgbotapi.Update)}
	storage := &fakeStorage{}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(log, api, storage, locales, "@support"), api, storage
}

func textMessage(lang string) *tgbotapi.Message {
	return &tgbotapi.Message{
		Text: "hello",
		Chat: &tgbotapi.Chat{ID: 42},
		From: &tgbotapi.User{ID: 42, LanguageCode: lang},
	}
}

func TestMembership_Kicked(t *testing.T) {
	b, _, storage := newTestBot(t)

	b.handleMembership(context.Background(), &tgbotapi.ChatMemberUpdated{
		From:          tgbotapi.User{ID: 42},
		NewChatMember: tgbotapi.ChatMember{Status: "kicked"},
	})

	require.Len(t, storage.calls, 1)
	assert.EqualValues(t, 42, storage.calls[0].userID)
	assert.True(t, storage.calls[0].blocked)
}

func TestMembership_Rejoined(t *testing.T) {
	b, _, storage := newTestBot(t)

	b.handleMembership(context.Background(), &tgbotapi.ChatMemberUpdated{
		From:          tgbotapi.User{ID: 42},
		NewChatMember: tgbotapi.ChatMember{Status: "member"},
	})

	require.Len(t, storage.calls, 1)
	assert.False(t, storage.calls[0].blocked)
}

func TestMembership_StorageFailureIsSwallowed(t *testing.T) {
	b, _, storage := newTestBot(t)
	storage.err = mongodb.ErrUserNotFound

	assert.NotPanics(t, func() {
		b.handleMembership(context.Background(), &tgbotapi.ChatMemberUpdated{
			From:          tgbotapi.User{ID: 7},
			NewChatMember: tgbotapi.ChatMember{Status: "kicked"},
		})
	})
}

func TestNotice_InactiveStaysSilent(t *testing.T) {
	b, api, _ := newTestBot(t)

	b.handleMessage(textMessage("en"))

	assert.Empty(t, api.sentMessages(t), "primary is live, the sidecar must not answer")
}

func TestNotice_ActiveRepliesInSenderLocale(t *testing.T) {
	b, api, _ := newTestBot(t)

	b.Activate()
	b.handleMessage(textMessage("ru"))

	msgs := api.sentMessages(t)
	require.Len(t, msgs, 1)
	assert.EqualValues(t, 42, msgs[0].ChatID)
	assert.Contains(t, msgs[0].Text, "Бот временно недоступен")
	assert.Contains(t, msgs[0].Text, "@support")
}

func TestNotice_UnknownLocaleFallsBackToEnglish(t *testing.T) {
	b, api, _ := newTestBot(t)

	b.Activate()
	b.handleMessage(textMessage("de"))
	b.handleMessage(textMessage(""))

	msgs := api.sentMessages(t)
	require.Len(t, msgs, 2)
	for _, m := range msgs {
		assert.Contains(t, m.Text, "temporarily unavailable")
	}
}

func TestNotice_DeactivateStopsReplies(t *testing.T) {
	b, api, _ := newTestBot(t)

	b.Activate()
	b.Deactivate()
	b.handleMessage(textMessage("en"))

	assert.Empty(t, api.sentMessages(t))
}

func TestNotice_SendFailureIsSwallowed(t *testing.T) {
	b, api, _ := newTestBot(t)
	api.sendErr = errors.New("telegram unreachable")

	b.Activate()

	assert.NotPanics(t, func() {
		b.handleMessage(textMessage("en"))
	})
}

func TestSendAlert(t *testing.T) {
	b, api, _ := newTestBot(t)

	err := b.SendAlert(downtime.Alert{
		ChatID:       100500,
		DashboardURL: "https://railway.com/project/test",
		Body:         "*Bot is down*",
	})
	require.NoError(t, err)

	msgs := api.sentMessages(t)
	require.Len(t, msgs, 1)

	msg := msgs[0]
	assert.EqualValues(t, 100500, msg.ChatID)
	assert.Equal(t, tgbotapi.ModeMarkdown, msg.ParseMode)
	assert.Equal(t, "*Bot is down*", msg.Text)

	markup, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok, "alert carries an inline keyboard")
	require.Len(t, markup.InlineKeyboard, 1)
	require.Len(t, markup.InlineKeyboard[0], 1)

	button := markup.InlineKeyboard[0][0]
	assert.Equal(t, "Open dashboard", button.Text)
	require.NotNil(t, button.URL)
	assert.Equal(t, "https://railway.com/project/test", *button.URL)
}

func TestSendAlert_Error(t *testing.T) {
	b, api, _ := newTestBot(t)
	api.sendErr = errors.New("telegram unreachable")

	err := b.SendAlert(downtime.Alert{ChatID: 1, Body: "x"})
	require.Error(t, err)
}

// Full failover cycle: report down, wait out the grace period, users get
// the notice and on-call gets exactly one alert, then an up report hands
// traffic back.
func TestFailover_EndToEnd(t *testing.T) {
	b, api, _ := newTestBot(t)

	c := downtime.New(slog.New(slog.NewTextHandler(io.Discard, nil)), downtime.Config{
		Delay:        15 * time.Millisecond,
		OnCallChatID: 100500,
		DashboardURL: "https://railway.com/project/test",
	}, b, b)

	b.handleMessage(textMessage("en"))
	assert.Empty(t, api.sentMessages(t), "primary is up, no interception")

	c.ReportDown()

	b.handleMessage(textMessage("en"))
	assert.Empty(t, api.sentMessages(t), "grace period still assumes the primary is live")

	require.Eventually(t, c.IsActive, time.Second, 2*time.Millisecond)

	b.handleMessage(textMessage("en"))

	require.Eventually(t, func() bool { return len(api.sentMessages(t)) == 2 },
		time.Second, 2*time.Millisecond, "one notice and one alert expected")

	var notices, alerts int
	for _, m := range api.sentMessages(t) {
		switch m.ChatID {
		case 42:
			notices++
		case 100500:
			alerts++
		}
	}
	assert.Equal(t, 1, notices)
	assert.Equal(t, 1, alerts)

	c.ReportUp()

	b.handleMessage(textMessage("en"))
	assert.Len(t, api.sentMessages(t), 2, "recovered primary answers again, sidecar is silent")
}

func TestStart_DispatchesAndStopsOnCancel(t *testing.T) {
	b, api, storage := newTestBot(t)
	b.Activate()

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		b.Start(ctx)
		close(done)
	}()

	api.updates <- tgbotapi.Update{
		UpdateID: 1,
		MyChatMember: &tgbotapi.ChatMemberUpdated{
			From:          tgbotapi.User{ID: 42},
			NewChatMember: tgbotapi.ChatMember{Status: "kicked"},
		},
	}
	api.updates <- tgbotapi.Update{
		UpdateID: 2,
		Message:  textMessage("en"),
	}

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("bot did not stop on context cancellation")
	}

	api.mu.Lock()
	stopped := api.stopped
	api.mu.Unlock()

	assert.True(t, stopped, "update feed must be stopped")
	require.Len(t, storage.calls, 1)
	require.Len(t, api.sentMessages(t), 1)
}
