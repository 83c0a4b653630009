package telegram

import (
	"context"
	"io"
	"log/slog"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	e "nuclight.org/content-planner-bot/pkg/entities"
)

type mockPlanner struct {
	prepareCalls int
	photoCalls   int
	textCalls    int
}

func (m *mockPlanner) PrepareDraft(_ context.Context, platform e.Platform, day int) (e.Draft, error) {
	m.prepareCalls++
	return e.Draft{Platform: platform, Day: day}, nil
}

func (m *mockPlanner) RegeneratePhoto(_ context.Context, _ e.Platform, _ int) (string, error) {
	m.photoCalls++
	return "", nil
}

func (m *mockPlanner) RegenerateText(_ context.Context, _ e.Platform, _ int) (string, error) {
	m.textCalls++
	return "", nil
}

// The nil bot field doubles as a guard in the gating tests below: any
// attempt to send or answer would dereference it and panic.

func TestCommandFromNonAdminIsIgnored(t *testing.T) {
	planner := &mockPlanner{}
	c := &Client{
		Log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		AdminID: 1,
		Planner: planner,
	}

	msg := &tgbotapi.Message{
		MessageID: 10,
		From:      &tgbotapi.User{ID: 2},
		Text:      "/generate_tg",
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: len("/generate_tg")},
		},
	}

	err := c.handleCommand(context.Background(), msg)
	require.NoError(t, err)

	assert.Zero(t, planner.prepareCalls, "draft prepared for non-admin")
}

func TestCallbackFromNonAdminIsIgnored(t *testing.T) {
	for _, data := range []string{"confirm_publish", "photo_tg_15", "text_tg_15"} {
		planner := &mockPlanner{}
		c := &Client{
			Log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
			AdminID: 1,
			Planner: planner,
		}

		cq := &tgbotapi.CallbackQuery{
			ID:      "cb1",
			From:    &tgbotapi.User{ID: 2},
			Data:    data,
			Message: &tgbotapi.Message{MessageID: 10, Caption: "📸 TELEGRAM (День 15)\n\nGenerated body"},
		}

		err := c.handleCallback(context.Background(), cq)
		require.NoError(t, err, "data %q", data)

		assert.Zero(t, planner.prepareCalls, "data %q", data)
		assert.Zero(t, planner.photoCalls, "data %q", data)
		assert.Zero(t, planner.textCalls, "data %q", data)
	}
}

func TestDraftKeyboardTelegram(t *testing.T) {
	kb := draftKeyboard(e.PlatformTelegram, 15)

	require.Len(t, kb.InlineKeyboard, 2)

	publish := kb.InlineKeyboard[0]
	require.Len(t, publish, 1)
	require.NotNil(t, publish[0].CallbackData)
	assert.Equal(t, "confirm_publish", *publish[0].CallbackData)

	regen := kb.InlineKeyboard[1]
	require.Len(t, regen, 2)
	require.NotNil(t, regen[0].CallbackData)
	require.NotNil(t, regen[1].CallbackData)
	assert.Equal(t, "photo_tg_15", *regen[0].CallbackData)
	assert.Equal(t, "text_tg_15", *regen[1].CallbackData)
}

func TestDraftKeyboardInstagramHasNoPublish(t *testing.T) {
	kb := draftKeyboard(e.PlatformInstagram, 7)

	require.Len(t, kb.InlineKeyboard, 1)

	regen := kb.InlineKeyboard[0]
	require.Len(t, regen, 2)
	assert.Equal(t, "photo_inst_7", *regen[0].CallbackData)
	assert.Equal(t, "text_inst_7", *regen[1].CallbackData)
}

func TestDraftKeyboardTokensRoundTrip(t *testing.T) {
	kb := draftKeyboard(e.PlatformTelegram, 31)

	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			require.NotNil(t, btn.CallbackData)

			token, err := e.DecodeActionToken(*btn.CallbackData)
			require.NoError(t, err)

			if token.Kind != e.ActionKindPublish {
				assert.Equal(t, e.PlatformTelegram, token.Platform)
				assert.Equal(t, 31, token.Day)
			}
		}
	}
}

func TestChannelChat(t *testing.T) {
	c := &Client{ChannelID: "-1001234567890"}
	assert.Equal(t, int64(-1001234567890), c.channelChat().ChatID)

	c = &Client{ChannelID: "@my_channel"}
	chat := c.channelChat()
	assert.Zero(t, chat.ChatID)
	assert.Equal(t, "@my_channel", chat.ChannelUsername)
}
