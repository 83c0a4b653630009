package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	e "nuclight.org/content-planner-bot/pkg/entities"
	"nuclight.org/content-planner-bot/pkg/logger"
)

type Planner interface {
	PrepareDraft(ctx context.Context, platform e.Platform, day int) (e.Draft, error)
	RegeneratePhoto(ctx context.Context, platform e.Platform, day int) (string, error)
	RegenerateText(ctx context.Context, platform e.Platform, day int) (string, error)
}

type Client struct {
	Log        logger.Logger
	APIToken   string
	AdminID    int64
	ChannelID  string // numeric chat id or @username
	Location   *time.Location
	WorkersNum int
	Planner    Planner

	bot *tgbotapi.BotAPI
	wg  sync.WaitGroup
}

func (c *Client) Start(ctx context.Context) (err error) {
	if c.WorkersNum == 0 {
		return fmt.Errorf("workers number must be greater than 0")
	}

	log := c.Log

	c.bot, err = tgbotapi.NewBotAPI(c.APIToken)
	if err != nil {
		return fmt.Errorf("creating bot api: %w", err)
	}

	log.Info("bot api created", "username", c.bot.Self.UserName)

	updatesConf := tgbotapi.NewUpdate(0)
	updatesConf.Timeout = 60

	updatesChan := c.bot.GetUpdatesChan(updatesConf)

	for i := 0; i < c.WorkersNum; i++ {
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			c.handleUpdatesFromChan(ctx, updatesChan)
		}()
	}

	return nil
}

func (c *Client) Wait() {
	c.wg.Wait()
}

func (c *Client) handleUpdatesFromChan(ctx context.Context, updatesChan tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updatesChan:
			err := c.handleUpdate(ctx, update)
			if err != nil {
				c.Log.Error("handling update", "tg_update_id", update.UpdateID, "error", err)
				sentry.CaptureException(err)
				_ = c.notifyAdmin(fmt.Sprintf("❌ Помилка: %v", err))
			}
		}
	}
}

// handleUpdate routes one update. Any failure is returned to the loop,
// reported to the admin there, and never kills the dispatch.
func (c *Client) handleUpdate(ctx context.Context, update tgbotapi.Update) (err error) {
	log := c.Log.With("tg_update_id", update.UpdateID)

	defer func() {
		if r := recover(); r != nil {
			log.Error("panic", "error", r)
			err = fmt.Errorf("panic in handler: %v", r)
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		return c.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		return c.handleCommand(ctx, update.Message)
	}

	return nil
}

func (c *Client) handleCommand(ctx context.Context, msg *tgbotapi.Message) error {
	log := c.Log.With("tg_message_id", msg.MessageID)

	// commands are admin-only and silently ignored for everyone else
	if msg.From == nil || msg.From.ID != c.AdminID {
		log.Info("command from non-admin ignored", "command", msg.Command())
		return nil
	}

	log.Info("command received", "command", msg.Command())

	switch msg.Command() {
	case "start":
		return c.sendMenu()
	case "generate_tg":
		return c.SendDraft(ctx, e.PlatformTelegram, 0, false)
	case "generate_inst":
		return c.SendDraft(ctx, e.PlatformInstagram, 0, false)
	default:
		log.Info("unknown command", "command", msg.Command())
	}

	return nil
}

// SendDraft prepares a draft for the platform and delivers it to the
// admin. Day 0 resolves to the current day of month in the editorial
// timezone. On a scheduled trigger the notice goes out before any slow
// generation work so the admin sees the bot is alive.
func (c *Client) SendDraft(ctx context.Context, platform e.Platform, day int, scheduled bool) error {
	if day == 0 {
		day = time.Now().In(c.Location).Day()
	}

	if scheduled {
		err := c.notifyAdmin(fmt.Sprintf("🕘 Час публікації! Готую чернетку (%s, день %d)...", platform, day))
		if err != nil {
			return fmt.Errorf("sending trigger notice: %w", err)
		}
	}

	draft, err := c.Planner.PrepareDraft(ctx, platform, day)
	if errors.Is(err, e.ErrNoEntry) {
		return c.notifyAdmin(fmt.Sprintf("⚠️ Пост на %d-е число не знайдено в базі.", day))
	}
	if err != nil {
		return c.notifyAdmin(fmt.Sprintf("❌ Не вдалося згенерувати чернетку: %v", err))
	}

	photo := tgbotapi.NewPhoto(c.AdminID, tgbotapi.FileURL(draft.PhotoURL))
	photo.Caption = draft.Caption
	photo.ReplyMarkup = draftKeyboard(platform, day)

	if _, err := c.bot.Send(photo); err != nil {
		return fmt.Errorf("sending draft: %w", err)
	}

	c.Log.Info("draft sent", "platform", platform, "day", day)

	return nil
}

func (c *Client) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) error {
	log := c.Log.With("tg_callback_id", cq.ID)

	// like commands, button presses are admin-only and silently ignored
	if cq.From == nil || cq.From.ID != c.AdminID {
		log.Info("callback from non-admin ignored")
		return nil
	}

	if cq.Message == nil {
		log.Warn("callback without message")
		return c.answer(cq.ID, "")
	}

	token, err := e.DecodeActionToken(cq.Data)
	if err != nil {
		_ = c.answer(cq.ID, "")
		return fmt.Errorf("decoding callback data: %w", err)
	}

	// buttons stay attached after publication, refuse late presses
	if e.IsPublished(cq.Message.Caption) {
		return c.answer(cq.ID, "Пост уже опубліковано.")
	}

	log.Info("callback received", "kind", token.Kind, "platform", token.Platform, "day", token.Day)

	switch token.Kind {
	case e.ActionKindPublish:
		return c.publishDraft(cq)
	case e.ActionKindPhoto:
		return c.replacePhoto(ctx, cq, token)
	case e.ActionKindText:
		return c.replaceText(ctx, cq, token)
	default:
		return fmt.Errorf("unknown action kind: %s", token.Kind)
	}
}

// publishDraft forwards the current photo and the cleaned caption to the
// destination channel and stamps the admin message as published. The photo
// travels by file_id: telegram reuses the existing upload instead of
// refetching the original URL.
func (c *Client) publishDraft(cq *tgbotapi.CallbackQuery) error {
	msg := cq.Message
	if len(msg.Photo) == 0 {
		return c.answer(cq.ID, "У чернетці немає фото.")
	}

	fileID := msg.Photo[len(msg.Photo)-1].FileID
	clean := e.StripDraftHeader(msg.Caption)

	photo := tgbotapi.PhotoConfig{
		BaseFile: tgbotapi.BaseFile{
			BaseChat: c.channelChat(),
			File:     tgbotapi.FileID(fileID),
		},
		Caption: clean,
	}
	if _, err := c.bot.Send(photo); err != nil {
		_ = c.answer(cq.ID, "Помилка при відправці в канал.")
		return fmt.Errorf("sending to channel: %w", err)
	}

	// editing the caption without reply markup detaches the keyboard; a
	// press delivered before the edit lands is still caught by the
	// published-banner check in handleCallback
	edit := tgbotapi.NewEditMessageCaption(msg.Chat.ID, msg.MessageID, e.PublishedCaption(clean))
	if _, err := c.bot.Send(edit); err != nil {
		return fmt.Errorf("updating draft status: %w", err)
	}

	c.Log.Info("draft published", "tg_message_id", msg.MessageID)

	return c.answer(cq.ID, "Пост успішно опубліковано!")
}

// replacePhoto swaps the draft image for a fresh one. Caption and keyboard
// are re-supplied explicitly, editing media drops both otherwise.
func (c *Client) replacePhoto(ctx context.Context, cq *tgbotapi.CallbackQuery, token e.ActionToken) error {
	photoURL, err := c.Planner.RegeneratePhoto(ctx, token.Platform, token.Day)
	if errors.Is(err, e.ErrNoEntry) {
		return c.answer(cq.ID, fmt.Sprintf("Пост на %d-е число вже не в базі.", token.Day))
	}
	if err != nil {
		_ = c.answer(cq.ID, "Не вдалося оновити фото.")
		return fmt.Errorf("regenerating photo: %w", err)
	}

	msg := cq.Message

	media := tgbotapi.NewInputMediaPhoto(tgbotapi.FileURL(photoURL))
	media.Caption = msg.Caption

	edit := tgbotapi.EditMessageMediaConfig{
		BaseEdit: tgbotapi.BaseEdit{
			ChatID:      msg.Chat.ID,
			MessageID:   msg.MessageID,
			ReplyMarkup: msg.ReplyMarkup,
		},
		Media: media,
	}
	if _, err := c.bot.Request(edit); err != nil {
		_ = c.answer(cq.ID, "Не вдалося оновити фото.")
		return fmt.Errorf("editing draft media: %w", err)
	}

	return c.answer(cq.ID, "Фото оновлено.")
}

// replaceText swaps the caption for a regenerated one, keeping the photo
// and the keyboard.
func (c *Client) replaceText(ctx context.Context, cq *tgbotapi.CallbackQuery, token e.ActionToken) error {
	caption, err := c.Planner.RegenerateText(ctx, token.Platform, token.Day)
	if errors.Is(err, e.ErrNoEntry) {
		return c.answer(cq.ID, fmt.Sprintf("Пост на %d-е число вже не в базі.", token.Day))
	}
	if err != nil {
		_ = c.answer(cq.ID, "Не вдалося оновити текст.")
		return fmt.Errorf("regenerating text: %w", err)
	}

	msg := cq.Message

	edit := tgbotapi.NewEditMessageCaption(msg.Chat.ID, msg.MessageID, caption)
	edit.ReplyMarkup = msg.ReplyMarkup

	if _, err := c.bot.Send(edit); err != nil {
		_ = c.answer(cq.ID, "Не вдалося оновити текст.")
		return fmt.Errorf("editing draft caption: %w", err)
	}

	return c.answer(cq.ID, "Текст оновлено.")
}

func (c *Client) sendMenu() error {
	return c.notifyAdmin(
		"Привіт! Я готую чернетки постів за контент-планом.\n\n" +
			"/generate_tg — чернетка для каналу на сьогодні\n" +
			"/generate_inst — чернетка для Instagram на сьогодні\n\n" +
			"Щодня о 9:00 та 11:00 чернетки приходять автоматично.",
	)
}

func (c *Client) notifyAdmin(text string) error {
	msg := tgbotapi.NewMessage(c.AdminID, text)

	_, err := c.bot.Send(msg)
	return err
}

func (c *Client) answer(callbackID, text string) error {
	_, err := c.bot.Request(tgbotapi.NewCallback(callbackID, text))
	return err
}

// channelChat resolves CHANNEL_ID into a sendable chat: either a numeric
// id or an @username.
func (c *Client) channelChat() tgbotapi.BaseChat {
	if id, err := strconv.ParseInt(c.ChannelID, 10, 64); err == nil {
		return tgbotapi.BaseChat{ChatID: id}
	}

	return tgbotapi.BaseChat{ChannelUsername: c.ChannelID}
}

// draftKeyboard builds the action row for a draft message. Only the
// channel platform gets a publish button, other platforms are posted by
// hand.
func draftKeyboard(platform e.Platform, day int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	if platform.PublishesToChannel() {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				"✅ Опублікувати в канал",
				e.ActionToken{Kind: e.ActionKindPublish}.Encode(),
			),
		))
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(
			"🔄 Інше фото",
			e.ActionToken{Kind: e.ActionKindPhoto, Platform: platform, Day: day}.Encode(),
		),
		tgbotapi.NewInlineKeyboardButtonData(
			"✍️ Інший текст",
			e.ActionToken{Kind: e.ActionKindText, Platform: platform, Day: day}.Encode(),
		),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
