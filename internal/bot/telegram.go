package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"uni-assistant/internal/logging"
	"uni-assistant/internal/model"
)

// maxMessageLen stays below Telegram's 4096 character limit per message.
const maxMessageLen = 4000

// TelegramMessenger is the Transport backed by the Telegram Bot API.
type TelegramMessenger struct {
	api    *tgbotapi.BotAPI
	logger *zap.Logger
}

func NewTelegramMessenger(token string, logger *zap.Logger) (*TelegramMessenger, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	logger = logging.OrNop(logger)
	logger.Info("bot authorized", zap.String("account", api.Self.UserName))
	return &TelegramMessenger{api: api, logger: logger}, nil
}

// Listen long-polls updates and hands them to the callbacks sequentially.
func (t *TelegramMessenger) Listen(ctx context.Context, onMessage func(context.Context, Message), onCallback func(context.Context, Callback)) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := t.api.GetUpdatesChan(updateConfig)

	go func() {
		<-ctx.Done()
		t.api.StopReceivingUpdates()
	}()

	for update := range updates {
		switch {
		case update.CallbackQuery != nil:
			if cb, ok := callbackFromUpdate(update.CallbackQuery); ok {
				onCallback(ctx, cb)
			}
		case update.Message != nil:
			if msg, ok := messageFromUpdate(update.Message); ok {
				onMessage(ctx, msg)
			}
		}
	}
	return ctx.Err()
}

func (t *TelegramMessenger) SendText(_ context.Context, chatID int64, text string) error {
	for _, part := range splitText(text, maxMessageLen) {
		if _, err := t.api.Send(tgbotapi.NewMessage(chatID, part)); err != nil {
			return fmt.Errorf("send message: %w", err)
		}
	}
	return nil
}

func (t *TelegramMessenger) SendChoices(_ context.Context, chatID int64, text string, buttons []Button) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if len(buttons) > 0 {
		msg.ReplyMarkup = choicesKeyboard(buttons)
	}
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("send choices: %w", err)
	}
	return nil
}

func (t *TelegramMessenger) AnswerCallback(_ context.Context, callbackID, text string) error {
	if _, err := t.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		return fmt.Errorf("answer callback: %w", err)
	}
	return nil
}

func choicesKeyboard(buttons []Button) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, btn := range buttons {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(btn.Text, btn.Data)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func messageFromUpdate(m *tgbotapi.Message) (Message, bool) {
	if m.From == nil || m.Chat == nil || m.Text == "" {
		return Message{}, false
	}
	return Message{ChatID: m.Chat.ID, From: userFromTelegram(m.From), Text: m.Text}, true
}

func callbackFromUpdate(cb *tgbotapi.CallbackQuery) (Callback, bool) {
	if cb.From == nil || cb.Message == nil || cb.Message.Chat == nil {
		return Callback{}, false
	}
	return Callback{
		ID:     cb.ID,
		ChatID: cb.Message.Chat.ID,
		From:   userFromTelegram(cb.From),
		Data:   cb.Data,
	}, true
}

func userFromTelegram(u *tgbotapi.User) model.User {
	return model.User{TelegramID: u.ID, Username: u.UserName, FirstName: u.FirstName}
}

// splitText cuts text into chunks of at most limit runes, preferring line breaks.
func splitText(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}
	var parts []string
	for len(runes) > limit {
		cut := limit
		if i := lastNewline(runes[:limit]); i > 0 {
			cut = i + 1
		}
		parts = append(parts, strings.TrimRight(string(runes[:cut]), "\n"))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}

func lastNewline(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == '\n' {
			return i
		}
	}
	return -1
}
