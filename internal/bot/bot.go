package bot

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"go.uber.org/zap"

	"uni-assistant/internal/content"
	"uni-assistant/internal/logging"
	"uni-assistant/internal/metrics"
	"uni-assistant/internal/model"
	"uni-assistant/internal/service"
)

// ErrNotAllowed is returned by privileged commands for non-admin callers.
var ErrNotAllowed = errors.New("not allowed")

const (
	replyNotAllowed     = "⚠️ You are not allowed to see this."
	replyUnknownCommand = "Unknown command. Try /help."
)

// Deps are the collaborators of a Bot.
type Deps struct {
	Transport Transport
	Content   *content.Holder
	Activity  *service.ActivityService
	Chat      *service.ChatService
	AdminID   int64
	Location  *time.Location
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
	Now       func() time.Time
}

// Bot routes inbound events to command handlers or the chat fallback.
type Bot struct {
	transport Transport
	content   *content.Holder
	activity  *service.ActivityService
	chat      *service.ChatService
	adminID   int64
	location  *time.Location
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
	commands  *dispatcher
}

func New(deps Deps) (*Bot, error) {
	if deps.Transport == nil || deps.Content == nil || deps.Activity == nil || deps.Chat == nil {
		return nil, fmt.Errorf("bot: transport, content, activity and chat are required")
	}
	b := &Bot{
		transport: deps.Transport,
		content:   deps.Content,
		activity:  deps.Activity,
		chat:      deps.Chat,
		adminID:   deps.AdminID,
		location:  deps.Location,
		metrics:   deps.Metrics,
		logger:    logging.OrNop(deps.Logger),
		now:       deps.Now,
	}
	if b.location == nil {
		b.location = time.Local
	}
	if b.now == nil {
		b.now = time.Now
	}
	if err := b.registerCommands(); err != nil {
		return nil, err
	}
	return b, nil
}

// Start processes updates one at a time until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("start polling updates")
	return b.transport.Listen(ctx, b.HandleMessage, b.HandleCallback)
}

// HandleMessage logs the message, then runs a command or the chat fallback.
// Failures are answered in the chat and never returned.
func (b *Bot) HandleMessage(ctx context.Context, msg Message) {
	if strings.TrimSpace(msg.Text) == "" {
		return
	}
	b.metrics.Update("message")
	b.record(ctx, msg.From, msg.Text)

	var err error
	if IsCommand(msg.Text) {
		err = b.dispatch(ctx, msg)
	} else {
		err = b.safely("chat", func() error { return b.handleChat(ctx, msg) })
	}
	if err != nil {
		b.replyError(ctx, msg.ChatID, err)
	}
}

// HandleCallback acknowledges a button click and answers with the chosen link.
func (b *Bot) HandleCallback(ctx context.Context, cb Callback) {
	b.metrics.Update("callback")
	if err := b.transport.AnswerCallback(ctx, cb.ID, ""); err != nil {
		b.logger.Warn("callback ack failed", zap.Error(err))
	}
	b.record(ctx, cb.From, clickLabel(cb.Data))

	token, err := ParseCallback(cb.Data)
	if err != nil {
		b.logger.Warn("ignoring callback", zap.Int64("user_id", cb.From.TelegramID), zap.Error(err))
		return
	}
	b.metrics.Command(callbackPrefix(token.Kind) + "*")
	b.logger.Info("callback", zap.Int64("user_id", cb.From.TelegramID), zap.Stringer("token", token))

	err = b.safely(token.String(), func() error {
		return b.sendCourseLink(ctx, cb.ChatID, token)
	})
	if err != nil {
		b.replyError(ctx, cb.ChatID, err)
	}
}

func (b *Bot) dispatch(ctx context.Context, msg Message) error {
	name, args, ok := ParseCommand(msg.Text)
	if !ok {
		return b.transport.SendText(ctx, msg.ChatID, replyUnknownCommand)
	}
	cmd, ok := b.commands.lookup(name)
	if !ok {
		b.logger.Info("unknown command", zap.Int64("user_id", msg.From.TelegramID), zap.String("command", name))
		return b.transport.SendText(ctx, msg.ChatID, replyUnknownCommand)
	}

	b.metrics.Command(cmd.name)
	b.logger.Info("command", zap.Int64("user_id", msg.From.TelegramID), zap.String("command", cmd.name))
	if cmd.adminOnly && !b.isAdmin(msg.From.TelegramID) {
		return ErrNotAllowed
	}
	return b.safely(cmd.name, func() error { return cmd.run(ctx, msg, args) })
}

// safely runs fn and turns a panic into an error so the receive loop survives.
func (b *Bot) safely(name string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("handler panic", zap.String("handler", name), zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
			err = fmt.Errorf("internal error in %s", name)
		}
	}()
	return fn()
}

func (b *Bot) replyError(ctx context.Context, chatID int64, err error) {
	text := fmt.Sprintf("⚠️ Something went wrong: %v", err)
	if errors.Is(err, ErrNotAllowed) {
		text = replyNotAllowed
	} else {
		b.logger.Error("handler failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	if sendErr := b.transport.SendText(ctx, chatID, text); sendErr != nil {
		b.logger.Error("send error reply", zap.Int64("chat_id", chatID), zap.Error(sendErr))
	}
}

func (b *Bot) record(ctx context.Context, user model.User, text string) {
	if err := b.activity.Record(ctx, user, text); err != nil {
		b.logger.Error("record activity", zap.Int64("user_id", user.TelegramID), zap.Error(err))
	}
}

func (b *Bot) isAdmin(id int64) bool {
	return b.adminID != 0 && id == b.adminID
}

func (b *Bot) handleChat(ctx context.Context, msg Message) error {
	reply := b.chat.Reply(ctx, msg.Text)
	return b.transport.SendText(ctx, msg.ChatID, reply)
}
