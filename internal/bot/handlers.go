package bot

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"uni-assistant/internal/content"
)

func (b *Bot) registerCommands() error {
	b.commands = newDispatcher()
	for _, cmd := range []command{
		{name: "start", description: "Show what I can do", run: b.handleStart},
		{name: "help", description: "Show what I can do", run: b.handleStart},
		{name: "notes", description: "📘 Get course notes", run: b.courseMenu(content.KindNotes, "Choose a course:")},
		{name: "books", description: "📚 Book PDFs", run: b.handleBooks},
		{name: "schedule", description: "🗓 Weekly schedule", run: b.handleSchedule},
		{name: "today", description: "📅 Today's classes", run: b.handleToday},
		{name: "notice", description: "📢 Latest notice", run: b.handleNotice},
		{name: "syllabus", description: "📘 Course syllabus", run: b.courseMenu(content.KindSyllabus, "📘 Choose a course for syllabus:")},
		{name: "questions", description: "❓ Previous questions", run: b.courseMenu(content.KindQuestions, "❓ Choose a course for previous questions:")},
		{name: "users", adminOnly: true, run: b.handleUsers},
		{name: "reload", adminOnly: true, run: b.handleReload},
	} {
		if err := b.commands.register(cmd); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bot) handleStart(ctx context.Context, msg Message, _ string) error {
	var sb strings.Builder
	sb.WriteString("👋 Hey! I'm your Uni Assistant.\n\nWhat I can do:\n")
	for _, cmd := range b.commands.public() {
		if cmd.name == "start" || cmd.name == "help" {
			continue
		}
		sb.WriteString(fmt.Sprintf("/%s — %s\n", cmd.name, cmd.description))
	}
	sb.WriteString("\n💬 Just type anything to chat with AI.")
	return b.transport.SendText(ctx, msg.ChatID, sb.String())
}

// courseMenu offers one button per course code; the click is answered by
// sendCourseLink.
func (b *Bot) courseMenu(kind content.Kind, prompt string) handlerFunc {
	return func(ctx context.Context, msg Message, _ string) error {
		codes := b.content.Store().CourseCodes()
		buttons := make([]Button, 0, len(codes))
		for _, code := range codes {
			buttons = append(buttons, Button{
				Text: code,
				Data: CallbackToken{Kind: kind, Code: code}.String(),
			})
		}
		return b.transport.SendChoices(ctx, msg.ChatID, prompt, buttons)
	}
}

func (b *Bot) sendCourseLink(ctx context.Context, chatID int64, token CallbackToken) error {
	link, ok := b.content.Store().LinkFor(token.Kind, token.Code)
	if !ok {
		return b.transport.SendText(ctx, chatID, NotConfiguredText(token))
	}
	return b.transport.SendText(ctx, chatID, fmt.Sprintf("%s %s:\n%s", token.Code, token.Kind, link))
}

// NotConfiguredText is the reply for a course link that has not been set.
func NotConfiguredText(token CallbackToken) string {
	return fmt.Sprintf("No %s link for %s is configured yet.", token.Kind, token.Code)
}

func (b *Bot) handleBooks(ctx context.Context, msg Message, _ string) error {
	books := b.content.Store().Books()
	if len(books) == 0 {
		return b.transport.SendText(ctx, msg.ChatID, "No books added yet.")
	}
	lines := []string{"📚 Books:"}
	for _, book := range books {
		link := book.URL
		if content.IsSentinel(link) {
			link = "not configured yet"
		}
		lines = append(lines, fmt.Sprintf("• %s: %s", book.Key, link))
	}
	return b.transport.SendText(ctx, msg.ChatID, strings.Join(lines, "\n"))
}

func (b *Bot) handleSchedule(ctx context.Context, msg Message, _ string) error {
	return b.transport.SendText(ctx, msg.ChatID, b.content.Store().RenderWeek())
}

func (b *Bot) handleToday(ctx context.Context, msg Message, _ string) error {
	return b.transport.SendText(ctx, msg.ChatID, b.TodayText())
}

// TodayText renders today's classes in the configured timezone.
func (b *Bot) TodayText() string {
	return b.content.Store().RenderDay(content.DayOf(b.now(), b.location))
}

func (b *Bot) handleNotice(ctx context.Context, msg Message, _ string) error {
	notice, ok := b.content.Store().Notice()
	if !ok {
		notice = "No notice yet."
	}
	return b.transport.SendText(ctx, msg.ChatID, "📢 Notice:\n"+notice)
}

func (b *Bot) handleUsers(ctx context.Context, msg Message, _ string) error {
	users, err := b.activity.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		return b.transport.SendText(ctx, msg.ChatID, "No users registered yet.")
	}
	lines := make([]string, 0, len(users)+1)
	lines = append(lines, "Registered users:")
	for _, u := range users {
		lines = append(lines, fmt.Sprintf("%s (@%s) - %d", u.FirstName, u.Handle(), u.TelegramID))
	}
	return b.transport.SendText(ctx, msg.ChatID, strings.Join(lines, "\n"))
}

func (b *Bot) handleReload(ctx context.Context, msg Message, _ string) error {
	store, err := b.content.Reload()
	if err != nil {
		return b.transport.SendText(ctx, msg.ChatID, fmt.Sprintf("⚠️ Reload failed, keeping the previous content: %v", err))
	}
	b.logger.Info("content reloaded by admin", zap.Int64("user_id", msg.From.TelegramID))
	return b.transport.SendText(ctx, msg.ChatID,
		fmt.Sprintf("✅ Content reloaded: %d courses, %d books.", len(store.CourseCodes()), len(store.Books())))
}
