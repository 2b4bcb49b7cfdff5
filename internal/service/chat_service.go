package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"uni-assistant/internal/ai"
	"uni-assistant/internal/logging"
	"uni-assistant/internal/metrics"
)

const assistantInstruction = "You are a friendly Bangladeshi university assistant bot. " +
	"Keep replies concise, helpful, and respectful. " +
	"If user asks about notes/books/schedule/notice, guide them to the right commands too."

const emptyReply = "Couldn't generate a reply."

// ChatService answers free-form text with the generative model.
type ChatService struct {
	generator ai.Generator
	timeout   time.Duration
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewChatService(generator ai.Generator, timeout time.Duration, m *metrics.Metrics, logger *zap.Logger) *ChatService {
	return &ChatService{
		generator: generator,
		timeout:   timeout,
		metrics:   m,
		logger:    logging.OrNop(logger),
	}
}

// BuildPrompt prefixes the user's text with the assistant instruction.
func BuildPrompt(text string) string {
	return assistantInstruction + "\n\nUser: " + text
}

// Reply makes exactly one generation call. Failures become a visible error
// reply instead of an error return.
func (s *ChatService) Reply(ctx context.Context, text string) string {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	out, err := s.generator.Generate(ctx, BuildPrompt(text))
	if err != nil {
		s.metrics.AIRequest("error")
		s.logger.Warn("generation failed", zap.Error(err))
		return "⚠️ AI error: " + err.Error()
	}

	out = strings.TrimSpace(out)
	if out == "" {
		s.metrics.AIRequest("empty")
		return emptyReply
	}
	s.metrics.AIRequest("ok")
	return out
}
