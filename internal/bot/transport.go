package bot

import (
	"context"

	"uni-assistant/internal/model"
)

// Button is one selectable inline option.
type Button struct {
	Text string
	Data string
}

// Message is an inbound text message, normalized from the platform update.
type Message struct {
	ChatID int64
	From   model.User
	Text   string
}

// Callback is a click on an inline button.
type Callback struct {
	ID     string
	ChatID int64
	From   model.User
	Data   string
}

// Messenger is the outbound side of the messaging platform.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
	SendChoices(ctx context.Context, chatID int64, text string, buttons []Button) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
}

// Transport is a Messenger that also delivers inbound events. Listen blocks
// until ctx is done, invoking the handlers one event at a time.
type Transport interface {
	Messenger
	Listen(ctx context.Context, onMessage func(context.Context, Message), onCallback func(context.Context, Callback)) error
}
