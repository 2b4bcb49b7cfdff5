package bot

import (
	"context"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uni-assistant/internal/content"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in       string
		wantName string
		wantArgs string
		wantOK   bool
	}{
		{"/notes", "notes", "", true},
		{"/Notes", "notes", "", true},
		{"/notes@uni_bot", "notes", "", true},
		{"  /today extra args ", "today", "extra args", true},
		{"/users@uni_bot  all", "users", "all", true},
		{"/", "", "", false},
		{"/@uni_bot", "", "", false},
		{"notes", "", "", false},
		{"hello /notes", "", "", false},
	}
	for _, tt := range tests {
		name, args, ok := ParseCommand(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.wantName, name, tt.in)
		assert.Equal(t, tt.wantArgs, args, tt.in)
	}
}

func TestDispatcherRegister(t *testing.T) {
	d := newDispatcher()
	noop := func(context.Context, Message, string) error { return nil }

	require.NoError(t, d.register(command{name: "Notes", run: noop}))
	assert.Error(t, d.register(command{name: "notes", run: noop}))
	assert.Error(t, d.register(command{name: "", run: noop}))
	require.NoError(t, d.register(command{name: "users", adminOnly: true, run: noop}))

	cmd, ok := d.lookup("NOTES")
	require.True(t, ok)
	assert.Equal(t, "notes", cmd.name)

	public := d.public()
	require.Len(t, public, 1)
	assert.Equal(t, "notes", public[0].name)
}

func TestParseCallback(t *testing.T) {
	tests := []struct {
		data string
		want CallbackToken
	}{
		{"note_FBL", CallbackToken{Kind: content.KindNotes, Code: "FBL"}},
		{"syllabus_IEEL", CallbackToken{Kind: content.KindSyllabus, Code: "IEEL"}},
		{"question_PF", CallbackToken{Kind: content.KindQuestions, Code: "PF"}},
		{"note_A_B", CallbackToken{Kind: content.KindNotes, Code: "A_B"}},
	}
	for _, tt := range tests {
		got, err := ParseCallback(tt.data)
		require.NoError(t, err, tt.data)
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.data, got.String())
	}

	for _, bad := range []string{"", "note_", "notes_FBL", "book_X", "FBL"} {
		_, err := ParseCallback(bad)
		assert.ErrorIs(t, err, ErrUnknownCallback, bad)
	}
}

func TestClickLabel(t *testing.T) {
	assert.Equal(t, "Clicked note: note_FBL", clickLabel("note_FBL"))
	assert.Equal(t, "Clicked syllabus: syllabus_DIC", clickLabel("syllabus_DIC"))
	assert.Equal(t, "Clicked question: question_GE", clickLabel("question_GE"))
	assert.Equal(t, "Clicked: other", clickLabel("other"))
}

func TestSplitText(t *testing.T) {
	assert.Equal(t, []string{"short"}, splitText("short", 10))

	parts := splitText("aaaa\nbbbb\ncccc", 10)
	assert.Equal(t, []string{"aaaa\nbbbb", "cccc"}, parts)

	long := strings.Repeat("я", 25)
	parts = splitText(long, 10)
	require.Len(t, parts, 3)
	assert.Equal(t, long, strings.Join(parts, ""))
	for _, p := range parts {
		assert.LessOrEqual(t, len([]rune(p)), 10)
	}
}

func TestUpdateConversion(t *testing.T) {
	from := &tgbotapi.User{ID: 42, UserName: "rafi", FirstName: "Rafi"}
	chat := &tgbotapi.Chat{ID: 42}

	msg, ok := messageFromUpdate(&tgbotapi.Message{From: from, Chat: chat, Text: "/notes"})
	require.True(t, ok)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, "rafi", msg.From.Username)
	assert.Equal(t, "/notes", msg.Text)

	_, ok = messageFromUpdate(&tgbotapi.Message{From: from, Chat: chat})
	assert.False(t, ok)
	_, ok = messageFromUpdate(&tgbotapi.Message{Chat: chat, Text: "hi"})
	assert.False(t, ok)

	cb, ok := callbackFromUpdate(&tgbotapi.CallbackQuery{
		ID:      "q1",
		From:    from,
		Message: &tgbotapi.Message{Chat: chat},
		Data:    "note_FBL",
	})
	require.True(t, ok)
	assert.Equal(t, Callback{ID: "q1", ChatID: 42, From: msg.From, Data: "note_FBL"}, cb)

	_, ok = callbackFromUpdate(&tgbotapi.CallbackQuery{ID: "q2", From: from})
	assert.False(t, ok)
}

func TestChoicesKeyboardOneButtonPerRow(t *testing.T) {
	kb := choicesKeyboard([]Button{{Text: "FBL", Data: "note_FBL"}, {Text: "DIC", Data: "note_DIC"}})
	require.Len(t, kb.InlineKeyboard, 2)
	for _, row := range kb.InlineKeyboard {
		require.Len(t, row, 1)
	}
	require.NotNil(t, kb.InlineKeyboard[1][0].CallbackData)
	assert.Equal(t, "note_DIC", *kb.InlineKeyboard[1][0].CallbackData)
}
