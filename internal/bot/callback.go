package bot

import (
	"errors"
	"fmt"
	"strings"

	"uni-assistant/internal/content"
)

// ErrUnknownCallback marks callback data without a recognized prefix.
var ErrUnknownCallback = errors.New("unknown callback")

const (
	cbNotePrefix     = "note_"
	cbSyllabusPrefix = "syllabus_"
	cbQuestionPrefix = "question_"
)

var callbackPrefixes = []struct {
	prefix string
	kind   content.Kind
}{
	{cbNotePrefix, content.KindNotes},
	{cbSyllabusPrefix, content.KindSyllabus},
	{cbQuestionPrefix, content.KindQuestions},
}

// CallbackToken is the parsed form of "{prefix}_{CourseCode}".
type CallbackToken struct {
	Kind content.Kind
	Code string
}

// ParseCallback splits callback data into its kind and course code.
func ParseCallback(data string) (CallbackToken, error) {
	for _, p := range callbackPrefixes {
		if code, ok := strings.CutPrefix(data, p.prefix); ok {
			if code == "" {
				return CallbackToken{}, fmt.Errorf("%w: %q has no course code", ErrUnknownCallback, data)
			}
			return CallbackToken{Kind: p.kind, Code: code}, nil
		}
	}
	return CallbackToken{}, fmt.Errorf("%w: %q", ErrUnknownCallback, data)
}

func (t CallbackToken) String() string {
	return callbackPrefix(t.Kind) + t.Code
}

func callbackPrefix(kind content.Kind) string {
	for _, p := range callbackPrefixes {
		if p.kind == kind {
			return p.prefix
		}
	}
	return ""
}

// clickLabel names the click in the activity log, e.g. "Clicked note: note_FBL".
func clickLabel(data string) string {
	for _, p := range callbackPrefixes {
		if strings.HasPrefix(data, p.prefix) {
			return fmt.Sprintf("Clicked %s: %s", strings.TrimSuffix(p.prefix, "_"), data)
		}
	}
	return "Clicked: " + data
}
