// Package content holds the read-only course material served by the bot:
// course links, books, the weekly timetable and the current notice.
package content

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// ErrConfig marks a missing or malformed content document.
var ErrConfig = errors.New("invalid content document")

// SentinelPrefix marks a link that has not been filled in yet.
const SentinelPrefix = "ADD_"

// DefaultCourseCodes is used when the document defines no notes.
var DefaultCourseCodes = []string{"FBL", "DIC", "IEE", "IEEL", "MED", "GE", "PF", "PFL", "CFE"}

// Kind selects one of the per-course link tables.
type Kind int

const (
	KindNotes Kind = iota
	KindSyllabus
	KindQuestions
)

func (k Kind) String() string {
	switch k {
	case KindNotes:
		return "notes"
	case KindSyllabus:
		return "syllabus"
	case KindQuestions:
		return "previous questions"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Store is an immutable snapshot of the content document.
type Store struct {
	notes       Links
	books       Links
	syllabus    Links
	questions   Links
	schedule    map[time.Weekday][]Entry
	notice      *string
	courses     []string
	unknownDays []string
}

// Load reads and parses the content document at path.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrConfig, path, err)
	}
	store, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return store, nil
}

// Parse decodes a JSON or YAML content document. Missing keys default to empty.
func Parse(data []byte) (*Store, error) {
	doc, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}

	s := &Store{
		notes:     doc.Notes,
		books:     doc.Books,
		syllabus:  doc.Syllabus,
		questions: doc.Questions,
		notice:    doc.Notice,
		schedule:  make(map[time.Weekday][]Entry, len(doc.Schedule)),
	}

	for _, block := range doc.Schedule {
		day, ok := ParseDay(block.Day)
		if !ok {
			s.unknownDays = append(s.unknownDays, block.Day)
			continue
		}
		s.schedule[day] = block.Entries
	}

	for _, link := range doc.Notes {
		s.courses = append(s.courses, link.Key)
	}
	if len(s.courses) == 0 {
		s.courses = append([]string(nil), DefaultCourseCodes...)
	}

	return s, nil
}

// UnknownDays lists schedule keys that are not weekday names.
func (s *Store) UnknownDays() []string {
	return append([]string(nil), s.unknownDays...)
}

// CourseCodes returns the codes offered by the notes, syllabus and question menus.
func (s *Store) CourseCodes() []string {
	return append([]string(nil), s.courses...)
}

// LinkFor returns the configured link for code. Sentinel and empty values
// report false.
func (s *Store) LinkFor(kind Kind, code string) (string, bool) {
	var table Links
	switch kind {
	case KindNotes:
		table = s.notes
	case KindSyllabus:
		table = s.syllabus
	case KindQuestions:
		table = s.questions
	default:
		return "", false
	}
	url, ok := table.lookup(code)
	if !ok || IsSentinel(url) {
		return "", false
	}
	return url, true
}

// Books returns the book titles and links in document order.
func (s *Store) Books() []Link {
	return append([]Link(nil), s.books...)
}

// ScheduleFor returns the classes of day in document order.
func (s *Store) ScheduleFor(day time.Weekday) []Entry {
	return append([]Entry(nil), s.schedule[day]...)
}

// Notice returns the current notice and whether the document sets one.
func (s *Store) Notice() (string, bool) {
	if s.notice == nil {
		return "", false
	}
	return *s.notice, true
}

// IsSentinel reports whether a link value means "not configured yet".
func IsSentinel(url string) bool {
	return strings.TrimSpace(url) == "" || strings.HasPrefix(url, SentinelPrefix)
}
