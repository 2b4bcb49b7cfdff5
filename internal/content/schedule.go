package content

import (
	"fmt"
	"strings"
	"time"
)

// Week is the display order of the timetable; the week starts on Saturday.
var Week = []time.Weekday{
	time.Saturday,
	time.Sunday,
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
}

// ParseDay matches an English weekday name, ignoring case and surrounding spaces.
func ParseDay(name string) (time.Weekday, bool) {
	name = strings.TrimSpace(name)
	for _, day := range Week {
		if strings.EqualFold(day.String(), name) {
			return day, true
		}
	}
	return 0, false
}

// DayOf returns the weekday of t as seen in loc.
func DayOf(t time.Time, loc *time.Location) time.Weekday {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Weekday()
}

// RenderDay formats one day of the timetable, "OFF" when it has no classes.
func (s *Store) RenderDay(day time.Weekday) string {
	entries := s.schedule[day]
	if len(entries) == 0 {
		return fmt.Sprintf("%s: OFF", day)
	}
	var b strings.Builder
	b.WriteString(day.String())
	b.WriteString(":")
	for _, e := range entries {
		b.WriteString("\n")
		b.WriteString(formatEntry(e))
	}
	return b.String()
}

// RenderWeek formats the full timetable from Saturday to Friday.
func (s *Store) RenderWeek() string {
	var b strings.Builder
	b.WriteString("🗓 Weekly Class Schedule:\n\n")
	for _, day := range Week {
		b.WriteString(s.RenderDay(day))
		b.WriteString("\n\n")
	}
	return strings.TrimSpace(b.String())
}

func formatEntry(e Entry) string {
	return fmt.Sprintf("  • %s — %s — %s", orUnknown(e.Course), orUnknown(e.Room), orUnknown(e.Time))
}

func orUnknown(v string) string {
	if strings.TrimSpace(v) == "" {
		return "?"
	}
	return v
}
