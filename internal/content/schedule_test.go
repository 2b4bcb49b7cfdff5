package content

import (
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWeekOrderAndOff(t *testing.T) {
	s, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	want := "🗓 Weekly Class Schedule:\n\n" +
		"Saturday: OFF\n\n" +
		"Sunday:\n  • FBL — 301 — 9:00\n  • DIC — Lab 2 — 8:00\n\n" +
		"Monday: OFF\n\n" +
		"Tuesday:\n  • MED — ? — 11:00\n\n" +
		"Wednesday: OFF\n\n" +
		"Thursday: OFF\n\n" +
		"Friday: OFF"
	assert.Equal(t, want, s.RenderWeek())
}

func TestRenderWeekListsAllDaysInOrder(t *testing.T) {
	s, err := Parse([]byte(`{}`))
	require.NoError(t, err)

	out := s.RenderWeek()
	last := -1
	for _, day := range Week {
		idx := strings.Index(out, day.String()+": OFF")
		require.GreaterOrEqual(t, idx, 0, day.String())
		assert.Greater(t, idx, last)
		last = idx
	}
}

func TestRenderDay(t *testing.T) {
	s, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, "Friday: OFF", s.RenderDay(time.Friday))
	assert.Equal(t, "Sunday:\n  • FBL — 301 — 9:00\n  • DIC — Lab 2 — 8:00", s.RenderDay(time.Sunday))
}

func TestDayOfUsesLocation(t *testing.T) {
	dhaka, err := time.LoadLocation("Asia/Dhaka")
	require.NoError(t, err)

	// 2024-06-07 20:30 UTC is Saturday 02:30 in Dhaka (UTC+6).
	instant := time.Date(2024, 6, 7, 20, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Friday, DayOf(instant, time.UTC))
	assert.Equal(t, time.Saturday, DayOf(instant, dhaka))
}

func TestParseDay(t *testing.T) {
	day, ok := ParseDay(" wednesday ")
	assert.True(t, ok)
	assert.Equal(t, time.Wednesday, day)

	_, ok = ParseDay("Caturday")
	assert.False(t, ok)
}
