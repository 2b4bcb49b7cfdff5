package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleIntervalRejectsNonPositive(t *testing.T) {
	s := NewSchedulerService(time.UTC, nil)
	_, err := s.ScheduleInterval(0, func() {})
	assert.Error(t, err)
	assert.Zero(t, s.Entries())
}

func TestScheduleIntervalRunsJob(t *testing.T) {
	s := NewSchedulerService(time.UTC, nil)
	ran := make(chan struct{}, 1)
	_, err := s.ScheduleInterval(time.Second, func() {
		select {
		case ran <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Entries())

	s.Start()
	defer s.Stop()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}
}

func TestScheduleIntervalRoundsToSeconds(t *testing.T) {
	s := NewSchedulerService(time.UTC, nil)
	_, err := s.ScheduleInterval(300*time.Millisecond, func() {})
	require.NoError(t, err)
	_, err = s.ScheduleInterval(90*time.Second, func() {})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Entries())
}
