//go:build unit

package sweeper_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"roomtrack/internal/pkg/clock"
	"roomtrack/internal/sweeper"

	"github.com/stretchr/testify/assert"
)

type recordingJob struct {
	name  string
	runs  []time.Time
	swept int
	err   error
}

func (j *recordingJob) Name() string { return j.name }

func (j *recordingJob) Run(_ context.Context, now time.Time) (int, error) {
	j.runs = append(j.runs, now)
	return j.swept, j.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunOnce(t *testing.T) {
	now := time.Date(2025, 6, 2, 9, 0, 0, 0, manila)
	clk := clock.NewMockClock(now)

	t.Run("all jobs see the same clock reading", func(t *testing.T) {
		first := &recordingJob{name: "first", swept: 3}
		second := &recordingJob{name: "second"}
		s := sweeper.New([]sweeper.Job{first, second}, 5*time.Minute, clk, discardLogger())

		s.RunOnce(context.Background())

		assert.Equal(t, []time.Time{now}, first.runs)
		assert.Equal(t, []time.Time{now}, second.runs)
	})

	t.Run("a failing job does not block the rest", func(t *testing.T) {
		failing := &recordingJob{name: "failing", err: errors.New("connection reset")}
		healthy := &recordingJob{name: "healthy", swept: 1}
		s := sweeper.New([]sweeper.Job{failing, healthy}, 5*time.Minute, clk, discardLogger())

		s.RunOnce(context.Background())

		assert.Len(t, failing.runs, 1)
		assert.Len(t, healthy.runs, 1)
	})
}

func TestStartStop(t *testing.T) {
	clk := clock.NewMockClock(time.Date(2025, 6, 2, 9, 0, 0, 0, manila))
	job := &recordingJob{name: "job"}
	s := sweeper.New([]sweeper.Job{job}, time.Hour, clk, discardLogger())

	s.Start(context.Background())
	s.Stop()

	// The startup pass ran before the first tick.
	assert.NotEmpty(t, job.runs)
}
