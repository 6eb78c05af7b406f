//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"roomtrack/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
)

var manila = time.FixedZone("Asia/Manila", 8*60*60)

func TestCanCheckIn(t *testing.T) {
	policy := reservation.DefaultPolicy(manila)
	startAt := time.Date(2025, 6, 2, 9, 0, 0, 0, manila)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"one second before window opens", startAt.Add(-10*time.Minute - time.Second), false},
		{"exactly at window open", startAt.Add(-10 * time.Minute), true},
		{"at start", startAt, true},
		{"exactly at window close", startAt.Add(15 * time.Minute), true},
		{"one second after window close", startAt.Add(15*time.Minute + time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.CanCheckIn(tt.now, startAt))
		})
	}
}

func TestCanCheckInAcrossTimezones(t *testing.T) {
	policy := reservation.DefaultPolicy(manila)
	startAt := time.Date(2025, 6, 2, 9, 0, 0, 0, manila)

	// The same instant expressed in UTC must yield the same decision.
	sameInstantUTC := startAt.UTC()
	assert.True(t, policy.CanCheckIn(sameInstantUTC, startAt))
	assert.False(t, policy.CanCheckIn(sameInstantUTC.Add(16*time.Minute), startAt))
}

func TestNoShowDue(t *testing.T) {
	policy := reservation.DefaultPolicy(manila)
	startAt := time.Date(2025, 6, 2, 9, 0, 0, 0, manila)

	assert.False(t, policy.NoShowDue(startAt.Add(14*time.Minute), startAt))
	assert.False(t, policy.NoShowDue(startAt.Add(15*time.Minute-time.Second), startAt))
	assert.True(t, policy.NoShowDue(startAt.Add(15*time.Minute), startAt))
	assert.True(t, policy.NoShowDue(startAt.Add(time.Hour), startAt))
}

func TestFinalizeDue(t *testing.T) {
	policy := reservation.DefaultPolicy(manila)
	endAt := time.Date(2025, 6, 2, 10, 0, 0, 0, manila)

	assert.False(t, policy.FinalizeDue(endAt, endAt))
	assert.False(t, policy.FinalizeDue(endAt.Add(10*time.Minute-time.Second), endAt))
	assert.True(t, policy.FinalizeDue(endAt.Add(10*time.Minute), endAt))
}

func TestSweepCutoffs(t *testing.T) {
	policy := reservation.DefaultPolicy(manila)
	now := time.Date(2025, 6, 2, 9, 30, 0, 0, manila)

	// A reservation is swept iff its boundary is at or before the cutoff,
	// which is the query-side mirror of the Due predicates.
	noShowCutoff := policy.NoShowCutoff(now)
	assert.True(t, policy.NoShowDue(now, noShowCutoff))
	assert.False(t, policy.NoShowDue(now, noShowCutoff.Add(time.Second)))

	finalizeCutoff := policy.FinalizeCutoff(now)
	assert.True(t, policy.FinalizeDue(now, finalizeCutoff))
	assert.False(t, policy.FinalizeDue(now, finalizeCutoff.Add(time.Second)))
}

func TestInBusinessTime(t *testing.T) {
	policy := reservation.DefaultPolicy(manila)
	utcNoon := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	local := policy.InBusinessTime(utcNoon)
	assert.Equal(t, 20, local.Hour())
	assert.True(t, local.Equal(utcNoon))
}
