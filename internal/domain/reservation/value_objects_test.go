//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"roomtrack/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func window(t *testing.T, startOffset, endOffset time.Duration) reservation.Window {
	t.Helper()
	w, err := reservation.NewWindow(base.Add(startOffset), base.Add(endOffset))
	require.NoError(t, err)
	return w
}

func TestNewWindow(t *testing.T) {
	t.Run("start before end", func(t *testing.T) {
		w, err := reservation.NewWindow(base, base.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, time.Hour, w.Duration())
	})

	t.Run("start equals end", func(t *testing.T) {
		_, err := reservation.NewWindow(base, base)
		assert.ErrorIs(t, err, reservation.ErrInvalidWindow)
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := reservation.NewWindow(base.Add(time.Hour), base)
		assert.ErrorIs(t, err, reservation.ErrInvalidWindow)
	})
}

func TestWindowOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    reservation.Window
		b    reservation.Window
		want bool
	}{
		{
			name: "identical windows",
			a:    window(t, 0, time.Hour),
			b:    window(t, 0, time.Hour),
			want: true,
		},
		{
			name: "partial overlap",
			a:    window(t, 0, time.Hour),
			b:    window(t, 30*time.Minute, 90*time.Minute),
			want: true,
		},
		{
			name: "containment",
			a:    window(t, 0, 2*time.Hour),
			b:    window(t, 30*time.Minute, time.Hour),
			want: true,
		},
		{
			name: "back to back slots do not overlap",
			a:    window(t, 0, time.Hour),
			b:    window(t, time.Hour, 2*time.Hour),
			want: false,
		},
		{
			name: "disjoint",
			a:    window(t, 0, time.Hour),
			b:    window(t, 2*time.Hour, 3*time.Hour),
			want: false,
		},
		{
			name: "one minute overlap",
			a:    window(t, 0, time.Hour),
			b:    window(t, 59*time.Minute, 2*time.Hour),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			// Overlap is symmetric.
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestHasConflict(t *testing.T) {
	first := reservation.Booked{ID: uuid.New(), Window: window(t, 0, time.Hour)}
	second := reservation.Booked{ID: uuid.New(), Window: window(t, 2*time.Hour, 3*time.Hour)}
	existing := []reservation.Booked{first, second}

	t.Run("overlapping candidate conflicts", func(t *testing.T) {
		assert.True(t, reservation.HasConflict(existing, window(t, 30*time.Minute, 90*time.Minute), uuid.Nil))
	})

	t.Run("gap between slots is free", func(t *testing.T) {
		assert.False(t, reservation.HasConflict(existing, window(t, time.Hour, 2*time.Hour), uuid.Nil))
	})

	t.Run("reservation being edited is excluded", func(t *testing.T) {
		candidate := window(t, 15*time.Minute, 45*time.Minute)
		assert.True(t, reservation.HasConflict(existing, candidate, uuid.Nil))
		assert.False(t, reservation.HasConflict(existing, candidate, first.ID))
	})

	t.Run("empty comparison set", func(t *testing.T) {
		assert.False(t, reservation.HasConflict(nil, window(t, 0, time.Hour), uuid.Nil))
	})
}
