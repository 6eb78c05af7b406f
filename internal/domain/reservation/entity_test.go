//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"roomtrack/internal/domain/reservation"
	"roomtrack/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReservation(t *testing.T) {
	w, err := reservation.NewWindow(base, base.Add(time.Hour))
	require.NoError(t, err)

	res := reservation.NewReservation(uuid.New(), uuid.New(), w)

	assert.NotEqual(t, uuid.Nil, res.ID())
	assert.Equal(t, reservation.StatusScheduled, res.Status())
	assert.False(t, res.Closed())
	assert.Nil(t, res.FinalizedAt())
}

func TestCheckIn(t *testing.T) {
	policy := reservation.DefaultPolicy(manila)

	t.Run("inside window", func(t *testing.T) {
		b := builder.NewReservationBuilder()
		res, err := b.BuildDomain()
		require.NoError(t, err)

		require.NoError(t, res.CheckIn(policy, b.StartAt().Add(5*time.Minute)))
		assert.Equal(t, reservation.StatusInSession, res.Status())
		assert.False(t, res.Closed())
	})

	t.Run("too early", func(t *testing.T) {
		b := builder.NewReservationBuilder()
		res, err := b.BuildDomain()
		require.NoError(t, err)

		err = res.CheckIn(policy, b.StartAt().Add(-11*time.Minute))
		assert.ErrorIs(t, err, reservation.ErrOutsideWindow)
		assert.Equal(t, reservation.StatusScheduled, res.Status())
	})

	t.Run("too late", func(t *testing.T) {
		b := builder.NewReservationBuilder()
		res, err := b.BuildDomain()
		require.NoError(t, err)

		err = res.CheckIn(policy, b.StartAt().Add(16*time.Minute))
		assert.ErrorIs(t, err, reservation.ErrOutsideWindow)
	})

	t.Run("already in session", func(t *testing.T) {
		b := builder.NewReservationBuilder().WithStatus(reservation.StatusInSession)
		res, err := b.BuildDomain()
		require.NoError(t, err)

		err = res.CheckIn(policy, b.StartAt())
		assert.ErrorIs(t, err, reservation.ErrIllegalTransition)
	})

	t.Run("closed latch wins over status", func(t *testing.T) {
		b := builder.NewReservationBuilder().Closed(base)
		res, err := b.BuildDomain()
		require.NoError(t, err)

		err = res.CheckIn(policy, b.StartAt())
		assert.ErrorIs(t, err, reservation.ErrClosed)
	})
}

func TestCheckOut(t *testing.T) {
	t.Run("in session closes completed", func(t *testing.T) {
		b := builder.NewReservationBuilder().WithStatus(reservation.StatusInSession)
		res, err := b.BuildDomain()
		require.NoError(t, err)

		now := b.EndAt().Add(-5 * time.Minute)
		require.NoError(t, res.CheckOut(now))
		assert.Equal(t, reservation.StatusCompleted, res.Status())
		assert.True(t, res.Closed())
		require.NotNil(t, res.FinalizedAt())
		assert.True(t, res.FinalizedAt().Equal(now))
	})

	t.Run("not in session", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		err = res.CheckOut(base)
		assert.ErrorIs(t, err, reservation.ErrIllegalTransition)
	})

	t.Run("checkout twice", func(t *testing.T) {
		b := builder.NewReservationBuilder().WithStatus(reservation.StatusInSession)
		res, err := b.BuildDomain()
		require.NoError(t, err)

		require.NoError(t, res.CheckOut(b.EndAt()))
		err = res.CheckOut(b.EndAt())
		assert.ErrorIs(t, err, reservation.ErrClosed)
	})
}

func TestMarkNoShow(t *testing.T) {
	policy := reservation.DefaultPolicy(manila)

	t.Run("due", func(t *testing.T) {
		b := builder.NewReservationBuilder()
		res, err := b.BuildDomain()
		require.NoError(t, err)

		require.NoError(t, res.MarkNoShow(policy, b.StartAt().Add(15*time.Minute)))
		assert.Equal(t, reservation.StatusNoShow, res.Status())
		// Stays open until the finalize sweep.
		assert.False(t, res.Closed())
		assert.Nil(t, res.FinalizedAt())
	})

	t.Run("not yet due", func(t *testing.T) {
		b := builder.NewReservationBuilder()
		res, err := b.BuildDomain()
		require.NoError(t, err)

		err = res.MarkNoShow(policy, b.StartAt().Add(14*time.Minute))
		assert.ErrorIs(t, err, reservation.ErrNotYetDue)
	})

	t.Run("checked-in reservation cannot become no-show", func(t *testing.T) {
		b := builder.NewReservationBuilder().WithStatus(reservation.StatusInSession)
		res, err := b.BuildDomain()
		require.NoError(t, err)

		err = res.MarkNoShow(policy, b.StartAt().Add(time.Hour))
		assert.ErrorIs(t, err, reservation.ErrIllegalTransition)
	})
}

func TestAutoCheckOut(t *testing.T) {
	policy := reservation.DefaultPolicy(manila)

	t.Run("grace elapsed", func(t *testing.T) {
		b := builder.NewReservationBuilder().WithStatus(reservation.StatusInSession)
		res, err := b.BuildDomain()
		require.NoError(t, err)

		now := b.EndAt().Add(10 * time.Minute)
		require.NoError(t, res.AutoCheckOut(policy, now))
		assert.Equal(t, reservation.StatusCompleted, res.Status())
		assert.True(t, res.Closed())
	})

	t.Run("within grace", func(t *testing.T) {
		b := builder.NewReservationBuilder().WithStatus(reservation.StatusInSession)
		res, err := b.BuildDomain()
		require.NoError(t, err)

		err = res.AutoCheckOut(policy, b.EndAt().Add(9*time.Minute))
		assert.ErrorIs(t, err, reservation.ErrNotYetDue)
	})
}

func TestCloseNoShow(t *testing.T) {
	policy := reservation.DefaultPolicy(manila)

	t.Run("closes without changing status", func(t *testing.T) {
		b := builder.NewReservationBuilder().WithStatus(reservation.StatusNoShow)
		res, err := b.BuildDomain()
		require.NoError(t, err)

		now := b.EndAt().Add(10 * time.Minute)
		require.NoError(t, res.CloseNoShow(policy, now))
		assert.Equal(t, reservation.StatusNoShow, res.Status())
		assert.True(t, res.Closed())
		require.NotNil(t, res.FinalizedAt())
	})

	t.Run("not yet due", func(t *testing.T) {
		b := builder.NewReservationBuilder().WithStatus(reservation.StatusNoShow)
		res, err := b.BuildDomain()
		require.NoError(t, err)

		err = res.CloseNoShow(policy, b.EndAt())
		assert.ErrorIs(t, err, reservation.ErrNotYetDue)
	})
}

func TestCancel(t *testing.T) {
	t.Run("owner cancels scheduled", func(t *testing.T) {
		owner := uuid.New()
		b := builder.NewReservationBuilder().WithUserID(owner)
		res, err := b.BuildDomain()
		require.NoError(t, err)

		require.NoError(t, res.Cancel(owner, base))
		assert.Equal(t, reservation.StatusCancelled, res.Status())
		assert.True(t, res.Closed())
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		res, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)

		err = res.Cancel(uuid.New(), base)
		assert.ErrorIs(t, err, reservation.ErrNotOwner)
		assert.Equal(t, reservation.StatusScheduled, res.Status())
	})

	t.Run("in-session reservation cannot be cancelled", func(t *testing.T) {
		owner := uuid.New()
		b := builder.NewReservationBuilder().WithUserID(owner).WithStatus(reservation.StatusInSession)
		res, err := b.BuildDomain()
		require.NoError(t, err)

		err = res.Cancel(owner, base)
		assert.ErrorIs(t, err, reservation.ErrIllegalTransition)
	})
}

func TestReschedule(t *testing.T) {
	owner := uuid.New()

	t.Run("scheduled reservation moves", func(t *testing.T) {
		b := builder.NewReservationBuilder().WithUserID(owner)
		res, err := b.BuildDomain()
		require.NoError(t, err)

		w, err := reservation.NewWindow(b.StartAt().Add(time.Hour), b.EndAt().Add(time.Hour))
		require.NoError(t, err)

		require.NoError(t, res.Reschedule(owner, w))
		assert.True(t, res.Window().Start().Equal(b.StartAt().Add(time.Hour)))
	})

	t.Run("cancelled reservation stays put", func(t *testing.T) {
		b := builder.NewReservationBuilder().WithUserID(owner)
		res, err := b.BuildDomain()
		require.NoError(t, err)
		require.NoError(t, res.Cancel(owner, base))

		w, err := reservation.NewWindow(b.StartAt().Add(time.Hour), b.EndAt().Add(time.Hour))
		require.NoError(t, err)

		err = res.Reschedule(owner, w)
		assert.ErrorIs(t, err, reservation.ErrClosed)
	})
}

// Every transition refuses to act on a closed reservation, whatever the
// stored status says.
func TestClosedLatchIsTerminal(t *testing.T) {
	policy := reservation.DefaultPolicy(manila)
	owner := uuid.New()

	for _, status := range []reservation.Status{
		reservation.StatusScheduled,
		reservation.StatusInSession,
		reservation.StatusCompleted,
		reservation.StatusNoShow,
		reservation.StatusCancelled,
	} {
		t.Run(status.String(), func(t *testing.T) {
			b := builder.NewReservationBuilder().WithUserID(owner).WithStatus(status).Closed(base)
			res, err := b.BuildDomain()
			require.NoError(t, err)

			now := b.StartAt()
			assert.ErrorIs(t, res.CheckIn(policy, now), reservation.ErrClosed)
			assert.ErrorIs(t, res.CheckOut(now), reservation.ErrClosed)
			assert.ErrorIs(t, res.MarkNoShow(policy, now), reservation.ErrClosed)
			assert.ErrorIs(t, res.AutoCheckOut(policy, now), reservation.ErrClosed)
			assert.ErrorIs(t, res.CloseNoShow(policy, now), reservation.ErrClosed)
			assert.ErrorIs(t, res.Cancel(owner, now), reservation.ErrClosed)
		})
	}
}
