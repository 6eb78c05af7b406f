//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"roomtrack/internal/domain/reservation"
	"roomtrack/internal/domain/room"
	"roomtrack/internal/pkg/clock"
	"roomtrack/internal/usecase/commands"
	"roomtrack/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reservationFixture struct {
	reservations *fakeReservationRepo
	rooms        *fakeRoomRepo
	clock        *clock.MockClock
	commands     commands.ReservationCommands
	room         *room.Room
}

func newReservationFixture(t *testing.T) *reservationFixture {
	t.Helper()

	rm, err := room.NewRoom("Lab 301", 30)
	require.NoError(t, err)

	reservations := newFakeReservationRepo()
	rooms := newFakeRoomRepo(rm)
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 9, 0, 0, 0, manila))

	return &reservationFixture{
		reservations: reservations,
		rooms:        rooms,
		clock:        clk,
		commands:     commands.NewReservationCommands(reservations, rooms, &fakeRunner{}, clk),
		room:         rm,
	}
}

func TestCreateReservation(t *testing.T) {
	startAt := time.Date(2025, 6, 2, 9, 0, 0, 0, manila)

	t.Run("free slot is booked", func(t *testing.T) {
		fx := newReservationFixture(t)

		id, err := fx.commands.Create(context.Background(), fx.room.ID(), uuid.New(), startAt, startAt.Add(time.Hour))
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)
		require.Len(t, fx.reservations.created, 1)
		assert.Equal(t, reservation.StatusScheduled, fx.reservations.created[0].Status())
	})

	t.Run("inverted window", func(t *testing.T) {
		fx := newReservationFixture(t)

		_, err := fx.commands.Create(context.Background(), fx.room.ID(), uuid.New(), startAt.Add(time.Hour), startAt)
		assert.ErrorIs(t, err, commands.ErrInvalidWindow)
	})

	t.Run("unknown room", func(t *testing.T) {
		fx := newReservationFixture(t)

		_, err := fx.commands.Create(context.Background(), uuid.New(), uuid.New(), startAt, startAt.Add(time.Hour))
		assert.ErrorIs(t, err, commands.ErrRoomNotFound)
	})

	t.Run("retired room", func(t *testing.T) {
		fx := newReservationFixture(t)
		fx.room.Retire()

		_, err := fx.commands.Create(context.Background(), fx.room.ID(), uuid.New(), startAt, startAt.Add(time.Hour))
		assert.ErrorIs(t, err, commands.ErrRoomUnavailable)
	})

	t.Run("overlapping slot is rejected", func(t *testing.T) {
		fx := newReservationFixture(t)
		w, err := reservation.NewWindow(startAt, startAt.Add(time.Hour))
		require.NoError(t, err)
		fx.reservations.activeByRoom = []reservation.Booked{{ID: uuid.New(), Window: w}}

		_, err = fx.commands.Create(context.Background(), fx.room.ID(), uuid.New(), startAt.Add(30*time.Minute), startAt.Add(90*time.Minute))
		assert.ErrorIs(t, err, commands.ErrRoomConflict)
		assert.Empty(t, fx.reservations.created)
	})

	t.Run("back-to-back slot is allowed", func(t *testing.T) {
		fx := newReservationFixture(t)
		w, err := reservation.NewWindow(startAt, startAt.Add(time.Hour))
		require.NoError(t, err)
		fx.reservations.activeByRoom = []reservation.Booked{{ID: uuid.New(), Window: w}}

		_, err = fx.commands.Create(context.Background(), fx.room.ID(), uuid.New(), startAt.Add(time.Hour), startAt.Add(2*time.Hour))
		require.NoError(t, err)
	})
}

func TestUpdateReservation(t *testing.T) {
	t.Run("owner reschedules into a free slot", func(t *testing.T) {
		fx := newReservationFixture(t)
		owner := uuid.New()
		b := builder.NewReservationBuilder().WithRoomID(fx.room.ID()).WithUserID(owner)
		res, err := b.BuildDomain()
		require.NoError(t, err)
		fx.reservations.byID[res.ID()] = res
		// The stored interval itself is in the comparison set; updates
		// must not collide with the reservation being moved.
		fx.reservations.activeByRoom = []reservation.Booked{{ID: res.ID(), Window: res.Window()}}

		newStart := b.StartAt().Add(30 * time.Minute)
		_, err = fx.commands.Update(context.Background(), res.ID(), owner, &newStart, nil)
		require.NoError(t, err)
		assert.Contains(t, fx.reservations.transitions, "update_window:"+res.ID().String())
	})

	t.Run("nil fields keep stored boundaries", func(t *testing.T) {
		fx := newReservationFixture(t)
		owner := uuid.New()
		b := builder.NewReservationBuilder().WithRoomID(fx.room.ID()).WithUserID(owner)
		res, err := b.BuildDomain()
		require.NoError(t, err)
		fx.reservations.byID[res.ID()] = res

		newEnd := b.EndAt().Add(30 * time.Minute)
		_, err = fx.commands.Update(context.Background(), res.ID(), owner, nil, &newEnd)
		require.NoError(t, err)
		assert.True(t, res.Window().Start().Equal(b.StartAt()))
		assert.True(t, res.Window().End().Equal(newEnd))
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		fx := newReservationFixture(t)
		b := builder.NewReservationBuilder().WithRoomID(fx.room.ID())
		res, err := b.BuildDomain()
		require.NoError(t, err)
		fx.reservations.byID[res.ID()] = res

		newStart := b.StartAt().Add(time.Hour)
		_, err = fx.commands.Update(context.Background(), res.ID(), uuid.New(), &newStart, nil)
		assert.ErrorIs(t, err, commands.ErrNotOwner)
	})

	t.Run("closed reservation cannot move", func(t *testing.T) {
		fx := newReservationFixture(t)
		owner := uuid.New()
		b := builder.NewReservationBuilder().
			WithRoomID(fx.room.ID()).
			WithUserID(owner).
			WithStatus(reservation.StatusCancelled).
			Closed(time.Date(2025, 6, 1, 12, 0, 0, 0, manila))
		res, err := b.BuildDomain()
		require.NoError(t, err)
		fx.reservations.byID[res.ID()] = res

		newStart := b.StartAt().Add(time.Hour)
		_, err = fx.commands.Update(context.Background(), res.ID(), owner, &newStart, nil)
		assert.ErrorIs(t, err, commands.ErrReservationNotOpen)
	})
}

func TestCancelReservation(t *testing.T) {
	t.Run("owner cancels", func(t *testing.T) {
		fx := newReservationFixture(t)
		owner := uuid.New()
		b := builder.NewReservationBuilder().WithRoomID(fx.room.ID()).WithUserID(owner)
		res, err := b.BuildDomain()
		require.NoError(t, err)
		fx.reservations.byID[res.ID()] = res

		_, err = fx.commands.Cancel(context.Background(), res.ID(), owner)
		require.NoError(t, err)
		assert.Contains(t, fx.reservations.transitions, "cancelled:"+res.ID().String())
	})

	t.Run("unknown reservation", func(t *testing.T) {
		fx := newReservationFixture(t)

		_, err := fx.commands.Cancel(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, commands.ErrReservationNotFound)
	})

	t.Run("non-owner rejected", func(t *testing.T) {
		fx := newReservationFixture(t)
		b := builder.NewReservationBuilder().WithRoomID(fx.room.ID())
		res, err := b.BuildDomain()
		require.NoError(t, err)
		fx.reservations.byID[res.ID()] = res

		_, err = fx.commands.Cancel(context.Background(), res.ID(), uuid.New())
		assert.ErrorIs(t, err, commands.ErrNotOwner)
	})

	t.Run("in-session reservation cannot be cancelled", func(t *testing.T) {
		fx := newReservationFixture(t)
		owner := uuid.New()
		b := builder.NewReservationBuilder().
			WithRoomID(fx.room.ID()).
			WithUserID(owner).
			WithStatus(reservation.StatusInSession)
		res, err := b.BuildDomain()
		require.NoError(t, err)
		fx.reservations.byID[res.ID()] = res

		_, err = fx.commands.Cancel(context.Background(), res.ID(), owner)
		assert.ErrorIs(t, err, commands.ErrReservationNotOpen)
	})
}
