//go:build unit

package commands_test

import (
	"context"
	"time"

	"roomtrack/internal/domain/attendance"
	"roomtrack/internal/domain/reservation"
	"roomtrack/internal/domain/room"
	"roomtrack/internal/infra"
	"roomtrack/internal/infra/repository"

	"github.com/google/uuid"
)

// fakeRunner stages writes made through the transactional fakes and
// commits or discards them together, mimicking the real runner's
// all-or-nothing behavior.
type fakeRunner struct {
	events *fakeAttendanceRepo
}

func (r *fakeRunner) Within(ctx context.Context, fn func(ctx context.Context, db repository.DBTX) error) error {
	err := fn(ctx, nil)
	if r.events != nil {
		if err != nil {
			r.events.discard()
		} else {
			r.events.commit()
		}
	}
	return err
}

type fakeReservationRepo struct {
	byID          map[uuid.UUID]*reservation.Reservation
	activeByRoom  []reservation.Booked
	scheduled     []*reservation.Reservation
	openSession   *reservation.Reservation
	hasSession    bool
	created       []*reservation.Reservation
	transitions   []string
	transitionErr error
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{byID: make(map[uuid.UUID]*reservation.Reservation)}
}

func (f *fakeReservationRepo) Create(_ context.Context, _ repository.DBTX, res *reservation.Reservation) error {
	f.created = append(f.created, res)
	return nil
}

func (f *fakeReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	res, ok := f.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return res, nil
}

func (f *fakeReservationRepo) FindActiveByRoom(_ context.Context, _ uuid.UUID) ([]reservation.Booked, error) {
	return f.activeByRoom, nil
}

func (f *fakeReservationRepo) FindScheduledByRoomUser(_ context.Context, _, _ uuid.UUID) ([]*reservation.Reservation, error) {
	return f.scheduled, nil
}

func (f *fakeReservationRepo) FindOpenSessionByRoomUser(_ context.Context, _, _ uuid.UUID) (*reservation.Reservation, error) {
	if f.openSession == nil {
		return nil, infra.WrapRepoErr("no active session", nil, infra.KindNotFound)
	}
	return f.openSession, nil
}

func (f *fakeReservationRepo) HasOpenSession(_ context.Context, _ uuid.UUID) (bool, error) {
	return f.hasSession, nil
}

func (f *fakeReservationRepo) UpdateWindow(_ context.Context, _ repository.DBTX, id uuid.UUID, _ reservation.Window) error {
	return f.transition("update_window", id)
}

func (f *fakeReservationRepo) MarkInSession(_ context.Context, _ repository.DBTX, id uuid.UUID) error {
	return f.transition("in_session", id)
}

func (f *fakeReservationRepo) MarkCompleted(_ context.Context, _ repository.DBTX, id uuid.UUID, _ time.Time) error {
	return f.transition("completed", id)
}

func (f *fakeReservationRepo) MarkCancelled(_ context.Context, _ repository.DBTX, id uuid.UUID, _ time.Time) error {
	return f.transition("cancelled", id)
}

func (f *fakeReservationRepo) transition(name string, id uuid.UUID) error {
	if f.transitionErr != nil {
		return f.transitionErr
	}
	f.transitions = append(f.transitions, name+":"+id.String())
	return nil
}

type fakeAttendanceRepo struct {
	staged    []*attendance.Event
	committed []*attendance.Event
}

func (f *fakeAttendanceRepo) Insert(_ context.Context, _ repository.DBTX, e *attendance.Event) error {
	f.staged = append(f.staged, e)
	return nil
}

func (f *fakeAttendanceRepo) commit() {
	f.committed = append(f.committed, f.staged...)
	f.staged = nil
}

func (f *fakeAttendanceRepo) discard() {
	f.staged = nil
}

type fakeRoomRepo struct {
	byID map[uuid.UUID]*room.Room
}

func newFakeRoomRepo(rooms ...*room.Room) *fakeRoomRepo {
	f := &fakeRoomRepo{byID: make(map[uuid.UUID]*room.Room)}
	for _, rm := range rooms {
		f.byID[rm.ID()] = rm
	}
	return f
}

func (f *fakeRoomRepo) Create(_ context.Context, rm *room.Room) error {
	f.byID[rm.ID()] = rm
	return nil
}

func (f *fakeRoomRepo) Update(_ context.Context, rm *room.Room) error {
	f.byID[rm.ID()] = rm
	return nil
}

func (f *fakeRoomRepo) FindByID(_ context.Context, id uuid.UUID) (*room.Room, error) {
	rm, ok := f.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return rm, nil
}

func (f *fakeRoomRepo) List(_ context.Context) ([]*room.Room, error) {
	rooms := make([]*room.Room, 0, len(f.byID))
	for _, rm := range f.byID {
		rooms = append(rooms, rm)
	}
	return rooms, nil
}
