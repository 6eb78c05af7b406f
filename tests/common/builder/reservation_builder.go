package builder

import (
	"time"

	"roomtrack/internal/domain/reservation"

	"github.com/google/uuid"
)

// ReservationBuilder assembles reservation aggregates for tests.
// Defaults describe a one-hour slot starting at a fixed instant in the
// business timezone, still SCHEDULED and open.
type ReservationBuilder struct {
	id          uuid.UUID
	roomID      uuid.UUID
	userID      uuid.UUID
	startAt     time.Time
	endAt       time.Time
	status      reservation.Status
	closed      bool
	finalizedAt *time.Time
	createdAt   time.Time
	updatedAt   time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.FixedZone("Asia/Manila", 8*60*60))
	created := start.Add(-24 * time.Hour)
	return &ReservationBuilder{
		id:        uuid.New(),
		roomID:    uuid.New(),
		userID:    uuid.New(),
		startAt:   start,
		endAt:     start.Add(time.Hour),
		status:    reservation.StatusScheduled,
		createdAt: created,
		updatedAt: created,
	}
}

func (b *ReservationBuilder) WithID(id uuid.UUID) *ReservationBuilder {
	b.id = id
	return b
}

func (b *ReservationBuilder) WithRoomID(id uuid.UUID) *ReservationBuilder {
	b.roomID = id
	return b
}

func (b *ReservationBuilder) WithUserID(id uuid.UUID) *ReservationBuilder {
	b.userID = id
	return b
}

func (b *ReservationBuilder) WithWindow(startAt, endAt time.Time) *ReservationBuilder {
	b.startAt = startAt
	b.endAt = endAt
	return b
}

func (b *ReservationBuilder) WithStatus(status reservation.Status) *ReservationBuilder {
	b.status = status
	return b
}

func (b *ReservationBuilder) Closed(finalizedAt time.Time) *ReservationBuilder {
	b.closed = true
	b.finalizedAt = &finalizedAt
	return b
}

func (b *ReservationBuilder) StartAt() time.Time {
	return b.startAt
}

func (b *ReservationBuilder) EndAt() time.Time {
	return b.endAt
}

func (b *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	window, err := reservation.NewWindow(b.startAt, b.endAt)
	if err != nil {
		return nil, err
	}
	return reservation.ReconstructReservation(
		b.id, b.roomID, b.userID, window,
		b.status, b.closed, b.finalizedAt,
		b.createdAt, b.updatedAt,
	), nil
}
