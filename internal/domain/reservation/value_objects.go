package reservation

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidWindow = errors.New("start time must be before end time")

// Window is a half-open booking interval [start, end).
type Window struct {
	start time.Time
	end   time.Time
}

func NewWindow(start, end time.Time) (Window, error) {
	if !start.Before(end) {
		return Window{}, ErrInvalidWindow
	}
	return Window{start: start, end: end}, nil
}

func (w Window) Start() time.Time {
	return w.start
}

func (w Window) End() time.Time {
	return w.end
}

func (w Window) Duration() time.Duration {
	return w.end.Sub(w.start)
}

// Overlaps uses the half-open rule: [s1,e1) and [s2,e2) conflict iff
// s1 < e2 && e1 > s2. Touching endpoints do not overlap.
func (w Window) Overlaps(other Window) bool {
	return w.start.Before(other.end) && w.end.After(other.start)
}

func (w Window) String() string {
	return fmt.Sprintf("[%s,%s)", w.start.Format(time.RFC3339), w.end.Format(time.RFC3339))
}

// Booked is the minimal projection of an existing open reservation that
// conflict checking needs.
type Booked struct {
	ID     uuid.UUID
	Window Window
}

// HasConflict reports whether candidate overlaps any existing open
// reservation on the same room. Callers supply only SCHEDULED/IN_SESSION,
// non-closed rows; excludeID lets an update skip the reservation being
// edited so it cannot collide with itself.
func HasConflict(existing []Booked, candidate Window, excludeID uuid.UUID) bool {
	for _, b := range existing {
		if b.ID == excludeID {
			continue
		}
		if candidate.Overlaps(b.Window) {
			return true
		}
	}
	return false
}
