package reservation

import "time"

// Policy holds the grace-period constants for the reservation lifecycle.
// The three thresholds are intentionally distinct: check-in and no-show
// are anchored at startAt, finalization at endAt.
type Policy struct {
	// CheckInEarly is how long before startAt a check-in is accepted.
	CheckInEarly time.Duration
	// CheckInLate is how long after startAt a check-in is still accepted.
	CheckInLate time.Duration
	// NoShowAfter is the delay past startAt before the sweeper marks a
	// reservation NO_SHOW.
	NoShowAfter time.Duration
	// FinalizeAfter is the delay past endAt before the sweeper
	// auto-checks-out a session or closes a no-show.
	FinalizeAfter time.Duration
	// Location is the fixed civil timezone all business time is
	// evaluated in, regardless of the server's local zone.
	Location *time.Location
}

func DefaultPolicy(loc *time.Location) Policy {
	return Policy{
		CheckInEarly:  10 * time.Minute,
		CheckInLate:   15 * time.Minute,
		NoShowAfter:   15 * time.Minute,
		FinalizeAfter: 10 * time.Minute,
		Location:      loc,
	}
}

// CanCheckIn reports whether now falls within [startAt-early, startAt+late].
// Both bounds are inclusive.
func (p Policy) CanCheckIn(now, startAt time.Time) bool {
	earliest := startAt.Add(-p.CheckInEarly)
	latest := startAt.Add(p.CheckInLate)
	return !now.Before(earliest) && !now.After(latest)
}

// NoShowDue reports whether a still-scheduled reservation should be
// marked NO_SHOW: now >= startAt + NoShowAfter.
func (p Policy) NoShowDue(now, startAt time.Time) bool {
	return !now.Before(startAt.Add(p.NoShowAfter))
}

// FinalizeDue reports whether the end-time grace has elapsed:
// now >= endAt + FinalizeAfter.
func (p Policy) FinalizeDue(now, endAt time.Time) bool {
	return !now.Before(endAt.Add(p.FinalizeAfter))
}

// NoShowCutoff returns the latest startAt still eligible for the no-show
// sweep at the given instant, for use as a query bound.
func (p Policy) NoShowCutoff(now time.Time) time.Time {
	return now.Add(-p.NoShowAfter)
}

// FinalizeCutoff returns the latest endAt still eligible for the
// finalize sweep at the given instant.
func (p Policy) FinalizeCutoff(now time.Time) time.Time {
	return now.Add(-p.FinalizeAfter)
}

// InBusinessTime converts an instant into the fixed civil timezone.
func (p Policy) InBusinessTime(t time.Time) time.Time {
	if p.Location == nil {
		return t
	}
	return t.In(p.Location)
}
