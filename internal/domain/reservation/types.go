package reservation

type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusInSession Status = "IN_SESSION"
	StatusCompleted Status = "COMPLETED"
	StatusNoShow    Status = "NO_SHOW"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusInSession, StatusCompleted, StatusNoShow, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further status change is possible.
// NO_SHOW is not terminal by itself: it stays open until its own
// end-time grace elapses and the finalize sweep closes it.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}
