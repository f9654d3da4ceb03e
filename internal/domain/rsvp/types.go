package rsvp

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsActive reports whether the reservation still holds seats against its
// session's capacity. Only CANCELLED reservations give their seats back.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Action is what an out-of-band verification code entitles its holder to do.
type Action string

const (
	ActionCancel Action = "cancel"
	ActionModify Action = "modify"
)

func (a Action) IsValid() bool {
	return a == ActionCancel || a == ActionModify
}
