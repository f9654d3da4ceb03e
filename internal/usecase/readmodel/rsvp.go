package readmodel

import (
	"time"

	"github.com/google/uuid"
)

type RSVPRM struct {
	ID              uuid.UUID `json:"id"`
	SessionID       uuid.UUID `json:"session_id"`
	EventID         uuid.UUID `json:"event_id"`
	EventTitle      string    `json:"event_title"`
	SessionStartsAt time.Time `json:"session_starts_at"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           *string   `json:"phone,omitempty"`
	Seats           int32     `json:"seats"`
	Status          string    `json:"status"`
	ReservationCode string    `json:"reservation_code"`
	CreatedAt       time.Time `json:"created_at"`
}

// SessionGroupRM is the admin view: one session with every reservation made
// against it and the running seat totals.
type SessionGroupRM struct {
	SessionID  uuid.UUID `json:"session_id"`
	EventID    uuid.UUID `json:"event_id"`
	EventTitle string    `json:"event_title"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	Capacity   int32     `json:"capacity"`
	Reserved   int32     `json:"reserved"`
	RSVPs      []RSVPRM  `json:"rsvps"`
}

type RSVPSummaryRM struct {
	TotalRSVPs     int64 `json:"total_rsvps"`
	ActiveRSVPs    int64 `json:"active_rsvps"`
	CancelledRSVPs int64 `json:"cancelled_rsvps"`
	SeatsReserved  int64 `json:"seats_reserved"`
}
