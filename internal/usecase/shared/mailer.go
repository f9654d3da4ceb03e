package shared

import (
	"context"
	"time"

	"mokka-api/internal/domain/rsvp"
)

type ReservationEmail struct {
	To         string
	Name       string
	EventTitle string
	StartsAt   time.Time
	Seats      int32
	Code       string
}

type VerificationEmail struct {
	To        string
	Code      string
	Action    rsvp.Action
	ExpiresAt time.Time
}

// Mailer failures never roll back the booking that triggered them; sends
// happen after commit and are logged, not surfaced to the holder.
type Mailer interface {
	SendReservationConfirmation(ctx context.Context, email ReservationEmail) error
	SendVerificationCode(ctx context.Context, email VerificationEmail) error
}
