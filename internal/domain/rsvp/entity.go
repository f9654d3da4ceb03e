package rsvp

import (
	"crypto/rand"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName    = errors.New("holder name is required")
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidSeats = errors.New("seat count must be at least 1")
)

// ReservationCodeLength is the length of the human-shareable code handed to
// the holder at booking time. It is the sole credential for the public
// self-service flow, so it comes from crypto/rand.
const ReservationCodeLength = 8

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RSVP is one party's claim on seats within an event session.
type RSVP struct {
	id        uuid.UUID
	sessionID uuid.UUID
	name      string
	email     string
	phone     *string
	seats     int32
	status    Status
	code      string
}

func New(sessionID uuid.UUID, name, email string, phone *string, seats int32) (*RSVP, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	email = NormalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if seats < 1 {
		return nil, ErrInvalidSeats
	}

	return &RSVP{
		id:        uuid.New(),
		sessionID: sessionID,
		name:      name,
		email:     email,
		phone:     phone,
		seats:     seats,
		status:    StatusPending,
		code:      NewReservationCode(),
	}, nil
}

// Regenerate swaps in a fresh reservation code after a uniqueness collision.
func (r *RSVP) Regenerate() {
	r.code = NewReservationCode()
}

func (r *RSVP) ID() uuid.UUID        { return r.id }
func (r *RSVP) SessionID() uuid.UUID { return r.sessionID }
func (r *RSVP) Name() string         { return r.name }
func (r *RSVP) Email() string        { return r.email }
func (r *RSVP) Phone() *string       { return r.phone }
func (r *RSVP) Seats() int32         { return r.seats }
func (r *RSVP) Status() Status       { return r.status }
func (r *RSVP) Code() string         { return r.code }

// NewReservationCode returns an 8-character uppercase alphanumeric code.
func NewReservationCode() string {
	return randomFromAlphabet(codeAlphabet, ReservationCodeLength)
}

// NewVerificationCode returns a 6-digit numeric code for the email-based
// management flow.
func NewVerificationCode() string {
	return randomFromAlphabet("0123456789", 6)
}

func randomFromAlphabet(alphabet string, n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing means the platform is broken; the fallback keeps
		// the caller alive at the cost of code quality.
		for i := range buf {
			buf[i] = alphabet[int(time.Now().UnixNano()+int64(i))%len(alphabet)]
		}
		return string(buf)
	}
	out := make([]byte, n)
	for i, b := range buf {
		out[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(out)
}

// NormalizeEmail lower-cases and trims an address so the one-active-booking-
// per-email rules compare apples to apples.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
