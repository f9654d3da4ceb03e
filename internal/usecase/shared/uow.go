package shared

import (
	"context"
	"time"

	"mokka-api/internal/domain/event"
	"mokka-api/internal/domain/rsvp"
	"mokka-api/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithConn: Single query operations using implicit transactions
	WithConn(ctx context.Context, fn func(ctx context.Context, conn db.Conn) error) error
}

type Tx interface {
	Sessions() SessionRepository
	RSVPs() RSVPRepository
	Verifications() VerificationRepository
	Events() EventRepository
	Conn() db.Conn
}

// SessionSnapshot is the capacity-store row as read inside the transaction
// that will decide on it. Callers must not cache it across transactions.
type SessionSnapshot struct {
	ID         uuid.UUID
	EventID    uuid.UUID
	EventTitle string
	Start      time.Time
	End        time.Time
	Capacity   int32
	Reserved   int32
}

func (s *SessionSnapshot) Available() int32 {
	return s.Capacity - s.Reserved
}

type RSVPSnapshot struct {
	ID        uuid.UUID
	SessionID uuid.UUID
	Name      string
	Email     string
	Phone     *string
	Seats     int32
	Status    rsvp.Status
	Code      string
	CreatedAt time.Time
}

// SessionRepository is the capacity store. It exposes only atomic delta
// operations; there is deliberately no way to write `reserved` directly.
type SessionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SessionSnapshot, error)
	// TryReserve debits seats iff reserved+seats <= capacity, as one
	// conditional UPDATE. KindConflict when the guard fails.
	TryReserve(ctx context.Context, id uuid.UUID, seats int32) error
	// Adjust applies a positive or negative delta. A delta that would drive
	// reserved outside [0, capacity] is an invariant breach (KindInvariantViolated),
	// never a recoverable conflict.
	Adjust(ctx context.Context, id uuid.UUID, delta int32) error
}

type RSVPRepository interface {
	Create(ctx context.Context, r *rsvp.RSVP) (*RSVPSnapshot, error)
	FindByID(ctx context.Context, id uuid.UUID) (*RSVPSnapshot, error)
	FindByCode(ctx context.Context, code string) (*RSVPSnapshot, error)
	HasActiveForSession(ctx context.Context, sessionID uuid.UUID, email string) (bool, error)
	// HasActiveFutureSameEvent reports an active booking by email on another
	// session of the same event whose start is still ahead of now.
	HasActiveFutureSameEvent(ctx context.Context, eventID uuid.UUID, email string, excludeSessionID uuid.UUID, now time.Time) (bool, error)
	// ActiveByEmailForUpdate locks the holder's active rows for the duration
	// of the cancellation transaction.
	ActiveByEmailForUpdate(ctx context.Context, email string) ([]RSVPSnapshot, error)
	CountByEmail(ctx context.Context, email string) (int64, error)
	UpdateSeats(ctx context.Context, id uuid.UUID, seats int32) error
	MoveToSession(ctx context.Context, id uuid.UUID, sessionID uuid.UUID, seats int32) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status rsvp.Status) error
	UpdateAll(ctx context.Context, id uuid.UUID, sessionID uuid.UUID, name, email string, phone *string, seats int32, status rsvp.Status) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type VerificationRepository interface {
	// Upsert replaces any outstanding code for the email (one live code per
	// email at a time).
	Upsert(ctx context.Context, email, code string, action rsvp.Action, expiresAt time.Time) error
	// Consume deletes the code iff it matches exactly and is unexpired,
	// reporting whether a row was removed. Single use is enforced here.
	Consume(ctx context.Context, email, code string, action rsvp.Action, now time.Time) (bool, error)
}

type EventRepository interface {
	CreateWithSessions(ctx context.Context, e *event.Event) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Update(ctx context.Context, id uuid.UUID, slug, title, description string, isTicketed bool) error
	// ReplaceSessions drops the event's sessions and writes the new set with
	// reserved=0. Cancelled reservation rows referencing the old sessions are
	// purged; callers must first prove no active RSVPs exist.
	ReplaceSessions(ctx context.Context, eventID uuid.UUID, sessions []event.Session) error
	// Delete removes the event, its sessions, and any cancelled reservation
	// rows still referencing them.
	Delete(ctx context.Context, id uuid.UUID) error
	// CountActiveRSVPs counts non-CANCELLED reservations across the event's
	// sessions, locking them against concurrent bookings.
	CountActiveRSVPs(ctx context.Context, eventID uuid.UUID) (int64, error)
}
