package repository

import (
	"context"
	"errors"

	"mokka-api/internal/infra"
	"mokka-api/internal/infra/db"
	"mokka-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const findSessionByIDQuery = `
SELECT s.id, s.event_id, e.title, s.starts_at, s.ends_at, s.capacity, s.reserved
FROM event_sessions s
JOIN events e ON e.id = s.event_id
WHERE s.id = $1`

// tryReserveQuery debits seats in one statement so two concurrent bookings can
// never both read the same free count. The WHERE guard is the capacity check.
const tryReserveQuery = `
UPDATE event_sessions
SET reserved = reserved + $2, updated_at = now()
WHERE id = $1 AND reserved + $2 <= capacity`

// adjustQuery applies a signed delta with both bounds in the guard. Zero rows
// here means the caller's arithmetic is wrong, not that a competitor won.
const adjustQuery = `
UPDATE event_sessions
SET reserved = reserved + $2, updated_at = now()
WHERE id = $1 AND reserved + $2 BETWEEN 0 AND capacity`

type SessionRepository struct {
	conn db.Conn
}

func NewSessionRepository(conn db.Conn) shared.SessionRepository {
	return &SessionRepository{conn: conn}
}

func (r *SessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.SessionSnapshot, error) {
	var s shared.SessionSnapshot
	err := r.conn.QueryRow(ctx, findSessionByIDQuery, id).
		Scan(&s.ID, &s.EventID, &s.EventTitle, &s.Start, &s.End, &s.Capacity, &s.Reserved)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "session not found", err)
		}
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to find session", err)
	}
	return &s, nil
}

func (r *SessionRepository) TryReserve(ctx context.Context, id uuid.UUID, seats int32) error {
	tag, err := r.conn.Exec(ctx, tryReserveQuery, id, seats)
	if err != nil {
		return infra.ClassifyPgErr(err, "failed to reserve seats")
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindConflict, "not enough seats remaining", nil)
	}
	return nil
}

func (r *SessionRepository) Adjust(ctx context.Context, id uuid.UUID, delta int32) error {
	tag, err := r.conn.Exec(ctx, adjustQuery, id, delta)
	if err != nil {
		return infra.ClassifyPgErr(err, "failed to adjust reserved seats")
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindInvariantViolated, "seat adjustment out of bounds", nil)
	}
	return nil
}
