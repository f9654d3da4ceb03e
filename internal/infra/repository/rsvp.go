package repository

import (
	"context"
	"errors"
	"time"

	"mokka-api/internal/domain/rsvp"
	"mokka-api/internal/infra"
	"mokka-api/internal/infra/db"
	"mokka-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	// ConstraintRSVPCode names the unique index on reservation_code; a
	// violation there is a code collision and worth a retry with a new code.
	ConstraintRSVPCode = "rsvps_reservation_code_key"
	// ConstraintRSVPActiveHolder names the partial unique index on
	// (session_id, email) over active rows. A violation there is a duplicate
	// booking racing past the application-level check.
	ConstraintRSVPActiveHolder = "rsvps_active_session_email_idx"
)

const rsvpColumns = `id, session_id, name, email, phone, seats, status, reservation_code, created_at`

// ON CONFLICT keeps a reservation-code collision from aborting the enclosing
// transaction; the caller sees zero returned rows and retries with a new code.
const createRSVPQuery = `
INSERT INTO rsvps (id, session_id, name, email, phone, seats, status, reservation_code)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (reservation_code) DO NOTHING
RETURNING ` + rsvpColumns

const findRSVPByIDQuery = `
SELECT ` + rsvpColumns + `
FROM rsvps
WHERE id = $1`

const findRSVPByCodeQuery = `
SELECT ` + rsvpColumns + `
FROM rsvps
WHERE reservation_code = $1`

const hasActiveForSessionQuery = `
SELECT EXISTS (
	SELECT 1 FROM rsvps
	WHERE session_id = $1 AND email = $2 AND status <> 'CANCELLED'
)`

const hasActiveFutureSameEventQuery = `
SELECT EXISTS (
	SELECT 1
	FROM rsvps r
	JOIN event_sessions s ON s.id = r.session_id
	WHERE s.event_id = $1
	  AND r.email = $2
	  AND r.session_id <> $3
	  AND r.status <> 'CANCELLED'
	  AND s.starts_at > $4
)`

const activeByEmailForUpdateQuery = `
SELECT ` + rsvpColumns + `
FROM rsvps
WHERE email = $1 AND status <> 'CANCELLED'
ORDER BY created_at
FOR UPDATE`

const countByEmailQuery = `
SELECT count(*) FROM rsvps WHERE email = $1`

const updateRSVPSeatsQuery = `
UPDATE rsvps SET seats = $2, updated_at = now() WHERE id = $1`

const moveRSVPQuery = `
UPDATE rsvps SET session_id = $2, seats = $3, updated_at = now() WHERE id = $1`

const updateRSVPStatusQuery = `
UPDATE rsvps SET status = $2, updated_at = now() WHERE id = $1`

const updateRSVPAllQuery = `
UPDATE rsvps
SET session_id = $2, name = $3, email = $4, phone = $5, seats = $6, status = $7, updated_at = now()
WHERE id = $1`

const deleteRSVPQuery = `
DELETE FROM rsvps WHERE id = $1`

type RSVPRepository struct {
	conn db.Conn
}

func NewRSVPRepository(conn db.Conn) shared.RSVPRepository {
	return &RSVPRepository{conn: conn}
}

func scanRSVP(row pgx.Row) (*shared.RSVPSnapshot, error) {
	var s shared.RSVPSnapshot
	err := row.Scan(&s.ID, &s.SessionID, &s.Name, &s.Email, &s.Phone, &s.Seats, &s.Status, &s.Code, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *RSVPRepository) Create(ctx context.Context, entity *rsvp.RSVP) (*shared.RSVPSnapshot, error) {
	row := r.conn.QueryRow(ctx, createRSVPQuery,
		entity.ID(), entity.SessionID(), entity.Name(), entity.Email(),
		entity.Phone(), entity.Seats(), entity.Status(), entity.Code())
	snap, err := scanRSVP(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NewRepoErr(infra.KindConflict, "reservation code collision", err)
		}
		return nil, infra.ClassifyPgErr(err, "failed to create rsvp")
	}
	return snap, nil
}

func (r *RSVPRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.RSVPSnapshot, error) {
	snap, err := scanRSVP(r.conn.QueryRow(ctx, findRSVPByIDQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "rsvp not found", err)
		}
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to find rsvp", err)
	}
	return snap, nil
}

func (r *RSVPRepository) FindByCode(ctx context.Context, code string) (*shared.RSVPSnapshot, error) {
	snap, err := scanRSVP(r.conn.QueryRow(ctx, findRSVPByCodeQuery, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NewRepoErr(infra.KindNotFound, "reservation code not found", err)
		}
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to find rsvp by code", err)
	}
	return snap, nil
}

func (r *RSVPRepository) HasActiveForSession(ctx context.Context, sessionID uuid.UUID, email string) (bool, error) {
	var exists bool
	if err := r.conn.QueryRow(ctx, hasActiveForSessionQuery, sessionID, email).Scan(&exists); err != nil {
		return false, infra.NewRepoErr(infra.KindDBFailure, "failed to check active rsvp", err)
	}
	return exists, nil
}

func (r *RSVPRepository) HasActiveFutureSameEvent(ctx context.Context, eventID uuid.UUID, email string, excludeSessionID uuid.UUID, now time.Time) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx, hasActiveFutureSameEventQuery, eventID, email, excludeSessionID, now).Scan(&exists)
	if err != nil {
		return false, infra.NewRepoErr(infra.KindDBFailure, "failed to check same-event rsvp", err)
	}
	return exists, nil
}

func (r *RSVPRepository) ActiveByEmailForUpdate(ctx context.Context, email string) ([]shared.RSVPSnapshot, error) {
	rows, err := r.conn.Query(ctx, activeByEmailForUpdateQuery, email)
	if err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to list active rsvps", err)
	}
	defer rows.Close()

	var out []shared.RSVPSnapshot
	for rows.Next() {
		var s shared.RSVPSnapshot
		if err := rows.Scan(&s.ID, &s.SessionID, &s.Name, &s.Email, &s.Phone, &s.Seats, &s.Status, &s.Code, &s.CreatedAt); err != nil {
			return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to scan rsvp row", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to read rsvp rows", err)
	}
	return out, nil
}

func (r *RSVPRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var n int64
	if err := r.conn.QueryRow(ctx, countByEmailQuery, email).Scan(&n); err != nil {
		return 0, infra.NewRepoErr(infra.KindDBFailure, "failed to count rsvps", err)
	}
	return n, nil
}

func (r *RSVPRepository) UpdateSeats(ctx context.Context, id uuid.UUID, seats int32) error {
	return r.execExpectingRow(ctx, updateRSVPSeatsQuery, "failed to update seats", id, seats)
}

func (r *RSVPRepository) MoveToSession(ctx context.Context, id uuid.UUID, sessionID uuid.UUID, seats int32) error {
	return r.execExpectingRow(ctx, moveRSVPQuery, "failed to move rsvp", id, sessionID, seats)
}

func (r *RSVPRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status rsvp.Status) error {
	return r.execExpectingRow(ctx, updateRSVPStatusQuery, "failed to update status", id, status)
}

func (r *RSVPRepository) UpdateAll(ctx context.Context, id uuid.UUID, sessionID uuid.UUID, name, email string, phone *string, seats int32, status rsvp.Status) error {
	return r.execExpectingRow(ctx, updateRSVPAllQuery, "failed to update rsvp", id, sessionID, name, email, phone, seats, status)
}

func (r *RSVPRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.execExpectingRow(ctx, deleteRSVPQuery, "failed to delete rsvp", id)
}

func (r *RSVPRepository) execExpectingRow(ctx context.Context, query, msg string, args ...any) error {
	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return infra.ClassifyPgErr(err, msg)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, msg+": rsvp not found", nil)
	}
	return nil
}
