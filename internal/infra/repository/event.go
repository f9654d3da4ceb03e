package repository

import (
	"context"

	"mokka-api/internal/domain/event"
	"mokka-api/internal/infra"
	"mokka-api/internal/infra/db"
	"mokka-api/internal/usecase/shared"

	"github.com/google/uuid"
)

const createEventQuery = `
INSERT INTO events (id, slug, title, description, is_ticketed)
VALUES ($1, $2, $3, $4, $5)`

const createSessionQuery = `
INSERT INTO event_sessions (id, event_id, starts_at, ends_at, capacity, reserved)
VALUES ($1, $2, $3, $4, $5, 0)`

const eventExistsQuery = `
SELECT EXISTS (SELECT 1 FROM events WHERE id = $1)`

const updateEventQuery = `
UPDATE events
SET slug = $2, title = $3, description = $4, is_ticketed = $5, updated_at = now()
WHERE id = $1`

const deleteEventSessionsQuery = `
DELETE FROM event_sessions WHERE event_id = $1`

// Cancelled reservations are kept for audit only as long as their session
// exists; they must go first or the session delete trips the FK.
const deleteCancelledRSVPsQuery = `
DELETE FROM rsvps
WHERE status = 'CANCELLED'
  AND session_id IN (SELECT id FROM event_sessions WHERE event_id = $1)`

const deleteEventQuery = `
DELETE FROM events WHERE id = $1`

// countActiveRSVPsQuery locks matching rows so a concurrent booking cannot
// slip in between the count and the destructive statement that follows it.
const countActiveRSVPsQuery = `
SELECT count(*)
FROM (
	SELECT r.id
	FROM rsvps r
	JOIN event_sessions s ON s.id = r.session_id
	WHERE s.event_id = $1 AND r.status <> 'CANCELLED'
	FOR UPDATE OF r
) locked`

type EventRepository struct {
	conn db.Conn
}

func NewEventRepository(conn db.Conn) shared.EventRepository {
	return &EventRepository{conn: conn}
}

func (r *EventRepository) CreateWithSessions(ctx context.Context, e *event.Event) error {
	_, err := r.conn.Exec(ctx, createEventQuery, e.ID(), e.Slug(), e.Title(), e.Description(), e.IsTicketed())
	if err != nil {
		return infra.ClassifyPgErr(err, "failed to create event")
	}
	for _, s := range e.Sessions() {
		if _, err := r.conn.Exec(ctx, createSessionQuery, s.ID, e.ID(), s.Start, s.End, s.Capacity); err != nil {
			return infra.ClassifyPgErr(err, "failed to create event session")
		}
	}
	return nil
}

func (r *EventRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.conn.QueryRow(ctx, eventExistsQuery, id).Scan(&exists); err != nil {
		return false, infra.NewRepoErr(infra.KindDBFailure, "failed to check event", err)
	}
	return exists, nil
}

func (r *EventRepository) Update(ctx context.Context, id uuid.UUID, slug, title, description string, isTicketed bool) error {
	tag, err := r.conn.Exec(ctx, updateEventQuery, id, slug, title, description, isTicketed)
	if err != nil {
		return infra.ClassifyPgErr(err, "failed to update event")
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "event not found", nil)
	}
	return nil
}

func (r *EventRepository) ReplaceSessions(ctx context.Context, eventID uuid.UUID, sessions []event.Session) error {
	if _, err := r.conn.Exec(ctx, deleteCancelledRSVPsQuery, eventID); err != nil {
		return infra.ClassifyPgErr(err, "failed to delete cancelled rsvps")
	}
	if _, err := r.conn.Exec(ctx, deleteEventSessionsQuery, eventID); err != nil {
		return infra.ClassifyPgErr(err, "failed to delete event sessions")
	}
	for _, s := range sessions {
		if _, err := r.conn.Exec(ctx, createSessionQuery, s.ID, eventID, s.Start, s.End, s.Capacity); err != nil {
			return infra.ClassifyPgErr(err, "failed to create event session")
		}
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.conn.Exec(ctx, deleteCancelledRSVPsQuery, id); err != nil {
		return infra.ClassifyPgErr(err, "failed to delete cancelled rsvps")
	}
	if _, err := r.conn.Exec(ctx, deleteEventSessionsQuery, id); err != nil {
		return infra.ClassifyPgErr(err, "failed to delete event sessions")
	}
	tag, err := r.conn.Exec(ctx, deleteEventQuery, id)
	if err != nil {
		return infra.ClassifyPgErr(err, "failed to delete event")
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "event not found", nil)
	}
	return nil
}

func (r *EventRepository) CountActiveRSVPs(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var n int64
	if err := r.conn.QueryRow(ctx, countActiveRSVPsQuery, eventID).Scan(&n); err != nil {
		return 0, infra.NewRepoErr(infra.KindDBFailure, "failed to count active rsvps", err)
	}
	return n, nil
}
