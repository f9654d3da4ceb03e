package readstore

import (
	"context"
	"time"

	"mokka-api/internal/infra"
	"mokka-api/internal/infra/db"
	"mokka-api/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const listEventsQuery = `
SELECT e.id, e.slug, e.title, e.description, e.is_ticketed, e.created_at,
       s.id, s.starts_at, s.ends_at, s.capacity, s.reserved
FROM events e
LEFT JOIN event_sessions s ON s.event_id = e.id
WHERE $1::timestamptz IS NULL OR s.ends_at >= $1
ORDER BY s.starts_at NULLS LAST, e.created_at`

const findEventQuery = `
SELECT e.id, e.slug, e.title, e.description, e.is_ticketed, e.created_at,
       s.id, s.starts_at, s.ends_at, s.capacity, s.reserved
FROM events e
LEFT JOIN event_sessions s ON s.event_id = e.id
WHERE e.id = $1
ORDER BY s.starts_at`

type EventReadStore struct {
	conn db.Conn
}

func NewEventReadStore(conn db.Conn) *EventReadStore {
	return &EventReadStore{conn: conn}
}

// List returns events with their sessions and live availability. A non-nil
// `after` hides events whose sessions have all ended.
func (r *EventReadStore) List(ctx context.Context, after *time.Time) ([]readmodel.EventRM, error) {
	rows, err := r.conn.Query(ctx, listEventsQuery, after)
	if err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to list events", err)
	}
	defer rows.Close()

	events, err := collectEventRows(rows)
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventReadStore) FindByID(ctx context.Context, id uuid.UUID) (*readmodel.EventRM, error) {
	rows, err := r.conn.Query(ctx, findEventQuery, id)
	if err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to find event", err)
	}
	defer rows.Close()

	events, err := collectEventRows(rows)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, infra.NewRepoErr(infra.KindNotFound, "event not found", pgx.ErrNoRows)
	}
	return &events[0], nil
}

// collectEventRows folds the joined rows into events; session columns are
// nullable because of the LEFT JOIN.
func collectEventRows(rows pgx.Rows) ([]readmodel.EventRM, error) {
	var out []readmodel.EventRM
	index := make(map[uuid.UUID]int)

	for rows.Next() {
		var (
			ev        readmodel.EventRM
			sessionID *uuid.UUID
			startsAt  *time.Time
			endsAt    *time.Time
			capacity  *int32
			reserved  *int32
		)
		err := rows.Scan(&ev.ID, &ev.Slug, &ev.Title, &ev.Description, &ev.IsTicketed, &ev.CreatedAt,
			&sessionID, &startsAt, &endsAt, &capacity, &reserved)
		if err != nil {
			return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to scan event row", err)
		}

		i, seen := index[ev.ID]
		if !seen {
			ev.Sessions = []readmodel.SessionRM{}
			out = append(out, ev)
			i = len(out) - 1
			index[ev.ID] = i
		}
		if sessionID != nil {
			out[i].Sessions = append(out[i].Sessions, readmodel.SessionRM{
				ID:        *sessionID,
				EventID:   ev.ID,
				StartsAt:  *startsAt,
				EndsAt:    *endsAt,
				Capacity:  *capacity,
				Reserved:  *reserved,
				Available: *capacity - *reserved,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to read event rows", err)
	}
	return out, nil
}
