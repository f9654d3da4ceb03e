package readstore

import (
	"context"

	"mokka-api/internal/infra"
	"mokka-api/internal/infra/db"
	"mokka-api/internal/usecase/readmodel"

	"github.com/google/uuid"
)

const listRSVPRowsQuery = `
SELECT r.id, r.session_id, e.id, e.title, s.starts_at, s.ends_at, s.capacity, s.reserved,
       r.name, r.email, r.phone, r.seats, r.status, r.reservation_code, r.created_at
FROM rsvps r
JOIN event_sessions s ON s.id = r.session_id
JOIN events e ON e.id = s.event_id
ORDER BY s.starts_at, r.created_at`

const rsvpSummaryQuery = `
SELECT count(*),
       count(*) FILTER (WHERE status <> 'CANCELLED'),
       count(*) FILTER (WHERE status = 'CANCELLED'),
       COALESCE(sum(seats) FILTER (WHERE status <> 'CANCELLED'), 0)
FROM rsvps`

const listRSVPsByEmailQuery = `
SELECT r.id, r.session_id, e.id, e.title, s.starts_at,
       r.name, r.email, r.phone, r.seats, r.status, r.reservation_code, r.created_at
FROM rsvps r
JOIN event_sessions s ON s.id = r.session_id
JOIN events e ON e.id = s.event_id
WHERE r.email = $1
ORDER BY s.starts_at`

type RSVPReadStore struct {
	conn db.Conn
}

func NewRSVPReadStore(conn db.Conn) *RSVPReadStore {
	return &RSVPReadStore{conn: conn}
}

// ListGrouped returns every reservation folded under its session, the shape
// the admin dashboard renders directly.
func (r *RSVPReadStore) ListGrouped(ctx context.Context) ([]readmodel.SessionGroupRM, error) {
	rows, err := r.conn.Query(ctx, listRSVPRowsQuery)
	if err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to list rsvps", err)
	}
	defer rows.Close()

	var groups []readmodel.SessionGroupRM
	index := make(map[uuid.UUID]int)

	for rows.Next() {
		var (
			rm       readmodel.RSVPRM
			group    readmodel.SessionGroupRM
			capacity int32
			reserved int32
		)
		err := rows.Scan(&rm.ID, &rm.SessionID, &rm.EventID, &rm.EventTitle,
			&group.StartsAt, &group.EndsAt, &capacity, &reserved,
			&rm.Name, &rm.Email, &rm.Phone, &rm.Seats, &rm.Status, &rm.ReservationCode, &rm.CreatedAt)
		if err != nil {
			return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to scan rsvp row", err)
		}
		rm.SessionStartsAt = group.StartsAt

		i, seen := index[rm.SessionID]
		if !seen {
			group.SessionID = rm.SessionID
			group.EventID = rm.EventID
			group.EventTitle = rm.EventTitle
			group.Capacity = capacity
			group.Reserved = reserved
			group.RSVPs = []readmodel.RSVPRM{}
			groups = append(groups, group)
			i = len(groups) - 1
			index[rm.SessionID] = i
		}
		groups[i].RSVPs = append(groups[i].RSVPs, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to read rsvp rows", err)
	}
	return groups, nil
}

func (r *RSVPReadStore) Summary(ctx context.Context) (*readmodel.RSVPSummaryRM, error) {
	var s readmodel.RSVPSummaryRM
	err := r.conn.QueryRow(ctx, rsvpSummaryQuery).
		Scan(&s.TotalRSVPs, &s.ActiveRSVPs, &s.CancelledRSVPs, &s.SeatsReserved)
	if err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to summarize rsvps", err)
	}
	return &s, nil
}

// ListByEmail returns the holder's reservations with event context, used by
// the public self-service view once a reservation code has been resolved.
func (r *RSVPReadStore) ListByEmail(ctx context.Context, email string) ([]readmodel.RSVPRM, error) {
	rows, err := r.conn.Query(ctx, listRSVPsByEmailQuery, email)
	if err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to list rsvps by email", err)
	}
	defer rows.Close()

	var out []readmodel.RSVPRM
	for rows.Next() {
		var rm readmodel.RSVPRM
		err := rows.Scan(&rm.ID, &rm.SessionID, &rm.EventID, &rm.EventTitle, &rm.SessionStartsAt,
			&rm.Name, &rm.Email, &rm.Phone, &rm.Seats, &rm.Status, &rm.ReservationCode, &rm.CreatedAt)
		if err != nil {
			return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to scan rsvp row", err)
		}
		out = append(out, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to read rsvp rows", err)
	}
	return out, nil
}
