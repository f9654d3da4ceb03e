//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// CreateTestEvent inserts an event with one session and returns both ids.
func CreateTestEvent(t *testing.T, db DBLike, title string, capacity int32, startsAt time.Time) (uuid.UUID, uuid.UUID) {
	t.Helper()

	eventID := uuid.New()
	sessionID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO events (id, slug, title, description, is_ticketed) VALUES ($1, $2, $3, $4, true)",
		eventID, strings.ToLower(strings.ReplaceAll(title, " ", "-")), title, "Seeded for tests")
	require.NoError(t, err)

	_, err = db.Exec(ctx,
		"INSERT INTO event_sessions (id, event_id, starts_at, ends_at, capacity, reserved) VALUES ($1, $2, $3, $4, $5, 0)",
		sessionID, eventID, startsAt, startsAt.Add(2*time.Hour), capacity)
	require.NoError(t, err)

	return eventID, sessionID
}

// CreateTestRSVP inserts an active reservation and bumps the session ledger.
func CreateTestRSVP(t *testing.T, db DBLike, sessionID uuid.UUID, email, code string, seats int32) uuid.UUID {
	t.Helper()

	rsvpID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO rsvps (id, session_id, name, email, seats, status, reservation_code) VALUES ($1, $2, 'Test Holder', $3, $4, 'PENDING', $5)",
		rsvpID, sessionID, email, seats, code)
	require.NoError(t, err)

	_, err = db.Exec(ctx,
		"UPDATE event_sessions SET reserved = reserved + $2 WHERE id = $1",
		sessionID, seats)
	require.NoError(t, err)

	return rsvpID
}

// SeedReferenceData inserts the fixed rows the application expects: a full
// seven-day business-hours schedule.
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO business_hours (weekday, opens_at, closes_at, is_closed)
		SELECT d, '08:00', '18:00', d = 1
		FROM generate_series(0, 6) AS d
		ON CONFLICT (weekday) DO NOTHING;
	`)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// ResetDB truncates all tables and reseeds reference data.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
