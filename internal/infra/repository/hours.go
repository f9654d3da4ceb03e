package repository

import (
	"context"
	"time"

	"mokka-api/internal/infra"
	"mokka-api/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const upsertBusinessHoursQuery = `
INSERT INTO business_hours (weekday, opens_at, closes_at, is_closed)
VALUES ($1, $2, $3, $4)
ON CONFLICT (weekday) DO UPDATE
SET opens_at = EXCLUDED.opens_at, closes_at = EXCLUDED.closes_at, is_closed = EXCLUDED.is_closed`

const listBusinessHoursQuery = `
SELECT weekday, opens_at, closes_at, is_closed
FROM business_hours
ORDER BY weekday`

const addHolidayQuery = `
INSERT INTO holidays (id, holiday_date, name)
VALUES ($1, $2, $3)`

const removeHolidayQuery = `
DELETE FROM holidays WHERE id = $1`

const listHolidaysQuery = `
SELECT id, holiday_date, name
FROM holidays
WHERE holiday_date >= $1
ORDER BY holiday_date`

type HoursRepository struct {
	pool *pgxpool.Pool
}

// NewHoursRepository takes the pool rather than a Conn because ReplaceWeek
// opens its own short transaction.
func NewHoursRepository(pool *pgxpool.Pool) shared.HoursRepository {
	return &HoursRepository{pool: pool}
}

func (r *HoursRepository) ReplaceWeek(ctx context.Context, rows []shared.BusinessHoursRow) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return infra.NewRepoErr(infra.KindDBFailure, "failed to begin hours transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, row := range rows {
		if _, err := tx.Exec(ctx, upsertBusinessHoursQuery, row.Weekday, row.OpensAt, row.ClosesAt, row.IsClosed); err != nil {
			return infra.ClassifyPgErr(err, "failed to upsert business hours")
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return infra.NewRepoErr(infra.KindDBFailure, "failed to commit business hours", err)
	}
	return nil
}

func (r *HoursRepository) ListWeek(ctx context.Context) ([]shared.BusinessHoursRow, error) {
	rows, err := r.pool.Query(ctx, listBusinessHoursQuery)
	if err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to list business hours", err)
	}
	defer rows.Close()

	var out []shared.BusinessHoursRow
	for rows.Next() {
		var row shared.BusinessHoursRow
		if err := rows.Scan(&row.Weekday, &row.OpensAt, &row.ClosesAt, &row.IsClosed); err != nil {
			return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to scan business hours", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to read business hours", err)
	}
	return out, nil
}

func (r *HoursRepository) AddHoliday(ctx context.Context, h *shared.HolidayRow) error {
	if _, err := r.pool.Exec(ctx, addHolidayQuery, h.ID, h.Date, h.Name); err != nil {
		return infra.ClassifyPgErr(err, "failed to add holiday")
	}
	return nil
}

func (r *HoursRepository) RemoveHoliday(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, removeHolidayQuery, id)
	if err != nil {
		return infra.ClassifyPgErr(err, "failed to remove holiday")
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr(infra.KindNotFound, "holiday not found", nil)
	}
	return nil
}

func (r *HoursRepository) ListHolidays(ctx context.Context, from time.Time) ([]shared.HolidayRow, error) {
	rows, err := r.pool.Query(ctx, listHolidaysQuery, from)
	if err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to list holidays", err)
	}
	defer rows.Close()

	var out []shared.HolidayRow
	for rows.Next() {
		var h shared.HolidayRow
		if err := rows.Scan(&h.ID, &h.Date, &h.Name); err != nil {
			return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to scan holiday", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to read holidays", err)
	}
	return out, nil
}
