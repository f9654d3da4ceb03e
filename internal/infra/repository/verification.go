package repository

import (
	"context"
	"time"

	"mokka-api/internal/domain/rsvp"
	"mokka-api/internal/infra"
	"mokka-api/internal/infra/db"
	"mokka-api/internal/usecase/shared"
)

// One live code per email: a new request silently replaces the old code.
const upsertVerificationQuery = `
INSERT INTO verification_codes (email, code, action, expires_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (email) DO UPDATE
SET code = EXCLUDED.code, action = EXCLUDED.action, expires_at = EXCLUDED.expires_at, created_at = now()`

// Single use: the delete only succeeds against an exact, unexpired match, so
// a second Verify with the same code finds nothing.
const consumeVerificationQuery = `
DELETE FROM verification_codes
WHERE email = $1 AND code = $2 AND action = $3 AND expires_at > $4`

type VerificationRepository struct {
	conn db.Conn
}

func NewVerificationRepository(conn db.Conn) shared.VerificationRepository {
	return &VerificationRepository{conn: conn}
}

func (r *VerificationRepository) Upsert(ctx context.Context, email, code string, action rsvp.Action, expiresAt time.Time) error {
	if _, err := r.conn.Exec(ctx, upsertVerificationQuery, email, code, action, expiresAt); err != nil {
		return infra.ClassifyPgErr(err, "failed to upsert verification code")
	}
	return nil
}

func (r *VerificationRepository) Consume(ctx context.Context, email, code string, action rsvp.Action, now time.Time) (bool, error) {
	tag, err := r.conn.Exec(ctx, consumeVerificationQuery, email, code, action, now)
	if err != nil {
		return false, infra.ClassifyPgErr(err, "failed to consume verification code")
	}
	return tag.RowsAffected() > 0, nil
}
