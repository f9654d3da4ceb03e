package repository

import (
	"context"

	"mokka-api/internal/infra"
	"mokka-api/internal/infra/db"
	"mokka-api/internal/usecase/shared"
)

const createLeadQuery = `
INSERT INTO leads (id, kind, name, email, phone, message)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING created_at`

const listLeadsQuery = `
SELECT id, kind, name, email, phone, message, created_at
FROM leads
WHERE $1 = '' OR kind = $1
ORDER BY created_at DESC`

type LeadRepository struct {
	conn db.Conn
}

func NewLeadRepository(conn db.Conn) shared.LeadRepository {
	return &LeadRepository{conn: conn}
}

func (r *LeadRepository) Create(ctx context.Context, lead *shared.LeadRow) error {
	err := r.conn.QueryRow(ctx, createLeadQuery,
		lead.ID, lead.Kind, lead.Name, lead.Email, lead.Phone, lead.Message).
		Scan(&lead.CreatedAt)
	if err != nil {
		return infra.ClassifyPgErr(err, "failed to create lead")
	}
	return nil
}

func (r *LeadRepository) List(ctx context.Context, kind string) ([]shared.LeadRow, error) {
	rows, err := r.conn.Query(ctx, listLeadsQuery, kind)
	if err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to list leads", err)
	}
	defer rows.Close()

	var out []shared.LeadRow
	for rows.Next() {
		var lead shared.LeadRow
		if err := rows.Scan(&lead.ID, &lead.Kind, &lead.Name, &lead.Email, &lead.Phone, &lead.Message, &lead.CreatedAt); err != nil {
			return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to scan lead", err)
		}
		out = append(out, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.NewRepoErr(infra.KindDBFailure, "failed to read leads", err)
	}
	return out, nil
}
