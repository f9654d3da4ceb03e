package queries

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"time"

	"mokka-api/internal/pkg/errs"
	"mokka-api/internal/pkg/patch"
	"mokka-api/internal/usecase/readmodel"
	"mokka-api/internal/usecase/shared"
)

type LeadQueries interface {
	// List returns leads newest first; empty kind means all kinds.
	List(ctx context.Context, kind string) ([]readmodel.LeadRM, error)
	// ExportCSV renders the same listing as a CSV download for the admin.
	ExportCSV(ctx context.Context, kind string) ([]byte, error)
}

type leadQueriesImpl struct {
	leads shared.LeadRepository
}

func NewLeadQueries(leads shared.LeadRepository) LeadQueries {
	return &leadQueriesImpl{leads: leads}
}

func (q *leadQueriesImpl) List(ctx context.Context, kind string) ([]readmodel.LeadRM, error) {
	rows, err := q.leads.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	out := make([]readmodel.LeadRM, 0, len(rows))
	for _, row := range rows {
		out = append(out, readmodel.LeadRM{
			ID:        row.ID,
			Kind:      row.Kind,
			Name:      row.Name,
			Email:     row.Email,
			Phone:     row.Phone,
			Message:   row.Message,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}

func (q *leadQueriesImpl) ExportCSV(ctx context.Context, kind string) ([]byte, error) {
	rows, err := q.leads.List(ctx, kind)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	record := []string{"id", "kind", "name", "email", "phone", "message", "created_at"}
	if err := w.Write(record); err != nil {
		return nil, errs.Wrap(err, "failed to write csv header")
	}
	for i, row := range rows {
		record = []string{
			row.ID.String(),
			row.Kind,
			row.Name,
			row.Email,
			patch.Coalesce(row.Phone, ""),
			patch.Coalesce(row.Message, ""),
			row.CreatedAt.Format(time.RFC3339),
		}
		if err := w.Write(record); err != nil {
			return nil, errs.Wrap(err, "failed to write csv row "+strconv.Itoa(i))
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errs.Wrap(err, "failed to flush csv")
	}
	return buf.Bytes(), nil
}
