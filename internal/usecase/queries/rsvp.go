package queries

import (
	"context"

	"mokka-api/internal/domain/rsvp"
	"mokka-api/internal/infra/readstore"
	"mokka-api/internal/usecase/readmodel"
)

type RSVPQueries interface {
	// ListGrouped is the admin dashboard view: reservations folded under
	// their sessions.
	ListGrouped(ctx context.Context) ([]readmodel.SessionGroupRM, error)
	Summary(ctx context.Context) (*readmodel.RSVPSummaryRM, error)
	// ListByEmail serves the public self-service view after the holder has
	// proven control of the email via a reservation code.
	ListByEmail(ctx context.Context, email string) ([]readmodel.RSVPRM, error)
}

type rsvpQueriesImpl struct {
	store *readstore.RSVPReadStore
}

func NewRSVPQueries(store *readstore.RSVPReadStore) RSVPQueries {
	return &rsvpQueriesImpl{store: store}
}

func (q *rsvpQueriesImpl) ListGrouped(ctx context.Context) ([]readmodel.SessionGroupRM, error) {
	return q.store.ListGrouped(ctx)
}

func (q *rsvpQueriesImpl) Summary(ctx context.Context) (*readmodel.RSVPSummaryRM, error) {
	return q.store.Summary(ctx)
}

func (q *rsvpQueriesImpl) ListByEmail(ctx context.Context, email string) ([]readmodel.RSVPRM, error) {
	return q.store.ListByEmail(ctx, rsvp.NormalizeEmail(email))
}
