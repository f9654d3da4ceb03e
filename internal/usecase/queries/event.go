package queries

import (
	"context"
	"time"

	"mokka-api/internal/infra"
	"mokka-api/internal/infra/readstore"
	"mokka-api/internal/pkg/clock"
	"mokka-api/internal/pkg/errs"
	"mokka-api/internal/usecase/readmodel"

	"github.com/google/uuid"
)

var ErrEventNotFound = errs.New("event not found")

type EventQueries interface {
	// List returns all events; upcomingOnly hides events whose sessions are
	// all in the past.
	List(ctx context.Context, upcomingOnly bool) ([]readmodel.EventRM, error)
	GetByID(ctx context.Context, id uuid.UUID) (*readmodel.EventRM, error)
}

type eventQueriesImpl struct {
	store *readstore.EventReadStore
	clock clock.Clock
}

func NewEventQueries(store *readstore.EventReadStore, clk clock.Clock) EventQueries {
	return &eventQueriesImpl{store: store, clock: clk}
}

func (q *eventQueriesImpl) List(ctx context.Context, upcomingOnly bool) ([]readmodel.EventRM, error) {
	var after *time.Time
	if upcomingOnly {
		now := q.clock.Now()
		after = &now
	}
	return q.store.List(ctx, after)
}

func (q *eventQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*readmodel.EventRM, error) {
	ev, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrEventNotFound)
		}
		return nil, err
	}
	return ev, nil
}
