package commands

import (
	"context"
	"strings"

	"mokka-api/internal/domain/event"
	"mokka-api/internal/infra"
	"mokka-api/internal/pkg/errs"
	"mokka-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrEventNotFound       = errs.New("event not found")
	ErrEventHasActiveRSVPs = errs.New("event has active reservations")
	ErrDuplicateSlug       = errs.New("an event with this slug already exists")
)

type CreateEventRequest struct {
	Title       string
	Description string
	IsTicketed  bool
	Sessions    []event.SessionInput
}

type UpdateEventRequest struct {
	EventID     uuid.UUID
	Title       string
	Description string
	IsTicketed  bool
	// Sessions nil leaves the existing schedule untouched; non-nil replaces
	// it wholesale, which is only allowed while no active rsvps exist.
	Sessions []event.SessionInput
}

type EventCommands interface {
	Create(ctx context.Context, req CreateEventRequest) (uuid.UUID, error)
	Update(ctx context.Context, req UpdateEventRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type eventUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewEventUseCase(uow shared.UnitOfWork) EventCommands {
	return &eventUseCaseImpl{uow: uow}
}

func (e *eventUseCaseImpl) Create(ctx context.Context, req CreateEventRequest) (uuid.UUID, error) {
	entity, err := event.NewEvent(req.Title, req.Description, req.IsTicketed, req.Sessions)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	err = e.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Events().CreateWithSessions(ctx, entity)
	})
	if err != nil {
		return uuid.Nil, mapEventWriteErr(err)
	}
	return entity.ID(), nil
}

func (e *eventUseCaseImpl) Update(ctx context.Context, req UpdateEventRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return errs.Mark(event.ErrEmptyTitle, ErrDomainValidation)
	}
	if strings.TrimSpace(req.Description) == "" {
		return errs.Mark(event.ErrEmptyDescription, ErrDomainValidation)
	}

	var sessions []event.Session
	if req.Sessions != nil {
		var err error
		sessions, err = event.NewSessions(req.Sessions)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}
	}

	return mapEventWriteErr(e.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		exists, err := tx.Events().Exists(ctx, req.EventID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrEventNotFound
		}

		if sessions != nil {
			// Rewriting the schedule would orphan live bookings, so it is
			// refused outright instead of guessing at a migration.
			count, err := tx.Events().CountActiveRSVPs(ctx, req.EventID)
			if err != nil {
				return err
			}
			if count > 0 {
				return ErrEventHasActiveRSVPs
			}
			if err := tx.Events().ReplaceSessions(ctx, req.EventID, sessions); err != nil {
				return err
			}
		}

		return tx.Events().Update(ctx, req.EventID, event.Slugify(req.Title), req.Title, req.Description, req.IsTicketed)
	}))
}

func (e *eventUseCaseImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return mapEventWriteErr(e.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		count, err := tx.Events().CountActiveRSVPs(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrEventHasActiveRSVPs
		}
		return tx.Events().Delete(ctx, id)
	}))
}

// mapEventWriteErr translates constraint violations that slip past the
// application-level checks: a slug collision on the unique index, or a
// booking racing in between the active-count guard and the session delete.
func mapEventWriteErr(err error) error {
	switch {
	case err == nil:
		return nil
	case infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Mark(err, ErrDuplicateSlug)
	case infra.IsKind(err, infra.KindForeignKeyViolated):
		return errs.Mark(err, ErrEventHasActiveRSVPs)
	}
	return err
}
