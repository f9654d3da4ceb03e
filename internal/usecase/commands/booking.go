package commands

import (
	"context"
	"log/slog"

	"mokka-api/internal/domain/rsvp"
	"mokka-api/internal/infra"
	"mokka-api/internal/infra/repository"
	"mokka-api/internal/pkg/clock"
	"mokka-api/internal/pkg/errs"
	"mokka-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound     = errs.New("session not found")
	ErrDomainValidation    = errs.New("domain validation error")
	ErrSeatsExceedCapacity = errs.New("requested seats exceed session capacity")
	ErrSessionFull         = errs.New("not enough seats remaining")
	ErrDuplicateRSVP       = errs.New("active reservation already exists for this session")
	ErrDoubleBooking       = errs.New("active reservation already exists for another session of this event")
	ErrCodeGeneration      = errs.New("failed to generate a unique reservation code")
)

// maxCodeAttempts bounds the reservation-code collision retry loop. With a
// 36^8 code space, exhausting it means the generator is broken.
const maxCodeAttempts = 10

type BookRequest struct {
	SessionID uuid.UUID
	Name      string
	Email     string
	Phone     *string
	Seats     int32
}

type BookingCommands interface {
	Book(ctx context.Context, req BookRequest) (*shared.RSVPSnapshot, error)
}

type bookingUseCaseImpl struct {
	uow    shared.UnitOfWork
	mailer shared.Mailer
	clock  clock.Clock
}

func NewBookingUseCase(uow shared.UnitOfWork, mailer shared.Mailer, clk clock.Clock) BookingCommands {
	return &bookingUseCaseImpl{
		uow:    uow,
		mailer: mailer,
		clock:  clk,
	}
}

func (b *bookingUseCaseImpl) Book(ctx context.Context, req BookRequest) (*shared.RSVPSnapshot, error) {
	entity, err := rsvp.New(req.SessionID, req.Name, req.Email, req.Phone, req.Seats)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var (
		created *shared.RSVPSnapshot
		session *shared.SessionSnapshot
	)
	err = b.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		session, err = tx.Sessions().FindByID(ctx, req.SessionID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrSessionNotFound)
			}
			return err
		}

		// A request that could never fit is a caller mistake, distinct from a
		// session that is merely full right now.
		if entity.Seats() > session.Capacity {
			return ErrSeatsExceedCapacity
		}

		dup, err := tx.RSVPs().HasActiveForSession(ctx, session.ID, entity.Email())
		if err != nil {
			return err
		}
		if dup {
			return ErrDuplicateRSVP
		}

		double, err := tx.RSVPs().HasActiveFutureSameEvent(ctx, session.EventID, entity.Email(), session.ID, b.clock.Now())
		if err != nil {
			return err
		}
		if double {
			return ErrDoubleBooking
		}

		if err := tx.Sessions().TryReserve(ctx, session.ID, entity.Seats()); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return errs.Mark(err, ErrSessionFull)
			}
			return err
		}

		created, err = b.createWithUniqueCode(ctx, tx, entity)
		return err
	})
	if err != nil {
		return nil, err
	}

	// Post-commit; a failed confirmation never undoes a committed booking.
	if mailErr := b.mailer.SendReservationConfirmation(ctx, shared.ReservationEmail{
		To:         created.Email,
		Name:       created.Name,
		EventTitle: session.EventTitle,
		StartsAt:   session.Start,
		Seats:      created.Seats,
		Code:       created.Code,
	}); mailErr != nil {
		slog.Warn("failed to send reservation confirmation", "rsvp_id", created.ID, "error", mailErr.Error())
	}

	return created, nil
}

func (b *bookingUseCaseImpl) createWithUniqueCode(ctx context.Context, tx shared.Tx, entity *rsvp.RSVP) (*shared.RSVPSnapshot, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		created, err := tx.RSVPs().Create(ctx, entity)
		if err == nil {
			return created, nil
		}
		if infra.IsKind(err, infra.KindConflict) {
			entity.Regenerate()
			continue
		}
		if infra.IsKind(err, infra.KindDuplicateKey) &&
			infra.ConstraintName(err) == repository.ConstraintRSVPActiveHolder {
			// Lost the race with another booking by the same holder.
			return nil, errs.Mark(err, ErrDuplicateRSVP)
		}
		return nil, err
	}
	return nil, ErrCodeGeneration
}
