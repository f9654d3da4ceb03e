package commands

import (
	"context"
	"log/slog"
	"time"

	"mokka-api/internal/domain/rsvp"
	"mokka-api/internal/infra"
	"mokka-api/internal/pkg/clock"
	"mokka-api/internal/pkg/errs"
	"mokka-api/internal/usecase/shared"
)

var (
	ErrNoReservations      = errs.New("no reservations exist for this email")
	ErrInvalidAction       = errs.New("unknown verification action")
	ErrVerificationInvalid = errs.New("verification code is wrong, expired, or already used")
)

// VerificationTTL is how long an emailed code stays valid.
const VerificationTTL = 15 * time.Minute

type VerificationCommands interface {
	// Request emails a fresh code bound to one action. A new request
	// replaces any code still outstanding for the email.
	Request(ctx context.Context, email string, action rsvp.Action) error
	// CancelAllVerified consumes the code and cancels every active rsvp
	// under the email in the same transaction, so the code cannot be
	// replayed even if cancellation fails midway.
	CancelAllVerified(ctx context.Context, email, code string) (int, error)
	ModifyVerified(ctx context.Context, email, code string, req ModifyRequest) (*shared.RSVPSnapshot, error)
}

type verificationUseCaseImpl struct {
	uow    shared.UnitOfWork
	mailer shared.Mailer
	clock  clock.Clock
}

func NewVerificationUseCase(uow shared.UnitOfWork, mailer shared.Mailer, clk clock.Clock) VerificationCommands {
	return &verificationUseCaseImpl{
		uow:    uow,
		mailer: mailer,
		clock:  clk,
	}
}

func (v *verificationUseCaseImpl) Request(ctx context.Context, email string, action rsvp.Action) error {
	if !action.IsValid() {
		return ErrInvalidAction
	}
	email = rsvp.NormalizeEmail(email)

	code := rsvp.NewVerificationCode()
	expiresAt := v.clock.Now().Add(VerificationTTL)

	err := v.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		count, err := tx.RSVPs().CountByEmail(ctx, email)
		if err != nil {
			return err
		}
		// Refusing unknown emails keeps the endpoint from minting codes for
		// addresses that never booked anything.
		if count == 0 {
			return ErrNoReservations
		}

		return tx.Verifications().Upsert(ctx, email, code, action, expiresAt)
	})
	if err != nil {
		return err
	}

	if mailErr := v.mailer.SendVerificationCode(ctx, shared.VerificationEmail{
		To:        email,
		Code:      code,
		Action:    action,
		ExpiresAt: expiresAt,
	}); mailErr != nil {
		slog.Warn("failed to send verification code", "error", mailErr.Error())
	}
	return nil
}

func (v *verificationUseCaseImpl) CancelAllVerified(ctx context.Context, email, code string) (int, error) {
	email = rsvp.NormalizeEmail(email)

	var cancelled int
	err := v.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := v.consume(ctx, tx, email, code, rsvp.ActionCancel); err != nil {
			return err
		}

		var err error
		cancelled, err = cancelAllActive(ctx, tx, email)
		return err
	})
	if err != nil {
		return 0, err
	}
	return cancelled, nil
}

func (v *verificationUseCaseImpl) ModifyVerified(ctx context.Context, email, code string, req ModifyRequest) (*shared.RSVPSnapshot, error) {
	email = rsvp.NormalizeEmail(email)

	var out *shared.RSVPSnapshot
	err := v.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := v.consume(ctx, tx, email, code, rsvp.ActionModify); err != nil {
			return err
		}

		target, err := findRSVP(ctx, tx, req.RSVPID)
		if err != nil {
			return err
		}
		if target.Email != email {
			return ErrForbidden
		}

		out, err = applyModification(ctx, tx, target, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// consume enforces exact match, action binding, expiry, and single use in one
// conditional delete. Any mismatch looks the same to the caller.
func (v *verificationUseCaseImpl) consume(ctx context.Context, tx shared.Tx, email, code string, action rsvp.Action) error {
	ok, err := tx.Verifications().Consume(ctx, email, code, action, v.clock.Now())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrVerificationInvalid)
		}
		return err
	}
	if !ok {
		return ErrVerificationInvalid
	}
	return nil
}
