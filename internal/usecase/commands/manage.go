package commands

import (
	"context"

	"mokka-api/internal/domain/rsvp"
	"mokka-api/internal/infra"
	"mokka-api/internal/infra/repository"
	"mokka-api/internal/pkg/clock"
	"mokka-api/internal/pkg/errs"
	"mokka-api/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRSVPNotFound  = errs.New("rsvp not found")
	ErrCodeNotFound  = errs.New("reservation code not found")
	ErrForbidden     = errs.New("reservation code does not grant access to this rsvp")
	ErrRSVPNotActive = errs.New("rsvp is cancelled")
	ErrInvalidStatus = errs.New("invalid rsvp status")
)

type ModifyRequest struct {
	RSVPID       uuid.UUID
	Seats        int32
	NewSessionID *uuid.UUID
}

type AdminUpdateRequest struct {
	RSVPID    uuid.UUID
	SessionID uuid.UUID
	Name      string
	Email     string
	Phone     *string
	Seats     int32
	Status    rsvp.Status
}

type ManageCommands interface {
	// Resolve authenticates a reservation code and returns the booking it
	// names. The code is the sole credential for the self-service flow.
	Resolve(ctx context.Context, code string) (*shared.RSVPSnapshot, error)
	// SelfModify changes seats, and optionally the session, of one rsvp
	// belonging to the code holder's email.
	SelfModify(ctx context.Context, code string, req ModifyRequest) (*shared.RSVPSnapshot, error)
	// SelfCancelAll cancels every active rsvp sharing the code holder's
	// email and returns how many were cancelled. Already-cancelled bookings
	// make the call a no-op, not an error.
	SelfCancelAll(ctx context.Context, code string) (int, error)
	// CancelAllByEmail is the verified-email variant of SelfCancelAll.
	CancelAllByEmail(ctx context.Context, email string) (int, error)
	ModifyByEmail(ctx context.Context, email string, req ModifyRequest) (*shared.RSVPSnapshot, error)
	AdminUpdate(ctx context.Context, req AdminUpdateRequest) (*shared.RSVPSnapshot, error)
	// AdminDelete removes the row entirely, crediting seats back only when
	// the rsvp still held them.
	AdminDelete(ctx context.Context, id uuid.UUID) error
}

type manageUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewManageUseCase(uow shared.UnitOfWork, clk clock.Clock) ManageCommands {
	return &manageUseCaseImpl{uow: uow, clock: clk}
}

func (m *manageUseCaseImpl) Resolve(ctx context.Context, code string) (*shared.RSVPSnapshot, error) {
	var snap *shared.RSVPSnapshot
	err := m.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		found, err := tx.RSVPs().FindByCode(ctx, code)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrCodeNotFound)
			}
			return err
		}
		snap = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (m *manageUseCaseImpl) SelfModify(ctx context.Context, code string, req ModifyRequest) (*shared.RSVPSnapshot, error) {
	var out *shared.RSVPSnapshot
	err := m.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		holder, err := tx.RSVPs().FindByCode(ctx, code)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrCodeNotFound)
			}
			return err
		}

		target, err := findRSVP(ctx, tx, req.RSVPID)
		if err != nil {
			return err
		}
		// The code authorizes every booking made under the same email, not
		// just the one it was issued for.
		if target.Email != holder.Email {
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

func (m *manageUseCaseImpl) ModifyByEmail(ctx context.Context, email string, req ModifyRequest) (*shared.RSVPSnapshot, error) {
	email = rsvp.NormalizeEmail(email)

	var out *shared.RSVPSnapshot
	err := m.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
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

func (m *manageUseCaseImpl) SelfCancelAll(ctx context.Context, code string) (int, error) {
	var cancelled int
	err := m.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		holder, err := tx.RSVPs().FindByCode(ctx, code)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrCodeNotFound)
			}
			return err
		}

		cancelled, err = cancelAllActive(ctx, tx, holder.Email)
		return err
	})
	if err != nil {
		return 0, err
	}
	return cancelled, nil
}

func (m *manageUseCaseImpl) CancelAllByEmail(ctx context.Context, email string) (int, error) {
	email = rsvp.NormalizeEmail(email)

	var cancelled int
	err := m.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		cancelled, err = cancelAllActive(ctx, tx, email)
		return err
	})
	if err != nil {
		return 0, err
	}
	return cancelled, nil
}

func (m *manageUseCaseImpl) AdminUpdate(ctx context.Context, req AdminUpdateRequest) (*shared.RSVPSnapshot, error) {
	if !req.Status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if req.Seats < 1 {
		return nil, errs.Mark(rsvp.ErrInvalidSeats, ErrDomainValidation)
	}
	email := rsvp.NormalizeEmail(req.Email)

	var out *shared.RSVPSnapshot
	err := m.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		target, err := findRSVP(ctx, tx, req.RSVPID)
		if err != nil {
			return err
		}

		// Seats only count against capacity while the booking is active, so
		// the ledger moves by contributions, not raw seat numbers.
		oldContribution := int32(0)
		if target.Status.IsActive() {
			oldContribution = target.Seats
		}
		newContribution := int32(0)
		if req.Status.IsActive() {
			newContribution = req.Seats
		}

		if err := shiftSeats(ctx, tx, target.SessionID, req.SessionID, oldContribution, newContribution); err != nil {
			return err
		}

		if err := markHolderErr(tx.RSVPs().UpdateAll(ctx, target.ID, req.SessionID, req.Name, email, req.Phone, req.Seats, req.Status)); err != nil {
			return err
		}

		out, err = tx.RSVPs().FindByID(ctx, target.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (m *manageUseCaseImpl) AdminDelete(ctx context.Context, id uuid.UUID) error {
	return m.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		target, err := findRSVP(ctx, tx, id)
		if err != nil {
			return err
		}

		// A cancelled rsvp already gave its seats back; crediting again would
		// corrupt the ledger.
		if target.Status.IsActive() {
			if err := tx.Sessions().Adjust(ctx, target.SessionID, -target.Seats); err != nil {
				return err
			}
		}

		return tx.RSVPs().Delete(ctx, target.ID)
	})
}

// applyModification moves seats for one active rsvp, either within its
// session or onto a new one, then persists the row.
func applyModification(ctx context.Context, tx shared.Tx, target *shared.RSVPSnapshot, req ModifyRequest) (*shared.RSVPSnapshot, error) {
	if req.Seats < 1 {
		return nil, errs.Mark(rsvp.ErrInvalidSeats, ErrDomainValidation)
	}
	if !target.Status.IsActive() {
		return nil, ErrRSVPNotActive
	}

	newSessionID := target.SessionID
	if req.NewSessionID != nil {
		newSessionID = *req.NewSessionID
	}

	if err := shiftSeats(ctx, tx, target.SessionID, newSessionID, target.Seats, req.Seats); err != nil {
		return nil, err
	}

	if newSessionID == target.SessionID {
		if err := tx.RSVPs().UpdateSeats(ctx, target.ID, req.Seats); err != nil {
			return nil, err
		}
	} else if err := markHolderErr(tx.RSVPs().MoveToSession(ctx, target.ID, newSessionID, req.Seats)); err != nil {
		return nil, err
	}

	return tx.RSVPs().FindByID(ctx, target.ID)
}

// shiftSeats rebalances the capacity ledger when an rsvp's seats move from
// one (session, count) to another. Growth goes through TryReserve so a full
// session surfaces as a conflict; shrinkage goes through Adjust because
// giving seats back can only fail if the ledger is already corrupt.
func shiftSeats(ctx context.Context, tx shared.Tx, oldSessionID, newSessionID uuid.UUID, oldSeats, newSeats int32) error {
	if oldSessionID == newSessionID {
		delta := newSeats - oldSeats
		switch {
		case delta > 0:
			return markReserveErr(tx.Sessions().TryReserve(ctx, oldSessionID, delta))
		case delta < 0:
			return tx.Sessions().Adjust(ctx, oldSessionID, delta)
		}
		return nil
	}

	if newSeats > 0 {
		// Target session must exist before touching the ledger.
		if _, err := tx.Sessions().FindByID(ctx, newSessionID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrSessionNotFound)
			}
			return err
		}
		if err := markReserveErr(tx.Sessions().TryReserve(ctx, newSessionID, newSeats)); err != nil {
			return err
		}
	}
	if oldSeats > 0 {
		if err := tx.Sessions().Adjust(ctx, oldSessionID, -oldSeats); err != nil {
			return err
		}
	}
	return nil
}

func markReserveErr(err error) error {
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindConflict) {
		return errs.Mark(err, ErrSessionFull)
	}
	return err
}

// markHolderErr catches the active-holder unique index firing on a move: the
// target (session, email) pair already carries an active booking.
func markHolderErr(err error) error {
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindDuplicateKey) &&
		infra.ConstraintName(err) == repository.ConstraintRSVPActiveHolder {
		return errs.Mark(err, ErrDuplicateRSVP)
	}
	return err
}

func cancelAllActive(ctx context.Context, tx shared.Tx, email string) (int, error) {
	active, err := tx.RSVPs().ActiveByEmailForUpdate(ctx, email)
	if err != nil {
		return 0, err
	}

	for _, snap := range active {
		if err := tx.RSVPs().UpdateStatus(ctx, snap.ID, rsvp.StatusCancelled); err != nil {
			return 0, err
		}
		if err := tx.Sessions().Adjust(ctx, snap.SessionID, -snap.Seats); err != nil {
			return 0, err
		}
	}
	return len(active), nil
}

func findRSVP(ctx context.Context, tx shared.Tx, id uuid.UUID) (*shared.RSVPSnapshot, error) {
	snap, err := tx.RSVPs().FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrRSVPNotFound)
		}
		return nil, err
	}
	return snap, nil
}
