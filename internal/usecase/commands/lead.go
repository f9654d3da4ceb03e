package commands

import (
	"context"
	"net/mail"
	"strings"

	"mokka-api/internal/domain/rsvp"
	"mokka-api/internal/pkg/errs"
	"mokka-api/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	LeadKindContact = "contact"
	LeadKindParty   = "party"
)

var ErrInvalidLead = errs.New("invalid lead submission")

type LeadInput struct {
	Kind    string
	Name    string
	Email   string
	Phone   *string
	Message *string
}

type LeadCommands interface {
	Submit(ctx context.Context, in LeadInput) (uuid.UUID, error)
}

type leadUseCaseImpl struct {
	leads shared.LeadRepository
}

func NewLeadUseCase(leads shared.LeadRepository) LeadCommands {
	return &leadUseCaseImpl{leads: leads}
}

func (l *leadUseCaseImpl) Submit(ctx context.Context, in LeadInput) (uuid.UUID, error) {
	if in.Kind != LeadKindContact && in.Kind != LeadKindParty {
		return uuid.Nil, ErrInvalidLead
	}
	if strings.TrimSpace(in.Name) == "" {
		return uuid.Nil, ErrInvalidLead
	}
	email := rsvp.NormalizeEmail(in.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		return uuid.Nil, ErrInvalidLead
	}

	row := &shared.LeadRow{
		ID:      uuid.New(),
		Kind:    in.Kind,
		Name:    strings.TrimSpace(in.Name),
		Email:   email,
		Phone:   in.Phone,
		Message: in.Message,
	}
	if err := l.leads.Create(ctx, row); err != nil {
		return uuid.Nil, err
	}
	return row.ID, nil
}
