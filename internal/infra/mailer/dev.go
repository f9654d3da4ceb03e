package mailer

import (
	"context"
	"log/slog"

	"mokka-api/internal/usecase/shared"
)

// DevMailer logs what would have been sent. It is the default when no
// provider is configured, so local booking flows work without an API key.
type DevMailer struct{}

func NewDevMailer() shared.Mailer {
	return &DevMailer{}
}

func (m *DevMailer) SendReservationConfirmation(_ context.Context, email shared.ReservationEmail) error {
	slog.Info("reservation confirmation (dev mailer)",
		"to", email.To,
		"event", email.EventTitle,
		"seats", email.Seats,
		"code", email.Code)
	return nil
}

func (m *DevMailer) SendVerificationCode(_ context.Context, email shared.VerificationEmail) error {
	slog.Info("verification code (dev mailer)",
		"to", email.To,
		"code", email.Code,
		"action", string(email.Action))
	return nil
}
