package mailer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"mokka-api/internal/pkg/config"
	"mokka-api/internal/pkg/errs"
	"mokka-api/internal/usecase/shared"

	"github.com/mailersend/mailersend-go"
)

type MailerSendMailer struct {
	client *mailersend.Mailersend
	from   mailersend.From
}

func NewMailerSendMailer(cfg config.MailerConfig) shared.Mailer {
	return &MailerSendMailer{
		client: mailersend.NewMailersend(cfg.APIKey),
		from: mailersend.From{
			Name:  cfg.FromName,
			Email: cfg.FromEmail,
		},
	}
}

func (m *MailerSendMailer) SendReservationConfirmation(ctx context.Context, email shared.ReservationEmail) error {
	subject := fmt.Sprintf("Your reservation for %s", email.EventTitle)
	text := fmt.Sprintf(
		"Hi %s,\n\nYour reservation for %s on %s is in. Seats: %d.\nReservation code: %s\n\nKeep the code, it is how you change or cancel the booking.",
		email.Name, email.EventTitle, email.StartsAt.Format("Mon, 2 Jan 2006 15:04"), email.Seats, email.Code)
	html := fmt.Sprintf(
		`<p>Hi %s,</p><p>Your reservation for <b>%s</b> on %s is in. Seats: %d.</p><p>Reservation code: <b>%s</b></p><p>Keep the code, it is how you change or cancel the booking.</p>`,
		email.Name, email.EventTitle, email.StartsAt.Format("Mon, 2 Jan 2006 15:04"), email.Seats, email.Code)
	return m.send(ctx, email.To, email.Name, subject, text, html)
}

func (m *MailerSendMailer) SendVerificationCode(ctx context.Context, email shared.VerificationEmail) error {
	subject := "Your verification code"
	text := fmt.Sprintf("Your code is %s. It expires at %s.", email.Code, email.ExpiresAt.Format("15:04"))
	html := fmt.Sprintf(`<p>Your code is <b>%s</b>. It expires at %s.</p>`, email.Code, email.ExpiresAt.Format("15:04"))
	return m.send(ctx, email.To, "", subject, text, html)
}

func (m *MailerSendMailer) send(ctx context.Context, toEmail, toName, subject, text, html string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(subject)
	msg.SetText(text)
	msg.SetHTML(html)

	res, err := m.client.Email.Send(ctx, msg)
	if err != nil {
		return errs.Wrap(err, "failed to send email")
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(res.Body)
		return errs.New(fmt.Sprintf("mailersend error: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(body))))
	}
	return nil
}
