package bootstrap

import (
	"mokka-api/internal/infra/mailer"
	"mokka-api/internal/pkg/config"
	"mokka-api/internal/usecase/shared"

	"go.uber.org/fx"
)

var MailerModule = fx.Module("mailer",
	fx.Provide(
		NewMailer,
	),
)

func NewMailer(cfg config.Config) shared.Mailer {
	if cfg.Mailer.Provider == "mailersend" && cfg.Mailer.APIKey != "" {
		return mailer.NewMailerSendMailer(cfg.Mailer)
	}
	return mailer.NewDevMailer()
}
