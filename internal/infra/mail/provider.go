package mail

import (
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// SenderParams holds dependencies for InvoiceSender, injected by Fx
type SenderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewInvoiceSender picks SendGrid when an API key is configured and the log sender otherwise
func NewInvoiceSender(params SenderParams) (service.InvoiceSender, error) {
	cfg := params.Config.Mail
	if cfg == nil || cfg.SendGridAPIKey == "" {
		params.Logger.Info("Mail not configured, invoices will only be logged")

		return NewLogSender(params.Logger), nil
	}

	if cfg.FromEmail == "" {
		return nil, errors.New("mail.fromEmail is required when SendGrid is enabled")
	}

	params.Logger.Info("Using SendGrid invoice sender", slog.String("from", cfg.FromEmail))

	return NewSendGridSender(cfg.SendGridAPIKey, cfg.FromEmail, cfg.FromName, params.Logger), nil
}
