package mail

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/service"
)

// logSender records invoices in the log instead of mailing them.
// Used in development when no SendGrid key is configured.
type logSender struct {
	logger *slog.Logger
}

// NewLogSender creates an invoice sender that only logs
func NewLogSender(logger *slog.Logger) service.InvoiceSender {
	return &logSender{logger: logger}
}

func (s *logSender) SendInvoice(ctx context.Context, msg *service.InvoiceMessage) error {
	deliverycontext.GetLoggerOrDefault(ctx, s.logger).Info("[LogMailer] Invoice not mailed, no provider configured",
		slog.String("to", msg.RecipientEmail),
		slog.String("subject", msg.Subject),
		slog.Int("content_bytes", len(msg.Content)),
		slog.Int("attachments", len(msg.Attachments)),
	)

	return nil
}
