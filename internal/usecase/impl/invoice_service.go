package impl

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const orderQRFilename = "order-qr.png"

type invoiceService struct {
	sender  service.InvoiceSender
	notices notifier
	logger  *slog.Logger
}

// InvoiceServiceParams holds dependencies for InvoiceService, injected by Fx.
// Notifications is absent in the standalone invoice worker.
type InvoiceServiceParams struct {
	fx.In

	Sender        service.InvoiceSender
	Notifications usecase.NotificationUsecase `optional:"true"`
	Logger        *slog.Logger
}

// NewInvoiceService is the constructor for invoiceService.
func NewInvoiceService(params InvoiceServiceParams) usecase.InvoiceUsecase {
	return &invoiceService{
		sender:  params.Sender,
		notices: notifier{feed: params.Notifications},
		logger:  params.Logger,
	}
}

// DeliverInvoice sends the invoice to the customer and then to the operator.
// Both sends are attempted; the returned error joins every failure.
func (srv *invoiceService) DeliverInvoice(ctx context.Context, event *service.InvoiceEvent) error {
	if event == nil || strings.TrimSpace(event.CustomerEmail) == "" {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("invoice event without customer email"))
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger).With(
		slog.String("order_id", event.OrderID),
		slog.String("request_id", event.RequestID),
	)

	var attachments []service.Attachment
	if event.OrderQRCode != "" {
		attachments = append(attachments, service.Attachment{
			Filename:    orderQRFilename,
			ContentType: "image/png",
			Content:     event.OrderQRCode,
		})
	}

	recipients := []service.InvoiceMessage{{
		RecipientEmail: event.CustomerEmail,
		RecipientName:  event.CustomerName,
		Subject:        event.Subject,
		Content:        event.Content,
		Attachments:    attachments,
	}}
	if event.OperatorEmail != "" {
		recipients = append(recipients, service.InvoiceMessage{
			RecipientEmail: event.OperatorEmail,
			RecipientName:  event.CustomerName,
			Subject:        fmt.Sprintf("[Order %s] %s", event.OrderID, event.Subject),
			Content:        event.Content,
			Attachments:    attachments,
		})
	}

	var errs []error
	for i := range recipients {
		msg := &recipients[i]
		if err := srv.sender.SendInvoice(ctx, msg); err != nil {
			logger.Error("Failed to send invoice", slog.String("recipient", msg.RecipientEmail), slog.Any("error", err))
			errs = append(errs, errors.Wrapf(err, "send invoice to %s", msg.RecipientEmail))

			continue
		}
		logger.Info("Invoice sent", slog.String("recipient", msg.RecipientEmail))
	}

	client := entity.ClientID(event.ClientID)
	if len(errs) > 0 {
		srv.notices.failure(client, domainerrors.ErrInvoiceDeliveryFailed)

		return errors.Wrap(stderrors.Join(errs...), domainerrors.ErrInvoiceDeliveryFailed.Message())
	}

	srv.notices.success(client, "INVOICE_SENT", "Invoice sent to "+event.CustomerEmail)

	return nil
}
