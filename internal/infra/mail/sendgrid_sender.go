package mail

import (
	"context"
	"log/slog"
	"net/http"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	defaultSendGridHost = "https://api.sendgrid.com"
	sendEndpoint        = "/v3/mail/send"
	plainTextFallback   = "Your invoice is attached to this message as HTML. Thank you for shopping with us."
)

// sendGridSender implements InvoiceSender using the SendGrid v3 API
type sendGridSender struct {
	apiKey    string
	host      string
	fromEmail string
	fromName  string
	logger    *slog.Logger
}

// NewSendGridSender creates a SendGrid backed invoice sender
func NewSendGridSender(apiKey, fromEmail, fromName string, logger *slog.Logger) service.InvoiceSender {
	return newSendGridSender(apiKey, defaultSendGridHost, fromEmail, fromName, logger)
}

func newSendGridSender(apiKey, host, fromEmail, fromName string, logger *slog.Logger) *sendGridSender {
	return &sendGridSender{
		apiKey:    apiKey,
		host:      host,
		fromEmail: fromEmail,
		fromName:  fromName,
		logger:    logger,
	}
}

// SendInvoice sends one invoice email
func (s *sendGridSender) SendInvoice(ctx context.Context, msg *service.InvoiceMessage) error {
	if msg.RecipientEmail == "" {
		return errors.New("recipient address is empty")
	}
	if s.fromEmail == "" {
		return errors.New("from address is empty")
	}

	message := sgmail.NewSingleEmail(
		sgmail.NewEmail(s.fromName, s.fromEmail),
		msg.Subject,
		sgmail.NewEmail(msg.RecipientName, msg.RecipientEmail),
		plainTextFallback,
		msg.Content,
	)
	for _, attachment := range msg.Attachments {
		a := sgmail.NewAttachment()
		a.SetContent(attachment.Content)
		a.SetType(attachment.ContentType)
		a.SetFilename(attachment.Filename)
		a.SetDisposition("attachment")
		message.AddAttachment(a)
	}

	request := sendgrid.GetRequest(s.apiKey, sendEndpoint, s.host)
	request.Method = http.MethodPost
	request.Body = sgmail.GetRequestBody(message)

	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return errors.Wrap(err, "sendgrid send error")
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)
	if response.StatusCode >= http.StatusBadRequest {
		logger.Error("[SendGrid] Invoice rejected",
			slog.Int("status", response.StatusCode),
			slog.String("body", response.Body),
		)

		return errors.Errorf("sendgrid send failed: status=%d", response.StatusCode)
	}

	logger.Info("[SendGrid] Invoice sent",
		slog.Int("status", response.StatusCode),
		slog.String("to", msg.RecipientEmail),
		slog.String("subject", msg.Subject),
	)

	return nil
}
