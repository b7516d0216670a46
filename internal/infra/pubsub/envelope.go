package pubsub

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"storefront/internal/domain/service"

	"github.com/pkg/errors"
)

const localSubscription = "projects/local/subscriptions/invoice-sub"

// PushEnvelope is the body Google Pub/Sub posts to push endpoints.
type PushEnvelope struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// invoiceAttributes are the message attributes used for filtering and tracing.
func invoiceAttributes(event *service.InvoiceEvent) map[string]string {
	attributes := map[string]string{
		"event_type": "invoice",
		"order_id":   event.OrderID,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return attributes
}

// NewPushEnvelope wraps event the way a push subscription delivers it.
func NewPushEnvelope(event *service.InvoiceEvent) (*PushEnvelope, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	envelope := &PushEnvelope{Subscription: localSubscription}
	envelope.Message.Data = base64.StdEncoding.EncodeToString(data)
	envelope.Message.Attributes = invoiceAttributes(event)
	envelope.Message.MessageID = event.OrderID
	envelope.Message.PublishTime = time.Now().UTC().Format(time.RFC3339)

	return envelope, nil
}

// DecodeInvoiceEvent extracts the invoice event carried by the envelope.
func (e *PushEnvelope) DecodeInvoiceEvent() (*service.InvoiceEvent, error) {
	data, err := base64.StdEncoding.DecodeString(e.Message.Data)
	if err != nil {
		return nil, errors.Wrap(err, "decode message data")
	}

	var event service.InvoiceEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, errors.Wrap(err, "parse invoice event")
	}

	return &event, nil
}
