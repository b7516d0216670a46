package pubsub

import (
	"context"
	"log/slog"
	"sync"
	"time"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultInlineDeliveryTimeout = 30 * time.Second

// InvoiceDeliverer is the part of the invoice use case the inline publisher drives.
type InvoiceDeliverer interface {
	DeliverInvoice(ctx context.Context, event *service.InvoiceEvent) error
}

// inlinePublisher delivers invoices in-process on a background goroutine.
// The publish call returns as soon as delivery was scheduled.
type inlinePublisher struct {
	deliverer InvoiceDeliverer
	logger    *slog.Logger
	timeout   time.Duration

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewInlinePublisher creates a publisher that hands events straight to deliverer.
func NewInlinePublisher(deliverer InvoiceDeliverer, logger *slog.Logger) service.EventPublisher {
	return &inlinePublisher{
		deliverer: deliverer,
		logger:    logger,
		timeout:   defaultInlineDeliveryTimeout,
	}
}

func (p *inlinePublisher) PublishInvoiceEvent(ctx context.Context, event *service.InvoiceEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return errors.New("inline publisher is closed")
	}

	detached := deliverycontext.Detach(ctx, p.logger)
	logger := deliverycontext.GetLoggerOrDefault(detached, p.logger)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		deliveryCtx, cancel := context.WithTimeout(detached, p.timeout)
		defer cancel()

		if err := p.deliverer.DeliverInvoice(deliveryCtx, event); err != nil {
			logger.Error("[InlinePubSub] Invoice delivery failed",
				slog.String("order_id", event.OrderID),
				slog.Any("error", err),
			)
		}
	}()

	return nil
}

// Close waits for in-flight deliveries.
func (p *inlinePublisher) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.wg.Wait()

	return nil
}
