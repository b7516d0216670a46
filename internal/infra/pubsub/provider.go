package pubsub

import (
	"context"
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// noopPublisher is a no-op implementation when Pub/Sub is disabled
type noopPublisher struct {
	logger *slog.Logger
}

func (p *noopPublisher) PublishInvoiceEvent(_ context.Context, event *service.InvoiceEvent) error {
	p.logger.Debug("[NoopPubSub] Invoice delivery disabled, skipping",
		slog.String("order_id", event.OrderID),
	)

	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc        fx.Lifecycle
	Ctx       context.Context
	Config    *config.Config
	Logger    *slog.Logger
	Deliverer InvoiceDeliverer `optional:"true"`
}

// NewEventPublisher picks the invoice transport named by pubsub.provider. Checkout
// keeps working without one: invoices are then skipped by the no-op publisher.
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	cfg := params.Config.PubSub
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" {
		logger.Info("PubSub not configured, invoices will not be sent")

		return &noopPublisher{logger: logger}, nil
	}

	publisher, err := openPublisher(params, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "pubsub provider %q", cfg.Provider)
	}

	logger.Info("Invoice event publisher ready", slog.String("provider", cfg.Provider))

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	})

	return publisher, nil
}

func openPublisher(params PublisherParams, cfg *config.PubSubConfig) (service.EventPublisher, error) {
	switch cfg.Provider {
	case constants.PubSubProviderInline:
		if params.Deliverer == nil {
			return nil, errors.New("inline delivery needs an invoice deliverer")
		}

		return NewInlinePublisher(params.Deliverer, params.Logger), nil

	case constants.PubSubProviderLocal:
		if cfg.LocalEndpoint == "" {
			return nil, errors.New("localEndpoint is required")
		}

		return NewLocalHTTPPublisher(cfg.LocalEndpoint, params.Logger), nil

	case constants.PubSubProviderGoogle:
		if cfg.ProjectID == "" || cfg.TopicID == "" {
			return nil, errors.New("projectId and topicId are required")
		}

		return NewGooglePubSubPublisher(params.Ctx, cfg.ProjectID, cfg.TopicID, params.Logger)

	default:
		return nil, errors.New("unknown provider")
	}
}
