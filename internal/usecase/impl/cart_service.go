package impl

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface.
// Each client's cart is restored from the repository on first access and
// mirrored back to it on every mutation.
type cartService struct {
	cartRepo repository.CartRepository
	catalog  usecase.CatalogUsecase
	notices  notifier
	logger   *slog.Logger

	locks *ClientLocks
	mu    sync.Mutex
	carts map[entity.ClientID]*entity.Cart
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo      repository.CartRepository
	Catalog       usecase.CatalogUsecase
	Notifications usecase.NotificationUsecase
	Logger        *slog.Logger
	Locks         *ClientLocks `optional:"true"`
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		cartRepo: params.CartRepo,
		catalog:  params.Catalog,
		notices:  notifier{feed: params.Notifications},
		logger:   params.Logger,
		locks:    locksOrNew(params.Locks),
		carts:    make(map[entity.ClientID]*entity.Cart),
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetCart returns a copy of the client's cart.
func (srv *cartService) GetCart(ctx context.Context, client entity.ClientID) (*entity.Cart, error) {
	ctx, unlock := srv.locks.lock(ctx, client)
	defer unlock()

	cart, err := srv.restore(ctx, client)
	if err != nil {
		return nil, err
	}

	return cart.Clone(), nil
}

// AddItem resolves the product in the catalog and adds it to the cart.
func (srv *cartService) AddItem(ctx context.Context, client entity.ClientID, input usecase.AddToCartInput) (*entity.Cart, error) {
	product, err := srv.catalog.GetProduct(input.ProductID)
	if err != nil {
		srv.notices.failure(client, err)

		return nil, errors.WithStack(err)
	}

	return srv.AddProduct(ctx, client, *product, input.Quantity)
}

// AddProduct merges quantity of product into the cart. A zero quantity means one.
func (srv *cartService) AddProduct(ctx context.Context, client entity.ClientID, product entity.Product, quantity int) (*entity.Cart, error) {
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 || quantity > entity.MaxLineQuantity {
		srv.notices.failure(client, domainerrors.ErrInvalidQuantity)

		return nil, errors.WithStack(domainerrors.ErrInvalidQuantity)
	}

	cart, err := srv.mutate(ctx, client, func(cart *entity.Cart) error {
		if !cart.Add(product, quantity) {
			return domainerrors.ErrInvalidQuantity.WithDetails(
				fmt.Sprintf("%s would exceed %d in the cart", product.Title, entity.MaxLineQuantity))
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Added product to cart",
		slog.String("client_id", client.String()),
		slog.String("product_id", product.ID.String()),
		slog.Int("quantity", cart.Quantity(product.ID)),
	)
	srv.notices.success(client, "CART_ITEM_ADDED", fmt.Sprintf("%s added to cart", product.Title))

	return cart, nil
}

// RemoveItem deletes the product's line. Removing an absent product is a no-op.
func (srv *cartService) RemoveItem(ctx context.Context, client entity.ClientID, productID entity.ProductID) (*entity.Cart, error) {
	removed := false
	cart, err := srv.mutate(ctx, client, func(cart *entity.Cart) error {
		removed = cart.Remove(productID)

		return nil
	})
	if err != nil {
		return nil, err
	}

	if removed {
		srv.notices.success(client, "CART_ITEM_REMOVED", "Item removed from cart")
	}

	return cart, nil
}

// ClearCart empties the cart.
func (srv *cartService) ClearCart(ctx context.Context, client entity.ClientID) error {
	_, err := srv.mutate(ctx, client, func(cart *entity.Cart) error {
		cart.Clear()

		return nil
	})

	return err
}

// RemoveLines takes exactly the given quantities off the cart. Checkout commits an
// order with it, so anything added after the order was priced stays in the cart.
func (srv *cartService) RemoveLines(ctx context.Context, client entity.ClientID, lines []entity.CartLine) error {
	_, err := srv.mutate(ctx, client, func(cart *entity.Cart) error {
		for _, line := range lines {
			cart.Subtract(line.Product.ID, line.Quantity)
		}

		return nil
	})

	return err
}

// mutate applies fn to a copy of the cart, persists the copy and only then publishes it
// as the in-memory state, so memory never runs ahead of the durable store. An error
// from fn leaves both untouched.
func (srv *cartService) mutate(ctx context.Context, client entity.ClientID, fn func(*entity.Cart) error) (*entity.Cart, error) {
	ctx, unlock := srv.locks.lock(ctx, client)
	defer unlock()

	current, err := srv.restore(ctx, client)
	if err != nil {
		return nil, err
	}

	next := current.Clone()
	if err := fn(next); err != nil {
		srv.notices.failure(client, err)

		return nil, errors.WithStack(err)
	}

	if err := srv.cartRepo.Save(ctx, client, next); err != nil {
		srv.log(ctx).Error("Failed to persist cart", slog.String("client_id", client.String()), slog.Any("error", err))
		srv.notices.failure(client, err)

		return nil, errors.Wrap(err, "failed to persist cart")
	}

	srv.mu.Lock()
	srv.carts[client] = next
	srv.mu.Unlock()

	return next.Clone(), nil
}

// restore returns the cached cart, loading it from the repository the first time.
// The caller must hold the client lock.
func (srv *cartService) restore(ctx context.Context, client entity.ClientID) (*entity.Cart, error) {
	srv.mu.Lock()
	cart, ok := srv.carts[client]
	srv.mu.Unlock()
	if ok {
		return cart, nil
	}

	cart, err := srv.cartRepo.Load(ctx, client)
	if err != nil {
		srv.log(ctx).Error("Failed to restore cart", slog.String("client_id", client.String()), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to restore cart")
	}

	srv.mu.Lock()
	srv.carts[client] = cart
	srv.mu.Unlock()

	return cart, nil
}
