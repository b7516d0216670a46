package usecase

import (
	"context"

	"storefront/internal/domain/entity"
)

// AddToCartInput defines the data required to put a catalog product into the cart.
type AddToCartInput struct {
	ProductID entity.ProductID
	Quantity  int
}

// CartUsecase defines the cart ledger operations of one client.
// Every mutation is persisted before the call returns.
type CartUsecase interface {
	GetCart(ctx context.Context, client entity.ClientID) (*entity.Cart, error)
	AddItem(ctx context.Context, client entity.ClientID, input AddToCartInput) (*entity.Cart, error)
	AddProduct(ctx context.Context, client entity.ClientID, product entity.Product, quantity int) (*entity.Cart, error)
	RemoveItem(ctx context.Context, client entity.ClientID, productID entity.ProductID) (*entity.Cart, error)
	ClearCart(ctx context.Context, client entity.ClientID) error
	RemoveLines(ctx context.Context, client entity.ClientID, lines []entity.CartLine) error
}
