package repository

import (
	"context"

	"storefront/internal/domain/entity"
)

// CartRepository persists the cart ledger of a client under the "cart" key.
type CartRepository interface {
	// Load returns the persisted cart, or an empty cart when none was saved.
	Load(ctx context.Context, client entity.ClientID) (*entity.Cart, error)

	// Save replaces the persisted cart.
	Save(ctx context.Context, client entity.ClientID, cart *entity.Cart) error
}
