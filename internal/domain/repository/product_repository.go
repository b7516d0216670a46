package repository

import "storefront/internal/domain/entity"

// ProductRepository is the read-only product table of the catalog.
type ProductRepository interface {
	// All returns every product in a fixed, deterministic order.
	All() []entity.Product

	// FindByID returns the product and whether it exists.
	FindByID(id entity.ProductID) (entity.Product, bool)
}
