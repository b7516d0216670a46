// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"storefront/internal/domain/entity"
)

// ProductFilter narrows the catalog listing. Zero values match everything.
type ProductFilter struct {
	Category  entity.Category
	Search    string
	MinRating float64
}

// CatalogUsecase defines the read-only catalog operations.
type CatalogUsecase interface {
	ListProducts() []entity.Product
	FilterProducts(filter ProductFilter) []entity.Product
	GetProduct(id entity.ProductID) (*entity.Product, error)
	Categories() []entity.Category
}
