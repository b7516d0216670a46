package impl

import (
	"strings"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"golang.org/x/text/cases"
)

type catalogService struct {
	products repository.ProductRepository
}

// NewCatalogService creates the read-only catalog service.
func NewCatalogService(products repository.ProductRepository) usecase.CatalogUsecase {
	return &catalogService{products: products}
}

// ListProducts returns the whole catalog in its fixed order.
func (srv *catalogService) ListProducts() []entity.Product {
	return srv.products.All()
}

// FilterProducts keeps products whose category matches exactly (or "all"), whose title contains
// the search text case-insensitively, and whose rating reaches MinRating.
func (srv *catalogService) FilterProducts(filter usecase.ProductFilter) []entity.Product {
	// Casers are stateful, one per call.
	folder := cases.Fold()
	needle := folder.String(strings.TrimSpace(filter.Search))

	all := srv.products.All()
	result := make([]entity.Product, 0, len(all))
	for _, p := range all {
		if !filter.Category.Matches(p.Category) {
			continue
		}
		if needle != "" && !strings.Contains(folder.String(p.Title), needle) {
			continue
		}
		if p.Rating < filter.MinRating {
			continue
		}
		result = append(result, p)
	}

	return result
}

// GetProduct returns a single product by ID.
func (srv *catalogService) GetProduct(id entity.ProductID) (*entity.Product, error) {
	p, ok := srv.products.FindByID(id)
	if !ok {
		return nil, domainerrors.ErrProductNotFound.WithDetails("product " + id.String())
	}

	return &p, nil
}

// Categories returns "all" followed by the product categories.
func (srv *catalogService) Categories() []entity.Category {
	return append([]entity.Category{entity.CategoryAll}, entity.ProductCategories()...)
}
