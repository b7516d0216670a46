package handler

import (
	"net/http"

	"storefront/config"
	"storefront/internal/delivery/api/response"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// CatalogHandler serves the read-only product catalog.
type CatalogHandler struct {
	catalog usecase.CatalogUsecase
	present presenter
}

// NewCatalogHandler is the constructor for CatalogHandler, injected by Fx.
func NewCatalogHandler(catalog usecase.CatalogUsecase, cfg *config.Config) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, present: newPresenter(cfg)}
}

type listProductsRequest struct {
	Category  string  `query:"category" validate:"omitempty,oneof=all sensors displays motors controllers accessories"`
	Search    string  `query:"q" validate:"max=100"`
	MinRating float64 `query:"minRating" validate:"gte=0,lte=5"`
}

type productIDRequest struct {
	ID int64 `param:"id" validate:"gt=0"`
}

// ListProducts returns the products matching the optional category, search and rating filters.
func (h *CatalogHandler) ListProducts(c echo.Context) error {
	var req listProductsRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	products := h.catalog.FilterProducts(usecase.ProductFilter{
		Category:  entity.Category(req.Category),
		Search:    req.Search,
		MinRating: req.MinRating,
	})

	return response.Success(c, http.StatusOK, h.present.products(products), nil)
}

// GetProduct returns one product.
func (h *CatalogHandler) GetProduct(c echo.Context) error {
	var req productIDRequest
	if err := bind(c, &req); err != nil {
		return domainerrors.ErrProductNotFound.WithDetails(c.Param("id"))
	}

	product, err := h.catalog.GetProduct(entity.ProductID(req.ID))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, h.present.product(*product), nil)
}

// ListCategories returns the product categories in display order.
func (h *CatalogHandler) ListCategories(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.catalog.Categories(), nil)
}
