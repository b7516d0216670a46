package entity

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// ProductID is the stable identifier of a catalog product.
type ProductID int64

// String returns the decimal form of the identifier.
func (id ProductID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ParseProductID parses the decimal form produced by String.
func ParseProductID(s string) (ProductID, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}

	return ProductID(v), nil
}

// Product is an immutable catalog record. Prices are kept in the base currency.
type Product struct {
	ID          ProductID       `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Category    Category        `json:"category"`
	Rating      float64         `json:"rating"`
	Description string          `json:"description"`
	Specs       []string        `json:"specs"`
}
