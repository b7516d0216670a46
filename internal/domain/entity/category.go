// Package entity contains the core business objects of the storefront.
package entity

import "slices"

// Category groups products in the catalog.
type Category string

const (
	// CategoryAll is the pseudo category matching every product.
	CategoryAll Category = "all"
	// CategorySensors groups environmental and distance sensors.
	CategorySensors Category = "sensors"
	// CategoryDisplays groups OLED, TFT and other screens.
	CategoryDisplays Category = "displays"
	// CategoryMotors groups servos and motors.
	CategoryMotors Category = "motors"
	// CategoryControllers groups microcontroller boards.
	CategoryControllers Category = "controllers"
	// CategoryAccessories groups LED strips, level shifters and similar parts.
	CategoryAccessories Category = "accessories"
)

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the Category is one of the enumerated values, CategoryAll included.
func (c Category) IsValid() bool {
	return c == CategoryAll || slices.Contains(ProductCategories(), c)
}

// Matches reports whether a product of category other passes a filter on c.
func (c Category) Matches(other Category) bool {
	return c == "" || c == CategoryAll || c == other
}

// ProductCategories returns the categories a product can belong to, in display order.
func ProductCategories() []Category {
	return []Category{
		CategorySensors,
		CategoryDisplays,
		CategoryMotors,
		CategoryControllers,
		CategoryAccessories,
	}
}
