// Package catalog provides the built-in product table.
package catalog

import (
	"slices"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/shopspring/decimal"
)

type staticCatalog struct {
	products []entity.Product
}

// NewStaticCatalog returns the fixed product table, ordered by ID.
func NewStaticCatalog() repository.ProductRepository {
	return NewCatalog(defaultProducts())
}

// NewCatalog builds a read-only table from products, sorted by ID.
func NewCatalog(products []entity.Product) repository.ProductRepository {
	sorted := slices.Clone(products)
	slices.SortStableFunc(sorted, func(a, b entity.Product) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})

	return &staticCatalog{products: sorted}
}

func (c *staticCatalog) All() []entity.Product {
	out := make([]entity.Product, len(c.products))
	for i, p := range c.products {
		p.Specs = slices.Clone(p.Specs)
		out[i] = p
	}

	return out
}

func (c *staticCatalog) FindByID(id entity.ProductID) (entity.Product, bool) {
	i, found := slices.BinarySearchFunc(c.products, id, func(p entity.Product, target entity.ProductID) int {
		switch {
		case p.ID < target:
			return -1
		case p.ID > target:
			return 1
		default:
			return 0
		}
	})
	if !found {
		return entity.Product{}, false
	}

	p := c.products[i]
	p.Specs = slices.Clone(p.Specs)

	return p, true
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func defaultProducts() []entity.Product {
	return []entity.Product{
		{
			ID:          1,
			Title:       "BME280 Sensor (temperature / humidity / pressure)",
			Price:       price("12.50"),
			Category:    entity.CategorySensors,
			Rating:      4.7,
			Description: "Accurate temperature, humidity and pressure sensor for small and medium projects.",
			Specs:       []string{"I2C interface", "High accuracy", "Range: -40 to 85°C"},
		},
		{
			ID:          2,
			Title:       `OLED Display 0.96"`,
			Price:       price("7.99"),
			Category:    entity.CategoryDisplays,
			Rating:      4.3,
			Description: "Small OLED screen for showing readings and status.",
			Specs:       []string{"128x64", "I2C", "Wide viewing angles"},
		},
		{
			ID:          3,
			Title:       "SG90 Servo Motor",
			Price:       price("4.50"),
			Category:    entity.CategoryMotors,
			Rating:      4.5,
			Description: "Small and light servo for precise motion in robots and mechanisms.",
			Specs:       []string{"4.8-6V", "Adjustable", "~180° rotation"},
		},
		{
			ID:          4,
			Title:       "ESP32-S3 Module (with camera and display)",
			Price:       price("18.00"),
			Category:    entity.CategoryControllers,
			Rating:      4.6,
			Description: "Powerful ESP32-S3 board with camera support and many ports.",
			Specs:       []string{"WiFi + Bluetooth", "OV2640 camera support", "Multiple GPIO"},
		},
		{
			ID:          5,
			Title:       "WS2812 LED Strip (5m)",
			Price:       price("11.25"),
			Category:    entity.CategoryAccessories,
			Rating:      4.4,
			Description: "Programmable LED strip for decorative lighting.",
			Specs:       []string{"5V", "Programmable", "APA102/WS2812"},
		},
		{
			ID:          6,
			Title:       "VL53L1X Distance Sensor (ToF)",
			Price:       price("9.50"),
			Category:    entity.CategorySensors,
			Rating:      4.2,
			Description: "Time-of-flight distance sensor with precise long range measurement.",
			Specs:       []string{"I2C", "Long range", "Precise measurement"},
		},
		{
			ID:          7,
			Title:       `TFT Display 2.8" (for UI projects)`,
			Price:       price("14.90"),
			Category:    entity.CategoryDisplays,
			Rating:      4.1,
			Description: "TFT screen suited to rich user interfaces.",
			Specs:       []string{"SPI", "Optional touch", "320x240"},
		},
		{
			ID:          8,
			Title:       "TXS0108E Level Shifter",
			Price:       price("2.99"),
			Category:    entity.CategoryAccessories,
			Rating:      4.0,
			Description: "Level shifter for connecting modules running at different voltages.",
			Specs:       []string{"8 channels", "Bidirectional", "Suited for I/O"},
		},
	}
}
