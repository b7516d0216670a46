package handler

import (
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
)

// presenter converts domain values into response bodies in the configured currency.
type presenter struct {
	currency entity.Currency
}

func newPresenter(cfg *config.Config) presenter {
	if cfg == nil || cfg.Storefront == nil || cfg.Storefront.Currency.Code == "" {
		return presenter{currency: entity.BaseCurrency()}
	}

	c := cfg.Storefront.Currency

	return presenter{currency: entity.Currency{
		Code:   c.Code,
		Symbol: c.Symbol,
		Rate:   decimal.NewFromFloat(c.Rate),
	}}
}

type productView struct {
	ID           entity.ProductID `json:"id"`
	Title        string           `json:"title"`
	Price        string           `json:"price"`
	DisplayPrice string           `json:"displayPrice"`
	Category     entity.Category  `json:"category"`
	Rating       float64          `json:"rating"`
	Description  string           `json:"description"`
	Specs        []string         `json:"specs"`
}

func (p presenter) product(product entity.Product) productView {
	return productView{
		ID:           product.ID,
		Title:        product.Title,
		Price:        p.currency.Convert(product.Price).StringFixed(2),
		DisplayPrice: p.currency.Format(product.Price),
		Category:     product.Category,
		Rating:       product.Rating,
		Description:  product.Description,
		Specs:        product.Specs,
	}
}

func (p presenter) products(products []entity.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, product := range products {
		views = append(views, p.product(product))
	}

	return views
}

type cartLineView struct {
	ProductID entity.ProductID `json:"productId"`
	Title     string           `json:"title"`
	Quantity  int              `json:"quantity"`
	UnitPrice string           `json:"unitPrice"`
	Subtotal  string           `json:"subtotal"`
}

type cartView struct {
	Lines        []cartLineView `json:"lines"`
	ItemCount    int            `json:"itemCount"`
	Total        string         `json:"total"`
	DisplayTotal string         `json:"displayTotal"`
	Currency     string         `json:"currency"`
}

func (p presenter) cart(cart *entity.Cart) cartView {
	if cart == nil {
		cart = entity.NewCart()
	}

	lines := make([]cartLineView, 0, cart.Len())
	for _, line := range cart.Lines() {
		lines = append(lines, cartLineView{
			ProductID: line.Product.ID,
			Title:     line.Product.Title,
			Quantity:  line.Quantity,
			UnitPrice: p.currency.Format(line.Product.Price),
			Subtotal:  p.currency.Format(line.Subtotal()),
		})
	}

	return cartView{
		Lines:        lines,
		ItemCount:    cart.ItemCount(),
		Total:        p.currency.Convert(cart.Total()).StringFixed(2),
		DisplayTotal: p.currency.Format(cart.Total()),
		Currency:     p.currency.Code,
	}
}

type userView struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	City      string `json:"city"`
	Address   string `json:"address"`
}

func (p presenter) user(user *entity.UserAccount) *userView {
	if user == nil {
		return nil
	}

	return &userView{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Phone:     user.Phone,
		City:      user.City,
		Address:   user.Address,
	}
}

type checkoutView struct {
	State entity.CheckoutState `json:"state"`
	Cart  cartView             `json:"cart"`
}

func (p presenter) checkout(status *usecase.CheckoutStatus) checkoutView {
	return checkoutView{State: status.State, Cart: p.cart(status.Cart)}
}

type orderView struct {
	ID            string               `json:"id"`
	Lines         []cartLineView       `json:"lines"`
	ItemCount     int                  `json:"itemCount"`
	Total         string               `json:"total"`
	PaymentMethod entity.PaymentMethod `json:"paymentMethod"`
	PlacedAt      time.Time            `json:"placedAt"`
}

type checkoutResultView struct {
	State            entity.CheckoutState `json:"state"`
	Order            *orderView           `json:"order,omitempty"`
	Confirmation     string               `json:"confirmation"`
	InvoiceRequested bool                 `json:"invoiceRequested"`
}

func (p presenter) checkoutResult(output *usecase.CheckoutOutput) checkoutResultView {
	view := checkoutResultView{
		State:            output.State,
		Confirmation:     output.Confirmation,
		InvoiceRequested: output.InvoiceRequested,
	}

	if order := output.Order; order != nil {
		view.Order = &orderView{
			ID:            order.ID.String(),
			Lines:         p.cart(entity.NewCart(order.Lines...)).Lines,
			ItemCount:     order.ItemCount,
			Total:         p.currency.Format(order.Total),
			PaymentMethod: order.PaymentMethod,
			PlacedAt:      order.PlacedAt,
		}
	}

	return view
}
