package impl

import (
	"bytes"
	"encoding/base64"
	"html/template"
	"time"

	"storefront/internal/domain/entity"

	"github.com/pkg/errors"
)

const invoiceTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: sans-serif">
  <h2>{{ .StoreName }}</h2>
  <p>Order <strong>{{ .OrderID }}</strong> placed on {{ .PlacedAt }}</p>
  {{- with .Customer }}
  <p>{{ .DisplayName }}<br>{{ .Email }}<br>{{ .Phone }}<br>{{ .ShippingDestination }}</p>
  {{- end }}
  <table cellpadding="6" style="border-collapse: collapse">
    <tr><th align="left">Product</th><th>Qty</th><th align="right">Unit price</th><th align="right">Subtotal</th></tr>
    {{- range .Lines }}
    <tr><td>{{ .Title }}</td><td align="center">{{ .Quantity }}</td><td align="right">{{ .UnitPrice }}</td><td align="right">{{ .Subtotal }}</td></tr>
    {{- end }}
  </table>
  <p>Items: {{ .ItemCount }}</p>
  <p><strong>Total: {{ .Total }}</strong></p>
  <p>Payment: {{ .PaymentMethod }}</p>
  {{- if .QRCode }}
  <p><img alt="order {{ .OrderID }}" src="data:image/png;base64,{{ .QRCode }}"></p>
  {{- end }}
</body>
</html>`

var parsedInvoiceTemplate = template.Must(template.New("invoice").Parse(invoiceTemplate))

type invoiceLine struct {
	Title     string
	Quantity  int
	UnitPrice string
	Subtotal  string
}

type invoiceView struct {
	StoreName     string
	OrderID       string
	PlacedAt      string
	Customer      *entity.UserAccount
	Lines         []invoiceLine
	ItemCount     int
	Total         string
	PaymentMethod string
	QRCode        template.URL
}

// renderInvoice renders the order as the HTML invoice body. Amounts are shown in currency.
func renderInvoice(storeName string, order *entity.Order, currency entity.Currency, qrPNG []byte) (string, error) {
	view := invoiceView{
		StoreName:     storeName,
		OrderID:       order.ID.String(),
		PlacedAt:      order.PlacedAt.UTC().Format(time.RFC1123),
		Customer:      order.Customer,
		Lines:         make([]invoiceLine, 0, len(order.Lines)),
		ItemCount:     order.ItemCount,
		Total:         currency.Format(order.Total),
		PaymentMethod: order.PaymentMethod.Label(),
	}
	for _, line := range order.Lines {
		view.Lines = append(view.Lines, invoiceLine{
			Title:     line.Product.Title,
			Quantity:  line.Quantity,
			UnitPrice: currency.Format(line.Product.Price),
			Subtotal:  currency.Format(line.Subtotal()),
		})
	}
	if len(qrPNG) > 0 {
		view.QRCode = template.URL(base64.StdEncoding.EncodeToString(qrPNG))
	}

	var buf bytes.Buffer
	if err := parsedInvoiceTemplate.Execute(&buf, view); err != nil {
		return "", errors.Wrap(err, "failed to render invoice")
	}

	return buf.String(), nil
}
