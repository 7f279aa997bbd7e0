package cart

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"Storefront/pkg/money"
)

// Receipt is the immutable record of a confirmed checkout. Amounts are
// rounded to currency precision; the CVV is never kept.
type Receipt struct {
	ID       string          `json:"id"`
	IssuedAt time.Time       `json:"issued_at"`
	Rate     decimal.Decimal `json:"tax_rate"`
	Lines    []Line          `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
	Shipping ShippingInfo    `json:"shipping"`
	Payment  PaymentInfo     `json:"payment"`
}

func newReceipt(l *Ledger, shipping ShippingInfo, payment PaymentInfo, rate decimal.Decimal, now time.Time) Receipt {
	payment.CVV = ""
	q := l.Quote(rate)

	return Receipt{
		ID:       "r_" + uuid.NewString(),
		IssuedAt: now.UTC(),
		Rate:     rate,
		Lines:    l.Lines(),
		Subtotal: q.Subtotal,
		Tax:      q.Tax,
		Total:    q.Total,
		Shipping: shipping,
		Payment:  payment,
	}
}

// Text renders the receipt the way it is shown to the shopper.
func (r Receipt) Text() string {
	var b strings.Builder

	b.WriteString("Payment Information:\n\n")
	fmt.Fprintf(&b, "Cardholder Name: %s\n\n", r.Payment.CardholderName)
	fmt.Fprintf(&b, "Card Number: %s\n\n", r.Payment.CardNumber)
	fmt.Fprintf(&b, "Expiration Date: %s\n\n\n", r.Payment.Expiration)

	b.WriteString("Shipping Information:\n\n")
	fmt.Fprintf(&b, "Street Address: %s\n\n", r.Shipping.StreetAddress)
	fmt.Fprintf(&b, "City: %s\n\n", r.Shipping.City)
	fmt.Fprintf(&b, "State: %s\n\n", r.Shipping.State)
	fmt.Fprintf(&b, "Zip Code: %s\n\n", r.Shipping.Zip)

	b.WriteString("Items:\n\n")
	for _, ln := range r.Lines {
		fmt.Fprintf(&b, "%s - %s x %d\n", ln.Name, money.Format(ln.UnitPrice), ln.Quantity)
	}

	b.WriteString("\nOrder Summary:\n\n")
	fmt.Fprintf(&b, "Subtotal: %s\n", money.Format(r.Subtotal))
	fmt.Fprintf(&b, "Tax: %s\n", money.Format(r.Tax))
	fmt.Fprintf(&b, "Total: %s", money.Format(r.Total))

	return b.String()
}
