package cart

import (
	"errors"

	"github.com/shopspring/decimal"

	"Storefront/pkg/money"
)

var (
	ErrNoSuchLine  = errors.New("no such cart line")
	ErrEmptyCart   = errors.New("cart is empty")
	ErrInvalidRate = errors.New("tax rate must not be negative")
)

// Line is one product in the cart. UnitPrice is the price seen when the
// product was first added.
type Line struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Ledger tracks the lines of one shopping session, keyed by product id and
// kept in insertion order. It is not safe for concurrent use.
type Ledger struct {
	order []int64
	lines map[int64]*Line
}

func NewLedger() *Ledger {
	return &Ledger{lines: make(map[int64]*Line)}
}

// AddItem creates a line with quantity one or bumps an existing line. The
// stored price is never re-snapshotted.
func (l *Ledger) AddItem(productID int64, name string, unitPrice decimal.Decimal) Line {
	if ln, ok := l.lines[productID]; ok {
		ln.Quantity++
		return *ln
	}

	ln := &Line{ProductID: productID, Name: name, UnitPrice: unitPrice, Quantity: 1}
	l.lines[productID] = ln
	l.order = append(l.order, productID)
	return *ln
}

func (l *Ledger) Increment(productID int64) error {
	ln, ok := l.lines[productID]
	if !ok {
		return ErrNoSuchLine
	}
	ln.Quantity++
	return nil
}

// Decrement removes one unit and drops the line when none remain.
func (l *Ledger) Decrement(productID int64) error {
	ln, ok := l.lines[productID]
	if !ok {
		return ErrNoSuchLine
	}
	if ln.Quantity > 1 {
		ln.Quantity--
		return nil
	}
	l.drop(productID)
	return nil
}

func (l *Ledger) Remove(productID int64) error {
	if _, ok := l.lines[productID]; !ok {
		return ErrNoSuchLine
	}
	l.drop(productID)
	return nil
}

func (l *Ledger) Line(productID int64) (Line, bool) {
	ln, ok := l.lines[productID]
	if !ok {
		return Line{}, false
	}
	return *ln, true
}

func (l *Ledger) Lines() []Line {
	out := make([]Line, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, *l.lines[id])
	}
	return out
}

func (l *Ledger) Len() int { return len(l.order) }

// Count is the number of units across all lines.
func (l *Ledger) Count() int {
	n := 0
	for _, ln := range l.lines {
		n += ln.Quantity
	}
	return n
}

func (l *Ledger) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, id := range l.order {
		sum = sum.Add(l.lines[id].Total())
	}
	return sum
}

func (l *Ledger) Tax(rate decimal.Decimal) decimal.Decimal {
	return l.Subtotal().Mul(rate)
}

func (l *Ledger) Total(rate decimal.Decimal) decimal.Decimal {
	sub := l.Subtotal()
	return sub.Add(sub.Mul(rate))
}

// Quote is the rounded price summary shown before checkout.
type Quote struct {
	Rate     decimal.Decimal `json:"rate"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

func (l *Ledger) Quote(rate decimal.Decimal) Quote {
	return Quote{
		Rate:     rate,
		Subtotal: money.Round(l.Subtotal()),
		Tax:      money.Round(l.Tax(rate)),
		Total:    money.Round(l.Total(rate)),
	}
}

func (l *Ledger) clear() {
	l.order = nil
	l.lines = make(map[int64]*Line)
}

func (l *Ledger) drop(productID int64) {
	delete(l.lines, productID)
	for i, id := range l.order {
		if id == productID {
			l.order = append(l.order[:i], l.order[i+1:]...)
			return
		}
	}
}
