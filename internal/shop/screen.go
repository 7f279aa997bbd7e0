package shop

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"Storefront/internal/cart"
	"Storefront/internal/catalog"
	"Storefront/pkg/money"
)

var (
	ErrNoSelection  = errors.New("no product selected")
	ErrUnknownEvent = errors.New("unknown event")
	ErrWrongState   = errors.New("not allowed in current state")
)

// Screen is the behavior of one presentation state.
type Screen interface {
	State() State
	Model() Model
	OnEvent(e Event) (Transition, error)
}

// Transition is a screen's answer to an event. The zero value keeps the
// current screen active.
type Transition struct {
	Receipt *cart.Receipt
}

const (
	NoticeItemAdded         = "Item Added"
	NoticeQuantityIncreased = "Quantity Increased"
)

type browseScreen struct {
	catalog *catalog.Catalog
	ledger  *cart.Ledger

	category string
	query    string
	fullText bool
	selected int64
	notice   string
}

func newBrowseScreen(c *catalog.Catalog, l *cart.Ledger) *browseScreen {
	return &browseScreen{catalog: c, ledger: l, category: catalog.AllCategories}
}

func (s *browseScreen) State() State { return Browsing }

func (s *browseScreen) results() []catalog.Product {
	if s.fullText {
		return s.catalog.SearchText(s.category, s.query)
	}
	return s.catalog.Search(s.category, s.query)
}

func (s *browseScreen) Model() Model {
	products := s.results()
	rows := make([]BrowseRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, BrowseRow{ProductID: p.ID, Name: p.Name, Price: money.Format(p.Price)})
	}

	m := &BrowseModel{
		Categories: s.catalog.Categories(),
		Category:   s.category,
		Query:      s.query,
		FullText:   s.fullText,
		Rows:       rows,
		CartUnits:  s.ledger.Count(),
		Notice:     s.notice,
	}
	if p, ok := s.catalog.ByID(s.selected); ok {
		m.Selected = &ProductDetail{
			ProductID:   p.ID,
			Name:        p.Name,
			Price:       money.Format(p.Price),
			Description: p.Description,
			ImagePath:   p.ImagePath,
		}
	}
	return Model{Browse: m}
}

func (s *browseScreen) OnEvent(e Event) (Transition, error) {
	s.notice = ""

	switch ev := e.(type) {
	case Search:
		s.category = ev.Category
		if s.category == "" {
			s.category = catalog.AllCategories
		}
		s.query = ev.Query
		s.fullText = ev.FullText
		return Transition{}, nil

	case Select:
		if _, ok := s.catalog.ByID(ev.ProductID); !ok {
			return Transition{}, fmt.Errorf("product %d: %w", ev.ProductID, catalog.ErrNotFound)
		}
		s.selected = ev.ProductID
		return Transition{}, nil

	case AddToCart:
		id := ev.ProductID
		if id == 0 {
			id = s.selected
		}
		if id == 0 {
			return Transition{}, ErrNoSelection
		}
		p, ok := s.catalog.ByID(id)
		if !ok {
			return Transition{}, fmt.Errorf("product %d: %w", id, catalog.ErrNotFound)
		}
		line := s.ledger.AddItem(p.ID, p.Name, p.Price)
		s.notice = NoticeItemAdded
		if line.Quantity > 1 {
			s.notice = NoticeQuantityIncreased
		}
		return Transition{}, nil
	}
	return Transition{}, fmt.Errorf("%s on %s: %w", e.Name(), Browsing, ErrWrongState)
}

type cartScreen struct {
	ledger *cart.Ledger
}

func (s *cartScreen) State() State { return CartReview }

func (s *cartScreen) Model() Model {
	lines := s.ledger.Lines()
	rows := make([]CartRow, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, CartRow{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			LineTotal: l.Total(),
		})
	}
	return Model{Cart: &CartModel{
		Rows:  rows,
		Total: money.Round(s.ledger.Subtotal()),
		Units: s.ledger.Count(),
	}}
}

func (s *cartScreen) OnEvent(e Event) (Transition, error) {
	var err error
	switch ev := e.(type) {
	case Increment:
		err = s.ledger.Increment(ev.ProductID)
	case Decrement:
		err = s.ledger.Decrement(ev.ProductID)
	case Remove:
		err = s.ledger.Remove(ev.ProductID)
	default:
		return Transition{}, fmt.Errorf("%s on %s: %w", e.Name(), CartReview, ErrWrongState)
	}
	if err != nil {
		return Transition{}, fmt.Errorf("%s: %w", e.Name(), err)
	}
	return Transition{}, nil
}

type checkoutScreen struct {
	ledger  *cart.Ledger
	rate    decimal.Decimal
	now     func() time.Time
	missing []string
}

func (s *checkoutScreen) State() State { return Checkout }

func (s *checkoutScreen) Model() Model {
	q := s.ledger.Quote(s.rate)
	return Model{Checkout: &CheckoutModel{
		Rate:     q.Rate,
		Subtotal: q.Subtotal,
		Tax:      q.Tax,
		Total:    q.Total,
		Missing:  append([]string(nil), s.missing...),
	}}
}

func (s *checkoutScreen) OnEvent(e Event) (Transition, error) {
	ev, ok := e.(PlaceOrder)
	if !ok {
		return Transition{}, fmt.Errorf("%s on %s: %w", e.Name(), Checkout, ErrWrongState)
	}

	r, err := s.ledger.Checkout(ev.Shipping, ev.Payment, s.rate, s.now())
	if err != nil {
		s.missing = nil
		var verr *cart.ValidationError
		if errors.As(err, &verr) {
			s.missing = verr.Fields
		}
		return Transition{}, err
	}
	s.missing = nil
	return Transition{Receipt: &r}, nil
}

type receiptScreen struct {
	receipt cart.Receipt
}

func (s *receiptScreen) State() State { return Receipt }

func (s *receiptScreen) Model() Model {
	return Model{Receipt: &ReceiptModel{Receipt: s.receipt, Text: s.receipt.Text()}}
}

func (s *receiptScreen) OnEvent(e Event) (Transition, error) {
	return Transition{}, fmt.Errorf("%s on %s: %w", e.Name(), Receipt, ErrWrongState)
}
