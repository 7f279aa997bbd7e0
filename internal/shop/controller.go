package shop

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"Storefront/internal/cart"
	"Storefront/internal/catalog"
)

// Renderer presents view models. The controller guarantees Teardown of the
// active state before any other state is rendered.
type Renderer interface {
	Render(state State, m Model) error
	Teardown(state State) error
}

type Options struct {
	TaxRate decimal.Decimal
	Now     func() time.Time
	Log     *zap.Logger

	// OnConfirmed runs once per confirmed checkout, before the receipt is
	// rendered.
	OnConfirmed func(cart.Receipt)
}

// Controller drives one shopping session: it owns the ledger, keeps exactly
// one screen active and routes presentation events to it.
type Controller struct {
	catalog  *catalog.Catalog
	ledger   *cart.Ledger
	renderer Renderer
	opts     Options
	log      *zap.Logger

	active Screen
}

// New starts a session in the Browsing state with an empty cart.
func New(c *catalog.Catalog, r Renderer, opts Options) (*Controller, error) {
	if c == nil {
		return nil, errors.New("shop: nil catalog")
	}
	if r == nil {
		return nil, errors.New("shop: nil renderer")
	}
	if opts.TaxRate.IsNegative() {
		return nil, cart.ErrInvalidRate
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	ctl := &Controller{
		catalog:  c,
		ledger:   cart.NewLedger(),
		renderer: r,
		opts:     opts,
		log:      log,
	}
	ctl.active = newBrowseScreen(c, ctl.ledger)
	if err := r.Render(Browsing, ctl.active.Model()); err != nil {
		return nil, fmt.Errorf("render %s: %w", Browsing, err)
	}
	return ctl, nil
}

func (c *Controller) State() State { return c.active.State() }

func (c *Controller) Model() Model { return c.active.Model() }

// Lines returns a copy of the current cart.
func (c *Controller) Lines() []cart.Line { return c.ledger.Lines() }

func (c *Controller) GoShopping() error {
	return c.move(newBrowseScreen(c.catalog, c.ledger))
}

func (c *Controller) GoCart() error {
	return c.move(&cartScreen{ledger: c.ledger})
}

func (c *Controller) GoCheckout() error {
	return c.move(&checkoutScreen{ledger: c.ledger, rate: c.opts.TaxRate, now: c.opts.Now})
}

// GoReceipt shows an issued receipt. It is only reachable from Checkout.
func (c *Controller) GoReceipt(r cart.Receipt) error {
	return c.move(&receiptScreen{receipt: r})
}

// Dispatch routes e to the active screen, or performs the navigation it
// requests. The active screen is re-rendered after every handled event so
// the presentation reflects partial results such as missing form fields.
func (c *Controller) Dispatch(e Event) error {
	switch e.(type) {
	case nil:
		return ErrUnknownEvent
	case GoShopping:
		return c.GoShopping()
	case GoCart:
		return c.GoCart()
	case GoCheckout:
		return c.GoCheckout()
	}

	tr, err := c.active.OnEvent(e)
	if errors.Is(err, ErrWrongState) {
		return err
	}
	if err == nil && tr.Receipt != nil {
		return c.confirm(*tr.Receipt)
	}

	if rerr := c.renderer.Render(c.active.State(), c.active.Model()); rerr != nil {
		return errors.Join(err, fmt.Errorf("render %s: %w", c.active.State(), rerr))
	}
	return err
}

func (c *Controller) confirm(r cart.Receipt) error {
	c.ledger = cart.NewLedger()
	c.log.Info("checkout confirmed",
		zap.String("receipt_id", r.ID),
		zap.Int("lines", len(r.Lines)),
		zap.String("total", r.Total.StringFixed(2)),
	)
	if c.opts.OnConfirmed != nil {
		c.opts.OnConfirmed(r)
	}
	return c.GoReceipt(r)
}

func (c *Controller) move(next Screen) error {
	from, to := c.active.State(), next.State()
	if !canMove(from, to) {
		return fmt.Errorf("%s -> %s: %w", from, to, ErrWrongState)
	}

	if err := c.renderer.Teardown(from); err != nil {
		return fmt.Errorf("teardown %s: %w", from, err)
	}
	c.active = next
	c.log.Debug("navigate", zap.Stringer("from", from), zap.Stringer("to", to))

	if err := c.renderer.Render(to, next.Model()); err != nil {
		return fmt.Errorf("render %s: %w", to, err)
	}
	return nil
}
