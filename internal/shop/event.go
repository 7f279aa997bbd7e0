package shop

import "Storefront/internal/cart"

// Event is a user action reported by the presentation layer.
type Event interface {
	Name() string
}

type Search struct {
	Category string
	Query    string
	FullText bool
}

// Select marks a product as the one whose detail is shown.
type Select struct{ ProductID int64 }

// AddToCart adds ProductID, or the selected product when ProductID is zero.
type AddToCart struct{ ProductID int64 }

type Increment struct{ ProductID int64 }
type Decrement struct{ ProductID int64 }
type Remove struct{ ProductID int64 }

type PlaceOrder struct {
	Shipping cart.ShippingInfo
	Payment  cart.PaymentInfo
}

type GoShopping struct{}
type GoCart struct{}
type GoCheckout struct{}

func (Search) Name() string     { return "search" }
func (Select) Name() string     { return "select" }
func (AddToCart) Name() string  { return "add" }
func (Increment) Name() string  { return "increment" }
func (Decrement) Name() string  { return "decrement" }
func (Remove) Name() string     { return "remove" }
func (PlaceOrder) Name() string { return "place_order" }
func (GoShopping) Name() string { return "go_shopping" }
func (GoCart) Name() string     { return "go_cart" }
func (GoCheckout) Name() string { return "go_checkout" }
