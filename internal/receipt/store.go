package receipt

import (
	"context"

	"Storefront/internal/cart"
)

// Store archives receipts issued by confirmed checkouts.
type Store interface {
	Save(ctx context.Context, r cart.Receipt) error
	Get(ctx context.Context, id string) (cart.Receipt, bool, error)
	List(ctx context.Context) ([]cart.Receipt, error)
	Ping(ctx context.Context) error
}
