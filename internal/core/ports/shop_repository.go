package ports

import (
	"context"

	"bazaarlink/internal/core/domain/model/kernel"
	"bazaarlink/internal/core/domain/model/shop"
)

// ShopRepository defines the read contract for shops. Dispatch never
// creates or mutates shops.
type ShopRepository interface {
	// Get retrieves a shop by its unique identifier.
	// Returns ObjectNotFound if no such shop exists.
	Get(ctx context.Context, id kernel.UUID) (*shop.Shop, error)
}
