package market

import "context"

// Source fetches the current list of tradable assets from a price feed.
type Source interface {
	Markets(ctx context.Context) ([]Asset, error)
}
