package ports

import (
	"context"

	"github.com/alejandrodnm/courtbot/internal/domain"
)

// OrderExecutor submits orders to the venue. Submissions are
// fire-and-forget from the engine's perspective: fills and capital come
// back later through the account feed, never from these calls.
type OrderExecutor interface {
	// PlaceMarketOrder submits a market order for immediate execution.
	PlaceMarketOrder(ctx context.Context, side domain.Side, ticker domain.Ticker, qty float64) error

	// PlaceLimitOrder submits a limit order and returns the venue's
	// order ID. With ioc set, any unfilled remainder is canceled
	// immediately instead of resting.
	PlaceLimitOrder(ctx context.Context, side domain.Side, ticker domain.Ticker, qty, price float64, ioc bool) (string, error)

	// CancelOrder cancels a resting order by ID. Present for
	// completeness of the venue contract; the strategy never rests
	// orders long enough to cancel them.
	CancelOrder(ctx context.Context, ticker domain.Ticker, orderID string) (bool, error)
}
