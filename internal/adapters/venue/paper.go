package venue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/courtbot/internal/domain"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// FillSink receives simulated fills the way the live account feed
// would deliver them.
type FillSink interface {
	OnAccountUpdate(ctx context.Context, ticker domain.Ticker, side domain.Side, price, qty, capitalRemaining float64)
}

// Paper is an in-process venue for paper sessions. Every order fills
// fully and immediately: market orders at the current mark, limit
// orders at their limit price. Fills and the running capital are pushed
// back through the sink, so the strategy sees the same account-update
// contract as in production.
type Paper struct {
	sink    FillSink
	capital float64
	mark    float64 // reference price for market orders
	marked  bool
	limiter *rate.Limiter
	placed  int
}

// submissionsPerSec is a paper-venue guard against runaway loops, in
// the spirit of the real venue's request limits.
const submissionsPerSec = 20

// NewPaper creates a paper venue holding the given starting capital.
func NewPaper(capital float64) *Paper {
	return &Paper{
		capital: capital,
		limiter: rate.NewLimiter(submissionsPerSec, 5),
	}
}

// Bind attaches the fill sink. Must be called before the first order.
func (p *Paper) Bind(sink FillSink) {
	p.sink = sink
}

// SetMark updates the reference price used to fill market orders. The
// session driver calls it alongside each book or trade event.
func (p *Paper) SetMark(price float64) {
	p.mark = price
	p.marked = true
}

// Capital returns the venue-side remaining capital.
func (p *Paper) Capital() float64 {
	return p.capital
}

// Filled returns how many orders the venue has filled.
func (p *Paper) Filled() int {
	return p.placed
}

// PlaceMarketOrder fills at the current mark.
func (p *Paper) PlaceMarketOrder(ctx context.Context, side domain.Side, ticker domain.Ticker, qty float64) error {
	if !p.limiter.Allow() {
		return fmt.Errorf("venue.Paper: submission rate exceeded")
	}
	if !p.marked {
		return fmt.Errorf("venue.Paper: no mark price for market order")
	}
	p.fill(ctx, side, ticker, p.mark, qty)
	return nil
}

// PlaceLimitOrder fills at the limit price and returns a fresh order ID.
func (p *Paper) PlaceLimitOrder(ctx context.Context, side domain.Side, ticker domain.Ticker, qty, price float64, ioc bool) (string, error) {
	if !p.limiter.Allow() {
		return "", fmt.Errorf("venue.Paper: submission rate exceeded")
	}
	id := uuid.New().String()
	p.fill(ctx, side, ticker, price, qty)
	return id, nil
}

// CancelOrder never finds anything to cancel: paper orders fill on
// submission.
func (p *Paper) CancelOrder(ctx context.Context, ticker domain.Ticker, orderID string) (bool, error) {
	return false, nil
}

func (p *Paper) fill(ctx context.Context, side domain.Side, ticker domain.Ticker, price, qty float64) {
	notional := price * qty
	if side == domain.SideBuy {
		p.capital -= notional
	} else {
		p.capital += notional
	}
	p.placed++

	slog.Debug("paper: filled",
		"side", side,
		"price", price,
		"qty", qty,
		"capital", p.capital,
	)

	if p.sink != nil {
		p.sink.OnAccountUpdate(ctx, ticker, side, price, qty, p.capital)
	}
}
