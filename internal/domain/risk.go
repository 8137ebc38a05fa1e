package domain

import "math"

// Limits are the static risk limits for one game.
type Limits struct {
	MaxContracts float64 // max total contracts held per game
	MaxExposure  float64 // max notional (qty × price) per order, USD
	MinCapital   float64 // minimum reported capital required to trade
	Tick         float64 // price increment of the contract
	PriceFloor   float64 // lowest quotable price
	PriceCeil    float64 // highest quotable price
}

// DefaultLimits are the deployed limits for a single-game contract
// quoted 0–100.
func DefaultLimits() Limits {
	return Limits{
		MaxContracts: 50,
		MaxExposure:  5000,
		MinCapital:   20,
		Tick:         0.5,
		PriceFloor:   0,
		PriceCeil:    100,
	}
}

// CanTrade is the admission check for a prospective order. Pure: it
// inspects only its arguments. priced reports whether marketPrice is
// defined; without a market price nothing trades.
func (l Limits) CanTrade(qty, position, capital, marketPrice float64, priced bool) bool {
	if !priced {
		return false
	}
	if math.Abs(position)+qty > l.MaxContracts {
		return false
	}
	if capital < l.MinCapital {
		return false
	}
	if qty*marketPrice > l.MaxExposure {
		return false
	}
	return true
}

// ClampPrice bounds a price to the quotable [floor, ceil] range.
func (l Limits) ClampPrice(p float64) float64 {
	return min(max(p, l.PriceFloor), l.PriceCeil)
}
