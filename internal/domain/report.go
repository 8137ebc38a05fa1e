package domain

import "time"

// OrderRecord is one submitted order, as reported to the journal and
// notifier. ID is empty for market orders (the venue assigns IDs to
// limit orders only).
type OrderRecord struct {
	ID          string
	Side        Side
	Ticker      Ticker
	Kind        string // "MARKET" or "LIMIT"
	Qty         float64
	Price       float64 // zero for market orders
	IOC         bool
	Reason      string // decision that produced the order
	SubmittedAt time.Time
}

// FillRecord is one fill reported by the account feed.
type FillRecord struct {
	Side         Side
	Price        float64
	Qty          float64
	CapitalAfter float64
	At           time.Time
}

// GameSummary is the final state of the strategy at end of game,
// captured before the reset.
type GameSummary struct {
	Position      float64
	AvgCost       float64
	RealizedPnL   float64
	UnrealizedPnL float64
	Capital       float64
	Orders        int
	Fills         int
	EndedAt       time.Time
}

// TotalPnL is the headline number of the summary.
func (g GameSummary) TotalPnL() float64 {
	return g.RealizedPnL + g.UnrealizedPnL
}
