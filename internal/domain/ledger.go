package domain

// InitialCapital is the capital the ledger reports before the first
// account update of a game.
const InitialCapital = 10000.0

// Ledger holds the strategy's position and P&L under average-cost
// accounting. Position is signed: positive long, negative short.
// AvgCost is meaningless while the position is exactly zero.
type Ledger struct {
	Position      float64
	AvgCost       float64
	RealizedPnL   float64
	UnrealizedPnL float64
	// Capital is whatever the account feed last reported. It is never
	// derived from fills locally.
	Capital float64
}

// NewLedger returns a flat ledger with the initial capital.
func NewLedger() *Ledger {
	return &Ledger{Capital: InitialCapital}
}

// RecordFill applies one fill with average-cost accounting, including
// short covering and position flips in either direction.
func (l *Ledger) RecordFill(side Side, price, qty float64) {
	if side == SideBuy {
		l.recordBuy(price, qty)
	} else {
		l.recordSell(price, qty)
	}
}

func (l *Ledger) recordBuy(price, qty float64) {
	if l.Position >= 0 {
		// Flat or long: blend into the cost basis.
		prevCost := l.AvgCost * l.Position
		l.Position += qty
		if l.Position != 0 {
			l.AvgCost = (prevCost + price*qty) / l.Position
		} else {
			l.AvgCost = 0
		}
		return
	}

	// Short: cover first, realizing P&L against the short basis.
	cover := min(-l.Position, qty)
	l.RealizedPnL += (l.AvgCost - price) * cover
	l.Position += cover
	qty -= cover

	if qty > 0 {
		// Flipped long: position is flat here, so the blend reduces
		// to the fill price.
		prevCost := l.AvgCost * l.Position
		l.Position += qty
		if l.Position != 0 {
			l.AvgCost = (prevCost + price*qty) / l.Position
		} else {
			l.AvgCost = 0
		}
	}
}

func (l *Ledger) recordSell(price, qty float64) {
	if l.Position > 0 {
		// Long: close first, realizing P&L against the long basis.
		closeQty := min(l.Position, qty)
		l.RealizedPnL += (price - l.AvgCost) * closeQty
		l.Position -= closeQty
		qty -= closeQty

		if qty > 0 {
			// Flipped short: basis is the flip price, no blend.
			l.AvgCost = price
			l.Position -= qty
		}
		return
	}

	// Flat or short: the sale grows the short at a blended basis.
	prevCost := l.AvgCost * -l.Position
	l.Position -= qty
	if l.Position != 0 {
		l.AvgCost = (prevCost + price*qty) / -l.Position
	} else {
		l.AvgCost = 0
	}
}

// SetCapital overwrites capital verbatim from the account feed.
func (l *Ledger) SetCapital(remaining float64) {
	l.Capital = remaining
}

// MarkToMarket recomputes unrealized P&L against the given market price.
func (l *Ledger) MarkToMarket(marketPrice float64) {
	if l.Position == 0 {
		l.UnrealizedPnL = 0
		return
	}
	l.UnrealizedPnL = (marketPrice - l.AvgCost) * l.Position
}

// TotalPnL is realized plus unrealized P&L.
func (l *Ledger) TotalPnL() float64 {
	return l.RealizedPnL + l.UnrealizedPnL
}

// Reset restores the ledger to its start-of-game state.
func (l *Ledger) Reset() {
	l.Position = 0
	l.AvgCost = 0
	l.RealizedPnL = 0
	l.UnrealizedPnL = 0
	l.Capital = InitialCapital
}
