package domain

// Book tracks resting liquidity for the contract, one price→size map
// per side. Levels with size ≤ 0 are removed, never stored as zeros.
// Crossed or locked books are kept as delivered; the book does not
// enforce bestBid < bestAsk.
type Book struct {
	bids map[float64]float64
	asks map[float64]float64

	bestBid   float64
	bestAsk   float64
	hasBid    bool
	hasAsk    bool
	lastTrade float64
	traded    bool
}

// NewBook returns an empty order book.
func NewBook() *Book {
	return &Book{
		bids: make(map[float64]float64),
		asks: make(map[float64]float64),
	}
}

// ApplyTrade records a public trade print and refreshes the mid.
func (b *Book) ApplyTrade(price float64) {
	b.lastTrade = price
	b.traded = true
}

// ApplyLevel upserts a resting level. Size ≤ 0 removes the level.
func (b *Book) ApplyLevel(side Side, price, size float64) {
	levels := b.bids
	if side == SideSell {
		levels = b.asks
	}
	if size <= 0 {
		delete(levels, price)
	} else {
		levels[price] = size
	}
	b.refreshBest()
}

// BestBid returns the highest resting bid, false when the side is empty.
func (b *Book) BestBid() (float64, bool) {
	return b.bestBid, b.hasBid
}

// BestAsk returns the lowest resting ask, false when the side is empty.
func (b *Book) BestAsk() (float64, bool) {
	return b.bestAsk, b.hasAsk
}

// Mid returns the current market price estimate: the bid/ask midpoint
// when both sides rest, the last trade print when one side is missing,
// and false when neither signal exists.
func (b *Book) Mid() (float64, bool) {
	if b.hasBid && b.hasAsk {
		return (b.bestBid + b.bestAsk) / 2, true
	}
	if b.traded {
		return b.lastTrade, true
	}
	return 0, false
}

// Reset drops all levels and the last trade print.
func (b *Book) Reset() {
	b.bids = make(map[float64]float64)
	b.asks = make(map[float64]float64)
	b.hasBid = false
	b.hasAsk = false
	b.traded = false
	b.bestBid = 0
	b.bestAsk = 0
	b.lastTrade = 0
}

func (b *Book) refreshBest() {
	b.hasBid = false
	for price := range b.bids {
		if !b.hasBid || price > b.bestBid {
			b.bestBid = price
			b.hasBid = true
		}
	}
	b.hasAsk = false
	for price := range b.asks {
		if !b.hasAsk || price < b.bestAsk {
			b.bestAsk = price
			b.hasAsk = true
		}
	}
}
