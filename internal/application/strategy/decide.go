package strategy

import (
	"context"
	"log/slog"
	"math"

	"github.com/alejandrodnm/courtbot/internal/domain"
)

// Decision classifies the outcome of one game-event evaluation.
type Decision string

const (
	DecisionGameOver  Decision = "GAME_OVER"
	DecisionNoSignal  Decision = "NO_SIGNAL" // mid price undefined
	DecisionUnwind    Decision = "UNWIND"
	DecisionThrottled Decision = "THROTTLED"
	DecisionQuote     Decision = "QUOTE"
	DecisionNoEdge    Decision = "NO_EDGE"
)

// OnGameEvent runs the decision procedure for one game-state event and
// reports what it decided. At most one order is submitted per event.
func (e *Engine) OnGameEvent(ctx context.Context, ev domain.GameEvent) Decision {
	if ev.Type == domain.EventEndGame {
		e.finishGame(ctx)
		return DecisionGameOver
	}

	if ev.Type == domain.EventScore {
		e.momentum.Push(ev.HomeAway)
	}

	mid, ok := e.book.Mid()
	if !ok {
		return DecisionNoSignal
	}

	tRemain := domain.GameDuration
	if ev.TimeSeconds != nil {
		tRemain = *ev.TimeSeconds
	}

	sig := domain.Evaluate(ev.HomeScore, ev.AwayScore, tRemain, e.momentum.Bias(), mid)
	e.ledger.MarkToMarket(mid)

	qty := math.Round(math.Abs(sig.Edge) * edgeSizing)
	qty = min(max(qty, minOrderQty), maxOrderQty)

	if tRemain < e.cfg.UnwindSeconds && e.ledger.Position != 0 {
		e.unwind(ctx, tRemain)
		return DecisionUnwind
	}

	now := e.now()
	if now.Sub(e.lastAction) < e.cfg.Cooldown {
		return DecisionThrottled
	}

	limits := e.cfg.Limits
	canTrade := limits.CanTrade(qty, e.ledger.Position, e.ledger.Capital, mid, true)

	switch {
	case sig.Edge > e.cfg.EdgeThreshold && canTrade:
		price := mid
		if bid, ok := e.book.BestBid(); ok {
			price = bid + limits.Tick
		}
		price = limits.ClampPrice(price)
		if price < limits.PriceCeil {
			if e.quote(ctx, domain.SideBuy, qty, price, sig) {
				e.lastAction = now
			}
			return DecisionQuote
		}

	case sig.Edge < -e.cfg.EdgeThreshold && canTrade:
		price := mid
		if ask, ok := e.book.BestAsk(); ok {
			price = ask - limits.Tick
		}
		price = limits.ClampPrice(price)
		if price > limits.PriceFloor {
			if e.quote(ctx, domain.SideSell, qty, price, sig) {
				e.lastAction = now
			}
			return DecisionQuote
		}
	}

	return DecisionNoEdge
}

// unwind flattens the whole position with one market order as the game
// clock runs out. Submission failures are logged and swallowed; there
// is no retry.
func (e *Engine) unwind(ctx context.Context, tRemain float64) {
	side := domain.SideSell
	if e.ledger.Position < 0 {
		side = domain.SideBuy
	}
	qty := math.Abs(e.ledger.Position)

	if err := e.executor.PlaceMarketOrder(ctx, side, e.cfg.Ticker, qty); err != nil {
		slog.Warn("unwind: market order failed", "err", err, "side", side, "qty", qty)
		return
	}

	slog.Info("unwind: closing position",
		"position", e.ledger.Position,
		"t_remain", tRemain,
	)
	e.recordOrder(ctx, domain.OrderRecord{
		Side:        side,
		Ticker:      e.cfg.Ticker,
		Kind:        "MARKET",
		Qty:         qty,
		Reason:      string(DecisionUnwind),
		SubmittedAt: e.now(),
	})
}

// quote submits one immediate-or-cancel limit order against the edge.
// It reports whether the venue accepted the submission; the cooldown
// stamp only moves on success.
func (e *Engine) quote(ctx context.Context, side domain.Side, qty, price float64, sig domain.Signal) bool {
	id, err := e.executor.PlaceLimitOrder(ctx, side, e.cfg.Ticker, qty, price, true)
	if err != nil {
		slog.Warn("quote: limit order failed", "err", err, "side", side, "qty", qty, "price", price)
		return false
	}

	slog.Info("quote",
		"side", side,
		"qty", qty,
		"price", price,
		"model_p", sig.ModelP,
		"market_p", sig.MarketP,
		"edge", sig.Edge,
	)
	e.recordOrder(ctx, domain.OrderRecord{
		ID:          id,
		Side:        side,
		Ticker:      e.cfg.Ticker,
		Kind:        "LIMIT",
		Qty:         qty,
		Price:       price,
		IOC:         true,
		Reason:      string(DecisionQuote),
		SubmittedAt: e.now(),
	})
	return true
}

// finishGame emits the final summary and resets every piece of state.
func (e *Engine) finishGame(ctx context.Context) {
	summary := domain.GameSummary{
		Position:      e.ledger.Position,
		AvgCost:       e.ledger.AvgCost,
		RealizedPnL:   e.ledger.RealizedPnL,
		UnrealizedPnL: e.ledger.UnrealizedPnL,
		Capital:       e.ledger.Capital,
		Orders:        e.orders,
		Fills:         e.fills,
		EndedAt:       e.now(),
	}

	slog.Info("game over", "pnl", summary.TotalPnL(), "orders", summary.Orders, "fills", summary.Fills)

	if e.notifier != nil {
		if err := e.notifier.GameOver(ctx, summary); err != nil {
			slog.Warn("notify: game summary failed", "err", err)
		}
	}
	if e.journal != nil {
		if err := e.journal.RecordGame(ctx, summary); err != nil {
			slog.Warn("journal: record game failed", "err", err)
		}
	}

	e.reset()
}

// recordOrder fans a submitted order out to the journal and notifier.
func (e *Engine) recordOrder(ctx context.Context, rec domain.OrderRecord) {
	e.orders++
	if e.journal != nil {
		if err := e.journal.RecordOrder(ctx, rec); err != nil {
			slog.Warn("journal: record order failed", "err", err)
		}
	}
	if e.notifier != nil {
		if err := e.notifier.OrderSubmitted(ctx, rec); err != nil {
			slog.Warn("notify: order failed", "err", err)
		}
	}
}
