package strategy

import (
	"context"
	"log/slog"
	"time"

	"github.com/alejandrodnm/courtbot/internal/domain"
	"github.com/alejandrodnm/courtbot/internal/ports"
)

const (
	defaultEdgeThreshold = 0.05
	defaultCooldown      = 250 * time.Millisecond
	defaultUnwindSeconds = 30.0

	maxOrderQty = 5.0
	minOrderQty = 1.0
	edgeSizing  = 20.0 // contracts per unit of edge before clamping
)

// Config holds the tunable strategy parameters.
type Config struct {
	Ticker        domain.Ticker
	Limits        domain.Limits
	EdgeThreshold float64
	Cooldown      time.Duration
	UnwindSeconds float64 // game clock below which open positions are flattened
}

// DefaultConfig returns the deployed parameter set.
func DefaultConfig() Config {
	return Config{
		Ticker:        domain.TickerTeamA,
		Limits:        domain.DefaultLimits(),
		EdgeThreshold: defaultEdgeThreshold,
		Cooldown:      defaultCooldown,
		UnwindSeconds: defaultUnwindSeconds,
	}
}

// Engine is the strategy for one game contract. The feed drives it
// through the four On* callbacks; it emits at most one order per game
// event through the executor.
//
// The engine is single-threaded by contract: the feed delivers events
// one at a time, so there is no locking. Submissions are
// fire-and-forget; position and capital change only on account updates.
type Engine struct {
	cfg Config

	book     *domain.Book
	ledger   *domain.Ledger
	momentum domain.Momentum

	executor ports.OrderExecutor
	journal  ports.Journal  // optional
	notifier ports.Notifier // optional

	now        func() time.Time
	lastAction time.Time // stamp of the last edge-driven submission

	orders int
	fills  int
}

// New wires a strategy engine. journal and notifier may be nil.
func New(cfg Config, executor ports.OrderExecutor, journal ports.Journal, notifier ports.Notifier) *Engine {
	if cfg.Ticker == "" {
		cfg.Ticker = domain.TickerTeamA
	}
	if cfg.Limits == (domain.Limits{}) {
		cfg.Limits = domain.DefaultLimits()
	}
	if cfg.EdgeThreshold <= 0 {
		cfg.EdgeThreshold = defaultEdgeThreshold
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = defaultCooldown
	}
	if cfg.UnwindSeconds <= 0 {
		cfg.UnwindSeconds = defaultUnwindSeconds
	}
	return &Engine{
		cfg:      cfg,
		book:     domain.NewBook(),
		ledger:   domain.NewLedger(),
		executor: executor,
		journal:  journal,
		notifier: notifier,
		now:      time.Now,
	}
}

// SetClock injects a clock for deterministic cooldown tests.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// Ledger exposes the position state for status output.
func (e *Engine) Ledger() *domain.Ledger {
	return e.ledger
}

// Book exposes the tracked order book.
func (e *Engine) Book() *domain.Book {
	return e.book
}

// OnTradeUpdate records a public trade print.
func (e *Engine) OnTradeUpdate(_ context.Context, ticker domain.Ticker, side domain.Side, qty, price float64) {
	e.book.ApplyTrade(price)
}

// OnOrderbookUpdate upserts one resting level; qty ≤ 0 removes it.
func (e *Engine) OnOrderbookUpdate(_ context.Context, ticker domain.Ticker, side domain.Side, qty, price float64) {
	e.book.ApplyLevel(side, price, qty)
}

// OnAccountUpdate applies a fill notification and the venue's capital
// snapshot. Capital is taken verbatim; it is never derived from fills.
func (e *Engine) OnAccountUpdate(ctx context.Context, ticker domain.Ticker, side domain.Side, price, qty, capitalRemaining float64) {
	e.ledger.SetCapital(capitalRemaining)
	e.ledger.RecordFill(side, price, qty)
	e.fills++

	if e.journal != nil {
		rec := domain.FillRecord{
			Side:         side,
			Price:        price,
			Qty:          qty,
			CapitalAfter: capitalRemaining,
			At:           e.now(),
		}
		if err := e.journal.RecordFill(ctx, rec); err != nil {
			slog.Warn("journal: record fill failed", "err", err)
		}
	}

	slog.Debug("fill",
		"side", side,
		"price", price,
		"qty", qty,
		"position", e.ledger.Position,
		"avg_cost", e.ledger.AvgCost,
		"realized", e.ledger.RealizedPnL,
		"capital", capitalRemaining,
	)
}

// reset restores every piece of per-game state to its initial value.
func (e *Engine) reset() {
	e.book.Reset()
	e.ledger.Reset()
	e.momentum.Reset()
	e.lastAction = time.Time{}
	e.orders = 0
	e.fills = 0
}
