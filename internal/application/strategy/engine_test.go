package strategy

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/courtbot/internal/domain"
)

type submittedMarket struct {
	side domain.Side
	qty  float64
}

type submittedLimit struct {
	side  domain.Side
	qty   float64
	price float64
	ioc   bool
}

// fakeExecutor records submissions and can be told to fail.
type fakeExecutor struct {
	markets []submittedMarket
	limits  []submittedLimit
	err     error
}

func (f *fakeExecutor) PlaceMarketOrder(_ context.Context, side domain.Side, _ domain.Ticker, qty float64) error {
	if f.err != nil {
		return f.err
	}
	f.markets = append(f.markets, submittedMarket{side: side, qty: qty})
	return nil
}

func (f *fakeExecutor) PlaceLimitOrder(_ context.Context, side domain.Side, _ domain.Ticker, qty, price float64, ioc bool) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.limits = append(f.limits, submittedLimit{side: side, qty: qty, price: price, ioc: ioc})
	return "order-1", nil
}

func (f *fakeExecutor) CancelOrder(_ context.Context, _ domain.Ticker, _ string) (bool, error) {
	return false, nil
}

// testEngine wires an engine with a fake executor and a controllable
// clock starting at a fixed instant.
func testEngine(t *testing.T) (*Engine, *fakeExecutor, *time.Time) {
	t.Helper()
	exec := &fakeExecutor{}
	eng := New(DefaultConfig(), exec, nil, nil)

	now := time.Unix(1700000000, 0)
	eng.SetClock(func() time.Time { return now })
	return eng, exec, &now
}

// quoteBook builds a two-sided book with mid 60 (bid 58 / ask 62).
func quoteBook(eng *Engine) {
	ctx := context.Background()
	eng.OnOrderbookUpdate(ctx, domain.TickerTeamA, domain.SideBuy, 100, 58)
	eng.OnOrderbookUpdate(ctx, domain.TickerTeamA, domain.SideSell, 100, 62)
}

func scoreEvent(home, away int, tRemain float64) domain.GameEvent {
	t := tRemain
	return domain.GameEvent{
		Type:        domain.EventScore,
		HomeAway:    "home",
		HomeScore:   home,
		AwayScore:   away,
		TimeSeconds: &t,
	}
}

func TestEngine_NoMidNoDecision(t *testing.T) {
	eng, exec, _ := testEngine(t)

	d := eng.OnGameEvent(context.Background(), scoreEvent(60, 50, 600))
	assert.Equal(t, DecisionNoSignal, d)
	assert.Empty(t, exec.limits)
	assert.Empty(t, exec.markets)
}

func TestEngine_WorkedExampleQuote(t *testing.T) {
	eng, exec, _ := testEngine(t)
	quoteBook(eng)

	// mid 60 → marketP 0.6; home 60-50 at t=0 → modelP 0.87, edge 0.27
	// qty = clamp(round(0.27×20)=5, 1, 5) = 5, price = bestBid + tick
	d := eng.OnGameEvent(context.Background(), scoreEvent(60, 50, 0))
	assert.Equal(t, DecisionQuote, d)

	require.Len(t, exec.limits, 1)
	ord := exec.limits[0]
	assert.Equal(t, domain.SideBuy, ord.side)
	assert.Equal(t, 5.0, ord.qty)
	assert.Equal(t, 58.5, ord.price)
	assert.True(t, ord.ioc)
}

func TestEngine_SellQuoteOnNegativeEdge(t *testing.T) {
	eng, exec, _ := testEngine(t)
	quoteBook(eng)

	// away blowout late: modelP clamps low, market at 0.6 → deep
	// negative edge → sell one tick under the ask
	d := eng.OnGameEvent(context.Background(), scoreEvent(50, 80, 60))
	assert.Equal(t, DecisionQuote, d)

	require.Len(t, exec.limits, 1)
	ord := exec.limits[0]
	assert.Equal(t, domain.SideSell, ord.side)
	assert.Equal(t, 61.5, ord.price)
}

func TestEngine_SizingClampMinimum(t *testing.T) {
	eng, exec, _ := testEngine(t)
	ctx := context.Background()
	// thin edge just over the threshold: mid 59 → marketP 0.59;
	// modelP 0.5+0.012×8+0.25×(1-1800/2400)=0.6585 → edge 0.0685
	// qty = clamp(round(1.37)=1, 1, 5) = 1
	eng.OnOrderbookUpdate(ctx, domain.TickerTeamA, domain.SideBuy, 100, 58)
	eng.OnOrderbookUpdate(ctx, domain.TickerTeamA, domain.SideSell, 100, 60)

	d := eng.OnGameEvent(ctx, scoreEvent(58, 50, 1800))
	assert.Equal(t, DecisionQuote, d)
	require.Len(t, exec.limits, 1)
	assert.Equal(t, 1.0, exec.limits[0].qty)
}

func TestEngine_ThrottleSuppressesSecondOrder(t *testing.T) {
	eng, exec, now := testEngine(t)
	quoteBook(eng)
	ctx := context.Background()

	d := eng.OnGameEvent(ctx, scoreEvent(60, 50, 0))
	assert.Equal(t, DecisionQuote, d)

	*now = now.Add(100 * time.Millisecond) // inside the 250ms cooldown
	d = eng.OnGameEvent(ctx, scoreEvent(62, 50, 0))
	assert.Equal(t, DecisionThrottled, d)
	assert.Len(t, exec.limits, 1)

	*now = now.Add(200 * time.Millisecond) // past the cooldown
	d = eng.OnGameEvent(ctx, scoreEvent(62, 50, 0))
	assert.Equal(t, DecisionQuote, d)
	assert.Len(t, exec.limits, 2)
}

func TestEngine_NoEdgeDoesNotStampThrottle(t *testing.T) {
	eng, exec, now := testEngine(t)
	quoteBook(eng)
	ctx := context.Background()

	// mid 60, tied game at half time → no edge
	d := eng.OnGameEvent(ctx, scoreEvent(60, 60, 1200))
	assert.Equal(t, DecisionNoEdge, d)

	*now = now.Add(10 * time.Millisecond)
	d = eng.OnGameEvent(ctx, scoreEvent(60, 50, 0))
	assert.Equal(t, DecisionQuote, d)
	assert.Len(t, exec.limits, 1)
}

func TestEngine_UnwindPriority(t *testing.T) {
	eng, exec, _ := testEngine(t)
	quoteBook(eng)
	ctx := context.Background()

	// long 7 via the account feed
	eng.OnAccountUpdate(ctx, domain.TickerTeamA, domain.SideBuy, 55, 7, 9615)

	d := eng.OnGameEvent(ctx, scoreEvent(90, 70, 10))
	assert.Equal(t, DecisionUnwind, d)

	require.Len(t, exec.markets, 1)
	assert.Equal(t, domain.SideSell, exec.markets[0].side)
	assert.Equal(t, 7.0, exec.markets[0].qty)
	// no edge-based order on the same event
	assert.Empty(t, exec.limits)
}

func TestEngine_UnwindBuysBackShort(t *testing.T) {
	eng, exec, _ := testEngine(t)
	quoteBook(eng)
	ctx := context.Background()

	eng.OnAccountUpdate(ctx, domain.TickerTeamA, domain.SideSell, 55, 4, 10220)

	d := eng.OnGameEvent(ctx, scoreEvent(90, 70, 5))
	assert.Equal(t, DecisionUnwind, d)
	require.Len(t, exec.markets, 1)
	assert.Equal(t, domain.SideBuy, exec.markets[0].side)
	assert.Equal(t, 4.0, exec.markets[0].qty)
}

func TestEngine_UnwindSwallowsSubmissionFailure(t *testing.T) {
	eng, exec, _ := testEngine(t)
	quoteBook(eng)
	ctx := context.Background()

	eng.OnAccountUpdate(ctx, domain.TickerTeamA, domain.SideBuy, 55, 7, 9615)
	exec.err = errors.New("venue down")

	assert.NotPanics(t, func() {
		d := eng.OnGameEvent(ctx, scoreEvent(90, 70, 10))
		assert.Equal(t, DecisionUnwind, d)
	})
}

func TestEngine_QuoteFailureDoesNotStampThrottle(t *testing.T) {
	eng, exec, now := testEngine(t)
	quoteBook(eng)
	ctx := context.Background()

	exec.err = errors.New("venue down")
	d := eng.OnGameEvent(ctx, scoreEvent(60, 50, 0))
	// the decision was to quote even though the venue rejected it
	assert.Equal(t, DecisionQuote, d)
	assert.Empty(t, exec.limits)

	exec.err = nil
	*now = now.Add(time.Second)
	d = eng.OnGameEvent(ctx, scoreEvent(60, 50, 0))
	assert.Equal(t, DecisionQuote, d)
	assert.Len(t, exec.limits, 1)
}

func TestEngine_CeilingGuardBlocksBuy(t *testing.T) {
	eng, exec, _ := testEngine(t)
	ctx := context.Background()

	// best bid at the ceiling → post price clamps to 100, not < 100
	eng.OnOrderbookUpdate(ctx, domain.TickerTeamA, domain.SideBuy, 100, 100)
	eng.OnOrderbookUpdate(ctx, domain.TickerTeamA, domain.SideSell, 100, 100)
	// mid 100 → marketP 1.0: force a buy edge with a stale cheap book
	// is impossible here, so use the trade-print fallback instead
	eng.OnOrderbookUpdate(ctx, domain.TickerTeamA, domain.SideSell, 0, 100)
	eng.OnTradeUpdate(ctx, domain.TickerTeamA, domain.SideBuy, 1, 60)

	// one-sided book: mid falls back to last trade 60... but the bid
	// at 100 still prices the quote at 100 + tick → clamped, blocked
	d := eng.OnGameEvent(ctx, scoreEvent(60, 50, 0))
	assert.Equal(t, DecisionNoEdge, d)
	assert.Empty(t, exec.limits)
}

func TestEngine_FloorGuardBlocksSell(t *testing.T) {
	eng, exec, _ := testEngine(t)
	ctx := context.Background()

	// one-sided ask at the floor: sell would post at 0 - tick → clamped
	eng.OnOrderbookUpdate(ctx, domain.TickerTeamA, domain.SideSell, 100, 0.5)
	eng.OnTradeUpdate(ctx, domain.TickerTeamA, domain.SideSell, 1, 45)

	d := eng.OnGameEvent(ctx, scoreEvent(50, 80, 60))
	assert.Equal(t, DecisionNoEdge, d)
	assert.Empty(t, exec.limits)
}

func TestEngine_RiskRejectionBlocksQuote(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Limits.MaxContracts = 5
	exec := &fakeExecutor{}
	eng := New(cfg, exec, nil, nil)
	now := time.Unix(1700000000, 0)
	eng.SetClock(func() time.Time { return now })
	quoteBook(eng)
	ctx := context.Background()

	// already holding 3: a 5-lot would breach the 5-contract cap
	eng.OnAccountUpdate(ctx, domain.TickerTeamA, domain.SideBuy, 55, 3, 9835)

	d := eng.OnGameEvent(ctx, scoreEvent(60, 50, 600))
	assert.Equal(t, DecisionNoEdge, d)
	assert.Empty(t, exec.limits)
}

func TestEngine_EndGameResetsEverything(t *testing.T) {
	eng, exec, now := testEngine(t)
	quoteBook(eng)
	ctx := context.Background()

	eng.OnAccountUpdate(ctx, domain.TickerTeamA, domain.SideBuy, 55, 5, 9725)
	eng.OnGameEvent(ctx, scoreEvent(60, 50, 600))
	require.NotEmpty(t, exec.limits)

	d := eng.OnGameEvent(ctx, domain.GameEvent{Type: domain.EventEndGame})
	assert.Equal(t, DecisionGameOver, d)

	l := eng.Ledger()
	assert.Equal(t, 0.0, l.Position)
	assert.Equal(t, 0.0, l.AvgCost)
	assert.Equal(t, 0.0, l.RealizedPnL)
	assert.Equal(t, domain.InitialCapital, l.Capital)

	_, ok := eng.Book().Mid()
	assert.False(t, ok)

	// the throttle stamp is gone too: an immediate edge quotes again
	quoteBook(eng)
	*now = now.Add(time.Millisecond)
	d = eng.OnGameEvent(ctx, scoreEvent(60, 50, 0))
	assert.Equal(t, DecisionQuote, d)
}

func TestEngine_OneOrderPerEvent(t *testing.T) {
	eng, exec, now := testEngine(t)
	quoteBook(eng)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		eng.OnGameEvent(ctx, scoreEvent(60+i, 50, 0))
		*now = now.Add(time.Second)
	}
	// five events, each at most one submission
	assert.LessOrEqual(t, len(exec.limits)+len(exec.markets), 5)
}
