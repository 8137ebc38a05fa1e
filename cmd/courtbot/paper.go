package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/alejandrodnm/courtbot/internal/adapters/venue"
	"github.com/alejandrodnm/courtbot/internal/application/strategy"
	"github.com/alejandrodnm/courtbot/internal/domain"
)

// gameStep is one scripted feed event of the paper session.
type gameStep struct {
	// book level update (applied when size or price set and kind == "book")
	kind  string // "book", "trade", "event"
	side  domain.Side
	price float64
	size  float64
	event domain.GameEvent
}

func level(side domain.Side, price, size float64) gameStep {
	return gameStep{kind: "book", side: side, price: price, size: size}
}

func trade(price float64) gameStep {
	return gameStep{kind: "trade", price: price}
}

func score(homeAway string, home, away int, tRemain float64) gameStep {
	t := tRemain
	return gameStep{kind: "event", event: domain.GameEvent{
		Type:        domain.EventScore,
		HomeAway:    homeAway,
		HomeScore:   home,
		AwayScore:   away,
		TimeSeconds: &t,
	}}
}

func endGame(home, away int) gameStep {
	t := 0.0
	return gameStep{kind: "event", event: domain.GameEvent{
		Type:        domain.EventEndGame,
		HomeScore:   home,
		AwayScore:   away,
		TimeSeconds: &t,
	}}
}

// demoGame is a plausible fourth-quarter sequence: a book forms, the
// home team pulls away, the edge opens up, and the clock runs out.
var demoGame = []gameStep{
	level(domain.SideBuy, 52, 120),
	level(domain.SideBuy, 51.5, 300),
	level(domain.SideSell, 54, 150),
	level(domain.SideSell, 55, 220),
	trade(53),

	score("home", 78, 74, 600),
	score("home", 80, 74, 560),
	score("away", 80, 76, 530),
	score("home", 83, 76, 470),
	score("home", 85, 76, 420),
	score("home", 88, 76, 350),

	level(domain.SideBuy, 58, 200),
	level(domain.SideSell, 61, 180),
	score("home", 91, 78, 240),
	score("home", 93, 80, 120),

	// inside the unwind window
	score("home", 95, 82, 20),

	endGame(97, 84),
}

// runPaperSession replays the scripted demo game through the engine,
// pacing game events just past the cooldown so throttling behaves as
// it would live.
func runPaperSession(ctx context.Context, eng *strategy.Engine, paper *venue.Paper) {
	slog.Info("=== PAPER SESSION: scripted demo game ===")

	for _, step := range demoGame {
		if ctx.Err() != nil {
			slog.Info("paper session interrupted")
			return
		}

		switch step.kind {
		case "book":
			eng.OnOrderbookUpdate(ctx, domain.TickerTeamA, step.side, step.size, step.price)
		case "trade":
			eng.OnTradeUpdate(ctx, domain.TickerTeamA, domain.SideBuy, 0, step.price)
		case "event":
			if mid, ok := eng.Book().Mid(); ok {
				paper.SetMark(mid)
			}
			eng.OnGameEvent(ctx, step.event)
			time.Sleep(300 * time.Millisecond)
		}
	}

	slog.Info("paper session complete", "orders_filled", paper.Filled(), "capital", paper.Capital())
}
