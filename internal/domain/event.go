package domain

// Side is the direction of an order or fill.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Opposite returns the side that flattens a fill on this side.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// Ticker identifies the traded contract. Single-instrument deployment;
// the type exists so the venue contract stays explicit.
type Ticker string

const TickerTeamA Ticker = "TEAM_A"

// EventType classifies inbound game-state events.
type EventType string

const (
	// EventScore is a generic scoring event attributed to one team.
	EventScore EventType = "SCORE"
	// EventEndGame terminates the game; the strategy resets after it.
	EventEndGame EventType = "END_GAME"
)

// GameEvent is one entry of the game-state feed. Most fields are only
// present for some event types; optional numerics are pointers so the
// feed can omit them.
type GameEvent struct {
	Type        EventType
	HomeAway    string // "home" or "away", the originating team
	HomeScore   int
	AwayScore   int
	PlayerName  string
	Substituted string
	ShotType    string
	AssistedBy  string
	ReboundType string
	CoordX      *float64
	CoordY      *float64
	TimeSeconds *float64 // game clock remaining; nil before tip-off
}
