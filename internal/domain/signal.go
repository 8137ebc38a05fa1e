package domain

// GameDuration is the regulation length of a game in seconds.
const GameDuration = 2400.0

// Signal is the output of one win-probability evaluation.
type Signal struct {
	ModelP  float64 // model-estimated home win probability
	MarketP float64 // market-implied probability, mid / 100
	Edge    float64 // ModelP - MarketP
}

// Evaluate derives the model's home win probability from the score and
// clock, adjusts for one-sided momentum, and compares it against the
// market-implied probability.
//
// Formula:
//
//	timeFactor = 1 - tRemain/2400
//	modelP     = 0.5 + 0.012×(home-away) + 0.25×timeFactor + 0.03×bias
//
// modelP is clamped to [0.01, 0.99]. The caller must have a defined
// mid price before evaluating; there is no fallback here.
func Evaluate(homeScore, awayScore int, tRemain float64, bias int, mid float64) Signal {
	timeFactor := 1 - tRemain/GameDuration
	modelP := 0.5 + 0.012*float64(homeScore-awayScore) + 0.25*timeFactor
	modelP += 0.03 * float64(bias)
	modelP = min(max(modelP, 0.01), 0.99)

	marketP := mid / 100.0
	return Signal{
		ModelP:  modelP,
		MarketP: marketP,
		Edge:    modelP - marketP,
	}
}
