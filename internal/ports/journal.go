package ports

import (
	"context"

	"github.com/alejandrodnm/courtbot/internal/domain"
)

// Journal records what the strategy did during a game: submitted
// orders, reported fills, and the final summary. It is a record, not a
// store — nothing is ever read back to rebuild strategy state.
type Journal interface {
	// RecordOrder persists one submitted order.
	RecordOrder(ctx context.Context, rec domain.OrderRecord) error

	// RecordFill persists one fill from the account feed.
	RecordFill(ctx context.Context, rec domain.FillRecord) error

	// RecordGame persists the end-of-game summary.
	RecordGame(ctx context.Context, s domain.GameSummary) error
}
