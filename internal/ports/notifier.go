package ports

import (
	"context"

	"github.com/alejandrodnm/courtbot/internal/domain"
)

// Notifier presents strategy status to the user.
type Notifier interface {
	// OrderSubmitted prints a one-line note for a submitted order.
	OrderSubmitted(ctx context.Context, rec domain.OrderRecord) error

	// GameOver prints the final P&L summary for the game.
	GameOver(ctx context.Context, s domain.GameSummary) error
}
