package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alejandrodnm/courtbot/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// Console implements ports.Notifier on stdout.
type Console struct {
	out io.Writer
}

// NewConsole creates a notifier that writes to stdout.
func NewConsole() *Console {
	return &Console{out: os.Stdout}
}

// NewConsoleWriter creates a notifier for tests.
func NewConsoleWriter(w io.Writer) *Console {
	return &Console{out: w}
}

// OrderSubmitted prints one compact line per submitted order.
func (c *Console) OrderSubmitted(_ context.Context, rec domain.OrderRecord) error {
	now := time.Now().Format("15:04:05")
	if rec.Kind == "MARKET" {
		fmt.Fprintf(c.out, "[%s] %s MARKET %s qty=%.0f (%s)\n",
			now, rec.Side, rec.Ticker, rec.Qty, rec.Reason)
		return nil
	}
	ioc := ""
	if rec.IOC {
		ioc = " IOC"
	}
	fmt.Fprintf(c.out, "[%s] %s LIMIT%s %s qty=%.0f @ %.1f\n",
		now, rec.Side, ioc, rec.Ticker, rec.Qty, rec.Price)
	return nil
}

// GameOver prints the final P&L table for the game.
func (c *Console) GameOver(_ context.Context, s domain.GameSummary) error {
	fmt.Fprintf(c.out, "\n=== GAME OVER — final PnL $%.2f ===\n", s.TotalPnL())

	table := tablewriter.NewWriter(c.out)
	table.Header("Position", "Avg cost", "Realized", "Unrealized", "Capital", "Orders", "Fills")
	table.Append(
		fmt.Sprintf("%.0f", s.Position),
		fmt.Sprintf("%.2f", s.AvgCost),
		fmt.Sprintf("$%.2f", s.RealizedPnL),
		fmt.Sprintf("$%.2f", s.UnrealizedPnL),
		fmt.Sprintf("$%.2f", s.Capital),
		fmt.Sprintf("%d", s.Orders),
		fmt.Sprintf("%d", s.Fills),
	)
	table.Render()

	return nil
}
