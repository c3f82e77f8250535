package terminal

import (
	"bytes"
	"testing"
	"time"

	"protrade/internal/ledger"
	"protrade/types"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRendererValuation(t *testing.T) {
	var buf bytes.Buffer
	render := NewRenderer(&buf)

	render.Valuation(types.Valuation{
		Cash: decimal.RequireFromString("98000.00"),
		Positions: []types.PositionValuation{
			{
				Symbol:        "AAPL",
				Quantity:      10,
				AvgPrice:      decimal.RequireFromString("100.00"),
				CurrentPrice:  decimal.RequireFromString("120.00"),
				Source:        types.PriceSourceLive,
				MarketValue:   decimal.RequireFromString("1200.00"),
				UnrealizedPnL: decimal.RequireFromString("200.00"),
			},
			{
				Symbol:        "MSFT",
				Quantity:      5,
				AvgPrice:      decimal.RequireFromString("200.00"),
				CurrentPrice:  decimal.RequireFromString("200.00"),
				Source:        types.PriceSourceCostBasis,
				MarketValue:   decimal.RequireFromString("1000.00"),
				UnrealizedPnL: decimal.RequireFromString("0.00"),
			},
		},
		TotalEquity: decimal.RequireFromString("2200.00"),
		NetWorth:    decimal.RequireFromString("100200.00"),
		Degraded:    true,
	})

	out := buf.String()
	assert.Contains(t, out, "Net Worth:    $100200.00")
	assert.Contains(t, out, "$200.00*", "cost-basis price must carry the fallback marker")
	assert.Contains(t, out, "valued at average cost", "degraded valuation must be called out")
}

func TestRendererValuationEmptyPortfolio(t *testing.T) {
	var buf bytes.Buffer
	render := NewRenderer(&buf)

	render.Valuation(types.Valuation{
		Cash:        decimal.RequireFromString("100000.00"),
		TotalEquity: decimal.Zero,
		NetWorth:    decimal.RequireFromString("100000.00"),
	})

	out := buf.String()
	assert.Contains(t, out, "Portfolio is empty")
	assert.Contains(t, out, "Cash Balance: $100000.00")
}

func TestRendererOutcome(t *testing.T) {
	var buf bytes.Buffer
	render := NewRenderer(&buf)

	tx := types.NewTransaction(time.UnixMilli(1), types.SideTypeBuy, "AAPL",
		decimal.RequireFromString("150.25"), 10, decimal.RequireFromString("-1502.50"))
	render.Outcome(tx, nil)
	assert.Contains(t, buf.String(), "Bought 10 AAPL @ $150.25")

	buf.Reset()
	render.Outcome(types.Transaction{}, ledger.InsufficientFundsErr)
	assert.Contains(t, buf.String(), "Insufficient Funds")

	buf.Reset()
	render.Outcome(types.Transaction{}, ledger.InsufficientSharesErr)
	assert.Contains(t, buf.String(), "Insufficient Shares")
}

func TestRendererUnavailable(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf).Unavailable("NOPE")
	assert.Contains(t, buf.String(), "market data unavailable")
}
