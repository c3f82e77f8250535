package types

import (
	"github.com/shopspring/decimal"
)

// PriceSource records where the price used for a position valuation came
// from. Valuation falls back to the stored average cost when no live quote
// resolves, and that approximation is flagged rather than silent.
type PriceSource string

const (
	PriceSourceLive      PriceSource = "LIVE"
	PriceSourceCostBasis PriceSource = "COST_BASIS"
)

type PositionValuation struct {
	Symbol        string
	Quantity      int64
	AvgPrice      decimal.Decimal
	CurrentPrice  decimal.Decimal
	Source        PriceSource
	MarketValue   decimal.Decimal
	UnrealizedPnL decimal.Decimal
}

// Valuation is a point-in-time picture of the whole account.
// Degraded is true when at least one position was valued off its cost basis.
type Valuation struct {
	Cash        decimal.Decimal
	Positions   []PositionValuation
	TotalEquity decimal.Decimal
	NetWorth    decimal.Decimal
	Degraded    bool
}
