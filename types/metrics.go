package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeriesMetrics are the display figures derived from the latest bars of a
// candle series.
type SeriesMetrics struct {
	Symbol        string
	LastPrice     decimal.Decimal
	Change        decimal.Decimal
	ChangePercent decimal.Decimal
	High          decimal.Decimal
	Low           decimal.Decimal
	Volume        decimal.Decimal
	Timestamp     time.Time
}
