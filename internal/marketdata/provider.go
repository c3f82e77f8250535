package marketdata

import (
	"context"
	"errors"

	"protrade/types"

	"github.com/shopspring/decimal"
)

// Global error declarations.
var (
	ErrDataUnavailable      = errors.New("no market data available")
	ErrIntervalNotSupported = errors.New("interval not supported")
	ErrPeriodNotSupported   = errors.New("period not supported")
)

// Provider serves historical bars and latest quotes for ticker symbols.
//
// FetchSeries returns candles ordered ascending by timestamp, or
// ErrDataUnavailable when the symbol resolves to no usable series.
//
// FetchLatestPrices resolves each requested symbol independently and returns
// whatever subset could be quoted; a symbol that fails to resolve is simply
// absent from the result, it never fails the batch.
type Provider interface {
	FetchSeries(ctx context.Context, symbol string, period types.Period, interval types.Interval) ([]types.Candle, error)
	FetchLatestPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error)
}
