package marketdata

import (
	"protrade/types"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DeriveMetrics computes the display figures for a series: latest close,
// change against the previous close, percent change, and the last bar's
// high/low/volume. A single-bar series reports zero change.
func DeriveMetrics(candles []types.Candle) (types.SeriesMetrics, error) {
	if len(candles) == 0 {
		return types.SeriesMetrics{}, ErrDataUnavailable
	}

	last := candles[len(candles)-1]
	lastClose := last.Close.Round(2)

	prevClose := lastClose
	if len(candles) > 1 {
		prevClose = candles[len(candles)-2].Close
	}

	change := lastClose.Sub(prevClose).Round(2)
	changePct := decimal.Zero
	if !prevClose.IsZero() {
		changePct = change.Div(prevClose).Mul(hundred).Round(2)
	}

	return types.SeriesMetrics{
		Symbol:        last.Symbol,
		LastPrice:     lastClose,
		Change:        change,
		ChangePercent: changePct,
		High:          last.High.Round(2),
		Low:           last.Low.Round(2),
		Volume:        last.Volume,
		Timestamp:     last.Timestamp,
	}, nil
}
