package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"protrade/internal/marketdata"
	"protrade/types"

	"github.com/shopspring/decimal"
)

// The database doubles as an offline market data source so the terminal can
// run against backfilled candles with no network. Database satisfies
// marketdata.Provider.

func (db *Database) FetchSeries(ctx context.Context, symbol string, period types.Period, interval types.Interval) ([]types.Candle, error) {
	dur, ok := types.PeriodToTime[period]
	if !ok {
		return nil, marketdata.ErrPeriodNotSupported
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	end := time.Now()
	candles, err := db.GetCandles(ctx, symbol, interval, end.Add(-dur), end)
	if err != nil {
		if errors.Is(err, ErrIntervalNotSupported) {
			return nil, marketdata.ErrIntervalNotSupported
		}
		if errors.Is(err, ErrAssetNotFound) || errors.Is(err, ErrNoCandles) {
			return nil, fmt.Errorf("symbol %s: %v: %w", symbol, err, marketdata.ErrDataUnavailable)
		}
		return nil, err
	}
	return candles, nil
}

func (db *Database) FetchLatestPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	prices := make(map[string]decimal.Decimal, len(symbols))
	for _, symbol := range symbols {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			continue
		}
		candle, err := db.GetLatestCandle(ctx, symbol)
		if err != nil {
			continue
		}
		prices[symbol] = candle.Close.Round(2)
	}
	return prices, nil
}
