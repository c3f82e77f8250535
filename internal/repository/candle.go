package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"protrade/types"
)

var supportedIntervals = map[types.Interval]bool{
	types.OneMinute:      true,
	types.FiveMinutes:    true,
	types.FifteenMinutes: true,
	types.Hour:           true,
	types.Day:            true,
}

// GetCandles loads cached candles for a ticker, ordered ascending.
func (db *Database) GetCandles(ctx context.Context, ticker string, interval types.Interval, start, end time.Time) ([]types.Candle, error) {
	if !supportedIntervals[interval] {
		return nil, ErrIntervalNotSupported
	}
	asset, err := db.GetAssetByTicker(ctx, ticker)
	if err != nil {
		return nil, err
	}
	rows, err := db.candles.GetCandles(ctx, int32(asset.Id), string(interval), start, end)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoCandles
	}
	return convertCandles(rows, interval, ticker), nil
}

// InsertCandles stores a fetched series for later offline use. Candles
// already present (same asset, interval, timestamp) are left untouched.
// Returns the number of newly stored rows.
func (db *Database) InsertCandles(ctx context.Context, assetID int, candles []types.Candle) (int64, error) {
	if len(candles) == 0 {
		return 0, nil
	}
	rows := make([]candleRow, 0, len(candles))
	for _, c := range candles {
		rows = append(rows, candleRow{
			AssetID:  int32(assetID),
			Interval: string(c.Interval),
			Bucket:   c.Timestamp,
			Open:     c.Open,
			High:     c.High,
			Low:      c.Low,
			Close:    c.Close,
			Volume:   c.Volume,
		})
	}
	return db.candles.InsertCandles(ctx, rows)
}

// GetLatestCandle returns the most recent cached candle for a ticker on any
// interval.
func (db *Database) GetLatestCandle(ctx context.Context, ticker string) (*types.Candle, error) {
	asset, err := db.GetAssetByTicker(ctx, ticker)
	if err != nil {
		return nil, err
	}
	row, err := db.candles.GetLatestCandle(ctx, int32(asset.Id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoCandles
		}
		return nil, err
	}
	candle := convertCandle(row, types.Interval(row.Interval), ticker)
	return &candle, nil
}

func convertCandles(rows []candleRow, interval types.Interval, ticker string) []types.Candle {
	var candles []types.Candle
	for _, row := range rows {
		candles = append(candles, convertCandle(row, interval, ticker))
	}
	return candles
}

func convertCandle(row candleRow, interval types.Interval, ticker string) types.Candle {
	return types.Candle{
		Symbol:    ticker,
		Open:      row.Open,
		High:      row.High,
		Low:       row.Low,
		Close:     row.Close,
		Volume:    row.Volume,
		Interval:  interval,
		Timestamp: row.Bucket,
	}
}
