package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgQueries runs the handwritten SQL against the pool. See schema.sql for
// the expected tables.
type pgQueries struct {
	conn *pgxpool.Pool
}

const getAssetByTickerSQL = `
SELECT id, ticker, name, type, created_at, modified_at
FROM assets
WHERE ticker = $1`

func (q *pgQueries) GetAssetByTicker(ctx context.Context, ticker string) (assetRow, error) {
	var row assetRow
	err := q.conn.QueryRow(ctx, getAssetByTickerSQL, ticker).
		Scan(&row.ID, &row.Ticker, &row.Name, &row.Type, &row.CreatedAt, &row.ModifiedAt)
	return row, err
}

const upsertAssetSQL = `
INSERT INTO assets (ticker, name, type)
VALUES ($1, $2, $3)
ON CONFLICT (ticker) DO UPDATE SET name = EXCLUDED.name, modified_at = now()
RETURNING id, ticker, name, type, created_at, modified_at`

func (q *pgQueries) UpsertAsset(ctx context.Context, ticker, name, assetType string) (assetRow, error) {
	var row assetRow
	err := q.conn.QueryRow(ctx, upsertAssetSQL, ticker, name, assetType).
		Scan(&row.ID, &row.Ticker, &row.Name, &row.Type, &row.CreatedAt, &row.ModifiedAt)
	return row, err
}

const getCandlesSQL = `
SELECT asset_id, interval, ts, open, high, low, close, volume
FROM candles
WHERE asset_id = $1 AND interval = $2 AND ts >= $3 AND ts < $4
ORDER BY ts ASC`

func (q *pgQueries) GetCandles(ctx context.Context, assetID int32, interval string, start, end time.Time) ([]candleRow, error) {
	rows, err := q.conn.Query(ctx, getCandlesSQL, assetID, interval, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []candleRow
	for rows.Next() {
		var row candleRow
		if err := rows.Scan(&row.AssetID, &row.Interval, &row.Bucket,
			&row.Open, &row.High, &row.Low, &row.Close, &row.Volume); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

const getLatestCandleSQL = `
SELECT asset_id, interval, ts, open, high, low, close, volume
FROM candles
WHERE asset_id = $1
ORDER BY ts DESC
LIMIT 1`

func (q *pgQueries) GetLatestCandle(ctx context.Context, assetID int32) (candleRow, error) {
	var row candleRow
	err := q.conn.QueryRow(ctx, getLatestCandleSQL, assetID).
		Scan(&row.AssetID, &row.Interval, &row.Bucket,
			&row.Open, &row.High, &row.Low, &row.Close, &row.Volume)
	return row, err
}

const insertCandleSQL = `
INSERT INTO candles (asset_id, interval, ts, open, high, low, close, volume)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (asset_id, interval, ts) DO NOTHING`

func (q *pgQueries) InsertCandles(ctx context.Context, rows []candleRow) (int64, error) {
	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(insertCandleSQL, row.AssetID, row.Interval, row.Bucket,
			row.Open, row.High, row.Low, row.Close, row.Volume)
	}
	results := q.conn.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int64
	for range rows {
		tag, err := results.Exec()
		if err != nil {
			return inserted, err
		}
		inserted += tag.RowsAffected()
	}
	return inserted, nil
}
