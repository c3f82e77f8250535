package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"protrade/types"
)

// GetAssetByTicker retrieves a types.Asset by its ticker.
func (db *Database) GetAssetByTicker(ctx context.Context, ticker string) (*types.Asset, error) {
	asset, err := db.assets.GetAssetByTicker(ctx, ticker)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("ticker %s %w", ticker, ErrAssetNotFound)
		}
		return nil, err
	}
	return convertAsset(asset), nil
}

// UpsertAsset registers a ticker (or refreshes its name) and returns the row.
func (db *Database) UpsertAsset(ctx context.Context, ticker, name string, assetType types.AssetType) (*types.Asset, error) {
	asset, err := db.assets.UpsertAsset(ctx, ticker, name, string(assetType))
	if err != nil {
		return nil, fmt.Errorf("upsert asset %s: %w", ticker, err)
	}
	return convertAsset(asset), nil
}

func convertAsset(row assetRow) *types.Asset {
	return &types.Asset{
		Id:         int(row.ID),
		Ticker:     row.Ticker,
		Name:       row.Name,
		Type:       types.AssetType(row.Type),
		CreatedAt:  row.CreatedAt,
		ModifiedAt: row.ModifiedAt,
	}
}
