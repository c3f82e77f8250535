package ledger

import (
	"sort"

	"protrade/types"

	"github.com/shopspring/decimal"
)

// Valuate prices an account snapshot against the supplied live quotes.
// A held symbol missing from quotes (or quoted non-positive) is valued at
// its stored average cost; the position is flagged COST_BASIS and the whole
// valuation is marked degraded.
func Valuate(view types.AccountView, quotes map[string]decimal.Decimal) types.Valuation {
	v := types.Valuation{Cash: view.Cash}

	symbols := make([]string, 0, len(view.Positions))
	for sym := range view.Positions {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	totalEquity := decimal.Zero
	for _, sym := range symbols {
		pos := view.Positions[sym]
		qty := decimal.NewFromInt(pos.Quantity)

		price, ok := quotes[sym]
		source := types.PriceSourceLive
		if !ok || !price.IsPositive() {
			price = pos.AvgPrice
			source = types.PriceSourceCostBasis
			v.Degraded = true
		}
		price = price.Round(2)

		marketValue := price.Mul(qty).Round(2)
		costBasis := pos.AvgPrice.Mul(qty).Round(2)
		totalEquity = totalEquity.Add(marketValue)

		v.Positions = append(v.Positions, types.PositionValuation{
			Symbol:        sym,
			Quantity:      pos.Quantity,
			AvgPrice:      pos.AvgPrice,
			CurrentPrice:  price,
			Source:        source,
			MarketValue:   marketValue,
			UnrealizedPnL: marketValue.Sub(costBasis).Round(2),
		})
	}

	v.TotalEquity = totalEquity.Round(2)
	v.NetWorth = view.Cash.Add(v.TotalEquity).Round(2)
	return v
}
