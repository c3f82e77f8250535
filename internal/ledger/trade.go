package ledger

import (
	"errors"
	"strings"

	"protrade/types"

	"github.com/shopspring/decimal"
)

var UnknownSideErr = errors.New("unknown trade side")
var EmptySymbolErr = errors.New("symbol must not be empty")
var InvalidQuantityErr = errors.New("quantity must be a positive whole number")
var InvalidPriceErr = errors.New("price must be positive")
var InsufficientFundsErr = errors.New("insufficient funds for buy")
var InsufficientSharesErr = errors.New("insufficient shares for sell")

// ExecuteTrade applies a BUY or SELL at the quoted price and appends the
// matching transaction. Every monetary figure is rounded to 2 decimals at
// the point it is computed, so repeated trades never accumulate float-style
// drift in the stored state.
//
// Rejections are atomic: on any error the account is left exactly as it was.
func (a *Account) ExecuteTrade(side types.Side, symbol string, price decimal.Decimal, quantity int64) (types.Transaction, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return types.Transaction{}, EmptySymbolErr
	}
	if quantity <= 0 {
		return types.Transaction{}, InvalidQuantityErr
	}
	if !price.IsPositive() {
		return types.Transaction{}, InvalidPriceErr
	}

	price = price.Round(2)
	qty := decimal.NewFromInt(quantity)
	gross := price.Mul(qty).Round(2)

	var total decimal.Decimal
	switch side {
	case types.SideTypeBuy:
		if a.cash.LessThan(gross) {
			return types.Transaction{}, InsufficientFundsErr
		}
		a.cash = a.cash.Sub(gross).Round(2)
		if pos, ok := a.positions[symbol]; ok {
			oldQty := decimal.NewFromInt(pos.quantity)
			// Weighted average over the rounded trade cost, so the stored
			// basis matches the cash that actually left the balance.
			newAvg := pos.avgPrice.Mul(oldQty).Add(gross).Div(oldQty.Add(qty)).Round(2)
			pos.quantity += quantity
			pos.avgPrice = newAvg
		} else {
			a.positions[symbol] = &position{
				symbol:   symbol,
				quantity: quantity,
				avgPrice: price,
			}
		}
		total = gross.Neg()

	case types.SideTypeSell:
		pos, ok := a.positions[symbol]
		if !ok || pos.quantity < quantity {
			return types.Transaction{}, InsufficientSharesErr
		}
		a.cash = a.cash.Add(gross).Round(2)
		pos.quantity -= quantity
		if pos.quantity == 0 {
			delete(a.positions, symbol)
		}
		total = gross

	default:
		return types.Transaction{}, UnknownSideErr
	}

	tx := types.NewTransaction(a.now(), side, symbol, price, quantity, total)
	a.transactions = append(a.transactions, tx)
	return tx, nil
}
