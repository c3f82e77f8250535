package ledger

import (
	"time"

	"protrade/types"

	"github.com/shopspring/decimal"
)

// DefaultStartingCash is the paper balance a fresh session starts with.
var DefaultStartingCash = decimal.RequireFromString("100000.00")

// Account owns the paper-trading state for one session: cash balance, open
// positions keyed by symbol, and an append-only transaction log. It is not
// safe for concurrent use; a session drives it from a single goroutine.
type Account struct {
	cash         decimal.Decimal
	positions    map[string]*position
	transactions []types.Transaction
	startingCash decimal.Decimal

	now func() time.Time
}

type position struct {
	symbol   string
	quantity int64
	avgPrice decimal.Decimal
}

func NewAccount(startingCash decimal.Decimal) *Account {
	return &Account{
		cash:         startingCash.Round(2),
		positions:    make(map[string]*position),
		startingCash: startingCash.Round(2),
		now:          time.Now,
	}
}

// Reset reinitializes the account to its starting state. Calling it on a
// fresh account is a no-op in effect.
func (a *Account) Reset() {
	a.cash = a.startingCash
	a.positions = make(map[string]*position)
	a.transactions = nil
}

func (a *Account) Cash() decimal.Decimal {
	return a.cash
}

// Snapshot returns a deep copy of the account state. The caller may hold or
// mutate it freely without touching the live account.
func (a *Account) Snapshot() types.AccountView {
	view := types.AccountView{
		Cash:      a.cash,
		Positions: make(map[string]types.PositionView, len(a.positions)),
	}
	for sym, pos := range a.positions {
		view.Positions[sym] = types.PositionView{
			Symbol:   pos.symbol,
			Quantity: pos.quantity,
			AvgPrice: pos.avgPrice,
		}
	}
	view.Transactions = append([]types.Transaction(nil), a.transactions...)
	return view
}
