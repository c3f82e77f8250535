package types

import (
	"github.com/shopspring/decimal"
)

// AccountView is a detached snapshot of the ledger state. Mutating it has no
// effect on the account it was taken from.
type AccountView struct {
	Cash         decimal.Decimal
	Positions    map[string]PositionView
	Transactions []Transaction
}

type PositionView struct {
	Symbol   string
	Quantity int64
	AvgPrice decimal.Decimal
}
