package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is one executed fill against the account. Total is signed:
// negative for a BUY (cash out), positive for a SELL (cash in).
type Transaction struct {
	ID       uuid.UUID
	Time     time.Time
	Side     Side
	Symbol   string
	Price    decimal.Decimal
	Quantity int64
	Total    decimal.Decimal
}

func NewTransaction(
	time time.Time,
	side Side,
	symbol string,
	price decimal.Decimal,
	quantity int64,
	total decimal.Decimal,
) Transaction {
	return Transaction{
		ID:       uuid.New(),
		Time:     time,
		Side:     side,
		Symbol:   symbol,
		Price:    price,
		Quantity: quantity,
		Total:    total,
	}
}
