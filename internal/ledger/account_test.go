package ledger

import (
	"testing"

	"protrade/types"

	"github.com/shopspring/decimal"
)

func TestAccountResetIsIdempotent(t *testing.T) {
	account := NewAccount(DefaultStartingCash)
	mustTrade(t, account, types.SideTypeBuy, "AAPL", "100.00", 10)
	mustTrade(t, account, types.SideTypeSell, "AAPL", "110.00", 5)

	account.Reset()
	once := account.Snapshot()
	account.Reset()
	twice := account.Snapshot()

	for _, view := range []types.AccountView{once, twice} {
		if !view.Cash.Equal(DefaultStartingCash) {
			t.Errorf("cash after reset = %v, want %v", view.Cash, DefaultStartingCash)
		}
		if len(view.Positions) != 0 {
			t.Errorf("positions after reset = %d entries, want 0", len(view.Positions))
		}
		if len(view.Transactions) != 0 {
			t.Errorf("transactions after reset = %d entries, want 0", len(view.Transactions))
		}
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	account := NewAccount(DefaultStartingCash)
	mustTrade(t, account, types.SideTypeBuy, "AAPL", "100.00", 10)

	view := account.Snapshot()
	view.Positions["AAPL"] = types.PositionView{Symbol: "AAPL", Quantity: 999}
	view.Transactions[0].Symbol = "HACKED"

	fresh := account.Snapshot()
	if fresh.Positions["AAPL"].Quantity != 10 {
		t.Errorf("account position mutated through snapshot: quantity = %d", fresh.Positions["AAPL"].Quantity)
	}
	if fresh.Transactions[0].Symbol != "AAPL" {
		t.Errorf("account transaction mutated through snapshot: symbol = %s", fresh.Transactions[0].Symbol)
	}
}

func TestTransactionLogKeepsInsertionOrder(t *testing.T) {
	account := NewAccount(DefaultStartingCash)
	mustTrade(t, account, types.SideTypeBuy, "AAPL", "100.00", 1)
	mustTrade(t, account, types.SideTypeBuy, "MSFT", "200.00", 1)
	mustTrade(t, account, types.SideTypeSell, "AAPL", "101.00", 1)

	wantSymbols := []string{"AAPL", "MSFT", "AAPL"}
	wantSides := []types.Side{types.SideTypeBuy, types.SideTypeBuy, types.SideTypeSell}
	view := account.Snapshot()
	for i := range wantSymbols {
		if view.Transactions[i].Symbol != wantSymbols[i] || view.Transactions[i].Side != wantSides[i] {
			t.Errorf("transaction %d = %s %s, want %s %s",
				i, view.Transactions[i].Side, view.Transactions[i].Symbol, wantSides[i], wantSymbols[i])
		}
	}
}

func mustTrade(t *testing.T, account *Account, side types.Side, symbol, price string, quantity int64) types.Transaction {
	t.Helper()
	tx, err := account.ExecuteTrade(side, symbol, decimal.RequireFromString(price), quantity)
	if err != nil {
		t.Fatalf("ExecuteTrade(%v %s) error = %v", side, symbol, err)
	}
	return tx
}
