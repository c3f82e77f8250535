package terminal

import (
	"context"
	"errors"
	"sort"
	"strings"

	"protrade/internal/ledger"
	"protrade/internal/marketdata"
	"protrade/types"

	"github.com/shopspring/decimal"
)

var NoMarketPriceErr = errors.New("no market price loaded for active symbol")
var UnknownPeriodErr = errors.New("unknown time period")
var UnknownIntervalErr = errors.New("unknown chart interval")

type SessionConfig struct {
	Symbol       string
	Period       types.Period
	Interval     types.Interval
	StartingCash decimal.Decimal
}

func NewSessionConfig() *SessionConfig {
	return &SessionConfig{
		Symbol:       "AAPL",
		Period:       types.OneDay,
		Interval:     types.OneMinute,
		StartingCash: ledger.DefaultStartingCash,
	}
}

// Session ties one account to one market data provider for the lifetime of a
// terminal run. All mutation goes through it, one operation at a time; the
// account is dropped with the session.
type Session struct {
	account  *ledger.Account
	provider marketdata.Provider

	symbol   string
	period   types.Period
	interval types.Interval

	candles []types.Candle
	metrics types.SeriesMetrics
	hasData bool
}

func NewSession(provider marketdata.Provider, config *SessionConfig) *Session {
	if config == nil {
		config = NewSessionConfig()
	}
	return &Session{
		account:  ledger.NewAccount(config.StartingCash),
		provider: provider,
		symbol:   strings.ToUpper(strings.TrimSpace(config.Symbol)),
		period:   config.Period,
		interval: config.Interval,
	}
}

func (s *Session) Symbol() string {
	return s.symbol
}

func (s *Session) Window() (types.Period, types.Interval) {
	return s.period, s.interval
}

func (s *Session) Candles() []types.Candle {
	return s.candles
}

// Metrics returns the derived figures for the loaded series. The bool is
// false while no usable series is loaded (fresh symbol, failed refresh).
func (s *Session) Metrics() (types.SeriesMetrics, bool) {
	return s.metrics, s.hasData
}

func (s *Session) AccountView() types.AccountView {
	return s.account.Snapshot()
}

// SelectSymbol switches the active symbol. Loaded chart data is dropped
// until the next refresh so trades can never fill at another symbol's price.
func (s *Session) SelectSymbol(symbol string) error {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return ledger.EmptySymbolErr
	}
	if symbol != s.symbol {
		s.symbol = symbol
		s.candles = nil
		s.metrics = types.SeriesMetrics{}
		s.hasData = false
	}
	return nil
}

func (s *Session) SelectWindow(period string, interval string) error {
	p, ok := types.ConvertPeriod[period]
	if !ok {
		return UnknownPeriodErr
	}
	i, ok := types.ConvertInterval[interval]
	if !ok {
		return UnknownIntervalErr
	}
	s.period = p
	s.interval = i
	return nil
}

// Refresh fetches the active chart series and recomputes its metrics. On
// failure the session degrades to a no-data state; it never keeps stale bars
// around as if they were fresh.
func (s *Session) Refresh(ctx context.Context) error {
	candles, err := s.provider.FetchSeries(ctx, s.symbol, s.period, s.interval)
	if err != nil {
		s.candles = nil
		s.metrics = types.SeriesMetrics{}
		s.hasData = false
		return err
	}
	metrics, err := marketdata.DeriveMetrics(candles)
	if err != nil {
		s.candles = nil
		s.hasData = false
		return err
	}
	s.candles = candles
	s.metrics = metrics
	s.hasData = true
	return nil
}

// Buy fills at the latest refreshed price of the active symbol.
func (s *Session) Buy(quantity int64) (types.Transaction, error) {
	return s.trade(types.SideTypeBuy, quantity)
}

// Sell fills at the latest refreshed price of the active symbol.
func (s *Session) Sell(quantity int64) (types.Transaction, error) {
	return s.trade(types.SideTypeSell, quantity)
}

func (s *Session) trade(side types.Side, quantity int64) (types.Transaction, error) {
	if quantity <= 0 {
		return types.Transaction{}, ledger.InvalidQuantityErr
	}
	if !s.hasData {
		return types.Transaction{}, NoMarketPriceErr
	}
	return s.account.ExecuteTrade(side, s.symbol, s.metrics.LastPrice, quantity)
}

func (s *Session) ResetAccount() {
	s.account.Reset()
}

// Portfolio values the account against a fresh batch of quotes. Held symbols
// whose quote does not resolve are valued at cost basis and flagged. The
// active symbol's freshly refreshed price wins over the batch quote.
func (s *Session) Portfolio(ctx context.Context) types.Valuation {
	view := s.account.Snapshot()
	if len(view.Positions) == 0 {
		return ledger.Valuate(view, nil)
	}

	symbols := make([]string, 0, len(view.Positions))
	for sym := range view.Positions {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	quotes, err := s.provider.FetchLatestPrices(ctx, symbols)
	if err != nil || quotes == nil {
		quotes = map[string]decimal.Decimal{}
	}
	if s.hasData {
		if _, held := view.Positions[s.symbol]; held {
			quotes[s.symbol] = s.metrics.LastPrice
		}
	}
	return ledger.Valuate(view, quotes)
}

// History returns the transaction log newest-first. Storage order is
// untouched; this is a view concern only.
func (s *Session) History() []types.Transaction {
	view := s.account.Snapshot()
	txs := view.Transactions
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Time.After(txs[j].Time) })
	return txs
}
