package terminal

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"protrade/internal/ledger"
	"protrade/types"

	"github.com/mitchellh/colorstring"
	"github.com/shopspring/decimal"
)

// Renderer writes the terminal views. It only ever reads snapshots and
// derived metrics; all state lives in the session.
type Renderer struct {
	out io.Writer
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

func (r *Renderer) Metrics(m types.SeriesMetrics) {
	tone := "[green]"
	if m.Change.IsNegative() {
		tone = "[red]"
	}
	fmt.Fprintf(r.out, "===== %s =====\n", m.Symbol)
	fmt.Fprintf(r.out, "Price:   $%s  %s\n", m.LastPrice.StringFixed(2),
		colorstring.Color(fmt.Sprintf("%s%s (%s%%)[reset]", tone, m.Change.StringFixed(2), m.ChangePercent.StringFixed(2))))
	fmt.Fprintf(r.out, "High:    $%s\n", m.High.StringFixed(2))
	fmt.Fprintf(r.out, "Low:     $%s\n", m.Low.StringFixed(2))
	fmt.Fprintf(r.out, "Volume:  %s\n", m.Volume.StringFixed(0))
	fmt.Fprintf(r.out, "As of:   %s\n", m.Timestamp.Format("2006-01-02 15:04:05 MST"))
}

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Sparkline draws the close series as a one-line chart, downsampled to fit.
func (r *Renderer) Sparkline(candles []types.Candle) {
	const width = 60
	if len(candles) == 0 {
		return
	}

	closes := make([]decimal.Decimal, 0, width)
	stride := (len(candles) + width - 1) / width
	for i := 0; i < len(candles); i += stride {
		closes = append(closes, candles[i].Close)
	}

	min, max := closes[0], closes[0]
	for _, c := range closes[1:] {
		if c.LessThan(min) {
			min = c
		}
		if c.GreaterThan(max) {
			max = c
		}
	}

	var line strings.Builder
	span := max.Sub(min)
	for _, c := range closes {
		level := 0
		if span.IsPositive() {
			level = int(c.Sub(min).Div(span).Mul(decimal.NewFromInt(int64(len(sparkLevels) - 1))).Round(0).IntPart())
		}
		if level < 0 {
			level = 0
		}
		if level >= len(sparkLevels) {
			level = len(sparkLevels) - 1
		}
		line.WriteRune(sparkLevels[level])
	}
	fmt.Fprintf(r.out, "%s\n", line.String())
}

func (r *Renderer) Unavailable(symbol string) {
	fmt.Fprintln(r.out, colorstring.Color(fmt.Sprintf("[yellow]%s: ticker not found or market data unavailable[reset]", symbol)))
}

func (r *Renderer) Balance(cash decimal.Decimal) {
	fmt.Fprintf(r.out, "Cash Balance: $%s\n", cash.StringFixed(2))
}

func (r *Renderer) Valuation(v types.Valuation) {
	if len(v.Positions) == 0 {
		fmt.Fprintln(r.out, "Portfolio is empty. Buy stocks to see them here.")
		r.Balance(v.Cash)
		return
	}

	fmt.Fprintf(r.out, "%-8s %8s %12s %14s %14s %14s\n",
		"Symbol", "Qty", "Avg Cost", "Price", "Mkt Value", "Unrlzd P/L")
	for _, p := range v.Positions {
		price := "$" + p.CurrentPrice.StringFixed(2)
		if p.Source == types.PriceSourceCostBasis {
			price += "*"
		}
		pnl := "$" + p.UnrealizedPnL.StringFixed(2)
		if p.UnrealizedPnL.IsNegative() {
			pnl = colorstring.Color("[red]" + pnl + "[reset]")
		} else if p.UnrealizedPnL.IsPositive() {
			pnl = colorstring.Color("[green]" + pnl + "[reset]")
		}
		fmt.Fprintf(r.out, "%-8s %8d %12s %14s %14s %14s\n",
			p.Symbol, p.Quantity, "$"+p.AvgPrice.StringFixed(2), price,
			"$"+p.MarketValue.StringFixed(2), pnl)
	}

	r.Balance(v.Cash)
	fmt.Fprintf(r.out, "Total Equity: $%s\n", v.TotalEquity.StringFixed(2))
	fmt.Fprintf(r.out, "Net Worth:    $%s\n", v.NetWorth.StringFixed(2))
	if v.Degraded {
		fmt.Fprintln(r.out, colorstring.Color("[yellow]* no live quote, valued at average cost[reset]"))
	}
}

func (r *Renderer) History(txs []types.Transaction) {
	if len(txs) == 0 {
		fmt.Fprintln(r.out, "No transactions yet.")
		return
	}
	fmt.Fprintf(r.out, "%-20s %-4s %-8s %10s %6s %12s\n",
		"Date", "Type", "Symbol", "Price", "Qty", "Total")
	for _, tx := range txs {
		fmt.Fprintf(r.out, "%-20s %-4s %-8s %10s %6d %12s\n",
			tx.Time.Format("2006-01-02 15:04:05"), tx.Side, tx.Symbol,
			"$"+tx.Price.StringFixed(2), tx.Quantity, tx.Total.StringFixed(2))
	}
}

func (r *Renderer) Outcome(tx types.Transaction, err error) {
	if err == nil {
		verb := "Bought"
		if tx.Side == types.SideTypeSell {
			verb = "Sold"
		}
		fmt.Fprintln(r.out, colorstring.Color(fmt.Sprintf("[green]%s %d %s @ $%s[reset]",
			verb, tx.Quantity, tx.Symbol, tx.Price.StringFixed(2))))
		return
	}

	reason := err.Error()
	switch {
	case errors.Is(err, ledger.InsufficientFundsErr):
		reason = "Insufficient Funds"
	case errors.Is(err, ledger.InsufficientSharesErr):
		reason = "Insufficient Shares"
	case errors.Is(err, NoMarketPriceErr):
		reason = "No market price loaded, refresh first"
	}
	fmt.Fprintln(r.out, colorstring.Color("[red]Rejected: "+reason+"[reset]"))
}
