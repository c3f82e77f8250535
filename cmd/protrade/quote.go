package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"protrade/internal/marketdata"
	"protrade/internal/terminal"
	"protrade/types"

	"github.com/google/subcommands"
)

type quoteCmd struct {
	period   string
	interval string
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "print the latest quote and chart metrics for a symbol" }
func (*quoteCmd) Usage() string {
	return `protrade quote [-period <1d|5d|1mo|6mo>] [-interval <1m|5m|15m|1h|1d>] <symbol>

  Fetches the symbol's candle series and prints latest price, change,
  high/low/volume and a close-price sparkline.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", "1d", "historical window")
	f.StringVar(&c.interval, "interval", "1m", "bar interval")
}

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol := f.Arg(0)
	if symbol == "" {
		fmt.Fprint(os.Stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	period, ok := types.ConvertPeriod[c.period]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown period %q\n", c.period)
		return subcommands.ExitUsageError
	}
	interval, ok := types.ConvertInterval[c.interval]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown interval %q\n", c.interval)
		return subcommands.ExitUsageError
	}

	render := terminal.NewRenderer(os.Stdout)
	provider := marketdata.NewYahooClient()

	candles, err := provider.FetchSeries(ctx, symbol, period, interval)
	if err != nil {
		render.Unavailable(symbol)
		return subcommands.ExitFailure
	}
	metrics, err := marketdata.DeriveMetrics(candles)
	if err != nil {
		render.Unavailable(symbol)
		return subcommands.ExitFailure
	}

	render.Metrics(metrics)
	render.Sparkline(candles)
	return subcommands.ExitSuccess
}
