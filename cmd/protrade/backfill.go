package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"protrade/internal/marketdata"
	"protrade/internal/repository"
	"protrade/types"

	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type backfillCmd struct {
	period   string
	interval string
	name     string
	dbURL    string
}

func (*backfillCmd) Name() string     { return "backfill" }
func (*backfillCmd) Synopsis() string { return "fetch a candle series and store it in the cache" }
func (*backfillCmd) Usage() string {
	return `protrade backfill [-period 6mo] [-interval 1d] [-name <display name>] [-db <url>] <symbol>

  Downloads the symbol's candle series from the market data provider and
  stores it in the local cache, so 'terminal -source db' works offline.
  Candles already cached are left untouched.
`
}

func (c *backfillCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "period", "6mo", "historical window to fetch")
	f.StringVar(&c.interval, "interval", "1d", "bar interval to fetch")
	f.StringVar(&c.name, "name", "", "display name for the asset")
	f.StringVar(&c.dbURL, "db", "postgresql://localhost:5432/protrade", "candle cache database url")
}

const insertChunkSize = 500

func (c *backfillCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	provider := marketdata.NewYahooClient()
	candles, err := provider.FetchSeries(ctx, symbol, period, interval)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: fetch %s: %v\n", symbol, err)
		return subcommands.ExitFailure
	}

	db, err := repository.NewDatabase(c.dbURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: connect candle cache: %v\n", err)
		return subcommands.ExitFailure
	}
	defer db.Close()

	name := c.name
	if name == "" {
		name = candles[0].Symbol
	}
	asset, err := db.UpsertAsset(ctx, candles[0].Symbol, name, types.AssetTypeStock)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	bar := initProgressBar(len(candles))
	var stored int64
	for start := 0; start < len(candles); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(candles) {
			end = len(candles)
		}
		n, err := db.InsertCandles(ctx, asset.Id, candles[start:end])
		if err != nil {
			fmt.Fprintf(os.Stderr, "\nError: store candles: %v\n", err)
			return subcommands.ExitFailure
		}
		stored += n
		bar.Add(end - start)
	}

	fmt.Printf("\n%s: stored %d new candles (%d fetched)\n", asset.Ticker, stored, len(candles))
	return subcommands.ExitSuccess
}

func initProgressBar(maxTicks int) *progressbar.ProgressBar {
	return progressbar.NewOptions(maxTicks,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetDescription("Backfilling candles..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
}
