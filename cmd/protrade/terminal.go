package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"protrade/internal/marketdata"
	"protrade/internal/repository"
	"protrade/internal/terminal"
	"protrade/types"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type terminalCmd struct {
	symbol   string
	period   string
	interval string
	cash     string
	source   string
	dbURL    string
}

func (*terminalCmd) Name() string     { return "terminal" }
func (*terminalCmd) Synopsis() string { return "run the interactive paper-trading terminal" }
func (*terminalCmd) Usage() string {
	return `protrade terminal [-symbol AAPL] [-period 1d] [-interval 1m] [-cash 100000.00] [-source yahoo|db] [-db <url>]

  Starts an interactive session against a fresh paper account. The account
  lives only as long as the session. Commands at the prompt:

    symbol <ticker>        switch the active symbol
    window <period> <interval>
    refresh                reload the chart series
    buy <qty> | sell <qty> trade at the latest refreshed price
    portfolio              positions, equity and net worth
    history                transaction log, newest first
    balance                cash balance
    reset                  reset the account to its starting state
    live [seconds]         auto-refresh until Ctrl-C (2s..60s)
    quit
`
}

func (c *terminalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "symbol", "AAPL", "initial ticker symbol")
	f.StringVar(&c.period, "period", "1d", "historical window")
	f.StringVar(&c.interval, "interval", "1m", "bar interval")
	f.StringVar(&c.cash, "cash", "100000.00", "starting paper cash balance")
	f.StringVar(&c.source, "source", "yahoo", "market data source (yahoo or db)")
	f.StringVar(&c.dbURL, "db", "postgresql://localhost:5432/protrade", "candle cache database url (source=db)")
}

func (c *terminalCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	config := terminal.NewSessionConfig()
	config.Symbol = c.symbol

	period, ok := types.ConvertPeriod[c.period]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown period %q\n", c.period)
		return subcommands.ExitUsageError
	}
	config.Period = period
	interval, ok := types.ConvertInterval[c.interval]
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown interval %q\n", c.interval)
		return subcommands.ExitUsageError
	}
	config.Interval = interval

	cash, err := decimal.NewFromString(c.cash)
	if err != nil || !cash.IsPositive() {
		fmt.Fprintf(os.Stderr, "Error: invalid starting cash %q\n", c.cash)
		return subcommands.ExitUsageError
	}
	config.StartingCash = cash

	var provider marketdata.Provider
	switch c.source {
	case "yahoo":
		provider = marketdata.NewYahooClient()
	case "db":
		db, err := repository.NewDatabase(c.dbURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: connect candle cache: %v\n", err)
			return subcommands.ExitFailure
		}
		defer db.Close()
		provider = &db
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown source %q\n", c.source)
		return subcommands.ExitUsageError
	}

	session := terminal.NewSession(provider, config)
	render := terminal.NewRenderer(os.Stdout)

	refresh(ctx, session, render)
	repl(ctx, session, render)
	return subcommands.ExitSuccess
}

func repl(ctx context.Context, session *terminal.Session, render *terminal.Renderer) {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("protrade:%s> ", session.Symbol())
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if done := runCommand(ctx, session, render, fields); done {
			return
		}
	}
}

// runCommand executes one prompt line. Returns true when the session should
// end. Every failure is reported and recovered; nothing here terminates the
// session.
func runCommand(ctx context.Context, session *terminal.Session, render *terminal.Renderer, fields []string) bool {
	switch fields[0] {
	case "quit", "exit":
		return true

	case "symbol":
		if len(fields) != 2 {
			fmt.Println("usage: symbol <ticker>")
			return false
		}
		if err := session.SelectSymbol(fields[1]); err != nil {
			fmt.Printf("Error: %v\n", err)
			return false
		}
		refresh(ctx, session, render)

	case "window":
		if len(fields) != 3 {
			fmt.Println("usage: window <1d|5d|1mo|6mo> <1m|5m|15m|1h|1d>")
			return false
		}
		if err := session.SelectWindow(fields[1], fields[2]); err != nil {
			fmt.Printf("Error: %v\n", err)
			return false
		}
		refresh(ctx, session, render)

	case "refresh":
		refresh(ctx, session, render)

	case "buy", "sell":
		if len(fields) != 2 {
			fmt.Printf("usage: %s <quantity>\n", fields[0])
			return false
		}
		quantity, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil || quantity <= 0 {
			fmt.Printf("Error: quantity must be a positive whole number\n")
			return false
		}
		if fields[0] == "buy" {
			render.Outcome(session.Buy(quantity))
		} else {
			render.Outcome(session.Sell(quantity))
		}

	case "portfolio":
		render.Valuation(session.Portfolio(ctx))

	case "history":
		render.History(session.History())

	case "balance":
		render.Balance(session.AccountView().Cash)

	case "reset":
		session.ResetAccount()
		fmt.Println("Account reset.")
		render.Balance(session.AccountView().Cash)

	case "live":
		every := 5 * time.Second
		if len(fields) == 2 {
			seconds, err := strconv.Atoi(fields[1])
			if err != nil || seconds <= 0 {
				fmt.Println("usage: live [seconds]")
				return false
			}
			every = time.Duration(seconds) * time.Second
		}
		live(ctx, session, render, every)

	case "help":
		fmt.Print((&terminalCmd{}).Usage())

	default:
		fmt.Printf("unknown command %q, try help\n", fields[0])
	}
	return false
}

// live auto-refreshes until interrupted. Ctrl-C stops the loop and returns
// to the prompt; it never tears the session down.
func live(ctx context.Context, session *terminal.Session, render *terminal.Renderer, every time.Duration) {
	every = terminal.ClampLiveInterval(every)
	fmt.Printf("Live mode every %s, Ctrl-C to stop.\n", every)

	loopCtx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	_ = session.Live(loopCtx, every, func(s *terminal.Session, err error) {
		fmt.Print("\033[2J\033[H")
		if err != nil {
			render.Unavailable(s.Symbol())
			return
		}
		if metrics, ok := s.Metrics(); ok {
			render.Metrics(metrics)
			render.Sparkline(s.Candles())
		}
		render.Valuation(s.Portfolio(loopCtx))
	})
	fmt.Println("\nLive mode stopped.")
}

func refresh(ctx context.Context, session *terminal.Session, render *terminal.Renderer) {
	if err := session.Refresh(ctx); err != nil {
		render.Unavailable(session.Symbol())
		return
	}
	if metrics, ok := session.Metrics(); ok {
		render.Metrics(metrics)
		render.Sparkline(session.Candles())
	}
}
