package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	coinledger "github.com/coinledger/coinledger"
	"github.com/coinledger/coinledger/renderer"
)

// balancesCmd holds the flags for the 'balances' subcommand.
type balancesCmd struct {
	at    string
	asset string
}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "display asset balances at a point in time" }
func (*balancesCmd) Usage() string {
	return `cledger balances [-at <time>] [-asset <id>]

  Replays the recorded ledger up to the given time and displays the
  resulting balances, priced in the main currency. With -asset, only that
  asset is replayed and displayed.
`
}

func (c *balancesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.at, "at", "now", "Point in time (unix seconds, YYYY-MM-DD, or 'now')")
	f.StringVar(&c.asset, "asset", "", "Restrict to a single asset identifier")
}

func (c *balancesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	at, err := parseTimestamp(c.at)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, s, err := openLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	main, err := s.MainCurrency(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.asset != "" {
		asset := coinledger.Asset(c.asset)
		balance, err := ledger.AssetBalance(ctx, asset, at)
		if errors.Is(err, coinledger.ErrNoHistory) {
			fmt.Fprintf(os.Stderr, "No historical data found for %s until %s.\n", asset, c.at)
			return subcommands.ExitSuccess
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.AssetBalanceMarkdown(asset, at, balance, main))
		return subcommands.ExitSuccess
	}

	balances, err := ledger.Balances(ctx, at)
	if errors.Is(err, coinledger.ErrNoHistory) {
		fmt.Fprintf(os.Stderr, "No historical data found until %s.\n", c.at)
		return subcommands.ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.BalancesMarkdown(at, balances, main))
	return subcommands.ExitSuccess
}
