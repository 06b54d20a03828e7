package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/coinledger/coinledger/renderer"
)

// networthCmd holds the flags for the 'networth' subcommand.
type networthCmd struct {
	from string
	to   string
}

func (*networthCmd) Name() string     { return "networth" }
func (*networthCmd) Synopsis() string { return "display net worth per day over a time range" }
func (*networthCmd) Usage() string {
	return `cledger networth -from <time> [-to <time>]

  Replays the recorded ledger over the range and displays the portfolio's
  value in the main currency at the start of each day with activity.
`
}

func (c *networthCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Range start (unix seconds or YYYY-MM-DD)")
	f.StringVar(&c.to, "to", "now", "Range end (unix seconds, YYYY-MM-DD, or 'now')")
}

func (c *networthCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.from == "" {
		fmt.Fprintln(os.Stderr, "Error: -from is required")
		return subcommands.ExitUsageError
	}
	from, err := parseTimestamp(c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	to, err := parseTimestamp(c.to)
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

	result, err := ledger.NetWorthOverRange(ctx, from, to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.NetWorthMarkdown(result, main))
	return subcommands.ExitSuccess
}
