package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	coinledger "github.com/coinledger/coinledger"
	"github.com/coinledger/coinledger/renderer"
)

// amountsCmd holds the flags for the 'amounts' subcommand.
type amountsCmd struct {
	assets string
	from   string
	to     string
}

func (*amountsCmd) Name() string     { return "amounts" }
func (*amountsCmd) Synopsis() string { return "display how asset amounts evolved over a time range" }
func (*amountsCmd) Usage() string {
	return `cledger amounts -assets <id>[,<id>...] -from <time> [-to <time>]

  Replays the range for the given assets and displays their combined
  balance at every moment it changed. Balances are relative to the range
  start.
`
}

func (c *amountsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.assets, "assets", "", "Comma-separated asset identifiers")
	f.StringVar(&c.from, "from", "", "Range start (unix seconds or YYYY-MM-DD)")
	f.StringVar(&c.to, "to", "now", "Range end (unix seconds, YYYY-MM-DD, or 'now')")
}

func (c *amountsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.assets == "" || c.from == "" {
		fmt.Fprintln(os.Stderr, "Error: -assets and -from are required")
		return subcommands.ExitUsageError
	}
	var assets []coinledger.Asset
	for _, name := range strings.Split(c.assets, ",") {
		if name = strings.TrimSpace(name); name != "" {
			assets = append(assets, coinledger.Asset(name))
		}
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

	result, err := ledger.AssetAmountsOverRange(ctx, assets, from, to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.AmountsMarkdown(assets, result))
	return subcommands.ExitSuccess
}
