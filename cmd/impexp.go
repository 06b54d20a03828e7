package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	coinledger "github.com/coinledger/coinledger"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct {
	trades string
	events string
	prices string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import trades, events or prices from JSONL files" }
func (*importCmd) Usage() string {
	return `cledger import [-trades <file>] [-events <file>] [-prices <file>]

  Imports records in the JSONL import/export format into the database.
  Importing the same file twice is safe: trades and events are keyed.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.trades, "trades", "", "JSONL file of trades")
	f.StringVar(&c.events, "events", "", "JSONL file of history events")
	f.StringVar(&c.prices, "prices", "", "JSONL file of historical prices")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.trades == "" && c.events == "" && c.prices == "" {
		fmt.Fprintln(os.Stderr, "Error: nothing to import, pass -trades, -events or -prices")
		return subcommands.ExitUsageError
	}

	_, s, err := openLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	if c.trades != "" {
		file, err := os.Open(c.trades)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		trades, err := coinledger.ImportTrades(file)
		file.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := s.SaveTrades(ctx, trades); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Imported %d trades from %s\n", len(trades), c.trades)
	}

	if c.events != "" {
		file, err := os.Open(c.events)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		events, err := coinledger.ImportEvents(file)
		file.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := s.SaveEvents(ctx, events); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Imported %d history events from %s\n", len(events), c.events)
	}

	if c.prices != "" {
		file, err := os.Open(c.prices)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		prices, err := coinledger.ImportPrices(file)
		file.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if err := s.SavePrices(ctx, prices); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Imported %d price points from %s\n", len(prices), c.prices)
	}

	return subcommands.ExitSuccess
}

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	trades string
	from   string
	to     string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export trades to a JSONL file" }
func (*exportCmd) Usage() string {
	return `cledger export -trades <file> [-from <time>] [-to <time>]

  Writes trades in the JSONL import/export format, optionally restricted to
  a time range.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.trades, "trades", "", "Destination JSONL file for trades")
	f.StringVar(&c.from, "from", "", "Range start (unix seconds or YYYY-MM-DD)")
	f.StringVar(&c.to, "to", "now", "Range end (unix seconds, YYYY-MM-DD, or 'now')")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.trades == "" {
		fmt.Fprintln(os.Stderr, "Error: -trades is required")
		return subcommands.ExitUsageError
	}

	filter := coinledger.TradeFilter{}
	if c.from != "" {
		from, err := parseTimestamp(c.from)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		filter.From = &from
	}
	to, err := parseTimestamp(c.to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	filter.To = &to

	_, s, err := openLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	cursor, err := s.Trades(ctx, filter)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer cursor.Close()

	file, err := os.Create(c.trades)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer file.Close()

	total := 0
	for {
		page, err := cursor.Fetch(250)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		if len(page) == 0 {
			break
		}
		if err := coinledger.ExportTrades(file, page); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		total += len(page)
	}
	fmt.Printf("Exported %d trades to %s\n", total, c.trades)
	return subcommands.ExitSuccess
}
