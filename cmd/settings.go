package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	coinledger "github.com/coinledger/coinledger"
)

// ignoreCmd manages the ignored-assets list.
type ignoreCmd struct {
	remove bool
	list   bool
}

func (*ignoreCmd) Name() string     { return "ignore" }
func (*ignoreCmd) Synopsis() string { return "manage assets excluded from every report" }
func (*ignoreCmd) Usage() string {
	return `cledger ignore [-rm] <asset>...
cledger ignore -list

  Ignored assets (spam tokens, dust) are excluded from balance replay and
  valuation entirely.
`
}

func (c *ignoreCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.remove, "rm", false, "Remove the assets from the ignore list")
	f.BoolVar(&c.list, "list", false, "List ignored assets")
}

func (c *ignoreCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, s, err := openLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	if c.list {
		assets, err := s.IgnoredAssets(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		for _, a := range assets {
			fmt.Println(a)
		}
		return subcommands.ExitSuccess
	}

	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: no assets given")
		return subcommands.ExitUsageError
	}
	for _, arg := range f.Args() {
		asset := coinledger.Asset(arg)
		if c.remove {
			err = s.UnignoreAsset(ctx, asset)
		} else {
			err = s.IgnoreAsset(ctx, asset)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

// currencyCmd reads or sets the main currency.
type currencyCmd struct{}

func (*currencyCmd) Name() string     { return "currency" }
func (*currencyCmd) Synopsis() string { return "show or set the main valuation currency" }
func (*currencyCmd) Usage() string {
	return `cledger currency [<asset>]

  Without an argument, prints the current main currency. With one, sets it.
`
}

func (*currencyCmd) SetFlags(*flag.FlagSet) {}

func (c *currencyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, s, err := openLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.Close()

	if f.NArg() == 0 {
		main, err := s.MainCurrency(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(main)
		return subcommands.ExitSuccess
	}

	if err := s.SetMainCurrency(ctx, coinledger.Asset(f.Arg(0))); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
