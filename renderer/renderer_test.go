package renderer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	coinledger "github.com/coinledger/coinledger"
)

func TestBalancesMarkdown(t *testing.T) {
	balances := map[coinledger.Asset]coinledger.HistoricalBalance{
		"BTC": {Amount: decimal.RequireFromString("0.5"), Price: decimal.RequireFromString("30000")},
		"USD": {Amount: decimal.RequireFromString("100"), Price: decimal.RequireFromString("1")},
	}
	doc := BalancesMarkdown(1700000000, balances, "USD")

	for _, want := range []string{"# Balances at", "BTC", "0.5", "$15,000.00", "Total", "$15,100.00"} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q:\n%s", want, doc)
		}
	}
	// Highest value first.
	if strings.Index(doc, "BTC") > strings.Index(doc, "USD") {
		t.Error("rows must be sorted by value descending")
	}
}

func TestNetWorthMarkdownHalt(t *testing.T) {
	result := &coinledger.NetWorth{
		Values: map[coinledger.Timestamp]decimal.Decimal{
			1700006400: decimal.RequireFromString("42"),
		},
		LastEvent: &coinledger.Halt{ItemID: "9", GroupID: "bad"},
	}
	doc := NetWorthMarkdown(result, "USD")
	if !strings.Contains(doc, "Replay stopped at item 9") {
		t.Errorf("document missing halt note:\n%s", doc)
	}
}

func TestAmountsMarkdown(t *testing.T) {
	result := &coinledger.AssetAmounts{
		Amounts: map[coinledger.Timestamp]decimal.Decimal{
			1700000000: decimal.RequireFromString("2"),
			1700000100: decimal.RequireFromString("1.5"),
		},
	}
	doc := AmountsMarkdown([]coinledger.Asset{"BTC"}, result)
	if !strings.Contains(doc, "# Amounts of BTC") {
		t.Errorf("missing title:\n%s", doc)
	}
	if strings.Index(doc, "2023-11-14 22:13:20") > strings.Index(doc, "22:15:00") {
		t.Error("rows must be chronological")
	}
}
