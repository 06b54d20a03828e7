package renderer

import (
	"bytes"
	"sort"

	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"

	coinledger "github.com/coinledger/coinledger"
)

// BalancesMarkdown renders the full-portfolio snapshot: one row per held
// asset with its amount, unit price and value, sorted by value descending.
// Assets whose price was missing show an empty price and value.
func BalancesMarkdown(at coinledger.Timestamp, balances map[coinledger.Asset]coinledger.HistoricalBalance, mainCurrency coinledger.Asset) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Balances at " + formatTime(at))

	type row struct {
		asset   coinledger.Asset
		balance coinledger.HistoricalBalance
		value   decimal.Decimal
	}
	rows := make([]row, 0, len(balances))
	for asset, b := range balances {
		rows = append(rows, row{asset: asset, balance: b, value: b.Amount.Mul(b.Price)})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].value.Equal(rows[j].value) {
			return rows[i].value.GreaterThan(rows[j].value)
		}
		return rows[i].asset < rows[j].asset
	})

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Asset", "Amount", "Price", "Value"},
	}
	total := decimal.Zero
	for _, r := range rows {
		price, value := "", ""
		if !r.balance.Price.IsZero() {
			price = coinledger.NewMoney(r.balance.Price, mainCurrency).String()
			value = coinledger.NewMoney(r.value, mainCurrency).String()
			total = total.Add(r.value)
		}
		table.Rows = append(table.Rows, []string{
			r.asset.String(),
			r.balance.Amount.String(),
			price,
			value,
		})
	}
	table.Rows = append(table.Rows, []string{
		md.Bold("Total"), "", "",
		md.Bold(coinledger.NewMoney(total, mainCurrency).String()),
	})
	doc.Table(table)

	return doc.String()
}

// AssetBalanceMarkdown renders a single asset's snapshot.
func AssetBalanceMarkdown(asset coinledger.Asset, at coinledger.Timestamp, b coinledger.HistoricalBalance, mainCurrency coinledger.Asset) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(asset.String() + " at " + formatTime(at))

	price, value := "", ""
	if !b.Price.IsZero() {
		price = coinledger.NewMoney(b.Price, mainCurrency).String()
		value = coinledger.NewMoney(b.Amount.Mul(b.Price), mainCurrency).String()
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", ""},
		Rows: [][]string{
			{"Amount", b.Amount.String()},
			{"Price", price},
			{"Value", value},
		},
	})

	return doc.String()
}
