package renderer

import (
	"bytes"
	"sort"

	md "github.com/nao1215/markdown"

	coinledger "github.com/coinledger/coinledger"
)

// NetWorthMarkdown renders the day-bucketed net worth series, one row per
// day in chronological order, followed by the price gaps encountered and a
// note if replay stopped early.
func NetWorthMarkdown(r *coinledger.NetWorth, mainCurrency coinledger.Asset) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Net Worth")

	days := make([]coinledger.Timestamp, 0, len(r.Values))
	for day := range r.Values {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Day", "Value"},
	}
	for _, day := range days {
		table.Rows = append(table.Rows, []string{
			formatDay(day),
			coinledger.NewMoney(r.Values[day], mainCurrency).String(),
		})
	}
	doc.Table(table)

	if len(r.MissingPrices) > 0 {
		doc.H2("Missing Prices")
		var items []string
		for _, miss := range r.MissingPrices {
			items = append(items, miss.Asset.String()+" at "+formatDay(miss.Timestamp))
		}
		doc.BulletList(items...)
	}

	if r.LastEvent != nil {
		doc.PlainText(haltNote(r.LastEvent))
	}

	return doc.String()
}
