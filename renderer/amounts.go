package renderer

import (
	"bytes"
	"sort"
	"strings"

	md "github.com/nao1215/markdown"

	coinledger "github.com/coinledger/coinledger"
)

// AmountsMarkdown renders the change-point series of a set of assets'
// combined balance: one row per moment the balance changed.
func AmountsMarkdown(assets []coinledger.Asset, r *coinledger.AssetAmounts) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	names := make([]string, 0, len(assets))
	for _, a := range assets {
		names = append(names, a.String())
	}
	doc.H1("Amounts of " + strings.Join(names, ", "))

	times := make([]coinledger.Timestamp, 0, len(r.Amounts))
	for ts := range r.Amounts {
		times = append(times, ts)
	}
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Time", "Amount"},
	}
	for _, ts := range times {
		table.Rows = append(table.Rows, []string{formatTime(ts), r.Amounts[ts].String()})
	}
	doc.Table(table)

	if r.LastEvent != nil {
		doc.PlainText(haltNote(r.LastEvent))
	}

	return doc.String()
}
