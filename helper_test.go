package coinledger

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// fakeTradeCursor pages through an in-memory slice and counts Fetch calls
// so tests can assert the paging behavior.
type fakeTradeCursor struct {
	trades  []Trade
	fetches int
	closed  bool
}

func (c *fakeTradeCursor) Fetch(n int) ([]Trade, error) {
	c.fetches++
	if n > len(c.trades) {
		n = len(c.trades)
	}
	page := c.trades[:n]
	c.trades = c.trades[n:]
	return page, nil
}

func (c *fakeTradeCursor) Close() error {
	c.closed = true
	return nil
}

type fakeEventCursor struct {
	events  []HistoryEvent
	fetches int
	closed  bool
}

func (c *fakeEventCursor) Fetch(n int) ([]HistoryEvent, error) {
	c.fetches++
	if n > len(c.events) {
		n = len(c.events)
	}
	page := c.events[:n]
	c.events = c.events[n:]
	return page, nil
}

func (c *fakeEventCursor) Close() error {
	c.closed = true
	return nil
}

// failingTradeCursor yields its trades in one page and then fails every
// Fetch, the way a poisoned storage cursor repeats its first error.
type failingTradeCursor struct {
	trades []Trade
	err    error
}

func (c *failingTradeCursor) Fetch(int) ([]Trade, error) {
	if len(c.trades) > 0 {
		page := c.trades
		c.trades = nil
		return page, nil
	}
	return nil, c.err
}

func (c *failingTradeCursor) Close() error { return nil }

type failingEventCursor struct {
	events []HistoryEvent
	err    error
}

func (c *failingEventCursor) Fetch(int) ([]HistoryEvent, error) {
	if len(c.events) > 0 {
		page := c.events
		c.events = nil
		return page, nil
	}
	return nil, c.err
}

func (c *failingEventCursor) Close() error { return nil }

// fakeSources implements every source interface over in-memory slices,
// applying filters the way the storage layer would.
type fakeSources struct {
	trades  []Trade
	events  []HistoryEvent
	prices  map[Asset]decimal.Decimal
	ignored map[Asset]bool
	main    Asset

	// When set, the matching cursor yields one page and then fails.
	tradeErr error
	eventErr error

	priceCalls int
}

func (f *fakeSources) Trades(_ context.Context, filter TradeFilter) (TradeCursor, error) {
	assets := newAssetSet(filter.Assets)
	var matched []Trade
	for _, t := range f.trades {
		if filter.From != nil && t.Timestamp < *filter.From {
			continue
		}
		if filter.To != nil && t.Timestamp > *filter.To {
			continue
		}
		if filter.Assets != nil && !assets.contains(t.BaseAsset) && !assets.contains(t.QuoteAsset) {
			continue
		}
		if filter.ExcludeIgnored && (f.ignored[t.BaseAsset] || f.ignored[t.QuoteAsset]) {
			continue
		}
		matched = append(matched, t)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp < matched[j].Timestamp
	})
	if f.tradeErr != nil {
		return &failingTradeCursor{trades: matched, err: f.tradeErr}, nil
	}
	return &fakeTradeCursor{trades: matched}, nil
}

func (f *fakeSources) Events(_ context.Context, filter EventFilter) (EventCursor, error) {
	assets := newAssetSet(filter.Assets)
	var matched []HistoryEvent
	for _, e := range f.events {
		if filter.From != nil && e.Timestamp < filter.From.ToMS() {
			continue
		}
		if filter.To != nil && e.Timestamp > filter.To.ToMS() {
			continue
		}
		if filter.Assets != nil && !assets.contains(e.Asset) {
			continue
		}
		if filter.ExcludeIgnored && f.ignored[e.Asset] {
			continue
		}
		if filter.ExcludeCollateral && (e.Subtype == SubtypeDepositAsset || e.Subtype == SubtypeRemoveAsset) {
			continue
		}
		matched = append(matched, e)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp < matched[j].Timestamp
	})
	if f.eventErr != nil {
		return &failingEventCursor{events: matched, err: f.eventErr}, nil
	}
	return &fakeEventCursor{events: matched}, nil
}

func (f *fakeSources) PricesAt(_ context.Context, assets []Asset, _ Asset, at Timestamp) (map[Asset]decimal.Decimal, []MissingPrice, error) {
	f.priceCalls++
	found := make(map[Asset]decimal.Decimal)
	var missing []MissingPrice
	for _, a := range assets {
		if p, ok := f.prices[a]; ok {
			found[a] = p
		} else {
			missing = append(missing, MissingPrice{Asset: a, Timestamp: at})
		}
	}
	return found, missing, nil
}

func (f *fakeSources) MainCurrency(context.Context) (Asset, error) {
	if f.main == "" {
		return "USD", nil
	}
	return f.main, nil
}

func (f *fakeSources) ledger() *Ledger {
	return NewLedger(f, f, f, f, nil)
}
