package coinledger

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TradeFilter selects trades for a cursor. Nil bounds mean unbounded; a
// non-empty Assets slice matches trades whose base OR quote asset is a
// member. ExcludeIgnored drops trades touching user-ignored assets.
type TradeFilter struct {
	From, To       *Timestamp
	Assets         []Asset
	ExcludeIgnored bool
}

// EventFilter selects history events for a cursor. Bounds are given in
// seconds; the store converts to the events' native milliseconds.
// ExcludeCollateral drops the deposit-asset/remove-asset legs of collateral
// rebalances at the source.
type EventFilter struct {
	From, To          *Timestamp
	Assets            []Asset
	ExcludeIgnored    bool
	ExcludeCollateral bool
}

// TradeSource opens filtered, timestamp-ascending trade cursors.
type TradeSource interface {
	Trades(ctx context.Context, filter TradeFilter) (TradeCursor, error)
}

// EventSource opens filtered, timestamp-ascending history-event cursors.
type EventSource interface {
	Events(ctx context.Context, filter EventFilter) (EventCursor, error)
}

// SettingsSource exposes the user settings this engine reads. The main
// currency is read once per top-level call.
type SettingsSource interface {
	MainCurrency(ctx context.Context) (Asset, error)
}

// Ledger is the historical balance engine. It holds no state of its own:
// every operation constructs fresh cursors and running balances, so
// concurrent calls are safe as long as the storage layer gives each cursor
// read-snapshot isolation.
type Ledger struct {
	trades   TradeSource
	events   EventSource
	prices   PriceSource
	settings SettingsSource
	log      *zap.Logger
}

// NewLedger assembles the engine from its storage collaborators. A nil
// logger disables logging.
func NewLedger(trades TradeSource, events EventSource, prices PriceSource, settings SettingsSource, log *zap.Logger) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	return &Ledger{trades: trades, events: events, prices: prices, settings: settings, log: log}
}

func (l *Ledger) openMerger(ctx context.Context, tf TradeFilter, ef EventFilter) (*merger, error) {
	trades, err := l.trades.Trades(ctx, tf)
	if err != nil {
		return nil, err
	}
	events, err := l.events.Events(ctx, ef)
	if err != nil {
		trades.Close()
		return nil, err
	}
	return newMerger(trades, events), nil
}

// Balances computes every asset's balance and price at the given timestamp.
// Replay covers the whole ledger up to the timestamp and is truncated at
// the first negative-balance halt; assets without a cached price are
// reported with a zero price. Returns ErrNoHistory when the ledger is empty
// up to the timestamp.
func (l *Ledger) Balances(ctx context.Context, at Timestamp) (map[Asset]HistoricalBalance, error) {
	main, err := l.settings.MainCurrency(ctx)
	if err != nil {
		return nil, err
	}

	to := at
	balances, processed, halt, err := l.replayAll(ctx,
		TradeFilter{To: &to, ExcludeIgnored: true},
		EventFilter{To: &to, ExcludeIgnored: true, ExcludeCollateral: true},
		nil,
	)
	if err != nil {
		return nil, err
	}
	if processed == 0 {
		return nil, ErrNoHistory
	}
	if halt != nil {
		l.log.Warn("balance replay halted on inconsistent ledger item",
			zap.String("item", halt.ItemID), zap.String("group", halt.GroupID))
	}

	prices, missing, err := resolvePrices(ctx, l.prices, balances.Assets(), main, at)
	if err != nil {
		return nil, err
	}
	for _, miss := range missing {
		l.log.Debug("no cached price", zap.String("asset", miss.Asset.String()), zap.Int64("timestamp", int64(miss.Timestamp)))
	}

	result := make(map[Asset]HistoricalBalance, len(balances))
	for asset, amount := range balances {
		result[asset] = HistoricalBalance{Amount: amount, Price: prices[asset]}
	}
	return result, nil
}

// AssetBalance computes one asset's balance and price at the given
// timestamp. Both the cursors and the replay are restricted to the asset,
// so a trade only contributes the leg denominated in it.
func (l *Ledger) AssetBalance(ctx context.Context, asset Asset, at Timestamp) (HistoricalBalance, error) {
	main, err := l.settings.MainCurrency(ctx)
	if err != nil {
		return HistoricalBalance{}, err
	}

	to := at
	assets := []Asset{asset}
	balances, processed, _, err := l.replayAll(ctx,
		TradeFilter{To: &to, Assets: assets, ExcludeIgnored: true},
		EventFilter{To: &to, Assets: assets, ExcludeIgnored: true, ExcludeCollateral: true},
		newAssetSet(assets),
	)
	if err != nil {
		return HistoricalBalance{}, err
	}
	if processed == 0 {
		return HistoricalBalance{}, ErrNoHistory
	}

	amount := balances.Amount(asset)
	if amount.IsZero() {
		return HistoricalBalance{}, nil
	}
	prices, _, err := resolvePrices(ctx, l.prices, []Asset{asset}, main, at)
	if err != nil {
		return HistoricalBalance{}, err
	}
	return HistoricalBalance{Amount: amount, Price: prices[asset]}, nil
}

// AssetAmounts is the change-point series of a set of assets' combined
// balance over a range, plus the halt signal if replay stopped early.
type AssetAmounts struct {
	// Amounts maps each normalized timestamp at which the combined balance
	// changed to the balance right after the change.
	Amounts   map[Timestamp]decimal.Decimal
	LastEvent *Halt
}

// AssetAmountsOverRange replays the range for the given assets and records
// a point every time their combined balance changes. Balances are relative
// to the window start. On a halt the series is truncated at the last
// consistent point and the halt is reported alongside it.
func (l *Ledger) AssetAmountsOverRange(ctx context.Context, assets []Asset, from, to Timestamp) (*AssetAmounts, error) {
	m, err := l.openMerger(ctx,
		TradeFilter{From: &from, To: &to, Assets: assets, ExcludeIgnored: true},
		EventFilter{From: &from, To: &to, Assets: assets, ExcludeIgnored: true, ExcludeCollateral: true},
	)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	filter := newAssetSet(assets)
	balances := make(RunningBalances)
	result := &AssetAmounts{Amounts: make(map[Timestamp]decimal.Decimal)}
	last := decimal.Zero
	recorded := false

	for {
		e, ok, err := m.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if halt := replayEntry(e, balances, filter); halt != nil {
			result.LastEvent = halt
			break
		}
		total := balances.Total(assets)
		if !recorded || !total.Equal(last) {
			result.Amounts[e.when()] = total
			last = total
			recorded = true
		}
	}
	return result, nil
}

// NetWorth is the day-bucketed net worth series over a range: the value of
// all held assets in the main currency at the start of each day that saw
// ledger activity, plus every price miss encountered and the halt signal if
// replay stopped early.
type NetWorth struct {
	Values        map[Timestamp]decimal.Decimal // keyed by UTC day start
	MissingPrices []MissingPrice
	LastEvent     *Halt
}

// NetWorthOverRange replays the range and snapshots the running balances
// every time the event stream crosses a UTC day boundary. The trailing,
// in-progress day is snapshotted only when replay finishes cleanly: after a
// halt its balance state is tainted by the rejected debit and is dropped.
func (l *Ledger) NetWorthOverRange(ctx context.Context, from, to Timestamp) (*NetWorth, error) {
	main, err := l.settings.MainCurrency(ctx)
	if err != nil {
		return nil, err
	}

	m, err := l.openMerger(ctx,
		TradeFilter{From: &from, To: &to, ExcludeIgnored: true},
		EventFilter{From: &from, To: &to, ExcludeIgnored: true, ExcludeCollateral: true},
	)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	balances := make(RunningBalances)
	result := &NetWorth{Values: make(map[Timestamp]decimal.Decimal)}

	snapshot := func(day Timestamp) error {
		prices, missing, err := resolvePrices(ctx, l.prices, balances.Assets(), main, day)
		if err != nil {
			return err
		}
		result.MissingPrices = append(result.MissingPrices, missing...)
		value := decimal.Zero
		for asset, price := range prices {
			value = value.Add(balances.Amount(asset).Mul(price))
		}
		result.Values[day] = value
		return nil
	}

	var currentDay Timestamp
	started := false
	for {
		e, ok, err := m.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		day := e.when().DayStart()
		if !started {
			currentDay = day
			started = true
		} else if day > currentDay {
			if err := snapshot(currentDay); err != nil {
				return nil, err
			}
			currentDay = day
		}
		if halt := replayEntry(e, balances, nil); halt != nil {
			result.LastEvent = halt
			l.log.Warn("net worth replay halted on inconsistent ledger item",
				zap.String("item", halt.ItemID), zap.String("group", halt.GroupID))
			break
		}
	}
	if started && result.LastEvent == nil {
		if err := snapshot(currentDay); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// replayAll folds the whole filtered range into a fresh balance map,
// stopping at the first halt. It reports how many entries were consumed so
// callers can distinguish "no data" from "all balances zero".
func (l *Ledger) replayAll(ctx context.Context, tf TradeFilter, ef EventFilter, filter assetSet) (RunningBalances, int, *Halt, error) {
	m, err := l.openMerger(ctx, tf, ef)
	if err != nil {
		return nil, 0, nil, err
	}
	defer m.Close()

	balances := make(RunningBalances)
	processed := 0
	for {
		e, ok, err := m.next()
		if err != nil {
			return nil, 0, nil, err
		}
		if !ok {
			return balances, processed, nil, nil
		}
		processed++
		if halt := replayEntry(e, balances, filter); halt != nil {
			return balances, processed, halt, nil
		}
	}
}
