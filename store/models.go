package store

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	coinledger "github.com/coinledger/coinledger"
)

// Amounts are stored as text so that decimals survive the round trip
// without floating-point truncation. Extra carries the source-specific
// payload (exchange order ids, tx hashes) that the replay engine never
// reads.

type tradeRow struct {
	ID         string `gorm:"primaryKey;type:text"`
	Timestamp  int64  `gorm:"not null;index:idx_trades_time"`
	Location   string `gorm:"type:text;not null;index"`
	BaseAsset  string `gorm:"type:text;not null;index"`
	QuoteAsset string `gorm:"type:text;not null;index"`
	Type       string `gorm:"type:text;not null"`
	Amount     string `gorm:"type:text;not null"`
	Rate       string `gorm:"type:text;not null"`

	Extra datatypes.JSON `gorm:"type:jsonb"`
}

func (tradeRow) TableName() string { return "trades" }

func (r tradeRow) decode() (coinledger.Trade, error) {
	typ, err := coinledger.ParseTradeType(r.Type)
	if err != nil {
		return coinledger.Trade{}, &coinledger.DeserializationError{Table: "trades", Row: r.ID, Err: err}
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return coinledger.Trade{}, &coinledger.DeserializationError{Table: "trades", Row: r.ID, Err: err}
	}
	rate, err := decimal.NewFromString(r.Rate)
	if err != nil {
		return coinledger.Trade{}, &coinledger.DeserializationError{Table: "trades", Row: r.ID, Err: err}
	}
	return coinledger.Trade{
		ID:         r.ID,
		Timestamp:  coinledger.Timestamp(r.Timestamp),
		Location:   r.Location,
		BaseAsset:  coinledger.Asset(r.BaseAsset),
		QuoteAsset: coinledger.Asset(r.QuoteAsset),
		Type:       typ,
		Amount:     amount,
		Rate:       rate,
	}, nil
}

func encodeTrade(t coinledger.Trade) tradeRow {
	return tradeRow{
		ID:         t.ID,
		Timestamp:  int64(t.Timestamp),
		Location:   t.Location,
		BaseAsset:  string(t.BaseAsset),
		QuoteAsset: string(t.QuoteAsset),
		Type:       string(t.Type),
		Amount:     t.Amount.String(),
		Rate:       t.Rate.String(),
	}
}

type historyEventRow struct {
	ID              int64  `gorm:"primaryKey;autoIncrement"`
	EventIdentifier string `gorm:"type:text;not null;uniqueIndex:uniq_event_leg"`
	SequenceIndex   int    `gorm:"not null;uniqueIndex:uniq_event_leg"`
	Timestamp       int64  `gorm:"not null;index:idx_events_time"` // milliseconds
	Location        string `gorm:"type:text;not null;index"`
	Asset           string `gorm:"type:text;not null;index"`
	Amount          string `gorm:"type:text;not null"`
	Type            string `gorm:"type:text;not null"`
	Subtype         string `gorm:"type:text;not null;default:none"`
	Notes           string `gorm:"type:text"`

	Extra datatypes.JSON `gorm:"type:jsonb"`
}

func (historyEventRow) TableName() string { return "history_events" }

func (r historyEventRow) decode() (coinledger.HistoryEvent, error) {
	rowID := strconv.FormatInt(r.ID, 10)
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return coinledger.HistoryEvent{}, &coinledger.DeserializationError{Table: "history_events", Row: rowID, Err: err}
	}
	e := coinledger.HistoryEvent{
		ID:              r.ID,
		EventIdentifier: r.EventIdentifier,
		SequenceIndex:   r.SequenceIndex,
		Timestamp:       coinledger.TimestampMS(r.Timestamp),
		Location:        r.Location,
		Asset:           coinledger.Asset(r.Asset),
		Amount:          amount,
		Type:            coinledger.EventType(r.Type),
		Subtype:         coinledger.EventSubtype(r.Subtype),
		Notes:           r.Notes,
	}
	if _, ok := e.Direction(); !ok {
		return coinledger.HistoryEvent{}, &coinledger.DeserializationError{
			Table: "history_events",
			Row:   rowID,
			Err:   errors.Errorf("unclassifiable event type %q/%q", r.Type, r.Subtype),
		}
	}
	return e, nil
}

func encodeEvent(e coinledger.HistoryEvent) historyEventRow {
	subtype := string(e.Subtype)
	if subtype == "" {
		subtype = string(coinledger.SubtypeNone)
	}
	return historyEventRow{
		ID:              e.ID,
		EventIdentifier: e.EventIdentifier,
		SequenceIndex:   e.SequenceIndex,
		Timestamp:       int64(e.Timestamp),
		Location:        e.Location,
		Asset:           string(e.Asset),
		Amount:          e.Amount.String(),
		Type:            string(e.Type),
		Subtype:         subtype,
		Notes:           e.Notes,
	}
}

type priceRow struct {
	FromAsset string `gorm:"primaryKey;type:text"`
	ToAsset   string `gorm:"primaryKey;type:text"`
	Timestamp int64  `gorm:"primaryKey"`
	Price     string `gorm:"type:text;not null"`
}

func (priceRow) TableName() string { return "price_history" }

type settingRow struct {
	Name  string `gorm:"primaryKey;type:text"`
	Value string `gorm:"type:text;not null"`
}

func (settingRow) TableName() string { return "settings" }

type ignoredAssetRow struct {
	Identifier string `gorm:"primaryKey;type:text"`
}

func (ignoredAssetRow) TableName() string { return "ignored_assets" }
