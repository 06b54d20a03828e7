package coinledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TradeType classifies a legacy exchange trade. Settlement variants come from
// margin settlements on some exchanges; for balance replay they behave exactly
// like their plain counterpart.
type TradeType string

const (
	TradeTypeBuy            TradeType = "buy"
	TradeTypeSell           TradeType = "sell"
	TradeTypeSettlementBuy  TradeType = "settlement buy"
	TradeTypeSettlementSell TradeType = "settlement sell"
)

// ParseTradeType converts the stored representation of a trade type.
func ParseTradeType(s string) (TradeType, error) {
	switch TradeType(s) {
	case TradeTypeBuy, TradeTypeSell, TradeTypeSettlementBuy, TradeTypeSettlementSell:
		return TradeType(s), nil
	}
	return "", fmt.Errorf("unknown trade type %q", s)
}

// IsBuy reports whether the trade acquires the base asset.
func (t TradeType) IsBuy() bool {
	return t == TradeTypeBuy || t == TradeTypeSettlementBuy
}

// Trade is the legacy event type: an exchange of Amount units of the base
// asset against Amount*Rate units of the quote asset. Amount is always
// positive; the trade type determines which leg is the debit. Trades are
// immutable once persisted and read-only to this engine.
type Trade struct {
	ID         string
	Timestamp  Timestamp // seconds
	Location   string
	BaseAsset  Asset
	QuoteAsset Asset
	Type       TradeType
	Amount     decimal.Decimal // denominated in BaseAsset
	Rate       decimal.Decimal // quote per base
}

// when implements entry. Trades are natively in seconds.
func (t Trade) when() Timestamp { return t.Timestamp }

// Legs reinterprets the trade as two offsetting legs: the asset received
// (credit) and the asset spent (debit). A BUY receives the base and spends
// the quote; a SELL is the mirror.
func (t Trade) Legs() (credit, debit TradeLeg) {
	base := TradeLeg{Asset: t.BaseAsset, Amount: t.Amount}
	quote := TradeLeg{Asset: t.QuoteAsset, Amount: t.Amount.Mul(t.Rate)}
	if t.Type.IsBuy() {
		return base, quote
	}
	return quote, base
}

// TradeLeg is one side of a trade: an amount of a single asset.
type TradeLeg struct {
	Asset  Asset
	Amount decimal.Decimal
}
