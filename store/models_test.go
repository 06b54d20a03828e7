package store

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	coinledger "github.com/coinledger/coinledger"
)

func TestTradeRowDecode(t *testing.T) {
	row := tradeRow{
		ID:         "t1",
		Timestamp:  1700000000,
		Location:   "binance",
		BaseAsset:  "ETH",
		QuoteAsset: "USD",
		Type:       "buy",
		Amount:     "2.5",
		Rate:       "1500.25",
	}
	trade, err := row.decode()
	require.NoError(t, err)
	require.Equal(t, "t1", trade.ID)
	require.Equal(t, coinledger.TradeTypeBuy, trade.Type)
	require.True(t, trade.Amount.Equal(decimal.RequireFromString("2.5")))
	require.True(t, trade.Rate.Equal(decimal.RequireFromString("1500.25")))
}

func TestTradeRowDecodeFailures(t *testing.T) {
	valid := tradeRow{ID: "t1", Type: "buy", Amount: "1", Rate: "1"}

	corrupt := valid
	corrupt.Type = "short"
	_, err := corrupt.decode()
	var derr *coinledger.DeserializationError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, "trades", derr.Table)
	require.Equal(t, "t1", derr.Row)

	corrupt = valid
	corrupt.Amount = "not-a-number"
	_, err = corrupt.decode()
	require.ErrorAs(t, err, &derr)
}

func TestHistoryEventRowDecode(t *testing.T) {
	row := historyEventRow{
		ID:              42,
		EventIdentifier: "swap-1",
		SequenceIndex:   1,
		Timestamp:       1700000000123,
		Asset:           "ETH",
		Amount:          "1.5",
		Type:            "trade",
		Subtype:         "spend",
	}
	e, err := row.decode()
	require.NoError(t, err)
	require.Equal(t, int64(42), e.ID)
	require.Equal(t, coinledger.TimestampMS(1700000000123), e.Timestamp)
	require.Equal(t, coinledger.SubtypeSpend, e.Subtype)
}

func TestHistoryEventRowDecodeUnclassifiable(t *testing.T) {
	row := historyEventRow{
		ID:              7,
		EventIdentifier: "x",
		Timestamp:       1,
		Asset:           "ETH",
		Amount:          "1",
		Type:            "mystery",
		Subtype:         "none",
	}
	_, err := row.decode()
	var derr *coinledger.DeserializationError
	require.ErrorAs(t, err, &derr)
	require.Equal(t, "history_events", derr.Table)
	require.Equal(t, "7", derr.Row)
}

func TestEncodeEventDefaultsSubtype(t *testing.T) {
	row := encodeEvent(coinledger.HistoryEvent{
		EventIdentifier: "x",
		Asset:           "ETH",
		Type:            coinledger.EventTypeReceive,
	})
	require.Equal(t, "none", row.Subtype)
}
