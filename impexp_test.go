package coinledger

import (
	"bytes"
	"strings"
	"testing"
)

func TestImportTrades(t *testing.T) {
	input := `
{"id":"t1","timestamp":1700000000,"location":"binance","base":"ETH","quote":"USD","type":"buy","amount":"2","rate":"1500.5"}

{"id":"t2","timestamp":1700000100,"location":"coinbase","base":"BTC","quote":"EUR","type":"settlement sell","amount":"0.1","rate":"40000"}
`
	trades, err := ImportTrades(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ImportTrades: %v", err)
	}
	if len(trades) != 2 {
		t.Fatalf("imported %d trades, want 2 (blank lines skipped)", len(trades))
	}
	if trades[0].ID != "t1" || !trades[0].Rate.Equal(dec("1500.5")) {
		t.Errorf("trade[0] = %+v", trades[0])
	}
	if trades[1].Type != TradeTypeSettlementSell {
		t.Errorf("trade[1].Type = %q", trades[1].Type)
	}
}

func TestImportTradesRejectsBadType(t *testing.T) {
	input := `{"id":"t1","timestamp":1,"base":"ETH","quote":"USD","type":"short","amount":"1","rate":"1"}`
	if _, err := ImportTrades(strings.NewReader(input)); err == nil {
		t.Fatal("unknown trade type must fail the import")
	}
}

func TestTradesRoundTrip(t *testing.T) {
	trades := []Trade{
		{ID: "t1", Timestamp: 1700000000, Location: "binance", BaseAsset: "ETH",
			QuoteAsset: "USD", Type: TradeTypeBuy, Amount: dec("2"), Rate: dec("1500.5")},
	}
	var buf bytes.Buffer
	if err := ExportTrades(&buf, trades); err != nil {
		t.Fatalf("ExportTrades: %v", err)
	}
	back, err := ImportTrades(&buf)
	if err != nil {
		t.Fatalf("ImportTrades: %v", err)
	}
	if len(back) != 1 || back[0].ID != "t1" || !back[0].Rate.Equal(dec("1500.5")) {
		t.Errorf("round trip = %+v", back)
	}
}

func TestImportEvents(t *testing.T) {
	input := `{"event_identifier":"swap-1","sequence_index":0,"timestamp_ms":1700000000123,"location":"ethereum","asset":"ETH","amount":"1.5","type":"trade","subtype":"spend"}
{"event_identifier":"swap-1","sequence_index":1,"timestamp_ms":1700000000123,"location":"ethereum","asset":"USDC","amount":"2400","type":"trade","subtype":"receive"}`
	events, err := ImportEvents(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ImportEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("imported %d events, want 2", len(events))
	}
	if events[0].Subtype != SubtypeSpend || events[0].Timestamp != 1700000000123 {
		t.Errorf("event[0] = %+v", events[0])
	}
}

func TestImportEventsRequiresIdentifier(t *testing.T) {
	input := `{"sequence_index":0,"timestamp_ms":1,"asset":"ETH","amount":"1","type":"receive"}`
	if _, err := ImportEvents(strings.NewReader(input)); err == nil {
		t.Fatal("missing event_identifier must fail the import")
	}
}

func TestImportPrices(t *testing.T) {
	input := `{"asset":"BTC","target":"USD","timestamp":1700000000,"price":"42000.25"}`
	prices, err := ImportPrices(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ImportPrices: %v", err)
	}
	if len(prices) != 1 || prices[0].Asset != "BTC" || !prices[0].Price.Equal(dec("42000.25")) {
		t.Errorf("prices = %+v", prices)
	}
}
